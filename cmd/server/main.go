package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"lottokit/internal/pkg/api"
	pkgconfig "lottokit/internal/pkg/config"
	"lottokit/internal/pkg/logging"
	"lottokit/internal/pkg/storage"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", defaultConfigPath, "path to config file")
	addr := flag.String("addr", "", "listen address override")
	flag.Parse()

	cfg, err := pkgconfig.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logging.Setup(&cfg.Log, "server")
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := storage.NewFileStore(cfg.Store.Dir)
	return api.Run(ctx, cfg, store)
}
