package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	pkgconfig "lottokit/internal/pkg/config"
	"lottokit/internal/pkg/logging"
	"lottokit/internal/pkg/notify"
	"lottokit/internal/pkg/storage"
	"lottokit/internal/sources"
	"lottokit/internal/updater"

	// Register all supported sources via init().
	_ "lottokit/internal/sources/all"
)

const defaultConfigPath = "configs/config.yaml"

type flags struct {
	configPath string
	game       string
	loop       bool
}

func main() {
	if err := run(); err != nil {
		slog.Error("Updater failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	f := parseFlags()

	cfg, err := pkgconfig.Load(f.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logging.Setup(&cfg.Log, "updater")
	slog.Info("Config loaded", "path", f.configPath)

	if f.game != "" {
		game, ok := cfg.Games[f.game]
		if !ok {
			return fmt.Errorf("game %q not configured", f.game)
		}
		cfg.Games = map[string]pkgconfig.GameConfig{f.game: game}
	}

	srcs, err := buildSources(cfg)
	if err != nil {
		return err
	}

	store := storage.NewFileStore(cfg.Store.Dir)

	var archive storage.Archiver
	if cfg.Postgres.DSN != "" {
		archive, err = storage.NewPostgresArchive(cfg.Postgres.DSN)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer archive.Close()
	}

	var notifier updater.Notifier
	if cfg.Telegram.BotToken != "" {
		if tn := notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID); tn != nil {
			notifier = tn
		}
	}

	u := updater.New(cfg, store, srcs, archive, notifier)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := u.Run(ctx); err != nil && !f.loop {
		return err
	}
	if !f.loop {
		return nil
	}

	slog.Info("Running in loop mode", "interval", cfg.Updater.Interval)
	ticker := time.NewTicker(cfg.Updater.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("Shutting down")
			return nil
		case <-ticker.C:
			if err := u.Run(ctx); err != nil {
				slog.Error("Update run failed", "error", err)
			}
		}
	}
}

// buildSources instantiates each configured source once and maps games to
// their source lists, preserving the configured priority order.
func buildSources(cfg *pkgconfig.Config) (map[string][]sources.Source, error) {
	instances := map[string]sources.Source{}
	out := map[string][]sources.Source{}

	for game, gameCfg := range cfg.Games {
		for _, name := range gameCfg.Sources {
			src, ok := instances[name]
			if !ok {
				factory, exists := sources.FactoryByName(name)
				if !exists {
					return nil, fmt.Errorf("unknown source %q for game %q (available: %v)", name, game, sources.AvailableNames())
				}
				src = factory(cfg)
				instances[name] = src
			}
			out[game] = append(out[game], src)
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no games configured")
	}
	return out, nil
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.configPath, "config", defaultConfigPath, "path to config file")
	flag.StringVar(&f.game, "game", "", "update a single game instead of all configured ones")
	flag.BoolVar(&f.loop, "loop", false, "keep running on the configured interval")
	flag.Parse()
	return f
}
