// Package api serves the consumer-facing read interface. It never surfaces
// an ingestion failure as a hard error: callers always get real data or an
// explicit empty/fallback result.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"lottokit/internal/pkg/config"
	"lottokit/internal/pkg/storage"
)

type Server struct {
	cfg   *config.Config
	store storage.Store
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg *config.Config, store storage.Store) error {
	s := &Server{cfg: cfg, store: store}

	mux := http.NewServeMux()
	mux.HandleFunc("/ping", handlePing)
	mux.HandleFunc("/health", handlePing)
	mux.HandleFunc("/api/draws", s.handleDraws)
	mux.HandleFunc("/api/schedule", s.handleSchedule)
	mux.HandleFunc("/api/pick", s.handlePick)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("API server listening", "addr", cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
