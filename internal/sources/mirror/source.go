// Package mirror reads a community-maintained JSON mirror of 双色球 results.
// The payload uses localized field names and is only loosely validated
// upstream, so every field is treated as optional and checked at the parse
// boundary; incomplete records are dropped, not fatal.
package mirror

import (
	"context"
	"log/slog"
	"net/http"

	"lottokit/internal/pkg/config"
	"lottokit/internal/pkg/models"
	"lottokit/internal/sources"
)

const (
	sourceName = "mirror"
	defaultURL = "https://raw.gitcode.com/chxii/lottery_results/raw/master/lottery_results.json"
)

func init() {
	sources.Register(sourceName, New)
}

type Source struct {
	url       string
	userAgent string
	client    *http.Client
}

func New(cfg *config.Config) sources.Source {
	url := cfg.Sources.Mirror.URL
	if url == "" {
		url = defaultURL
	}
	return &Source{
		url:       url,
		userAgent: cfg.Updater.UserAgent,
		client:    sources.NewHTTPClient(cfg.Updater.Timeout),
	}
}

func (s *Source) Name() string { return sourceName }

func (s *Source) Supports(game string) bool { return game == models.GameSSQ }

func (s *Source) FetchSince(ctx context.Context, game, lastIssue string) []models.RawDraw {
	if !s.Supports(game) {
		return nil
	}

	body, err := sources.Get(ctx, s.client, s.url, s.userAgent, "")
	if err != nil {
		slog.Warn("mirror: fetch failed", "error", err)
		return nil
	}

	draws, dropped, err := parseMirror(body)
	if err != nil {
		slog.Warn("mirror: bad payload", "error", err)
		return nil
	}
	if dropped > 0 {
		slog.Debug("mirror: dropped incomplete records", "dropped", dropped)
	}
	return draws
}
