// Package x500 pulls the attribute-style XML result listing. The listing
// covers roughly the last 100 issues per game, which makes it the re-seed
// source of choice for an empty store.
package x500

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"lottokit/internal/pkg/config"
	"lottokit/internal/pkg/models"
	"lottokit/internal/sources"
)

const (
	sourceName     = "x500"
	defaultBaseURL = "https://kaijiang.500.com"
)

func init() {
	sources.Register(sourceName, New)
}

type Source struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func New(cfg *config.Config) sources.Source {
	baseURL := cfg.Sources.X500.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Source{
		baseURL:   baseURL,
		userAgent: cfg.Updater.UserAgent,
		client:    sources.NewHTTPClient(cfg.Updater.Timeout),
	}
}

func (s *Source) Name() string { return sourceName }

func (s *Source) Supports(game string) bool {
	return game == models.GameSSQ || game == models.GameDLT
}

func (s *Source) FetchSince(ctx context.Context, game, lastIssue string) []models.RawDraw {
	if !s.Supports(game) {
		return nil
	}

	url := fmt.Sprintf("%s/static/info/kaijiang/xml/%s/list.xml", s.baseURL, game)
	body, err := sources.Get(ctx, s.client, url, s.userAgent, "")
	if err != nil {
		slog.Warn("x500: fetch failed", "game", game, "error", err)
		return nil
	}

	draws := extractRows(string(body))
	if len(draws) == 0 {
		slog.Warn("x500: no rows extracted, XML format changed?", "game", game)
	}
	return draws
}
