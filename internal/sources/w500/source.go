// Package w500 scrapes the legacy result-history HTML pages. The pages are
// served in GB2312, so the byte stream is decoded before any text
// extraction; balls are picked out by their marker class, not by column.
package w500

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"lottokit/internal/pkg/config"
	"lottokit/internal/pkg/models"
	"lottokit/internal/sources"
)

const (
	sourceName     = "w500"
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
	baseURL := cfg.Sources.W500.BaseURL
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
	rule, ok := models.RuleByID(game)
	if !ok {
		return nil
	}

	url := fmt.Sprintf("%s/%s.shtml", s.baseURL, game)
	body, err := sources.Get(ctx, s.client, url, s.userAgent, "")
	if err != nil {
		slog.Warn("w500: fetch failed", "game", game, "error", err)
		return nil
	}

	// GB2312 page; decode before parsing or every selector match is mojibake.
	decoded, _, err := transform.Bytes(simplifiedchinese.GBK.NewDecoder(), body)
	if err != nil {
		slog.Warn("w500: charset decode failed", "game", game, "error", err)
		return nil
	}

	draws, err := parseTable(bytes.NewReader(decoded), rule)
	if err != nil {
		slog.Warn("w500: bad page", "game", game, "error", err)
		return nil
	}
	return draws
}
