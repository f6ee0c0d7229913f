// Package cwl fetches 双色球 results from the official welfare lottery JSON
// feed. The upstream rejects requests without a Referer header.
package cwl

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
	sourceName        = "cwl"
	defaultBaseURL    = "http://www.cwl.gov.cn"
	defaultIssueCount = 30
)

func init() {
	sources.Register(sourceName, New)
}

type Source struct {
	baseURL    string
	issueCount int
	userAgent  string
	client     *http.Client
}

func New(cfg *config.Config) sources.Source {
	baseURL := cfg.Sources.CWL.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	issueCount := cfg.Sources.CWL.IssueCount
	if issueCount <= 0 {
		issueCount = defaultIssueCount
	}
	return &Source{
		baseURL:    baseURL,
		issueCount: issueCount,
		userAgent:  cfg.Updater.UserAgent,
		client:     sources.NewHTTPClient(cfg.Updater.Timeout),
	}
}

func (s *Source) Name() string { return sourceName }

func (s *Source) Supports(game string) bool { return game == models.GameSSQ }

func (s *Source) FetchSince(ctx context.Context, game, lastIssue string) []models.RawDraw {
	if !s.Supports(game) {
		return nil
	}

	url := fmt.Sprintf("%s/cwl_admin/action/public/kj/zjInfo/ssq/issue?issueCount=%d", s.baseURL, s.issueCount)
	body, err := sources.Get(ctx, s.client, url, s.userAgent, s.baseURL+"/")
	if err != nil {
		slog.Warn("cwl: fetch failed", "error", err)
		return nil
	}

	draws, err := parseEnvelope(body)
	if err != nil {
		slog.Warn("cwl: bad payload", "error", err)
		return nil
	}
	return draws
}
