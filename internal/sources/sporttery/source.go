// Package sporttery queries the sports-lottery vendor API one issue at a
// time. There is no bulk listing; the updater forward-walks this source
// from the latest known issue.
package sporttery

import (
	"context"
	"log/slog"

	"lottokit/internal/pkg/config"
	"lottokit/internal/pkg/models"
	"lottokit/internal/sources"
)

const sourceName = "sporttery"

func init() {
	sources.Register(sourceName, New)
}

// Ensure Source implements the per-issue capability
var _ sources.IssueSource = (*Source)(nil)

type Source struct {
	client    *Client
	gameCodes map[string]string
}

func New(cfg *config.Config) sources.Source {
	gameCodes := cfg.Sources.Sporttery.GameCodes
	if len(gameCodes) == 0 {
		gameCodes = map[string]string{models.GameDLT: "85"}
	}
	return &Source{
		client:    NewClient(cfg.Sources.Sporttery.BaseURL, cfg.Updater.UserAgent, cfg.Updater.Timeout),
		gameCodes: gameCodes,
	}
}

func (s *Source) Name() string { return sourceName }

func (s *Source) Supports(game string) bool {
	_, ok := s.gameCodes[game]
	return ok
}

// FetchSince is a no-op: the vendor only answers explicit issue queries.
func (s *Source) FetchSince(ctx context.Context, game, lastIssue string) []models.RawDraw {
	return nil
}

func (s *Source) FetchIssue(ctx context.Context, game, issue string) (models.RawDraw, bool) {
	code, ok := s.gameCodes[game]
	if !ok {
		return models.RawDraw{}, false
	}
	rule, ok := models.RuleByID(game)
	if !ok {
		return models.RawDraw{}, false
	}

	short := shortIssue(issue)
	body, err := s.client.GetDraw(ctx, code, short)
	if err != nil {
		slog.Warn("sporttery: fetch failed", "game", game, "issue", issue, "error", err)
		return models.RawDraw{}, false
	}

	raw, found, err := parseDraw(body, short, rule.RedCount)
	if err != nil {
		slog.Warn("sporttery: bad payload", "game", game, "issue", issue, "error", err)
		return models.RawDraw{}, false
	}
	return raw, found
}

// shortIssue converts the canonical 7-digit form to the vendor's 5-digit
// form ("2024005" -> "24005").
func shortIssue(issue string) string {
	if len(issue) == 7 {
		return issue[2:]
	}
	return issue
}
