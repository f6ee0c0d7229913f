// Package sources defines the closed set of upstream draw-data adapters.
//
// Every adapter degrades any failure (network, non-2xx status, malformed
// payload) to an empty result: nothing escalates past the adapter boundary,
// the caller only sees "data" or "no data".
package sources

import (
	"context"

	"lottokit/internal/pkg/models"
)

// Source is one upstream provider of draw results.
type Source interface {
	// Name returns the registry name of the source.
	Name() string

	// Supports reports whether the source carries data for the game.
	Supports(game string) bool

	// FetchSince returns the draw entries the source can currently see for
	// the game. lastIssue (canonical 7-digit form) is a hint; bulk sources
	// return their whole listing regardless and the caller diffs it against
	// the store. An empty slice means "no new data or the fetch failed".
	FetchSince(ctx context.Context, game, lastIssue string) []models.RawDraw
}

// IssueSource is the optional capability of vendors that only answer
// one explicit issue per query. The updater forward-walks these
// issue-by-issue instead of diffing a bulk listing.
type IssueSource interface {
	Source

	// FetchIssue looks up a single issue (canonical 7-digit form).
	// ok is false when the issue is not (yet) published or the fetch failed.
	FetchIssue(ctx context.Context, game, issue string) (models.RawDraw, bool)
}
