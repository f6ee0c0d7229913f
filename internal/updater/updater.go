// Package updater keeps the canonical store fresh: it walks per-issue
// vendors forward from the latest known issue and diffs bulk listings
// against the store, one source at a time, strictly sequential.
package updater

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"lottokit/internal/normalize"
	"lottokit/internal/pkg/config"
	"lottokit/internal/pkg/models"
	"lottokit/internal/pkg/storage"
	"lottokit/internal/sources"
)

// Notifier is told about every newly committed draw. Optional.
type Notifier interface {
	NotifyNewDraw(game string, rec models.DrawRecord) error
}

type Updater struct {
	cfg      *config.Config
	store    storage.Store
	sources  map[string][]sources.Source // per game, priority order
	archive  storage.Archiver            // may be nil
	notifier Notifier                    // may be nil
}

func New(cfg *config.Config, store storage.Store, srcs map[string][]sources.Source, archive storage.Archiver, notifier Notifier) *Updater {
	return &Updater{
		cfg:      cfg,
		store:    store,
		sources:  srcs,
		archive:  archive,
		notifier: notifier,
	}
}

// Run updates every configured game, sequentially. A failed game does not
// stop the others; the first error is returned at the end.
func (u *Updater) Run(ctx context.Context) error {
	games := make([]string, 0, len(u.sources))
	for g := range u.sources {
		games = append(games, g)
	}
	sort.Strings(games)

	var firstErr error
	for _, game := range games {
		if err := u.RunGame(ctx, game); err != nil {
			slog.Error("update failed", "game", game, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// RunGame runs one ingestion pass for a single game. Idempotent: with no
// new upstream data the store file is left untouched.
func (u *Updater) RunGame(ctx context.Context, game string) error {
	rule, ok := models.RuleByID(game)
	if !ok {
		return fmt.Errorf("unknown game %q", game)
	}

	stored, err := u.store.Load(game)
	if err != nil {
		return fmt.Errorf("load store: %w", err)
	}

	latest := u.cfg.Games[game].SeedIssue
	if len(stored) > 0 {
		latest = stored[0].Issue
	}
	if latest == "" {
		return fmt.Errorf("empty store and no seed_issue configured for %q", game)
	}

	seen := make(map[int64]bool, len(stored))
	for _, rec := range stored {
		if n, ok := normalize.IssueNumber(rec.Issue); ok {
			seen[n] = true
		}
	}

	// With the store at capacity, anything older than the retained tail was
	// evicted on purpose. Bulk listings reach further back than the retention
	// window, so without this floor every run would re-add (and re-announce)
	// the same evicted issues.
	var floor int64
	if len(stored) >= u.cfg.Store.Keep {
		if n, ok := normalize.IssueNumber(stored[len(stored)-1].Issue); ok {
			floor = n
		}
	}

	var added []models.DrawRecord
	for _, src := range u.sources[game] {
		if !src.Supports(game) {
			continue
		}
		if is, ok := src.(sources.IssueSource); ok {
			added = u.walk(ctx, is, game, rule, latest, seen, added)
		} else {
			added = u.diffBulk(ctx, src, game, rule, latest, floor, seen, added)
		}
		latest = maxIssue(latest, added)
	}

	if len(added) == 0 {
		slog.Info("store up to date", "game", game, "latest", latest)
		return nil
	}

	merged := append(added, stored...)
	sort.Slice(merged, func(i, j int) bool {
		a, _ := normalize.IssueNumber(merged[i].Issue)
		b, _ := normalize.IssueNumber(merged[j].Issue)
		return a > b
	})
	if len(merged) > u.cfg.Store.Keep {
		merged = merged[:u.cfg.Store.Keep]
	}

	if err := u.store.Save(game, merged); err != nil {
		return fmt.Errorf("save store: %w", err)
	}
	slog.Info("store updated", "game", game, "new", len(added), "total", len(merged), "latest", merged[0].Issue)

	u.afterCommit(ctx, game, added)
	return nil
}

// walk advances candidate issues one at a time against a per-issue vendor,
// bounded to avoid unbounded loops against a misbehaving source. A small
// delay between consecutive fetches keeps the vendor's rate limiter quiet.
func (u *Updater) walk(ctx context.Context, src sources.IssueSource, game string, rule models.LotteryRule, latest string, seen map[int64]bool, added []models.DrawRecord) []models.DrawRecord {
	for i := 0; i < u.cfg.Updater.MaxAdvance; i++ {
		candidate := normalize.NextIssue(latest)

		raw, ok := src.FetchIssue(ctx, game, candidate)
		if !ok {
			// Presumably not drawn yet; stop advancing this run.
			break
		}
		rec, err := normalize.Record(raw, rule)
		if err != nil {
			slog.Warn("dropping record", "source", src.Name(), "game", game, "error", err)
			break
		}
		if rec.Issue != candidate {
			slog.Warn("vendor answered wrong issue", "source", src.Name(), "want", candidate, "got", rec.Issue)
			break
		}

		if n, ok := normalize.IssueNumber(rec.Issue); ok && !seen[n] {
			seen[n] = true
			added = append(added, rec)
		}
		latest = candidate

		if i < u.cfg.Updater.MaxAdvance-1 {
			select {
			case <-ctx.Done():
				return added
			case <-time.After(u.cfg.Updater.IssueDelay):
			}
		}
	}
	return added
}

// diffBulk fetches a source's full listing and keeps what the store does
// not have yet. Records failing the validation gate are dropped; their
// siblings are still processed. Records below floor were already evicted
// from the store and are not new.
func (u *Updater) diffBulk(ctx context.Context, src sources.Source, game string, rule models.LotteryRule, latest string, floor int64, seen map[int64]bool, added []models.DrawRecord) []models.DrawRecord {
	raws := src.FetchSince(ctx, game, latest)
	for _, raw := range raws {
		rec, err := normalize.Record(raw, rule)
		if err != nil {
			slog.Debug("dropping record", "source", src.Name(), "game", game, "error", err)
			continue
		}
		n, ok := normalize.IssueNumber(rec.Issue)
		if !ok || n < floor || seen[n] {
			continue
		}
		seen[n] = true
		added = append(added, rec)
	}
	return added
}

// afterCommit feeds the archive and the notifier, oldest issue first.
// Both are best effort: failures are logged, never fatal to the run.
func (u *Updater) afterCommit(ctx context.Context, game string, added []models.DrawRecord) {
	ordered := append([]models.DrawRecord(nil), added...)
	sort.Slice(ordered, func(i, j int) bool {
		a, _ := normalize.IssueNumber(ordered[i].Issue)
		b, _ := normalize.IssueNumber(ordered[j].Issue)
		return a < b
	})

	for _, rec := range ordered {
		if u.archive != nil {
			if _, err := u.archive.StoreDraw(ctx, game, rec); err != nil {
				slog.Warn("archive write failed", "game", game, "issue", rec.Issue, "error", err)
			}
		}
		if u.notifier != nil {
			if err := u.notifier.NotifyNewDraw(game, rec); err != nil {
				slog.Warn("notify failed", "game", game, "issue", rec.Issue, "error", err)
			}
		}
	}
}

func maxIssue(latest string, recs []models.DrawRecord) string {
	best, _ := normalize.IssueNumber(latest)
	out := latest
	for _, rec := range recs {
		if n, ok := normalize.IssueNumber(rec.Issue); ok && n > best {
			best = n
			out = rec.Issue
		}
	}
	return out
}
