package storage

import (
	"context"

	"lottokit/internal/pkg/models"
)

// Store is the canonical draw store: one capped, issue-descending record
// list per game. Exactly one writer at a time by design; the ingestion job
// runs as a singleton.
type Store interface {
	// Load returns the stored records for a game, most recent issue first.
	// Unknown games yield an empty slice, never an error.
	Load(game string) ([]models.DrawRecord, error)

	// Save replaces the stored records for a game.
	Save(game string, records []models.DrawRecord) error
}

// Archiver keeps the full, uncapped draw history alongside the canonical
// store. Optional.
type Archiver interface {
	// StoreDraw inserts a record if absent. Returns true when newly inserted.
	StoreDraw(ctx context.Context, game string, rec models.DrawRecord) (bool, error)

	Close() error
}
