package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"lottokit/internal/pkg/models"
)

// Ensure PostgresArchive implements Archiver
var _ Archiver = (*PostgresArchive)(nil)

// PostgresArchive keeps the full draw history in PostgreSQL, uncapped, so
// the file store's retention limit does not destroy older issues.
type PostgresArchive struct {
	db *sql.DB
}

func NewPostgresArchive(dsn string) (*PostgresArchive, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	archive := &PostgresArchive{db: db}
	if err := archive.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Info("PostgreSQL draw archive initialized")
	return archive, nil
}

func (a *PostgresArchive) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS draws (
		game VARCHAR(16) NOT NULL,
		issue VARCHAR(16) NOT NULL,
		draw_date DATE NOT NULL,
		week VARCHAR(8) NOT NULL,
		red TEXT NOT NULL,
		blue TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		PRIMARY KEY (game, issue)
	);

	CREATE INDEX IF NOT EXISTS idx_draws_game_date ON draws(game, draw_date DESC);
	`
	if _, err := a.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create draws table: %w", err)
	}
	return nil
}

func (a *PostgresArchive) StoreDraw(ctx context.Context, game string, rec models.DrawRecord) (bool, error) {
	res, err := a.db.ExecContext(ctx, `
		INSERT INTO draws (game, issue, draw_date, week, red, blue)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (game, issue) DO NOTHING`,
		game, rec.Issue, rec.Date, rec.Week, joinBalls(rec.Red), joinBalls(rec.Blue),
	)
	if err != nil {
		return false, fmt.Errorf("insert draw %s/%s: %w", game, rec.Issue, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (a *PostgresArchive) Close() error {
	return a.db.Close()
}

func joinBalls(balls []int) string {
	parts := make([]string, len(balls))
	for i, n := range balls {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
