package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fortuna/dfscrape/internal/store"
)

// ErrRunNotFound is returned when a run id has no scrape_runs row
var ErrRunNotFound = errors.New("scrape run not found")

// RunRepository handles scrape run bookkeeping
type RunRepository struct {
	db *store.Database
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *store.Database) *RunRepository {
	return &RunRepository{db: db}
}

// Start inserts a run in the running state so records can reference it
func (r *RunRepository) Start(ctx context.Context, run *store.ScrapeRun) error {
	query := `
		INSERT INTO scrape_runs (run_id, source, status, started_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.DB().ExecContext(ctx, query, run.RunID, run.Source, run.Status, run.StartedAt)
	if err != nil {
		return fmt.Errorf("inserting scrape run: %w", err)
	}
	return nil
}

// Finish stores the final status, counts and data-quality gaps of a run
func (r *RunRepository) Finish(ctx context.Context, run *store.ScrapeRun) error {
	query := `
		UPDATE scrape_runs
		SET status = $2, records = $3, unresolved_names = $4, unresolved_teams = $5,
			failures = $6, last_error = $7, finished_at = $8
		WHERE run_id = $1
	`
	res, err := r.db.DB().ExecContext(ctx, query,
		run.RunID, run.Status, run.Records, run.UnresolvedNames, run.UnresolvedTeams,
		run.Failures, run.LastError, run.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("updating scrape run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, run.RunID)
	}
	return nil
}

// GetByID returns a single run
func (r *RunRepository) GetByID(ctx context.Context, runID string) (*store.ScrapeRun, error) {
	query := `
		SELECT run_id, source, status, records, unresolved_names, unresolved_teams,
			failures, last_error, started_at, finished_at
		FROM scrape_runs
		WHERE run_id = $1
	`
	run, err := scanRun(r.db.DB().QueryRowContext(ctx, query, runID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying scrape run: %w", err)
	}
	return run, nil
}

// ListRecent returns the newest runs, optionally filtered by source
func (r *RunRepository) ListRecent(ctx context.Context, source string, limit int) ([]*store.ScrapeRun, error) {
	query := `
		SELECT run_id, source, status, records, unresolved_names, unresolved_teams,
			failures, last_error, started_at, finished_at
		FROM scrape_runs
		WHERE ($1 = '' OR source = $1)
		ORDER BY started_at DESC
		LIMIT $2
	`
	rows, err := r.db.DB().QueryContext(ctx, query, source, clampLimit(limit, 20, 200))
	if err != nil {
		return nil, fmt.Errorf("querying scrape runs: %w", err)
	}
	defer rows.Close()

	var runs []*store.ScrapeRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning scrape run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*store.ScrapeRun, error) {
	run := &store.ScrapeRun{}
	err := row.Scan(
		&run.RunID, &run.Source, &run.Status, &run.Records, &run.UnresolvedNames,
		&run.UnresolvedTeams, &run.Failures, &run.LastError, &run.StartedAt, &run.FinishedAt,
	)
	return run, err
}
