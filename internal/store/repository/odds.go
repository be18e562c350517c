package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/dfscrape/internal/store"
)

// OddsRepository handles game line rows
type OddsRepository struct {
	db *store.Database
}

// NewOddsRepository creates a new odds repository
func NewOddsRepository(db *store.Database) *OddsRepository {
	return &OddsRepository{db: db}
}

// InsertBatch stores both sides of every game line of one run
func (r *OddsRepository) InsertBatch(ctx context.Context, lines []*store.OddsLine) error {
	if len(lines) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(lines))
	for _, o := range lines {
		rows = append(rows, []any{
			o.RunID, o.Team, o.Opponent, o.Total, o.Spread, o.ImpliedPoints, o.ScrapedAt,
		})
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		return copyRows(ctx, tx, "odds_lines",
			[]string{"run_id", "team", "opponent", "total", "spread", "implied_points", "scraped_at"},
			rows)
	})
}

// GetLatest returns the lines of the newest completed odds run
func (r *OddsRepository) GetLatest(ctx context.Context) ([]*store.OddsLine, error) {
	query := `
		SELECT id, run_id, team, opponent, total, spread, implied_points, scraped_at
		FROM odds_lines
		WHERE run_id = (` + latestRunQuery + `)
		ORDER BY id
	`
	rows, err := r.db.DB().QueryContext(ctx, query, store.SourceOdds)
	if err != nil {
		return nil, fmt.Errorf("querying odds lines: %w", err)
	}
	defer rows.Close()

	var lines []*store.OddsLine
	for rows.Next() {
		o := &store.OddsLine{}
		err := rows.Scan(&o.ID, &o.RunID, &o.Team, &o.Opponent, &o.Total, &o.Spread,
			&o.ImpliedPoints, &o.ScrapedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning odds line: %w", err)
		}
		lines = append(lines, o)
	}
	return lines, rows.Err()
}
