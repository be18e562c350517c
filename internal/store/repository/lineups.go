package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/dfscrape/internal/store"
)

// LineupRepository handles projected lineup rows
type LineupRepository struct {
	db *store.Database
}

// NewLineupRepository creates a new lineup repository
func NewLineupRepository(db *store.Database) *LineupRepository {
	return &LineupRepository{db: db}
}

// InsertBatch stores every lineup row of one run
func (r *LineupRepository) InsertBatch(ctx context.Context, lineups []*store.Lineup) error {
	if len(lineups) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(lineups))
	for _, l := range lineups {
		rows = append(rows, []any{
			l.RunID, l.Name, l.Team, l.Position, l.FanDuelSalary, l.DraftKingsSalary, l.ScrapedAt,
		})
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		return copyRows(ctx, tx, "lineups",
			[]string{"run_id", "name", "team", "position", "fanduel_salary", "draftkings_salary", "scraped_at"},
			rows)
	})
}

// GetLatest returns the lineups of the newest completed lineups run, optionally for one team
func (r *LineupRepository) GetLatest(ctx context.Context, team string) ([]*store.Lineup, error) {
	query := `
		SELECT id, run_id, name, team, position, fanduel_salary, draftkings_salary, scraped_at
		FROM lineups
		WHERE run_id = (` + latestRunQuery + `)
			AND ($2 = '' OR team = $2)
		ORDER BY team, id
	`
	rows, err := r.db.DB().QueryContext(ctx, query, store.SourceLineups, team)
	if err != nil {
		return nil, fmt.Errorf("querying lineups: %w", err)
	}
	defer rows.Close()

	var lineups []*store.Lineup
	for rows.Next() {
		l := &store.Lineup{}
		err := rows.Scan(&l.ID, &l.RunID, &l.Name, &l.Team, &l.Position,
			&l.FanDuelSalary, &l.DraftKingsSalary, &l.ScrapedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning lineup: %w", err)
		}
		lineups = append(lineups, l)
	}
	return lineups, rows.Err()
}
