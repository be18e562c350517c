package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/dfscrape/internal/store"
)

// InjuryRepository handles injury report rows
type InjuryRepository struct {
	db *store.Database
}

// NewInjuryRepository creates a new injury repository
func NewInjuryRepository(db *store.Database) *InjuryRepository {
	return &InjuryRepository{db: db}
}

// InsertBatch stores every injury row of one run
func (r *InjuryRepository) InsertBatch(ctx context.Context, injuries []*store.Injury) error {
	if len(injuries) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(injuries))
	for _, i := range injuries {
		rows = append(rows, []any{
			i.RunID, i.Player, i.Team, i.PID, i.Status, i.Injury, i.Report, i.Returns,
			i.StartDate, i.ReportDate, i.ScrapedAt,
		})
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		return copyRows(ctx, tx, "injuries",
			[]string{"run_id", "player", "team", "pid", "status", "injury", "report", "returns",
				"start_date", "report_date", "scraped_at"},
			rows)
	})
}

// GetLatest returns the newest completed injury report, optionally for one team
func (r *InjuryRepository) GetLatest(ctx context.Context, team string) ([]*store.Injury, error) {
	query := `
		SELECT id, run_id, player, team, pid, status, injury, report, returns,
			start_date, report_date, scraped_at
		FROM injuries
		WHERE run_id = (` + latestRunQuery + `)
			AND ($2 = '' OR team = $2)
		ORDER BY team, player
	`
	rows, err := r.db.DB().QueryContext(ctx, query, store.SourceInjuries, team)
	if err != nil {
		return nil, fmt.Errorf("querying injuries: %w", err)
	}
	defer rows.Close()

	var injuries []*store.Injury
	for rows.Next() {
		i := &store.Injury{}
		err := rows.Scan(&i.ID, &i.RunID, &i.Player, &i.Team, &i.PID, &i.Status, &i.Injury,
			&i.Report, &i.Returns, &i.StartDate, &i.ReportDate, &i.ScrapedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning injury: %w", err)
		}
		injuries = append(injuries, i)
	}
	return injuries, rows.Err()
}
