package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fortuna/dfscrape/internal/store"
)

// NewsRepository handles player news rows
type NewsRepository struct {
	db *store.Database
}

// NewNewsRepository creates a new news repository
func NewNewsRepository(db *store.Database) *NewsRepository {
	return &NewsRepository{db: db}
}

// InsertBatch stores news items, skipping blurbs already stored by an earlier run.
// It returns the number of new rows.
func (r *NewsRepository) InsertBatch(ctx context.Context, items []*store.NewsItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	query := `
		INSERT INTO news_items (run_id, player, player_link, team, team_link, report, impact,
			published_at, source, source_link, related, scraped_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (player_link, published_at) DO NOTHING
	`
	inserted := 0
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("preparing news insert: %w", err)
		}
		defer stmt.Close()

		for _, n := range items {
			res, err := stmt.ExecContext(ctx,
				n.RunID, n.Player, n.PlayerLink, n.Team, n.TeamLink, n.Report, n.Impact,
				n.PublishedAt, n.Source, n.SourceLink, n.Related, n.ScrapedAt,
			)
			if err != nil {
				return fmt.Errorf("inserting news item for %s: %w", n.Player, err)
			}
			if c, err := res.RowsAffected(); err == nil {
				inserted += int(c)
			}
		}
		return nil
	})
	return inserted, err
}

// GetRecent returns news published after since, newest first
func (r *NewsRepository) GetRecent(ctx context.Context, since time.Time, limit int) ([]*store.NewsItem, error) {
	query := `
		SELECT id, run_id, player, player_link, team, team_link, report, impact,
			published_at, source, source_link, related, scraped_at
		FROM news_items
		WHERE published_at > $1
		ORDER BY published_at DESC
		LIMIT $2
	`
	rows, err := r.db.DB().QueryContext(ctx, query, since, clampLimit(limit, 50, 500))
	if err != nil {
		return nil, fmt.Errorf("querying news: %w", err)
	}
	defer rows.Close()

	var items []*store.NewsItem
	for rows.Next() {
		n := &store.NewsItem{}
		err := rows.Scan(&n.ID, &n.RunID, &n.Player, &n.PlayerLink, &n.Team, &n.TeamLink,
			&n.Report, &n.Impact, &n.PublishedAt, &n.Source, &n.SourceLink, &n.Related, &n.ScrapedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning news item: %w", err)
		}
		items = append(items, n)
	}
	return items, rows.Err()
}
