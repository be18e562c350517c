package repository

import (
	"context"
	"fmt"

	"github.com/fortuna/dfscrape/internal/store"
)

// AliasRepository handles operator-maintained player name aliases
type AliasRepository struct {
	db *store.Database
}

// NewAliasRepository creates a new alias repository
func NewAliasRepository(db *store.Database) *AliasRepository {
	return &AliasRepository{db: db}
}

// Map returns every alias keyed by the spelling seen on a source
func (r *AliasRepository) Map(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.DB().QueryContext(ctx, `SELECT alias, canonical FROM player_aliases`)
	if err != nil {
		return nil, fmt.Errorf("querying player aliases: %w", err)
	}
	defer rows.Close()

	aliases := make(map[string]string)
	for rows.Next() {
		var alias, canonical string
		if err := rows.Scan(&alias, &canonical); err != nil {
			return nil, fmt.Errorf("scanning player alias: %w", err)
		}
		aliases[alias] = canonical
	}
	return aliases, rows.Err()
}

// Upsert adds an alias or repoints an existing one
func (r *AliasRepository) Upsert(ctx context.Context, alias *store.PlayerAlias) error {
	query := `
		INSERT INTO player_aliases (alias, canonical)
		VALUES ($1, $2)
		ON CONFLICT (alias) DO UPDATE SET canonical = EXCLUDED.canonical
	`
	if _, err := r.db.DB().ExecContext(ctx, query, alias.Alias, alias.Canonical); err != nil {
		return fmt.Errorf("upserting player alias %q: %w", alias.Alias, err)
	}
	return nil
}
