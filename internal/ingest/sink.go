package ingest

import (
	"context"

	"github.com/fortuna/dfscrape/internal/store"
	"github.com/fortuna/dfscrape/internal/store/repository"
)

// PostgresSink writes results through the record repositories
type PostgresSink struct {
	lineups  *repository.LineupRepository
	injuries *repository.InjuryRepository
	news     *repository.NewsRepository
	odds     *repository.OddsRepository
}

// NewPostgresSink creates a sink over db
func NewPostgresSink(db *store.Database) *PostgresSink {
	return &PostgresSink{
		lineups:  repository.NewLineupRepository(db),
		injuries: repository.NewInjuryRepository(db),
		news:     repository.NewNewsRepository(db),
		odds:     repository.NewOddsRepository(db),
	}
}

// Save stores every record of res. News already stored by an earlier run is
// skipped and not counted.
func (s *PostgresSink) Save(ctx context.Context, res *Result) (int, error) {
	saved := 0
	if err := s.lineups.InsertBatch(ctx, res.Lineups); err != nil {
		return saved, err
	}
	saved += len(res.Lineups)

	if err := s.injuries.InsertBatch(ctx, res.Injuries); err != nil {
		return saved, err
	}
	saved += len(res.Injuries)

	n, err := s.news.InsertBatch(ctx, res.News)
	if err != nil {
		return saved, err
	}
	saved += n

	if err := s.odds.InsertBatch(ctx, res.Odds); err != nil {
		return saved, err
	}
	saved += len(res.Odds)
	return saved, nil
}
