package rest

import (
	"context"
	"time"

	"github.com/fortuna/dfscrape/internal/store"
	"github.com/fortuna/dfscrape/internal/store/repository"
)

// Store is the read side the handlers query
type Store interface {
	LatestLineups(ctx context.Context, team string) ([]*store.Lineup, error)
	LatestInjuries(ctx context.Context, team string) ([]*store.Injury, error)
	RecentNews(ctx context.Context, since time.Time, limit int) ([]*store.NewsItem, error)
	LatestOdds(ctx context.Context) ([]*store.OddsLine, error)
	RecentRuns(ctx context.Context, source string, limit int) ([]*store.ScrapeRun, error)
	GetRun(ctx context.Context, runID string) (*store.ScrapeRun, error)
	HealthCheck(ctx context.Context) error
}

// RepositoryStore answers handler queries from Postgres
type RepositoryStore struct {
	db       *store.Database
	lineups  *repository.LineupRepository
	injuries *repository.InjuryRepository
	news     *repository.NewsRepository
	odds     *repository.OddsRepository
	runs     *repository.RunRepository
}

// NewRepositoryStore creates the Postgres-backed store
func NewRepositoryStore(db *store.Database) *RepositoryStore {
	return &RepositoryStore{
		db:       db,
		lineups:  repository.NewLineupRepository(db),
		injuries: repository.NewInjuryRepository(db),
		news:     repository.NewNewsRepository(db),
		odds:     repository.NewOddsRepository(db),
		runs:     repository.NewRunRepository(db),
	}
}

func (s *RepositoryStore) LatestLineups(ctx context.Context, team string) ([]*store.Lineup, error) {
	return s.lineups.GetLatest(ctx, team)
}

func (s *RepositoryStore) LatestInjuries(ctx context.Context, team string) ([]*store.Injury, error) {
	return s.injuries.GetLatest(ctx, team)
}

func (s *RepositoryStore) RecentNews(ctx context.Context, since time.Time, limit int) ([]*store.NewsItem, error) {
	return s.news.GetRecent(ctx, since, limit)
}

func (s *RepositoryStore) LatestOdds(ctx context.Context) ([]*store.OddsLine, error) {
	return s.odds.GetLatest(ctx)
}

func (s *RepositoryStore) RecentRuns(ctx context.Context, source string, limit int) ([]*store.ScrapeRun, error) {
	return s.runs.ListRecent(ctx, source, limit)
}

func (s *RepositoryStore) GetRun(ctx context.Context, runID string) (*store.ScrapeRun, error) {
	return s.runs.GetByID(ctx, runID)
}

func (s *RepositoryStore) HealthCheck(ctx context.Context) error {
	return s.db.HealthCheck(ctx)
}
