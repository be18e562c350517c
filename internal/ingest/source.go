// Package ingest runs scrape sources and carries their records to storage,
// the record stream and the live run feed.
package ingest

import (
	"context"

	"github.com/fortuna/dfscrape/internal/store"
)

// Source scrapes one site into records. Implementations resolve names, teams
// and dates through the session they are handed.
type Source interface {
	Name() string
	Scrape(ctx context.Context, s *Session) (*Result, error)
}

// Result holds the records of one scrape. A source fills only its own slice.
type Result struct {
	Lineups  []*store.Lineup
	Injuries []*store.Injury
	News     []*store.NewsItem
	Odds     []*store.OddsLine
}

// Len returns the number of records across all slices
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Lineups) + len(r.Injuries) + len(r.News) + len(r.Odds)
}

// Records flattens the result for publishing
func (r *Result) Records() []any {
	if r == nil {
		return nil
	}
	out := make([]any, 0, r.Len())
	for _, l := range r.Lineups {
		out = append(out, l)
	}
	for _, i := range r.Injuries {
		out = append(out, i)
	}
	for _, n := range r.News {
		out = append(out, n)
	}
	for _, o := range r.Odds {
		out = append(out, o)
	}
	return out
}

// stamp sets the run id on every record
func (r *Result) stamp(runID string) {
	for _, l := range r.Lineups {
		l.RunID = runID
	}
	for _, i := range r.Injuries {
		i.RunID = runID
	}
	for _, n := range r.News {
		n.RunID = runID
	}
	for _, o := range r.Odds {
		o.RunID = runID
	}
}
