package ingest

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/fortuna/dfscrape/internal/store"
)

// Report summarizes one run for the live feed and the CLI
type Report struct {
	RunID           string              `json:"run_id"`
	Source          string              `json:"source"`
	Status          string              `json:"status"`
	Records         int                 `json:"records"`
	UnresolvedNames []string            `json:"unresolved_names"`
	UnresolvedTeams []string            `json:"unresolved_teams"`
	Failures        []string            `json:"failures"`
	Suggestions     map[string][]string `json:"suggestions,omitempty"`
	Error           string              `json:"error,omitempty"`
	StartedAt       time.Time           `json:"started_at"`
	FinishedAt      time.Time           `json:"finished_at"`
}

// newReport collects the session's data-quality gaps
func newReport(runID, source string, s *Session, started time.Time) *Report {
	r := &Report{
		RunID:           runID,
		Source:          source,
		Status:          store.RunStatusRunning,
		UnresolvedNames: s.Names.Unresolved(),
		UnresolvedTeams: s.UnresolvedTeams(),
		Failures:        s.Failures(),
		StartedAt:       started,
	}
	table := s.Names.Table()
	for _, name := range r.UnresolvedNames {
		if hints := table.Suggest(name, 3); len(hints) > 0 {
			if r.Suggestions == nil {
				r.Suggestions = make(map[string][]string)
			}
			r.Suggestions[name] = hints
		}
	}
	return r
}

// Run converts the report to its scrape_runs row
func (r *Report) Run() *store.ScrapeRun {
	run := &store.ScrapeRun{
		RunID:           r.RunID,
		Source:          r.Source,
		Status:          r.Status,
		Records:         r.Records,
		UnresolvedNames: pq.StringArray(nonNil(r.UnresolvedNames)),
		UnresolvedTeams: pq.StringArray(nonNil(r.UnresolvedTeams)),
		Failures:        pq.StringArray(nonNil(r.Failures)),
		StartedAt:       r.StartedAt,
		FinishedAt:      sql.NullTime{Time: r.FinishedAt, Valid: !r.FinishedAt.IsZero()},
	}
	if r.Error != "" {
		run.LastError = sql.NullString{String: r.Error, Valid: true}
	}
	return run
}

// TEXT[] columns are NOT NULL
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
