package ingest

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/fortuna/dfscrape/internal/normalize"
)

// Session carries the resolvers for a single scrape run. Unresolved names,
// unresolved team labels and malformed inputs accumulate here for the run
// report. A session is used by one goroutine.
type Session struct {
	Names *normalize.NameResolver
	Dates *normalize.DateResolver
	Now   time.Time

	teams      map[normalize.Convention]*normalize.TeamResolver
	teamMisses []string
	seenMisses map[string]struct{}
	failures   []string
}

// NewSession starts a session over table with now as the date reference
func NewSession(table *normalize.NameTable, now time.Time) *Session {
	return &Session{
		Names: normalize.NewNameResolver(table),
		Dates: normalize.NewDateResolver(now),
		Now:   now,
		teams:      make(map[normalize.Convention]*normalize.TeamResolver),
		seenMisses: make(map[string]struct{}),
	}
}

// Team converts a label in the source convention to an NBA code. Misses come
// back invalid and are remembered by the session.
func (s *Session) Team(source normalize.Convention, label string) sql.NullString {
	r, ok := s.teams[source]
	if !ok {
		var err error
		r, err = normalize.NewTeamResolver(source, normalize.Code)
		if err != nil {
			s.Fail("team", label, err)
			return sql.NullString{}
		}
		s.teams[source] = r
	}
	code, ok := r.Resolve(label)
	if !ok {
		if _, dup := s.seenMisses[label]; !dup {
			s.seenMisses[label] = struct{}{}
			s.teamMisses = append(s.teamMisses, label)
		}
	}
	return sql.NullString{String: code, Valid: ok}
}

// Date resolves desc with layout. Failures come back invalid and are recorded.
func (s *Session) Date(desc string, layout normalize.Layout) sql.NullTime {
	t, err := s.Dates.ResolveAs(desc, layout)
	if err != nil {
		s.failures = append(s.failures, err.Error())
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

// Salary decodes shorthand like "$8.7K". Failures come back invalid and are recorded.
func (s *Session) Salary(shorthand string) sql.NullInt32 {
	v, err := normalize.DecodeSalary(shorthand)
	if err != nil {
		s.failures = append(s.failures, err.Error())
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(v), Valid: true}
}

// Fail records an input the source could not interpret
func (s *Session) Fail(field, input string, err error) {
	s.failures = append(s.failures, fmt.Sprintf("%s %q: %v", field, input, err))
}

// UnresolvedTeams returns every team label that missed, in first-seen order
// and without repeats, whatever convention it was looked up in
func (s *Session) UnresolvedTeams() []string {
	out := make([]string, len(s.teamMisses))
	copy(out, s.teamMisses)
	return out
}

// Failures returns the malformed-input messages in the order they happened
func (s *Session) Failures() []string {
	out := make([]string, len(s.failures))
	copy(out, s.failures)
	return out
}
