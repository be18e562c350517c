package ingest

import (
	"testing"
	"time"

	"github.com/fortuna/dfscrape/internal/normalize"
)

func TestSession_Team(t *testing.T) {
	s := NewSession(nil, fixedNow)

	tests := []struct {
		convention normalize.Convention
		label      string
		want       string
		valid      bool
	}{
		{normalize.Mascot, "Trail Blazers", "POR", true},
		{normalize.FullName, "Los Angeles Clippers", "LAC", true},
		{normalize.ShortName, "LA Clippers", "LAC", true},
		{normalize.Code, "BOS", "BOS", true},
		{normalize.Mascot, "Boston Celtics", "", false},
		{normalize.FullName, "Seattle SuperSonics", "", false},
	}
	for _, tt := range tests {
		got := s.Team(tt.convention, tt.label)
		if got.String != tt.want || got.Valid != tt.valid {
			t.Errorf("Team(%s, %q) = %+v, want %q valid=%v", tt.convention, tt.label, got, tt.want, tt.valid)
		}
	}

	want := []string{"Boston Celtics", "Seattle SuperSonics"}
	got := s.UnresolvedTeams()
	if len(got) != len(want) {
		t.Fatalf("UnresolvedTeams() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("UnresolvedTeams()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSession_UnresolvedTeamsOrdered(t *testing.T) {
	s := NewSession(nil, fixedNow)

	s.Team(normalize.Code, "SEA")
	s.Team(normalize.ShortName, "Golden St")
	s.Team(normalize.Mascot, "Sonics")
	s.Team(normalize.ShortName, "SEA")
	s.Team(normalize.Code, "Golden St")
	s.Team(normalize.Mascot, "Lakers")

	want := []string{"SEA", "Golden St", "Sonics"}
	got := s.UnresolvedTeams()
	if len(got) != len(want) {
		t.Fatalf("UnresolvedTeams() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("UnresolvedTeams()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSession_DateAndSalaryFailures(t *testing.T) {
	s := NewSession(nil, fixedNow)

	if d := s.Date("Jan 11", normalize.DateOnly); !d.Valid || d.Time.Day() != 11 || d.Time.Year() != 2019 {
		t.Errorf("Date(Jan 11) = %+v", d)
	}
	if d := s.Date("Dec 30", normalize.DateOnly); !d.Valid || d.Time.Year() != 2018 {
		t.Errorf("Date(Dec 30) = %+v, want previous year", d)
	}
	if d := s.Date("yesterday", normalize.DateOnly); d.Valid {
		t.Errorf("Date(yesterday) = %+v, want invalid", d)
	}
	if v := s.Salary("$8.7K"); !v.Valid || v.Int32 != 8700 {
		t.Errorf("Salary($8.7K) = %+v", v)
	}
	if v := s.Salary("N/A"); v.Valid {
		t.Errorf("Salary(N/A) = %+v, want invalid", v)
	}

	if got := s.Failures(); len(got) != 2 {
		t.Errorf("Failures() = %v, want 2 entries", got)
	}
	if s.Now != fixedNow || s.Dates.ReferenceYear() != 2019 || s.Dates.ReferenceMonth() != time.January {
		t.Errorf("session reference = %v", s.Now)
	}
}
