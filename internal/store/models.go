package store

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// Source names, shared by scrape_runs, streams and the API
const (
	SourceLineups  = "lineups"
	SourceInjuries = "injuries"
	SourceNews     = "news"
	SourceOdds     = "odds"
)

// Sources lists every scrapeable source in a stable order
var Sources = []string{SourceLineups, SourceInjuries, SourceNews, SourceOdds}

// IsSource reports whether name is a known source
func IsSource(name string) bool {
	for _, s := range Sources {
		if s == name {
			return true
		}
	}
	return false
}

// Run statuses
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Lineup is one projected starter with DFS salaries
type Lineup struct {
	ID               int64          `json:"id" db:"id"`
	RunID            string         `json:"run_id" db:"run_id"`
	Name             string         `json:"name" db:"name"`
	Team             sql.NullString `json:"team,omitempty" db:"team"`
	Position         string         `json:"position" db:"position"`
	FanDuelSalary    sql.NullInt32  `json:"fanduel_salary,omitempty" db:"fanduel_salary"`
	DraftKingsSalary sql.NullInt32  `json:"draftkings_salary,omitempty" db:"draftkings_salary"`
	ScrapedAt        time.Time      `json:"scraped_at" db:"scraped_at"`
}

// Injury is one row of the league injury report
type Injury struct {
	ID         int64          `json:"id" db:"id"`
	RunID      string         `json:"run_id" db:"run_id"`
	Player     string         `json:"player" db:"player"`
	Team       sql.NullString `json:"team,omitempty" db:"team"`
	PID        sql.NullInt64  `json:"pid,omitempty" db:"pid"`
	Status     string         `json:"status" db:"status"`
	Injury     string         `json:"injury" db:"injury"`
	Report     string         `json:"report" db:"report"`
	Returns    string         `json:"returns" db:"returns"`
	StartDate  sql.NullTime   `json:"start_date,omitempty" db:"start_date"`
	ReportDate sql.NullTime   `json:"report_date,omitempty" db:"report_date"`
	ScrapedAt  time.Time      `json:"scraped_at" db:"scraped_at"`
}

// NewsItem is one player news blurb
type NewsItem struct {
	ID          int64          `json:"id" db:"id"`
	RunID       string         `json:"run_id" db:"run_id"`
	Player      string         `json:"player" db:"player"`
	PlayerLink  string         `json:"player_link" db:"player_link"`
	Team        sql.NullString `json:"team,omitempty" db:"team"`
	TeamLink    string         `json:"team_link" db:"team_link"`
	Report      sql.NullString `json:"report,omitempty" db:"report"`
	Impact      sql.NullString `json:"impact,omitempty" db:"impact"`
	PublishedAt sql.NullTime   `json:"published_at,omitempty" db:"published_at"`
	Source      sql.NullString `json:"source,omitempty" db:"source"`
	SourceLink  sql.NullString `json:"source_link,omitempty" db:"source_link"`
	Related     sql.NullString `json:"related,omitempty" db:"related"` // "name|href;name|href"
	ScrapedAt   time.Time      `json:"scraped_at" db:"scraped_at"`
}

// OddsLine is one team's side of a game line
type OddsLine struct {
	ID            int64           `json:"id" db:"id"`
	RunID         string          `json:"run_id" db:"run_id"`
	Team          sql.NullString  `json:"team,omitempty" db:"team"`
	Opponent      sql.NullString  `json:"opponent,omitempty" db:"opponent"`
	Total         sql.NullFloat64 `json:"total,omitempty" db:"total"`
	Spread        sql.NullFloat64 `json:"spread,omitempty" db:"spread"`
	ImpliedPoints sql.NullFloat64 `json:"implied_points,omitempty" db:"implied_points"`
	ScrapedAt     time.Time       `json:"scraped_at" db:"scraped_at"`
}

// PlayerAlias maps a spelling seen on a source to the canonical player name
type PlayerAlias struct {
	Alias     string    `json:"alias" db:"alias"`
	Canonical string    `json:"canonical" db:"canonical"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ScrapeRun records one scrape of one source and the data-quality gaps it left
type ScrapeRun struct {
	RunID           string         `json:"run_id" db:"run_id"`
	Source          string         `json:"source" db:"source"`
	Status          string         `json:"status" db:"status"`
	Records         int            `json:"records" db:"records"`
	UnresolvedNames pq.StringArray `json:"unresolved_names" db:"unresolved_names"`
	UnresolvedTeams pq.StringArray `json:"unresolved_teams" db:"unresolved_teams"`
	Failures        pq.StringArray `json:"failures" db:"failures"`
	LastError       sql.NullString `json:"last_error,omitempty" db:"last_error"`
	StartedAt       time.Time      `json:"started_at" db:"started_at"`
	FinishedAt      sql.NullTime   `json:"finished_at,omitempty" db:"finished_at"`
}
