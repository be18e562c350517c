// Package oddsshark scrapes opening spreads and totals for today's games from
// oddsshark.com.
package oddsshark

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fortuna/dfscrape/internal/fetch"
	"github.com/fortuna/dfscrape/internal/ingest"
	"github.com/fortuna/dfscrape/internal/normalize"
	"github.com/fortuna/dfscrape/internal/store"
)

// DefaultURL is the NBA odds grid
const DefaultURL = "http://www.oddsshark.com/nba/odds"

// Clicks that switch the grid from spreads to totals
const (
	CustomizeSelector = "#op-sticky-header-wrapper > div.op-customization-wrapper > div > a"
	TotalsSelector    = "#op-sticky-header-wrapper > div.op-customization-wrapper > div > ul > li:nth-child(3) > a"
)

// Matchup is one game as listed in the left column
type Matchup struct {
	Top    string
	Bottom string
}

// Source renders the odds grid twice, once per view
type Source struct {
	url string
	nav fetch.Navigator
}

// New creates an odds source rendering url through nav
func New(url string, nav fetch.Navigator) *Source {
	if url == "" {
		url = DefaultURL
	}
	return &Source{url: url, nav: nav}
}

// Name returns the source name
func (s *Source) Name() string { return store.SourceOdds }

// Scrape reads matchups and spreads from the default view, then switches to
// the totals view
func (s *Source) Scrape(ctx context.Context, sess *ingest.Session) (*ingest.Result, error) {
	var (
		matchups []Matchup
		spreads  []sql.NullFloat64
		totals   []sql.NullFloat64
	)
	err := s.nav.Visit(ctx, s.url, func(page int, body string) ([]string, error) {
		doc, err := ingest.ParseDocument(body)
		if err != nil {
			return nil, err
		}
		switch page {
		case 0:
			if matchups, err = ParseMatchups(doc); err != nil {
				return nil, err
			}
			if spreads, err = ParseOpening(doc, sess, "spread", spreadValue); err != nil {
				return nil, err
			}
			return []string{CustomizeSelector, TotalsSelector}, nil
		default:
			totals, err = ParseOpening(doc, sess, "total", totalValue)
			return nil, err
		}
	})
	if err != nil {
		return nil, err
	}
	return &ingest.Result{Odds: Lines(sess, matchups, spreads, totals)}, nil
}

// ParseMatchups lists the games in page order
func ParseMatchups(doc *goquery.Document) ([]Matchup, error) {
	column, err := ingest.Require(doc.Selection, "div.op-left-column-wrapper")
	if err != nil {
		return nil, err
	}
	var matchups []Matchup
	column.Find("div.op-matchup-wrapper.basketball").Each(func(_ int, m *goquery.Selection) {
		matchups = append(matchups, Matchup{
			Top:    ingest.Text(m.Find("div.op-matchup-team.op-matchup-text.op-team-top a").First()),
			Bottom: ingest.Text(m.Find("div.op-matchup-team.op-matchup-text.op-team-bottom a").First()),
		})
	})
	return matchups, nil
}

// ParseOpening reads the top opening number of every game row. Cells that do
// not parse come back null; non-empty ones are recorded as failures.
func ParseOpening(doc *goquery.Document, sess *ingest.Session, field string, parse func(string) (float64, error)) ([]sql.NullFloat64, error) {
	results, err := ingest.Require(doc.Selection, "div#op-results")
	if err != nil {
		return nil, err
	}
	var values []sql.NullFloat64
	results.Find("div.op-item-row-wrapper.not-futures").Each(func(_ int, row *goquery.Selection) {
		text := ingest.Text(row.Find("div.op-item.op-spread.border-bottom.op-opening").First())
		v, err := parse(text)
		if err != nil {
			if text != "" {
				sess.Fail(field, text, err)
			}
			values = append(values, sql.NullFloat64{})
			return
		}
		values = append(values, sql.NullFloat64{Float64: v, Valid: true})
	})
	return values, nil
}

func spreadValue(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

var overUnder = strings.NewReplacer("o", "", "u", "")

// totalValue strips the over/under markers, e.g. "o215.5"
func totalValue(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(overUnder.Replace(s)), 64)
}

// Lines emits two rows per matchup, one from each side. The bottom team's
// spread is the top team's negated and both share the total. Labels are
// converted to codes when most of them are short names.
func Lines(sess *ingest.Session, matchups []Matchup, spreads, totals []sql.NullFloat64) []*store.OddsLine {
	labels := make([]string, 0, 2*len(matchups))
	for _, m := range matchups {
		labels = append(labels, m.Top, m.Bottom)
	}
	convention := normalize.DetectConvention(labels, normalize.ShortName, normalize.Code)

	if len(spreads) != len(matchups) || len(totals) != len(matchups) {
		sess.Fail("odds rows", fmt.Sprintf("%d matchups", len(matchups)),
			fmt.Errorf("found %d spreads and %d totals", len(spreads), len(totals)))
	}

	lines := make([]*store.OddsLine, 0, 2*len(matchups))
	for i, m := range matchups {
		spread := at(spreads, i)
		total := at(totals, i)
		top := sess.Team(convention, m.Top)
		bottom := sess.Team(convention, m.Bottom)

		opp := sql.NullFloat64{}
		if spread.Valid {
			opp = sql.NullFloat64{Float64: -spread.Float64, Valid: true}
		}

		lines = append(lines,
			line(sess, top, bottom, total, spread),
			line(sess, bottom, top, total, opp),
		)
	}
	return lines
}

func line(sess *ingest.Session, team, opp sql.NullString, total, spread sql.NullFloat64) *store.OddsLine {
	return &store.OddsLine{
		Team:          team,
		Opponent:      opp,
		Total:         total,
		Spread:        spread,
		ImpliedPoints: ImpliedPoints(total, spread),
		ScrapedAt:     sess.Now,
	}
}

// ImpliedPoints is a team's expected score: half the total minus half its spread
func ImpliedPoints(total, spread sql.NullFloat64) sql.NullFloat64 {
	if !total.Valid || !spread.Valid {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: total.Float64/2 - spread.Float64/2, Valid: true}
}

func at(values []sql.NullFloat64, i int) sql.NullFloat64 {
	if i < len(values) {
		return values[i]
	}
	return sql.NullFloat64{}
}
