// Package dailylineups scrapes projected starters and DFS salaries from
// dailynbalineups.com.
package dailylineups

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/fortuna/dfscrape/internal/fetch"
	"github.com/fortuna/dfscrape/internal/ingest"
	"github.com/fortuna/dfscrape/internal/normalize"
	"github.com/fortuna/dfscrape/internal/store"
)

// DefaultURL is the page listing today's games
const DefaultURL = "https://dailynbalineups.com/"

// Source fetches the static lineups page
type Source struct {
	url     string
	fetcher fetch.Fetcher
}

// New creates a lineups source reading url through f
func New(url string, f fetch.Fetcher) *Source {
	if url == "" {
		url = DefaultURL
	}
	return &Source{url: url, fetcher: f}
}

// Name returns the source name
func (s *Source) Name() string { return store.SourceLineups }

// Scrape fetches and parses today's starters
func (s *Source) Scrape(ctx context.Context, sess *ingest.Session) (*ingest.Result, error) {
	body, err := s.fetcher.Fetch(ctx, s.url)
	if err != nil {
		return nil, err
	}
	doc, err := ingest.ParseDocument(body)
	if err != nil {
		return nil, err
	}
	lineups, err := Parse(doc, sess)
	if err != nil {
		return nil, err
	}
	return &ingest.Result{Lineups: lineups}, nil
}

// Parse extracts starters per game. The away team's table comes first and the
// first salary link is FanDuel's, the second DraftKings'.
func Parse(doc *goquery.Document, sess *ingest.Session) ([]*store.Lineup, error) {
	today, err := ingest.Require(doc.Selection, "div#sdns_today")
	if err != nil {
		return nil, err
	}

	var lineups []*store.Lineup
	today.Find("div.sdns_match").Each(func(_ int, match *goquery.Selection) {
		away := ingest.Text(match.Find("div.sdns_team.away_team span").First())
		home := ingest.Text(match.Find("div.sdns_team.home_team span").First())

		tables := match.Find("div.sdns_match_wrapper table.table-fill.table-match")
		if tables.Length() < 2 {
			sess.Fail("match", away+" @ "+home, fmt.Errorf("found %d team tables, want 2", tables.Length()))
			return
		}

		for i, label := range []string{away, home} {
			team := sess.Team(normalize.Mascot, label)
			tables.Eq(i).Find("tbody td").Each(func(_ int, td *goquery.Selection) {
				l := &store.Lineup{
					Name:      sess.Names.Resolve(ingest.Text(td.Find("a.sdns_player_data").First())),
					Team:      team,
					Position:  ingest.Text(td.Find("span.pos").First()),
					ScrapedAt: sess.Now,
				}
				salaries := td.Find("a.sal")
				if salaries.Length() > 0 {
					l.FanDuelSalary = sess.Salary(ingest.Text(salaries.Eq(0)))
				}
				if salaries.Length() > 1 {
					l.DraftKingsSalary = sess.Salary(ingest.Text(salaries.Eq(1)))
				}
				lineups = append(lineups, l)
			})
		}
	})
	return lineups, nil
}
