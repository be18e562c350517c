// Package rotoworld scrapes the league injury report and the player news feed
// from rotoworld.com. Both pages render client side and are read through a
// browser.
package rotoworld

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

// DefaultInjuriesURL is the league-wide injury report
const DefaultInjuriesURL = "http://www.rotoworld.com/teams/injuries/nba/all/"

// InjurySource reads the injury report, one table per team
type InjurySource struct {
	url string
	nav fetch.Navigator
}

// NewInjurySource creates an injury source rendering url through nav
func NewInjurySource(url string, nav fetch.Navigator) *InjurySource {
	if url == "" {
		url = DefaultInjuriesURL
	}
	return &InjurySource{url: url, nav: nav}
}

// Name returns the source name
func (s *InjurySource) Name() string { return store.SourceInjuries }

// Scrape renders the report and parses every team table
func (s *InjurySource) Scrape(ctx context.Context, sess *ingest.Session) (*ingest.Result, error) {
	var injuries []*store.Injury
	err := s.nav.Visit(ctx, s.url, func(_ int, body string) ([]string, error) {
		doc, err := ingest.ParseDocument(body)
		if err != nil {
			return nil, err
		}
		injuries, err = ParseInjuries(doc, sess)
		return nil, err
	})
	if err != nil {
		return nil, err
	}
	return &ingest.Result{Injuries: injuries}, nil
}

// ParseInjuries extracts injury rows. Team headlines use full names; the first
// row of each table holds column headers.
func ParseInjuries(doc *goquery.Document, sess *ingest.Session) ([]*store.Injury, error) {
	panel, err := ingest.Require(doc.Selection, "div#cp1_pnlInjuries")
	if err != nil {
		return nil, err
	}

	var injuries []*store.Injury
	panel.Find("div.pb").Each(func(_ int, block *goquery.Selection) {
		team := sess.Team(normalize.FullName, ingest.Text(block.Find("div.headline a").First()))

		block.Find("tbody tr").Each(func(i int, tr *goquery.Selection) {
			if i == 0 {
				return
			}
			if inj := parseInjuryRow(tr, team, sess); inj != nil {
				injuries = append(injuries, inj)
			}
		})
	})
	return injuries, nil
}

func parseInjuryRow(tr *goquery.Selection, team sql.NullString, sess *ingest.Session) *store.Injury {
	cells := tr.ChildrenFiltered("td")
	player := ingest.Text(cells.Eq(0).Find("a").First())
	if cells.Length() < 5 {
		sess.Fail("injury row", player, fmt.Errorf("found %d cells, want 5", cells.Length()))
		return nil
	}

	card := cells.Eq(1).Find("div.playercard").First()
	inj := &store.Injury{
		Player:     sess.Names.Resolve(player),
		Team:       team,
		Status:     ingest.Text(cells.Eq(3)),
		Injury:     ingest.Text(card.Find("span").First()),
		Report:     ingest.Text(card.Find("div.report").First()),
		Returns:    ingest.Text(card.Find("div.impact").First()),
		StartDate:  sess.Date(ingest.Text(cells.Eq(4)), normalize.DateOnly),
		ReportDate: sess.Date(ingest.Text(card.Find("div.date").First()), normalize.DateOnly),
		ScrapedAt:  sess.Now,
	}

	if id, ok := card.Attr("id"); ok {
		pid, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		if err != nil {
			sess.Fail("player id", id, err)
		} else {
			inj.PID = sql.NullInt64{Int64: pid, Valid: true}
		}
	}
	return inj
}
