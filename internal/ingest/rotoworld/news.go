package rotoworld

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/fortuna/dfscrape/internal/fetch"
	"github.com/fortuna/dfscrape/internal/ingest"
	"github.com/fortuna/dfscrape/internal/logger"
	"github.com/fortuna/dfscrape/internal/normalize"
	"github.com/fortuna/dfscrape/internal/store"
)

const (
	// DefaultNewsURL is the player news feed
	DefaultNewsURL = "http://www.rotoworld.com/playernews/nba/basketball-player-news"
	// OlderSelector is the button that loads the next page of older news
	OlderSelector = "#cp1_ctl00_btnNavigate1Bot"
)

// NewsOptions bounds how far back the feed is paged
type NewsOptions struct {
	URL      string
	Lookback time.Duration // items published at or before now-Lookback are dropped
	MaxPages int
}

// NewsSource pages through the news feed until it reaches the lookback threshold
type NewsSource struct {
	opts NewsOptions
	nav  fetch.Navigator
	log  *logger.Logger
}

// NewNewsSource creates a news source rendering pages through nav
func NewNewsSource(opts NewsOptions, nav fetch.Navigator) *NewsSource {
	if opts.URL == "" {
		opts.URL = DefaultNewsURL
	}
	if opts.MaxPages < 1 {
		opts.MaxPages = 1
	}
	return &NewsSource{opts: opts, nav: nav, log: logger.Named("rotoworld")}
}

// Name returns the source name
func (s *NewsSource) Name() string { return store.SourceNews }

// Scrape collects news newer than the lookback threshold
func (s *NewsSource) Scrape(ctx context.Context, sess *ingest.Session) (*ingest.Result, error) {
	threshold := sess.Now.Add(-s.opts.Lookback)
	pager := newNewsPager(threshold, s.opts.MaxPages)

	err := s.nav.Visit(ctx, s.opts.URL, func(page int, body string) ([]string, error) {
		doc, err := ingest.ParseDocument(body)
		if err != nil {
			return nil, err
		}
		items, err := ParseNews(doc, sess)
		if err != nil {
			return nil, fmt.Errorf("news page %d: %w", page+1, err)
		}
		if pager.add(items) {
			return nil, nil
		}
		if (page+1)%5 == 0 {
			s.log.Info().Int("pages", page+1).Int("items", len(pager.items)).Msg("paging news")
		}
		return []string{OlderSelector}, nil
	})
	if err != nil {
		return nil, err
	}
	if pager.truncated {
		s.log.Warn().
			Int("max_pages", s.opts.MaxPages).
			Time("threshold", threshold).
			Msg("hit max pages before reaching the lookback threshold")
	}
	return &ingest.Result{News: pager.items}, nil
}

// newsPager accumulates pages and decides when to stop
type newsPager struct {
	threshold time.Time
	maxPages  int
	pages     int
	items     []*store.NewsItem
	seen      map[string]struct{}
	truncated bool
}

func newNewsPager(threshold time.Time, maxPages int) *newsPager {
	return &newsPager{threshold: threshold, maxPages: maxPages, seen: make(map[string]struct{})}
}

// add appends one page of items and reports whether paging is done. Once the
// earliest dated item is at or before the threshold, every dated item not
// strictly after it is dropped. Undated items are kept; their date failure is
// already on the session.
func (p *newsPager) add(items []*store.NewsItem) bool {
	p.pages++
	for _, n := range items {
		key := newsKey(n)
		if _, dup := p.seen[key]; dup {
			continue
		}
		p.seen[key] = struct{}{}
		p.items = append(p.items, n)
	}

	var earliest time.Time
	for _, n := range p.items {
		if n.PublishedAt.Valid && (earliest.IsZero() || n.PublishedAt.Time.Before(earliest)) {
			earliest = n.PublishedAt.Time
		}
	}

	if !earliest.IsZero() && !earliest.After(p.threshold) {
		kept := p.items[:0]
		for _, n := range p.items {
			if !n.PublishedAt.Valid || n.PublishedAt.Time.After(p.threshold) {
				kept = append(kept, n)
			}
		}
		p.items = kept
		return true
	}
	if p.pages >= p.maxPages {
		p.truncated = true
		return true
	}
	return false
}

// newsKey identifies a blurb across pages. Undated blurbs fall back to the
// report text so distinct ones about the same player survive.
func newsKey(n *store.NewsItem) string {
	if n.PublishedAt.Valid {
		return n.PlayerLink + "|" + n.PublishedAt.Time.UTC().Format(time.RFC3339)
	}
	return n.PlayerLink + "|undated|" + n.Report.String
}

// ParseNews extracts the news blurbs on one page. Team links use mascot names.
func ParseNews(doc *goquery.Document, sess *ingest.Session) ([]*store.NewsItem, error) {
	feed, err := ingest.Require(doc.Selection, "div#RW_main div.RW_playernews.stretch")
	if err != nil {
		return nil, err
	}

	var items []*store.NewsItem
	feed.Find("div.pb").Each(func(_ int, block *goquery.Selection) {
		if n := parseNewsItem(block, sess); n != nil {
			items = append(items, n)
		}
	})
	return items, nil
}

func parseNewsItem(block *goquery.Selection, sess *ingest.Session) *store.NewsItem {
	links := block.Find("div.player a")
	if links.Length() < 2 {
		sess.Fail("news player", ingest.Text(block.Find("div.player").First()),
			fmt.Errorf("found %d player/team links, want 2", links.Length()))
		return nil
	}
	playerLink, teamLink := links.Eq(0), links.Eq(1)
	info := block.Find("div.info").First()

	n := &store.NewsItem{
		Player:      sess.Names.Resolve(ingest.Text(playerLink)),
		PlayerLink:  href(playerLink),
		Team:        sess.Team(normalize.Mascot, ingest.Text(teamLink)),
		TeamLink:    href(teamLink),
		Report:      optionalText(block.Find("div.report").First()),
		Impact:      optionalText(block.Find("div.impact").First()),
		PublishedAt: sess.Date(ingest.Text(info.Find("div.date").First()), normalize.DateTime),
		Related:     relatedPlayers(info.Find("div.related").First(), sess),
		ScrapedAt:   sess.Now,
	}

	if src := block.Find("div.source a").First(); src.Length() > 0 {
		n.Source = sql.NullString{String: ingest.Text(src), Valid: true}
		n.SourceLink = sql.NullString{String: href(src), Valid: true}
	}
	return n
}

// relatedPlayers renders related player links as "name|href;name|href"
func relatedPlayers(sel *goquery.Selection, sess *ingest.Session) sql.NullString {
	if sel.Length() == 0 || ingest.Text(sel) == "" {
		return sql.NullString{}
	}
	var parts []string
	sel.Find("a").Each(func(_ int, a *goquery.Selection) {
		parts = append(parts, sess.Names.Resolve(ingest.Text(a))+"|"+href(a))
	})
	if len(parts) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: strings.Join(parts, ";"), Valid: true}
}

func optionalText(sel *goquery.Selection) sql.NullString {
	if sel.Length() == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: ingest.Text(sel), Valid: true}
}

func href(a *goquery.Selection) string {
	v, _ := a.Attr("href")
	return strings.TrimSpace(v)
}
