package dailylineups

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fortuna/dfscrape/internal/ingest"
	"github.com/fortuna/dfscrape/internal/normalize"
)

const page = `<html><body>
<div id="sdns_today">
  <div class="sdns_match">
    <div class="sdns_team away_team"><span>Rockets</span></div>
    <div class="sdns_team home_team"><span>Trail Blazers</span></div>
    <div class="sdns_match_wrapper">
      <table class="table-fill table-match"><tbody>
        <tr><td><a class="sdns_player_data">Nene Hilario</a> <span class="pos">C</span>
          <a class="sal">$4.1K</a><a class="sal">$3.6K</a></td></tr>
        <tr><td><a class="sdns_player_data">Chris Paul</a> <span class="pos">PG</span>
          <a class="sal">$9.2K</a></td></tr>
      </tbody></table>
      <table class="table-fill table-match"><tbody>
        <tr><td><a class="sdns_player_data">Damian Lillard</a> <span class="pos">PG</span>
          <a class="sal">TBD</a><a class="sal">$10.1K</a></td></tr>
      </tbody></table>
    </div>
  </div>
  <div class="sdns_match">
    <div class="sdns_team away_team"><span>Sonics</span></div>
    <div class="sdns_team home_team"><span>Celtics</span></div>
    <div class="sdns_match_wrapper">
      <table class="table-fill table-match"><tbody>
        <tr><td><a class="sdns_player_data">Zzyzx Unknownson</a> <span class="pos">SF</span></td></tr>
      </tbody></table>
    </div>
  </div>
</div>
</body></html>`

var now = time.Date(2019, time.January, 15, 12, 0, 0, 0, time.UTC)

func newSession(t *testing.T) *ingest.Session {
	t.Helper()
	table, err := normalize.DefaultNameTable(nil)
	if err != nil {
		t.Fatal(err)
	}
	return ingest.NewSession(table, now)
}

func TestParse(t *testing.T) {
	doc, err := ingest.ParseDocument(page)
	if err != nil {
		t.Fatal(err)
	}
	sess := newSession(t)

	lineups, err := Parse(doc, sess)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(lineups) != 3 {
		t.Fatalf("Parse() returned %d rows, want 3", len(lineups))
	}

	tests := []struct {
		name, team, pos string
		fd, dk          int32
		fdOK, dkOK      bool
	}{
		{"Nene", "HOU", "C", 4100, 3600, true, true},
		{"Chris Paul", "HOU", "PG", 9200, 0, true, false},
		{"Damian Lillard", "POR", "PG", 0, 10100, false, true},
	}
	for i, tt := range tests {
		l := lineups[i]
		if l.Name != tt.name || l.Team.String != tt.team || l.Position != tt.pos {
			t.Errorf("row %d = %s/%s/%s, want %s/%s/%s", i, l.Name, l.Team.String, l.Position, tt.name, tt.team, tt.pos)
		}
		if l.FanDuelSalary.Valid != tt.fdOK || l.FanDuelSalary.Int32 != tt.fd {
			t.Errorf("row %d FanDuel = %+v, want %d", i, l.FanDuelSalary, tt.fd)
		}
		if l.DraftKingsSalary.Valid != tt.dkOK || l.DraftKingsSalary.Int32 != tt.dk {
			t.Errorf("row %d DraftKings = %+v, want %d", i, l.DraftKingsSalary, tt.dk)
		}
		if !l.ScrapedAt.Equal(now) {
			t.Errorf("row %d ScrapedAt = %v", i, l.ScrapedAt)
		}
	}

	// "TBD" salary and the one-table match
	if got := sess.Failures(); len(got) != 2 {
		t.Errorf("Failures() = %v, want 2", got)
	}
	if got := sess.UnresolvedTeams(); len(got) != 0 {
		t.Errorf("UnresolvedTeams() = %v, want none (broken match skipped)", got)
	}
}

func TestParse_MissingContainer(t *testing.T) {
	doc, _ := ingest.ParseDocument(`<html><body><p>maintenance</p></body></html>`)
	if _, err := Parse(doc, newSession(t)); err == nil {
		t.Error("Parse() error = nil, want missing container error")
	}
}

type stubFetcher struct {
	body string
	err  error
	url  string
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.url = url
	return f.body, f.err
}

func TestSource_Scrape(t *testing.T) {
	f := &stubFetcher{body: page}
	src := New("", f)

	res, err := src.Scrape(context.Background(), newSession(t))
	if err != nil {
		t.Fatalf("Scrape() error = %v", err)
	}
	if f.url != DefaultURL {
		t.Errorf("fetched %q, want %q", f.url, DefaultURL)
	}
	if len(res.Lineups) != 3 || res.Len() != 3 {
		t.Errorf("Scrape() returned %d lineups", len(res.Lineups))
	}

	f.err = errors.New("timeout")
	if _, err := src.Scrape(context.Background(), newSession(t)); err == nil {
		t.Error("Scrape() error = nil on fetch failure")
	}
}
