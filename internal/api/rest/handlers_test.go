package rest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fortuna/dfscrape/internal/ingest"
	"github.com/fortuna/dfscrape/internal/store"
	"github.com/fortuna/dfscrape/internal/store/repository"
)

type fakeStore struct {
	team     string
	since    time.Time
	limit    int
	source   string
	pingErr  error
	queryErr error

	runLookups int
}

func (f *fakeStore) LatestLineups(ctx context.Context, team string) ([]*store.Lineup, error) {
	f.team = team
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return []*store.Lineup{{Name: "Nene", Team: sql.NullString{String: "HOU", Valid: true}, Position: "C"}}, nil
}

func (f *fakeStore) LatestInjuries(ctx context.Context, team string) ([]*store.Injury, error) {
	f.team = team
	return nil, f.queryErr
}

func (f *fakeStore) RecentNews(ctx context.Context, since time.Time, limit int) ([]*store.NewsItem, error) {
	f.since, f.limit = since, limit
	return []*store.NewsItem{{Player: "Nene"}}, nil
}

func (f *fakeStore) LatestOdds(ctx context.Context) ([]*store.OddsLine, error) {
	return []*store.OddsLine{{Team: sql.NullString{String: "HOU", Valid: true}}}, nil
}

func (f *fakeStore) RecentRuns(ctx context.Context, source string, limit int) ([]*store.ScrapeRun, error) {
	f.source, f.limit = source, limit
	return []*store.ScrapeRun{{RunID: "r1", Source: "odds"}}, nil
}

const knownRunID = "6f1c2b9e-3d4a-4c8e-9b7f-0a1d2e3f4a5b"

func (f *fakeStore) GetRun(ctx context.Context, runID string) (*store.ScrapeRun, error) {
	f.runLookups++
	if runID != knownRunID {
		return nil, fmt.Errorf("%w: %s", repository.ErrRunNotFound, runID)
	}
	return &store.ScrapeRun{RunID: knownRunID, Source: "odds"}, nil
}

func (f *fakeStore) HealthCheck(ctx context.Context) error { return f.pingErr }

type fakeTrigger struct {
	ran  chan string
	err  error
	busy bool
}

func (f *fakeTrigger) Sources() []string { return []string{"lineups", "odds"} }

func (f *fakeTrigger) Run(ctx context.Context, name string) (*ingest.Report, error) {
	if f.busy {
		return nil, ingest.ErrRunInProgress
	}
	if f.ran != nil {
		f.ran <- name
	}
	report := &ingest.Report{RunID: "r1", Source: name, Status: store.RunStatusCompleted}
	if f.err != nil {
		report.Status = store.RunStatusFailed
		return report, f.err
	}
	return report, nil
}

func newTestRouter(s *fakeStore, tr *fakeTrigger) http.Handler {
	return NewRouter(NewHandler(s), NewScrapeHandler(context.Background(), tr))
}

func do(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestHealthCheck(t *testing.T) {
	s := &fakeStore{}
	h := newTestRouter(s, &fakeTrigger{})

	if rec := do(h, "GET", "/health"); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "healthy") {
		t.Errorf("GET /health = %d %s", rec.Code, rec.Body)
	}
	s.pingErr = errors.New("db down")
	if rec := do(h, "GET", "/health"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("GET /health with db down = %d, want 503", rec.Code)
	}
}

func TestReadEndpoints(t *testing.T) {
	s := &fakeStore{}
	h := newTestRouter(s, &fakeTrigger{})

	tests := []struct {
		target   string
		wantCode int
		wantBody string
	}{
		{"/api/v1/lineups", http.StatusOK, `"name":"Nene"`},
		{"/api/v1/lineups?team=hou", http.StatusOK, `"position":"C"`},
		{"/api/v1/lineups?team=XYZ", http.StatusBadRequest, "Unknown team code"},
		{"/api/v1/injuries", http.StatusOK, `[]`},
		{"/api/v1/news?hours=6&limit=10", http.StatusOK, `"player":"Nene"`},
		{"/api/v1/odds", http.StatusOK, `"String":"HOU"`},
		{"/api/v1/runs?source=odds", http.StatusOK, `"run_id":"r1"`},
		{"/api/v1/runs?source=weather", http.StatusBadRequest, "Unknown source"},
		{"/api/v1/runs/" + knownRunID, http.StatusOK, `"source":"odds"`},
		{"/api/v1/runs/0b9d7c1e-0000-4000-8000-000000000000", http.StatusNotFound, "Run not found"},
		{"/api/v1/runs/nope", http.StatusNotFound, "Run not found"},
		{"/api/v1/teams", http.StatusOK, `"code":"LAC"`},
		{"/api/v1/teams?convention=short_name", http.StatusOK, `"LAC":"LA Clippers"`},
		{"/api/v1/teams?convention=nickname", http.StatusBadRequest, "Unknown convention"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := do(h, "GET", tt.target)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.wantCode, rec.Body)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %s, want it to contain %s", rec.Body, tt.wantBody)
			}
		})
	}

	do(h, "GET", "/api/v1/lineups?team=hou")
	if s.team != "HOU" {
		t.Errorf("team filter = %q, want HOU", s.team)
	}
	do(h, "GET", "/api/v1/news?hours=6&limit=10")
	if s.limit != 10 || time.Since(s.since) < 6*time.Hour-time.Minute {
		t.Errorf("news since=%v limit=%d", s.since, s.limit)
	}
}

func TestGetRun_MalformedIDSkipsStore(t *testing.T) {
	s := &fakeStore{}
	h := newTestRouter(s, &fakeTrigger{})

	for _, id := range []string{"nope", "12345", "6f1c2b9e-3d4a-4c8e"} {
		rec := do(h, "GET", "/api/v1/runs/"+id)
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET runs/%s = %d, want 404", id, rec.Code)
		}
	}
	if s.runLookups != 0 {
		t.Errorf("store queried %d times for malformed run IDs", s.runLookups)
	}
}

func TestReadEndpoints_StoreError(t *testing.T) {
	h := newTestRouter(&fakeStore{queryErr: errors.New("boom")}, &fakeTrigger{})
	rec := do(h, "GET", "/api/v1/lineups")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["details"] != "boom" {
		t.Errorf("error body = %s", rec.Body)
	}
}

func TestHandleScrape(t *testing.T) {
	tr := &fakeTrigger{ran: make(chan string, 1)}
	h := newTestRouter(&fakeStore{}, tr)

	rec := do(h, "POST", "/api/v1/scrape/odds")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("POST scrape = %d, want 202", rec.Code)
	}
	select {
	case name := <-tr.ran:
		if name != "odds" {
			t.Errorf("ran %q, want odds", name)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("background scrape never ran")
	}

	tr.ran = nil
	if rec := do(h, "POST", "/api/v1/scrape/weather"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown source = %d, want 404", rec.Code)
	}
	if rec := do(h, "POST", "/api/v1/scrape/lineups?wait=true"); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"completed"`) {
		t.Errorf("wait=true = %d %s", rec.Code, rec.Body)
	}

	tr.err = errors.New("layout changed")
	if rec := do(h, "POST", "/api/v1/scrape/lineups?wait=true"); rec.Code != http.StatusBadGateway || !strings.Contains(rec.Body.String(), `"status":"failed"`) {
		t.Errorf("failed run = %d %s", rec.Code, rec.Body)
	}

	tr.busy = true
	if rec := do(h, "POST", "/api/v1/scrape/lineups?wait=true"); rec.Code != http.StatusConflict {
		t.Errorf("busy = %d, want 409", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := newTestRouter(&fakeStore{}, &fakeTrigger{})
	rec := do(h, "OPTIONS", "/api/v1/scrape/odds")
	if rec.Code != http.StatusNoContent || rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("preflight = %d %v", rec.Code, rec.Header())
	}
}
