package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHTTPClient_Fetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte("<html><body>lineups</body></html>"))
		case "/empty":
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewHTTPClient(5 * time.Second)

	body, err := c.Fetch(context.Background(), srv.URL+"/ok")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !strings.Contains(body, "lineups") {
		t.Errorf("Fetch() body = %q", body)
	}
	if gotUA != UserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, UserAgent)
	}

	if _, err := c.Fetch(context.Background(), srv.URL+"/missing"); err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("Fetch(404) error = %v, want status error", err)
	}
	if _, err := c.Fetch(context.Background(), srv.URL+"/empty"); err == nil {
		t.Error("Fetch(empty) error = nil, want error")
	}
}

type countingFetcher struct {
	calls int
	body  string
	err   error
}

func (f *countingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.calls++
	return f.body, f.err
}

type mapCache struct {
	data   map[string]string
	ttls   map[string]time.Duration
	setErr error
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *mapCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", errors.New("miss")
	}
	return v, nil
}

func (m *mapCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func TestCached_Fetch(t *testing.T) {
	next := &countingFetcher{body: "<html/>"}
	cache := newMapCache()
	c := NewCached(next, cache, time.Minute)

	for i := 0; i < 3; i++ {
		body, err := c.Fetch(context.Background(), "http://example.test/a")
		if err != nil || body != "<html/>" {
			t.Fatalf("Fetch() = %q, %v", body, err)
		}
	}
	if next.calls != 1 {
		t.Errorf("underlying fetches = %d, want 1", next.calls)
	}
	if cache.ttls["page:http://example.test/a"] != time.Minute {
		t.Errorf("cached ttl = %v, want 1m", cache.ttls["page:http://example.test/a"])
	}
}

func TestCached_Disabled(t *testing.T) {
	next := &countingFetcher{body: "x"}
	c := NewCached(next, nil, time.Minute)
	c.Fetch(context.Background(), "u")
	c.Fetch(context.Background(), "u")
	if next.calls != 2 {
		t.Errorf("underlying fetches = %d, want 2", next.calls)
	}
}

func TestCached_ErrorsNotCached(t *testing.T) {
	next := &countingFetcher{err: errors.New("boom")}
	cache := newMapCache()
	c := NewCached(next, cache, time.Minute)

	if _, err := c.Fetch(context.Background(), "u"); err == nil {
		t.Fatal("Fetch() error = nil, want boom")
	}
	if len(cache.data) != 0 {
		t.Errorf("cache holds %d entries after failed fetch", len(cache.data))
	}
}

func TestCached_SetFailureIgnored(t *testing.T) {
	next := &countingFetcher{body: "x"}
	cache := newMapCache()
	cache.setErr = errors.New("redis down")
	c := NewCached(next, cache, time.Minute)

	if body, err := c.Fetch(context.Background(), "u"); err != nil || body != "x" {
		t.Errorf("Fetch() = %q, %v, want body despite cache failure", body, err)
	}
}
