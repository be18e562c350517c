package rotoworld

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fortuna/dfscrape/internal/fetch"
	"github.com/fortuna/dfscrape/internal/ingest"
	"github.com/fortuna/dfscrape/internal/normalize"
)

var now = time.Date(2019, time.January, 15, 12, 0, 0, 0, time.UTC)

func newSession(t *testing.T) *ingest.Session {
	t.Helper()
	table, err := normalize.DefaultNameTable(nil)
	if err != nil {
		t.Fatal(err)
	}
	return ingest.NewSession(table, now)
}

// fakeNavigator serves canned pages and records the clicks requested between them
type fakeNavigator struct {
	pages  []string
	url    string
	clicks [][]string
}

func (f *fakeNavigator) Visit(ctx context.Context, url string, fn fetch.PageFunc) error {
	f.url = url
	for i := 0; ; i++ {
		if i >= len(f.pages) {
			return fmt.Errorf("no page %d", i)
		}
		clicks, err := fn(i, f.pages[i])
		if err != nil {
			return err
		}
		if len(clicks) == 0 {
			return nil
		}
		f.clicks = append(f.clicks, clicks)
	}
}
