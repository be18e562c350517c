package scheduler

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/fortuna/dfscrape/internal/ingest"
)

type fakeRunner struct {
	mu    sync.Mutex
	calls map[string]int
	ran   chan string
}

func (f *fakeRunner) Sources() []string {
	return []string{"lineups", "injuries", "news", "odds"}
}

func (f *fakeRunner) Run(ctx context.Context, name string) (*ingest.Report, error) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
	select {
	case f.ran <- name:
	default:
	}
	return &ingest.Report{Source: name}, nil
}

func TestScheduler_StartsScheduledSources(t *testing.T) {
	runner := &fakeRunner{calls: map[string]int{}, ran: make(chan string, 8)}
	intervals := map[string]time.Duration{"lineups": time.Hour, "odds": time.Hour}

	s, err := New(runner, func(source string) time.Duration { return intervals[source] }, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer s.Stop()

	if got, want := s.Jobs(), []string{"lineups", "odds"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Jobs() = %v, want %v", got, want)
	}

	seen := map[string]bool{}
	timeout := time.After(5 * time.Second)
	for len(seen) < 2 {
		select {
		case name := <-runner.ran:
			seen[name] = true
		case <-timeout:
			t.Fatalf("immediate runs seen = %v, want lineups and odds", seen)
		}
	}
	if seen["news"] || seen["injuries"] {
		t.Errorf("unscheduled source ran: %v", seen)
	}
}
