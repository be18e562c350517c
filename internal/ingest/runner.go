package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fortuna/dfscrape/internal/logger"
	"github.com/fortuna/dfscrape/internal/normalize"
	"github.com/fortuna/dfscrape/internal/store"
)

var (
	// ErrUnknownSource is returned for a source name that was never registered
	ErrUnknownSource = errors.New("unknown source")
	// ErrRunInProgress is returned when the same source is already being scraped
	ErrRunInProgress = errors.New("run already in progress")
)

// RunStore records run bookkeeping rows
type RunStore interface {
	Start(ctx context.Context, run *store.ScrapeRun) error
	Finish(ctx context.Context, run *store.ScrapeRun) error
}

// ResultSink persists scraped records and returns how many were stored
type ResultSink interface {
	Save(ctx context.Context, res *Result) (int, error)
}

// Publisher fans records out to downstream consumers
type Publisher interface {
	PublishRecords(ctx context.Context, source, runID string, records []any) (int, error)
}

// Broadcaster pushes run reports to live subscribers
type Broadcaster interface {
	Broadcast(data []byte)
}

// TableLoader builds the player name table for a new session
type TableLoader func(ctx context.Context) (*normalize.NameTable, error)

// Options wires a Runner. Every field except Tables may be nil.
type Options struct {
	Runs        RunStore
	Sink        ResultSink
	Publisher   Publisher
	Broadcaster Broadcaster
	Tables      TableLoader
	Location    *time.Location
	Clock       func() time.Time
}

// Runner executes sources one run at a time per source
type Runner struct {
	opts    Options
	sources map[string]Source
	order   []string

	mu      sync.Mutex
	running map[string]bool

	log *logger.Logger
}

// NewRunner registers sources under their names
func NewRunner(opts Options, sources ...Source) *Runner {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Tables == nil {
		opts.Tables = func(context.Context) (*normalize.NameTable, error) {
			return normalize.DefaultNameTable(nil)
		}
	}
	r := &Runner{
		opts:    opts,
		sources: make(map[string]Source, len(sources)),
		running: make(map[string]bool),
		log:     logger.Named("runner"),
	}
	for _, s := range sources {
		r.sources[s.Name()] = s
		r.order = append(r.order, s.Name())
	}
	return r
}

// Sources returns the registered source names in registration order
func (r *Runner) Sources() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// NewSession builds a fresh session dated now in the runner's location
func (r *Runner) NewSession(ctx context.Context) (*Session, error) {
	table, err := r.opts.Tables(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading name table: %w", err)
	}
	return NewSession(table, r.opts.Clock().In(r.opts.Location)), nil
}

// Run scrapes the named source, stores and publishes its records, and reports
// the run. The report is returned even when the scrape fails.
func (r *Runner) Run(ctx context.Context, name string) (*Report, error) {
	src, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, name)
	}
	if !r.acquire(name) {
		return nil, fmt.Errorf("%w: %s", ErrRunInProgress, name)
	}
	defer r.release(name)

	runID := uuid.NewString()
	started := r.opts.Clock().In(r.opts.Location)
	log := r.log.With().Str("source", name).Str("run_id", runID).Logger()
	log.Info().Msg("starting scrape")

	if r.opts.Runs != nil {
		run := &store.ScrapeRun{RunID: runID, Source: name, Status: store.RunStatusRunning, StartedAt: started}
		if err := r.opts.Runs.Start(ctx, run); err != nil {
			return nil, fmt.Errorf("recording run start: %w", err)
		}
	}

	sess, err := r.NewSession(ctx)
	if err != nil {
		return r.finish(ctx, &log, &Report{RunID: runID, Source: name, StartedAt: started}, err)
	}

	res, err := src.Scrape(ctx, sess)
	report := newReport(runID, name, sess, started)
	if err != nil {
		return r.finish(ctx, &log, report, fmt.Errorf("scraping %s: %w", name, err))
	}
	res.stamp(runID)

	report.Records = res.Len()
	if r.opts.Sink != nil {
		saved, err := r.opts.Sink.Save(ctx, res)
		report.Records = saved
		if err != nil {
			return r.finish(ctx, &log, report, fmt.Errorf("saving %s records: %w", name, err))
		}
	}

	if r.opts.Publisher != nil {
		n, err := r.opts.Publisher.PublishRecords(ctx, name, runID, res.Records())
		if err != nil {
			log.Warn().Err(err).Int("published", n).Msg("publishing records failed")
		} else {
			log.Debug().Int("published", n).Msg("records published")
		}
	}

	return r.finish(ctx, &log, report, nil)
}

// finish closes out the run row, broadcasts the report and logs the summary
func (r *Runner) finish(ctx context.Context, log *logger.Logger, report *Report, runErr error) (*Report, error) {
	report.FinishedAt = r.opts.Clock().In(r.opts.Location)
	report.Status = store.RunStatusCompleted
	if runErr != nil {
		report.Status = store.RunStatusFailed
		report.Error = runErr.Error()
	}

	if r.opts.Runs != nil {
		// the caller's context may already be cancelled; the run row must still close
		finishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := r.opts.Runs.Finish(finishCtx, report.Run()); err != nil {
			log.Error().Err(err).Msg("recording run finish failed")
		}
	}

	if r.opts.Broadcaster != nil {
		if data, err := json.Marshal(report); err == nil {
			r.opts.Broadcaster.Broadcast(data)
		}
	}

	if len(report.UnresolvedNames) > 0 || len(report.UnresolvedTeams) > 0 || len(report.Failures) > 0 {
		ev := log.Warn().
			Strs("unresolved_names", report.UnresolvedNames).
			Strs("unresolved_teams", report.UnresolvedTeams).
			Int("failures", len(report.Failures))
		if len(report.Suggestions) > 0 {
			ev = ev.Interface("suggestions", report.Suggestions)
		}
		ev.Msgf("%d unresolved names in %s run", len(report.UnresolvedNames), report.Source)
	}

	if runErr != nil {
		log.Error().Err(runErr).Dur("elapsed", report.FinishedAt.Sub(report.StartedAt)).Msg("scrape failed")
		return report, runErr
	}
	log.Info().
		Int("records", report.Records).
		Dur("elapsed", report.FinishedAt.Sub(report.StartedAt)).
		Msg("scrape completed")
	return report, nil
}

func (r *Runner) acquire(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running[name] {
		return false
	}
	r.running[name] = true
	return true
}

func (r *Runner) release(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.running, name)
}
