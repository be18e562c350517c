package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/fortuna/dfscrape/internal/ingest"
	"github.com/fortuna/dfscrape/internal/logger"
)

// Runner executes one scrape of a named source
type Runner interface {
	Run(ctx context.Context, name string) (*ingest.Report, error)
	Sources() []string
}

// IntervalFunc returns how often a source runs; zero leaves it unscheduled
type IntervalFunc func(source string) time.Duration

// Scheduler runs every scheduled source on its own interval
type Scheduler struct {
	s        gocron.Scheduler
	runner   Runner
	interval IntervalFunc
	ctx      context.Context
	cancel   context.CancelFunc
	log      *logger.Logger
}

// New creates a scheduler whose jobs run in loc
func New(runner Runner, interval IntervalFunc, loc *time.Location) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	s, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		s:        s,
		runner:   runner,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		log:      logger.Named("scheduler"),
	}, nil
}

// Start registers one interval job per scheduled source and starts them. Each
// source runs once immediately and never overlaps with itself.
func (s *Scheduler) Start() error {
	for _, name := range s.runner.Sources() {
		every := s.interval(name)
		if every <= 0 {
			s.log.Info().Str("source", name).Msg("not scheduled")
			continue
		}
		_, err := s.s.NewJob(
			gocron.DurationJob(every),
			gocron.NewTask(s.run, name),
			gocron.WithName(name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
			gocron.WithStartAt(gocron.WithStartImmediately()),
		)
		if err != nil {
			return fmt.Errorf("failed to create %s job: %w", name, err)
		}
		s.log.Info().Str("source", name).Dur("every", every).Msg("scheduled")
	}

	s.s.Start()
	return nil
}

// Jobs returns the names of the scheduled sources, sorted
func (s *Scheduler) Jobs() []string {
	var names []string
	for _, j := range s.s.Jobs() {
		names = append(names, j.Name())
	}
	sort.Strings(names)
	return names
}

// Stop cancels in-flight scrapes and waits for jobs to return
func (s *Scheduler) Stop() error {
	s.cancel()
	return s.s.Shutdown()
}

func (s *Scheduler) run(name string) {
	if _, err := s.runner.Run(s.ctx, name); err != nil {
		if errors.Is(err, ingest.ErrRunInProgress) {
			s.log.Debug().Str("source", name).Msg("skipped, run in progress")
			return
		}
		// the runner already logged the failure with its run id
		s.log.Debug().Err(err).Str("source", name).Msg("scheduled run failed")
	}
}
