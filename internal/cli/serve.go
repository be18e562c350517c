package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fortuna/dfscrape/internal/api/rest"
	"github.com/fortuna/dfscrape/internal/api/websocket"
	"github.com/fortuna/dfscrape/internal/logger"
	"github.com/fortuna/dfscrape/internal/scheduler"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the scheduler, REST API and websocket feed",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.Named("serve")
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, appOptions{database: true, redisRequired: true, redisAttempts: 30})
	if err != nil {
		return err
	}
	defer a.Close()

	ws := websocket.NewServer()
	runner := a.runner(ws)

	var sched *scheduler.Scheduler
	if cfg.Schedule.Enabled {
		sched, err = scheduler.New(runner, cfg.Schedule.Interval, cfg.Location())
		if err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
		log.Info().Strs("jobs", sched.Jobs()).Msg("scheduler started")
	}

	restServer := rest.NewServer(cfg.RESTPort,
		rest.NewHandler(rest.NewRepositoryStore(a.db)),
		rest.NewScrapeHandler(ctx, runner),
	)

	errs := make(chan error, 2)
	go func() {
		log.Info().Str("port", cfg.RESTPort).Msg("REST API listening")
		if err := restServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()
	go func() {
		if err := ws.Start(cfg.WSPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	log.Info().Str("rest_port", cfg.RESTPort).Str("ws_port", cfg.WSPort).Msg("dfscrape started")

	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case runErr = <-errs:
		log.Error().Err(runErr).Msg("server failed, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if sched != nil {
		if err := sched.Stop(); err != nil {
			log.Warn().Err(err).Msg("scheduler shutdown")
		}
	}
	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("REST shutdown")
	}
	if err := ws.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("websocket shutdown")
	}
	return runErr
}
