package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fortuna/dfscrape/internal/cache"
	"github.com/fortuna/dfscrape/internal/config"
	"github.com/fortuna/dfscrape/internal/fetch"
	"github.com/fortuna/dfscrape/internal/ingest"
	"github.com/fortuna/dfscrape/internal/ingest/dailylineups"
	"github.com/fortuna/dfscrape/internal/ingest/oddsshark"
	"github.com/fortuna/dfscrape/internal/ingest/rotoworld"
	"github.com/fortuna/dfscrape/internal/logger"
	"github.com/fortuna/dfscrape/internal/normalize"
	"github.com/fortuna/dfscrape/internal/publisher"
	"github.com/fortuna/dfscrape/internal/store"
	"github.com/fortuna/dfscrape/internal/store/repository"
)

// appOptions selects which backends a command needs
type appOptions struct {
	database      bool
	redisRequired bool
	redisAttempts int
}

// app holds the connections and sources shared by commands
type app struct {
	cfg     *config.Config
	db      *store.Database
	redis   *cache.RedisCache
	browser *fetch.Browser
	sources []ingest.Source
	log     *logger.Logger
}

func newApp(ctx context.Context, c *config.Config, opts appOptions) (*app, error) {
	a := &app{cfg: c, log: logger.Named("app")}

	if opts.database {
		db, err := store.NewDatabase(c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		a.db = db
		a.log.Info().Msg("connected to database")

		if err := db.RunMigrations(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	rc, err := connectRedis(c.RedisURL, max(opts.redisAttempts, 1), 2*time.Second, a.log)
	if err != nil {
		if opts.redisRequired {
			a.Close()
			return nil, err
		}
		a.log.Warn().Err(err).Msg("continuing without redis page cache and streams")
	} else {
		a.redis = rc
	}

	a.browser = fetch.NewBrowser(fetch.BrowserOptions{
		Headless: c.Browser.Headless,
		Settle:   c.Browser.Settle,
		Timeout:  c.Browser.Timeout,
	})
	a.sources = buildSources(c, a.fetcher(), a.browser)
	return a, nil
}

// connectRedis retries the first connection, redis often starts after us
func connectRedis(url string, attempts int, delay time.Duration, log *logger.Logger) (*cache.RedisCache, error) {
	var lastErr error
	for i := 0; i < attempts; i++ {
		rc, err := cache.NewRedisCache(url)
		if err == nil {
			log.Info().Msg("connected to redis")
			return rc, nil
		}
		lastErr = err
		if i < attempts-1 {
			log.Warn().Err(err).Int("attempt", i+1).Int("of", attempts).Dur("retry_in", delay).Msg("redis connection failed")
			time.Sleep(delay)
		}
	}
	return nil, fmt.Errorf("connecting to redis after %d attempts: %w", attempts, lastErr)
}

// fetcher returns the static page fetcher, cached in redis when available
func (a *app) fetcher() fetch.Fetcher {
	client := fetch.NewHTTPClient(30 * time.Second)
	if a.redis == nil || a.cfg.Browser.PageCacheTTL <= 0 {
		return client
	}
	return fetch.NewCached(client, a.redis, a.cfg.Browser.PageCacheTTL)
}

// buildSources creates every source in a fixed order
func buildSources(c *config.Config, f fetch.Fetcher, nav fetch.Navigator) []ingest.Source {
	return []ingest.Source{
		dailylineups.New(c.Sources.LineupsURL, f),
		rotoworld.NewInjurySource(c.Sources.InjuriesURL, nav),
		rotoworld.NewNewsSource(rotoworld.NewsOptions{
			URL:      c.Sources.NewsURL,
			Lookback: c.Sources.NewsLookback,
			MaxPages: c.Sources.NewsMaxPages,
		}, nav),
		oddsshark.New(c.Sources.OddsURL, nav),
	}
}

// source finds a source by name
func (a *app) source(name string) (ingest.Source, error) {
	for _, s := range a.sources {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ingest.ErrUnknownSource, name)
}

// tables loads stored aliases on every run so new ones apply without a restart
func (a *app) tables(ctx context.Context) (*normalize.NameTable, error) {
	if a.db == nil {
		return normalize.DefaultNameTable(nil)
	}
	extra, err := repository.NewAliasRepository(a.db).Map(ctx)
	if err != nil {
		return nil, err
	}
	return normalize.DefaultNameTable(extra)
}

// runner wires sources to storage, streams and the live feed
func (a *app) runner(bc ingest.Broadcaster) *ingest.Runner {
	opts := ingest.Options{
		Tables:   a.tables,
		Location: a.cfg.Location(),
	}
	if a.db != nil {
		opts.Runs = repository.NewRunRepository(a.db)
		opts.Sink = ingest.NewPostgresSink(a.db)
	}
	if a.redis != nil {
		opts.Publisher = publisher.NewRedisStreamPublisher(a.redis.Client(), a.cfg.StreamMaxLen)
	}
	if bc != nil {
		opts.Broadcaster = bc
	}
	return ingest.NewRunner(opts, a.sources...)
}

// Close releases every connection
func (a *app) Close() {
	if a.browser != nil {
		a.browser.Close()
	}
	if a.redis != nil {
		a.redis.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
