package fetch

import (
	"context"
	"time"

	"github.com/fortuna/dfscrape/internal/logger"
)

// PageCache is the subset of the Redis cache used for page bodies
type PageCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// Cached serves repeat fetches of the same URL from a cache for ttl
type Cached struct {
	next  Fetcher
	cache PageCache
	ttl   time.Duration
	log   *logger.Logger
}

// NewCached wraps next. A nil cache or non-positive ttl disables caching.
func NewCached(next Fetcher, cache PageCache, ttl time.Duration) *Cached {
	return &Cached{next: next, cache: cache, ttl: ttl, log: logger.Named("fetch")}
}

func (c *Cached) Fetch(ctx context.Context, url string) (string, error) {
	if c.cache == nil || c.ttl <= 0 {
		return c.next.Fetch(ctx, url)
	}

	key := "page:" + url
	if body, err := c.cache.Get(ctx, key); err == nil && body != "" {
		c.log.Debug().Str("url", url).Msg("page cache hit")
		return body, nil
	}

	body, err := c.next.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	if err := c.cache.Set(ctx, key, body, c.ttl); err != nil {
		c.log.Warn().Err(err).Str("url", url).Msg("page cache write failed")
	}
	return body, nil
}
