package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// StreamName returns the stream a source's records are published to
func StreamName(source string) string {
	return fmt.Sprintf("dfs.%s.basketball_nba", source)
}

// pipeliner is the part of *redis.Client the publisher uses
type pipeliner interface {
	Pipeline() redis.Pipeliner
}

// RedisStreamPublisher publishes scraped records to Redis streams
type RedisStreamPublisher struct {
	client pipeliner
	maxLen int64
}

// NewRedisStreamPublisher creates a publisher from an existing client. Streams
// are trimmed to roughly maxLen entries; zero disables trimming.
func NewRedisStreamPublisher(client *redis.Client, maxLen int64) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
		maxLen: maxLen,
	}
}

// PublishRecords appends one stream entry per record in a single pipeline and
// returns how many entries were written
func (p *RedisStreamPublisher) PublishRecords(ctx context.Context, source, runID string, records []any) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	stream := StreamName(source)
	now := time.Now().Unix()

	pipe := p.client.Pipeline()
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return 0, fmt.Errorf("marshaling %s record: %w", source, err)
		}
		pipe.XAdd(ctx, &redis.XAddArgs{
			Stream: stream,
			MaxLen: p.maxLen,
			Approx: p.maxLen > 0,
			Values: map[string]interface{}{
				"run_id":    runID,
				"data":      string(data),
				"timestamp": now,
			},
		})
	}

	cmds, err := pipe.Exec(ctx)
	published := 0
	for _, cmd := range cmds {
		if cmd.Err() == nil {
			published++
		}
	}
	if err != nil {
		return published, fmt.Errorf("publishing to %s: %w", stream, err)
	}
	return published, nil
}
