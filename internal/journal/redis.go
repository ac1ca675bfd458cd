package journal

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSink mirrors the journal into a capped redis stream.
type RedisSink struct {
	redis  *redis.Client
	stream string
	maxLen int64
}

func NewRedisSink(client *redis.Client, stream string, maxLen int64) *RedisSink {
	return &RedisSink{
		redis:  client,
		stream: stream,
		maxLen: maxLen,
	}
}

func (s *RedisSink) Append(ctx context.Context, entry Entry) error {
	return s.redis.XAdd(ctx, s.args(entry)).Err()
}

func (s *RedisSink) args(entry Entry) *redis.XAddArgs {
	return &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: s.maxLen,
		Approx: true,
		Values: []any{
			"id", entry.ID,
			"time", entry.Time.Format(time.RFC3339),
			"level", string(entry.Level),
			"message", entry.Message,
		},
	}
}
