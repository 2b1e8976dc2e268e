package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const attemptsPrefix = "ratelimit"

// AttemptCounter counts requests per key in fixed windows.
// Key format: ratelimit:<scope>:<subject>
type AttemptCounter struct {
	client *redis.Client
}

// NewAttemptCounter creates an AttemptCounter wrapping the given Redis client.
func NewAttemptCounter(client *redis.Client) *AttemptCounter {
	return &AttemptCounter{client: client}
}

// Hit records one attempt and returns the count within the current window
// together with the time left before the window resets.
func (a *AttemptCounter) Hit(ctx context.Context, scope, subject string, window time.Duration) (int64, time.Duration, error) {
	key := a.key(scope, subject)

	pipe := a.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	ttl := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, fmt.Errorf("rate limit hit: %w", err)
	}

	remaining := ttl.Val()
	if remaining < 0 {
		remaining = window
	}
	return incr.Val(), remaining, nil
}

func (a *AttemptCounter) key(scope, subject string) string {
	return fmt.Sprintf("%s:%s:%s", attemptsPrefix, scope, subject)
}
