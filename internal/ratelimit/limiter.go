package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "catalog:rl:"

// Decision is the outcome of one request counted against a client's window.
type Decision struct {
	Allowed    bool
	Remaining  int64
	ResetAt    time.Time
	RetryAfter time.Duration
}

// Limiter counts catalog API requests per client in fixed windows held in
// Redis. A nil client or a non-positive limit lets everything through.
type Limiter struct {
	rdb *redis.Client
	now func() time.Time
}

func NewLimiter(rdb *redis.Client) *Limiter {
	return &Limiter{rdb: rdb, now: time.Now}
}

// Check counts one request for client against limit requests per window.
// Redis failures fail open: the returned Decision allows the request and
// the error says why it was not counted.
func (l *Limiter) Check(ctx context.Context, client string, limit int64, window time.Duration) (Decision, error) {
	now := l.now()
	start := now.Truncate(window)
	resetAt := start.Add(window)

	if l.rdb == nil || limit <= 0 {
		return Decision{Allowed: true, Remaining: limit - 1, ResetAt: resetAt}, nil
	}

	key := windowKey(client, start)
	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireAt(ctx, key, resetAt.Add(time.Second))
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{Allowed: true, Remaining: limit, ResetAt: resetAt}, fmt.Errorf("count request for %s: %w", client, err)
	}

	return decide(incr.Val(), limit, now, resetAt), nil
}

func decide(count, limit int64, now, resetAt time.Time) Decision {
	d := Decision{
		Allowed:   count <= limit,
		Remaining: max(limit-count, 0),
		ResetAt:   resetAt,
	}
	if !d.Allowed {
		d.RetryAfter = max(resetAt.Sub(now).Round(time.Second), time.Second)
	}
	return d
}

// windowKey names the counter for client's window starting at start.
func windowKey(client string, start time.Time) string {
	return fmt.Sprintf("%s%s:%d", keyPrefix, client, start.Unix())
}
