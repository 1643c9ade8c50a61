package security

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// WindowLimiter counts actions per key inside a rolling window using a
// single INCR, so concurrent requests cannot race past the ceiling the way
// a read-then-append counter can.
type WindowLimiter struct {
	rdb    *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewWindowLimiter(rdb *redis.Client, prefix string, limit int, window time.Duration) *WindowLimiter {
	return &WindowLimiter{
		rdb:    rdb,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

// Allow consumes one slot for key and reports whether the ceiling has been
// reached. If Redis is unavailable the limiter fails open: the submission
// path must keep working when the bookkeeping store is down.
func (l *WindowLimiter) Allow(ctx context.Context, key string) bool {
	redisKey := l.prefix + key

	n, err := l.rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		log.Printf("rate limit: redis unavailable, allowing %s: %v", redisKey, err)
		return true
	}

	if n == 1 {
		if err := l.rdb.Expire(ctx, redisKey, l.window).Err(); err != nil {
			log.Printf("rate limit: expire %s: %v", redisKey, err)
		}
	}

	return n <= int64(l.limit)
}

// Remaining reports how many slots are left for key without consuming one.
func (l *WindowLimiter) Remaining(ctx context.Context, key string) int {
	n, err := l.rdb.Get(ctx, l.prefix+key).Int()
	if err != nil {
		return l.limit
	}
	if n >= l.limit {
		return 0
	}
	return l.limit - n
}
