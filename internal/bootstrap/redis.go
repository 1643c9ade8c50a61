package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/starlinemember/portfolio-website/config"
)

// OpenRedis connects to Redis with the same bounded retry behavior as OpenDB.
func OpenRedis(ctx context.Context, cfg config.RedisConfig, maxAttempts int) (*redis.Client, error) {
	if maxAttempts == 0 {
		maxAttempts = 3
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})

		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := client.Ping(pctx).Err()
		cancel()
		if err == nil {
			return client, nil
		}
		_ = client.Close()
		lastErr = err

		if attempt < maxAttempts {
			delay := time.Duration(attempt) * time.Second
			log.Printf("redis connect attempt %d/%d failed: %v (retrying in %s)",
				attempt, maxAttempts, err, delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, fmt.Errorf("redis connect after %d attempts: %w", maxAttempts, lastErr)
}
