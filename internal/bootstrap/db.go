package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DBOptions struct {
	DSN         string
	ConnectTO   time.Duration
	PingTO      time.Duration
	MaxAttempts int
}

// OpenDB opens a pgx pool, retrying a bounded number of times with an
// increasing delay before giving up.
func OpenDB(ctx context.Context, opt DBOptions) (*pgxpool.Pool, error) {
	if opt.DSN == "" {
		return nil, fmt.Errorf("DB_DSN is not set")
	}
	if opt.ConnectTO == 0 {
		opt.ConnectTO = 5 * time.Second
	}
	if opt.PingTO == 0 {
		opt.PingTO = 2 * time.Second
	}
	if opt.MaxAttempts == 0 {
		opt.MaxAttempts = 3
	}

	var lastErr error
	for attempt := 1; attempt <= opt.MaxAttempts; attempt++ {
		pool, err := openOnce(ctx, opt)
		if err == nil {
			return pool, nil
		}
		lastErr = err

		if attempt < opt.MaxAttempts {
			delay := time.Duration(attempt) * time.Second
			log.Printf("db connect attempt %d/%d failed: %v (retrying in %s)",
				attempt, opt.MaxAttempts, err, delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, fmt.Errorf("db connect after %d attempts: %w", opt.MaxAttempts, lastErr)
}

func openOnce(ctx context.Context, opt DBOptions) (*pgxpool.Pool, error) {
	cctx, cancel := context.WithTimeout(ctx, opt.ConnectTO)
	defer cancel()

	pool, err := pgxpool.New(cctx, opt.DSN)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	pctx, pcancel := context.WithTimeout(ctx, opt.PingTO)
	defer pcancel()

	if err := pool.Ping(pctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return pool, nil
}
