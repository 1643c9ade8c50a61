package cronjob

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/starlinemember/portfolio-website/internal/auth"
	"github.com/starlinemember/portfolio-website/internal/security"
)

// Scheduler runs the periodic housekeeping: expired sessions, expired IP
// blocks, stale login-attempt rows.
type Scheduler struct {
	sessions  *auth.Repo
	blocklist *security.Blocklist
	attempts  *security.AttemptRepo
	interval  time.Duration
	cron      *cron.Cron
}

func NewScheduler(sessions *auth.Repo, blocklist *security.Blocklist,
	attempts *security.AttemptRepo, interval time.Duration) *Scheduler {
	if interval == 0 {
		interval = 5 * time.Minute
	}
	return &Scheduler{
		sessions:  sessions,
		blocklist: blocklist,
		attempts:  attempts,
		interval:  interval,
	}
}

// Start registers the sweep job and begins the cron loop.
func (s *Scheduler) Start() error {
	c := cron.New()

	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := c.AddFunc(spec, s.sweep); err != nil {
		return fmt.Errorf("register sweep job: %w", err)
	}

	log.Printf("Cron scheduler started (sweeping every %s)", s.interval)
	c.Start()
	s.cron = c
	return nil
}

// Stop halts the cron loop, waiting for a running sweep to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if n, err := s.sessions.SweepExpiredSessions(ctx); err != nil {
		log.Printf("sweep: expired sessions: %v", err)
	} else if n > 0 {
		log.Printf("sweep: removed %d expired sessions", n)
	}

	if n, err := s.blocklist.PurgeExpired(ctx); err != nil {
		log.Printf("sweep: expired ip blocks: %v", err)
	} else if n > 0 {
		log.Printf("sweep: removed %d expired ip blocks", n)
	}

	// Attempt rows only matter inside the failure window; keep a week for
	// inspection.
	if _, err := s.attempts.PurgeOlderThan(ctx, 7*24*time.Hour); err != nil {
		log.Printf("sweep: stale login attempts: %v", err)
	}
}
