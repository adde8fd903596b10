// Package scheduler provides cron-based background jobs for tenantpipe,
// chiefly the periodic stale-session sweep.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/propdesk/tenantpipe/internal/session"
)

// Scheduler wraps a cron runner.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler creates and starts a cron scheduler using the standard
// 5-field expression format.
func NewScheduler() *Scheduler {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	c := cron.New(cron.WithParser(parser), cron.WithChain(cron.Recover(cron.DefaultLogger)))
	c.Start()
	return &Scheduler{cron: c}
}

// AddJob schedules a task using the provided cron expression.
func (s *Scheduler) AddJob(expr string, task func()) error {
	_, err := s.cron.AddFunc(expr, task)
	return err
}

// AddSessionSweep schedules periodic removal of sessions idle longer than
// maxAge. Each run is bounded by its own timeout.
func (s *Scheduler) AddSessionSweep(expr string, store session.Store, maxAge time.Duration) error {
	return s.AddJob(expr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		removed, err := store.Sweep(ctx, maxAge)
		if err != nil {
			slog.Error("Scheduler.sessionSweep: sweep failed", "error", err)
			return
		}
		if removed > 0 {
			slog.Info("Scheduler.sessionSweep: removed stale sessions", "count", removed, "max_age", maxAge)
		}
	})
}

// Stop stops the cron scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
