package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Sweeper is the job run on each trigger.
type Sweeper interface {
	Sweep(ctx context.Context) error
}

// Scheduler runs the reminder sweep on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	logger  *slog.Logger
}

// New creates a Scheduler with the given cron expression (standard 5-field
// format, e.g. "0 0 * * *" for daily at midnight).
func New(cronSpec string, sweeper Sweeper, logger *slog.Logger) (*Scheduler, error) {
	c := cron.New()
	s := &Scheduler{cron: c, sweeper: sweeper, logger: logger}
	if _, err := c.AddFunc(cronSpec, s.run); err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", cronSpec, err)
	}
	return s, nil
}

// Start launches the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("reminder scheduler started")
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("reminder scheduler stopped")
}

func (s *Scheduler) run() {
	if err := s.sweeper.Sweep(context.Background()); err != nil {
		s.logger.Error("reminder sweep failed", "err", err)
	}
}
