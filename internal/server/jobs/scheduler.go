// Package jobs runs periodic background maintenance for the server.
package jobs

import (
	"context"
	"time"

	"github.com/dmitrijs2005/devlog/internal/logging"
	"github.com/go-co-op/gocron"
)

// ChallengeSweeper completes challenges whose duration has run out.
type ChallengeSweeper interface {
	CompleteExpired(ctx context.Context) (int64, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	scheduler *gocron.Scheduler
	sweeper   ChallengeSweeper
	interval  time.Duration
	timeout   time.Duration
	logger    logging.Logger
}

func New(sweeper ChallengeSweeper, interval time.Duration, logger logging.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		sweeper:   sweeper,
		interval:  interval,
		timeout:   time.Minute,
		logger:    logger.With("module", "jobs"),
	}
}

// Start schedules the sweep and runs the scheduler in the background. The
// first sweep runs immediately. A zero interval disables the job.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.logger.Info(context.Background(), "challenge sweep disabled")
		return nil
	}

	if _, err := s.scheduler.Every(s.interval).Do(s.sweepChallenges); err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) sweepChallenges() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.sweeper.CompleteExpired(ctx)
	if err != nil {
		s.logger.Error(ctx, "challenge sweep failed", "err", err)
		return
	}
	if n > 0 {
		s.logger.Info(ctx, "completed expired challenges", "count", n)
	}
}
