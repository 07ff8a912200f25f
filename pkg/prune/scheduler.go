package prune

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs cleanup cycles on a cron schedule (e.g. daily at 3 AM).
type Scheduler struct {
	runner   *Runner
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	logger   *slog.Logger
	running  bool
}

// NewScheduler creates a scheduler that executes runner on the given cron
// expression.
func NewScheduler(runner *Runner, schedule string, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		runner:   runner,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "scheduler"),
	}
}

// Start begins scheduled execution. It validates the cron expression, starts
// the cron loop, and stops it when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		return fmt.Errorf("schedule is empty")
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		s.runCycle(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule cleanup: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("cleanup scheduler started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// runCycle executes one scheduled cleanup run.
func (s *Scheduler) runCycle(ctx context.Context) {
	s.logger.Info("starting scheduled cleanup run")

	result, err := s.runner.Run(ctx)
	if err != nil {
		s.logger.Error("scheduled run failed to notify", "error", err)
	}
	if result.Failed() {
		s.logger.Error("scheduled run completed with node failures",
			"failed_nodes", result.FailedNodes(),
			"deleted", result.TotalDeleted(),
		)
		return
	}

	s.logger.Info("scheduled run completed",
		"deleted", result.TotalDeleted(),
		"skipped", result.TotalSkipped(),
	)
}

// Stop stops the scheduler and waits for a running cycle to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done() // Wait for running jobs to finish
		s.running = false
		s.logger.Info("cleanup scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled cleanup time.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return nil
	}

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
