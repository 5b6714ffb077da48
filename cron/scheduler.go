// Package cron repeats crawl runs on a cron schedule.
package cron

import (
	"context"
	"log/slog"

	"github.com/fwojciec/harvest"
	"github.com/robfig/cron/v3"
)

// parser accepts the standard 5-field format (minute hour day month
// weekday) and descriptors such as "@daily" or "@every 6h".
var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Job is a unit of scheduled work. Its context is done when the scheduler
// stops.
type Job func(ctx context.Context) error

// ValidateSchedule returns EINVALID if schedule cannot be parsed.
func ValidateSchedule(schedule string) error {
	if _, err := parser.Parse(schedule); err != nil {
		return harvest.Errorf(harvest.EINVALID, "invalid schedule %q: %v", schedule, err)
	}
	return nil
}

// Scheduler runs a Job on a schedule. A tick that arrives while the
// previous run is still going is skipped, and a panicking run is logged
// and does not stop the schedule.
type Scheduler struct {
	Logger *slog.Logger
}

// NewScheduler creates a Scheduler that logs to logger.
func NewScheduler(logger *slog.Logger) *Scheduler {
	return &Scheduler{Logger: logger}
}

// Run schedules job and blocks until ctx is done. It
// waits for an in-flight run to return before returning itself.
func (s *Scheduler) Run(ctx context.Context, schedule string, job Job) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cl := cronLogger{logger: logger}

	c := cron.New(
		cron.WithParser(parser),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	_, err := c.AddFunc(schedule, func() {
		logger.Info("scheduled run started", "schedule", schedule)
		if err := job(ctx); err != nil {
			logger.Error("scheduled run failed", "schedule", schedule, "err", err)
			return
		}
		logger.Info("scheduled run finished", "schedule", schedule)
	})
	if err != nil {
		return harvest.Errorf(harvest.EINVALID, "invalid schedule %q: %v", schedule, err)
	}

	c.Start()
	if next := c.Entries(); len(next) > 0 {
		logger.Info("schedule armed", "schedule", schedule, "next", next[0].Next)
	}

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

// cronLogger adapts slog to the cron.Logger interface.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "err", err)...)
}
