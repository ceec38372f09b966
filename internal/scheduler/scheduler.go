// Package scheduler runs pipeline jobs on fixed intervals.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is one periodic task
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler runs each job once at start and then on its interval. Jobs run
// independently; a failing run is logged and the job keeps its schedule.
type Scheduler struct {
	jobs       []Job
	runTimeout time.Duration
	logger     *zap.Logger
}

// New creates a scheduler. runTimeout bounds a single run; zero means no
// bound beyond the parent context.
func New(runTimeout time.Duration, logger *zap.Logger, jobs ...Job) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{jobs: jobs, runTimeout: runTimeout, logger: logger}
}

// Start blocks until ctx is cancelled. Jobs with a non-positive interval
// are skipped.
func (s *Scheduler) Start(ctx context.Context) error {
	var wg sync.WaitGroup
	for _, job := range s.jobs {
		if job.Interval <= 0 || job.Run == nil {
			s.logger.Info("job disabled", zap.String("job", job.Name))
			continue
		}
		wg.Add(1)
		go func(job Job) {
			defer wg.Done()
			s.loop(ctx, job)
		}(job)
	}

	s.logger.Info("scheduler started", zap.Int("jobs", len(s.jobs)))
	<-ctx.Done()
	wg.Wait()
	s.logger.Info("scheduler stopped")
	return ctx.Err()
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	s.logger.Info("job scheduled", zap.String("job", job.Name), zap.Duration("interval", job.Interval))
	s.run(ctx, job)

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.run(ctx, job)
		}
	}
}

func (s *Scheduler) run(ctx context.Context, job Job) {
	runCtx := ctx
	if s.runTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.runTimeout)
		defer cancel()
	}

	start := time.Now()
	if err := job.Run(runCtx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Error("job failed", zap.String("job", job.Name), zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return
	}
	s.logger.Info("job finished", zap.String("job", job.Name), zap.Duration("elapsed", time.Since(start)))
}
