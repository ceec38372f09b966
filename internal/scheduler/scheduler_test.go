package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func TestStart_RunsImmediatelyAndOnInterval(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	done := make(chan struct{})
	job := Job{
		Name:     "scrape",
		Interval: 10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			if runs.Add(1) == 3 {
				close(done)
			}
			return nil
		},
	}

	errCh := make(chan error, 1)
	go func() { errCh <- New(time.Second, zaptest.NewLogger(t), job).Start(ctx) }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Errorf("Expected 3 runs, got %d", runs.Load())
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestStart_FailingJobKeepsSchedule(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	done := make(chan struct{})
	job := Job{
		Name:     "validate",
		Interval: 10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			if runs.Add(1) == 2 {
				close(done)
			}
			return errors.New("feed down")
		},
	}

	errCh := make(chan error, 1)
	go func() { errCh <- New(0, zaptest.NewLogger(t), job).Start(ctx) }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Errorf("Expected a second run after a failure, got %d runs", runs.Load())
	}
	cancel()
	<-errCh
}

func TestStart_DisabledJob(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var runs atomic.Int32
	job := Job{Name: "off", Run: func(ctx context.Context) error {
		runs.Add(1)
		return nil
	}}

	if err := New(0, zaptest.NewLogger(t), job).Start(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected context.DeadlineExceeded, got %v", err)
	}
	if runs.Load() != 0 {
		t.Errorf("Expected no runs, got %d", runs.Load())
	}
}

func TestRun_Timeout(t *testing.T) {
	job := Job{Name: "slow", Interval: time.Hour, Run: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}}

	start := time.Now()
	New(20*time.Millisecond, zaptest.NewLogger(t)).run(context.Background(), job)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Expected the run to be cut off, took %v", elapsed)
	}
}
