package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestScheduler_RunsImmediatelyAndOnInterval(t *testing.T) {
	var calls atomic.Int32
	s := NewScheduler([]Job{{
		Name:     "sources",
		Interval: 10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			calls.Add(1)
			return nil
		},
	}}, time.Second, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	err := <-done
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScheduler_SkipsOverlappingRuns(t *testing.T) {
	var calls, active, maxActive atomic.Int32
	release := make(chan struct{})

	s := NewScheduler([]Job{{
		Name:     "roadmap",
		Interval: 5 * time.Millisecond,
		Run: func(ctx context.Context) error {
			calls.Add(1)
			n := active.Add(1)
			defer active.Add(-1)
			if n > maxActive.Load() {
				maxActive.Store(n)
			}
			<-release
			return nil
		},
	}}, time.Second, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	close(release)
	cancel()
	<-done

	assert.Equal(t, int32(1), maxActive.Load())
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
}

func TestScheduler_RunOnce(t *testing.T) {
	var gotDeadline bool
	s := NewScheduler([]Job{{
		Name:     "sources",
		Interval: time.Hour,
		Run: func(ctx context.Context) error {
			_, gotDeadline = ctx.Deadline()
			return errors.New("boom")
		},
	}}, time.Minute, testLogger())

	err := s.RunOnce(context.Background(), "sources")
	require.Error(t, err)
	assert.Equal(t, "boom", err.Error())
	assert.True(t, gotDeadline)

	err = s.RunOnce(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown job")
}

func TestScheduler_RecoversPanics(t *testing.T) {
	s := NewScheduler([]Job{{
		Name:     "sources",
		Interval: time.Hour,
		Run: func(ctx context.Context) error {
			panic("nil feed")
		},
	}}, time.Minute, testLogger())

	err := s.RunOnce(context.Background(), "sources")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
}

func TestScheduler_RunTimeout(t *testing.T) {
	s := NewScheduler([]Job{{
		Name:     "roadmap",
		Interval: time.Hour,
		Run: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	}}, 10*time.Millisecond, testLogger())

	err := s.RunOnce(context.Background(), "roadmap")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
