package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"change_tracker/internal/metrics"
)

// Job is a unit of periodic work.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

type Scheduler struct {
	jobs    []Job
	timeout time.Duration
	logger  *slog.Logger

	running map[string]*atomic.Bool
	wg      sync.WaitGroup
}

// NewScheduler creates a scheduler. Each run of a job is bounded by timeout.
func NewScheduler(jobs []Job, timeout time.Duration, logger *slog.Logger) *Scheduler {
	running := make(map[string]*atomic.Bool, len(jobs))
	for _, j := range jobs {
		running[j.Name] = new(atomic.Bool)
	}
	return &Scheduler{
		jobs:    jobs,
		timeout: timeout,
		logger:  logger,
		running: running,
	}
}

// Start runs every job once immediately and then on its interval until ctx
// is cancelled. A tick that arrives while the previous run of the same job is
// still in progress is skipped. Start waits for in-flight runs before returning.
func (s *Scheduler) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, job := range s.jobs {
		g.Go(func() error {
			return s.loop(gctx, job)
		})
	}

	err := g.Wait()
	s.wg.Wait()
	return err
}

func (s *Scheduler) loop(ctx context.Context, job Job) error {
	s.logger.Info("scheduler started", "job", job.Name, "interval", job.Interval)

	s.trigger(ctx, job)

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped", "job", job.Name)
			return ctx.Err()
		case <-ticker.C:
			s.trigger(ctx, job)
		}
	}
}

func (s *Scheduler) trigger(ctx context.Context, job Job) {
	flag := s.running[job.Name]
	if !flag.CompareAndSwap(false, true) {
		s.logger.Warn("previous run still in progress, skipping", "job", job.Name)
		metrics.ObserveJobSkipped(job.Name)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer flag.Store(false)
		_ = s.run(ctx, job)
	}()
}

// RunOnce runs the named job a single time in the caller's goroutine.
func (s *Scheduler) RunOnce(ctx context.Context, name string) error {
	for _, job := range s.jobs {
		if job.Name == name {
			return s.run(ctx, job)
		}
	}
	return fmt.Errorf("unknown job %q", name)
}

func (s *Scheduler) run(ctx context.Context, job Job) (err error) {
	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", job.Name, r)
		}
		metrics.ObserveJob(job.Name, time.Since(start))
		if err != nil {
			s.logger.Error("job failed", "job", job.Name, "error", err)
		}
	}()

	return job.Run(runCtx)
}
