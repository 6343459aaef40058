package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is a unit of scheduled work. It reports whether it did anything.
type Job interface {
	Run(ctx context.Context) (bool, error)
}

// Scheduler runs a Job on a cron expression.
type Scheduler struct {
	name    string
	spec    string
	job     Job
	timeout time.Duration
	logger  *slog.Logger
	cron    *cron.Cron

	mu      sync.Mutex
	running bool
	lastRun time.Time
}

// NewScheduler parses spec in loc and prepares the job. Runs overlapping a
// previous run are skipped.
func NewScheduler(name, spec string, loc *time.Location, job Job, logger *slog.Logger) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	s := &Scheduler{
		name:    name,
		spec:    spec,
		job:     job,
		timeout: time.Minute,
		logger:  logger.With("component", "schedule", "job", name),
	}
	s.cron = cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := s.cron.AddFunc(spec, s.RunOnce); err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins firing the job in the background.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.cron.Start()
	if entries := s.cron.Entries(); len(entries) > 0 {
		s.logger.Info("scheduler started", "schedule", s.spec, "next_run", entries[0].Next)
	}
}

// Stop halts the schedule and waits for a running job up to ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	s.logger.Info("stopping scheduler")
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("scheduler stop timed out")
	}
}

// RunOnce executes the job immediately.
func (s *Scheduler) RunOnce() {
	started := time.Now()
	s.mu.Lock()
	s.lastRun = started
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	did, err := s.job.Run(ctx)
	if err != nil {
		s.logger.Error("scheduled job failed", "error", err, "duration", time.Since(started))
		return
	}
	s.logger.Info("scheduled job completed", "did_work", did, "duration", time.Since(started))
}

// LastRun reports when the job last started.
func (s *Scheduler) LastRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun
}
