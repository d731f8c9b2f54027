package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is a recurring task. ctx is cancelled when the scheduler stops.
type Job func(ctx context.Context)

// Scheduler runs recurring jobs on robfig/cron. Overlapping runs of the same
// job are skipped and panics are recovered and logged.
type Scheduler struct {
	cron   *cron.Cron
	chain  cron.Chain
	logger *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	jobs    map[string]cron.Job
	pending sync.WaitGroup
}

// New creates a stopped scheduler evaluating cron specs in loc.
func New(logger *slog.Logger, loc *time.Location) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if loc == nil {
		loc = time.UTC
	}
	cl := cronLogger{logger: logger}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
		),
		// Recover must sit inside the skip guard or a panic leaks its token.
		chain:  cron.NewChain(cron.SkipIfStillRunning(cl), cron.Recover(cl)),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		jobs:   make(map[string]cron.Job),
	}
}

// Every schedules job at a fixed interval, first firing one interval after
// Start. Intervals below one second are rounded up to one second.
func (s *Scheduler) Every(interval time.Duration, name string, job Job) error {
	if interval <= 0 {
		return fmt.Errorf("interval for job %s must be positive, got %s", name, interval)
	}
	s.cron.Schedule(cron.Every(interval), s.register(name, job))
	s.logger.Info("Scheduled job", slog.String("job", name), slog.Duration("interval", interval))
	return nil
}

// Cron schedules job on a standard five-field cron spec or descriptor
// such as "@daily".
func (s *Scheduler) Cron(spec string, name string, job Job) error {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", spec, name, err)
	}
	s.cron.Schedule(schedule, s.register(name, job))
	s.logger.Info("Scheduled job", slog.String("job", name), slog.String("spec", spec))
	return nil
}

// RunNow fires a scheduled job once in the background without waiting for
// its next tick. A run already in progress causes this one to be skipped.
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	job, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("job %s is not scheduled", name)
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		job.Run()
	}()
	return nil
}

// register wraps job in the skip and recover chain and remembers it by name,
// so scheduled and immediate runs share one guard.
func (s *Scheduler) register(name string, job Job) cron.Job {
	wrapped := s.chain.Then(s.wrap(name, job))
	s.mu.Lock()
	s.jobs[name] = wrapped
	s.mu.Unlock()
	return wrapped
}

func (s *Scheduler) wrap(name string, job Job) cron.Job {
	return cron.FuncJob(func() {
		start := time.Now()
		s.logger.Debug("Job started", slog.String("job", name))
		job(s.ctx)
		s.logger.Debug("Job finished", slog.String("job", name), slog.Duration("duration", time.Since(start)))
	})
}

// Start begins firing scheduled jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs, cancels the context of running jobs and waits for
// them to return or for ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	cronDone := s.cron.Stop()
	s.cancel()
	done := make(chan struct{})
	go func() {
		<-cronDone.Done()
		s.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler stop: %w", ctx.Err())
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	args := append([]any{slog.String("error", err.Error())}, keysAndValues...)
	l.logger.Error("cron: "+msg, args...)
}
