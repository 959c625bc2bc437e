// Package delay runs one-shot tasks after a delay. Tasks are keyed so a later
// schedule or an explicit Cancel can stop a task that has not fired yet.
package delay

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// Runner executes a fired task. *goroutine.Manager satisfies it.
type Runner interface {
	Go(ctx context.Context, f func(ctx context.Context) error) bool
}

// Task is the work run when a timer fires.
type Task func(ctx context.Context) error

type entry struct {
	timer *time.Timer
}

// Scheduler holds pending keyed timers.
type Scheduler struct {
	ctx    context.Context
	runner Runner

	mu     sync.Mutex
	tasks  map[string]*entry
	closed bool

	pending *atomic.Int64
	fired   *atomic.Int64
}

// New returns a Scheduler whose tasks run on runner with ctx.
func New(ctx context.Context, runner Runner) *Scheduler {
	return &Scheduler{
		ctx:     ctx,
		runner:  runner,
		tasks:   make(map[string]*entry),
		pending: atomic.NewInt64(0),
		fired:   atomic.NewInt64(0),
	}
}

// Schedule runs task once after d. A pending task with the same key is
// cancelled first. Scheduling on a closed Scheduler is a no-op.
func (s *Scheduler) Schedule(key string, d time.Duration, task Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		slog.WarnContext(s.ctx, "delay scheduler is closed, dropping task", "key", key)
		return
	}

	s.stopLocked(key)

	e := &entry{}
	e.timer = time.AfterFunc(d, func() { s.fire(key, e, task) })
	s.tasks[key] = e
	s.pending.Inc()
}

// Cancel stops the pending task for key and reports whether one was pending.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stopLocked(key)
}

// Pending returns the number of tasks waiting to fire.
func (s *Scheduler) Pending() int64 {
	return s.pending.Load()
}

// Fired returns how many tasks have been handed to the runner.
func (s *Scheduler) Fired() int64 {
	return s.fired.Load()
}

// Close stops every pending timer. Tasks already handed to the runner are not affected.
func (s *Scheduler) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for key := range s.tasks {
		s.stopLocked(key)
	}

	return nil
}

func (s *Scheduler) stopLocked(key string) bool {
	e, ok := s.tasks[key]
	if !ok {
		return false
	}

	delete(s.tasks, key)
	s.pending.Dec()
	e.timer.Stop()

	return true
}

func (s *Scheduler) fire(key string, e *entry, task Task) {
	s.mu.Lock()
	if cur, ok := s.tasks[key]; !ok || cur != e {
		s.mu.Unlock()
		return
	}
	delete(s.tasks, key)
	s.pending.Dec()
	s.mu.Unlock()

	s.fired.Inc()
	if !s.runner.Go(s.ctx, func(ctx context.Context) error { return task(ctx) }) {
		slog.ErrorContext(s.ctx, "failed to run delayed task", "key", key)
	}
}
