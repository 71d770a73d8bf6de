// Package scheduler runs named, cancellable background tasks.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

var (
	// ErrDuplicateTask is returned when a task name is already registered.
	ErrDuplicateTask = errors.New("task already scheduled")
	// ErrStopped is returned when scheduling after Shutdown.
	ErrStopped = errors.New("scheduler stopped")
)

// Func is the body of a task. ctx is cancelled on Shutdown or Cancel.
type Func func(ctx context.Context)

// DelayFunc returns the wait before the next run of a recurring task.
type DelayFunc func() time.Duration

// PanicHandler receives the value recovered from a panicking task.
type PanicHandler func(task string, recovered any)

// Scheduler owns every background task of the app.
type Scheduler struct {
	clock   clockwork.Clock
	logger  *zap.Logger
	onPanic PanicHandler

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	tasks   map[string]context.CancelFunc
	stopped bool
	wg      sync.WaitGroup
}

// Option customizes a Scheduler.
type Option func(*Scheduler)

// WithClock sets the clock; the default is the real clock.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Scheduler) { s.clock = clock }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scheduler) { s.logger = logger }
}

// WithPanicHandler sets the handler invoked after a task panics.
func WithPanicHandler(h PanicHandler) Option {
	return func(s *Scheduler) { s.onPanic = h }
}

// New returns a running Scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:  clockwork.NewRealClock(),
		logger: zap.NewNop(),
		tasks:  map[string]context.CancelFunc{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s
}

// Clock returns the scheduler's clock.
func (s *Scheduler) Clock() clockwork.Clock {
	return s.clock
}

// Every runs fn every interval until cancelled.
func (s *Scheduler) Every(name string, interval time.Duration, fn Func) error {
	if interval <= 0 {
		return fmt.Errorf("task %q: interval must be > 0", name)
	}
	return s.start(name, func() time.Duration { return interval }, fn, true)
}

// Loop runs fn repeatedly, waiting next() before each run.
func (s *Scheduler) Loop(name string, next DelayFunc, fn Func) error {
	return s.start(name, next, fn, true)
}

// After runs fn once after delay.
func (s *Scheduler) After(name string, delay time.Duration, fn Func) error {
	return s.start(name, func() time.Duration { return delay }, fn, false)
}

// Cancel stops the named task. It reports whether the task was registered.
func (s *Scheduler) Cancel(name string) bool {
	s.mu.Lock()
	cancel, ok := s.tasks[name]
	delete(s.tasks, name)
	s.mu.Unlock()
	if ok {
		cancel()
	}
	return ok
}

// Names lists registered task names in sorted order.
func (s *Scheduler) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.tasks))
	for name := range s.tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Shutdown cancels every task and waits for their goroutines to exit.
// It is safe to call more than once.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	s.stopped = true
	s.tasks = map[string]context.CancelFunc{}
	s.mu.Unlock()
	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) start(name string, next DelayFunc, fn Func, repeat bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return ErrStopped
	}
	if _, ok := s.tasks[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTask, name)
	}
	ctx, cancel := context.WithCancel(s.ctx)
	s.tasks[name] = cancel
	s.wg.Add(1)
	go s.run(ctx, cancel, name, next, fn, repeat)
	return nil
}

func (s *Scheduler) run(ctx context.Context, cancel context.CancelFunc, name string, next DelayFunc, fn Func, repeat bool) {
	defer s.wg.Done()
	defer cancel()
	if !repeat {
		defer s.forget(ctx, name)
	}
	for {
		timer := s.clock.NewTimer(next())
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.Chan():
		}
		s.invoke(ctx, name, fn)
		if !repeat || ctx.Err() != nil {
			return
		}
	}
}

// forget drops a finished one-shot task unless the name was reused meanwhile.
func (s *Scheduler) forget(ctx context.Context, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil {
		if _, ok := s.tasks[name]; ok {
			return
		}
	}
	delete(s.tasks, name)
}

func (s *Scheduler) invoke(ctx context.Context, name string, fn Func) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task panicked", zap.String("task", name), zap.Any("panic", r))
			if s.onPanic != nil {
				s.onPanic(name, r)
			}
		}
	}()
	fn(ctx)
}
