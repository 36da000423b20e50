package app

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"
)

const defaultPollInterval = 2 * time.Second

// Scheduler fires a callback at a fixed cadence until stopped. The first fire
// happens one interval after Start. Each fire runs in its own goroutine, so a
// slow callback does not delay the next tick and fires may overlap.
type Scheduler struct {
	interval time.Duration
	fn       func(context.Context)
	logger   *slog.Logger

	mu      sync.Mutex
	started bool
	stopped bool
	cancel  context.CancelFunc
	done    chan struct{}

	inflight sync.WaitGroup
}

// NewScheduler builds a Scheduler. A non-positive interval uses the default.
func NewScheduler(interval time.Duration, fn func(context.Context), logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{interval: interval, fn: fn, logger: logger}
}

// Interval returns the tick cadence.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Start launches the ticker goroutine. Calling Start again, or after Stop,
// does nothing. Callbacks receive ctx; cancelling it also stops the ticker.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.stopped {
		return
	}
	s.started = true

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.loop(ctx, loopCtx)
}

func (s *Scheduler) loop(fireCtx, loopCtx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-loopCtx.Done():
			return
		case <-ticker.C:
			if loopCtx.Err() != nil {
				return
			}
			s.inflight.Add(1)
			go s.fire(fireCtx)
		}
	}
}

func (s *Scheduler) fire(ctx context.Context) {
	defer s.inflight.Done()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("refresh tick panicked",
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()))
		}
	}()
	s.fn(ctx)
}

// Stop halts future ticks. Once it returns no new fire is launched; a fire
// already running is not interrupted. Stop is idempotent and safe before Start.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Wait blocks until every launched fire has returned. Call it after Stop.
func (s *Scheduler) Wait() {
	s.inflight.Wait()
}
