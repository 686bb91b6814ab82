package realtime

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/greaheisl/relaybox"
)

// Config configures a Runtime.
type Config[X any] struct {
	// Clock provides instants. Defaults to a WallClock started by NewRuntime.
	Clock Clock
	// Merge combines a pending signal with a newly notified one. Defaults to
	// keeping the newer one.
	Merge func(pending, next X) X
	// MaxDelay caps the time between two steps (default: 1 minute).
	MaxDelay time.Duration
	// MinDelay is the pause before stepping again after the executor asked
	// for an immediate re-poll (default: 0).
	MinDelay time.Duration
	// Logger receives step diagnostics at debug level.
	Logger *slog.Logger
}

// Runtime steps an executor in real time.
type Runtime[X any] struct {
	exec     *relaybox.Executor[X]
	clock    Clock
	merge    func(pending, next X) X
	maxDelay time.Duration
	minDelay time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	pending X
	wake    chan struct{}

	steps   atomic.Uint64
	notices atomic.Uint64
}

// NewRuntime creates a runtime for exec. exec must not have been stepped
// yet.
func NewRuntime[X any](exec *relaybox.Executor[X], cfg Config[X]) *Runtime[X] {
	if cfg.Clock == nil {
		cfg.Clock = NewWallClock()
	}
	if cfg.Merge == nil {
		cfg.Merge = func(_, next X) X { return next }
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Runtime[X]{
		exec:     exec,
		clock:    cfg.Clock,
		merge:    cfg.Merge,
		maxDelay: cfg.MaxDelay,
		minDelay: cfg.MinDelay,
		logger:   cfg.Logger,
		wake:     make(chan struct{}, 1),
	}
}

// Notify records a signal for the next step and wakes the loop. It is safe
// to call from any goroutine and never blocks.
func (rt *Runtime[X]) Notify(x X) {
	rt.mu.Lock()
	rt.pending = rt.merge(rt.pending, x)
	rt.mu.Unlock()
	rt.notices.Add(1)

	select {
	case rt.wake <- struct{}{}:
	default:
	}
}

// Run steps the executor until its root task finishes, in which case it
// returns nil, or until ctx is done, in which case it closes the executor
// and returns ctx.Err().
func (rt *Runtime[X]) Run(ctx context.Context) error {
	timer := time.NewTimer(rt.maxDelay)
	defer timer.Stop()

	for {
		if err := ctx.Err(); err != nil {
			rt.exec.Close()
			return err
		}

		now := rt.clock.Now()
		delay, ok := rt.exec.Step(now, rt.collect())
		rt.steps.Add(1)
		if !ok {
			rt.logger.Debug("root task finished", "instant", now, "steps", rt.steps.Load())
			return nil
		}

		wait := delay.Std()
		switch {
		case wait <= 0:
			wait = rt.minDelay
		case wait > rt.maxDelay:
			wait = rt.maxDelay
		}
		if wait <= 0 {
			continue
		}
		timer.Reset(wait)

		select {
		case <-ctx.Done():
			rt.exec.Close()
			return ctx.Err()
		case <-rt.wake:
			timer.Stop()
		case <-timer.C:
		}
	}
}

// collect takes the pending signal, leaving the zero value behind.
func (rt *Runtime[X]) collect() X {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	x := rt.pending
	var zero X
	rt.pending = zero
	return x
}

// Steps returns the number of steps made so far.
func (rt *Runtime[X]) Steps() uint64 {
	return rt.steps.Load()
}

// Notifications returns the number of calls to Notify so far.
func (rt *Runtime[X]) Notifications() uint64 {
	return rt.notices.Load()
}
