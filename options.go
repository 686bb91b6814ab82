package relaybox

import (
	"log/slog"
	"time"
)

// StepInfo describes the outcome of one Step.
type StepInfo struct {
	// Step is the sequence number of the step, starting at 1.
	Step uint64
	// Instant is the instant passed to Step.
	Instant Instant
	// Delay is the delay returned to the host. It is zero when the task
	// finished or when no delay was requested.
	Delay Duration
	// Requested reports whether any branch requested a delay.
	Requested bool
	// Finished reports whether the root task completed during this step.
	Finished bool
	// Elapsed is the wall time spent polling.
	Elapsed time.Duration
}

// Observer is notified after every step that polled the root task.
type Observer interface {
	ObserveStep(info StepInfo)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(info StepInfo)

// ObserveStep calls f(info).
func (f ObserverFunc) ObserveStep(info StepInfo) {
	f(info)
}

// Option configures an Executor.
type Option func(*config)

type config struct {
	logger    *slog.Logger
	observers []Observer
}

// WithLogger sets the logger used for step diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver adds an observer of step outcomes.
func WithObserver(o Observer) Option {
	return func(c *config) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}
