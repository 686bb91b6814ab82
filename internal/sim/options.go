package sim

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/greaheisl/relaybox"
)

// DefaultMaxSteps bounds the steps of a run.
const DefaultMaxSteps = 100_000

// DefaultTimerDuration is the on time of timers started from the panel.
const DefaultTimerDuration relaybox.Duration = 60 * 60 * 1000

// Option configures a Simulator.
type Option func(*Simulator)

// WithLogger sets the logger of the simulator and the device tasks.
func WithLogger(l *slog.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObserver adds an executor step observer.
func WithObserver(o relaybox.Observer) Option {
	return func(s *Simulator) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// WithRecordHook registers a hook that sees every record as it is made.
func WithRecordHook(h func(Record)) Option {
	return func(s *Simulator) {
		if h != nil {
			s.hooks = append(s.hooks, h)
		}
	}
}

// WithMaxSteps bounds the number of executor steps. A run that needs more
// fails with ErrSpin.
func WithMaxSteps(n uint64) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.maxSteps = n
		}
	}
}

// WithTimerDuration sets the on time of timers started from the panel.
func WithTimerDuration(d relaybox.Duration) Option {
	return func(s *Simulator) {
		if d > 0 {
			s.timer = d
		}
	}
}

// WithRunID fixes the run id of the trace, so that records can be
// attributed to the run while it is in progress. By default every run gets
// a fresh random id.
func WithRunID(id uuid.UUID) Option {
	return func(s *Simulator) {
		s.runID = id
	}
}
