package relaybox

// DelayRequest carries a maximum delay requested by a task.
//
// Only this package can create one; wrapper types may forward it to the
// scheduler they hold. Tasks use SleepAtMost instead of requesting delays
// directly.
type DelayRequest struct {
	millis Duration
}

// Duration returns the requested maximum delay.
func (r DelayRequest) Duration() Duration {
	return r.millis
}

// Timing gives access to the logical time of the executor.
type Timing interface {
	// Instant returns the instant passed to the latest call to Step.
	Instant() Instant
	// RequestDelay records a maximum delay before the next step.
	// Requests made during one step are merged by keeping the minimum.
	RequestDelay(r DelayRequest)
}

// SignalReader gives access to the signals value passed to Step.
type SignalReader[X any] interface {
	// Signals returns the signals passed to the latest call to Step.
	Signals() X
}

// Handle is the combined capability a scheduler offers to tasks.
type Handle[X any] interface {
	Timing
	SignalReader[X]
}

// Scheduler is the state an Executor shares with all computations of its
// task tree. It is not safe for concurrent use; see the package
// documentation on ownership.
type Scheduler[X any] struct {
	instant  Instant
	delay    Duration
	hasDelay bool
	signals  X
}

var _ Handle[struct{}] = (*Scheduler[struct{}])(nil)

// Instant returns the instant of the current step.
func (s *Scheduler[X]) Instant() Instant {
	return s.instant
}

// Signals returns the signals of the current step.
func (s *Scheduler[X]) Signals() X {
	return s.signals
}

// RequestDelay shrinks the pending delay request to r if r is smaller.
func (s *Scheduler[X]) RequestDelay(r DelayRequest) {
	if !s.hasDelay || r.millis < s.delay {
		s.delay = r.millis
		s.hasDelay = true
	}
}

// pendingDelay returns the minimum delay requested during the current step.
func (s *Scheduler[X]) pendingDelay() (Duration, bool) {
	return s.delay, s.hasDelay
}

func (s *Scheduler[X]) begin(instant Instant, signals X) {
	s.instant = instant
	s.signals = signals
	s.delay = 0
	s.hasDelay = false
}
