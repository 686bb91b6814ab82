package buttons

import "github.com/greaheisl/relaybox"

// Flags is the constraint on raw button flags: a comparable bit set that can
// tell whether it is empty and whether it contains another set.
type Flags[F any] interface {
	comparable
	IsNone() bool
	Contains(other F) bool
}

// System is what the processor needs from its environment: logical time,
// the raw button flags and whether the current step was caused by a button.
type System[F any] interface {
	relaybox.Timing
	ButtonFlags() F
	ButtonSignal() bool
}

// buttonSignals presents the button signal of a System as the signals value
// of a relaybox.Handle.
type buttonSignals[F any] struct {
	System[F]
}

func (s buttonSignals[F]) Signals() bool {
	return s.ButtonSignal()
}

func isSet(b bool) bool { return b }
