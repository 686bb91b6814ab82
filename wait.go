package relaybox

import "errors"

// ErrStopped is returned by waits that were interrupted by a stop signal.
// It marks an ordinary, expected termination rather than a failure.
var ErrStopped = errors.New("relaybox: stopped")

// StopSignal reports whether a cooperating branch asked the others to stop.
type StopSignal interface {
	Stopped() bool
}

// StopFlag is a StopSignal set by calling Stop. Like every shared cell in a
// task tree it is not synchronized.
type StopFlag struct {
	stopped bool
}

// Stop raises the flag.
func (f *StopFlag) Stop() {
	f.stopped = true
}

// Stopped reports whether Stop was called.
func (f *StopFlag) Stopped() bool {
	return f.stopped
}

// WaitSignal yields until match reports true for the signals of a step and
// returns those signals.
func WaitSignal[X any](co *Co, src SignalReader[X], match func(X) bool) X {
	for {
		co.Yield()
		if sig := src.Signals(); match(sig) {
			return sig
		}
	}
}

// WaitStopOrSignal yields until match reports true for the signals of a
// step, or until stop fires. In the latter case it returns ErrStopped.
func WaitStopOrSignal[X any](co *Co, src SignalReader[X], stop StopSignal, match func(X) bool) (X, error) {
	for !stop.Stopped() {
		co.Yield()
		if sig := src.Signals(); match(sig) {
			return sig, nil
		}
	}
	var zero X
	return zero, ErrStopped
}

// WaitStopOrSignalTimeout is WaitStopOrSignal with an upper bound on the
// waiting time. On timeout it returns the zero value, false and no error.
// The boolean is true when a matching signal ended the wait.
func WaitStopOrSignalTimeout[X any](co *Co, src Handle[X], stop StopSignal, match func(X) bool, timeout Duration) (X, bool, error) {
	var zero X
	start := src.Instant()
	left := timeout
	for !stop.Stopped() {
		co.SleepAtMost(src, left)
		if sig := src.Signals(); match(sig) {
			return sig, true, nil
		}
		left = timeout - src.Instant().Sub(start)
		if left <= 0 {
			return zero, false, nil
		}
	}
	return zero, false, ErrStopped
}
