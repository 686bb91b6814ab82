package buttons

import "github.com/greaheisl/relaybox"

// WaitStopOrButton yields until a step carries a button signal. It returns
// relaybox.ErrStopped if stop fires first.
func WaitStopOrButton[F any](co *relaybox.Co, sys System[F], stop relaybox.StopSignal) error {
	_, err := relaybox.WaitStopOrSignal[bool](co, buttonSignals[F]{sys}, stop, isSet)
	return err
}

// WaitStopOrButtonOrTimeout is WaitStopOrButton bounded by timeout
// milliseconds. It reports true if a button signal ended the wait and false
// on timeout.
func WaitStopOrButtonOrTimeout[F any](co *relaybox.Co, sys System[F], stop relaybox.StopSignal, timeout relaybox.Duration) (bool, error) {
	_, ok, err := relaybox.WaitStopOrSignalTimeout[bool](co, buttonSignals[F]{sys}, stop, isSet, timeout)
	return ok, err
}

// WaitPressOrTimeout waits for a Press or Repeat event for at most timeout
// milliseconds. It returns that event, or an event of kind None on timeout.
func WaitPressOrTimeout[F Flags[F]](co *relaybox.Co, t relaybox.Timing, p *Processor[F], timeout relaybox.Duration) Event[F] {
	return WaitEventOrTimeout(co, t, p, timeout, func(e Event[F]) bool {
		return e.Kind == Press || e.Kind == Repeat
	})
}

// WaitEventOrTimeout waits for an event accepted by match for at most timeout
// milliseconds. It returns that event, or an event of kind None on timeout.
func WaitEventOrTimeout[F Flags[F]](co *relaybox.Co, t relaybox.Timing, p *Processor[F], timeout relaybox.Duration, match func(Event[F]) bool) Event[F] {
	tm := relaybox.NewTimer(t, timeout)
	for relaybox.Await(co, tm.YieldIfTimeLeft()) {
		if e := p.Event(); match(e) {
			return e
		}
	}
	return Event[F]{}
}
