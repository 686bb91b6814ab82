package relaybox

// SleepAtMost returns a future that asks to be resumed within d milliseconds
// and then suspends exactly once.
//
// The request is recorded on the first poll and merged with all other
// requests of the same step by keeping the minimum. The future may be resumed
// earlier than requested, for instance when the host steps because of an
// external event. Waiting for a longer span therefore means calling
// SleepAtMost in a loop, see Timer.
func SleepAtMost(t Timing, d Duration) Future[Unit] {
	return &sleepAtMost{t: t, d: d}
}

type sleepAtMost struct {
	t         Timing
	d         Duration
	requested bool
	y         yieldNow
}

func (s *sleepAtMost) Poll(cx *Context) (Unit, bool) {
	if !s.requested {
		s.requested = true
		s.t.RequestDelay(DelayRequest{millis: s.d})
	}
	return s.y.Poll(cx)
}
