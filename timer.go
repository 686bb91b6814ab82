package relaybox

// Timer waits until a given span has passed since its creation.
//
// The wait is cooperative: YieldIfTimeLeft gives the caller a chance to look
// at other conditions each time the task is resumed, while the total wait
// stays bounded by the target duration no matter how many external events
// cause early resumptions.
type Timer struct {
	t      Timing
	start  Instant
	target Duration
}

// NewTimer creates a timer for d milliseconds starting at the current
// instant of t.
func NewTimer(t Timing, d Duration) *Timer {
	return &Timer{t: t, start: t.Instant(), target: d}
}

// TimeLeft returns the remaining time, based on the current instant of the
// scheduler. It becomes negative once the target duration has passed.
func (tm *Timer) TimeLeft() Duration {
	return tm.target - tm.t.Instant().Sub(tm.start)
}

// StartTime returns the instant at which the timer was created.
func (tm *Timer) StartTime() Instant {
	return tm.start
}

// YieldIfTimeLeft returns a future completing with false right away if no
// time is left. Otherwise it requests a delay of at most the remaining time,
// suspends once and completes with true.
func (tm *Timer) YieldIfTimeLeft() Future[bool] {
	return &timerYield{tm: tm}
}

// Wait returns a future that completes when the remaining time is used up.
// It cannot be stopped early; loop over YieldIfTimeLeft for that.
func (tm *Timer) Wait() Future[Unit] {
	return &timerWait{tm: tm}
}

type timerYield struct {
	tm    *Timer
	sleep Future[Unit]
}

func (y *timerYield) Poll(cx *Context) (bool, bool) {
	if y.sleep == nil {
		left := y.tm.TimeLeft()
		if left <= 0 {
			return false, true
		}
		y.sleep = SleepAtMost(y.tm.t, left)
	}
	if _, ok := y.sleep.Poll(cx); !ok {
		return false, false
	}
	return true, true
}

type timerWait struct {
	tm    *Timer
	inner Future[bool]
}

func (w *timerWait) Poll(cx *Context) (Unit, bool) {
	for {
		if w.inner == nil {
			w.inner = w.tm.YieldIfTimeLeft()
		}
		more, ok := w.inner.Poll(cx)
		if !ok {
			return Unit{}, false
		}
		w.inner = nil
		if !more {
			return Unit{}, true
		}
	}
}
