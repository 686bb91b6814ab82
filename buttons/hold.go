package buttons

import (
	"fmt"

	"github.com/greaheisl/relaybox"
)

// HoldResult is the outcome of watching a held combination.
type HoldResult uint8

const (
	// HoldPending means no decision yet; check again.
	HoldPending HoldResult = iota
	// HoldOther means the button state changed to something with no
	// interpretation for this hold.
	HoldOther
	// HoldReleasedEarly means the combination was released before the
	// required duration.
	HoldReleasedEarly
	// HoldConfirmed means the combination was held for the required duration.
	HoldConfirmed
)

func (r HoldResult) String() string {
	switch r {
	case HoldPending:
		return "Pending"
	case HoldOther:
		return "Other"
	case HoldReleasedEarly:
		return "ReleasedEarly"
	case HoldConfirmed:
		return "Confirmed"
	default:
		return fmt.Sprintf("HoldResult(%d)", uint8(r))
	}
}

// HoldChecker watches whether the combination currently held stays held for
// a given duration.
type HoldChecker[F Flags[F]] struct {
	t        relaybox.Timing
	p        *Processor[F]
	duration relaybox.Duration
	since    relaybox.Instant
	flags    F
}

// NewHoldChecker starts watching the combination p currently reports as
// held. The duration counts from the instant the combination was first
// seen, not from the call.
//
// It panics if p is not in the SomeButtons state.
func NewHoldChecker[F Flags[F]](t relaybox.Timing, p *Processor[F], d relaybox.Duration) *HoldChecker[F] {
	s := p.State()
	if s.Kind != SomeButtons {
		panic(fmt.Sprintf("buttons: cannot check hold in state %v, no button pressed", s.Kind))
	}
	return &HoldChecker[F]{
		t:        t,
		p:        p,
		duration: d,
		since:    s.Since,
		flags:    s.Flags,
	}
}

// TimeLeft returns the time left until the hold is confirmed. It is negative
// once the duration has passed.
func (h *HoldChecker[F]) TimeLeft() relaybox.Duration {
	return h.duration - h.t.Instant().Sub(h.since)
}

// StartTime returns the instant since when the combination is held.
func (h *HoldChecker[F]) StartTime() relaybox.Instant {
	return h.since
}

// Flags returns the watched combination.
func (h *HoldChecker[F]) Flags() F {
	return h.flags
}

// YieldIfTimeLeft returns a future that completes right away with a
// definitive result if the state changed or the time is up. Otherwise it
// requests a delay of at most the remaining time, suspends once and
// completes with HoldPending.
//
// Use it when other conditions must be watched during the hold; Wait is
// simpler otherwise.
func (h *HoldChecker[F]) YieldIfTimeLeft() relaybox.Future[HoldResult] {
	return &holdYield[F]{h: h}
}

// Wait returns a future that completes with the first definitive result.
func (h *HoldChecker[F]) Wait() relaybox.Future[HoldResult] {
	return &holdWait[F]{h: h}
}

// check returns the definitive result, if any, and the remaining time.
func (h *HoldChecker[F]) check() (HoldResult, relaybox.Duration) {
	if h.p.Event().Is(Release, h.flags) {
		return HoldReleasedEarly, 0
	}
	s := h.p.State()
	if s.Kind != SomeButtons || s.Flags != h.flags {
		return HoldOther, 0
	}
	left := h.TimeLeft()
	if left <= 0 {
		return HoldConfirmed, 0
	}
	return HoldPending, left
}

type holdYield[F Flags[F]] struct {
	h     *HoldChecker[F]
	sleep relaybox.Future[relaybox.Unit]
}

func (y *holdYield[F]) Poll(cx *relaybox.Context) (HoldResult, bool) {
	if y.sleep == nil {
		res, left := y.h.check()
		if res != HoldPending {
			return res, true
		}
		y.sleep = relaybox.SleepAtMost(y.h.t, left)
	}
	if _, ok := y.sleep.Poll(cx); !ok {
		return HoldPending, false
	}
	return HoldPending, true
}

type holdWait[F Flags[F]] struct {
	h     *HoldChecker[F]
	inner relaybox.Future[HoldResult]
}

func (w *holdWait[F]) Poll(cx *relaybox.Context) (HoldResult, bool) {
	for {
		if w.inner == nil {
			w.inner = w.h.YieldIfTimeLeft()
		}
		res, ok := w.inner.Poll(cx)
		if !ok {
			return HoldPending, false
		}
		w.inner = nil
		if res != HoldPending {
			return res, true
		}
	}
}
