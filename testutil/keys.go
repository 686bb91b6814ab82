// Package testutil provides a fake button system for tests and benchmarks.
package testutil

import (
	"strings"

	"github.com/greaheisl/relaybox"
	"github.com/greaheisl/relaybox/buttons"
)

// Keys is a small set of button flags used by tests.
type Keys uint8

const (
	KeyA Keys = 1 << iota
	KeyB
	KeyEnter
	KeyPrev
	KeyNext

	NoKeys Keys = 0
)

var keyNames = []struct {
	key  Keys
	name string
}{
	{KeyA, "A"},
	{KeyB, "B"},
	{KeyEnter, "Enter"},
	{KeyPrev, "Prev"},
	{KeyNext, "Next"},
}

// IsNone reports whether no key is set.
func (k Keys) IsNone() bool {
	return k == 0
}

// Contains reports whether every key of other is also set in k.
func (k Keys) Contains(other Keys) bool {
	return k&other == other
}

func (k Keys) String() string {
	if k == 0 {
		return "none"
	}
	var parts []string
	for _, kn := range keyNames {
		if k&kn.key != 0 {
			parts = append(parts, kn.name)
		}
	}
	return strings.Join(parts, "|")
}

// Sys is a buttons.System backed by an executor's scheduler. The signals
// value of the executor is the button signal; Keys holds the raw flags the
// processor reads on its next step.
type Sys struct {
	*relaybox.Scheduler[bool]
	Keys Keys
}

var _ buttons.System[Keys] = (*Sys)(nil)

// NewSys starts building an executor whose root task gets the returned Sys.
func NewSys(start relaybox.Instant) (*relaybox.Builder[bool], *Sys) {
	b := relaybox.NewExecutor[bool](start)
	return b, &Sys{Scheduler: b.Scheduler()}
}

// ButtonFlags returns the current raw flags.
func (s *Sys) ButtonFlags() Keys {
	return s.Keys
}

// ButtonSignal reports whether the current step was triggered by a button.
func (s *Sys) ButtonSignal() bool {
	return s.Signals()
}

// Reading is one host step: the keys held at a given instant and whether the
// step carries a button signal.
type Reading struct {
	At     relaybox.Instant
	Keys   Keys
	Signal bool
}

// Cadence returns readings spaced by step milliseconds starting at start,
// each carrying a button signal.
func Cadence(start relaybox.Instant, step relaybox.Duration, keys ...Keys) []Reading {
	out := make([]Reading, len(keys))
	at := start
	for i, k := range keys {
		out[i] = Reading{At: at, Keys: k, Signal: true}
		at = at.Add(step)
	}
	return out
}

// Replay steps exec once per reading and returns the delays it reported.
// It stops early when the root task finishes.
func Replay(exec *relaybox.Executor[bool], sys *Sys, readings []Reading) []relaybox.Duration {
	var delays []relaybox.Duration
	for _, r := range readings {
		sys.Keys = r.Keys
		d, ok := exec.Step(r.At, r.Signal)
		if !ok {
			break
		}
		delays = append(delays, d)
	}
	return delays
}

// Follow keeps stepping exec without button signals, each time at the
// instant the executor asked for, until n steps were made or the root task
// finished. It returns the instants of the steps.
func Follow(exec *relaybox.Executor[bool], now relaybox.Instant, delay relaybox.Duration, n int) []relaybox.Instant {
	var at []relaybox.Instant
	for i := 0; i < n; i++ {
		now = now.Add(delay)
		at = append(at, now)
		d, ok := exec.Step(now, false)
		if !ok {
			break
		}
		delay = d
	}
	return at
}
