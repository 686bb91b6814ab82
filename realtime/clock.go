package realtime

import (
	"sync"
	"time"

	"github.com/greaheisl/relaybox"
)

// Clock provides the instants passed to the executor.
type Clock interface {
	Now() relaybox.Instant
}

// WallClock counts milliseconds since its creation, offset by a start
// instant.
type WallClock struct {
	epoch time.Time
	start relaybox.Instant
}

// NewWallClock returns a clock that reads zero now.
func NewWallClock() *WallClock {
	return NewWallClockAt(0)
}

// NewWallClockAt returns a clock that reads start now.
func NewWallClockAt(start relaybox.Instant) *WallClock {
	return &WallClock{epoch: time.Now(), start: start}
}

// Now returns the current instant. It wraps after about 49.7 days.
func (c *WallClock) Now() relaybox.Instant {
	ms := time.Since(c.epoch).Milliseconds()
	return c.start.Add(relaybox.Duration(uint32(ms)))
}

// ManualClock is a Clock that only moves when told to. It is safe for
// concurrent use.
type ManualClock struct {
	mu  sync.Mutex
	now relaybox.Instant
}

// NewManualClock returns a clock reading start.
func NewManualClock(start relaybox.Instant) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current instant.
func (c *ManualClock) Now() relaybox.Instant {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d relaybox.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Set moves the clock to t.
func (c *ManualClock) Set(t relaybox.Instant) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}
