package relaybox

import (
	"fmt"
	"math"
	"time"
)

// Instant is a point in time with millisecond precision and 32 bit width.
//
// Instants have no absolute meaning; only differences between instants taken
// from the same source are meaningful. The counter wraps around after about
// 49.7 days.
type Instant uint32

// Duration is a signed span of milliseconds. Negative values mean that the
// span has already elapsed.
//
// The difference of two instants is only correct as long as the true time
// difference fits into a Duration (roughly ±24 days). Keeping compared spans
// below that limit is the caller's obligation.
type Duration int32

// FromAbsolute constructs an instant from a raw millisecond counter.
// All instants that are compared with each other must share the same epoch.
func FromAbsolute(millis uint32) Instant {
	return Instant(millis)
}

// Millis returns the raw millisecond counter.
func (t Instant) Millis() uint32 {
	return uint32(t)
}

// Sub returns t - u. The subtraction wraps around and is read as two's
// complement, so the result is negative when u lies after t.
func (t Instant) Sub(u Instant) Duration {
	return Duration(int32(uint32(t) - uint32(u)))
}

// Add returns t shifted by d, wrapping around on overflow.
func (t Instant) Add(d Duration) Instant {
	return Instant(uint32(t) + uint32(int32(d)))
}

// Before reports whether t lies before u, given the 24 day constraint.
func (t Instant) Before(u Instant) bool {
	return t.Sub(u) < 0
}

func (t Instant) String() string {
	return fmt.Sprintf("@%dms", uint32(t))
}

// Std converts d to a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d) * time.Millisecond
}

func (d Duration) String() string {
	return fmt.Sprintf("%dms", int32(d))
}

// DurationOf converts a time.Duration to milliseconds, truncating toward zero
// and saturating at the bounds of Duration.
func DurationOf(d time.Duration) Duration {
	ms := d.Milliseconds()
	switch {
	case ms > math.MaxInt32:
		return Duration(math.MaxInt32)
	case ms < math.MinInt32:
		return Duration(math.MinInt32)
	}
	return Duration(ms)
}
