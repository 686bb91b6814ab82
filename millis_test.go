package relaybox

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInstantArithmetic(t *testing.T) {
	t.Run("difference of ordered instants", func(t *testing.T) {
		a := FromAbsolute(1000)
		b := FromAbsolute(1250)
		assert.Equal(t, Duration(250), b.Sub(a))
		assert.Equal(t, Duration(-250), a.Sub(b))
		assert.True(t, a.Before(b))
		assert.False(t, b.Before(a))
	})

	t.Run("difference across wraparound", func(t *testing.T) {
		a := FromAbsolute(math.MaxUint32 - 15)
		b := FromAbsolute(16)
		assert.Equal(t, Duration(32), b.Sub(a))
		assert.Equal(t, Duration(-32), a.Sub(b))
		assert.Equal(t, b, a.Add(32))
	})

	t.Run("add negative duration", func(t *testing.T) {
		a := FromAbsolute(5)
		assert.Equal(t, FromAbsolute(math.MaxUint32-4), a.Add(-10))
	})

	t.Run("add then subtract round trips", func(t *testing.T) {
		starts := []uint32{0, 1, 10, 1 << 31, math.MaxUint32 - 1, math.MaxUint32, 123456789}
		deltas := []Duration{0, 1, -1, 99, -99, 750, -375, math.MaxInt32, math.MinInt32, 24 * 24 * 3600 * 1000}
		for _, s := range starts {
			for _, d := range deltas {
				start := FromAbsolute(s)
				assert.Equal(t, d, start.Add(d).Sub(start), "start=%d d=%d", s, d)
			}
		}
	})

	t.Run("accumulating", func(t *testing.T) {
		now := FromAbsolute(10)
		now = now.Add(10)
		now = now.Add(100)
		assert.Equal(t, uint32(120), now.Millis())
	})
}

func TestDurationConversion(t *testing.T) {
	assert.Equal(t, 750*time.Millisecond, Duration(750).Std())
	assert.Equal(t, -2*time.Second, Duration(-2000).Std())
	assert.Equal(t, Duration(1500), DurationOf(1500*time.Millisecond+999*time.Microsecond))
	assert.Equal(t, Duration(math.MaxInt32), DurationOf(1000*time.Hour))
	assert.Equal(t, Duration(math.MinInt32), DurationOf(-1000*time.Hour))
	assert.Equal(t, "375ms", Duration(375).String())
	assert.Equal(t, "@42ms", FromAbsolute(42).String())
}
