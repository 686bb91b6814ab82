package relaybox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pollUntilDone[T any](t *testing.T, f Future[T], limit int) (T, int) {
	t.Helper()
	cx := NewContext(nil)
	for i := 1; i <= limit; i++ {
		if v, ok := f.Poll(cx); ok {
			return v, i
		}
	}
	require.FailNow(t, "future did not complete", "after %d polls", limit)
	var zero T
	return zero, limit
}

func TestAsync(t *testing.T) {
	t.Run("returns body result", func(t *testing.T) {
		f := Async(func(co *Co) int {
			co.Yield()
			co.Yield()
			return 42
		})
		v, polls := pollUntilDone(t, f, 10)
		assert.Equal(t, 42, v)
		assert.Equal(t, 3, polls)
	})

	t.Run("await of ready future does not suspend", func(t *testing.T) {
		f := Async(func(co *Co) string {
			return Await(co, Ready("now"))
		})
		v, polls := pollUntilDone(t, f, 10)
		assert.Equal(t, "now", v)
		assert.Equal(t, 1, polls)
	})

	t.Run("nested coroutines", func(t *testing.T) {
		var log []string
		inner := func(name string) Future[int] {
			return Async(func(co *Co) int {
				log = append(log, name+" start")
				co.Yield()
				log = append(log, name+" end")
				return len(name)
			})
		}
		f := Async(func(co *Co) int {
			a := Await(co, inner("one"))
			b := Await(co, inner("three"))
			return a + b
		})
		v, polls := pollUntilDone(t, f, 10)
		assert.Equal(t, 8, v)
		assert.Equal(t, 3, polls)
		assert.Equal(t, []string{"one start", "one end", "three start", "three end"}, log)
	})

	t.Run("poll after completion panics", func(t *testing.T) {
		f := Task(func(co *Co) {})
		_, ok := f.Poll(NewContext(nil))
		require.True(t, ok)
		assert.Panics(t, func() { f.Poll(NewContext(nil)) })
	})

	t.Run("panic in body reaches the poller", func(t *testing.T) {
		f := Task(func(co *Co) {
			co.Yield()
			panic("boom")
		})
		_, ok := f.Poll(NewContext(nil))
		require.False(t, ok)
		assert.PanicsWithValue(t, "boom", func() { f.Poll(NewContext(nil)) })
	})

	t.Run("close unwinds body and awaited futures", func(t *testing.T) {
		var log []string
		f := Task(func(co *Co) {
			defer func() { log = append(log, "outer released") }()
			Await(co, Task(func(co *Co) {
				defer func() { log = append(log, "inner released") }()
				for {
					co.Yield()
				}
			}))
			log = append(log, "unreachable")
		})
		_, ok := f.Poll(NewContext(nil))
		require.False(t, ok)
		f.(closer).Close()
		assert.Equal(t, []string{"inner released", "outer released"}, log)
	})
	t.Run("body does not start before the first poll", func(t *testing.T) {
		started := false
		f := Task(func(co *Co) { started = true })
		c := f.(*coroutine[Unit])
		assert.Nil(t, c.next)
		assert.False(t, started)

		_, ok := f.Poll(NewContext(nil))
		assert.True(t, ok)
		assert.True(t, started)
	})

	t.Run("close before the first poll never runs the body", func(t *testing.T) {
		started := false
		f := Task(func(co *Co) { started = true })
		f.(closer).Close()
		assert.False(t, started)
		assert.Panics(t, func() { f.Poll(NewContext(nil)) })
	})
}
