package relaybox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countdown completes after n pending polls, logging every poll.
func countdown(name string, n int, log *[]string) Future[string] {
	return PollFunc[string](func(*Context) (string, bool) {
		*log = append(*log, name)
		if n == 0 {
			return name + " done", true
		}
		n--
		return "", false
	})
}

func TestYieldNow(t *testing.T) {
	woken := 0
	cx := NewContext(wakerFunc(func() { woken++ }))
	y := YieldNow()

	_, ok := y.Poll(cx)
	assert.False(t, ok)
	assert.Equal(t, 1, woken)

	_, ok = y.Poll(cx)
	assert.True(t, ok)
	assert.Equal(t, 1, woken)
}

func TestJoin2(t *testing.T) {
	t.Run("polls left before right until both are done", func(t *testing.T) {
		var log []string
		j := Join2(countdown("a", 1, &log), countdown("b", 3, &log))
		cx := NewContext(nil)

		polls := 0
		var res Pair[string, string]
		for {
			polls++
			v, ok := j.Poll(cx)
			if ok {
				res = v
				break
			}
			require.Less(t, polls, 10)
		}

		assert.Equal(t, 4, polls)
		assert.Equal(t, []string{"a", "b", "a", "b", "b", "b"}, log)
		assert.Equal(t, "a done", res.First)
		assert.Equal(t, "b done", res.Second)
	})

	t.Run("both ready on first poll", func(t *testing.T) {
		j := Join2(Ready(1), Ready("x"))
		v, ok := j.Poll(NewContext(nil))
		require.True(t, ok)
		assert.Equal(t, Pair[int, string]{First: 1, Second: "x"}, v)
	})

	t.Run("poll after completion panics", func(t *testing.T) {
		j := Join2(Ready(1), Ready(2))
		_, ok := j.Poll(NewContext(nil))
		require.True(t, ok)
		assert.Panics(t, func() { j.Poll(NewContext(nil)) })
	})

	t.Run("close releases unfinished branches", func(t *testing.T) {
		var log []string
		j := Join2(
			Task(func(co *Co) {
				defer func() { log = append(log, "left released") }()
				for {
					co.Yield()
				}
			}),
			Task(func(co *Co) {
				log = append(log, "right done")
			}),
		)
		_, ok := j.Poll(NewContext(nil))
		require.False(t, ok)
		j.(closer).Close()
		assert.Equal(t, []string{"right done", "left released"}, log)
	})
}

type wakerFunc func()

func (f wakerFunc) Wake() { f() }
