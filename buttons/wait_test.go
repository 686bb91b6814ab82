package buttons_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/greaheisl/relaybox"
	"github.com/greaheisl/relaybox/buttons"
	"github.com/greaheisl/relaybox/testutil"
)

type pressRig struct {
	sys  *testutil.Sys
	exec *relaybox.Executor[bool]
	got  buttons.Event[testutil.Keys]
	at   relaybox.Instant
	done bool
}

func newPressRig(t *testing.T, timeout relaybox.Duration) *pressRig {
	t.Helper()
	r := &pressRig{}
	b, sys := testutil.NewSys(0)
	r.sys = sys
	p := buttons.NewProcessor[testutil.Keys](buttons.DefaultOptions())
	r.exec = b.Build(buttons.Run(p, sys, relaybox.Task(func(co *relaybox.Co) {
		r.got = buttons.WaitPressOrTimeout(co, sys, p, timeout)
		r.at = sys.Instant()
		r.done = true
	})))
	t.Cleanup(r.exec.Close)
	return r
}

func TestWaitPressOrTimeout(t *testing.T) {
	t.Run("press", func(t *testing.T) {
		r := newPressRig(t, 1000)
		testutil.Replay(r.exec, r.sys, testutil.Cadence(0, 300, testutil.NoKeys, testutil.NoKeys))
		assert.False(t, r.done)
		testutil.Replay(r.exec, r.sys, []testutil.Reading{{At: 400, Keys: testutil.KeyA, Signal: true}})
		assert.True(t, r.done)
		assert.True(t, r.got.Is(buttons.Press, testutil.KeyA))
		assert.Equal(t, relaybox.Instant(400), r.at)
	})

	t.Run("timeout", func(t *testing.T) {
		r := newPressRig(t, 1000)
		delays := testutil.Replay(r.exec, r.sys, []testutil.Reading{{At: 0, Keys: testutil.NoKeys, Signal: true}})
		assert.Equal(t, []relaybox.Duration{1000}, delays)
		testutil.Follow(r.exec, 0, 1000, 1)
		assert.True(t, r.done)
		assert.Equal(t, buttons.None, r.got.Kind)
		assert.Equal(t, relaybox.Instant(1000), r.at)
	})
}

func TestWaitStopOrButtonOrTimeout(t *testing.T) {
	b, sys := testutil.NewSys(0)
	var stop relaybox.StopFlag
	var results []bool
	var errs []error
	exec := b.Build(relaybox.Task(func(co *relaybox.Co) {
		for i := 0; i < 3; i++ {
			ok, err := buttons.WaitStopOrButtonOrTimeout(co, sys, &stop, 500)
			results = append(results, ok)
			errs = append(errs, err)
		}
	}))
	t.Cleanup(exec.Close)

	exec.Step(0, false)
	exec.Step(200, true)  // button
	exec.Step(700, false) // timeout
	stop.Stop()
	_, ok := exec.Step(800, false)

	assert.False(t, ok)
	assert.Equal(t, []bool{true, false, false}, results)
	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
	assert.ErrorIs(t, errs[2], relaybox.ErrStopped)
}
