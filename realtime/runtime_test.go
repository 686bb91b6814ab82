package realtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greaheisl/relaybox"
)

func runAsync[X any](ctx context.Context, rt *Runtime[X]) <-chan error {
	done := make(chan error, 1)
	go func() { done <- rt.Run(ctx) }()
	return done
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("runtime did not return")
		return nil
	}
}

func TestRuntimeRunsToCompletion(t *testing.T) {
	b := relaybox.NewExecutor[uint8](0)
	sys := b.Scheduler()
	var seen []relaybox.Instant
	exec := b.Build(relaybox.Task(func(co *relaybox.Co) {
		for i := 0; i < 3; i++ {
			seen = append(seen, sys.Instant())
			co.SleepAtMost(sys, 5)
		}
	}))

	rt := NewRuntime(exec, Config[uint8]{})
	err := waitDone(t, runAsync(context.Background(), rt))
	require.NoError(t, err)
	assert.Equal(t, uint64(4), rt.Steps())
	require.Len(t, seen, 3)
	for i := 1; i < len(seen); i++ {
		assert.GreaterOrEqual(t, seen[i].Sub(seen[i-1]), relaybox.Duration(0))
	}
}

func TestRuntimeNotifyWakesLoop(t *testing.T) {
	b := relaybox.NewExecutor[uint8](0)
	sys := b.Scheduler()
	var got uint8
	exec := b.Build(relaybox.Task(func(co *relaybox.Co) {
		for sys.Signals()&0x2 == 0 {
			co.SleepAtMost(sys, 60_000)
		}
		got = sys.Signals()
	}))

	rt := NewRuntime(exec, Config[uint8]{
		Clock: NewManualClock(100),
		Merge: func(pending, next uint8) uint8 { return pending | next },
	})
	done := runAsync(context.Background(), rt)
	rt.Notify(0x1)
	rt.Notify(0x2)

	require.NoError(t, waitDone(t, done))
	assert.NotZero(t, got&0x2)
	assert.Equal(t, uint64(2), rt.Notifications())
}

func TestRuntimeMaxDelay(t *testing.T) {
	b := relaybox.NewExecutor[uint8](0)
	sys := b.Scheduler()
	exec := b.Build(relaybox.Task(func(co *relaybox.Co) {
		co.SleepAtMost(sys, 60_000)
		co.SleepAtMost(sys, 60_000)
	}))

	rt := NewRuntime(exec, Config[uint8]{MaxDelay: 5 * time.Millisecond})
	require.NoError(t, waitDone(t, runAsync(context.Background(), rt)))
	assert.Equal(t, uint64(3), rt.Steps())
}

func TestRuntimeCancel(t *testing.T) {
	b := relaybox.NewExecutor[uint8](0)
	sys := b.Scheduler()
	released := make(chan struct{})
	exec := b.Build(relaybox.Task(func(co *relaybox.Co) {
		defer close(released)
		for {
			co.SleepAtMost(sys, 60_000)
		}
	}))

	ctx, cancel := context.WithCancel(context.Background())
	rt := NewRuntime(exec, Config[uint8]{})
	done := runAsync(ctx, rt)
	time.Sleep(10 * time.Millisecond)
	cancel()

	err := waitDone(t, done)
	assert.True(t, errors.Is(err, context.Canceled))
	select {
	case <-released:
	default:
		t.Error("task was not released")
	}
}

func TestManualClock(t *testing.T) {
	c := NewManualClock(relaybox.FromAbsolute(0xFFFF_FFF0))
	c.Advance(0x20)
	assert.Equal(t, relaybox.FromAbsolute(0x10), c.Now())
	c.Set(5)
	assert.Equal(t, relaybox.Instant(5), c.Now())
}

func TestWallClockStart(t *testing.T) {
	c := NewWallClockAt(1000)
	d := c.Now().Sub(1000)
	assert.GreaterOrEqual(t, d, relaybox.Duration(0))
	assert.Less(t, d, relaybox.Duration(1000))
}
