package benchmarks

import (
	"context"
	"testing"
	"time"

	"github.com/greaheisl/relaybox"
	"github.com/greaheisl/relaybox/realtime"
)

// BenchmarkRuntimeNotify measures the round trip from Notify to a step
// that sees the signal.
func BenchmarkRuntimeNotify(b *testing.B) {
	clock := realtime.NewManualClock(0)
	builder := relaybox.NewExecutor[bool](clock.Now())
	sched := builder.Scheduler()
	seen := make(chan struct{})
	exec := builder.Build(relaybox.Task(func(co *relaybox.Co) {
		for {
			relaybox.WaitSignal[bool](co, sched, func(x bool) bool { return x })
			seen <- struct{}{}
		}
	}))
	// WaitSignal requests no delay; MinDelay keeps the loop parked until
	// the next Notify.
	rt := realtime.NewRuntime(exec, realtime.Config[bool]{
		Clock:    clock,
		Merge:    func(a, b bool) bool { return a || b },
		MinDelay: time.Minute,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rt.Run(ctx) }()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rt.Notify(true)
		<-seen
	}
	b.StopTimer()
	cancel()
	if err := <-done; err != context.Canceled {
		b.Fatalf("Run returned %v", err)
	}
}
