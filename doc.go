// Package relaybox provides a minimal cooperative executor for small control
// devices such as a relay/timer box with push buttons.
//
// The executor runs exactly one root task. The task forks into emulated
// parallel branches with [Join2]; there are no goroutines involved in the
// scheduling itself. The host event loop drives everything:
//
//	b := relaybox.NewExecutor[Signals](clock.Now())
//	sys := b.Scheduler()
//	exec := b.Build(relaybox.Task(func(co *relaybox.Co) {
//		for {
//			blink(sys)
//			co.SleepAtMost(sys, 500)
//		}
//	}))
//	for {
//		delay, ok := exec.Step(clock.Now(), pendingSignals())
//		if !ok {
//			break // root task finished
//		}
//		waitForEventOrTimeout(delay)
//	}
//
// # Time
//
// Time is logical. Each call to [Executor.Step] supplies the current
// [Instant]; tasks read it through the [Timing] capability and ask for a
// wake-up with [SleepAtMost]. The executor merges all requests made during
// one step into a single maximum delay. Instants are 32 bit milliseconds and
// wrap around after about 49.7 days; two instants must never be compared
// across a span longer than about 24 days.
//
// # Suspension
//
// A [Future] is polled; it either completes with a value or reports pending.
// [YieldNow] is the only primitive that actually suspends, everything else is
// composed on top of it. For readable task code, [Async] turns a plain
// function into a future running as a coroutine: inside the body, [Await]
// suspends until another future completes.
//
// # Step with no delay request
//
// When no branch requested a delay during a step, Step returns a zero delay,
// meaning "poll again as soon as possible". A task that only ever calls
// [Co.Yield] without sleeping makes the host spin. This is intended for
// signal driven waits (the host calls Step on every external event anyway),
// but hosts should cap their polling rate if they cannot rule it out.
//
// # Ownership
//
// All shared cells (scheduler state, button event and state) are plain
// unsynchronized fields. This is legal because an executor is owned by a
// single goroutine: the first goroutine calling Step becomes the owner, and
// any Step from another goroutine panics.
package relaybox
