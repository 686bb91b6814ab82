// Package realtime drives a relaybox executor against the wall clock.
//
// A Runtime owns the host loop of an executor: it steps the executor with
// the current instant and the signals collected since the previous step,
// then sleeps until the executor's requested delay runs out or a new signal
// arrives, whichever comes first.
//
// # Example Usage
//
//	b := relaybox.NewExecutor[device.SignalFlags](0)
//	exec := b.Build(device.Run(box, settings, opts, ui))
//	rt := realtime.NewRuntime(exec, realtime.Config[device.SignalFlags]{
//		Clock: realtime.NewWallClock(),
//		Merge: device.MergeSignals,
//	})
//	go readButtons(func() { rt.Notify(device.SignalButton) })
//	err := rt.Run(ctx)
//
// # Signals
//
// Notify may be called from any goroutine. Signals arriving between two
// steps are combined with Config.Merge and handed to the next step as one
// value. Without a merge function the latest signal wins.
//
// # Delays
//
// The delay returned by a step is an upper bound. The runtime never waits
// longer than Config.MaxDelay, and steps again immediately when the executor
// asks for a zero delay. A task tree that keeps asking for zero delays keeps
// the runtime busy; Config.MinDelay puts a floor under such re-polls.
//
// # Ownership
//
// The executor is stepped from the goroutine calling Run and must not be
// used elsewhere. When Run returns because its context ended, the executor
// has been closed.
package realtime
