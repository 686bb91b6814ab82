package device

import (
	"github.com/greaheisl/relaybox"
	"github.com/greaheisl/relaybox/buttons"
)

// UI is the user interface task. It reads button events from p and returns
// when the box should shut down.
type UI func(co *relaybox.Co, p *buttons.Processor[ButtonFlags])

// Run is the main task of the box. It runs ui with a button processor
// alongside the relay watcher and completes once ui has returned and the
// watcher has noticed.
func Run(sys System, settings *Settings, bopts buttons.Options, ui UI, opts ...Option) relaybox.Future[relaybox.Unit] {
	cfg := newConfig(opts)
	return relaybox.Task(func(co *relaybox.Co) {
		var stop relaybox.StopFlag
		p := buttons.NewProcessor(bopts, cfg.processor...)
		relaybox.Await(co, relaybox.Join2(
			buttons.Run(p, sys, relaybox.Task(func(co *relaybox.Co) {
				ui(co, p)
				stop.Stop()
			})),
			relaybox.Task(func(co *relaybox.Co) {
				WatchOutput(co, sys, settings, &stop, opts...)
			}),
		))
	})
}

// WaitPress2OrTimeout waits for at most timeout milliseconds for a Press
// event or a Repeat of Prev or Next alone. Repeats of other buttons are
// ignored. It returns the event, or an event of kind None on timeout.
func WaitPress2OrTimeout(co *relaybox.Co, t relaybox.Timing, p *buttons.Processor[ButtonFlags], timeout relaybox.Duration) buttons.Event[ButtonFlags] {
	return buttons.WaitEventOrTimeout(co, t, p, timeout, func(e buttons.Event[ButtonFlags]) bool {
		switch e.Kind {
		case buttons.Press:
			return true
		case buttons.Repeat:
			return e.Flags == Prev || e.Flags == Next
		}
		return false
	})
}
