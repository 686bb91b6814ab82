// Package buttons turns raw button readings into high level events.
//
// A Processor watches the raw on/off state of a set of buttons each time it
// is scheduled and recognizes presses, auto repeats and releases:
//
//   - Pressing one or several buttons emits Press. Pressing additional
//     buttons while others are held emits another Press for the larger
//     combination.
//   - Holding a combination for Options.RepetitionStartDelay emits a first
//     Repeat, followed by further Repeat events every
//     Options.RepetitionDelay.
//   - Releasing all buttons emits Release for the combination that was held.
//     Releasing only some of them also emits Release, but the processor then
//     ignores every reading until all buttons are up again.
//
// There is no event queue. The current event is visible through
// Processor.Event for exactly one poll of the task tree, so code reacting to
// buttons must look at it after every suspension.
//
// # Example
//
//	p := buttons.NewProcessor[Keys](buttons.DefaultOptions())
//	root := buttons.Run(p, sys, relaybox.Task(func(co *relaybox.Co) {
//		for {
//			co.Yield()
//			if e := p.Event(); e.Kind == buttons.Press {
//				fmt.Println("pressed", e.Flags)
//			}
//		}
//	}))
package buttons
