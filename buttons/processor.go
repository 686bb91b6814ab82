package buttons

import (
	"errors"
	"log/slog"

	"github.com/greaheisl/relaybox"
)

// EventHook is called for every event a Processor emits, together with the
// instant of the step that produced it.
type EventHook[F comparable] func(at relaybox.Instant, e Event[F])

// Option configures a Processor.
type Option[F Flags[F]] func(*Processor[F])

// WithEventHook registers a hook that sees every emitted event.
func WithEventHook[F Flags[F]](h EventHook[F]) Option[F] {
	return func(p *Processor[F]) {
		if h != nil {
			p.hooks = append(p.hooks, h)
		}
	}
}

// WithLogger sets the logger for state transitions. They are logged at debug
// level.
func WithLogger[F Flags[F]](l *slog.Logger) Option[F] {
	return func(p *Processor[F]) {
		if l != nil {
			p.logger = l
		}
	}
}

// Processor recognizes button events. Create it with NewProcessor and drive
// it with Run. Event and State may be read at any time from the task passed
// to Run.
type Processor[F Flags[F]] struct {
	event  Event[F]
	state  State[F]
	opts   Options
	hooks  []EventHook[F]
	logger *slog.Logger
}

// NewProcessor creates a processor in the Invalid state.
func NewProcessor[F Flags[F]](opts Options, options ...Option[F]) *Processor[F] {
	p := &Processor[F]{
		opts:   opts,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, o := range options {
		o(p)
	}
	return p
}

// Event returns the event of the current poll, or an event of kind None.
//
// Events are not queued. An event that is not looked at during the poll it
// was emitted in is lost.
func (p *Processor[F]) Event() Event[F] {
	return p.event
}

// State returns the current state. It is useful to react to buttons being
// held between events.
func (p *Processor[F]) State() State[F] {
	return p.state
}

// Options returns the options the processor was created with.
func (p *Processor[F]) Options() Options {
	return p.opts
}

// Run returns a future that drives p and task side by side and completes
// with the result of task.
//
// The processor is polled before task on every poll, so task sees the event
// of the current poll. Once task completes the processor stops at its next
// suspension point; the returned future completes one poll later.
func Run[F Flags[F], T any](p *Processor[F], sys System[F], task relaybox.Future[T]) relaybox.Future[T] {
	return relaybox.Async(func(co *relaybox.Co) T {
		var stop relaybox.StopFlag
		res := relaybox.Await(co, relaybox.Join2(
			relaybox.Task(func(co *relaybox.Co) {
				p.drive(co, sys, &stop)
			}),
			relaybox.Async(func(co *relaybox.Co) T {
				v := relaybox.Await(co, task)
				stop.Stop()
				return v
			}),
		))
		return res.Second
	})
}

func (p *Processor[F]) drive(co *relaybox.Co, sys System[F], stop relaybox.StopSignal) {
	for !stop.Stopped() {
		p.event = Event[F]{}
		if err := p.step(co, sys, stop); errors.Is(err, relaybox.ErrStopped) {
			break
		}
	}
}

// step performs one transition of the state machine. It suspends at least
// once unless the stop signal is already raised.
func (p *Processor[F]) step(co *relaybox.Co, sys System[F], stop relaybox.StopSignal) error {
	current := sys.ButtonFlags()
	switch p.state.Kind {
	case Invalid:
		if current.IsNone() {
			p.setState(sys, State[F]{Kind: NoButtons})
		}
		// Presses are ignored until all buttons were seen released.
		return WaitStopOrButton(co, sys, stop)

	case NoButtons:
		if current.IsNone() {
			return WaitStopOrButton(co, sys, stop)
		}
		p.emit(sys, Press, current)
		p.setState(sys, State[F]{Kind: SomeButtons, Flags: current, Since: sys.Instant()})
		// The event must be reset on the next poll, so no signal aware wait here.
		co.SleepAtMost(sys, p.opts.RepetitionStartDelay)

	case SomeButtons:
		prev := p.state
		switch {
		case current == prev.Flags:
			now := sys.Instant()
			var untilFiring relaybox.Duration
			if prev.Repeating {
				untilFiring = p.opts.RepetitionDelay - now.Sub(prev.LastRepetition)
			} else {
				untilFiring = p.opts.RepetitionStartDelay - now.Sub(prev.Since)
			}
			if untilFiring > 0 {
				_, err := WaitStopOrButtonOrTimeout(co, sys, stop, untilFiring)
				return err
			}
			p.emit(sys, Repeat, current)
			p.state.LastRepetition = now
			p.state.Repeating = true
			co.SleepAtMost(sys, p.opts.RepetitionDelay)

		case current.Contains(prev.Flags):
			p.emit(sys, Press, current)
			p.setState(sys, State[F]{Kind: SomeButtons, Flags: current, Since: sys.Instant()})
			co.SleepAtMost(sys, p.opts.RepetitionStartDelay)

		case current.IsNone():
			p.emit(sys, Release, prev.Flags)
			p.setState(sys, State[F]{Kind: NoButtons})
			co.Yield()

		default:
			// Partial release of a combination has no interpretation.
			p.emit(sys, Release, prev.Flags)
			p.setState(sys, State[F]{Kind: Invalid})
			co.Yield()
		}
	}
	return nil
}

func (p *Processor[F]) emit(t relaybox.Timing, kind EventKind, flags F) {
	p.event = Event[F]{Kind: kind, Flags: flags}
	for _, h := range p.hooks {
		h(t.Instant(), p.event)
	}
}

func (p *Processor[F]) setState(t relaybox.Timing, s State[F]) {
	if s.Kind != p.state.Kind {
		p.logger.Debug("button state changed", "from", p.state.Kind, "to", s.Kind, "instant", t.Instant())
	}
	p.state = s
}
