package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/greaheisl/relaybox"
	"github.com/greaheisl/relaybox/buttons"
	"github.com/greaheisl/relaybox/internal/device"
	"github.com/greaheisl/relaybox/internal/scenario"
)

// ErrSpin is returned when a run exceeds its step budget, typically because
// the task kept asking for immediate re-polls.
var ErrSpin = errors.New("sim: step budget exhausted")

// Simulator replays one scenario.
type Simulator struct {
	sc        *scenario.Scenario
	logger    *slog.Logger
	observers []relaybox.Observer
	hooks     []func(Record)
	maxSteps  uint64
	timer     relaybox.Duration
	runID     uuid.UUID
}

// New creates a simulator for sc. The scenario is not modified by runs.
func New(sc *scenario.Scenario, opts ...Option) *Simulator {
	s := &Simulator{
		sc:       sc,
		logger:   slog.New(slog.DiscardHandler),
		maxSteps: DefaultMaxSteps,
		timer:    DefaultTimerDuration,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Run replays the scenario. It ends at the scenario's until instant or when
// the box shuts down, whichever comes first. On error the partial trace is
// returned along with it.
func (s *Simulator) Run(ctx context.Context) (*Trace, error) {
	sc := s.sc
	now := sc.Start
	periph := newPeripherals(func() relaybox.Instant { return now }, sc.Clock)
	settings := sc.Settings.Clone()

	runID := s.runID
	if runID == uuid.Nil {
		runID = uuid.New()
	}
	trace := &Trace{
		RunID:       runID,
		Scenario:    sc.Name,
		Fingerprint: sc.Fingerprint(),
		Start:       sc.Start,
	}
	record := func(r Record) {
		trace.Records = append(trace.Records, r)
		for _, h := range s.hooks {
			h(r)
		}
	}

	b := relaybox.NewExecutor[device.SignalFlags](now)
	box := device.NewBox(b.Scheduler(), periph)
	relays := func() device.RelayStates { return periph.relays }
	ui := NewPanel(box, settings, relays, record, s.timer)
	task := device.Run(box, settings, sc.Options, ui.Run,
		device.WithLogger(s.logger),
		device.WithButtonEventHook(func(at relaybox.Instant, e buttons.Event[device.ButtonFlags]) {
			record(ButtonRecord(at, e))
		}),
		device.WithRelayHook(func(at relaybox.Instant, states device.RelayStates) {
			record(RelaysRecord(at, states))
		}),
	)
	execOpts := []relaybox.Option{relaybox.WithLogger(s.logger)}
	for _, o := range s.observers {
		execOpts = append(execOpts, relaybox.WithObserver(o))
	}
	exec := b.Build(task, execOpts...)
	defer exec.Close()

	s.logger.Info("simulation started", "run_id", trace.RunID, "scenario", sc.Name, "fingerprint", trace.Fingerprint)

	readings := sc.Readings
	next := 0
	// apply delivers the readings at now and returns the signals of the step.
	apply := func() device.SignalFlags {
		signals := device.NoSignals
		for next < len(readings) && readings[next].At == now {
			periph.buttons = readings[next].Buttons
			signals |= device.SignalButton
			next++
		}
		return signals
	}

	finish := func(err error) (*Trace, error) {
		trace.End = now
		trace.Steps = exec.Steps()
		trace.Finished = exec.Finished()
		trace.Relays = periph.relays
		trace.Clock = periph.RTC()
		if err != nil {
			s.logger.Error("simulation failed", "run_id", trace.RunID, "instant", now, "error", err)
			return trace, err
		}
		s.logger.Info("simulation finished", "run_id", trace.RunID, "end", now, "steps", trace.Steps, "finished", trace.Finished)
		return trace, nil
	}

	delay, running := exec.Step(now, apply())
	for running {
		if err := ctx.Err(); err != nil {
			return finish(err)
		}
		if exec.Steps() >= s.maxSteps {
			return finish(fmt.Errorf("%w: %d steps by %v", ErrSpin, exec.Steps(), now))
		}
		deadline := now.Add(delay)
		if next < len(readings) && readings[next].At.Sub(deadline) <= 0 {
			deadline = readings[next].At
		}
		if sc.Until.Sub(deadline) < 0 {
			now = sc.Until
			break
		}
		now = deadline
		delay, running = exec.Step(now, apply())
	}
	return finish(nil)
}
