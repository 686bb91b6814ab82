package scenario

import (
	"errors"
	"fmt"

	"github.com/greaheisl/relaybox"
	"github.com/greaheisl/relaybox/buttons"
	"github.com/greaheisl/relaybox/internal/device"
)

// Builder constructs a Scenario fluently. Errors are collected and
// reported by Build.
type Builder struct {
	sc   *Scenario
	errs []error
}

// New starts a scenario with default options.
func New(name string) *Builder {
	sc := Default()
	sc.Name = name
	return &Builder{sc: sc}
}

// Start sets the first instant of the run.
func (b *Builder) Start(at relaybox.Instant) *Builder {
	b.sc.Start = at
	return b
}

// Until sets the last instant of the run.
func (b *Builder) Until(at relaybox.Instant) *Builder {
	b.sc.Until = at
	return b
}

// Clock sets the RTC time of day at Start.
func (b *Builder) Clock(hour, minute, second uint8) *Builder {
	b.sc.Clock = device.RTCTime{Hour: hour, Minute: minute, Second: second}
	return b
}

// Options sets the button processor options.
func (b *Builder) Options(opts buttons.Options) *Builder {
	b.sc.Options = opts
	return b
}

// Immediate starts a timer on relay at start.
func (b *Builder) Immediate(relay int, start relaybox.Instant, d relaybox.Duration) *Builder {
	if relay < 0 || relay >= device.NumRelays {
		b.errs = append(b.errs, fmt.Errorf("%w: relay %d out of range", ErrInvalid, relay))
		return b
	}
	b.sc.Settings.Immediate[relay] = &device.ImmediateEntry{Start: start, Duration: d}
	return b
}

// Scheduled sets daily timer slot of relay.
func (b *Builder) Scheduled(relay, slot int, hour, minute uint8, d relaybox.Duration) *Builder {
	if relay < 0 || relay >= device.NumRelays || slot < 0 || slot >= device.MaxScheduledEntries {
		b.errs = append(b.errs, fmt.Errorf("%w: relay %d slot %d out of range", ErrInvalid, relay, slot))
		return b
	}
	b.sc.Settings.Scheduled[relay][slot] = device.ScheduledEntry{Hour: hour, Minute: minute, Duration: d}
	return b
}

// Press appends a reading with the named buttons held.
func (b *Builder) Press(at relaybox.Instant, names ...string) *Builder {
	f, err := device.ParseButtons(names...)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("%w: %v", ErrInvalid, err))
		return b
	}
	return b.Reading(at, f)
}

// Release appends a reading with no buttons held.
func (b *Builder) Release(at relaybox.Instant) *Builder {
	return b.Reading(at, device.NoButtons)
}

// Reading appends a raw reading.
func (b *Builder) Reading(at relaybox.Instant, f device.ButtonFlags) *Builder {
	b.sc.Readings = append(b.sc.Readings, Reading{At: at, Buttons: f})
	return b
}

// Tap presses names at at and releases them d later.
func (b *Builder) Tap(at relaybox.Instant, d relaybox.Duration, names ...string) *Builder {
	return b.Press(at, names...).Release(at.Add(d))
}

// Build validates and returns the scenario.
func (b *Builder) Build() (*Scenario, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	if err := b.sc.Validate(); err != nil {
		return nil, err
	}
	return b.sc, nil
}

// MustBuild is Build for fixed scenarios in tests and examples.
func (b *Builder) MustBuild() *Scenario {
	sc, err := b.Build()
	if err != nil {
		panic(err)
	}
	return sc
}
