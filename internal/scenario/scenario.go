package scenario

import (
	"errors"
	"fmt"

	"github.com/greaheisl/relaybox"
	"github.com/greaheisl/relaybox/buttons"
	"github.com/greaheisl/relaybox/internal/device"
)

// ErrInvalid is wrapped by all validation errors.
var ErrInvalid = errors.New("invalid scenario")

// Reading is the raw button state from an instant on. Every reading is
// delivered with a button signal.
type Reading struct {
	At      relaybox.Instant   `mapstructure:"at" json:"at"`
	Buttons device.ButtonFlags `mapstructure:"buttons" json:"buttons"`
}

// Scenario is a button session for the simulator.
type Scenario struct {
	Name     string           `mapstructure:"name" json:"name"`
	Start    relaybox.Instant `mapstructure:"start" json:"start"`
	Until    relaybox.Instant `mapstructure:"until" json:"until"`
	Clock    device.RTCTime   `mapstructure:"clock" json:"clock"`
	Options  buttons.Options  `mapstructure:"options" json:"options"`
	Settings device.Settings  `mapstructure:"settings" json:"settings"`
	Readings []Reading        `mapstructure:"readings" json:"readings"`
}

// Default returns an empty scenario with default processor options.
func Default() *Scenario {
	return &Scenario{
		Name:    "unnamed",
		Options: buttons.DefaultOptions(),
	}
}

// Duration returns the simulated span.
func (s *Scenario) Duration() relaybox.Duration {
	return s.Until.Sub(s.Start)
}

// Validate checks that the readings are ordered and lie within the
// simulated span, and validates options and settings.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalid)
	}
	if s.Duration() <= 0 {
		return fmt.Errorf("%w: until %v must lie after start %v", ErrInvalid, s.Until, s.Start)
	}
	if !s.Clock.Valid() {
		return fmt.Errorf("%w: clock %v out of range", ErrInvalid, s.Clock)
	}
	if err := s.Options.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := s.Settings.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	last := s.Start
	for i, r := range s.Readings {
		if r.At.Sub(last) < 0 {
			return fmt.Errorf("%w: reading %d at %v is out of order", ErrInvalid, i, r.At)
		}
		if s.Until.Sub(r.At) < 0 {
			return fmt.Errorf("%w: reading %d at %v lies after until %v", ErrInvalid, i, r.At, s.Until)
		}
		if r.Buttons&^device.AllButtons != 0 {
			return fmt.Errorf("%w: reading %d has unknown buttons %v", ErrInvalid, i, r.Buttons)
		}
		last = r.At
	}
	return nil
}
