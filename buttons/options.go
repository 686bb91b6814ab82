package buttons

import (
	"errors"
	"fmt"

	"github.com/greaheisl/relaybox"
)

// ErrInvalidOptions is wrapped by Options.Validate.
var ErrInvalidOptions = errors.New("buttons: invalid options")

// Options tunes the auto repeat of a Processor. Both delays are in
// milliseconds.
type Options struct {
	// RepetitionStartDelay is how long a combination must be held before
	// the first Repeat.
	RepetitionStartDelay relaybox.Duration `yaml:"repetition_start_delay" mapstructure:"repetition_start_delay" json:"repetition_start_delay"`
	// RepetitionDelay is the time between further Repeat events.
	RepetitionDelay relaybox.Duration `yaml:"repetition_delay" mapstructure:"repetition_delay" json:"repetition_delay"`
}

// DefaultOptions returns 750ms until the first repeat and 375ms between
// repeats.
func DefaultOptions() Options {
	return Options{
		RepetitionStartDelay: 750,
		RepetitionDelay:      375,
	}
}

// Validate checks that both delays are positive.
func (o Options) Validate() error {
	if o.RepetitionStartDelay <= 0 {
		return fmt.Errorf("%w: repetition start delay %v must be positive", ErrInvalidOptions, o.RepetitionStartDelay)
	}
	if o.RepetitionDelay <= 0 {
		return fmt.Errorf("%w: repetition delay %v must be positive", ErrInvalidOptions, o.RepetitionDelay)
	}
	return nil
}
