package device

import (
	"fmt"
	"strings"

	"github.com/greaheisl/relaybox"
)

// ButtonFlags is the raw on/off state of the four buttons.
type ButtonFlags uint8

const (
	// Escape is back, exit or cancel.
	Escape ButtonFlags = 1 << iota
	// Prev selects the previous item of a list.
	Prev
	// Next selects the next item of a list.
	Next
	// Enter opens the menu, changes a value or confirms.
	Enter

	NoButtons  ButtonFlags = 0
	AllButtons             = Escape | Prev | Next | Enter
)

// NumButtons is the number of physical buttons.
const NumButtons = 4

// HoldDuration is how long a button must be held to reach extra functions.
const HoldDuration relaybox.Duration = 2000

var buttonNames = [NumButtons]struct {
	flag ButtonFlags
	name string
}{
	{Escape, "escape"},
	{Prev, "prev"},
	{Next, "next"},
	{Enter, "enter"},
}

// IsNone reports whether no button is pressed.
func (f ButtonFlags) IsNone() bool {
	return f == 0
}

// Contains reports whether all buttons of other are pressed in f.
func (f ButtonFlags) Contains(other ButtonFlags) bool {
	return f&other == other
}

func (f ButtonFlags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, b := range buttonNames {
		if f&b.flag != 0 {
			parts = append(parts, b.name)
		}
	}
	if rest := f &^ AllButtons; rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%02x", uint8(rest)))
	}
	return strings.Join(parts, "+")
}

// Names returns the names of the pressed buttons in a fixed order.
func (f ButtonFlags) Names() []string {
	names := []string{}
	for _, b := range buttonNames {
		if f&b.flag != 0 {
			names = append(names, b.name)
		}
	}
	return names
}

// ParseButtons parses button names such as "enter" or "prev+next". An empty
// list means no buttons.
func ParseButtons(names ...string) (ButtonFlags, error) {
	var f ButtonFlags
	for _, n := range names {
		for _, part := range strings.Split(n, "+") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part == "" || part == "none" {
				continue
			}
			found := false
			for _, b := range buttonNames {
				if b.name == part {
					f |= b.flag
					found = true
					break
				}
			}
			if !found {
				return 0, fmt.Errorf("unknown button %q", part)
			}
		}
	}
	return f, nil
}

// SignalFlags tell the executor why it was stepped.
//
// Spurious signals are harmless. A button change without SignalButton may be
// overlooked, though.
type SignalFlags uint8

const (
	// SignalButton is set when the state of any button changed.
	SignalButton SignalFlags = 1 << iota

	NoSignals SignalFlags = 0
)

// Contains reports whether all flags of other are set in s.
func (s SignalFlags) Contains(other SignalFlags) bool {
	return s&other == other
}

func (s SignalFlags) String() string {
	switch s {
	case NoSignals:
		return "none"
	case SignalButton:
		return "button"
	default:
		return fmt.Sprintf("SignalFlags(0x%02x)", uint8(s))
	}
}

// MergeSignals combines signals that arrived between two steps.
func MergeSignals(pending, next SignalFlags) SignalFlags {
	return pending | next
}
