package buttons

import (
	"fmt"

	"github.com/greaheisl/relaybox"
)

// EventKind distinguishes the events of a Processor.
type EventKind uint8

const (
	// None means nothing happened during the current poll.
	None EventKind = iota
	// Press is emitted when a button combination is pressed, including when
	// buttons are added to a combination already held.
	Press
	// Repeat is emitted while a combination stays held.
	Repeat
	// Release is emitted when buttons of the held combination are released.
	Release
)

func (k EventKind) String() string {
	switch k {
	case None:
		return "None"
	case Press:
		return "Press"
	case Repeat:
		return "Repeat"
	case Release:
		return "Release"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// Event is a high level button event. Flags is the combination the event
// refers to; it is the zero value for None.
type Event[F comparable] struct {
	Kind  EventKind
	Flags F
}

func (e Event[F]) String() string {
	if e.Kind == None {
		return "None"
	}
	return fmt.Sprintf("%s(%v)", e.Kind, e.Flags)
}

// Is reports whether e is of kind k for exactly the combination f.
func (e Event[F]) Is(k EventKind, f F) bool {
	return e.Kind == k && e.Flags == f
}

// StateKind distinguishes the states of a Processor.
type StateKind uint8

const (
	// Invalid is the initial state and the state after an ambiguous partial
	// release. It is left only once all buttons read as released.
	Invalid StateKind = iota
	// NoButtons means no button is held.
	NoButtons
	// SomeButtons means a combination is held.
	SomeButtons
)

func (k StateKind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case NoButtons:
		return "NoButtons"
	case SomeButtons:
		return "SomeButtons"
	default:
		return fmt.Sprintf("StateKind(%d)", uint8(k))
	}
}

// State is the memory of a Processor between events.
//
// Flags, Since, LastRepetition and Repeating are only meaningful in
// SomeButtons. Since is the instant the combination was first seen.
// LastRepetition is the instant of the latest Repeat and only valid when
// Repeating is set.
type State[F any] struct {
	Kind           StateKind
	Flags          F
	Since          relaybox.Instant
	LastRepetition relaybox.Instant
	Repeating      bool
}

func (s State[F]) String() string {
	if s.Kind != SomeButtons {
		return s.Kind.String()
	}
	if s.Repeating {
		return fmt.Sprintf("SomeButtons(%v since %v, repeated %v)", s.Flags, s.Since, s.LastRepetition)
	}
	return fmt.Sprintf("SomeButtons(%v since %v)", s.Flags, s.Since)
}
