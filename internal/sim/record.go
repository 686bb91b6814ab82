package sim

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/greaheisl/relaybox"
	"github.com/greaheisl/relaybox/buttons"
	"github.com/greaheisl/relaybox/internal/device"
)

// Kind classifies a trace record.
type Kind string

const (
	// KindButton is a button event emitted by the processor.
	KindButton Kind = "button"
	// KindRelays is a change of the relay outputs.
	KindRelays Kind = "relays"
	// KindSelect is a change of the selected relay.
	KindSelect Kind = "select"
	// KindHold is the outcome of a hold check.
	KindHold Kind = "hold"
	// KindTimer is an immediate timer started or cancelled from the UI.
	KindTimer Kind = "timer"
	// KindShutdown marks the end of the UI.
	KindShutdown Kind = "shutdown"
)

// Record is one observation of a simulated run.
//
// Detail is the readable form that is persisted. The typed fields carry the
// same observation for in-process consumers: Event and Buttons for button
// records, Buttons and Hold for hold records, Relays for relay records.
type Record struct {
	At     relaybox.Instant `json:"at" yaml:"at"`
	Kind   Kind             `json:"kind" yaml:"kind"`
	Detail string           `json:"detail" yaml:"detail"`

	Event   buttons.EventKind  `json:"-" yaml:"-"`
	Buttons device.ButtonFlags `json:"-" yaml:"-"`
	Hold    buttons.HoldResult `json:"-" yaml:"-"`
	Relays  device.RelayStates `json:"-" yaml:"-"`
}

// ButtonRecord records a button event.
func ButtonRecord(at relaybox.Instant, e buttons.Event[device.ButtonFlags]) Record {
	return Record{At: at, Kind: KindButton, Detail: e.String(), Event: e.Kind, Buttons: e.Flags}
}

// RelaysRecord records a change of the relay outputs.
func RelaysRecord(at relaybox.Instant, states device.RelayStates) Record {
	return Record{At: at, Kind: KindRelays, Detail: states.String(), Relays: states}
}

// HoldRecord records the outcome of a hold check on flags.
func HoldRecord(at relaybox.Instant, flags device.ButtonFlags, res buttons.HoldResult) Record {
	return Record{At: at, Kind: KindHold, Detail: fmt.Sprintf("%v %v", flags, res), Buttons: flags, Hold: res}
}

func (r Record) String() string {
	return fmt.Sprintf("%v %s %s", r.At, r.Kind, r.Detail)
}

// Trace is the result of a simulated run.
type Trace struct {
	RunID       uuid.UUID          `json:"run_id" yaml:"run_id"`
	Scenario    string             `json:"scenario" yaml:"scenario"`
	Fingerprint string             `json:"fingerprint" yaml:"fingerprint"`
	Start       relaybox.Instant   `json:"start" yaml:"start"`
	End         relaybox.Instant   `json:"end" yaml:"end"`
	Steps       uint64             `json:"steps" yaml:"steps"`
	Finished    bool               `json:"finished" yaml:"finished"`
	Relays      device.RelayStates `json:"relays" yaml:"relays"`
	Clock       device.RTCTime     `json:"clock" yaml:"clock"`
	Records     []Record           `json:"records" yaml:"records"`
}

// Filter returns the records of the given kinds.
func (t *Trace) Filter(kinds ...Kind) []Record {
	var out []Record
	for _, r := range t.Records {
		for _, k := range kinds {
			if r.Kind == k {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// Details returns the records of kind k as "detail@millis" strings.
func (t *Trace) Details(k Kind) []string {
	var out []string
	for _, r := range t.Filter(k) {
		out = append(out, fmt.Sprintf("%s@%d", r.Detail, r.At.Millis()))
	}
	return out
}
