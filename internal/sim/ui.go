package sim

import (
	"fmt"

	"github.com/greaheisl/relaybox"
	"github.com/greaheisl/relaybox/buttons"
	"github.com/greaheisl/relaybox/internal/device"
)

// RefreshDelay is how often the UI redraws the LED matrix without input.
const RefreshDelay relaybox.Duration = 1000

// selectionRow marks the selected relay on the LED matrix.
const selectionRow = 4

// Panel is a small front panel UI: Prev and Next select a relay, holding
// Enter toggles its immediate timer and holding Escape shuts the box down.
type Panel struct {
	sys      device.System
	settings *device.Settings
	relays   func() device.RelayStates
	record   func(Record)
	timer    relaybox.Duration
	selected int
}

// NewPanel creates a panel that edits settings, shows the states returned
// by relays and reports what it does to record. Timers started from the
// panel run for timer milliseconds.
func NewPanel(sys device.System, settings *device.Settings, relays func() device.RelayStates, record func(Record), timer relaybox.Duration) *Panel {
	return &Panel{sys: sys, settings: settings, relays: relays, record: record, timer: timer}
}

// Selected returns the index of the selected relay.
func (u *Panel) Selected() int {
	return u.selected
}

// Run is the UI task; it has the signature of device.UI.
func (u *Panel) Run(co *relaybox.Co, p *buttons.Processor[device.ButtonFlags]) {
	for {
		u.draw()
		e := device.WaitPress2OrTimeout(co, u.sys, p, RefreshDelay)
		switch {
		case e.Flags == device.Prev:
			u.selectRelay(u.selected + device.NumRelays - 1)
		case e.Flags == device.Next:
			u.selectRelay(u.selected + 1)
		case e.Is(buttons.Press, device.Enter):
			if u.hold(co, p) == buttons.HoldConfirmed {
				u.toggleTimer()
			}
		case e.Is(buttons.Press, device.Escape):
			if u.hold(co, p) == buttons.HoldConfirmed {
				u.record(Record{At: u.sys.Instant(), Kind: KindShutdown, Detail: "escape held"})
				return
			}
		}
	}
}

func (u *Panel) draw() {
	m := device.StatusMatrix(u.relays(), u.sys.ButtonFlags())
	device.SetPixel(&m, u.selected*3, selectionRow)
	u.sys.SetLEDMatrix(m)
}

func (u *Panel) selectRelay(i int) {
	u.selected = i % device.NumRelays
	u.record(Record{At: u.sys.Instant(), Kind: KindSelect, Detail: fmt.Sprintf("relay %d", u.selected)})
}

func (u *Panel) hold(co *relaybox.Co, p *buttons.Processor[device.ButtonFlags]) buttons.HoldResult {
	h := buttons.NewHoldChecker(u.sys, p, device.HoldDuration)
	res := relaybox.Await(co, h.Wait())
	u.record(HoldRecord(u.sys.Instant(), h.Flags(), res))
	return res
}

func (u *Panel) toggleTimer() {
	now := u.sys.Instant()
	if e := u.settings.Immediate[u.selected]; e != nil && e.TimeLeft(now) > 0 {
		u.settings.Immediate[u.selected] = nil
		u.record(Record{At: now, Kind: KindTimer, Detail: fmt.Sprintf("relay %d cancelled", u.selected)})
		return
	}
	u.settings.Immediate[u.selected] = &device.ImmediateEntry{Start: now, Duration: u.timer}
	u.record(Record{At: now, Kind: KindTimer, Detail: fmt.Sprintf("relay %d on for %v", u.selected, u.timer)})
}
