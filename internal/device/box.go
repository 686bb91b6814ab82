package device

import (
	"github.com/greaheisl/relaybox"
	"github.com/greaheisl/relaybox/buttons"
)

// System is everything the tasks of the box may access.
type System interface {
	relaybox.Handle[SignalFlags]
	buttons.System[ButtonFlags]
	RTC
	LEDMatrix
	Relays
}

// Box combines the executor's scheduler with the hardware into a System.
type Box struct {
	sched  *relaybox.Scheduler[SignalFlags]
	periph Peripherals
}

var _ System = (*Box)(nil)

// NewBox wraps sched and periph.
func NewBox(sched *relaybox.Scheduler[SignalFlags], periph Peripherals) *Box {
	return &Box{sched: sched, periph: periph}
}

func (b *Box) Instant() relaybox.Instant            { return b.sched.Instant() }
func (b *Box) RequestDelay(r relaybox.DelayRequest) { b.sched.RequestDelay(r) }
func (b *Box) Signals() SignalFlags                 { return b.sched.Signals() }
func (b *Box) ButtonFlags() ButtonFlags             { return b.periph.ButtonFlags() }
func (b *Box) ButtonSignal() bool                   { return b.sched.Signals().Contains(SignalButton) }
func (b *Box) RTC() RTCTime                         { return b.periph.RTC() }
func (b *Box) SetRTC(t RTCTime)                     { b.periph.SetRTC(t) }
func (b *Box) SetLEDMatrix(m [3]uint32)             { b.periph.SetLEDMatrix(m) }
func (b *Box) SetRelays(states RelayStates)         { b.periph.SetRelays(states) }
