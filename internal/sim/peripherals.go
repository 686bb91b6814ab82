package sim

import (
	"github.com/greaheisl/relaybox"
	"github.com/greaheisl/relaybox/internal/device"
)

// peripherals is simulated hardware. The RTC runs on the simulated time.
type peripherals struct {
	now     func() relaybox.Instant
	buttons device.ButtonFlags
	clock   device.RTCTime
	base    relaybox.Instant
	matrix  [3]uint32
	relays  device.RelayStates
}

var _ device.Peripherals = (*peripherals)(nil)

func newPeripherals(now func() relaybox.Instant, clock device.RTCTime) *peripherals {
	return &peripherals{now: now, clock: clock, base: now()}
}

func (p *peripherals) ButtonFlags() device.ButtonFlags { return p.buttons }

func (p *peripherals) RTC() device.RTCTime {
	return p.clock.Add(p.now().Sub(p.base).Std())
}

func (p *peripherals) SetRTC(t device.RTCTime) {
	p.clock = t
	p.base = p.now()
}

func (p *peripherals) SetLEDMatrix(m [3]uint32)            { p.matrix = m }
func (p *peripherals) SetRelays(states device.RelayStates) { p.relays = states }
