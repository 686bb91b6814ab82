package main

import (
	"sync"
	"time"

	"github.com/greaheisl/relaybox/internal/device"
)

// terminalHardware stands in for the box hardware on a terminal. Buttons are
// set from the key reader goroutine, everything else is used by the
// executor goroutine.
type terminalHardware struct {
	now func() time.Time

	mu      sync.Mutex
	buttons device.ButtonFlags
	offset  time.Duration
	relays  device.RelayStates
	matrix  [3]uint32
}

var _ device.Peripherals = (*terminalHardware)(nil)

func newTerminalHardware(now func() time.Time) *terminalHardware {
	return &terminalHardware{now: now}
}

func (h *terminalHardware) wallRTC() device.RTCTime {
	t := h.now()
	return device.RTCTime{Hour: uint8(t.Hour()), Minute: uint8(t.Minute()), Second: uint8(t.Second())}
}

func sinceMidnight(t device.RTCTime) time.Duration {
	return time.Duration(t.Hour)*time.Hour + time.Duration(t.Minute)*time.Minute + time.Duration(t.Second)*time.Second
}

func (h *terminalHardware) ButtonFlags() device.ButtonFlags {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.buttons
}

func (h *terminalHardware) RTC() device.RTCTime {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.wallRTC().Add(h.offset)
}

func (h *terminalHardware) SetRTC(t device.RTCTime) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.offset = sinceMidnight(t) - sinceMidnight(h.wallRTC())
}

func (h *terminalHardware) SetLEDMatrix(m [3]uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.matrix = m
}

func (h *terminalHardware) SetRelays(states device.RelayStates) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.relays = states
}

// Relays returns the last states set.
func (h *terminalHardware) Relays() device.RelayStates {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.relays
}

// Matrix returns the last LED matrix set.
func (h *terminalHardware) Matrix() [3]uint32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.matrix
}

// press adds f to the held buttons.
func (h *terminalHardware) press(f device.ButtonFlags) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buttons |= f
}

// release removes f from the held buttons.
func (h *terminalHardware) release(f device.ButtonFlags) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buttons &^= f
}

// toggle flips f and reports whether it is held now.
func (h *terminalHardware) toggle(f device.ButtonFlags) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buttons ^= f
	return h.buttons&f != 0
}
