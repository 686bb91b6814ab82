package device

import (
	"fmt"
	"time"
)

// NumRelays is the number of output relays.
const NumRelays = 4

// RelayStates holds the desired state of every relay; true switches the
// connected device on.
type RelayStates [NumRelays]bool

// On returns the number of relays switched on.
func (r RelayStates) On() int {
	n := 0
	for _, on := range r {
		if on {
			n++
		}
	}
	return n
}

func (r RelayStates) String() string {
	b := make([]byte, NumRelays)
	for i, on := range r {
		if on {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}

// RTCTime is a time of day with second resolution.
type RTCTime struct {
	Hour   uint8 `yaml:"hour" json:"hour"`
	Minute uint8 `yaml:"minute" json:"minute"`
	Second uint8 `yaml:"second" json:"second"`
}

func (t RTCTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Valid reports whether all fields are in range.
func (t RTCTime) Valid() bool {
	return t.Hour < 24 && t.Minute < 60 && t.Second < 60
}

// Add returns the time of day d later, wrapping at midnight.
func (t RTCTime) Add(d time.Duration) RTCTime {
	day := 24 * time.Hour
	off := (time.Duration(t.Hour)*time.Hour + time.Duration(t.Minute)*time.Minute + time.Duration(t.Second)*time.Second + d) % day
	if off < 0 {
		off += day
	}
	return RTCTime{
		Hour:   uint8(off / time.Hour),
		Minute: uint8(off % time.Hour / time.Minute),
		Second: uint8(off % time.Minute / time.Second),
	}
}

// ParseRTCTime parses "HH:MM" or "HH:MM:SS".
func ParseRTCTime(s string) (RTCTime, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return RTCTime{Hour: uint8(ts.Hour()), Minute: uint8(ts.Minute()), Second: uint8(ts.Second())}, nil
		}
	}
	return RTCTime{}, fmt.Errorf("invalid time of day %q", s)
}

// RTC is the real time clock.
type RTC interface {
	RTC() RTCTime
	SetRTC(t RTCTime)
}

// LEDMatrix is the built in 12 by 8 LED matrix. Row r occupies bits
// 12*r to 12*r+11 of the three words, least significant bit first.
type LEDMatrix interface {
	SetLEDMatrix(m [3]uint32)
}

// Relays switches the output relays.
type Relays interface {
	SetRelays(states RelayStates)
}

// Buttons reads the raw button state.
type Buttons interface {
	ButtonFlags() ButtonFlags
}

// Peripherals is the hardware of the box.
type Peripherals interface {
	Buttons
	RTC
	LEDMatrix
	Relays
}

// SetPixel lights the LED at column x, row y of m. Pixels outside the matrix
// are ignored.
func SetPixel(m *[3]uint32, x, y int) {
	if x < 0 || x >= 12 || y < 0 || y >= 8 {
		return
	}
	bit := y*12 + x
	m[bit/32] |= 1 << (bit % 32)
}

// Pixel reports whether the LED at column x, row y of m is lit.
func Pixel(m [3]uint32, x, y int) bool {
	if x < 0 || x >= 12 || y < 0 || y >= 8 {
		return false
	}
	bit := y*12 + x
	return m[bit/32]&(1<<(bit%32)) != 0
}

// StatusMatrix renders relay states as blocks in the top rows and held
// buttons as dots in the bottom row.
func StatusMatrix(relays RelayStates, held ButtonFlags) [3]uint32 {
	var m [3]uint32
	for i, on := range relays {
		if !on {
			continue
		}
		for x := i * 3; x < i*3+2; x++ {
			for y := 0; y < 3; y++ {
				SetPixel(&m, x, y)
			}
		}
	}
	for i, b := range buttonNames {
		if held&b.flag != 0 {
			SetPixel(&m, i*3, 7)
		}
	}
	return m
}
