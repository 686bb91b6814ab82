package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greaheisl/relaybox"
	"github.com/greaheisl/relaybox/buttons"
)

type fakePeripherals struct {
	buttons ButtonFlags
	rtc     RTCTime
	matrix  [3]uint32
	relays  []RelayStates
}

func (f *fakePeripherals) ButtonFlags() ButtonFlags     { return f.buttons }
func (f *fakePeripherals) RTC() RTCTime                 { return f.rtc }
func (f *fakePeripherals) SetRTC(t RTCTime)             { f.rtc = t }
func (f *fakePeripherals) SetLEDMatrix(m [3]uint32)     { f.matrix = m }
func (f *fakePeripherals) SetRelays(states RelayStates) { f.relays = append(f.relays, states) }

type bench struct {
	periph *fakePeripherals
	box    *Box
	exec   *relaybox.Executor[SignalFlags]
	now    relaybox.Instant
	delay  relaybox.Duration
	done   bool
}

func newBench(t *testing.T, task func(box *Box) relaybox.Future[relaybox.Unit]) *bench {
	t.Helper()
	b := relaybox.NewExecutor[SignalFlags](0)
	bn := &bench{periph: &fakePeripherals{}}
	bn.box = NewBox(b.Scheduler(), bn.periph)
	bn.exec = b.Build(task(bn.box))
	t.Cleanup(bn.exec.Close)
	return bn
}

// press sets the buttons and steps with a button signal.
func (bn *bench) press(at relaybox.Instant, f ButtonFlags) {
	bn.periph.buttons = f
	bn.step(at, SignalButton)
}

func (bn *bench) step(at relaybox.Instant, sig SignalFlags) {
	d, ok := bn.exec.Step(at, sig)
	bn.now, bn.delay, bn.done = at, d, !ok
}

// follow steps at the requested instants until until or completion.
func (bn *bench) follow(until relaybox.Instant) {
	for !bn.done {
		next := bn.now.Add(bn.delay)
		if until.Sub(next) < 0 {
			return
		}
		bn.step(next, NoSignals)
	}
}

func TestWatchOutputImmediate(t *testing.T) {
	settings := &Settings{}
	settings.Immediate[1] = &ImmediateEntry{Start: 0, Duration: 5000}
	var stop relaybox.StopFlag
	var hooked []RelayStates
	bn := newBench(t, func(box *Box) relaybox.Future[relaybox.Unit] {
		return relaybox.Task(func(co *relaybox.Co) {
			WatchOutput(co, box, settings, &stop, WithRelayHook(func(_ relaybox.Instant, s RelayStates) {
				hooked = append(hooked, s)
			}))
		})
	})

	bn.step(0, NoSignals)
	assert.Equal(t, OutputUpdateDelay, bn.delay)
	bn.follow(6000)
	assert.Equal(t, relaybox.Instant(6000), bn.now)

	want := []RelayStates{{false, true, false, false}, {}}
	assert.Equal(t, want, bn.periph.relays)
	assert.Equal(t, want, hooked)
	assert.Nil(t, settings.Immediate[1])

	stop.Stop()
	bn.step(6001, NoSignals)
	assert.True(t, bn.done)
}

func TestRelayWatcherScheduled(t *testing.T) {
	settings := &Settings{}
	settings.Scheduled[2][0] = ScheduledEntry{Hour: 7, Minute: 30, Duration: 90_000}
	settings.Scheduled[3][1] = ScheduledEntry{Hour: 7, Minute: 30}
	w := newRelayWatcher(settings, discardLogger())

	type check struct {
		now     relaybox.Instant
		rtc     string
		on      bool
		changed bool
	}
	for _, c := range []check{
		{1000, "07:29:58", false, false},
		{3000, "07:30:00", true, true},
		{5000, "07:30:02", true, false},
		{93000, "07:31:30", true, false},
		{95000, "07:31:32", false, true},
		{97000, "07:31:34", false, false},
	} {
		rtc, err := ParseRTCTime(c.rtc)
		require.NoError(t, err)
		states, changed := w.update(c.now, rtc)
		assert.Equal(t, c.on, states[2], "relay 2 at %v", c.now)
		assert.False(t, states[3], "disabled entry at %v", c.now)
		assert.Equal(t, c.changed, changed, "changed at %v", c.now)
	}
}

func TestDueAt(t *testing.T) {
	for _, tc := range []struct {
		entry ScheduledEntry
		rtc   RTCTime
		due   bool
	}{
		{ScheduledEntry{Hour: 0, Minute: 0}, RTCTime{0, 0, 0}, true},
		{ScheduledEntry{Hour: 0, Minute: 0}, RTCTime{0, 0, 59}, true},
		{ScheduledEntry{Hour: 23, Minute: 59}, RTCTime{23, 59, 30}, true},
		{ScheduledEntry{Hour: 12, Minute: 15}, RTCTime{12, 16, 0}, false},
		{ScheduledEntry{Hour: 12, Minute: 15}, RTCTime{0, 15, 0}, false},
	} {
		s, err := tc.entry.Schedule()
		require.NoError(t, err)
		assert.Equal(t, tc.due, dueAt(s, tc.rtc), "%s at %v", tc.entry.Spec(), tc.rtc)
	}
}

func TestSettingsValidate(t *testing.T) {
	s := &Settings{}
	s.Immediate[0] = &ImmediateEntry{Duration: -1}
	s.Scheduled[1][2] = ScheduledEntry{Hour: 24, Minute: 0, Duration: 10}
	err := s.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSettings)
	assert.Contains(t, err.Error(), "relay 0")
	assert.Contains(t, err.Error(), "relay 1 entry 2")

	assert.NoError(t, (&Settings{}).Validate())

	c := s.Clone()
	c.Immediate[0].Duration = 5
	assert.Equal(t, relaybox.Duration(-1), s.Immediate[0].Duration)
}

func TestRunStopsWhenUIReturns(t *testing.T) {
	var pressed buttons.Event[ButtonFlags]
	bn := newBench(t, func(box *Box) relaybox.Future[relaybox.Unit] {
		return Run(box, &Settings{}, buttons.DefaultOptions(), func(co *relaybox.Co, p *buttons.Processor[ButtonFlags]) {
			for p.Event().Kind != buttons.Press {
				co.Yield()
			}
			pressed = p.Event()
		})
	})

	bn.press(0, NoButtons)
	assert.Equal(t, OutputUpdateDelay, bn.delay)
	bn.press(100, Enter)
	require.False(t, bn.done)
	assert.Equal(t, relaybox.Duration(750), bn.delay)
	bn.follow(10_000)
	assert.True(t, bn.done)
	assert.Equal(t, relaybox.Instant(850), bn.now)
	assert.True(t, pressed.Is(buttons.Press, Enter))
}

func TestWaitPress2OrTimeout(t *testing.T) {
	run := func(t *testing.T, held ButtonFlags) (buttons.Event[ButtonFlags], relaybox.Instant) {
		var got buttons.Event[ButtonFlags]
		var at relaybox.Instant
		bn := newBench(t, func(box *Box) relaybox.Future[relaybox.Unit] {
			return Run(box, &Settings{}, buttons.DefaultOptions(), func(co *relaybox.Co, p *buttons.Processor[ButtonFlags]) {
				for p.Event().Kind != buttons.Press {
					co.Yield()
				}
				got = WaitPress2OrTimeout(co, box, p, 5000)
				at = box.Instant()
			})
		})
		bn.press(0, NoButtons)
		bn.press(10, held)
		bn.follow(20_000)
		require.True(t, bn.done)
		return got, at
	}

	t.Run("repeat of next", func(t *testing.T) {
		got, at := run(t, Next)
		assert.True(t, got.Is(buttons.Repeat, Next))
		assert.Equal(t, relaybox.Instant(760), at)
	})

	t.Run("repeat of enter is ignored", func(t *testing.T) {
		got, at := run(t, Enter)
		assert.Equal(t, buttons.None, got.Kind)
		assert.Equal(t, relaybox.Instant(5010), at)
	})
}

func TestFlags(t *testing.T) {
	f, err := ParseButtons("prev+next", "Enter")
	require.NoError(t, err)
	assert.Equal(t, Prev|Next|Enter, f)
	assert.Equal(t, "prev+next+enter", f.String())
	assert.True(t, f.Contains(Prev|Enter))
	assert.False(t, f.Contains(Escape))

	f, err = ParseButtons()
	require.NoError(t, err)
	assert.True(t, f.IsNone())
	assert.Equal(t, "none", f.String())

	_, err = ParseButtons("menu")
	assert.Error(t, err)

	assert.Equal(t, SignalButton, MergeSignals(NoSignals, SignalButton))
}

func TestRTCTime(t *testing.T) {
	tm, err := ParseRTCTime("23:59:30")
	require.NoError(t, err)
	assert.Equal(t, RTCTime{23, 59, 30}, tm)
	assert.Equal(t, "00:00:10", tm.Add(40e9).String())

	tm, err = ParseRTCTime("07:05")
	require.NoError(t, err)
	assert.Equal(t, "07:05:00", tm.String())

	_, err = ParseRTCTime("25:00")
	assert.Error(t, err)
}

func TestStatusMatrix(t *testing.T) {
	m := StatusMatrix(RelayStates{true, false, false, true}, Enter)
	assert.True(t, Pixel(m, 0, 0))
	assert.True(t, Pixel(m, 1, 2))
	assert.False(t, Pixel(m, 3, 0))
	assert.True(t, Pixel(m, 10, 1))
	assert.True(t, Pixel(m, 9, 7))
	assert.False(t, Pixel(m, 0, 7))
	assert.False(t, Pixel(m, 12, 0))
}

func TestRelayStatesOn(t *testing.T) {
	assert.Equal(t, 0, RelayStates{}.On())
	assert.Equal(t, 3, RelayStates{true, false, true, true}.On())
	assert.Equal(t, "1011", RelayStates{true, false, true, true}.String())
}
