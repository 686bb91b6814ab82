package sim

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greaheisl/relaybox"
	"github.com/greaheisl/relaybox/internal/device"
	"github.com/greaheisl/relaybox/internal/scenario"
)

func run(t *testing.T, sc *scenario.Scenario, opts ...Option) *Trace {
	t.Helper()
	trace, err := New(sc, opts...).Run(context.Background())
	require.NoError(t, err)
	return trace
}

func TestSelectAndHoldEnter(t *testing.T) {
	sc := scenario.New("select-and-hold").
		Until(6000).
		Clock(7, 0, 0).
		Release(0).
		Press(100, "next").
		Release(300).
		Press(500, "enter").
		Release(3000).
		MustBuild()

	trace := run(t, sc)

	assert.Equal(t, []string{
		"Press(next)@100",
		"Release(next)@300",
		"Press(enter)@500",
		"Repeat(enter)@1250",
		"Repeat(enter)@1625",
		"Repeat(enter)@2000",
		"Repeat(enter)@2375",
		"Repeat(enter)@2750",
		"Release(enter)@3000",
	}, trace.Details(KindButton))
	assert.Equal(t, []string{"relay 1@100"}, trace.Details(KindSelect))
	assert.Equal(t, []string{"enter Confirmed@2500"}, trace.Details(KindHold))
	assert.Equal(t, []string{"relay 1 on for 3600000ms@2500"}, trace.Details(KindTimer))
	assert.Equal(t, []string{"0100@4000"}, trace.Details(KindRelays))

	assert.Equal(t, relaybox.Instant(6000), trace.End)
	assert.Equal(t, uint64(16), trace.Steps)
	assert.False(t, trace.Finished)
	assert.Equal(t, "0100", trace.Relays.String())
	assert.Equal(t, device.RTCTime{Hour: 7, Minute: 0, Second: 6}, trace.Clock)
	assert.Nil(t, sc.Settings.Immediate[1], "scenario settings must not change")
}

func TestHoldEscapeShutsDown(t *testing.T) {
	sc := scenario.New("shutdown").
		Until(10000).
		Release(0).
		Press(100, "escape").
		Release(2500).
		MustBuild()

	trace := run(t, sc)

	assert.Equal(t, []string{
		"Press(escape)@100",
		"Repeat(escape)@850",
		"Repeat(escape)@1225",
		"Repeat(escape)@1600",
		"Repeat(escape)@1975",
	}, trace.Details(KindButton))
	assert.Equal(t, []string{"escape Confirmed@2100"}, trace.Details(KindHold))
	assert.Equal(t, []string{"escape held@2100"}, trace.Details(KindShutdown))
	assert.True(t, trace.Finished)
	assert.Equal(t, relaybox.Instant(2350), trace.End)
	assert.Equal(t, uint64(9), trace.Steps)
}

func TestShortPressAndWrapAround(t *testing.T) {
	sc := scenario.New("short").
		Until(1000).
		Release(0).
		Tap(100, 100, "prev").
		Tap(300, 100, "enter").
		MustBuild()

	trace := run(t, sc)

	assert.Equal(t, []string{"relay 3@100"}, trace.Details(KindSelect))
	assert.Equal(t, []string{"enter ReleasedEarly@400"}, trace.Details(KindHold))
	assert.Empty(t, trace.Details(KindTimer))
	assert.Equal(t, relaybox.Instant(1000), trace.End)
}

func relayScenario(t *testing.T) *scenario.Scenario {
	t.Helper()
	sc, err := scenario.New("relays").
		Until(10000).
		Clock(7, 0, 55).
		Immediate(0, 0, 3000).
		Scheduled(2, 0, 7, 1, 3000).
		Build()
	require.NoError(t, err)
	return sc
}

func TestRelayTimers(t *testing.T) {
	sc := relayScenario(t)
	var steps []relaybox.Instant
	var hooked []Record
	trace := run(t, sc,
		WithObserver(relaybox.ObserverFunc(func(info relaybox.StepInfo) {
			steps = append(steps, info.Instant)
		})),
		WithRecordHook(func(r Record) { hooked = append(hooked, r) }),
	)

	assert.Equal(t, []string{"1000@0", "0000@4000", "0010@6000", "0000@10000"}, trace.Details(KindRelays))
	assert.Empty(t, trace.Details(KindButton))
	assert.Equal(t, uint64(11), trace.Steps)
	assert.Len(t, steps, 11)
	assert.Equal(t, relaybox.Instant(10000), steps[10])
	assert.Equal(t, trace.Records, hooked)
	assert.Equal(t, device.RTCTime{Hour: 7, Minute: 1, Second: 5}, trace.Clock)

	assert.NotEqual(t, uuid.Nil, trace.RunID)
	assert.Equal(t, sc.Fingerprint(), trace.Fingerprint)
	assert.Equal(t, "relays", trace.Scenario)
	require.NotNil(t, sc.Settings.Immediate[0], "scenario settings must not change")
}

func TestRunsGetDistinctIDs(t *testing.T) {
	sc := relayScenario(t)
	a := run(t, sc)
	b := run(t, sc)
	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Equal(t, a.Records, b.Records)
}

func TestStepBudget(t *testing.T) {
	trace, err := New(relayScenario(t), WithMaxSteps(3)).Run(context.Background())
	require.ErrorIs(t, err, ErrSpin)
	assert.Equal(t, uint64(3), trace.Steps)
	assert.Equal(t, relaybox.Instant(2000), trace.End)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	trace, err := New(relayScenario(t)).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(1), trace.Steps)
}

func TestPeripheralsClock(t *testing.T) {
	now := relaybox.Instant(1000)
	p := newPeripherals(func() relaybox.Instant { return now }, device.RTCTime{Hour: 23, Minute: 59, Second: 58})
	now = 4000
	assert.Equal(t, device.RTCTime{Hour: 0, Minute: 0, Second: 1}, p.RTC())

	p.SetRTC(device.RTCTime{Hour: 12})
	now = 5000
	assert.Equal(t, device.RTCTime{Hour: 12, Minute: 0, Second: 1}, p.RTC())
}

func TestTraceFilter(t *testing.T) {
	tr := &Trace{Records: []Record{
		{At: 1, Kind: KindButton, Detail: "Press(enter)"},
		{At: 2, Kind: KindRelays, Detail: "1000"},
		{At: 3, Kind: KindHold, Detail: "enter Confirmed"},
	}}
	assert.Len(t, tr.Filter(KindButton, KindHold), 2)
	assert.Empty(t, tr.Filter(KindShutdown))
	assert.Equal(t, "@2ms relays 1000", tr.Records[1].String())
}

func TestFixedRunID(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	trace := run(t, relayScenario(t), WithRunID(id))
	assert.Equal(t, id, trace.RunID)
}
