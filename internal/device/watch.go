package device

import (
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/greaheisl/relaybox"
)

// OutputUpdateDelay is how often the relay watcher recomputes the relays.
const OutputUpdateDelay relaybox.Duration = 2000

type scheduledRun struct {
	stop   relaybox.Instant
	active bool
}

// relayWatcher derives the relay states from the settings.
type relayWatcher struct {
	settings  *Settings
	logger    *slog.Logger
	schedules map[string]cron.Schedule
	runs      [NumRelays][MaxScheduledEntries]scheduledRun
	relays    RelayStates
}

func newRelayWatcher(settings *Settings, logger *slog.Logger) *relayWatcher {
	return &relayWatcher{
		settings:  settings,
		logger:    logger,
		schedules: make(map[string]cron.Schedule),
	}
}

func (w *relayWatcher) schedule(e ScheduledEntry) (cron.Schedule, error) {
	spec := e.Spec()
	if s, ok := w.schedules[spec]; ok {
		return s, nil
	}
	s, err := e.Schedule()
	if err != nil {
		return nil, err
	}
	w.schedules[spec] = s
	return s, nil
}

// update computes the relay states at now. Expired immediate entries are
// removed from the settings. It reports whether the states changed.
func (w *relayWatcher) update(now relaybox.Instant, rtc RTCTime) (RelayStates, bool) {
	var next RelayStates

	for i, e := range w.settings.Immediate {
		if e == nil {
			continue
		}
		if e.TimeLeft(now) <= 0 {
			w.settings.Immediate[i] = nil
			w.logger.Debug("immediate timer expired", "relay", i, "instant", now)
			continue
		}
		next[i] = true
	}

	for i := range NumRelays {
		for j := range MaxScheduledEntries {
			run := &w.runs[i][j]
			if run.active {
				if run.stop.Sub(now) >= 0 {
					next[i] = true
				} else {
					run.active = false
				}
				continue
			}
			e := w.settings.Scheduled[i][j]
			if !e.Enabled() {
				continue
			}
			s, err := w.schedule(e)
			if err != nil {
				w.logger.Warn("skipping scheduled entry", "relay", i, "entry", j, "err", err)
				continue
			}
			if dueAt(s, rtc) {
				run.stop = now.Add(e.Duration)
				run.active = true
				next[i] = true
				w.logger.Debug("scheduled timer started", "relay", i, "entry", j, "rtc", rtc, "until", run.stop)
			}
		}
	}

	if next == w.relays {
		return next, false
	}
	w.relays = next
	return next, true
}

// WatchOutput switches the relays according to settings until stop fires.
// The relay states are recomputed every OutputUpdateDelay milliseconds; the
// stop signal is looked at whenever the task is resumed.
func WatchOutput(co *relaybox.Co, sys System, settings *Settings, stop relaybox.StopSignal, opts ...Option) {
	cfg := newConfig(opts)
	w := newRelayWatcher(settings, cfg.logger)
	for !stop.Stopped() {
		now := sys.Instant()
		if states, changed := w.update(now, sys.RTC()); changed {
			cfg.logger.Info("relays changed", "instant", now, "relays", states)
			sys.SetRelays(states)
			for _, h := range cfg.relayHooks {
				h(now, states)
			}
		}
		tm := relaybox.NewTimer(sys, OutputUpdateDelay)
		for relaybox.Await(co, tm.YieldIfTimeLeft()) {
			if stop.Stopped() {
				return
			}
		}
	}
}
