package device

import (
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/greaheisl/relaybox"
)

// MaxScheduledEntries is the number of daily timers per relay.
const MaxScheduledEntries = 3

// ErrInvalidSettings is wrapped by Settings.Validate.
var ErrInvalidSettings = errors.New("device: invalid settings")

// ImmediateEntry is a timer that started at Start and keeps its relay on
// for Duration.
type ImmediateEntry struct {
	Start    relaybox.Instant  `yaml:"start" mapstructure:"start" json:"start"`
	Duration relaybox.Duration `yaml:"duration" mapstructure:"duration" json:"duration"`
}

// TimeLeft returns the remaining on time at now.
func (e ImmediateEntry) TimeLeft(now relaybox.Instant) relaybox.Duration {
	return e.Duration - now.Sub(e.Start)
}

// ScheduledEntry switches its relay on daily at Hour:Minute for Duration.
// A zero duration disables the entry.
type ScheduledEntry struct {
	Hour     uint8             `yaml:"hour" mapstructure:"hour" json:"hour"`
	Minute   uint8             `yaml:"minute" mapstructure:"minute" json:"minute"`
	Duration relaybox.Duration `yaml:"duration" mapstructure:"duration" json:"duration"`
}

// Enabled reports whether the entry is in use.
func (e ScheduledEntry) Enabled() bool {
	return e.Duration > 0
}

// Spec returns the entry's start time as a cron expression.
func (e ScheduledEntry) Spec() string {
	return fmt.Sprintf("%d %d * * *", e.Minute, e.Hour)
}

// Schedule parses Spec with the standard cron parser.
func (e ScheduledEntry) Schedule() (cron.Schedule, error) {
	s, err := cron.ParseStandard(e.Spec())
	if err != nil {
		return nil, fmt.Errorf("%w: schedule %q: %v", ErrInvalidSettings, e.Spec(), err)
	}
	return s, nil
}

// Settings are the timers of all relays.
type Settings struct {
	// Immediate holds at most one running timer per relay.
	Immediate [NumRelays]*ImmediateEntry `yaml:"immediate" mapstructure:"immediate" json:"immediate"`
	// Scheduled holds the daily timers of every relay.
	Scheduled [NumRelays][MaxScheduledEntries]ScheduledEntry `yaml:"scheduled" mapstructure:"scheduled" json:"scheduled"`
}

// Clone returns a deep copy.
func (s *Settings) Clone() *Settings {
	c := *s
	for i, e := range s.Immediate {
		if e != nil {
			cp := *e
			c.Immediate[i] = &cp
		}
	}
	return &c
}

// Validate checks durations and start times of all entries.
func (s *Settings) Validate() error {
	var errs []error
	for i, e := range s.Immediate {
		if e != nil && e.Duration < 0 {
			errs = append(errs, fmt.Errorf("%w: relay %d: negative immediate duration %v", ErrInvalidSettings, i, e.Duration))
		}
	}
	for i, entries := range s.Scheduled {
		for j, e := range entries {
			if e.Duration < 0 {
				errs = append(errs, fmt.Errorf("%w: relay %d entry %d: negative duration %v", ErrInvalidSettings, i, j, e.Duration))
			}
			if e.Hour > 23 || e.Minute > 59 {
				errs = append(errs, fmt.Errorf("%w: relay %d entry %d: invalid start %02d:%02d", ErrInvalidSettings, i, j, e.Hour, e.Minute))
			}
		}
	}
	return errors.Join(errs...)
}

// scheduleDay anchors times of day for cron matching.
var scheduleDay = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// dueAt reports whether a schedule fires in the minute of t.
func dueAt(s cron.Schedule, t RTCTime) bool {
	minute := scheduleDay.Add(time.Duration(t.Hour)*time.Hour + time.Duration(t.Minute)*time.Minute)
	return s.Next(minute.Add(-time.Second)).Equal(minute)
}
