// Package scenario describes reproducible button sessions for the relay box.
//
// A scenario fixes the start instant, the time of day of the real time
// clock, the processor options, the relay settings and a list of button
// readings. Scenarios are written in YAML:
//
//	name: hold-enter
//	start: 0
//	until: 5s
//	clock: "07:29:30"
//	options:
//	  repetition_start_delay: 750ms
//	  repetition_delay: 375ms
//	settings:
//	  scheduled:
//	    - - {hour: 7, minute: 30, duration: 90s}
//	readings:
//	  - {at: 0, buttons: []}
//	  - {at: 100, buttons: [enter]}
//	  - {at: 2500, buttons: []}
//
// Durations and instants are milliseconds, either as integers or as Go
// duration strings. Button lists use the names escape, prev, next and
// enter; "prev+next" is accepted as well.
package scenario
