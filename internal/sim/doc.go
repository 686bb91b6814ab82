// Package sim replays scenarios against the relay box without real time.
//
// The simulator is a discrete-event host for the executor. It steps the
// device task at every button reading of the scenario, with the button
// signal set, and at every deadline the task asked for. Everything the box
// does on the way (button events, relay switches, hold checks) ends up in a
// Trace.
package sim
