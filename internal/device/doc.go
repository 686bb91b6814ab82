// Package device is the relay timer box built on relaybox: four buttons, a
// real time clock, a 12x8 LED matrix and four output relays.
//
// Run is the main task of the box. It forks the user interface, which reads
// the buttons through a processor, and the relay watcher, which switches the
// relays according to Settings.
package device
