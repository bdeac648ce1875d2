// Package simulator replays recorded distance scenarios against the alarm and
// the door on a manual clock and prints a trace of their states.
package simulator
