// Package alarm contains the proximity alarm state machine.
//
// An Alarm watches the distance passed to Update and walks through Off,
// Watching, On and Testing. While On or Testing it flashes an Indicator
// between two colors and keeps a tone running. Explicit TurnOn/TurnOff
// requests and automatic detection share one pending command that is applied
// once, after the state rule of the cycle has been evaluated.
package alarm
