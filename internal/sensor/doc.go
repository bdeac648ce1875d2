// Package sensor provides distance sources for the control loop.
//
// Serial streams readings from a microcontroller over a serial port, Static
// returns a constant and Script replays a recorded sequence. Readers publish
// through Latest so that a sample is always read whole.
package sensor
