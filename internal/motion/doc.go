// Package motion implements the software stepper used to move the door.
//
// Stepper satisfies door.Motor: it keeps an absolute position and target,
// steps at a constant rate and writes the four-wire coil sequence to Coils.
package motion
