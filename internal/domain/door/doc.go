// Package door contains the automatic door state machine.
//
// The door owns its logical state (Closed, Opening, Open, Closing) while the
// physical position belongs to an injected Motor. Opening and Closing only
// settle once the motor reports that no distance is left to go.
package door
