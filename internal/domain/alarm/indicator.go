package alarm

import "fmt"

// Color is a three-channel intensity triple.
type Color struct {
	Red   uint8
	Green uint8
	Blue  uint8
}

// Black switches every channel off.
var Black = Color{}

// String renders the color as #rrggbb.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.Red, c.Green, c.Blue)
}

// Indicator drives the light and the buzzer of the alarm.
// Every call must be idempotent: the alarm may repeat the same value.
type Indicator interface {
	// SetColor writes the given intensities to the light.
	SetColor(c Color)
	// Tone starts a tone at the given frequency in hertz.
	Tone(frequency uint)
	// NoTone silences the buzzer.
	NoTone()
}
