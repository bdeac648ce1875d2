package actuator

import (
	"fmt"

	"github.com/stianeikeland/go-rpio/v4"
)

// RPIO is Pins on top of go-rpio.
type RPIO struct{}

var _ Pins = RPIO{}

// OpenRPIO maps the GPIO registers.
func OpenRPIO() (RPIO, error) {
	if err := rpio.Open(); err != nil {
		return RPIO{}, fmt.Errorf("open rpio: %w", err)
	}

	return RPIO{}, nil
}

// Output switches the pin to output mode.
func (RPIO) Output(pin uint8) {
	rpio.Pin(pin).Output()
}

// Set drives the pin high or low.
func (RPIO) Set(pin uint8, high bool) {
	if high {
		rpio.Pin(pin).High()
	} else {
		rpio.Pin(pin).Low()
	}
}

// Square runs the pin in PWM mode with a two-tick cycle, so the clock is twice the tone.
func (RPIO) Square(pin uint8, frequency uint) {
	p := rpio.Pin(pin)

	if frequency == 0 {
		rpio.SetDutyCycle(p, 0, 2)
		return
	}

	p.Pwm()
	p.Freq(int(frequency) * 2)
	rpio.SetDutyCycle(p, 1, 2)
}

// Close unmaps the GPIO registers.
func (RPIO) Close() error {
	return rpio.Close()
}
