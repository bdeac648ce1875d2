package actuator

import (
	"sync"

	"github.com/oshokin/proximity-guard/internal/domain/alarm"
	"github.com/oshokin/proximity-guard/internal/motion"
)

// channelThreshold is the channel value from which a digital LED leg is lit.
const channelThreshold = 128

// IndicatorPins names the pins of a common-cathode RGB LED and a buzzer.
type IndicatorPins struct {
	Red    uint8
	Green  uint8
	Blue   uint8
	Buzzer uint8
}

// PinIndicator is an alarm.Indicator driving an RGB LED and a buzzer.
// Each color channel is on or off.
type PinIndicator struct {
	pins   Pins
	layout IndicatorPins

	mu sync.Mutex
}

var _ alarm.Indicator = (*PinIndicator)(nil)

// NewPinIndicator sets the LED pins to output and turns everything off.
func NewPinIndicator(pins Pins, layout IndicatorPins) *PinIndicator {
	for _, pin := range []uint8{layout.Red, layout.Green, layout.Blue} {
		pins.Output(pin)
		pins.Set(pin, false)
	}

	pins.Square(layout.Buzzer, 0)

	return &PinIndicator{
		pins:   pins,
		layout: layout,
	}
}

// SetColor lights the LED legs whose channel reaches the threshold.
func (p *PinIndicator) SetColor(c alarm.Color) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pins.Set(p.layout.Red, c.Red >= channelThreshold)
	p.pins.Set(p.layout.Green, c.Green >= channelThreshold)
	p.pins.Set(p.layout.Blue, c.Blue >= channelThreshold)
}

// Tone starts the buzzer.
func (p *PinIndicator) Tone(frequency uint) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pins.Square(p.layout.Buzzer, frequency)
}

// NoTone stops the buzzer.
func (p *PinIndicator) NoTone() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pins.Square(p.layout.Buzzer, 0)
}

// PinCoils is a motion.Coils driving four winding pins, e.g. through a ULN2003.
type PinCoils struct {
	pins   Pins
	layout [4]uint8

	mu sync.Mutex
}

var _ motion.Coils = (*PinCoils)(nil)

// NewPinCoils sets the winding pins to output and releases them.
func NewPinCoils(pins Pins, layout [4]uint8) *PinCoils {
	c := &PinCoils{
		pins:   pins,
		layout: layout,
	}

	for _, pin := range layout {
		pins.Output(pin)
	}

	c.Energize([4]bool{})

	return c
}

// Energize drives each winding pin.
func (c *PinCoils) Energize(pattern [4]bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, pin := range c.layout {
		c.pins.Set(pin, pattern[i])
	}
}
