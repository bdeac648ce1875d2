package controller

import (
	"context"
	"fmt"

	"github.com/oshokin/proximity-guard/internal/actuator"
	"github.com/oshokin/proximity-guard/internal/clock"
	"github.com/oshokin/proximity-guard/internal/config"
	"github.com/oshokin/proximity-guard/internal/domain/alarm"
	"github.com/oshokin/proximity-guard/internal/domain/door"
	"github.com/oshokin/proximity-guard/internal/logger"
	"github.com/oshokin/proximity-guard/internal/motion"
)

// Devices wires the controllers to their actuators.
type Devices struct {
	Indicator alarm.Indicator
	Coils     motion.Coils
	Stepper   *motion.Stepper
	Alarm     *alarm.Alarm
	Door      *door.Door

	// pins is nil for the log driver.
	pins actuator.Pins
}

// OpenDevices builds both controllers on the output driver named in the configuration.
func OpenDevices(ctx context.Context, cfg *config.Config, clk clock.Clock) (*Devices, error) {
	pins, err := actuator.OpenPins(cfg.Outputs.Driver)
	if err != nil {
		return nil, err
	}

	if pins == nil {
		return NewLogDevices(ctx, cfg, clk), nil
	}

	logger.InfoKV(ctx, "GPIO outputs opened",
		"driver", cfg.Outputs.Driver,
		"coil_pins", fmt.Sprint(cfg.Outputs.CoilPins),
	)

	return NewPinDevices(cfg, clk, pins), nil
}

// NewLogDevices builds both controllers on top of logging actuators.
func NewLogDevices(ctx context.Context, cfg *config.Config, clk clock.Clock) *Devices {
	return newDevices(cfg, clk, actuator.NewLogIndicator(ctx), actuator.NewLogCoils(ctx), nil)
}

// NewPinDevices builds both controllers on GPIO pins. Release closes the pins.
func NewPinDevices(cfg *config.Config, clk clock.Clock, pins actuator.Pins) *Devices {
	indicator := actuator.NewPinIndicator(pins, cfg.Outputs.IndicatorPins())
	coils := actuator.NewPinCoils(pins, cfg.Outputs.CoilPins)

	return newDevices(cfg, clk, indicator, coils, pins)
}

func newDevices(
	cfg *config.Config,
	clk clock.Clock,
	indicator alarm.Indicator,
	coils motion.Coils,
	pins actuator.Pins,
) *Devices {
	stepper := motion.New(coils, clk, cfg.Door.MaxSpeed)

	a := alarm.New(indicator, clk)
	cfg.Alarm.Apply(a)

	d := door.New(stepper)
	cfg.Door.Apply(d)

	return &Devices{
		Indicator: indicator,
		Coils:     coils,
		Stepper:   stepper,
		Alarm:     a,
		Door:      d,
		pins:      pins,
	}
}

// Release blanks the indicator, silences the buzzer and releases the motor,
// whatever state the controllers are in. GPIO pins are closed afterwards.
func (d *Devices) Release() error {
	d.Indicator.SetColor(alarm.Black)
	d.Indicator.NoTone()
	d.Stepper.Disable()

	if d.pins == nil {
		return nil
	}

	if err := d.pins.Close(); err != nil {
		return fmt.Errorf("close output pins: %w", err)
	}

	return nil
}
