package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/proximity-guard/internal/actuator"
	"github.com/oshokin/proximity-guard/internal/domain/alarm"
	"github.com/oshokin/proximity-guard/internal/domain/door"
	"github.com/oshokin/proximity-guard/internal/logger"
	"github.com/oshokin/proximity-guard/internal/motion"
	"github.com/oshokin/proximity-guard/internal/sensor"
)

// Config holds the settings shared by the controller and the simulator.
type Config struct {
	// LogLevel is the minimum level of emitted log entries.
	LogLevel string `yaml:"log_level"`
	// CycleInterval is the period of the control loop.
	CycleInterval time.Duration `yaml:"cycle_interval"`
	// Alarm configures the proximity alarm.
	Alarm Alarm `yaml:"alarm"`
	// Door configures the automatic door.
	Door Door `yaml:"door"`
	// Sensor configures the distance sensor connection.
	Sensor Sensor `yaml:"sensor"`
	// Outputs selects and wires the indicator and motor outputs.
	Outputs Outputs `yaml:"outputs"`
}

// Alarm holds the proximity alarm settings.
type Alarm struct {
	// DistanceTrigger is the distance at or below which proximity is detected.
	DistanceTrigger float64 `yaml:"distance_trigger"`
	// Timeout is how long proximity must stay clear before the alarm decays to Off.
	Timeout time.Duration `yaml:"timeout"`
	// VariationRate is the period between two color flips.
	VariationRate time.Duration `yaml:"variation_rate"`
	// ToneFrequency is the buzzer frequency in hertz.
	ToneFrequency uint `yaml:"tone_frequency"`
	// ColorA is the first flash color.
	ColorA *Color `yaml:"color_a"`
	// ColorB is the second flash color.
	ColorB *Color `yaml:"color_b"`
}

// Color is an RGB triple.
type Color struct {
	Red   uint8 `yaml:"red"`
	Green uint8 `yaml:"green"`
	Blue  uint8 `yaml:"blue"`
}

// Door holds the automatic door settings.
type Door struct {
	// OpenAngle is the target angle when opening.
	OpenAngle float64 `yaml:"open_angle"`
	// ClosedAngle is the target angle when closing.
	ClosedAngle float64 `yaml:"closed_angle"`
	// StepsPerRevolution converts degrees to motor steps.
	StepsPerRevolution int `yaml:"steps_per_revolution"`
	// OpenDistance is the distance below which the door opens.
	OpenDistance float64 `yaml:"open_distance"`
	// CloseDistance is the distance above which the door closes.
	CloseDistance float64 `yaml:"close_distance"`
	// MaxSpeed is the stepping rate in steps per second.
	MaxSpeed float64 `yaml:"max_speed"`
}

// Sensor holds the serial distance sensor settings.
type Sensor struct {
	// SerialPort is the device name, e.g. /dev/ttyUSB0 or COM3.
	SerialPort string `yaml:"serial_port"`
	// BaudRate is the serial speed.
	BaudRate int `yaml:"baud_rate"`
}

// Outputs holds the output driver and the BCM pin numbers.
type Outputs struct {
	// Driver is log or rpio.
	Driver string `yaml:"driver"`
	// RedPin, GreenPin and BluePin drive the RGB LED legs.
	RedPin   uint8 `yaml:"red_pin"`
	GreenPin uint8 `yaml:"green_pin"`
	BluePin  uint8 `yaml:"blue_pin"`
	// BuzzerPin must be a PWM0 capable pin.
	BuzzerPin uint8 `yaml:"buzzer_pin"`
	// CoilPins drive the four stepper windings in sequence order.
	CoilPins [4]uint8 `yaml:"coil_pins"`
}

const (
	// DefaultConfigFilename is the default filename for the settings.
	DefaultConfigFilename = "proximity-guard.yaml"

	// DefaultCycleInterval is the default control loop period.
	DefaultCycleInterval = 5 * time.Millisecond
)

var (
	// errStepsPerRevolution is returned for a non-positive conversion factor.
	errStepsPerRevolution = errors.New("door steps per revolution must be positive")
	// errInvertedThresholds is returned when the door would open farther than it closes.
	errInvertedThresholds = errors.New("door open distance must not exceed close distance")
	// errUnknownLogLevel is returned for an unparseable log level.
	errUnknownLogLevel = errors.New("unknown log level")
	// errDuplicatePin is returned when one pin is wired to two outputs.
	errDuplicatePin = errors.New("output pin used twice")
)

// Default returns the built-in configuration.
// Colors are left unset so that a file can replace them as a whole; Validate fills them.
func Default() *Config {
	return &Config{
		LogLevel:      "info",
		CycleInterval: DefaultCycleInterval,
		Alarm: Alarm{
			DistanceTrigger: alarm.DefaultDistanceTrigger,
			Timeout:         alarm.DefaultTimeout,
			VariationRate:   alarm.DefaultVariationRate,
			ToneFrequency:   alarm.DefaultToneFrequency,
		},
		Door: Door{
			OpenAngle:          door.DefaultOpenAngle,
			ClosedAngle:        door.DefaultClosedAngle,
			StepsPerRevolution: door.DefaultStepsPerRevolution,
			OpenDistance:       door.DefaultOpenDistance,
			CloseDistance:      door.DefaultCloseDistance,
			MaxSpeed:           motion.DefaultMaxSpeed,
		},
		Sensor: Sensor{
			BaudRate: sensor.DefaultBaudRate,
		},
		Outputs: Outputs{
			Driver:    actuator.DriverLog,
			RedPin:    17,
			GreenPin:  27,
			BluePin:   22,
			BuzzerPin: 18,
			CoilPins:  [4]uint8{5, 6, 16, 20},
		},
	}
}

// Load reads configuration from the provided path and validates it.
// Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default when the default
// settings file does not exist. A missing file given by name is an error.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if !errors.Is(err, os.ErrNotExist) || (path != "" && path != DefaultConfigFilename) {
		return cfg, err
	}

	logger.WarnKV(context.Background(), "Settings file not found, using defaults", "path", DefaultConfigFilename)

	cfg = Default()
	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate fills defaults for unset values and rejects unusable ones.
func Validate(cfg *Config) error {
	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, cfg.LogLevel)
	}

	if cfg.CycleInterval <= 0 {
		cfg.CycleInterval = DefaultCycleInterval
	}

	if cfg.Alarm.Timeout < 0 {
		cfg.Alarm.Timeout = alarm.DefaultTimeout
	}

	if cfg.Alarm.VariationRate <= 0 {
		cfg.Alarm.VariationRate = alarm.DefaultVariationRate
	}

	if cfg.Alarm.ToneFrequency == 0 {
		cfg.Alarm.ToneFrequency = alarm.DefaultToneFrequency
	}

	if cfg.Alarm.ColorA == nil {
		c := fromColor(alarm.DefaultColorA)
		cfg.Alarm.ColorA = &c
	}

	if cfg.Alarm.ColorB == nil {
		c := fromColor(alarm.DefaultColorB)
		cfg.Alarm.ColorB = &c
	}

	if cfg.Door.StepsPerRevolution <= 0 {
		return errStepsPerRevolution
	}

	if cfg.Door.OpenDistance > cfg.Door.CloseDistance {
		return fmt.Errorf("%w: %g > %g", errInvertedThresholds, cfg.Door.OpenDistance, cfg.Door.CloseDistance)
	}

	if cfg.Door.MaxSpeed <= 0 {
		cfg.Door.MaxSpeed = motion.DefaultMaxSpeed
	}

	if cfg.Sensor.BaudRate <= 0 {
		cfg.Sensor.BaudRate = sensor.DefaultBaudRate
	}

	return validateOutputs(&cfg.Outputs)
}

func validateOutputs(o *Outputs) error {
	switch o.Driver {
	case "":
		o.Driver = actuator.DriverLog
	case actuator.DriverLog, actuator.DriverRPIO:
	default:
		return fmt.Errorf("%w: %q", actuator.ErrUnknownDriver, o.Driver)
	}

	seen := make(map[uint8]bool, 8)
	for _, pin := range append([]uint8{o.RedPin, o.GreenPin, o.BluePin, o.BuzzerPin}, o.CoilPins[:]...) {
		if seen[pin] {
			return fmt.Errorf("%w: %d", errDuplicatePin, pin)
		}

		seen[pin] = true
	}

	return nil
}

// IndicatorPins returns the LED and buzzer wiring.
func (o *Outputs) IndicatorPins() actuator.IndicatorPins {
	return actuator.IndicatorPins{
		Red:    o.RedPin,
		Green:  o.GreenPin,
		Blue:   o.BluePin,
		Buzzer: o.BuzzerPin,
	}
}

// Apply copies the alarm settings to target.
func (a *Alarm) Apply(target *alarm.Alarm) {
	target.SetDistance(a.DistanceTrigger)
	target.SetTimeout(a.Timeout)
	target.SetVariationTiming(a.VariationRate)
	target.SetToneFrequency(a.ToneFrequency)

	if a.ColorA != nil {
		target.SetColorA(a.ColorA.toColor())
	}

	if a.ColorB != nil {
		target.SetColorB(a.ColorB.toColor())
	}
}

// Apply copies the door settings to target.
func (d *Door) Apply(target *door.Door) {
	target.SetOpenAngle(d.OpenAngle)
	target.SetClosedAngle(d.ClosedAngle)
	target.SetStepsPerRevolution(d.StepsPerRevolution)
	target.SetOpenDistance(d.OpenDistance)
	target.SetCloseDistance(d.CloseDistance)
}

func (c Color) toColor() alarm.Color {
	return alarm.Color{
		Red:   c.Red,
		Green: c.Green,
		Blue:  c.Blue,
	}
}

func fromColor(c alarm.Color) Color {
	return Color{
		Red:   c.Red,
		Green: c.Green,
		Blue:  c.Blue,
	}
}
