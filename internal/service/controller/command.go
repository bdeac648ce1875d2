package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oshokin/proximity-guard/internal/clock"
	"github.com/oshokin/proximity-guard/internal/config"
	"github.com/oshokin/proximity-guard/internal/domain/alarm"
	"github.com/oshokin/proximity-guard/internal/logger"
	"github.com/oshokin/proximity-guard/internal/sensor"
	"github.com/oshokin/proximity-guard/internal/service/common"
)

// Options controls the control loop process and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// SerialPort overrides the sensor port from the configuration.
	SerialPort string
	// FixedDistance replaces the serial sensor with a constant reading when set.
	FixedDistance *float64
	// SelfTest starts the alarm self-test on the first cycle.
	SelfTest bool
	// SkipInstanceCheck allows several controllers to run at once.
	SkipInstanceCheck bool
}

// ErrNoSensor indicates that neither a serial port nor a fixed distance was given.
var ErrNoSensor = errors.New("no distance sensor configured")

// Run drives the alarm and the door until the context is canceled.
// Loads configuration first, then opens the sensor and ticks both controllers every cycle interval.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "proximity-controller")

	// A missing settings file means built-in defaults.
	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	if !opts.SkipInstanceCheck {
		if err = common.EnsureSingleInstance(); err != nil {
			return err
		}
	}

	source, closeSource, err := openSource(ctx, cfg, opts)
	if err != nil {
		return err
	}

	defer closeSource()

	devices, err := OpenDevices(ctx, cfg, clock.NewSystem())
	if err != nil {
		return err
	}

	defer func() {
		if err := devices.Release(); err != nil {
			logger.ErrorKV(ctx, "Release outputs failed", "error", err)
		}
	}()

	if opts.SelfTest {
		devices.Alarm.Test()
		logger.InfoKV(ctx, "Alarm self-test started", "duration", alarm.SelfTestDuration.String())
	}

	cycle := NewCycle(devices.Alarm, devices.Door, source)

	logger.InfoKV(ctx, "Control loop started",
		"cycle_interval", cfg.CycleInterval.String(),
		"alarm_trigger", cfg.Alarm.DistanceTrigger,
		"door_open_distance", cfg.Door.OpenDistance,
		"door_close_distance", cfg.Door.CloseDistance,
	)

	ticker := time.NewTicker(cfg.CycleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.InfoKV(ctx, "Control loop stopped", "cycles", cycle.Cycles())
			return nil
		case <-ticker.C:
			cycle.Step(ctx)
		}
	}
}

// openSource picks the distance source: a fixed value, or the serial sensor
// from the command line or the configuration.
func openSource(ctx context.Context, cfg *config.Config, opts *Options) (sensor.Source, func(), error) {
	if opts.FixedDistance != nil {
		logger.InfoKV(ctx, "Using fixed distance", "distance", *opts.FixedDistance)
		return sensor.Static(*opts.FixedDistance), func() {}, nil
	}

	port := cfg.Sensor.SerialPort
	if opts.SerialPort != "" {
		port = opts.SerialPort
	}

	if port == "" {
		available, err := sensor.ListPorts()
		if err != nil || len(available) == 0 {
			return nil, nil, ErrNoSensor
		}

		return nil, nil, fmt.Errorf("%w, available serial ports: %s", ErrNoSensor, strings.Join(available, ", "))
	}

	serialSource, err := sensor.OpenSerial(ctx, port, cfg.Sensor.BaudRate)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		if err := serialSource.Close(); err != nil {
			logger.ErrorKV(ctx, "Close serial port failed", "error", err)
		}
	}

	return serialSource, closeFn, nil
}
