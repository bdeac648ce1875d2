package simulator

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap/zapcore"

	"github.com/oshokin/proximity-guard/internal/config"
	"github.com/oshokin/proximity-guard/internal/logger"
)

// Options controls the simulator process and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// ScenarioPath specifies the scenario to replay.
	ScenarioPath string
	// Output receives the trace; defaults to stdout.
	Output io.Writer
	// LogOutput receives log entries; defaults to stderr.
	LogOutput io.Writer
	// Quiet hides everything below warnings from the log.
	Quiet bool
}

// Run loads the settings and the scenario and replays it.
func Run(ctx context.Context, opts *Options) error {
	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	scenario, err := LoadScenario(opts.ScenarioPath)
	if err != nil {
		return err
	}

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	logOutput := opts.LogOutput
	if logOutput == nil {
		logOutput = os.Stderr
	}

	level, _ := logger.ParseLogLevel(cfg.LogLevel)

	// The trace owns the output stream, logs go elsewhere.

	l := logger.NewWithWriter(logOutput, level)
	if opts.Quiet {
		l = l.WithOptions(logger.WithLevel(zapcore.WarnLevel))
	}

	ctx = logger.WithName(logger.ToContext(ctx, l), "proximity-simulator")

	logger.InfoKV(ctx, "Replaying scenario",
		"scenario", opts.ScenarioPath,
		"samples", len(scenario.Samples),
		"step", scenario.Step.String(),
	)

	_, err = Simulate(ctx, cfg, scenario, output)

	return err
}
