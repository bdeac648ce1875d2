package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/proximity-guard/internal/config"
	"github.com/oshokin/proximity-guard/internal/service/controller"
	"github.com/oshokin/proximity-guard/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// selfTest starts the alarm self-test before the first cycle.
	selfTest bool
	// distance feeds a constant reading instead of a sensor.
	distance float64
	// skipInstanceCheck allows several controllers on one machine.
	skipInstanceCheck bool

	// rootCmd represents the base command for running the control loop.
	rootCmd = &cobra.Command{
		Use:   "proximity-controller [serial-port]",
		Short: "Run the proximity alarm and the automatic door.",
		Long: `Runs the control loop that drives the proximity alarm and the automatic door.

Distance readings come from a sensor streaming one value per line over a serial port.
The port can be provided as argument to override config (e.g., /dev/ttyUSB0, COM3).
Use --distance to run against a constant reading without any sensor attached.
The loop stops on SIGINT or SIGTERM and leaves the indicator dark and the motor released.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use serial port argument if provided, otherwise rely on config.
			var serialPort string
			if len(args) > 0 {
				serialPort = args[0]
			}

			options := &controller.Options{
				ConfigPath:        configPath,
				SerialPort:        serialPort,
				SelfTest:          selfTest,
				SkipInstanceCheck: skipInstanceCheck,
			}

			if cmd.Flags().Changed("distance") {
				options.FixedDistance = &distance
			}

			return controller.Run(ctx, options)
		},
	}
)

// Execute runs the proximity-controller CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().BoolVar(&selfTest, "self-test", false, "run the alarm self-test on startup")
	rootCmd.Flags().Float64Var(&distance, "distance", 0, "use a constant distance instead of a sensor")
	rootCmd.Flags().BoolVar(&skipInstanceCheck, "skip-instance-check", false, "allow several controllers to run")

	_ = rootCmd.Flags().MarkHidden("skip-instance-check")
}
