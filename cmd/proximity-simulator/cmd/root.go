package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/proximity-guard/internal/config"
	"github.com/oshokin/proximity-guard/internal/service/simulator"
	"github.com/oshokin/proximity-guard/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// quiet hides informational logs.
	quiet bool

	// rootCmd represents the base command for replaying a scenario.
	rootCmd = &cobra.Command{
		Use:   "proximity-simulator <scenario.yaml>",
		Short: "Replay a distance scenario against the alarm and the door.",
		Long: `Replays a recorded distance scenario on a simulated clock and prints a trace.

Each sample is held for the scenario step while the control loop runs at the cycle period.
A trace line is printed at every sample boundary and at every state change.
Events in the scenario inject self-test, turn-on and turn-off requests before a sample.
The trace goes to stdout, logs go to stderr.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return simulator.Run(ctx, &simulator.Options{
				ConfigPath:   configPath,
				ScenarioPath: args[0],
				Output:       cmd.OutOrStdout(),
				LogOutput:    cmd.ErrOrStderr(),
				Quiet:        quiet,
			})
		},
	}
)

// Execute runs the proximity-simulator CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print warnings and errors only")
}
