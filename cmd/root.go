package cmd

import (
	"fmt"
	"io"

	"github.com/sherine-k/qnetsim/pkg/config"
	"github.com/sherine-k/qnetsim/pkg/logging"
	"github.com/spf13/cobra"
)

var (
	configFile string
	presetName string
	logLevel   string
	logFormat  string
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "qnetsim",
		Short: "Queueing Network Simulator",
		Long: `A CLI tool that simulates open networks of finite-capacity multi-server
queues with uniform inter-arrival and service times.

It reads a network description, runs an event-driven simulation and reports
the time each queue spent at every population level, the number of customers
lost to full queues and the final simulated clock.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger := logging.New(logging.Config{
				Level:  logLevel,
				Format: logFormat,
				Output: cmd.ErrOrStderr(),
			})
			cmd.SetContext(logging.ContextWithLogger(cmd.Context(), logger))
		},
	}

	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to configuration file")
	root.PersistentFlags().StringVarP(&presetName, "preset", "p", "", "Use a built-in network instead of a configuration file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")

	root.AddCommand(newRunCmd(), newValidateCmd(), newPresetsCmd())
	return root
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig resolves --config and --preset into a validated configuration.
// Overrides are applied before validation.
func loadConfig(overrides ...config.Override) (*config.Config, string, error) {
	switch {
	case configFile != "" && presetName != "":
		return nil, "", fmt.Errorf("--config and --preset are mutually exclusive")
	case presetName != "":
		cfg, err := config.LookupPreset(presetName, overrides...)
		if err != nil {
			return nil, "", err
		}
		return cfg, "preset " + presetName, nil
	case configFile != "":
		cfg, err := config.LoadConfig(configFile, overrides...)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load configuration: %w", err)
		}
		return cfg, configFile, nil
	default:
		return nil, "", fmt.Errorf("one of --config or --preset is required")
	}
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
