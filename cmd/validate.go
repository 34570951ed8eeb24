package cmd

import (
	"fmt"

	"github.com/sherine-k/qnetsim/pkg/chart"
	"github.com/sherine-k/qnetsim/pkg/config"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a network description without running it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, source, err := loadConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printf(out, "Loaded configuration from %s\n", source)
			printf(out, "  - Start At: %g\n", cfg.StartAt)
			printf(out, "  - Termination: %s\n", describeTermination(cfg.Termination))
			printf(out, "  - Nodes: %d\n", len(cfg.Nodes))
			printf(out, "  - Routes: %d\n", len(cfg.Routes))
			printf(out, "  - Injections: %d\n", len(cfg.Injections))
			printf(out, "%s", chart.NewGenerator(false).GenerateWarnings(warnings(cfg)))
			return nil
		},
	}
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in networks",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.Presets() {
				printf(cmd.OutOrStdout(), "%-10s %s\n", p.Name, p.Description)
			}
		},
	}
}

func describeTermination(t config.Termination) string {
	if t.Policy == config.PolicyDrawCap {
		return fmt.Sprintf("%s (%s guard, limit %d)", t.Policy, t.Guard, t.Limit)
	}
	return string(t.Policy)
}
