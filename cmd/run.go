package cmd

import (
	"fmt"

	"github.com/sherine-k/qnetsim/pkg/chart"
	"github.com/sherine-k/qnetsim/pkg/config"
	"github.com/sherine-k/qnetsim/pkg/logging"
	"github.com/sherine-k/qnetsim/pkg/report"
	"github.com/sherine-k/qnetsim/pkg/simulation"
	"github.com/spf13/cobra"
)

var (
	outputFormat string
	limit        int64
	guard        string
	showBars     bool
	showSummary  bool
	timeline     int
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation and print the report",
		RunE:  runSimulation,
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Report format: text, json or yaml")
	cmd.Flags().Int64Var(&limit, "limit", 0, "Override the random draw limit")
	cmd.Flags().StringVar(&guard, "guard", "", "Override the draw cap guard: loop or draw")
	cmd.Flags().BoolVarP(&showBars, "bars", "b", false, "Show occupancy bar charts in text reports")
	cmd.Flags().BoolVarP(&showSummary, "summary", "s", true, "Show event summary in text reports")
	cmd.Flags().IntVarP(&timeline, "timeline", "t", 0, "Record and show the first N dispatched events")
	return cmd
}

func runSimulation(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	cfg, source, err := loadConfig(terminationOverride)
	if err != nil {
		return err
	}

	var opts []simulation.Option
	recorder := report.NewTimeline(timeline)
	if timeline > 0 {
		opts = append(opts, simulation.WithObserver(recorder.Observe))
	}
	sim, err := simulation.NewSimulator(cfg, opts...)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Info(ctx, "loaded configuration",
		logging.String("source", source),
		logging.Int("nodes", len(cfg.Nodes)),
		logging.Int("routes", len(cfg.Routes)),
		logging.String("policy", string(cfg.Termination.Policy)),
		logging.String("guard", string(cfg.Termination.Guard)),
		logging.Int64("limit", cfg.Termination.Limit))
	for _, w := range warnings(cfg) {
		logger.Warn(ctx, w)
	}

	if err := sim.Run(); err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	logger.Info(ctx, "simulation finished",
		logging.Float("clock", sim.Clock()),
		logging.Int64("draws", sim.Draws()),
		logging.Int64("events", sim.Events()),
		logging.String("reason", string(sim.StopReason())))

	r := report.Build(sim)
	if timeline > 0 {
		r.Timeline = recorder.Entries()
	}
	out := cmd.OutOrStdout()
	switch outputFormat {
	case "json":
		data, err := r.JSON()
		if err != nil {
			return err
		}
		printf(out, "%s\n", data)
	case "yaml":
		data, err := r.YAML()
		if err != nil {
			return err
		}
		printf(out, "%s", data)
	case "text":
		chartGen := chart.NewGenerator(showBars)
		printf(out, "%s", chartGen.GenerateReport(r))
		if showSummary {
			printf(out, "%s", chartGen.GenerateEventSummary(r))
		}
		if timeline > 0 {
			printf(out, "%s", chartGen.GenerateDetailedTimeline(r))
		}
	default:
		return fmt.Errorf("unknown format %q: must be text, json or yaml", outputFormat)
	}

	return nil
}

// terminationOverride copies termination flags onto the loaded configuration
func terminationOverride(cfg *config.Config) {
	if limit != 0 {
		cfg.Termination.Limit = limit
	}
	if guard != "" {
		cfg.Termination.Guard = config.Guard(guard)
	}
}

func warnings(cfg *config.Config) []string {
	return append(config.Warnings(cfg), simulation.TopologyWarnings(cfg)...)
}
