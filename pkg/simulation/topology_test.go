package simulation_test

import (
	"testing"

	"github.com/sherine-k/qnetsim/pkg/config"
	"github.com/sherine-k/qnetsim/pkg/simulation"
	"github.com/stretchr/testify/require"
)

func TestPresetsHaveCleanTopology(t *testing.T) {
	for _, p := range config.Presets() {
		cfg := p.Build()
		require.Empty(t, simulation.TopologyWarnings(&cfg), p.Name)
	}
}

func TestTopologyFlagsUnreachableNode(t *testing.T) {
	cfg := preset(t, "tandem")
	cfg.Nodes = append(cfg.Nodes, config.Node{ID: "IDLE", Servers: 1, Capacity: 1, SvcMin: 1, SvcMax: 1})

	warnings := simulation.TopologyWarnings(&cfg)
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0], "IDLE is unreachable")
}

func TestTopologyFlagsTrappedCustomers(t *testing.T) {
	chk := require.New(t)

	cfg := config.Default()
	cfg.Nodes = []config.Node{
		{ID: "A", Servers: 1, Capacity: 2, ArrMin: 1, ArrMax: 2, SvcMin: 1, SvcMax: 1},
		{ID: "B", Servers: 1, Capacity: 2, SvcMin: 1, SvcMax: 1},
		{ID: "C", Servers: 1, Capacity: 2, SvcMin: 1, SvcMax: 1},
	}
	cfg.Routes = []config.Route{
		{From: "A", To: "B", Probability: 1},
		{From: "B", To: "B", Probability: 0.5},
		{From: "B", To: "A", Probability: 0.5},
		{From: "A", To: "C", Probability: 0},
	}

	warnings := simulation.TopologyWarnings(&cfg)
	chk.Len(warnings, 3)
	chk.Contains(warnings[0], "A has no path to EXIT")
	chk.Contains(warnings[1], "B has no path to EXIT")
	chk.Contains(warnings[2], "C is unreachable")
}

func TestInjectionTargetsCountAsSources(t *testing.T) {
	cfg := config.Default()
	cfg.Termination = config.Termination{Policy: config.PolicyAgendaExhaustion}
	cfg.Nodes = []config.Node{{ID: "Q", Servers: 1, Capacity: 1, SvcMin: 1, SvcMax: 1}}
	require.Len(t, simulation.TopologyWarnings(&cfg), 1)

	cfg.Injections = []config.Injection{{Node: "Q", At: 1, Count: 1}}
	require.Empty(t, simulation.TopologyWarnings(&cfg))
}
