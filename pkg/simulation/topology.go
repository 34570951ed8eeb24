package simulation

import (
	"fmt"

	"github.com/sherine-k/qnetsim/pkg/config"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// TopologyWarnings inspects the routing graph of a validated configuration.
// It reports nodes no customer can ever reach and nodes from which a
// customer can only leave the network by being lost.
//
// Node i of the configuration is graph node i; the exit is graph node
// len(cfg.Nodes). A node without routes sends its customers out of the
// network, so it gets an edge to the exit.
func TopologyWarnings(cfg *config.Config) []string {
	g := simple.NewDirectedGraph()
	index := make(map[string]int, len(cfg.Nodes))
	for i, n := range cfg.Nodes {
		index[n.ID] = i
		g.AddNode(simple.Node(i))
	}
	exit := simple.Node(len(cfg.Nodes))
	g.AddNode(exit)

	hasRoutes := make(map[int]bool)
	sums := make(map[int]float64)
	last := make(map[int]int)
	for i, r := range cfg.Routes {
		from := index[r.From]
		hasRoutes[from] = true
		sums[from] += r.Probability
		last[from] = i
	}
	for i, r := range cfg.Routes {
		from := index[r.From]
		// a zero-probability edge is still taken by the fallback when it is
		// the last one and the source's probabilities fall short of 1
		if r.Probability == 0 && (last[from] != i || sums[from] >= 1) {
			continue
		}
		var to graph.Node = exit
		if r.To != config.Exit {
			to = simple.Node(index[r.To])
		}
		// self loops keep a customer where it is and add no reachability
		if to.ID() == int64(from) {
			continue
		}
		g.SetEdge(g.NewEdge(simple.Node(from), to))
	}
	for i := range cfg.Nodes {
		if !hasRoutes[i] {
			g.SetEdge(g.NewEdge(simple.Node(i), exit))
		}
	}

	var sources []graph.Node
	isSource := make(map[int]bool)
	for i, n := range cfg.Nodes {
		if n.HasArrivals() {
			isSource[i] = true
		}
	}
	for _, inj := range cfg.Injections {
		if i, ok := index[inj.Node]; ok {
			isSource[i] = true
		}
	}
	for i := range cfg.Nodes {
		if isSource[i] {
			sources = append(sources, simple.Node(i))
		}
	}

	var warnings []string
	for i, n := range cfg.Nodes {
		node := simple.Node(i)
		if !isSource[i] && !reachable(g, sources, node) {
			warnings = append(warnings, fmt.Sprintf("node %s is unreachable: it has no arrivals and no route leads to it", n.ID))
			continue
		}
		if !topo.PathExistsIn(g, node, exit) {
			warnings = append(warnings, fmt.Sprintf("node %s has no path to %s: its customers never leave the network", n.ID, config.Exit))
		}
	}
	return warnings
}

func reachable(g graph.Graph, sources []graph.Node, target graph.Node) bool {
	for _, src := range sources {
		if topo.PathExistsIn(g, src, target) {
			return true
		}
	}
	return false
}
