package simulation

import "github.com/sherine-k/qnetsim/pkg/config"

// Node is the live state of one station. Parameters come from the
// configuration and never change during a run.
type Node struct {
	config.Node

	InSystem    int
	BusyServers int
	Lost        int
	Arrivals    int
	Completions int
	LastUpdate  float64
	// StateTime[n] is the simulated time spent with n customers present.
	StateTime []float64
}

func newNode(params config.Node) Node {
	return Node{
		Node:      params,
		StateTime: make([]float64, params.Capacity+1),
	}
}

// Advance attributes the interval since the last update to the current
// population. Negative intervals are clamped to zero.
func (n *Node) Advance(t float64) {
	dt := t - n.LastUpdate
	if dt < 0 {
		dt = 0
	}
	n.StateTime[n.InSystem] += dt
	n.LastUpdate = t
}

// Full reports whether an arriving customer would be lost.
func (n *Node) Full() bool {
	return n.InSystem >= n.Capacity
}
