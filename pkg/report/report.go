// Package report turns a finished simulation into a structured record.
package report

import (
	"encoding/json"
	"fmt"

	"github.com/sherine-k/qnetsim/pkg/config"
	"github.com/sherine-k/qnetsim/pkg/simulation"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"
)

// Report is the result of one run
type Report struct {
	Clock       float64            `json:"clock" yaml:"clock"`
	RNGDraws    int64              `json:"rngDraws" yaml:"rngDraws"`
	Events      int64              `json:"events" yaml:"events"`
	EventCounts EventCounts        `json:"eventCounts" yaml:"eventCounts"`
	StopReason  string             `json:"stopReason" yaml:"stopReason"`
	Termination config.Termination `json:"termination" yaml:"termination"`
	Nodes       []Node             `json:"nodes" yaml:"nodes"`
	// Timeline is filled only when a Timeline recorder was attached.
	Timeline []TimelineEntry `json:"timeline,omitempty" yaml:"timeline,omitempty"`
}

// EventCounts splits the dispatched events by kind
type EventCounts struct {
	Arrivals   int64 `json:"arrivals" yaml:"arrivals"`
	Departures int64 `json:"departures" yaml:"departures"`
	Injections int64 `json:"injections" yaml:"injections"`
}

// Node holds the statistics of one station
type Node struct {
	ID          string      `json:"id" yaml:"id"`
	Params      config.Node `json:"params" yaml:"params"`
	Lost        int         `json:"lost" yaml:"lost"`
	Arrivals    int         `json:"arrivals" yaml:"arrivals"`
	Completions int         `json:"completions" yaml:"completions"`
	StateTime   []float64   `json:"stateTime" yaml:"stateTime"`
	StateProb   []float64   `json:"stateProb" yaml:"stateProb"`
	// MeanInSystem is the time-weighted mean population.
	MeanInSystem float64 `json:"meanInSystem" yaml:"meanInSystem"`
	// Utilization is the time-weighted fraction of busy servers.
	Utilization float64 `json:"utilization" yaml:"utilization"`
}

// Build reads the statistics of a finished simulator
func Build(sim *simulation.Simulator) Report {
	clock := sim.Clock()
	counts := sim.EventCounts()
	r := Report{
		Clock:    clock,
		RNGDraws: sim.Draws(),
		Events:   sim.Events(),
		EventCounts: EventCounts{
			Arrivals:   counts[simulation.EventTypeArrival],
			Departures: counts[simulation.EventTypeDeparture],
			Injections: counts[simulation.EventTypeInjection],
		},
		StopReason:  string(sim.StopReason()),
		Termination: sim.Config().Termination,
	}

	for _, n := range sim.Nodes() {
		node := Node{
			ID:          n.ID,
			Params:      n.Node,
			Lost:        n.Lost,
			Arrivals:    n.Arrivals,
			Completions: n.Completions,
			StateTime:   append([]float64(nil), n.StateTime...),
			StateProb:   make([]float64, len(n.StateTime)),
		}
		if clock > 0 {
			for i, t := range node.StateTime {
				node.StateProb[i] = t / clock
			}
			node.MeanInSystem, node.Utilization = occupancy(n.Servers, node.StateTime)
		}
		r.Nodes = append(r.Nodes, node)
	}

	return r
}

// occupancy returns the time-weighted means of population and of the
// fraction of servers busy, which is min(n, servers)/servers in state n
func occupancy(servers int, stateTime []float64) (float64, float64) {
	if floats.Sum(stateTime) == 0 {
		return 0, 0
	}
	population := make([]float64, len(stateTime))
	busy := make([]float64, len(stateTime))
	for n := range stateTime {
		population[n] = float64(n)
		busy[n] = float64(min(n, servers)) / float64(servers)
	}
	return stat.Mean(population, stateTime), stat.Mean(busy, stateTime)
}

// Node looks a node up by id
func (r Report) Node(id string) (Node, bool) {
	for _, n := range r.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// JSON encodes the report as indented JSON
func (r Report) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return data, nil
}

// YAML encodes the report as YAML
func (r Report) YAML() ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return data, nil
}
