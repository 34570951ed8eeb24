package config

import (
	"fmt"
	"sort"
)

// Preset is a named, ready-to-run experiment
type Preset struct {
	Name        string
	Description string
	Build       func() Config
}

var presets = map[string]Preset{
	"tandem": {
		Name:        "tandem",
		Description: "G/G/2/3 feeding G/G/1/5 in series, loop-guarded draw cap",
		Build:       tandem,
	},
	"network": {
		Name:        "network",
		Description: "three stations with feedback, self-loop and exits, draw-guarded draw cap",
		Build:       network,
	},
}

// LookupPreset returns a validated copy of the named preset with the
// overrides applied
func LookupPreset(name string, overrides ...Override) (*Config, error) {
	p, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q", name)
	}
	cfg := p.Build()
	for _, override := range overrides {
		override(&cfg)
	}
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("preset %s: %w", name, err)
	}
	return &cfg, nil
}

// Presets lists every preset sorted by name
func Presets() []Preset {
	list := make([]Preset, 0, len(presets))
	for _, p := range presets {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

func tandem() Config {
	cfg := Default()
	cfg.StartAt = 1.5
	cfg.Nodes = []Node{
		{ID: "F1", Servers: 2, Capacity: 3, ArrMin: 1, ArrMax: 4, SvcMin: 3, SvcMax: 4},
		{ID: "F2", Servers: 1, Capacity: 5, SvcMin: 2, SvcMax: 3},
	}
	cfg.Routes = []Route{
		{From: "F1", To: "F2", Probability: 1.0},
	}
	return cfg
}

func network() Config {
	cfg := Default()
	cfg.StartAt = 2.0
	cfg.Termination.Guard = GuardDraw
	cfg.Nodes = []Node{
		{ID: "F1", Servers: 1, Capacity: 5, ArrMin: 2, ArrMax: 4, SvcMin: 1, SvcMax: 2},
		{ID: "F2", Servers: 2, Capacity: 5, SvcMin: 4, SvcMax: 6},
		{ID: "F3", Servers: 2, Capacity: 10, SvcMin: 5, SvcMax: 15},
	}
	cfg.Routes = []Route{
		{From: "F1", To: "F2", Probability: 0.8},
		{From: "F1", To: "F3", Probability: 0.2},
		{From: "F2", To: "F1", Probability: 0.3},
		{From: "F2", To: "F2", Probability: 0.5},
		{From: "F2", To: Exit, Probability: 0.2},
		{From: "F3", To: "F1", Probability: 0.7},
		{From: "F3", To: Exit, Probability: 0.3},
	}
	return cfg
}
