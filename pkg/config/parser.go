package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid configuration")

// probabilityTolerance bounds how far a source's outgoing probabilities may
// drift from 1 before a warning is raised
const probabilityTolerance = 1e-9

// Default returns an empty configuration carrying every default value
func Default() Config {
	return Config{
		StartAt: DefaultStartAt,
		Termination: Termination{
			Policy: PolicyDrawCap,
			Guard:  GuardLoop,
			Limit:  DefaultLimit,
		},
	}
}

// Override adjusts a parsed configuration before it is validated
type Override func(*Config)

// LoadConfig loads and parses the configuration file, applies the overrides
// in order and validates the result
func LoadConfig(filename string, overrides ...Override) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := Parse(data)
	if err != nil {
		return nil, err
	}
	for _, override := range overrides {
		override(config)
	}

	// Validate configuration
	if err := Validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// Parse decodes YAML on top of the defaults without validating
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	config.ApplyDefaults()
	return &config, nil
}

// ApplyDefaults fills termination fields left empty
func (c *Config) ApplyDefaults() {
	if c.Termination.Policy == "" {
		c.Termination.Policy = PolicyDrawCap
	}
	if c.Termination.Policy == PolicyDrawCap {
		if c.Termination.Guard == "" {
			c.Termination.Guard = GuardLoop
		}
		if c.Termination.Limit == 0 {
			c.Termination.Limit = DefaultLimit
		}
	}
}

// Validate checks the configuration and reports every problem it finds
func Validate(config *Config) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if config.StartAt < 0 || math.IsNaN(config.StartAt) {
		fail("startAt must not be negative")
	}

	if len(config.Nodes) == 0 {
		fail("at least one node must be defined")
	}

	ids := make(map[string]bool, len(config.Nodes))
	hasArrivals := false
	for i, node := range config.Nodes {
		if node.ID == "" {
			fail("node %d: id is required", i)
			continue
		}
		if node.ID == Exit {
			fail("node %d: id %q is reserved", i, Exit)
		}
		if ids[node.ID] {
			fail("node %s: duplicate id", node.ID)
		}
		ids[node.ID] = true

		if node.Servers < 1 {
			fail("node %s: servers must be at least 1", node.ID)
		}
		if node.Capacity < node.Servers {
			fail("node %s: capacity %d is less than servers %d", node.ID, node.Capacity, node.Servers)
		}
		if !finite(node.ArrMin, node.ArrMax, node.SvcMin, node.SvcMax) {
			fail("node %s: arrival and service bounds must be finite", node.ID)
		}
		if node.ArrMin < 0 || node.ArrMax < 0 {
			fail("node %s: arrival bounds must not be negative", node.ID)
		}
		if node.ArrMin > node.ArrMax {
			fail("node %s: arrMin %g exceeds arrMax %g", node.ID, node.ArrMin, node.ArrMax)
		}
		if node.SvcMin <= 0 {
			fail("node %s: svcMin must be greater than 0", node.ID)
		}
		if node.SvcMin > node.SvcMax {
			fail("node %s: svcMin %g exceeds svcMax %g", node.ID, node.SvcMin, node.SvcMax)
		}
		hasArrivals = hasArrivals || node.HasArrivals()
	}

	for i, route := range config.Routes {
		if !ids[route.From] {
			fail("route %d: unknown source node %q", i, route.From)
		}
		if route.To != Exit && !ids[route.To] {
			fail("route %d: unknown destination node %q", i, route.To)
		}
		if route.Probability < 0 || route.Probability > 1 || math.IsNaN(route.Probability) {
			fail("route %d: probability %g outside [0,1]", i, route.Probability)
		}
	}

	for i, inj := range config.Injections {
		if !ids[inj.Node] {
			fail("injection %d: unknown node %q", i, inj.Node)
		}
		if inj.Count < 1 {
			fail("injection %d: count must be at least 1", i)
		}
		if !finite(inj.At, inj.Until) {
			fail("injection %d: at and until must be finite", i)
		}
		if inj.At < 0 {
			fail("injection %d: time must not be negative", i)
		}
		if inj.Cron != "" {
			if inj.Until <= 0 {
				fail("injection %d: until must be greater than 0 for cron injections", i)
			}
			if inj.Until > MaxInjectionWindow {
				fail("injection %d: until must not exceed %g", i, MaxInjectionWindow)
			}
			if _, err := cronParser.Parse(inj.Cron); err != nil {
				fail("injection %d: bad cron schedule %q: %v", i, inj.Cron, err)
			}
		}
	}

	switch config.Termination.Policy {
	case PolicyDrawCap:
		if config.Termination.Limit <= 0 {
			fail("termination: limit must be greater than 0")
		}
		if config.Termination.Guard != GuardLoop && config.Termination.Guard != GuardDraw {
			fail("termination: guard must be either '%s' or '%s'", GuardLoop, GuardDraw)
		}
	case PolicyAgendaExhaustion:
		if hasArrivals {
			fail("termination: policy '%s' never ends with exogenous arrival streams", PolicyAgendaExhaustion)
		}
	default:
		fail("termination: policy must be either '%s' or '%s'", PolicyDrawCap, PolicyAgendaExhaustion)
	}

	if config.RNG != nil {
		if config.RNG.M == 0 {
			fail("rng: m must be greater than 0")
		} else if config.RNG.M > 1<<53 {
			fail("rng: m must not exceed 2^53")
		}
		if config.RNG.A == 0 {
			fail("rng: a must be greater than 0")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Warnings lists tolerated irregularities: sources whose outgoing
// probabilities do not sum to 1
func Warnings(config *Config) []string {
	var warnings []string
	sums := make(map[string]float64)
	var order []string
	for _, route := range config.Routes {
		if _, ok := sums[route.From]; !ok {
			order = append(order, route.From)
		}
		sums[route.From] += route.Probability
	}
	for _, from := range order {
		sum := sums[from]
		switch {
		case sum < 1-probabilityTolerance:
			warnings = append(warnings, fmt.Sprintf("routes from %s sum to %.6g; last route absorbs the residual", from, sum))
		case sum > 1+probabilityTolerance:
			warnings = append(warnings, fmt.Sprintf("routes from %s sum to %.6g; later routes may never be taken", from, sum))
		}
	}
	return warnings
}
