package config

// Config represents the entire configuration for a queueing network run
type Config struct {
	StartAt     float64     `yaml:"startAt" json:"startAt"`
	Termination Termination `yaml:"termination" json:"termination"`
	RNG         *RNG        `yaml:"rng,omitempty" json:"rng,omitempty"`
	Nodes       []Node      `yaml:"nodes" json:"nodes"`
	Routes      []Route     `yaml:"routes" json:"routes"`
	Injections  []Injection `yaml:"injections,omitempty" json:"injections,omitempty"`
}

// Node describes a single G/G/c/K station
type Node struct {
	ID       string  `yaml:"id" json:"id"`
	Servers  int     `yaml:"servers" json:"servers"`
	Capacity int     `yaml:"capacity" json:"capacity"`
	ArrMin   float64 `yaml:"arrMin" json:"arrMin"`
	ArrMax   float64 `yaml:"arrMax" json:"arrMax"`
	SvcMin   float64 `yaml:"svcMin" json:"svcMin"`
	SvcMax   float64 `yaml:"svcMax" json:"svcMax"`
}

// HasArrivals reports whether the node has an exogenous arrival stream.
func (n Node) HasArrivals() bool {
	return n.ArrMin > 0 || n.ArrMax > 0
}

// Route is a probabilistic edge from one node to another node or to Exit
type Route struct {
	From        string  `yaml:"from" json:"from"`
	To          string  `yaml:"to" json:"to"`
	Probability float64 `yaml:"probability" json:"probability"`
}

// Exit is the routing destination meaning the customer leaves the network
const Exit = "EXIT"

// Termination selects how a run ends
type Termination struct {
	Policy Policy `yaml:"policy" json:"policy"`
	Guard  Guard  `yaml:"guard,omitempty" json:"guard,omitempty"`
	Limit  int64  `yaml:"limit,omitempty" json:"limit,omitempty"`
}

// Policy defines the termination policy
type Policy string

const (
	PolicyDrawCap          Policy = "draw-cap"
	PolicyAgendaExhaustion Policy = "agenda-exhaustion"
)

// Guard defines where the draw cap is checked
type Guard string

const (
	// GuardLoop checks the draw counter between event dispatches only.
	GuardLoop Guard = "loop"
	// GuardDraw checks the draw counter before every draw.
	GuardDraw Guard = "draw"
)

// RNG overrides the default generator parameters
type RNG struct {
	Seed uint64 `yaml:"seed" json:"seed"`
	A    uint64 `yaml:"a" json:"a"`
	C    uint64 `yaml:"c" json:"c"`
	M    uint64 `yaml:"m" json:"m"`
}

// Injection schedules one-off external arrivals that do not renew.
// Either At or Cron (with Until) is used.
type Injection struct {
	Node  string  `yaml:"node" json:"node"`
	Count int     `yaml:"count" json:"count"`
	At    float64 `yaml:"at,omitempty" json:"at,omitempty"`
	Cron  string  `yaml:"cron,omitempty" json:"cron,omitempty"`
	Until float64 `yaml:"until,omitempty" json:"until,omitempty"`
}

// Defaults
const (
	DefaultStartAt = 1.5
	DefaultLimit   = 100_000
)
