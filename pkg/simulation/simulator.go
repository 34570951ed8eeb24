package simulation

import (
	"errors"
	"fmt"
	"maps"

	"github.com/sherine-k/qnetsim/pkg/config"
	"github.com/sherine-k/qnetsim/pkg/rng"
)

// ErrAlreadyRun is returned when Run is called more than once
var ErrAlreadyRun = errors.New("simulation already run")

// StopReason tells why the main loop ended
type StopReason string

const (
	StopReasonNone        StopReason = ""
	StopReasonDrawLimit   StopReason = "draw-limit"
	StopReasonAgendaEmpty StopReason = "agenda-empty"
)

// Observer is called after every dispatched event
type Observer func(e Event, s *Simulator)

// Option configures a Simulator
type Option func(*Simulator)

// WithObserver installs an observer called after every dispatched event
func WithObserver(o Observer) Option {
	return func(s *Simulator) {
		s.observer = o
	}
}

// Simulator runs the queueing network simulation
type Simulator struct {
	config   *config.Config
	nodes    []Node
	index    map[string]int
	routes   *RouteTable
	agenda   Agenda
	rng      *rng.LCG
	clock    float64
	stopped  bool
	ran      bool
	reason   StopReason
	events   int64
	counts   map[EventType]int64
	observer Observer
}

// NewSimulator validates the configuration and builds a simulator
func NewSimulator(cfg *config.Config, opts ...Option) (*Simulator, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	params := rng.DefaultParams()
	if cfg.RNG != nil {
		params = rng.Params{
			Seed:       cfg.RNG.Seed,
			Multiplier: cfg.RNG.A,
			Increment:  cfg.RNG.C,
			Modulus:    cfg.RNG.M,
		}
	}

	s := &Simulator{
		config: cfg,
		nodes:  make([]Node, 0, len(cfg.Nodes)),
		index:  make(map[string]int, len(cfg.Nodes)),
		routes: newRouteTable(len(cfg.Nodes)),
		rng:    rng.New(params),
		counts: make(map[EventType]int64, 3),
	}
	for _, n := range cfg.Nodes {
		s.index[n.ID] = len(s.nodes)
		s.nodes = append(s.nodes, newNode(n))
	}
	for _, r := range cfg.Routes {
		to := ExitIndex
		if r.To != config.Exit {
			to = s.index[r.To]
		}
		s.routes.Add(s.index[r.From], to, r.Probability)
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Run executes the simulation until the termination policy is met
func (s *Simulator) Run() error {
	if s.ran {
		return ErrAlreadyRun
	}
	s.ran = true

	if err := s.init(); err != nil {
		return err
	}

	for s.agenda.Len() > 0 && !s.done() {
		e, _ := s.agenda.Pop()
		s.clock = e.Time
		s.advanceAll()

		switch e.Type {
		case EventTypeArrival:
			s.processArrival(e.Node)
		case EventTypeDeparture:
			s.processDeparture(e.Node)
		case EventTypeInjection:
			s.admit(e.Node)
		}
		s.events++
		s.counts[e.Type]++

		if s.observer != nil {
			s.observer(e, s)
		}
	}

	s.advanceAll()
	// the cap wins when the last event both drained the agenda and hit it
	if s.done() {
		s.reason = StopReasonDrawLimit
	} else {
		s.reason = StopReasonAgendaEmpty
	}
	return nil
}

// init seeds the agenda with the first arrival of every exogenous stream
// and with all configured injections
func (s *Simulator) init() error {
	for i := range s.nodes {
		if s.nodes[i].HasArrivals() {
			s.schedule(s.config.StartAt, EventTypeArrival, i)
		}
	}
	for _, inj := range s.config.Injections {
		times, err := inj.Times()
		if err != nil {
			return fmt.Errorf("injection into %s: %w", inj.Node, err)
		}
		for _, t := range times {
			for i := 0; i < inj.Count; i++ {
				s.schedule(t, EventTypeInjection, s.index[inj.Node])
			}
		}
	}
	return nil
}

// done evaluates the termination predicate between dispatches
func (s *Simulator) done() bool {
	term := s.config.Termination
	if term.Policy != config.PolicyDrawCap {
		return false
	}
	if term.Guard == config.GuardDraw {
		return s.stopped
	}
	return s.rng.Used() >= term.Limit
}

func (s *Simulator) advanceAll() {
	for i := range s.nodes {
		s.nodes[i].Advance(s.clock)
	}
}

func (s *Simulator) schedule(t float64, typ EventType, node int) {
	if t < s.clock {
		t = s.clock
	}
	s.agenda.Push(Event{Time: t, Type: typ, Node: node})
}

// drawGuarded reports whether draws are checked against the cap one by one
func (s *Simulator) drawGuarded() bool {
	term := s.config.Termination
	return term.Policy == config.PolicyDrawCap && term.Guard == config.GuardDraw
}

// next01 takes one draw. Under the draw guard a draw at or past the limit
// is refused and stops the engine; a draw that reaches the limit is still
// returned but also stops the engine.
func (s *Simulator) next01() (float64, bool) {
	if !s.drawGuarded() {
		return s.rng.Next01(), true
	}
	limit := s.config.Termination.Limit
	if s.rng.Used() >= limit {
		s.stopped = true
		return 0, false
	}
	u := s.rng.Next01()
	if s.rng.Used() >= limit {
		s.stopped = true
	}
	return u, true
}

func (s *Simulator) uniform(lo, hi float64) (float64, bool) {
	u, ok := s.next01()
	if !ok {
		return 0, false
	}
	return lo + (hi-lo)*u, true
}

func (s *Simulator) processArrival(i int) {
	if !s.admit(i) {
		return
	}
	n := &s.nodes[i]
	if n.HasArrivals() {
		inter, ok := s.uniform(n.ArrMin, n.ArrMax)
		if !ok {
			return
		}
		s.schedule(s.clock+inter, EventTypeArrival, i)
	}
}

// admit offers one customer to node i. It returns false only when a
// guarded draw was refused, in which case the current event is abandoned.
func (s *Simulator) admit(i int) bool {
	n := &s.nodes[i]
	n.Arrivals++
	if n.Full() {
		n.Lost++
		return true
	}
	n.InSystem++
	if n.BusyServers < n.Servers {
		n.BusyServers++
		svc, ok := s.uniform(n.SvcMin, n.SvcMax)
		if !ok {
			return false
		}
		s.schedule(s.clock+svc, EventTypeDeparture, i)
	}
	return true
}

func (s *Simulator) processDeparture(i int) {
	n := &s.nodes[i]
	if n.InSystem > 0 {
		n.InSystem--
		n.Completions++
		if n.InSystem >= n.Servers {
			// a waiting customer takes the freed server
			svc, ok := s.uniform(n.SvcMin, n.SvcMax)
			if !ok {
				return
			}
			s.schedule(s.clock+svc, EventTypeDeparture, i)
		} else {
			n.BusyServers--
		}
	}

	to, ok := s.pickRoute(i)
	if !ok || to == ExitIndex {
		return
	}
	s.admit(to)
}

// pickRoute chooses the next destination of a customer leaving node from.
// ok is false when the node has no routes or the draw was refused.
func (s *Simulator) pickRoute(from int) (int, bool) {
	if s.routes.Outgoing(from) == 0 {
		return ExitIndex, false
	}
	u, ok := s.next01()
	if !ok {
		return ExitIndex, false
	}
	return s.routes.Select(from, u), true
}

// Clock returns the simulated time of the last dispatched event
func (s *Simulator) Clock() float64 {
	return s.clock
}

// Draws returns the number of random draws consumed
func (s *Simulator) Draws() int64 {
	return s.rng.Used()
}

// Events returns the number of dispatched events
func (s *Simulator) Events() int64 {
	return s.events
}

// EventCounts returns the number of dispatched events of each kind
func (s *Simulator) EventCounts() map[EventType]int64 {
	return maps.Clone(s.counts)
}

// Pending returns the number of events left on the agenda
func (s *Simulator) Pending() int {
	return s.agenda.Len()
}

// StopReason returns why Run ended, or StopReasonNone before it has
func (s *Simulator) StopReason() StopReason {
	return s.reason
}

// Config returns the configuration the simulator was built from
func (s *Simulator) Config() *config.Config {
	return s.config
}

// Nodes returns the nodes in insertion order. Callers must not modify them.
func (s *Simulator) Nodes() []Node {
	return s.nodes
}

// Node looks a node up by id
func (s *Simulator) Node(id string) (Node, bool) {
	i, ok := s.index[id]
	if !ok {
		return Node{}, false
	}
	return s.nodes[i], true
}
