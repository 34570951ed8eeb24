package report

import (
	"github.com/sherine-k/qnetsim/pkg/simulation"
)

// TimelineEntry describes one dispatched event
type TimelineEntry struct {
	Time float64              `json:"time" yaml:"time"`
	Type simulation.EventType `json:"type" yaml:"type"`
	Node string               `json:"node" yaml:"node"`
	// InSystem is the node's population right after the event.
	InSystem int `json:"inSystem" yaml:"inSystem"`
}

// Timeline records the first events a simulator dispatches. Attach it with
// simulation.WithObserver(tl.Observe).
type Timeline struct {
	limit   int
	entries []TimelineEntry
}

// NewTimeline keeps at most limit entries
func NewTimeline(limit int) *Timeline {
	return &Timeline{
		limit:   limit,
		entries: make([]TimelineEntry, 0, min(max(limit, 0), 1024)),
	}
}

// Observe is a simulation.Observer
func (tl *Timeline) Observe(e simulation.Event, s *simulation.Simulator) {
	if len(tl.entries) >= tl.limit {
		return
	}
	n := s.Nodes()[e.Node]
	tl.entries = append(tl.entries, TimelineEntry{
		Time:     e.Time,
		Type:     e.Type,
		Node:     n.ID,
		InSystem: n.InSystem,
	})
}

// Entries returns the recorded events in dispatch order
func (tl *Timeline) Entries() []TimelineEntry {
	return tl.entries
}
