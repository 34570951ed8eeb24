package simulation

import (
	"cmp"

	"github.com/addrummond/heap"
)

// EventType defines the type of event in the simulation
type EventType string

const (
	EventTypeArrival   EventType = "arrival"
	EventTypeDeparture EventType = "departure"
	// EventTypeInjection is a scheduled external arrival that does not
	// renew the node's arrival stream.
	EventTypeInjection EventType = "injection"
)

// Event is a pending state change at a node. Node is the index of the
// target node in insertion order.
type Event struct {
	Time float64
	Type EventType
	Node int

	seq uint64
}

// Cmp orders events by time, then by scheduling order.
func (a *Event) Cmp(b *Event) int {
	if c := cmp.Compare(a.Time, b.Time); c != 0 {
		return c
	}
	return cmp.Compare(a.seq, b.seq)
}

// Agenda is the future-event set
type Agenda struct {
	events heap.Heap[Event, heap.Min]
	size   int
	seq    uint64
}

// Push inserts an event. Events scheduled for the same time come out in
// the order they were pushed.
func (a *Agenda) Push(e Event) {
	e.seq = a.seq
	a.seq++
	heap.PushOrderable(&a.events, e)
	a.size++
}

// Pop removes the earliest event
func (a *Agenda) Pop() (Event, bool) {
	e, ok := heap.PopOrderable(&a.events)
	if ok {
		a.size--
	}
	return e, ok
}

// Peek returns the earliest event without removing it
func (a *Agenda) Peek() (Event, bool) {
	return heap.Peek(&a.events)
}

// Len returns the number of pending events
func (a *Agenda) Len() int {
	return a.size
}
