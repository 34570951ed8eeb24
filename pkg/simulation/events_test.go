package simulation

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestAgendaPopsInTimeOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var a Agenda
		times := rapid.SliceOf(rapid.Float64Range(0, 1000)).Draw(t, "times")
		for i, tm := range times {
			a.Push(Event{Time: tm, Type: EventTypeArrival, Node: i})
		}
		if a.Len() != len(times) {
			t.Fatalf("len %d, want %d", a.Len(), len(times))
		}
		last := -1.0
		for range times {
			e, ok := a.Pop()
			if !ok {
				t.Fatalf("agenda ran dry early")
			}
			if e.Time < last {
				t.Fatalf("popped %v after %v", e.Time, last)
			}
			last = e.Time
		}
		if _, ok := a.Pop(); ok {
			t.Fatalf("pop from empty agenda succeeded")
		}
		if a.Len() != 0 {
			t.Fatalf("len %d after draining", a.Len())
		}
	})
}

func TestAgendaBreaksTiesInSchedulingOrder(t *testing.T) {
	chk := require.New(t)

	var a Agenda
	a.Push(Event{Time: 2, Type: EventTypeArrival, Node: 0})
	a.Push(Event{Time: 1, Type: EventTypeDeparture, Node: 1})
	a.Push(Event{Time: 2, Type: EventTypeDeparture, Node: 2})
	a.Push(Event{Time: 2, Type: EventTypeInjection, Node: 3})

	e, ok := a.Peek()
	chk.True(ok)
	chk.Equal(1, e.Node)

	var order []int
	for a.Len() > 0 {
		e, _ := a.Pop()
		order = append(order, e.Node)
	}
	chk.Equal([]int{1, 0, 2, 3}, order)
}
