package chart

import (
	"strings"
	"testing"

	"github.com/sherine-k/qnetsim/pkg/config"
	"github.com/sherine-k/qnetsim/pkg/report"
	"github.com/sherine-k/qnetsim/pkg/simulation"
	"github.com/stretchr/testify/require"
)

func sampleReport() report.Report {
	return report.Report{
		Clock:      10,
		RNGDraws:   42,
		Events:     17,
		StopReason: "draw-limit",
		Nodes: []report.Node{{
			ID:           "F1",
			Params:       config.Node{ID: "F1", Servers: 1, Capacity: 2, ArrMin: 1, ArrMax: 4, SvcMin: 3, SvcMax: 4},
			Lost:         3,
			StateTime:    []float64{2.5, 5, 2.5},
			StateProb:    []float64{0.25, 0.5, 0.25},
			MeanInSystem: 1,
			Utilization:  0.75,
		}},
	}
}

func TestGenerateReport(t *testing.T) {
	chk := require.New(t)

	out := NewGenerator(false).GenerateReport(sampleReport())
	chk.Contains(out, "Global simulated time: 10.00")
	chk.Contains(out, "Random numbers used:   42")
	chk.Contains(out, "Stopped by:            draw-limit")
	chk.Contains(out, "Queue: F1  (G/G/1/2, arrivals=[1,4], service=[3,4])")
	chk.Contains(out, "Losses: 3")
	chk.Contains(out, "| 0       |             2.50 |           0.2500 |")
	chk.Contains(out, "| 1       |             5.00 |           0.5000 |")
	chk.NotContains(out, "█")
}

func TestGenerateOccupancyChart(t *testing.T) {
	chk := require.New(t)

	g := NewGenerator(true)
	out := g.GenerateOccupancyChart(sampleReport().Nodes[0])
	lines := strings.Split(strings.TrimSpace(out), "\n")
	chk.Len(lines, 3)
	chk.Equal(10, strings.Count(lines[0], "█"))
	chk.Equal(20, strings.Count(lines[1], "█"))
	chk.True(strings.HasSuffix(lines[1], " 50.0%"))

	chk.Contains(g.GenerateReport(sampleReport()), "█")
}

func TestGenerateWarnings(t *testing.T) {
	chk := require.New(t)

	g := NewGenerator(false)
	chk.Contains(g.GenerateWarnings(nil), "No warnings!")

	out := g.GenerateWarnings([]string{"routes from A sum to 0.9; last route absorbs the residual"})
	chk.Contains(out, "- routes from A sum to 0.9")
	chk.Contains(out, "Total Warnings: 1")
}

func TestGenerateEventSummary(t *testing.T) {
	chk := require.New(t)

	r := sampleReport()
	r.EventCounts = report.EventCounts{Arrivals: 9, Departures: 6, Injections: 2}
	out := NewGenerator(false).GenerateEventSummary(r)
	chk.Contains(out, "Event Summary")
	chk.Contains(out, "Total Events: 17")
	chk.Contains(out, "  - Arrivals: 9")
	chk.Contains(out, "  - Departures: 6")
	chk.Contains(out, "  - Injections: 2")
}

func TestGenerateDetailedTimeline(t *testing.T) {
	chk := require.New(t)

	r := sampleReport()
	r.Timeline = []report.TimelineEntry{
		{Time: 1.5, Type: simulation.EventTypeArrival, Node: "F1", InSystem: 1},
		{Time: 4.75, Type: simulation.EventTypeDeparture, Node: "F1", InSystem: 0},
		{Time: 5, Type: simulation.EventTypeInjection, Node: "F1", InSystem: 2},
	}
	g := NewGenerator(false)
	out := g.GenerateDetailedTimeline(r)
	chk.Contains(out, "Detailed Timeline (showing first 3 events)")
	chk.Contains(out, "[      1.5000] + arrival   F1       [1]")
	chk.Contains(out, "[      4.7500] - departure F1       [0]")
	chk.Contains(out, "[      5.0000] * injection F1       [2]")
	chk.Contains(out, "... and 14 more events")

	r.Events = 3
	out = g.GenerateDetailedTimeline(r)
	chk.NotContains(out, "showing first")
	chk.NotContains(out, "more events")
}
