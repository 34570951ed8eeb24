package chart

import (
	"fmt"
	"strings"

	"github.com/sherine-k/qnetsim/pkg/report"
	"github.com/sherine-k/qnetsim/pkg/simulation"
)

const (
	chartWidth = 80
	barWidth   = 40
)

// Generator renders reports as text
type Generator struct {
	width    int
	barWidth int
	bars     bool
}

// NewGenerator creates a new chart generator. When bars is set every
// state table is followed by an occupancy bar chart.
func NewGenerator(bars bool) *Generator {
	return &Generator{
		width:    chartWidth,
		barWidth: barWidth,
		bars:     bars,
	}
}

// GenerateReport renders the whole report
func (g *Generator) GenerateReport(r report.Report) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("Simulation Summary\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Global simulated time: %.2f\n", r.Clock))
	sb.WriteString(fmt.Sprintf("Random numbers used:   %d\n", r.RNGDraws))
	sb.WriteString(fmt.Sprintf("Events dispatched:     %d\n", r.Events))
	sb.WriteString(fmt.Sprintf("Stopped by:            %s\n", r.StopReason))

	for _, node := range r.Nodes {
		sb.WriteString(g.GenerateNodeTable(node))
		if g.bars {
			sb.WriteString(g.GenerateOccupancyChart(node))
		}
	}
	sb.WriteString("\n")

	return sb.String()
}

// GenerateNodeTable renders the parameter banner, loss count and state
// table of one node
func (g *Generator) GenerateNodeTable(n report.Node) string {
	var sb strings.Builder

	p := n.Params
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Queue: %s  (G/G/%d/%d, arrivals=[%g,%g], service=[%g,%g])\n",
		n.ID, p.Servers, p.Capacity, p.ArrMin, p.ArrMax, p.SvcMin, p.SvcMax))
	sb.WriteString(fmt.Sprintf("Losses: %d\n", n.Lost))
	sb.WriteString(fmt.Sprintf("Mean population: %.4f  Utilization: %.4f\n", n.MeanInSystem, n.Utilization))

	border := "+---------+------------------+------------------+\n"
	sb.WriteString(border)
	sb.WriteString("| State   | Accumulated time | Probability      |\n")
	sb.WriteString(border)
	for state, t := range n.StateTime {
		sb.WriteString(fmt.Sprintf("| %-7d | %16.2f | %16.4f |\n", state, t, n.StateProb[state]))
	}
	sb.WriteString(border)

	return sb.String()
}

// GenerateOccupancyChart draws one horizontal bar per state, scaled so
// that probability 1 fills the bar width
func (g *Generator) GenerateOccupancyChart(n report.Node) string {
	var sb strings.Builder

	sb.WriteString("\n")
	for state, p := range n.StateProb {
		cells := int(p*float64(g.barWidth) + 0.5)
		if cells > g.barWidth {
			cells = g.barWidth
		}
		sb.WriteString(fmt.Sprintf("%3d |", state))
		sb.WriteString(strings.Repeat("█", cells))
		sb.WriteString(strings.Repeat(" ", g.barWidth-cells))
		sb.WriteString(fmt.Sprintf("| %5.1f%%\n", p*100))
	}

	return sb.String()
}

// GenerateEventSummary breaks the dispatched events down by kind
func (g *Generator) GenerateEventSummary(r report.Report) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("Event Summary\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Total Events: %d\n", r.Events))
	sb.WriteString(fmt.Sprintf("  - Arrivals: %d\n", r.EventCounts.Arrivals))
	sb.WriteString(fmt.Sprintf("  - Departures: %d\n", r.EventCounts.Departures))
	sb.WriteString(fmt.Sprintf("  - Injections: %d\n", r.EventCounts.Injections))
	sb.WriteString("\n")

	return sb.String()
}

// GenerateDetailedTimeline lists the recorded events with the population
// each one left behind at its node
func (g *Generator) GenerateDetailedTimeline(r report.Report) string {
	var sb strings.Builder

	shown := int64(len(r.Timeline))
	sb.WriteString("\n")
	sb.WriteString("Detailed Timeline")
	if shown < r.Events {
		sb.WriteString(fmt.Sprintf(" (showing first %d events)", shown))
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	for _, entry := range r.Timeline {
		typeIcon := " "
		switch entry.Type {
		case simulation.EventTypeArrival:
			typeIcon = "+"
		case simulation.EventTypeDeparture:
			typeIcon = "-"
		case simulation.EventTypeInjection:
			typeIcon = "*"
		}

		sb.WriteString(fmt.Sprintf("[%12.4f] %s %-9s %-8s [%d]\n",
			entry.Time,
			typeIcon,
			entry.Type,
			entry.Node,
			entry.InSystem))
	}

	if shown < r.Events {
		sb.WriteString(fmt.Sprintf("\n... and %d more events\n", r.Events-shown))
	}

	sb.WriteString("\n")

	return sb.String()
}

// GenerateWarnings generates a list of warnings
func (g *Generator) GenerateWarnings(warnings []string) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("Warnings\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	if len(warnings) == 0 {
		sb.WriteString("No warnings!\n")
		return sb.String()
	}

	for _, warning := range warnings {
		sb.WriteString(fmt.Sprintf("- %s\n", warning))
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Total Warnings: %d\n", len(warnings)))

	return sb.String()
}
