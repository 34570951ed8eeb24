package simulation

// ExitIndex is the destination index of the network exit
const ExitIndex = -1

type edge struct {
	to          int
	probability float64
}

// RouteTable holds the ordered outgoing edges of every node
type RouteTable struct {
	from [][]edge
}

func newRouteTable(nodes int) *RouteTable {
	return &RouteTable{from: make([][]edge, nodes)}
}

// Add appends an edge. to may be ExitIndex.
func (rt *RouteTable) Add(from, to int, probability float64) {
	rt.from[from] = append(rt.from[from], edge{to: to, probability: probability})
}

// Outgoing returns the number of edges leaving from
func (rt *RouteTable) Outgoing(from int) int {
	return len(rt.from[from])
}

// Select walks the edges of from accumulating probability and returns the
// first destination whose running sum reaches u. When the sum never reaches
// u the last edge is returned. from must have at least one edge.
func (rt *RouteTable) Select(from int, u float64) int {
	edges := rt.from[from]
	acc := 0.0
	for _, e := range edges {
		acc += e.probability
		if u <= acc {
			return e.to
		}
	}
	return edges[len(edges)-1].to
}
