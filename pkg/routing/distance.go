package routing

import "travel_planner/pkg/graph"

// DistanceTable holds the best known cumulative cost per node for one search.
// Indexed by the graph's dense node index.
type DistanceTable struct {
	dist []graph.Cost
}

// NewDistanceTable creates a table for n nodes with start at 0 and every
// other node at graph.Infinity.
func NewDistanceTable(n int, start uint32) *DistanceTable {
	dist := make([]graph.Cost, n)
	for i := range dist {
		dist[i] = graph.Infinity
	}
	dist[start] = 0
	return &DistanceTable{dist: dist}
}

// Best returns the best cumulative cost found so far for node index i.
func (d *DistanceTable) Best(i uint32) graph.Cost { return d.dist[i] }

// Propose records candidate as the cumulative cost to reach i if it is
// strictly better than the current entry, and reports whether it was.
// candidate must be the full path cost, never a single edge weight.
func (d *DistanceTable) Propose(i uint32, candidate graph.Cost) bool {
	if candidate >= d.dist[i] {
		return false
	}
	d.dist[i] = candidate
	return true
}
