// Package fixture generates deterministic edge lists for tests, benchmarks
// and demo servers.
package fixture

import (
	"math/rand/v2"

	"travel_planner/pkg/graph"
)

// Small is a four-node graph with a cheaper two-hop route alongside a direct
// edge, plus a disconnected pair (4, 5).
func Small() []graph.Edge {
	return []graph.Edge{
		{From: 1, To: 2, Cost: 3},
		{From: 1, To: 3, Cost: 6},
		{From: 2, To: 3, Cost: 1},
		{From: 4, To: 5, Cost: 1},
	}
}

// GridNode returns the node id of cell (r, c) in a grid with cols columns.
func GridNode(r, c, cols int) graph.Node {
	return graph.Node(r*cols + c)
}

// Grid returns a rows x cols lattice with unit-cost edges in both directions
// between horizontal and vertical neighbors. The cheapest cost between two
// cells is their Manhattan distance.
func Grid(rows, cols int) []graph.Edge {
	if rows <= 0 || cols <= 0 {
		return nil
	}
	edges := make([]graph.Edge, 0, 4*rows*cols)
	for r := range rows {
		for c := range cols {
			u := GridNode(r, c, cols)
			if c+1 < cols {
				v := GridNode(r, c+1, cols)
				edges = append(edges, graph.Edge{From: u, To: v, Cost: 1}, graph.Edge{From: v, To: u, Cost: 1})
			}
			if r+1 < rows {
				v := GridNode(r+1, c, cols)
				edges = append(edges, graph.Edge{From: u, To: v, Cost: 1}, graph.Edge{From: v, To: u, Cost: 1})
			}
		}
	}
	return edges
}

// Random returns numEdges edges over node ids [0, numNodes) with costs in
// [0, maxCost]. Self-loops and parallel edges occur naturally. The same seed
// always yields the same list.
func Random(numNodes, numEdges int, maxCost int64, seed uint64) []graph.Edge {
	if numNodes <= 0 || numEdges <= 0 {
		return nil
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	edges := make([]graph.Edge, numEdges)
	for i := range edges {
		edges[i] = graph.Edge{
			From: graph.Node(rng.IntN(numNodes)),
			To:   graph.Node(rng.IntN(numNodes)),
			Cost: rng.Int64N(maxCost + 1),
		}
	}
	return edges
}
