package graph

import (
	"errors"
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// ErrNegativeCost is returned by Build when an edge carries a negative cost.
var ErrNegativeCost = errors.New("negative edge cost")

// Build creates an immutable CSR Graph from an ordered edge list.
// Both endpoints of every edge join the node set, parallel edges are kept,
// and each node's arcs stay in input order.
func Build(edges []Edge) (*Graph, error) {
	// Step 1: Validate costs up front so a bad list never produces a graph.
	for i, e := range edges {
		if e.Cost < 0 {
			return nil, fmt.Errorf("%w: edge %d (%d->%d) cost=%d", ErrNegativeCost, i, e.From, e.To, e.Cost)
		}
	}

	if len(edges) == 0 {
		return &Graph{
			index:    map[Node]uint32{},
			firstOut: []uint32{0},
		}, nil
	}

	// Step 2: Collect the node set and assign dense indices in ascending id order.
	nodeSet := mapset.NewThreadUnsafeSetWithSize[Node](len(edges))
	for _, e := range edges {
		nodeSet.Add(e.From)
		nodeSet.Add(e.To)
	}
	nodes := nodeSet.ToSlice()
	slices.Sort(nodes)

	index := make(map[Node]uint32, len(nodes))
	for i, n := range nodes {
		index[n] = uint32(i)
	}

	numNodes := uint32(len(nodes))
	numEdges := uint32(len(edges))

	// Step 3: Count arcs per source, then prefix sum.
	firstOut := make([]uint32, numNodes+1)
	for _, e := range edges {
		firstOut[index[e.From]+1]++
	}
	for i := uint32(1); i <= numNodes; i++ {
		firstOut[i] += firstOut[i-1]
	}

	// Step 4: Place arcs with a per-source cursor; this is a stable
	// counting sort, so input order survives within each source.
	cursor := make([]uint32, numNodes)
	copy(cursor, firstOut[:numNodes])

	head := make([]uint32, numEdges)
	weight := make([]Cost, numEdges)
	for _, e := range edges {
		u := index[e.From]
		pos := cursor[u]
		head[pos] = index[e.To]
		weight[pos] = Cost(e.Cost)
		cursor[u]++
	}

	return &Graph{
		nodes:    nodes,
		index:    index,
		firstOut: firstOut,
		head:     head,
		weight:   weight,
	}, nil
}

// MustBuild is like Build but panics on error. Intended for fixtures.
func MustBuild(edges []Edge) *Graph {
	g, err := Build(edges)
	if err != nil {
		panic(err)
	}
	return g
}
