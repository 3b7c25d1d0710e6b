package graph

import "math"

// Node is an opaque location identifier.
type Node uint64

// Cost is a non-negative edge or path weight.
type Cost uint64

// Infinity is larger than any representable path cost.
const Infinity = Cost(math.MaxUint64)

// Edge is one directed, weighted connection from the caller's edge list.
// Cost is signed so that negative input can be detected and rejected.
type Edge struct {
	From Node
	To   Node
	Cost int64
}

// Arc is a single outgoing hop from a node.
type Arc struct {
	To   Node
	Cost Cost
}

// Graph is an immutable directed multigraph in CSR (Compressed Sparse Row) format.
// Nodes are indexed densely in ascending id order, so comparing two indices
// orders the same way as comparing the node ids.
type Graph struct {
	nodes    []Node          // len: NumNodes; ascending
	index    map[Node]uint32 // node id -> dense index
	firstOut []uint32        // len: NumNodes + 1; firstOut[i]..firstOut[i+1] are arcs from node i
	head     []uint32        // len: NumEdges; target index for each arc
	weight   []Cost          // len: NumEdges
}

// NumNodes returns the number of distinct nodes referenced by the edge list.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// NumEdges returns the number of arcs, parallel edges included.
func (g *Graph) NumEdges() int { return len(g.head) }

// HasNode reports whether n appeared as a source or destination.
func (g *Graph) HasNode(n Node) bool {
	_, ok := g.index[n]
	return ok
}

// Nodes returns a copy of the node set in ascending order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Arcs returns the outgoing arcs of n in input order. Unknown nodes have none.
func (g *Graph) Arcs(n Node) []Arc {
	idx, ok := g.index[n]
	if !ok {
		return nil
	}
	start, end := g.EdgesFrom(idx)
	arcs := make([]Arc, 0, end-start)
	for e := start; e < end; e++ {
		arcs = append(arcs, Arc{To: g.nodes[g.head[e]], Cost: g.weight[e]})
	}
	return arcs
}

// Index returns the dense index of n.
func (g *Graph) Index(n Node) (uint32, bool) {
	idx, ok := g.index[n]
	return idx, ok
}

// NodeAt returns the node id stored at dense index i.
func (g *Graph) NodeAt(i uint32) Node { return g.nodes[i] }

// EdgesFrom returns the range of arc indices for arcs originating from index u.
func (g *Graph) EdgesFrom(u uint32) (start, end uint32) {
	return g.firstOut[u], g.firstOut[u+1]
}

// Head returns the target index of arc e.
func (g *Graph) Head(e uint32) uint32 { return g.head[e] }

// Weight returns the cost of arc e.
func (g *Graph) Weight(e uint32) Cost { return g.weight[e] }
