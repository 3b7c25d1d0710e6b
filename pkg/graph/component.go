package graph

import mapset "github.com/deckarep/golang-set/v2"

// UnionFind is a disjoint-set forest with path halving and union by rank.
type UnionFind struct {
	parent []uint32
	rank   []byte
	size   []uint32
}

// NewUnionFind creates a UnionFind for n elements.
func NewUnionFind(n uint32) *UnionFind {
	parent := make([]uint32, n)
	size := make([]uint32, n)
	for i := range n {
		parent[i] = i
		size[i] = 1
	}
	return &UnionFind{
		parent: parent,
		rank:   make([]byte, n),
		size:   size,
	}
}

// Find returns the representative of the set containing x.
func (uf *UnionFind) Find(x uint32) uint32 {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

// Union merges the sets containing x and y. Returns false if already same set.
func (uf *UnionFind) Union(x, y uint32) bool {
	rx, ry := uf.Find(x), uf.Find(y)
	if rx == ry {
		return false
	}
	if uf.rank[rx] < uf.rank[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	uf.size[rx] += uf.size[ry]
	if uf.rank[rx] == uf.rank[ry] {
		uf.rank[rx]++
	}
	return true
}

// Size returns the number of elements in the set containing x.
func (uf *UnionFind) Size(x uint32) uint32 { return uf.size[uf.Find(x)] }

// Components labels every node index with its weakly connected component
// (edge direction ignored). Labels are dense, starting at 0, assigned in
// ascending node order. The second result is the number of components.
func Components(g *Graph) ([]uint32, int) {
	n := uint32(g.NumNodes())
	uf := NewUnionFind(n)
	for u := range n {
		start, end := g.EdgesFrom(u)
		for e := start; e < end; e++ {
			uf.Union(u, g.head[e])
		}
	}

	labels := make([]uint32, n)
	byRoot := make(map[uint32]uint32)
	for u := range n {
		root := uf.Find(u)
		label, ok := byRoot[root]
		if !ok {
			label = uint32(len(byRoot))
			byRoot[root] = label
		}
		labels[u] = label
	}
	return labels, len(byRoot)
}

// LargestComponent returns the nodes of the largest weakly connected
// component in ascending order. Ties go to the component holding the
// smallest node id.
func LargestComponent(g *Graph) []Node {
	labels, count := Components(g)
	if count == 0 {
		return nil
	}

	sizes := make([]int, count)
	for _, l := range labels {
		sizes[l]++
	}
	best := 0
	for l := 1; l < count; l++ {
		if sizes[l] > sizes[best] {
			best = l
		}
	}

	out := make([]Node, 0, sizes[best])
	for i, l := range labels {
		if int(l) == best {
			out = append(out, g.nodes[i])
		}
	}
	return out
}

// FilterEdges keeps only edges whose endpoints are both in keep, preserving order.
func FilterEdges(edges []Edge, keep []Node) []Edge {
	set := mapset.NewThreadUnsafeSet(keep...)
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if set.Contains(e.From) && set.Contains(e.To) {
			out = append(out, e)
		}
	}
	return out
}
