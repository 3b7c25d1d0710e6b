package routing

import (
	"cmp"

	"travel_planner/pkg/graph"
)

// trail is a shared-prefix node history. Extending a Step allocates one
// link instead of copying the whole path.
type trail struct {
	node  graph.Node
	prev  *trail
	depth int
}

// Step is a candidate partial path: cumulative cost, current position and
// the nodes visited from the start up to and including Position.
type Step struct {
	Cost     graph.Cost
	Position graph.Node

	at    uint32 // dense index of Position
	trail *trail
}

func newStep(start graph.Node, at uint32) Step {
	return Step{
		Position: start,
		at:       at,
		trail:    &trail{node: start, depth: 1},
	}
}

// extend returns the Step reached by one more hop to next.
func (s Step) extend(next graph.Node, at uint32, cost graph.Cost) Step {
	return Step{
		Cost:     cost,
		Position: next,
		at:       at,
		trail:    &trail{node: next, prev: s.trail, depth: s.trail.depth + 1},
	}
}

// History returns the visited nodes from the start to Position, inclusive.
func (s Step) History() []graph.Node {
	if s.trail == nil {
		return nil
	}
	out := make([]graph.Node, s.trail.depth)
	for t := s.trail; t != nil; t = t.prev {
		out[t.depth-1] = t.node
	}
	return out
}

// CompareSteps orders Steps by cumulative cost, then by node id.
func CompareSteps(a, b Step) int {
	if c := cmp.Compare(a.Cost, b.Cost); c != 0 {
		return c
	}
	return cmp.Compare(a.Position, b.Position)
}

// Frontier is a concrete-typed binary min-heap of Steps ordered by CompareSteps.
// Avoids interface boxing overhead of container/heap.
type Frontier struct {
	items []Step
}

func (f *Frontier) Len() int { return len(f.items) }

func (f *Frontier) Push(s Step) {
	f.items = append(f.items, s)
	f.siftUp(len(f.items) - 1)
}

// Pop removes and returns the smallest Step. The Frontier must not be empty.
func (f *Frontier) Pop() Step {
	n := len(f.items)
	item := f.items[0]
	f.items[0] = f.items[n-1]
	f.items[n-1] = Step{}
	f.items = f.items[:n-1]
	if len(f.items) > 0 {
		f.siftDown(0)
	}
	return item
}

// Peek returns the smallest Step without removing it.
func (f *Frontier) Peek() (Step, bool) {
	if len(f.items) == 0 {
		return Step{}, false
	}
	return f.items[0], true
}

func (f *Frontier) less(i, j int) bool {
	return CompareSteps(f.items[i], f.items[j]) < 0
}

func (f *Frontier) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !f.less(i, parent) {
			break
		}
		f.items[i], f.items[parent] = f.items[parent], f.items[i]
		i = parent
	}
}

func (f *Frontier) siftDown(i int) {
	n := len(f.items)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && f.less(left, smallest) {
			smallest = left
		}
		if right < n && f.less(right, smallest) {
			smallest = right
		}
		if smallest == i {
			break
		}
		f.items[i], f.items[smallest] = f.items[smallest], f.items[i]
		i = smallest
	}
}
