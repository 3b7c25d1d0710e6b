package routing

import (
	"context"
	"errors"

	"travel_planner/pkg/graph"
)

// ErrBudgetExceeded is returned when a search expands more nodes than allowed.
var ErrBudgetExceeded = errors.New("search budget exceeded")

// ctxCheckInterval is how many pops pass between cancellation checks.
const ctxCheckInterval = 100

// Route is a found path and its total cost.
type Route struct {
	Path []graph.Node
	Cost graph.Cost
}

// Options customizes a search.
type Options struct {
	// MaxExpansions bounds the number of settled nodes. Zero means unlimited.
	MaxExpansions int
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithMaxExpansions stops the search with ErrBudgetExceeded after n settled
// nodes. n <= 0 removes the bound.
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n < 0 {
			n = 0
		}
		o.MaxExpansions = n
	}
}

// ShortestPath returns the cheapest path from start to goal, or false if the
// goal is unreachable or either node is not in g.
// Edge costs are non-negative, so the first time the goal leaves the
// frontier its cost is final. Among equal-cost candidates the smallest node
// id is expanded first, which makes the result reproducible.
func ShortestPath(g *graph.Graph, start, goal graph.Node) (Route, bool) {
	r, ok, _ := ShortestPathContext(context.Background(), g, start, goal)
	return r, ok
}

// ShortestPathContext is ShortestPath with cooperative cancellation and an
// optional expansion budget. The error is non-nil only when the search was
// cut short; an unreachable goal is (Route{}, false, nil).
func ShortestPathContext(ctx context.Context, g *graph.Graph, start, goal graph.Node, opts ...Option) (Route, bool, error) {
	if start == goal {
		return Route{Path: []graph.Node{start}, Cost: 0}, true, nil
	}

	var cfg Options
	for _, opt := range opts {
		opt(&cfg)
	}

	si, ok := g.Index(start)
	if !ok {
		return Route{}, false, nil
	}
	gi, ok := g.Index(goal)
	if !ok {
		return Route{}, false, nil
	}

	s := &search{
		g:    g,
		goal: gi,
		dist: NewDistanceTable(g.NumNodes(), si),
	}
	s.frontier.Push(newStep(start, si))
	return s.run(ctx, cfg)
}

// search holds the mutable state of a single query.
type search struct {
	g        *graph.Graph
	goal     uint32
	dist     *DistanceTable
	frontier Frontier
}

func (s *search) run(ctx context.Context, cfg Options) (Route, bool, error) {
	pops := 0
	expanded := 0

	for s.frontier.Len() > 0 {
		pops++
		if pops%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Route{}, false, err
			}
		}

		step := s.frontier.Pop()

		// A cheaper Step for this node was pushed after this one.
		if step.Cost > s.dist.Best(step.at) {
			continue
		}

		if step.at == s.goal {
			return Route{Path: step.History(), Cost: step.Cost}, true, nil
		}

		expanded++
		if cfg.MaxExpansions > 0 && expanded > cfg.MaxExpansions {
			return Route{}, false, ErrBudgetExceeded
		}

		s.relax(step)
	}

	return Route{}, false, nil
}

// relax pushes a new Step for every outgoing arc that improves the best
// known cumulative cost of its head.
func (s *search) relax(step Step) {
	start, end := s.g.EdgesFrom(step.at)
	for e := start; e < end; e++ {
		w := s.g.Weight(e)
		if w >= graph.Infinity-step.Cost {
			continue // sum would reach the sentinel
		}
		candidate := step.Cost + w
		next := s.g.Head(e)
		if !s.dist.Propose(next, candidate) {
			continue
		}
		s.frontier.Push(step.extend(s.g.NodeAt(next), next, candidate))
	}
}
