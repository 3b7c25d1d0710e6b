package routing

import (
	"context"
	"errors"
	"fmt"

	"travel_planner/pkg/graph"
)

// ErrNoRoute is returned when no route exists between the two nodes.
var ErrNoRoute = errors.New("no route found")

// ErrSnappingUnavailable is returned by RouteCoords when the engine has no
// node coordinates.
var ErrSnappingUnavailable = errors.New("coordinate snapping unavailable")

// Router is the interface for route queries.
type Router interface {
	Route(ctx context.Context, start, goal graph.Node) (*Route, error)
	RouteCoords(ctx context.Context, from, to LatLng) (*CoordRoute, error)
}

// CoordRoute is a route between two snapped coordinates.
type CoordRoute struct {
	Route
	From     graph.Node
	To       graph.Node
	Geometry []LatLng
}

// Stats summarizes the loaded graph.
type Stats struct {
	NumNodes         int
	NumEdges         int
	NumComponents    int
	LargestComponent int
}

// Engine answers route queries against one immutable graph.
// It is safe for concurrent use: every query owns its own search state.
type Engine struct {
	g          *graph.Graph
	components []uint32 // weak component label per dense node index
	stats      Stats
	snapper    *Snapper // nil when no coordinates were loaded
	opts       []Option
}

// NewEngine creates a routing engine. snapper may be nil.
func NewEngine(g *graph.Graph, snapper *Snapper, opts ...Option) *Engine {
	labels, count := graph.Components(g)

	sizes := make([]int, count)
	largest := 0
	for _, l := range labels {
		sizes[l]++
		largest = max(largest, sizes[l])
	}

	return &Engine{
		g:          g,
		components: labels,
		stats: Stats{
			NumNodes:         g.NumNodes(),
			NumEdges:         g.NumEdges(),
			NumComponents:    count,
			LargestComponent: largest,
		},
		snapper: snapper,
		opts:    opts,
	}
}

// Stats returns the graph summary computed at construction.
func (e *Engine) Stats() Stats { return e.stats }

// Route computes the shortest path between two nodes.
func (e *Engine) Route(ctx context.Context, start, goal graph.Node) (*Route, error) {
	// Nodes in different weak components can never be connected.
	if start != goal {
		si, sok := e.g.Index(start)
		gi, gok := e.g.Index(goal)
		if !sok || !gok || e.components[si] != e.components[gi] {
			return nil, ErrNoRoute
		}
	}

	r, ok, err := ShortestPathContext(ctx, e.g, start, goal, e.opts...)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoRoute
	}
	return &r, nil
}

// RouteCoords snaps both coordinates to their nearest nodes and routes
// between them.
func (e *Engine) RouteCoords(ctx context.Context, from, to LatLng) (*CoordRoute, error) {
	if e.snapper == nil {
		return nil, ErrSnappingUnavailable
	}

	startNode, _, err := e.snapper.Snap(from.Lat, from.Lng)
	if err != nil {
		return nil, fmt.Errorf("snap start: %w", err)
	}
	goalNode, _, err := e.snapper.Snap(to.Lat, to.Lng)
	if err != nil {
		return nil, fmt.Errorf("snap end: %w", err)
	}

	r, err := e.Route(ctx, startNode, goalNode)
	if err != nil {
		return nil, err
	}

	geometry := make([]LatLng, 0, len(r.Path))
	for _, n := range r.Path {
		if ll, ok := e.snapper.Location(n); ok {
			geometry = append(geometry, ll)
		}
	}

	return &CoordRoute{
		Route:    *r,
		From:     startNode,
		To:       goalNode,
		Geometry: geometry,
	}, nil
}
