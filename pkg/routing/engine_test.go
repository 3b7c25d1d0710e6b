package routing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_planner/pkg/fixture"
	"travel_planner/pkg/graph"
)

// buildTestEngine creates a small road network with coordinates.
//
//	1 --3-- 2 --1-- 3
//	 \_______6_____/
//
// plus a one-way spur 4 -> 5 far from the rest.
func buildTestEngine(t *testing.T) *Engine {
	t.Helper()
	g, err := graph.Build(append(fixture.Small(), graph.Edge{From: 3, To: 1, Cost: 6}))
	require.NoError(t, err)

	locs := map[graph.Node]LatLng{
		1:  {Lat: 1.300, Lng: 103.800},
		2:  {Lat: 1.300, Lng: 103.801},
		3:  {Lat: 1.301, Lng: 103.802},
		4:  {Lat: 1.400, Lng: 103.900},
		5:  {Lat: 1.401, Lng: 103.900},
		99: {Lat: 1.300, Lng: 103.8001}, // not in the graph
	}
	return NewEngine(g, NewSnapper(g, locs))
}

func TestEngineRoute(t *testing.T) {
	eng := buildTestEngine(t)

	r, err := eng.Route(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, []graph.Node{1, 2, 3}, r.Path)
	assert.Equal(t, graph.Cost(4), r.Cost)

	r, err = eng.Route(context.Background(), 3, 2)
	require.NoError(t, err)
	assert.Equal(t, []graph.Node{3, 1, 2}, r.Path)
	assert.Equal(t, graph.Cost(9), r.Cost)
}

func TestEngineRouteNoRoute(t *testing.T) {
	eng := buildTestEngine(t)
	ctx := context.Background()

	_, err := eng.Route(ctx, 1, 4) // different components
	assert.ErrorIs(t, err, ErrNoRoute)

	_, err = eng.Route(ctx, 5, 4) // same component, wrong direction
	assert.ErrorIs(t, err, ErrNoRoute)

	_, err = eng.Route(ctx, 1, 42) // unknown goal
	assert.ErrorIs(t, err, ErrNoRoute)
}

func TestEngineRouteSameNode(t *testing.T) {
	eng := buildTestEngine(t)

	r, err := eng.Route(context.Background(), 42, 42)
	require.NoError(t, err)
	assert.Equal(t, []graph.Node{42}, r.Path)
	assert.Equal(t, graph.Cost(0), r.Cost)
}

func TestEngineRouteBudget(t *testing.T) {
	g := graph.MustBuild(fixture.Grid(30, 30))
	eng := NewEngine(g, nil, WithMaxExpansions(10))

	_, err := eng.Route(context.Background(), 0, 899)
	assert.ErrorIs(t, err, ErrBudgetExceeded)
}

func TestEngineStats(t *testing.T) {
	eng := buildTestEngine(t)

	assert.Equal(t, Stats{
		NumNodes:         5,
		NumEdges:         5,
		NumComponents:    2,
		LargestComponent: 3,
	}, eng.Stats())
}

func TestEngineRouteCoords(t *testing.T) {
	eng := buildTestEngine(t)

	r, err := eng.RouteCoords(context.Background(),
		LatLng{Lat: 1.3001, Lng: 103.8000}, // near node 1
		LatLng{Lat: 1.3010, Lng: 103.8021}, // near node 3
	)
	require.NoError(t, err)
	assert.Equal(t, graph.Node(1), r.From)
	assert.Equal(t, graph.Node(3), r.To)
	assert.Equal(t, []graph.Node{1, 2, 3}, r.Path)
	assert.Equal(t, graph.Cost(4), r.Cost)
	assert.Equal(t, []LatLng{
		{Lat: 1.300, Lng: 103.800},
		{Lat: 1.300, Lng: 103.801},
		{Lat: 1.301, Lng: 103.802},
	}, r.Geometry)
}

func TestEngineRouteCoordsErrors(t *testing.T) {
	eng := buildTestEngine(t)
	ctx := context.Background()

	_, err := eng.RouteCoords(ctx, LatLng{Lat: 10, Lng: 10}, LatLng{Lat: 1.301, Lng: 103.802})
	assert.ErrorIs(t, err, ErrPointTooFar)

	_, err = eng.RouteCoords(ctx, LatLng{Lat: 1.300, Lng: 103.800}, LatLng{Lat: 1.400, Lng: 103.900})
	assert.ErrorIs(t, err, ErrNoRoute)

	noSnap := NewEngine(graph.MustBuild(fixture.Small()), nil)
	_, err = noSnap.RouteCoords(ctx, LatLng{}, LatLng{})
	assert.ErrorIs(t, err, ErrSnappingUnavailable)
}

func TestSnapper(t *testing.T) {
	g := graph.MustBuild(fixture.Small())
	s := NewSnapper(g, map[graph.Node]LatLng{
		1:  {Lat: 1.300, Lng: 103.800},
		2:  {Lat: 1.300, Lng: 103.801},
		99: {Lat: 1.300, Lng: 103.8004},
	})
	assert.Equal(t, 2, s.Len())

	// Node 99 is closer but not part of the graph.
	n, dist, err := s.Snap(1.300, 103.8004)
	require.NoError(t, err)
	assert.Equal(t, graph.Node(1), n)
	assert.InDelta(t, 44.5, dist, 1)

	n, _, err = s.Snap(1.3002, 103.8009)
	require.NoError(t, err)
	assert.Equal(t, graph.Node(2), n)

	_, _, err = s.Snap(1.310, 103.800)
	assert.ErrorIs(t, err, ErrPointTooFar)

	ll, ok := s.Location(2)
	assert.True(t, ok)
	assert.Equal(t, LatLng{Lat: 1.300, Lng: 103.801}, ll)
	_, ok = s.Location(99)
	assert.False(t, ok)
}

func TestSnapperTieBreak(t *testing.T) {
	g := graph.MustBuild([]graph.Edge{{From: 8, To: 3, Cost: 1}})
	s := NewSnapper(g, map[graph.Node]LatLng{
		8: {Lat: 0, Lng: 0.001},
		3: {Lat: 0, Lng: -0.001},
	})

	n, _, err := s.Snap(0, 0)
	require.NoError(t, err)
	assert.Equal(t, graph.Node(3), n)
}
