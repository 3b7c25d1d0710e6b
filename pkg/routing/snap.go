package routing

import (
	"errors"
	"math"

	"github.com/tidwall/rtree"

	"travel_planner/pkg/geo"
	"travel_planner/pkg/graph"
)

const maxSnapDistMeters = 500.0

// ErrPointTooFar is returned when the query point is too far from any node.
var ErrPointTooFar = errors.New("point too far from road")

// LatLng represents a geographic coordinate.
type LatLng = geo.LatLng

// Snapper finds the graph node nearest to a coordinate.
// Points are stored as degenerate boxes keyed [lng, lat].
type Snapper struct {
	tr   rtree.RTreeG[graph.Node]
	locs map[graph.Node]LatLng
}

// NewSnapper indexes the locations of nodes that belong to g.
// Locations for nodes outside g are ignored.
func NewSnapper(g *graph.Graph, locs map[graph.Node]LatLng) *Snapper {
	s := &Snapper{locs: make(map[graph.Node]LatLng, len(locs))}
	for n, ll := range locs {
		if !g.HasNode(n) {
			continue
		}
		pt := [2]float64{ll.Lng, ll.Lat}
		s.tr.Insert(pt, pt, n)
		s.locs[n] = ll
	}
	return s
}

// Len returns the number of indexed nodes.
func (s *Snapper) Len() int { return s.tr.Len() }

// Location returns the coordinate of n, if known.
func (s *Snapper) Location(n graph.Node) (LatLng, bool) {
	ll, ok := s.locs[n]
	return ll, ok
}

// Snap returns the nearest indexed node to (lat, lng) and its distance in
// meters. Equidistant candidates resolve to the smallest node id.
func (s *Snapper) Snap(lat, lng float64) (graph.Node, float64, error) {
	dLat, dLng := geo.MetersToDegrees(maxSnapDistMeters, lat)
	lo := [2]float64{lng - dLng, lat - dLat}
	hi := [2]float64{lng + dLng, lat + dLat}

	bestDist := math.Inf(1)
	var best graph.Node
	s.tr.Search(lo, hi, func(min, _ [2]float64, n graph.Node) bool {
		d := geo.Haversine(lat, lng, min[1], min[0])
		if d < bestDist || (d == bestDist && n < best) {
			bestDist = d
			best = n
		}
		return true
	})

	if bestDist > maxSnapDistMeters {
		return 0, 0, ErrPointTooFar
	}
	return best, bestDist, nil
}
