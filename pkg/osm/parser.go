// Package osm turns an OpenStreetMap PBF extract into a routable edge list.
// Node ids are OSM node ids and costs are distances in millimeters.
package osm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"travel_planner/pkg/geo"
	"travel_planner/pkg/graph"
)

// Profile selects which ways are traversable and whether oneway applies.
type Profile int

const (
	ProfileCar Profile = iota
	ProfileFoot
)

func (p Profile) String() string {
	switch p {
	case ProfileFoot:
		return "foot"
	default:
		return "car"
	}
}

// ParseProfile maps "car" or "foot" to a Profile.
func ParseProfile(s string) (Profile, error) {
	switch s {
	case "", "car":
		return ProfileCar, nil
	case "foot":
		return ProfileFoot, nil
	}
	return 0, fmt.Errorf("unknown profile %q", s)
}

// ParseResult holds the edge list and the coordinates of every node it references.
type ParseResult struct {
	Edges     []graph.Edge
	Locations map[graph.Node]geo.LatLng
}

// BBox defines a geographic bounding box for filtering.
// If non-zero, only edges with both endpoints inside the box are kept.
type BBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// IsZero returns true if the bbox is unset.
func (b BBox) IsZero() bool {
	return b.MinLat == 0 && b.MaxLat == 0 && b.MinLng == 0 && b.MaxLng == 0
}

// Contains returns true if the point is inside the bounding box.
func (b BBox) Contains(ll geo.LatLng) bool {
	return ll.Lat >= b.MinLat && ll.Lat <= b.MaxLat && ll.Lng >= b.MinLng && ll.Lng <= b.MaxLng
}

// ParseOptions configures the parser.
type ParseOptions struct {
	Profile Profile
	BBox    BBox
	Logger  *slog.Logger // nil discards progress logs
}

// way is a traversable way kept from the first pass.
type way struct {
	nodes    []osm.NodeID
	forward  bool
	backward bool
}

// Parse reads a PBF extract in two passes (ways, then the coordinates of the
// nodes they reference), so rs must be seekable.
func Parse(ctx context.Context, rs io.ReadSeeker, opts ParseOptions) (*ParseResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ways, referenced, err := scanWays(ctx, rs, opts.Profile)
	if err != nil {
		return nil, err
	}
	logger.Info("osm ways scanned", "ways", len(ways), "referenced_nodes", len(referenced))

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek for node pass: %w", err)
	}

	coords, err := scanNodes(ctx, rs, referenced)
	if err != nil {
		return nil, err
	}
	logger.Info("osm nodes scanned", "coordinates", len(coords))

	res, stats := buildEdges(ways, coords, opts.BBox)
	if stats.missingCoords > 0 {
		logger.Warn("skipped edges with missing node coordinates", "count", stats.missingCoords)
	}
	if stats.outsideBBox > 0 {
		logger.Info("filtered edges outside bounding box", "count", stats.outsideBBox)
	}
	logger.Info("osm edges built", "edges", len(res.Edges), "profile", opts.Profile.String())

	return res, nil
}

func scanWays(ctx context.Context, rs io.Reader, profile Profile) ([]way, map[osm.NodeID]struct{}, error) {
	referenced := make(map[osm.NodeID]struct{})
	var ways []way

	scanner := osmpbf.New(ctx, rs, 1)
	defer scanner.Close()
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		w, ok := scanner.Object().(*osm.Way)
		if !ok || len(w.Nodes) < 2 || !traversable(w.Tags, profile) {
			continue
		}

		fwd, bwd := directionFlags(w.Tags, profile)
		if !fwd && !bwd {
			continue
		}

		ids := make([]osm.NodeID, len(w.Nodes))
		for i, wn := range w.Nodes {
			ids[i] = wn.ID
			referenced[wn.ID] = struct{}{}
		}
		ways = append(ways, way{nodes: ids, forward: fwd, backward: bwd})
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("way pass: %w", err)
	}
	return ways, referenced, nil
}

func scanNodes(ctx context.Context, rs io.Reader, referenced map[osm.NodeID]struct{}) (map[osm.NodeID]geo.LatLng, error) {
	coords := make(map[osm.NodeID]geo.LatLng, len(referenced))

	scanner := osmpbf.New(ctx, rs, 1)
	defer scanner.Close()
	scanner.SkipWays = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, needed := referenced[n.ID]; needed {
			coords[n.ID] = geo.LatLng{Lat: n.Lat, Lng: n.Lon}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("node pass: %w", err)
	}
	return coords, nil
}

type buildStats struct {
	missingCoords int
	outsideBBox   int
}

// buildEdges splits ways into consecutive node pairs weighted by great-circle
// distance in millimeters. Zero-length segments cost 1 so that every hop
// still counts.
func buildEdges(ways []way, coords map[osm.NodeID]geo.LatLng, bbox BBox) (*ParseResult, buildStats) {
	var stats buildStats
	res := &ParseResult{Locations: make(map[graph.Node]geo.LatLng)}
	useBBox := !bbox.IsZero()

	for _, w := range ways {
		for i := 0; i+1 < len(w.nodes); i++ {
			fromID, toID := w.nodes[i], w.nodes[i+1]
			from, fromOK := coords[fromID]
			to, toOK := coords[toID]
			if !fromOK || !toOK {
				stats.missingCoords++
				continue
			}
			if useBBox && (!bbox.Contains(from) || !bbox.Contains(to)) {
				stats.outsideBBox++
				continue
			}

			mm := int64(math.Round(geo.Haversine(from.Lat, from.Lng, to.Lat, to.Lng) * 1000))
			if mm == 0 {
				mm = 1
			}

			u, v := graph.Node(fromID), graph.Node(toID)
			if w.forward {
				res.Edges = append(res.Edges, graph.Edge{From: u, To: v, Cost: mm})
			}
			if w.backward {
				res.Edges = append(res.Edges, graph.Edge{From: v, To: u, Cost: mm})
			}
			res.Locations[u] = from
			res.Locations[v] = to
		}
	}
	return res, stats
}
