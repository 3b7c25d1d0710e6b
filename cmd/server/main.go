package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"travel_planner/pkg/api"
	"travel_planner/pkg/config"
	"travel_planner/pkg/edgelist"
	"travel_planner/pkg/fixture"
	"travel_planner/pkg/graph"
	"travel_planner/pkg/logging"
	osmparser "travel_planner/pkg/osm"
	"travel_planner/pkg/routing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	edgesPath := flag.String("edges", cfg.Source.EdgeListPath, "Path to edge-list file (from,to,cost per line)")
	osmPath := flag.String("osm", cfg.Source.OSMPath, "Path to .osm.pbf file (enables coordinate routing)")
	profile := flag.String("profile", cfg.Source.OSMProfile, "OSM travel profile: car or foot")
	grid := flag.Int("grid", cfg.Source.GridSize, "Grid fixture size when no edge source is given")
	port := flag.Int("port", cfg.HTTP.Port, "HTTP port")
	corsOrigin := flag.String("cors-origin", cfg.HTTP.CORSOrigin, "CORS allowed origin (empty = same-origin)")
	maxExpansions := flag.Int("max-expansions", cfg.Search.MaxExpansions, "Per-search expansion budget (0 = unlimited)")
	flag.Parse()

	cfg.Source = config.SourceConfig{EdgeListPath: *edgesPath, OSMPath: *osmPath, OSMProfile: *profile, GridSize: *grid}
	cfg.HTTP.Port = *port
	cfg.HTTP.CORSOrigin = *corsOrigin
	cfg.Search.MaxExpansions = *maxExpansions

	logger := logging.New(cfg.Logging)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	start := time.Now()

	edges, locs, err := loadEdges(cfg.Source, logger)
	if err != nil {
		return err
	}

	g, err := graph.Build(edges)
	if err != nil {
		return fmt.Errorf("build graph: %w", err)
	}

	var snapper *routing.Snapper
	if locs != nil {
		logger.Info("building spatial index", "locations", len(locs))
		snapper = routing.NewSnapper(g, locs)
	}

	var opts []routing.Option
	if cfg.Search.MaxExpansions > 0 {
		opts = append(opts, routing.WithMaxExpansions(cfg.Search.MaxExpansions))
	}
	engine := routing.NewEngine(g, snapper, opts...)

	stats := engine.Stats()
	logger.Info("graph ready",
		"nodes", stats.NumNodes,
		"edges", stats.NumEdges,
		"components", stats.NumComponents,
		"largest_component", stats.LargestComponent,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	handlers := api.NewHandlers(engine, api.NewStatsResponse(stats), logger)
	srv := api.NewServer(cfg.HTTP, handlers, logger)
	return api.ListenAndServe(srv, cfg.HTTP.ShutdownTimeout, logger)
}

// loadEdges picks the first configured source. Locations are only returned
// for OSM input.
func loadEdges(src config.SourceConfig, logger *slog.Logger) ([]graph.Edge, map[graph.Node]routing.LatLng, error) {
	switch {
	case src.EdgeListPath != "":
		logger.Info("loading edge list", "path", src.EdgeListPath)
		edges, err := edgelist.ReadFile(src.EdgeListPath)
		if err != nil {
			return nil, nil, err
		}
		return edges, nil, nil

	case src.OSMPath != "":
		profile, err := osmparser.ParseProfile(src.OSMProfile)
		if err != nil {
			return nil, nil, err
		}
		f, err := os.Open(src.OSMPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open osm: %w", err)
		}
		defer f.Close()

		logger.Info("parsing osm", "path", src.OSMPath, "profile", profile.String())
		res, err := osmparser.Parse(context.Background(), f, osmparser.ParseOptions{Profile: profile, Logger: logger})
		if err != nil {
			return nil, nil, err
		}
		return res.Edges, res.Locations, nil

	default:
		if src.GridSize <= 0 {
			return nil, nil, fmt.Errorf("no edge source configured")
		}
		logger.Info("using grid fixture", "rows", src.GridSize, "cols", src.GridSize)
		return fixture.Grid(src.GridSize, src.GridSize), nil, nil
	}
}
