package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travel_planner/pkg/config"
	"travel_planner/pkg/edgelist"
	"travel_planner/pkg/graph"
	"travel_planner/pkg/logging"
	osmparser "travel_planner/pkg/osm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	input := flag.String("input", "", "Path to .osm.pbf file")
	output := flag.String("output", "edges.csv", "Output edge-list file path")
	profile := flag.String("profile", cfg.Source.OSMProfile, "Travel profile: car or foot")
	bbox := flag.String("bbox", "", "Bounding box filter: minLat,minLng,maxLat,maxLng (e.g. 1.15,103.6,1.48,104.1)")
	largest := flag.Bool("largest", false, "Keep only the largest connected component")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: extract --input <file.osm.pbf> [--output edges.csv] [--profile car|foot] [--bbox minLat,minLng,maxLat,maxLng] [--largest]")
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	opts := osmparser.ParseOptions{Logger: logger}
	if opts.Profile, err = osmparser.ParseProfile(*profile); err != nil {
		logger.Error("invalid profile", "error", err)
		os.Exit(1)
	}
	if *bbox != "" {
		var b osmparser.BBox
		if _, err := fmt.Sscanf(*bbox, "%f,%f,%f,%f", &b.MinLat, &b.MinLng, &b.MaxLat, &b.MaxLng); err != nil {
			logger.Error("invalid bbox, expected minLat,minLng,maxLat,maxLng", "error", err)
			os.Exit(1)
		}
		opts.BBox = b
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *input, *output, *largest, opts, logger); err != nil {
		logger.Error("extract failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, input, output string, largest bool, opts osmparser.ParseOptions, logger *slog.Logger) error {
	start := time.Now()

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	res, err := osmparser.Parse(ctx, f, opts)
	if err != nil {
		return err
	}
	edges := res.Edges

	if largest {
		g, err := graph.Build(edges)
		if err != nil {
			return fmt.Errorf("build graph: %w", err)
		}
		keep := graph.LargestComponent(g)
		edges = graph.FilterEdges(edges, keep)
		pct := 0.0
		if g.NumNodes() > 0 {
			pct = float64(len(keep)) / float64(g.NumNodes()) * 100
		}
		logger.Info("largest component", "nodes", len(keep), "percent", fmt.Sprintf("%.1f", pct), "edges", len(edges))
	}

	if err := edgelist.WriteFile(output, edges); err != nil {
		return err
	}

	info, err := os.Stat(output)
	if err != nil {
		return err
	}
	logger.Info("done",
		"output", output,
		"edges", len(edges),
		"size_mb", fmt.Sprintf("%.1f", float64(info.Size())/(1024*1024)),
		"elapsed", time.Since(start).Round(time.Second),
	)
	return nil
}
