package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"travel_planner/pkg/config"
	"travel_planner/pkg/edgelist"
	"travel_planner/pkg/fixture"
	"travel_planner/pkg/graph"
	"travel_planner/pkg/logging"
	"travel_planner/pkg/routing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	edgesPath := flag.String("edges", cfg.Source.EdgeListPath, "Path to edge-list file (from,to,cost per line)")
	grid := flag.Int("grid", cfg.Source.GridSize, "Grid fixture size when -edges is empty")
	from := flag.Uint64("from", 0, "Start node")
	to := flag.Uint64("to", 0, "Goal node")
	timeout := flag.Duration("timeout", 30*time.Second, "Search timeout")
	maxExpansions := flag.Int("max-expansions", cfg.Search.MaxExpansions, "Expansion budget (0 = unlimited)")
	flag.Parse()

	logger := logging.NewWithWriter(os.Stderr, cfg.Logging)

	var edges []graph.Edge
	if *edgesPath != "" {
		edges, err = edgelist.ReadFile(*edgesPath)
		if err != nil {
			logger.Error("load edges", "path", *edgesPath, "error", err)
			os.Exit(1)
		}
	} else {
		edges = fixture.Grid(*grid, *grid)
	}

	start := time.Now()
	g, err := graph.Build(edges)
	if err != nil {
		logger.Error("build graph", "error", err)
		os.Exit(1)
	}
	logger.Debug("graph built", "nodes", g.NumNodes(), "edges", g.NumEdges(), "elapsed", time.Since(start))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start = time.Now()
	route, ok, err := routing.ShortestPathContext(ctx, g, graph.Node(*from), graph.Node(*to),
		routing.WithMaxExpansions(*maxExpansions))
	if err != nil {
		logger.Error("search aborted", "from", *from, "to", *to, "error", err)
		os.Exit(1)
	}
	logger.Debug("search finished", "elapsed", time.Since(start))

	if !ok {
		fmt.Printf("no route from %d to %d\n", *from, *to)
		os.Exit(2)
	}

	parts := make([]string, len(route.Path))
	for i, n := range route.Path {
		parts[i] = strconv.FormatUint(uint64(n), 10)
	}
	fmt.Printf("cost %d: %s\n", route.Cost, strings.Join(parts, " -> "))
}
