// Package edgelist reads and writes the plain-text edge list format used by
// the planner commands: one "source,destination,cost" triple per line.
// Blank lines and lines starting with '#' are ignored.
package edgelist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"travel_planner/pkg/graph"
)

// ErrMalformedLine is returned for a line that is not a valid edge triple.
var ErrMalformedLine = errors.New("malformed edge line")

// Read parses edges from r in order.
func Read(r io.Reader) ([]graph.Edge, error) {
	var edges []graph.Edge

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		e, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		edges = append(edges, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read edge list: %w", err)
	}
	return edges, nil
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string) ([]graph.Edge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open edge list: %w", err)
	}
	defer f.Close()

	edges, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return edges, nil
}

func parseLine(line string) (graph.Edge, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 3 {
		return graph.Edge{}, fmt.Errorf("%w: want 3 fields, got %d", ErrMalformedLine, len(fields))
	}

	from, err := strconv.ParseUint(strings.TrimSpace(fields[0]), 10, 64)
	if err != nil {
		return graph.Edge{}, fmt.Errorf("%w: source: %v", ErrMalformedLine, err)
	}
	to, err := strconv.ParseUint(strings.TrimSpace(fields[1]), 10, 64)
	if err != nil {
		return graph.Edge{}, fmt.Errorf("%w: destination: %v", ErrMalformedLine, err)
	}
	// Negative costs parse here and are rejected by graph.Build.
	cost, err := strconv.ParseInt(strings.TrimSpace(fields[2]), 10, 64)
	if err != nil {
		return graph.Edge{}, fmt.Errorf("%w: cost: %v", ErrMalformedLine, err)
	}

	return graph.Edge{From: graph.Node(from), To: graph.Node(to), Cost: cost}, nil
}

// Write emits edges to w in the format accepted by Read.
func Write(w io.Writer, edges []graph.Edge) error {
	bw := bufio.NewWriter(w)
	for _, e := range edges {
		if _, err := fmt.Fprintf(bw, "%d,%d,%d\n", e.From, e.To, e.Cost); err != nil {
			return fmt.Errorf("write edge list: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write edge list: %w", err)
	}
	return nil
}

// WriteFile writes edges to path via a temp file and rename.
func WriteFile(path string, edges []graph.Edge) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmpPath) // no-op after a successful rename
	}()

	if err := Write(f, edges); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
