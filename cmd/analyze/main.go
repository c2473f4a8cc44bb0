// Command analyze prints a human-readable census of every layout in a
// configs directory: how many boards are reachable, how deep the state space
// goes, how many boards are solved or stuck, and the shortest solution.
//
//	go run ./cmd/analyze [configs-dir]
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/wricardo/mcp-training/shoepuzzle/game/engine"
	"github.com/wricardo/mcp-training/shoepuzzle/game/solver"
)

// Report is the analysis of one layout file
type Report struct {
	File     string
	Config   *engine.PuzzleConfig
	Start    engine.PuzzleState
	ModTime  time.Time
	Space    *solver.StateSpace
	Solution solver.Path
	Expanded int
	Warnings []string
}

func main() {
	dir := "configs"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	reports, errs := analyzeDir(context.Background(), dir)
	for _, err := range errs {
		log.Printf("Warning: %v", err)
	}
	if len(reports) == 0 {
		log.Fatalf("no valid layouts found in %s", dir)
	}

	for _, r := range reports {
		r.Write(os.Stdout)
	}
}

// analyzeDir analyzes every *.json file of dir in name order. Files that
// fail to load are reported as errors and skipped.
func analyzeDir(ctx context.Context, dir string) ([]*Report, []error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, []error{err}
	}
	sort.Strings(files)

	var reports []*Report
	var errs []error
	for _, file := range files {
		r, err := analyzeConfig(ctx, file)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(file), err))
			continue
		}
		reports = append(reports, r)
	}
	return reports, errs
}

func analyzeConfig(ctx context.Context, path string) (*Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	cfg, err := engine.LoadPuzzleConfig(path)
	if err != nil {
		return nil, err
	}
	start, err := cfg.InitialState()
	if err != nil {
		return nil, err
	}

	space, err := solver.Explore(ctx, start)
	if err != nil {
		return nil, err
	}
	res, err := solver.New().Search(ctx, start)
	if err != nil {
		return nil, err
	}

	r := &Report{
		File:     filepath.Base(path),
		Config:   cfg,
		Start:    start,
		ModTime:  info.ModTime(),
		Space:    space,
		Expanded: res.Expanded,
	}
	if goal, ok := res.Node(); ok {
		r.Solution = solver.ReconstructPath(goal)
	}

	switch {
	case start.IsGoal():
		r.Warnings = append(r.Warnings, "layout starts solved")
	case start.LegalMoves().Empty():
		r.Warnings = append(r.Warnings, "the block cannot move from the start")
	case !space.Solvable():
		r.Warnings = append(r.Warnings, "no reachable board puts the red shoe on the blue shoe")
	}
	if space.DeadEnds > 0 && !start.LegalMoves().Empty() {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%s reachable boards leave the block stuck", humanize.Comma(int64(space.DeadEnds))))
	}

	return r, nil
}

// Write prints the report
func (r *Report) Write(w io.Writer) {
	fmt.Fprintf(w, "\n=== Analyzing %s ===\n", r.File)
	fmt.Fprintf(w, "Name: %s (modified %s)\n", r.Config.Name, humanize.Time(r.ModTime))
	fmt.Fprintf(w, "Start: %s\n", r.Start)
	for _, line := range engine.RenderBoard(r.Start) {
		fmt.Fprintf(w, "   %s\n", line)
	}

	s := r.Space
	fmt.Fprintf(w, "Reachable boards: %s (max depth %d)\n", humanize.Comma(int64(s.Reachable)), s.MaxDepth)
	fmt.Fprintf(w, "Solved boards: %s, stuck boards: %s\n", humanize.Comma(int64(s.Goals)), humanize.Comma(int64(s.DeadEnds)))
	fmt.Fprintf(w, "Boards per depth: %s\n", formatDepthCounts(s.DepthCounts))

	if len(r.Solution) > 0 {
		moves := make([]string, 0, r.Solution.Moves())
		for _, d := range r.Solution.Directions() {
			moves = append(moves, strings.ToLower(d.String()))
		}
		fmt.Fprintf(w, "✅ Shortest solution: %d moves, first solved on the %s ply (%s boards expanded)\n",
			r.Solution.Moves(), humanize.Ordinal(r.Solution.Moves()), humanize.Comma(int64(r.Expanded)))
		if len(moves) > 0 {
			fmt.Fprintf(w, "   %s\n", strings.Join(moves, " "))
		}
	}
	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "⚠️  WARNING: %s\n", warning)
	}
}

// formatDepthCounts lists the non-empty depths as depth:count
func formatDepthCounts(counts []int) string {
	parts := make([]string, 0, len(counts))
	for depth, n := range counts {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d:%d", depth, n))
		}
	}
	return strings.Join(parts, " ")
}
