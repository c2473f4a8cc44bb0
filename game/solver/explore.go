package solver

import (
	"context"

	"github.com/wricardo/mcp-training/shoepuzzle/game/engine"
)

// StateSpace summarises every board reachable from a starting board.
type StateSpace struct {
	Reachable int `json:"reachable"`
	Goals     int `json:"goals"`
	// DeadEnds are boards from which the block cannot move at all.
	DeadEnds int `json:"dead_ends"`
	MaxDepth int `json:"max_depth"`
	// NearestGoal is the length of a shortest solution, -1 if none exists.
	NearestGoal int `json:"nearest_goal"`
	// DepthCounts[d] is the number of boards first reached after d moves.
	DepthCounts []int `json:"depth_counts"`
}

// Solvable reports whether any goal is reachable
func (s *StateSpace) Solvable() bool {
	return s.NearestGoal >= 0
}

// Explore runs a search that never stops at a goal, so every reachable board
// is visited once. Caller-supplied WithGoal and WithOnEnqueue options are
// ignored. WithMaxDepth bounds the census and WithOnVisit is still called.
func Explore(ctx context.Context, initial engine.PuzzleState, opts ...Option) (*StateSpace, error) {
	space := &StateSpace{NearestGoal: -1}

	record := func(n *Node) {
		space.Reachable++
		for len(space.DepthCounts) <= n.depth {
			space.DepthCounts = append(space.DepthCounts, 0)
		}
		space.DepthCounts[n.depth]++
		if n.depth > space.MaxDepth {
			space.MaxDepth = n.depth
		}
		if n.remaining.Empty() {
			space.DeadEnds++
		}
		if n.state.IsGoal() {
			space.Goals++
			if space.NearestGoal < 0 {
				space.NearestGoal = n.depth
			}
		}
	}

	opts = append(opts,
		WithGoal(func(engine.PuzzleState) bool { return false }),
		WithOnEnqueue(record),
	)
	if _, err := New(opts...).Search(ctx, initial); err != nil {
		return nil, err
	}
	return space, nil
}
