package solver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/shoepuzzle/game/engine"
	"github.com/wricardo/mcp-training/shoepuzzle/game/solver"
)

func state(t *testing.T, rc ...int) engine.PuzzleState {
	t.Helper()
	require.Len(t, rc, 2*engine.NumPieces)
	positions := make([]engine.Position, 0, engine.NumPieces)
	for i := 0; i < len(rc); i += 2 {
		positions = append(positions, engine.Position{Row: rc[i], Col: rc[i+1]})
	}
	s, err := engine.NewPuzzleState(positions...)
	require.NoError(t, err)
	return s
}

// TestNode_Root checks a root has no parent, no direction and depth 0.
func TestNode_Root(t *testing.T) {
	root := solver.NewNode(engine.DefaultPuzzleState())

	_, ok := root.Parent()
	assert.False(t, ok)
	_, ok = root.Direction()
	assert.False(t, ok)
	assert.Equal(t, 0, root.Depth())
	assert.Equal(t, "[(0,0),(2,0),(1,1),(0,2)]", root.String())
}

// TestNode_ChildrenInDirectionOrder consumes every pending move of the canonical board.
func TestNode_ChildrenInDirectionOrder(t *testing.T) {
	root := solver.NewNode(engine.DefaultPuzzleState())
	require.True(t, root.HasNextChild())

	right, ok := root.NextChild()
	require.True(t, ok)
	d, ok := right.Direction()
	require.True(t, ok)
	assert.Equal(t, engine.Right, d)
	assert.Equal(t, 1, right.Depth())
	assert.Equal(t, "RIGHT [(0,1),(2,0),(1,1),(0,2)]", right.String())
	parent, ok := right.Parent()
	require.True(t, ok)
	assert.Same(t, root, parent)

	down, ok := root.NextChild()
	require.True(t, ok)
	d, _ = down.Direction()
	assert.Equal(t, engine.Down, d)
	assert.Equal(t, state(t, 1, 0, 2, 0, 1, 1, 0, 2), down.State())

	assert.False(t, root.HasNextChild())
	_, ok = root.NextChild()
	assert.False(t, ok)

	// generating children leaves the parent's board alone
	assert.Equal(t, engine.DefaultPuzzleState(), root.State())
}

// TestNode_DeadEnd checks a board without legal moves has no children.
func TestNode_DeadEnd(t *testing.T) {
	n := solver.NewNode(state(t, 0, 0, 1, 0, 0, 1, 0, 0))
	assert.False(t, n.HasNextChild())
	child, ok := n.NextChild()
	assert.False(t, ok)
	assert.Nil(t, child)
}
