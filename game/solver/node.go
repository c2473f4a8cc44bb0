package solver

import (
	"github.com/wricardo/mcp-training/shoepuzzle/game/engine"
)

// Node is a board in the search tree. It remembers the move that produced it,
// its parent and the moves from it that have not been tried yet.
type Node struct {
	state     engine.PuzzleState
	parent    *Node
	direction engine.Direction
	remaining engine.MoveSet
	depth     int
}

// NewNode creates a root node. Its pending moves are the legal moves of state.
func NewNode(state engine.PuzzleState) *Node {
	return &Node{
		state:     state,
		remaining: state.LegalMoves(),
	}
}

// HasNextChild reports whether some move from this node is still untried
func (n *Node) HasNextChild() bool {
	return !n.remaining.Empty()
}

// NextChild consumes the first untried move, in direction order, and returns
// the node it leads to. ok is false once every move has been consumed.
func (n *Node) NextChild() (child *Node, ok bool) {
	d, ok := n.remaining.PopFirst()
	if !ok {
		return nil, false
	}

	next := n.state
	if err := next.Move(d); err != nil {
		// remaining only ever holds legal moves of n.state
		panic("solver: pending move became illegal: " + err.Error())
	}

	return &Node{
		state:     next,
		parent:    n,
		direction: d,
		remaining: next.LegalMoves(),
		depth:     n.depth + 1,
	}, true
}

// State returns a copy of the board held by the node
func (n *Node) State() engine.PuzzleState {
	return n.state
}

// Parent returns the node this one was generated from. The root has none.
func (n *Node) Parent() (*Node, bool) {
	return n.parent, n.parent != nil
}

// Direction returns the move that produced the node. The root has none.
func (n *Node) Direction() (engine.Direction, bool) {
	return n.direction, n.parent != nil
}

// Depth is the number of moves from the root
func (n *Node) Depth() int {
	return n.depth
}

func (n *Node) String() string {
	if n.parent == nil {
		return n.state.String()
	}
	return n.direction.String() + " " + n.state.String()
}
