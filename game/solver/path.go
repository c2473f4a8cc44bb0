package solver

import (
	"strings"

	"github.com/wricardo/mcp-training/shoepuzzle/game/engine"
)

// Step is one board of a solution. The first step of a path has no direction.
type Step struct {
	Direction    engine.Direction
	HasDirection bool
	State        engine.PuzzleState
}

func (s Step) String() string {
	if !s.HasDirection {
		return s.State.String()
	}
	return s.Direction.String() + " " + s.State.String()
}

// Path is a sequence of steps from the root to a node.
type Path []Step

// ReconstructPath walks parent links from node back to the root and returns
// the steps in root-to-node order. A nil node yields an empty path.
func ReconstructPath(node *Node) Path {
	if node == nil {
		return nil
	}
	path := make(Path, node.depth+1)
	for cur, i := node, node.depth; cur != nil; cur, i = cur.parent, i-1 {
		d, ok := cur.Direction()
		path[i] = Step{Direction: d, HasDirection: ok, State: cur.state}
	}
	return path
}

// Moves is the number of moves in the path
func (p Path) Moves() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Directions returns the moves of the path in order
func (p Path) Directions() []engine.Direction {
	dirs := make([]engine.Direction, 0, p.Moves())
	for _, step := range p {
		if step.HasDirection {
			dirs = append(dirs, step.Direction)
		}
	}
	return dirs
}

// Final returns the last board of the path
func (p Path) Final() (engine.PuzzleState, bool) {
	if len(p) == 0 {
		return engine.PuzzleState{}, false
	}
	return p[len(p)-1].State, true
}

// String renders one step per line
func (p Path) String() string {
	lines := make([]string, len(p))
	for i, step := range p {
		lines[i] = step.String()
	}
	return strings.Join(lines, "\n")
}
