package solver_test

import (
	"context"
	"fmt"

	"github.com/wricardo/mcp-training/shoepuzzle/game/engine"
	"github.com/wricardo/mcp-training/shoepuzzle/game/solver"
)

// ExampleEngine_Search solves the classic layout and prints the first moves.
func ExampleEngine_Search() {
	res, err := solver.New().Search(context.Background(), engine.DefaultPuzzleState())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	goal, ok := res.Node()
	if !ok {
		fmt.Println("no solution")
		return
	}

	path := solver.ReconstructPath(goal)
	fmt.Println(path.Moves(), "moves")
	for _, step := range path[:3] {
		fmt.Println(step)
	}
	final, _ := path.Final()
	fmt.Println(final, final.IsGoal())
	// Output:
	// 24 moves
	// [(0,0),(2,0),(1,1),(0,2)]
	// RIGHT [(0,1),(2,0),(1,1),(0,2)]
	// DOWN [(1,1),(2,0),(1,1),(0,2)]
	// [(1,1),(1,1),(1,1),(0,2)] true
}
