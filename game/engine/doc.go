// Package engine provides the board model of the shoe block puzzle.
//
// The board is a 3x3 grid holding four pieces: a block and three shoes
// (red, blue and black). Only the block is moved by the player. Depending
// on what it stands on and what it moves onto, the block may carry shoes
// with it:
//   - up carries the black shoe, and the red shoe only when both are stacked
//     under the block
//   - right and down carry every shoe stacked under the block
//   - left carries the red and blue shoes but never the black one
//
// The puzzle is solved when the red shoe and the blue shoe share a cell.
//
// Core Types:
//
// PuzzleState is the immutable-by-default board value, with CanMove,
// LegalMoves and Move implementing the rules. GameEngine wraps a board for
// interactive play, recording move history and player messages, while
// PuzzleConfig describes a starting layout loaded from JSON.
//
// Usage:
//
//	state := engine.DefaultPuzzleState()
//	if state.CanMove(engine.Right) {
//		if err := state.Move(engine.Right); err != nil {
//			log.Fatal(err)
//		}
//	}
//	fmt.Println(state) // [(0,1),(2,0),(1,1),(0,2)]
package engine
