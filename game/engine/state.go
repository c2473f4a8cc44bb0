package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidConfiguration = errors.New("invalid puzzle configuration")
	ErrIllegalMove          = errors.New("illegal move")
	ErrUnknownDirection     = errors.New("unknown direction")
)

// PuzzleState is the board: the positions of the four pieces indexed by Piece.
//
// PuzzleState is a comparable value. Assigning it copies the board, and two
// states holding the same positions are == and collide as map keys.
type PuzzleState struct {
	positions [NumPieces]Position
}

// NewPuzzleState creates a state from exactly four positions given in piece
// order: block, red shoe, blue shoe, black shoe.
func NewPuzzleState(positions ...Position) (PuzzleState, error) {
	if len(positions) != NumPieces {
		return PuzzleState{}, fmt.Errorf("%w: expected %d positions, got %d", ErrInvalidConfiguration, NumPieces, len(positions))
	}
	for i, p := range positions {
		if !p.OnBoard() {
			return PuzzleState{}, fmt.Errorf("%w: %s at %s is off the %dx%d board", ErrInvalidConfiguration, Piece(i), p, BoardSize, BoardSize)
		}
	}
	if positions[BlueShoe] == positions[BlackShoe] {
		return PuzzleState{}, fmt.Errorf("%w: blue and black shoe share cell %s", ErrInvalidConfiguration, positions[BlueShoe])
	}

	var s PuzzleState
	copy(s.positions[:], positions)
	return s, nil
}

// DefaultPuzzleState returns the original layout of the puzzle
func DefaultPuzzleState() PuzzleState {
	return PuzzleState{positions: [NumPieces]Position{
		{Row: 0, Col: 0},
		{Row: 2, Col: 0},
		{Row: 1, Col: 1},
		{Row: 0, Col: 2},
	}}
}

// Position returns the position of the given piece
func (s PuzzleState) Position(p Piece) Position {
	return s.positions[p]
}

// Positions returns a copy of all piece positions in piece order
func (s PuzzleState) Positions() [NumPieces]Position {
	return s.positions
}

// IsGoal reports whether the red and blue shoes share a cell
func (s PuzzleState) IsGoal() bool {
	return s.samePosition(RedShoe, BlueShoe)
}

// Clone returns an independent copy of the state
func (s PuzzleState) Clone() PuzzleState {
	return s
}

// Equal reports whether both states hold the same positions
func (s PuzzleState) Equal(other PuzzleState) bool {
	return s == other
}

// String renders the state as [(r,c),(r,c),(r,c),(r,c)]
func (s PuzzleState) String() string {
	parts := make([]string, NumPieces)
	for i, p := range s.positions {
		parts[i] = p.String()
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// MarshalJSON encodes the state as the list of positions in piece order
func (s PuzzleState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.positions[:])
}

// UnmarshalJSON decodes a list of positions and validates it. The zero
// PuzzleState puts the blue and black shoes on one cell, so it encodes but
// does not decode; structs that carry a board must always set it.
func (s *PuzzleState) UnmarshalJSON(data []byte) error {
	var positions []Position
	if err := json.Unmarshal(data, &positions); err != nil {
		return err
	}
	parsed, err := NewPuzzleState(positions...)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s PuzzleState) samePosition(a, b Piece) bool {
	return s.positions[a] == s.positions[b]
}

// isEmpty reports whether no piece occupies p
func (s PuzzleState) isEmpty(p Position) bool {
	for _, occupied := range s.positions {
		if occupied == p {
			return false
		}
	}
	return true
}
