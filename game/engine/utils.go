package engine

import (
	"fmt"
	"strings"
)

// pieceSymbols are the characters used by RenderBoard
var pieceSymbols = [NumPieces]string{"#", "r", "b", "k"}

// PieceSymbol returns the character RenderBoard uses for the piece
func PieceSymbol(p Piece) string {
	return pieceSymbols[p]
}

// PiecesAt returns the pieces occupying a cell, in piece order
func PiecesAt(state PuzzleState, pos Position) []Piece {
	var pieces []Piece
	for _, p := range Pieces() {
		if state.Position(p) == pos {
			pieces = append(pieces, p)
		}
	}
	return pieces
}

// RenderBoard draws the board as BoardSize lines. Each cell lists the
// symbols of the pieces stacked on it, or "." when empty.
func RenderBoard(state PuzzleState) []string {
	lines := make([]string, 0, BoardSize)
	for row := 0; row < BoardSize; row++ {
		cells := make([]string, 0, BoardSize)
		for col := 0; col < BoardSize; col++ {
			var sb strings.Builder
			for _, p := range PiecesAt(state, Position{Row: row, Col: col}) {
				sb.WriteString(pieceSymbols[p])
			}
			if sb.Len() == 0 {
				sb.WriteString(".")
			}
			cells = append(cells, fmt.Sprintf("%-4s", sb.String()))
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, "|"), " "))
	}
	return lines
}

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	dr := from.Row - to.Row
	if dr < 0 {
		dr = -dr
	}
	dc := from.Col - to.Col
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// ShoeDistance is the Manhattan distance between the red and blue shoes.
// It is zero exactly on goal boards.
func ShoeDistance(state PuzzleState) int {
	return ManhattanDistance(state.Position(RedShoe), state.Position(BlueShoe))
}

// CountSuccessfulMoves counts the entries that changed the board
func CountSuccessfulMoves(entries []MoveHistoryEntry) int {
	count := 0
	for _, entry := range entries {
		if entry.Success {
			count++
		}
	}
	return count
}

// ParsePositions parses four "row,col" pairs separated by spaces or
// semicolons, e.g. "0,0 2,0 1,1 0,2", into a validated state
func ParsePositions(s string) (PuzzleState, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ';' || r == '\t'
	})
	positions := make([]Position, 0, len(fields))
	for _, field := range fields {
		field = strings.Trim(field, "()")
		var p Position
		if _, err := fmt.Sscanf(field, "%d,%d", &p.Row, &p.Col); err != nil {
			return PuzzleState{}, fmt.Errorf("%w: bad position %q", ErrInvalidConfiguration, field)
		}
		positions = append(positions, p)
	}
	return NewPuzzleState(positions...)
}
