package engine

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// BoardSize is the number of rows and columns of the board
	BoardSize = 3

	// NumPieces is the number of pieces on the board
	NumPieces = 4

	// Validation constants
	MaxBulkMoves        = 50
	WebSocketBufferSize = 256
)

// Piece indexes one of the four board occupants
type Piece int

const (
	Block Piece = iota
	RedShoe
	BlueShoe
	BlackShoe
)

var pieceNames = [NumPieces]string{"block", "red_shoe", "blue_shoe", "black_shoe"}

func (p Piece) String() string {
	if p < 0 || int(p) >= NumPieces {
		return fmt.Sprintf("piece(%d)", int(p))
	}
	return pieceNames[p]
}

// Pieces lists every piece in index order
func Pieces() []Piece {
	return []Piece{Block, RedShoe, BlueShoe, BlackShoe}
}

// Position represents row,col coordinates on the board
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Move returns the position one cell away in the given direction.
// Bounds are not checked.
func (p Position) Move(d Direction) Position {
	dr, dc := d.Offset()
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// OnBoard reports whether the position lies within the board
func (p Position) OnBoard() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Direction is one of the four moves of the block
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

var directionNames = [...]string{"UP", "RIGHT", "DOWN", "LEFT"}

// Directions lists every direction in enumeration order
func Directions() []Direction {
	return []Direction{Up, Right, Down, Left}
}

// Offset returns the row and column delta of the direction
func (d Direction) Offset() (int, int) {
	switch d {
	case Up:
		return -1, 0
	case Right:
		return 0, 1
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	}
	return 0, 0
}

// Valid reports whether d is one of the four directions
func (d Direction) Valid() bool {
	return d >= Up && d <= Left
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection parses a direction name case-insensitively. The initials
// u, r, d and l are accepted as well.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return Up, nil
	case "right", "r":
		return Right, nil
	case "down", "d":
		return Down, nil
	case "left", "l":
		return Left, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// MarshalText encodes the direction as its lower-case name
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDirection, int(d))
	}
	return []byte(strings.ToLower(directionNames[d])), nil
}

// UnmarshalText decodes any name accepted by ParseDirection
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MoveSet is a set of directions. Iteration always follows Directions() order.
type MoveSet uint8

// NewMoveSet builds a set holding the given directions
func NewMoveSet(dirs ...Direction) MoveSet {
	var s MoveSet
	for _, d := range dirs {
		s = s.Add(d)
	}
	return s
}

// Has reports whether d is in the set
func (s MoveSet) Has(d Direction) bool {
	return d.Valid() && s&(1<<uint(d)) != 0
}

// Add returns the set with d added
func (s MoveSet) Add(d Direction) MoveSet {
	if !d.Valid() {
		return s
	}
	return s | 1<<uint(d)
}

// Remove returns the set with d removed
func (s MoveSet) Remove(d Direction) MoveSet {
	if !d.Valid() {
		return s
	}
	return s &^ (1 << uint(d))
}

// Empty reports whether the set has no directions
func (s MoveSet) Empty() bool {
	return s == 0
}

// Len returns the number of directions in the set
func (s MoveSet) Len() int {
	n := 0
	for _, d := range Directions() {
		if s.Has(d) {
			n++
		}
	}
	return n
}

// Directions returns the members of the set in enumeration order
func (s MoveSet) Directions() []Direction {
	dirs := make([]Direction, 0, s.Len())
	for _, d := range Directions() {
		if s.Has(d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// PopFirst removes and returns the first direction of the set. ok is false
// when the set is empty.
func (s *MoveSet) PopFirst() (d Direction, ok bool) {
	for _, d := range Directions() {
		if s.Has(d) {
			*s = s.Remove(d)
			return d, true
		}
	}
	return 0, false
}

// Strings returns the lower-case names of the members, as used by the API
func (s MoveSet) Strings() []string {
	names := make([]string, 0, s.Len())
	for _, d := range s.Directions() {
		names = append(names, strings.ToLower(d.String()))
	}
	return names
}

func (s MoveSet) String() string {
	parts := make([]string, 0, s.Len())
	for _, d := range s.Directions() {
		parts = append(parts, d.String())
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// MarshalJSON encodes the set as a list of lower-case direction names
func (s MoveSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

// UnmarshalJSON decodes a list of direction names
func (s *MoveSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	var set MoveSet
	for _, name := range names {
		d, err := ParseDirection(name)
		if err != nil {
			return err
		}
		set = set.Add(d)
	}
	*s = set
	return nil
}

// PiecePlacement names the starting cell of every piece in a config file
type PiecePlacement struct {
	Block     Position `json:"block"`
	RedShoe   Position `json:"red_shoe"`
	BlueShoe  Position `json:"blue_shoe"`
	BlackShoe Position `json:"black_shoe"`
}

// Positions returns the placement in piece index order
func (p PiecePlacement) Positions() []Position {
	return []Position{p.Block, p.RedShoe, p.BlueShoe, p.BlackShoe}
}

// PuzzleConfig represents a puzzle configuration loaded from JSON
type PuzzleConfig struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Pieces      PiecePlacement `json:"pieces"`
	Messages    PuzzleMessages `json:"messages"`
}

// PuzzleMessages holds the player-facing texts of a configuration.
// Solved may contain %d for the move count.
type PuzzleMessages struct {
	Welcome  string `json:"welcome"`
	Solved   string `json:"solved"`
	CantMove string `json:"cant_move"`
	Moved    string `json:"moved"`
}

// GameState represents the complete state of a play session
type GameState struct {
	Board       PuzzleState        `json:"board"`
	Initial     PuzzleState        `json:"initial"`
	Solved      bool               `json:"solved"`
	Message     string             `json:"message"`
	LegalMoves  MoveSet            `json:"legal_moves"`
	ConfigName  string             `json:"config_name"`
	MoveHistory []MoveHistoryEntry `json:"move_history"`
	TotalMoves  int                `json:"total_moves"`

	// CurrentMoves tracks only the moves since the last reset. It mirrors MoveHistory entries
	// but gets cleared on reset while MoveHistory remains cumulative.
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`

	// Computed helper view (not required for core game logic)
	BoardView []string `json:"board_view,omitempty"`
}

// MoveHistoryEntry represents a single move in the game history
type MoveHistoryEntry struct {
	Action     string `json:"action"`
	FromBoard  string `json:"from_board"`
	ToBoard    string `json:"to_board"`
	Timestamp  int64  `json:"timestamp"`
	Success    bool   `json:"success"`
	MoveNumber int    `json:"move_number"`
}
