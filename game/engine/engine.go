package engine

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Engine provides the main interface for play operations on one board.
// States it returns are snapshots owned by the caller.
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	IsSolved() bool
	GetBoard() PuzzleState

	// Movement operations
	Move(direction string) bool
	BulkMove(moves []string) []MoveOutcome
	GetPossibleMoves() []string

	// History
	GetMoveHistory() []MoveHistoryEntry
}

// MoveOutcome is the result of one move of a BulkMove
type MoveOutcome struct {
	Direction string
	From      PuzzleState
	To        PuzzleState
	Success   bool
	Message   string
}

// GameEngine implements the Engine interface
type GameEngine struct {
	state  *GameState
	config *PuzzleConfig
}

var _ Engine = (*GameEngine)(nil)

// NewEngine creates a new game engine with the provided configuration
func NewEngine(config *PuzzleConfig) (*GameEngine, error) {
	if err := ValidatePuzzleConfig(config); err != nil {
		return nil, err
	}

	engine := &GameEngine{
		config: config,
		state:  InitGameStateFromConfig(config),
	}

	return engine, nil
}

// NewEngineWithDefaults creates a new game engine on the classic layout
func NewEngineWithDefaults() *GameEngine {
	config := DefaultPuzzleConfig()
	return &GameEngine{
		config: config,
		state:  InitGameStateFromConfig(config),
	}
}

// GetState returns a snapshot of the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state.Snapshot()
}

// SetState sets the game state (used for persistence loading)
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	state.Solved = state.Board.IsGoal()
	state.LegalMoves = state.Board.LegalMoves()
	e.state = state
	return nil
}

// Reset puts the board back to the initial layout
func (e *GameEngine) Reset() *GameState {
	// Preserve cumulative history and totals across resets
	prevHistory := e.state.MoveHistory
	prevTotal := e.state.TotalMoves
	initial := e.state.Initial

	e.state = InitGameStateFromConfig(e.config)

	// Sessions restored from disk may have been created from a config that changed since
	e.state.Board = initial
	e.state.Initial = initial
	e.state.Solved = initial.IsGoal()
	e.state.LegalMoves = initial.LegalMoves()

	// Restore cumulative history and totals; clear only the current segment
	e.state.MoveHistory = prevHistory
	e.state.TotalMoves = prevTotal
	e.state.CurrentMoves = []MoveHistoryEntry{}
	e.state.CurrentMovesCount = 0

	return e.state.Snapshot()
}

// IsSolved returns whether the board is in a goal configuration
func (e *GameEngine) IsSolved() bool {
	return e.state.Board.IsGoal()
}

// GetBoard returns a copy of the current board
func (e *GameEngine) GetBoard() PuzzleState {
	return e.state.Board
}

// Move attempts to move the block in the specified direction
func (e *GameEngine) Move(direction string) bool {
	prev := e.state.Board
	success := e.state.MoveBlock(direction, e.config)
	e.state.AddMoveToHistory(direction, prev, e.state.Board, success)
	return success
}

// GetPossibleMoves returns all directions the block can move in
func (e *GameEngine) GetPossibleMoves() []string {
	return e.state.Board.LegalMoves().Strings()
}

// GetMoveHistory returns a copy of the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return slices.Clone(e.state.MoveHistory)
}

// BulkMove executes multiple moves in sequence, stopping at the first
// failure, and returns the outcome of each attempted move
func (e *GameEngine) BulkMove(moves []string) []MoveOutcome {
	outcomes := make([]MoveOutcome, 0, len(moves))

	for _, direction := range moves {
		from := e.state.Board
		success := e.Move(direction)
		outcomes = append(outcomes, MoveOutcome{
			Direction: direction,
			From:      from,
			To:        e.state.Board,
			Success:   success,
			Message:   e.state.Message,
		})
		if !success {
			break
		}
	}

	return outcomes
}

// MoveBlock applies one move to the board and updates the message and
// derived fields. Unknown and illegal directions leave the board unchanged.
func (gs *GameState) MoveBlock(direction string, config *PuzzleConfig) bool {
	if config == nil {
		config = DefaultPuzzleConfig()
	}

	d, err := ParseDirection(direction)
	if err != nil {
		gs.Message = fmt.Sprintf("Unknown direction %q: use up, down, left or right", direction)
		return false
	}

	if err := gs.Board.Move(d); err != nil {
		gs.Message = fmt.Sprintf("Can't move %s from %s", strings.ToLower(d.String()), gs.Board)
		if config.Messages.CantMove != "" {
			gs.Message = config.Messages.CantMove + fmt.Sprintf(" [%s blocked]", strings.ToLower(d.String()))
		}
		return false
	}

	gs.LegalMoves = gs.Board.LegalMoves()
	gs.Solved = gs.Board.IsGoal()

	switch {
	case gs.Solved:
		gs.Message = solvedMessage(config.Messages.Solved, CountSuccessfulMoves(gs.CurrentMoves)+1)
	case config.Messages.Moved != "":
		gs.Message = config.Messages.Moved
	default:
		gs.Message = fmt.Sprintf("Block moved %s", strings.ToLower(d.String()))
	}

	return true
}

// AddMoveToHistory adds a move to the game's move history
func (gs *GameState) AddMoveToHistory(action string, from, to PuzzleState, success bool) {
	entry := MoveHistoryEntry{
		Action:     strings.ToLower(action),
		FromBoard:  from.String(),
		ToBoard:    to.String(),
		Timestamp:  time.Now().Unix(),
		Success:    success,
		MoveNumber: gs.TotalMoves + 1,
	}
	// Append to cumulative history (never cleared by reset) and increment total
	gs.MoveHistory = append(gs.MoveHistory, entry)
	gs.TotalMoves++

	// Append to current segment history and increment its counter
	gs.CurrentMoves = append(gs.CurrentMoves, entry)
	gs.CurrentMovesCount++
}

// Snapshot returns a copy of the state that shares no slices with it, with
// the board view rendered
func (gs *GameState) Snapshot() *GameState {
	snapshot := *gs
	snapshot.MoveHistory = slices.Clone(gs.MoveHistory)
	snapshot.CurrentMoves = slices.Clone(gs.CurrentMoves)
	snapshot.BoardView = RenderBoard(gs.Board)
	return &snapshot
}

func solvedMessage(format string, moves int) string {
	if strings.Contains(format, "%d") {
		return fmt.Sprintf(format, moves)
	}
	return format
}
