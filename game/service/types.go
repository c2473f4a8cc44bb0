package service

import (
	"time"

	"github.com/wricardo/mcp-training/shoepuzzle/game/engine"
)

// SessionInfo provides information about a play session
type SessionInfo struct {
	ID             string               `json:"id"`
	ConfigName     string               `json:"config_name"`
	CreatedAt      time.Time            `json:"created_at"`
	LastAccessedAt time.Time            `json:"last_accessed_at"`
	GameState      *engine.GameState    `json:"game_state"`
	PuzzleConfig   *engine.PuzzleConfig `json:"puzzle_config"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success     bool              `json:"success"`
	GameState   *engine.GameState `json:"game_state"`
	Message     string            `json:"message"`
	Events      []GameEvent       `json:"events,omitempty"`
	Step        *StepInfo         `json:"step,omitempty"`
	AttemptedTo *AttemptInfo      `json:"attempted_to,omitempty"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	MovesExecuted  int               `json:"moves_executed"`
	RequestedMoves int               `json:"requested_moves"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`   // Human-readable reason
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // Machine-friendly code: see AttemptInfo.Reason
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused stop
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	// Start/end snapshot
	StartBoard engine.PuzzleState `json:"start_board"`
	EndBoard   engine.PuzzleState `json:"end_board"`

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`

	// Failure diagnostics
	AttemptedTo *AttemptInfo `json:"attempted_to,omitempty"`

	// Final status aids
	Solved        bool     `json:"solved"`
	Message       string   `json:"message,omitempty"`
	PossibleMoves []string `json:"possible_moves,omitempty"`
	BoardView     []string `json:"board_view,omitempty"`
}

// StepInfo is a compact record for each executed move
type StepInfo struct {
	Idx     int                `json:"idx"`
	Dir     string             `json:"dir"`
	From    engine.PuzzleState `json:"from"`
	To      engine.PuzzleState `json:"to"`
	Carried []string           `json:"carried,omitempty"` // shoes that travelled with the block
	Success bool               `json:"success"`
	Solved  bool               `json:"solved,omitempty"`
}

// AttemptInfo explains why a move was refused
type AttemptInfo struct {
	Direction string          `json:"direction"`
	Target    engine.Position `json:"target"`
	// Reason is one of unknown_direction, boundary, occupied, stacking_conflict
	Reason    string   `json:"reason"`
	Occupants []string `json:"occupants,omitempty"`
}

// GameEvent represents an event that occurred during play
type GameEvent struct {
	Type      string    `json:"type"` // "move", "solved", "reset", "solve"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Board     string    `json:"board,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a puzzle configuration
type ConfigInfo struct {
	Filename    string             `json:"filename"`
	ConfigID    string             `json:"config_id"` // The identifier to use for session creation
	Name        string             `json:"name"`      // Display name
	Description string             `json:"description"`
	Initial     engine.PuzzleState `json:"initial"`
	// ShortestSolution is the optimal move count, -1 when the layout cannot be solved
	ShortestSolution int `json:"shortest_solution"`
}

// SolveResult is the outcome of a solver run
type SolveResult struct {
	Found      bool               `json:"found"`
	Start      engine.PuzzleState `json:"start"`
	Moves      []string           `json:"moves"`
	Steps      []SolutionStep     `json:"steps"`
	Length     int                `json:"length"`
	Expanded   int                `json:"expanded"`
	Discovered int                `json:"discovered"`
	ElapsedMs  float64            `json:"elapsed_ms"`
	Trace      string             `json:"trace"`

	// Set when the solution was played on a session
	Applied   bool              `json:"applied,omitempty"`
	GameState *engine.GameState `json:"game_state,omitempty"`
}

// SolutionStep is one board along a solution. The first step has no direction.
type SolutionStep struct {
	Ply       int                `json:"ply"`
	Direction string             `json:"direction,omitempty"`
	Board     engine.PuzzleState `json:"board"`
}

// HintResult suggests the next move of a shortest solution
type HintResult struct {
	Found          bool   `json:"found"`
	Direction      string `json:"direction,omitempty"`
	RemainingMoves int    `json:"remaining_moves"`
	Message        string `json:"message"`
}
