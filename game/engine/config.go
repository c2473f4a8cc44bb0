package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidatePuzzleConfig validates a puzzle configuration for correctness
func ValidatePuzzleConfig(config *PuzzleConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}

	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	// Validate the layout by building the board it describes
	if _, err := NewPuzzleState(config.Pieces.Positions()...); err != nil {
		return fmt.Errorf("config validation: pieces: %w", err)
	}

	// Validate messages
	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if config.Messages.Solved == "" {
		return fmt.Errorf("config validation: messages.solved is required")
	}
	if strings.Count(config.Messages.Solved, "%") > 1 ||
		(strings.Contains(config.Messages.Solved, "%") && !strings.Contains(config.Messages.Solved, "%d")) {
		return fmt.Errorf("config validation: messages.solved may only contain a single %%d for the move count")
	}

	return nil
}

// InitialState returns the board described by the configuration
func (c *PuzzleConfig) InitialState() (PuzzleState, error) {
	return NewPuzzleState(c.Pieces.Positions()...)
}

// LoadPuzzleConfig loads a puzzle configuration from a JSON file
func LoadPuzzleConfig(filename string) (*PuzzleConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config PuzzleConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidatePuzzleConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// DefaultPuzzleConfig returns the configuration of the original puzzle
func DefaultPuzzleConfig() *PuzzleConfig {
	initial := DefaultPuzzleState()
	config := &PuzzleConfig{
		Name:        "Classic",
		Description: "The original layout: bring the red and blue shoes together by pushing the block around",
		Pieces: PiecePlacement{
			Block:     initial.Position(Block),
			RedShoe:   initial.Position(RedShoe),
			BlueShoe:  initial.Position(BlueShoe),
			BlackShoe: initial.Position(BlackShoe),
		},
	}
	config.Messages.Welcome = "Move the block to bring the red shoe onto the blue shoe."
	config.Messages.Solved = "Solved in %d moves!"
	config.Messages.CantMove = "The block can't move there!"
	config.Messages.Moved = "Block moved."
	return config
}

// InitGameStateFromConfig creates a new game state using the provided configuration
func InitGameStateFromConfig(config *PuzzleConfig) *GameState {
	if config == nil {
		config = DefaultPuzzleConfig()
	}

	board, err := config.InitialState()
	if err != nil {
		// Invalid layouts never get past ValidatePuzzleConfig; fall back to the classic board
		board = DefaultPuzzleState()
	}

	return &GameState{
		Board:             board,
		Initial:           board,
		Solved:            board.IsGoal(),
		Message:           config.Messages.Welcome,
		LegalMoves:        board.LegalMoves(),
		ConfigName:        config.Name,
		MoveHistory:       []MoveHistoryEntry{},
		TotalMoves:        0,
		CurrentMoves:      []MoveHistoryEntry{},
		CurrentMovesCount: 0,
	}
}
