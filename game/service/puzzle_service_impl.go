package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/shoepuzzle/game/engine"
	"github.com/wricardo/mcp-training/shoepuzzle/game/solver"
)

// puzzleServiceImpl implements the PuzzleService interface
type puzzleServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	solver   *solver.Engine
	mu       sync.RWMutex
}

// NewPuzzleService creates a new puzzle service instance. Solver options
// apply to Solve, SolveBoard and Hint.
func NewPuzzleService(sessions SessionManager, configs ConfigManager, opts ...solver.Option) PuzzleService {
	return &puzzleServiceImpl{
		sessions: sessions,
		configs:  configs,
		solver:   solver.New(opts...),
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *puzzleServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

func (s *puzzleServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
		PuzzleConfig:   sess.Config,
	}
}

// CreateSession creates a new play session
func (s *puzzleServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.PuzzleConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					configIDs := make([]string, 0, len(availableConfigs))
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found, available configs: %v: %w", configName, configIDs, err)
				}
				return nil, fmt.Errorf("config '%s' not found, use /api/configs to list available configurations: %w", configName, err)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a 4-character ID
	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return s.sessionInfo(sess, configID), nil
}

// GetSession retrieves session information
func (s *puzzleServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	// UpdateLastAccessed writes and persists the session
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return s.sessionInfo(sess, s.getConfigID(sess.Config.Name)), nil
}

// ListSessions returns all active sessions
func (s *puzzleServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, s.getConfigID(sess.Config.Name)))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *puzzleServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move executes a single move for a session
func (s *puzzleServiceImpl) Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	events := []GameEvent{}
	if reset {
		sess.Engine.Reset()
		events = append(events, resetEvent())
	}

	from := sess.Engine.GetBoard()
	success := sess.Engine.Move(direction)
	state := sess.Engine.GetState()

	result := &MoveResult{
		Success:   success,
		GameState: state,
		Message:   state.Message,
		Events:    events,
	}

	if success {
		step := buildStep(1, direction, from, state.Board)
		result.Step = &step
		result.Events = append(result.Events, moveEvents(direction, state.Board, state.Message)...)
	} else {
		attempt := explainRefusal(from, direction)
		result.AttemptedTo = &attempt
	}

	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after move: %v", sessionID, err)
	}

	return result, nil
}

// BulkMove executes multiple moves in sequence, stopping at the first refused
// move. A canceled context is only honoured before anything is applied.
func (s *puzzleServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
	}

	if reset {
		sess.Engine.Reset()
		result.Events = append(result.Events, resetEvent())
	}
	result.StartBoard = sess.Engine.GetBoard()

	// Limit moves to prevent abuse
	if len(moves) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		moves = moves[:engine.MaxBulkMoves]
	}

	for i, o := range sess.Engine.BulkMove(moves) {
		if !o.Success {
			attempt := explainRefusal(o.From, o.Direction)
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d blocked: %s", i+1, o.Direction)
			result.StopReasonCode = attempt.Reason
			result.StoppedOnMove = i + 1
			result.AttemptedTo = &attempt
			break
		}

		result.MovesExecuted++
		result.Steps = append(result.Steps, buildStep(i+1, o.Direction, o.From, o.To))
		result.Events = append(result.Events, moveEvents(o.Direction, o.To, o.Message)...)
	}

	endState := sess.Engine.GetState()
	result.GameState = endState
	result.EndBoard = endState.Board
	result.Solved = endState.Solved
	result.Message = endState.Message
	result.PossibleMoves = sess.Engine.GetPossibleMoves()
	result.BoardView = endState.BoardView

	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after bulk moves: %v", sessionID, err)
	}

	return result, nil
}

// Reset puts a session back on its initial board
func (s *puzzleServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state := sess.Engine.Reset()

	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after reset: %v", sessionID, err)
	}

	return state, nil
}

// GetGameState retrieves the current game state
func (s *puzzleServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState(), nil
}

// GetMoveHistory returns paginated move history
func (s *puzzleServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var moves []engine.MoveHistoryEntry
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = history[start:end]
	}

	if moves == nil {
		moves = []engine.MoveHistoryEntry{}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// Solve searches a shortest solution from the session's current board.
// With apply set, the solution is played on the session.
func (s *puzzleServiceImpl) Solve(ctx context.Context, sessionID string, apply bool) (*SolveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result, err := s.solve(ctx, sess.Engine.GetBoard())
	if err != nil {
		return nil, err
	}

	if apply && result.Found && result.Length > 0 {
		for _, o := range sess.Engine.BulkMove(result.Moves) {
			if !o.Success {
				// The solver only emits legal moves; a refusal means the engine rules diverged
				return nil, fmt.Errorf("solution move %s refused on %s", o.Direction, o.From)
			}
		}
		result.Applied = true
		if err := s.sessions.Save(sessionID); err != nil {
			log.Printf("Warning: Failed to persist session %s after solve: %v", sessionID, err)
		}
	}
	result.GameState = sess.Engine.GetState()

	return result, nil
}

// SolveBoard searches a shortest solution from an arbitrary board
func (s *puzzleServiceImpl) SolveBoard(ctx context.Context, positions []engine.Position) (*SolveResult, error) {
	board, err := engine.NewPuzzleState(positions...)
	if err != nil {
		return nil, err
	}
	return s.solve(ctx, board)
}

// Hint returns the first move of a shortest solution from the session's board
func (s *puzzleServiceImpl) Hint(ctx context.Context, sessionID string) (*HintResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	result, err := s.solve(ctx, sess.Engine.GetBoard())
	if err != nil {
		return nil, err
	}

	switch {
	case !result.Found:
		return &HintResult{
			RemainingMoves: -1,
			Message:        "No solution from this board. Reset to start over.",
		}, nil
	case result.Length == 0:
		return &HintResult{
			Found:   true,
			Message: "The red and blue shoes are already together.",
		}, nil
	default:
		return &HintResult{
			Found:          true,
			Direction:      result.Moves[0],
			RemainingMoves: result.Length,
			Message:        fmt.Sprintf("Move %s; %d moves to go with best play.", result.Moves[0], result.Length),
		}, nil
	}
}

// ListConfigs returns available puzzle configurations
func (s *puzzleServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific puzzle configuration
func (s *puzzleServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.PuzzleConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a puzzle configuration to disk
func (s *puzzleServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.PuzzleConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// solve runs the search and converts its outcome
func (s *puzzleServiceImpl) solve(ctx context.Context, board engine.PuzzleState) (*SolveResult, error) {
	res, err := s.solver.Search(ctx, board)
	if err != nil {
		return nil, fmt.Errorf("solver failed: %w", err)
	}

	result := &SolveResult{
		Start:      board,
		Moves:      []string{},
		Steps:      []SolutionStep{},
		Expanded:   res.Expanded,
		Discovered: res.Discovered,
		ElapsedMs:  float64(res.Elapsed.Microseconds()) / 1000,
		Trace:      "No solution found",
	}

	goal, ok := res.Node()
	if !ok {
		return result, nil
	}

	path := solver.ReconstructPath(goal)
	result.Found = true
	result.Length = path.Moves()
	result.Trace = path.String()
	for i, step := range path {
		ss := SolutionStep{Ply: i, Board: step.State}
		if step.HasDirection {
			ss.Direction = strings.ToLower(step.Direction.String())
			result.Moves = append(result.Moves, ss.Direction)
		}
		result.Steps = append(result.Steps, ss)
	}
	return result, nil
}

func resetEvent() GameEvent {
	return GameEvent{
		Type:      "reset",
		Message:   "Puzzle reset to initial board",
		Timestamp: time.Now(),
	}
}

// moveEvents generates events for an executed move that left the board on to
func moveEvents(direction string, to engine.PuzzleState, message string) []GameEvent {
	events := []GameEvent{{
		Type:      "move",
		Message:   fmt.Sprintf("Block moved %s to %s", strings.ToLower(direction), to.Position(engine.Block)),
		Timestamp: time.Now(),
		Board:     to.String(),
	}}

	if to.IsGoal() {
		events = append(events, GameEvent{
			Type:      "solved",
			Message:   message,
			Timestamp: time.Now(),
			Board:     to.String(),
		})
	}
	return events
}

// buildStep records a successful move and the shoes it carried
func buildStep(idx int, direction string, from, to engine.PuzzleState) StepInfo {
	step := StepInfo{
		Idx:     idx,
		Dir:     strings.ToLower(direction),
		From:    from,
		To:      to,
		Success: true,
		Solved:  to.IsGoal(),
	}
	if d, err := engine.ParseDirection(direction); err == nil {
		step.Dir = strings.ToLower(d.String())
	}
	for _, p := range []engine.Piece{engine.RedShoe, engine.BlueShoe, engine.BlackShoe} {
		if from.Position(p) != to.Position(p) {
			step.Carried = append(step.Carried, p.String())
		}
	}
	return step
}

// steppable lists the shoes the block may land on, per direction
var steppable = map[engine.Direction][]engine.Piece{
	engine.Right: {engine.BlackShoe},
	engine.Down:  {engine.RedShoe, engine.BlueShoe},
}

// explainRefusal describes why the block could not move from board
func explainRefusal(board engine.PuzzleState, direction string) AttemptInfo {
	d, err := engine.ParseDirection(direction)
	if err != nil {
		return AttemptInfo{Direction: direction, Reason: "unknown_direction"}
	}

	target := board.Position(engine.Block).Move(d)
	attempt := AttemptInfo{
		Direction: strings.ToLower(d.String()),
		Target:    target,
	}
	if !target.OnBoard() {
		attempt.Reason = "boundary"
		return attempt
	}

	attempt.Reason = "occupied"
	for _, p := range engine.PiecesAt(board, target) {
		attempt.Occupants = append(attempt.Occupants, p.String())
		for _, allowed := range steppable[d] {
			if p == allowed {
				attempt.Reason = "stacking_conflict"
			}
		}
	}
	return attempt
}
