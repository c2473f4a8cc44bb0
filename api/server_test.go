package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/wricardo/mcp-training/shoepuzzle/game/config"
	"github.com/wricardo/mcp-training/shoepuzzle/game/engine"
	"github.com/wricardo/mcp-training/shoepuzzle/game/service"
	"github.com/wricardo/mcp-training/shoepuzzle/game/session"
	"github.com/wricardo/mcp-training/shoepuzzle/transport/websocket"
)

// MockPuzzleService implements service.PuzzleService for testing
type MockPuzzleService struct {
	CreateSessionFunc  func(ctx context.Context, configName string) (*service.SessionInfo, error)
	GetSessionFunc     func(ctx context.Context, sessionID string) (*service.SessionInfo, error)
	ListSessionsFunc   func(ctx context.Context) ([]*service.SessionInfo, error)
	DeleteSessionFunc  func(ctx context.Context, sessionID string) error
	MoveFunc           func(ctx context.Context, sessionID, direction string, reset bool) (*service.MoveResult, error)
	BulkMoveFunc       func(ctx context.Context, sessionID string, moves []string, reset bool) (*service.BulkMoveResult, error)
	ResetFunc          func(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetGameStateFunc   func(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetMoveHistoryFunc func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error)
	SolveFunc          func(ctx context.Context, sessionID string, apply bool) (*service.SolveResult, error)
	SolveBoardFunc     func(ctx context.Context, positions []engine.Position) (*service.SolveResult, error)
	HintFunc           func(ctx context.Context, sessionID string) (*service.HintResult, error)
	ListConfigsFunc    func(ctx context.Context) ([]*service.ConfigInfo, error)
	LoadConfigFunc     func(ctx context.Context, configName string) (*engine.PuzzleConfig, error)
	SaveConfigFunc     func(ctx context.Context, configName string, config *engine.PuzzleConfig) error
}

func (m *MockPuzzleService) CreateSession(ctx context.Context, configName string) (*service.SessionInfo, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, configName)
	}
	return &service.SessionInfo{ID: "test", ConfigName: configName, CreatedAt: time.Now()}, nil
}

func (m *MockPuzzleService) GetSession(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID)
	}
	return &service.SessionInfo{ID: sessionID, ConfigName: "classic", CreatedAt: time.Now()}, nil
}

func (m *MockPuzzleService) ListSessions(ctx context.Context) ([]*service.SessionInfo, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx)
	}
	return []*service.SessionInfo{}, nil
}

func (m *MockPuzzleService) DeleteSession(ctx context.Context, sessionID string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockPuzzleService) Move(ctx context.Context, sessionID, direction string, reset bool) (*service.MoveResult, error) {
	if m.MoveFunc != nil {
		return m.MoveFunc(ctx, sessionID, direction, reset)
	}
	return &service.MoveResult{Success: true, GameState: newState()}, nil
}

func (m *MockPuzzleService) BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*service.BulkMoveResult, error) {
	if m.BulkMoveFunc != nil {
		return m.BulkMoveFunc(ctx, sessionID, moves, reset)
	}
	return &service.BulkMoveResult{Success: true, GameState: newState(), StartBoard: engine.DefaultPuzzleState(), EndBoard: engine.DefaultPuzzleState()}, nil
}

func (m *MockPuzzleService) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, sessionID)
	}
	return newState(), nil
}

func (m *MockPuzzleService) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if m.GetGameStateFunc != nil {
		return m.GetGameStateFunc(ctx, sessionID)
	}
	return newState(), nil
}

func (m *MockPuzzleService) GetMoveHistory(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
	if m.GetMoveHistoryFunc != nil {
		return m.GetMoveHistoryFunc(ctx, sessionID, opts)
	}
	return &service.HistoryResponse{Moves: []engine.MoveHistoryEntry{}, Page: opts.Page, PageSize: opts.Limit, TotalPages: 1}, nil
}

func (m *MockPuzzleService) Solve(ctx context.Context, sessionID string, apply bool) (*service.SolveResult, error) {
	if m.SolveFunc != nil {
		return m.SolveFunc(ctx, sessionID, apply)
	}
	return &service.SolveResult{Start: engine.DefaultPuzzleState(), Trace: "No solution found"}, nil
}

func (m *MockPuzzleService) SolveBoard(ctx context.Context, positions []engine.Position) (*service.SolveResult, error) {
	if m.SolveBoardFunc != nil {
		return m.SolveBoardFunc(ctx, positions)
	}
	return &service.SolveResult{Start: engine.DefaultPuzzleState(), Trace: "No solution found"}, nil
}

func (m *MockPuzzleService) Hint(ctx context.Context, sessionID string) (*service.HintResult, error) {
	if m.HintFunc != nil {
		return m.HintFunc(ctx, sessionID)
	}
	return &service.HintResult{RemainingMoves: -1}, nil
}

func (m *MockPuzzleService) ListConfigs(ctx context.Context) ([]*service.ConfigInfo, error) {
	if m.ListConfigsFunc != nil {
		return m.ListConfigsFunc(ctx)
	}
	return []*service.ConfigInfo{}, nil
}

func (m *MockPuzzleService) LoadConfig(ctx context.Context, configName string) (*engine.PuzzleConfig, error) {
	if m.LoadConfigFunc != nil {
		return m.LoadConfigFunc(ctx, configName)
	}
	return engine.DefaultPuzzleConfig(), nil
}

func (m *MockPuzzleService) SaveConfig(ctx context.Context, configName string, cfg *engine.PuzzleConfig) error {
	if m.SaveConfigFunc != nil {
		return m.SaveConfigFunc(ctx, configName, cfg)
	}
	return nil
}

// Test helpers

// newState returns a fresh classic game; zero boards do not survive a JSON round trip
func newState() *engine.GameState {
	return engine.InitGameStateFromConfig(engine.DefaultPuzzleConfig())
}

func stateAt(board engine.PuzzleState) *engine.GameState {
	state := newState()
	state.Board = board
	state.LegalMoves = board.LegalMoves()
	return state
}

func setupTestServer(t *testing.T, mock *MockPuzzleService) *Server {
	t.Helper()
	hub := websocket.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return NewServer(mock, hub)
}

func makeRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("Failed to parse response %q: %v", w.Body.String(), err)
	}
}

func notFound(what string) error {
	return fmt.Errorf("%s not found: %w", what, session.ErrSessionNotFound)
}

// Session Management Tests

func TestCreateSession(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		wantConfig     string
		createErr      error
		expectedStatus int
	}{
		{"default config", nil, "", nil, http.StatusCreated},
		{"config_id", map[string]string{"config_id": "stacked"}, "stacked", nil, http.StatusCreated},
		{"deprecated config_name", map[string]string{"config_name": "near_goal"}, "near_goal", nil, http.StatusCreated},
		{"config_id wins", map[string]string{"config_id": "a", "config_name": "b"}, "a", nil, http.StatusCreated},
		{"unknown config", map[string]string{"config_id": "nope"}, "nope", fmt.Errorf("config 'nope' not found: %w", config.ErrConfigNotFound), http.StatusNotFound},
		{"service failure", nil, "", fmt.Errorf("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotConfig string
			mock := &MockPuzzleService{
				CreateSessionFunc: func(ctx context.Context, configName string) (*service.SessionInfo, error) {
					gotConfig = configName
					if tt.createErr != nil {
						return nil, tt.createErr
					}
					return &service.SessionInfo{ID: "ab12", ConfigName: configName}, nil
				},
			}
			server := setupTestServer(t, mock)

			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest("POST", "/api/sessions", tt.requestBody))

			if w.Code != tt.expectedStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if gotConfig != tt.wantConfig {
				t.Errorf("Expected config %q, got %q", tt.wantConfig, gotConfig)
			}
			if w.Code == http.StatusCreated {
				var resp service.SessionInfo
				parseResponse(t, w, &resp)
				if resp.ID != "ab12" {
					t.Errorf("Expected session ID ab12, got %s", resp.ID)
				}
			} else {
				var resp map[string]string
				parseResponse(t, w, &resp)
				if resp["error"] == "" {
					t.Error("Expected error message")
				}
			}
		})
	}
}

func TestListSessions(t *testing.T) {
	now := time.Now()
	mock := &MockPuzzleService{
		ListSessionsFunc: func(ctx context.Context) ([]*service.SessionInfo, error) {
			return []*service.SessionInfo{
				{ID: "old", ConfigName: "classic", CreatedAt: now.Add(-3 * time.Hour), LastAccessedAt: now.Add(-time.Minute)},
				{ID: "mid", ConfigName: "stacked", CreatedAt: now.Add(-2 * time.Hour), LastAccessedAt: now.Add(-time.Hour)},
				{ID: "new", ConfigName: "classic", CreatedAt: now.Add(-time.Hour), LastAccessedAt: now},
			}, nil
		},
	}
	server := setupTestServer(t, mock)

	tests := []struct {
		query   string
		wantIDs []string
		total   int
	}{
		{"", []string{"new", "old", "mid"}, 3},
		{"?sort=created&order=asc", []string{"old", "mid", "new"}, 3},
		{"?sort=created&limit=2", []string{"new", "mid"}, 3},
		{"?config=classic", []string{"new", "old"}, 2},
		{"?limit=0", []string{"new", "old", "mid"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest("GET", "/api/sessions"+tt.query, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d", w.Code)
			}

			var resp struct {
				Count    int                    `json:"count"`
				Total    int                    `json:"total"`
				Sessions []*service.SessionInfo `json:"sessions"`
			}
			parseResponse(t, w, &resp)

			var ids []string
			for _, s := range resp.Sessions {
				ids = append(ids, s.ID)
			}
			if strings.Join(ids, ",") != strings.Join(tt.wantIDs, ",") {
				t.Errorf("Expected %v, got %v", tt.wantIDs, ids)
			}
			if resp.Count != len(tt.wantIDs) || resp.Total != tt.total {
				t.Errorf("Expected count %d total %d, got %d %d", len(tt.wantIDs), tt.total, resp.Count, resp.Total)
			}
		})
	}
}

func TestGetAndDeleteSession(t *testing.T) {
	mock := &MockPuzzleService{
		GetSessionFunc: func(ctx context.Context, id string) (*service.SessionInfo, error) {
			if id != "ab12" {
				return nil, notFound("session")
			}
			return &service.SessionInfo{ID: id}, nil
		},
		DeleteSessionFunc: func(ctx context.Context, id string) error {
			if id != "ab12" {
				return notFound("session")
			}
			return nil
		},
	}
	server := setupTestServer(t, mock)

	tests := []struct {
		method, path string
		status       int
	}{
		{"GET", "/api/sessions/ab12", http.StatusOK},
		{"GET", "/api/sessions/zz99", http.StatusNotFound},
		{"DELETE", "/api/sessions/ab12", http.StatusOK},
		{"DELETE", "/api/sessions/zz99", http.StatusNotFound},
		{"PUT", "/api/sessions/ab12", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest(tt.method, tt.path, nil))
			if w.Code != tt.status {
				t.Errorf("Expected %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
		})
	}
}

// Play Tests

func TestMove(t *testing.T) {
	board := engine.DefaultPuzzleState()
	moved := board
	if err := moved.Move(engine.Right); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name           string
		body           interface{}
		rawBody        string
		moveFunc       func(ctx context.Context, id, dir string, reset bool) (*service.MoveResult, error)
		expectedStatus int
		validate       func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "successful move",
			body: map[string]interface{}{"direction": "right"},
			moveFunc: func(ctx context.Context, id, dir string, reset bool) (*service.MoveResult, error) {
				if dir != "right" || reset {
					t.Errorf("Unexpected call %s reset=%t", dir, reset)
				}
				return &service.MoveResult{
					Success:   true,
					GameState: stateAt(moved),
					Step:      &service.StepInfo{Idx: 1, Dir: dir, From: board, To: moved, Success: true},
				}, nil
			},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.MoveResult
				parseResponse(t, w, &resp)
				if !resp.Success || resp.GameState.Board != moved {
					t.Errorf("Unexpected result %+v", resp)
				}
			},
		},
		{
			name: "blocked move",
			body: map[string]interface{}{"direction": "up", "reset": true},
			moveFunc: func(ctx context.Context, id, dir string, reset bool) (*service.MoveResult, error) {
				if !reset {
					t.Error("Expected reset flag to be forwarded")
				}
				return &service.MoveResult{
					GameState:   stateAt(board),
					AttemptedTo: &service.AttemptInfo{Direction: dir, Target: engine.Position{Row: -1}, Reason: "boundary"},
				}, nil
			},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.MoveResult
				parseResponse(t, w, &resp)
				if resp.Success || resp.AttemptedTo == nil || resp.AttemptedTo.Reason != "boundary" {
					t.Errorf("Expected boundary refusal, got %+v", resp)
				}
			},
		},
		{
			name:           "invalid body",
			rawBody:        "{not json",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown session",
			body: map[string]interface{}{"direction": "up"},
			moveFunc: func(ctx context.Context, id, dir string, reset bool) (*service.MoveResult, error) {
				return nil, notFound("session")
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := setupTestServer(t, &MockPuzzleService{MoveFunc: tt.moveFunc})

			req := makeRequest("POST", "/api/sessions/ab12/move", tt.body)
			if tt.rawBody != "" {
				req = httptest.NewRequest("POST", "/api/sessions/ab12/move", strings.NewReader(tt.rawBody))
			}
			w := httptest.NewRecorder()
			server.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.validate != nil {
				tt.validate(t, w)
			}
		})
	}
}

func TestBulkMove(t *testing.T) {
	var gotMoves []string
	mock := &MockPuzzleService{
		BulkMoveFunc: func(ctx context.Context, id string, moves []string, reset bool) (*service.BulkMoveResult, error) {
			gotMoves = moves
			return &service.BulkMoveResult{
				MovesExecuted:  1,
				RequestedMoves: len(moves),
				StopReasonCode: "occupied",
				StoppedOnMove:  2,
				GameState:      newState(),
				StartBoard:     engine.DefaultPuzzleState(),
				EndBoard:       engine.DefaultPuzzleState(),
			}, nil
		},
	}
	server := setupTestServer(t, mock)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/bulk-move", map[string]interface{}{
		"moves": []string{"right", "right"},
	}))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if strings.Join(gotMoves, ",") != "right,right" {
		t.Errorf("Moves not forwarded: %v", gotMoves)
	}

	var resp service.BulkMoveResult
	parseResponse(t, w, &resp)
	if resp.MovesExecuted != 1 || resp.StopReasonCode != "occupied" || resp.StoppedOnMove != 2 {
		t.Errorf("Unexpected result %+v", resp)
	}

	t.Run("empty moves", func(t *testing.T) {
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/bulk-move", map[string]interface{}{"moves": []string{}}))
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestResetAndHistory(t *testing.T) {
	var gotOpts service.HistoryOptions
	mock := &MockPuzzleService{
		ResetFunc: func(ctx context.Context, id string) (*engine.GameState, error) {
			return newState(), nil
		},
		GetMoveHistoryFunc: func(ctx context.Context, id string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
			gotOpts = opts
			return &service.HistoryResponse{Page: opts.Page, PageSize: opts.Limit}, nil
		},
	}
	server := setupTestServer(t, mock)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/reset", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var resetResp struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}
	parseResponse(t, w, &resetResp)
	if resetResp.State.Board != engine.DefaultPuzzleState() {
		t.Errorf("Unexpected board %s", resetResp.State.Board)
	}

	tests := []struct {
		query string
		want  service.HistoryOptions
	}{
		{"", service.HistoryOptions{Page: 1, Limit: 20, Order: "desc"}},
		{"?page=3&limit=5&order=asc", service.HistoryOptions{Page: 3, Limit: 5, Order: "asc"}},
		{"?page=-1&limit=x&order=sideways", service.HistoryOptions{Page: 1, Limit: 20, Order: "desc"}},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("GET", "/api/sessions/ab12/history"+tt.query, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		if gotOpts != tt.want {
			t.Errorf("query %q: options = %+v, want %+v", tt.query, gotOpts, tt.want)
		}
	}
}

// Solver Tests

func TestSolve(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		body      interface{}
		wantApply bool
	}{
		{"no body", "/api/sessions/ab12/solve", nil, false},
		{"apply in body", "/api/sessions/ab12/solve", map[string]bool{"apply": true}, true},
		{"apply in query", "/api/sessions/ab12/solve?apply=true", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotApply bool
			mock := &MockPuzzleService{
				SolveFunc: func(ctx context.Context, id string, apply bool) (*service.SolveResult, error) {
					gotApply = apply
					return &service.SolveResult{Found: true, Start: engine.DefaultPuzzleState(), Length: 2, Moves: []string{"right", "down"}, Applied: apply, GameState: newState()}, nil
				},
			}
			server := setupTestServer(t, mock)

			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest("POST", tt.path, tt.body))
			if w.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d", w.Code)
			}
			if gotApply != tt.wantApply {
				t.Errorf("apply = %t, want %t", gotApply, tt.wantApply)
			}

			var resp service.SolveResult
			parseResponse(t, w, &resp)
			if !resp.Found || resp.Length != 2 {
				t.Errorf("Unexpected result %+v", resp)
			}
		})
	}
}

func TestHint(t *testing.T) {
	mock := &MockPuzzleService{
		HintFunc: func(ctx context.Context, id string) (*service.HintResult, error) {
			if id == "gone" {
				return nil, notFound("session")
			}
			return &service.HintResult{Found: true, Direction: "right", RemainingMoves: 24}, nil
		},
	}
	server := setupTestServer(t, mock)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/sessions/ab12/hint", nil))
	var hint service.HintResult
	parseResponse(t, w, &hint)
	if hint.Direction != "right" || hint.RemainingMoves != 24 {
		t.Errorf("Unexpected hint %+v", hint)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/sessions/gone/hint", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestSolveBoard(t *testing.T) {
	var got []engine.Position
	mock := &MockPuzzleService{
		SolveBoardFunc: func(ctx context.Context, positions []engine.Position) (*service.SolveResult, error) {
			got = positions
			if _, err := engine.NewPuzzleState(positions...); err != nil {
				return nil, err
			}
			board, _ := engine.NewPuzzleState(positions...)
			return &service.SolveResult{Found: true, Start: board}, nil
		},
	}
	server := setupTestServer(t, mock)

	want := engine.DefaultPuzzleState().Positions()
	tests := []struct {
		name   string
		body   interface{}
		status int
	}{
		{"text board", map[string]string{"board": "0,0 2,0 1,1 0,2"}, http.StatusOK},
		{"positions", map[string]interface{}{"positions": want[:]}, http.StatusOK},
		{"bad text", map[string]string{"board": "0,0 x"}, http.StatusBadRequest},
		{"blue on black", map[string]string{"board": "0,0 2,0 1,1 1,1"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = nil
			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest("POST", "/api/solve", tt.body))
			if w.Code != tt.status {
				t.Fatalf("Expected %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
			if tt.status == http.StatusOK && (len(got) != 4 || got[0] != want[0] || got[3] != want[3]) {
				t.Errorf("Positions not forwarded: %v", got)
			}
		})
	}
}

// Configuration Tests

func TestConfigs(t *testing.T) {
	var savedAs string
	mock := &MockPuzzleService{
		ListConfigsFunc: func(ctx context.Context) ([]*service.ConfigInfo, error) {
			return []*service.ConfigInfo{{
				ConfigID:         "classic",
				Name:             "Classic",
				Initial:          engine.DefaultPuzzleState(),
				ShortestSolution: 24,
			}}, nil
		},
		LoadConfigFunc: func(ctx context.Context, name string) (*engine.PuzzleConfig, error) {
			if name != "classic" {
				return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, name)
			}
			return engine.DefaultPuzzleConfig(), nil
		},
		SaveConfigFunc: func(ctx context.Context, name string, cfg *engine.PuzzleConfig) error {
			savedAs = name
			if err := engine.ValidatePuzzleConfig(cfg); err != nil {
				return fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
			}
			return nil
		},
	}
	server := setupTestServer(t, mock)

	t.Run("list", func(t *testing.T) {
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("GET", "/api/configs", nil))
		var configs []*service.ConfigInfo
		parseResponse(t, w, &configs)
		if len(configs) != 1 || configs[0].ShortestSolution != 24 {
			t.Errorf("Unexpected configs %+v", configs)
		}
		if len(configs) == 1 && configs[0].Initial != engine.DefaultPuzzleState() {
			t.Errorf("Expected the classic start board, got %s", configs[0].Initial)
		}
	})

	t.Run("get", func(t *testing.T) {
		for path, status := range map[string]int{
			"/api/configs/classic":      http.StatusOK,
			"/api/configs/classic.json": http.StatusOK,
			"/api/configs/missing":      http.StatusNotFound,
		} {
			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest("GET", path, nil))
			if w.Code != status {
				t.Errorf("%s: expected %d, got %d", path, status, w.Code)
			}
		}
	})

	t.Run("create", func(t *testing.T) {
		cfg := engine.DefaultPuzzleConfig()
		cfg.Name = "My Layout"
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("POST", "/api/configs", cfg))
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
		if savedAs != "my_layout" {
			t.Errorf("Expected config ID my_layout, got %q", savedAs)
		}
	})

	t.Run("create with explicit id", func(t *testing.T) {
		body := map[string]interface{}{
			"config_id":   "custom",
			"name":        "Custom",
			"description": "d",
			"pieces":      engine.DefaultPuzzleConfig().Pieces,
			"messages":    map[string]string{"welcome": "hi", "solved": "done"},
		}
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("POST", "/api/configs", body))
		if w.Code != http.StatusCreated || savedAs != "custom" {
			t.Errorf("Expected 201 saved as custom, got %d %q", w.Code, savedAs)
		}
	})

	t.Run("create invalid", func(t *testing.T) {
		cfg := engine.DefaultPuzzleConfig()
		cfg.Pieces.BlackShoe = cfg.Pieces.BlueShoe
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("POST", "/api/configs", cfg))
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("create without name", func(t *testing.T) {
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("POST", "/api/configs", map[string]string{"description": "x"}))
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestHealth(t *testing.T) {
	server := setupTestServer(t, &MockPuzzleService{})
	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("Unexpected health response %d %s", w.Code, w.Body.String())
	}
}

func TestWebSocket(t *testing.T) {
	mock := &MockPuzzleService{
		GetSessionFunc: func(ctx context.Context, id string) (*service.SessionInfo, error) {
			if id != "ab12" {
				return nil, notFound("session")
			}
			return &service.SessionInfo{ID: id}, nil
		},
	}
	server := setupTestServer(t, mock)

	t.Run("missing session parameter", func(t *testing.T) {
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("GET", "/ws", nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("GET", "/ws?session=zz99", nil))
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})

	t.Run("disabled hub", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewServer(mock, nil).ServeHTTP(w, makeRequest("GET", "/ws?session=ab12", nil))
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503, got %d", w.Code)
		}
	})
}

// TestEndToEnd drives the real service stack through HTTP and watches the
// WebSocket broadcast of an applied solution.
func TestEndToEnd(t *testing.T) {
	configs, err := config.NewManager("../configs")
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}
	svc := service.NewPuzzleService(session.NewManager(), configs)
	hub := websocket.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	ts := httptest.NewServer(NewServer(svc, hub))
	defer ts.Close()

	post := func(path string, body interface{}, target interface{}) int {
		t.Helper()
		data, _ := json.Marshal(body)
		resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(data))
		if err != nil {
			t.Fatalf("POST %s: %v", path, err)
		}
		defer resp.Body.Close()
		if target != nil {
			if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
				t.Fatalf("POST %s: decoding: %v", path, err)
			}
		}
		return resp.StatusCode
	}

	var info service.SessionInfo
	if code := post("/api/sessions", map[string]string{"config_id": "near_goal"}, &info); code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", code)
	}

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?session=" + info.ID
	conn, _, err := gorillaws.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to dial WebSocket: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(time.Second)
	for hub.ClientCount(info.ID) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	var solved service.SolveResult
	if code := post("/api/sessions/"+info.ID+"/solve", map[string]bool{"apply": true}, &solved); code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	if !solved.Found || strings.Join(solved.Moves, ",") != "right,down" || !solved.Applied {
		t.Fatalf("Unexpected solve result %+v", solved)
	}
	if !solved.GameState.Solved {
		t.Error("Expected the session to be solved after applying")
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg websocket.Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("Failed to read broadcast: %v", err)
	}
	if msg.Event != websocket.EventStateUpdate || msg.GameState == nil || !msg.GameState.Solved {
		t.Errorf("Unexpected broadcast %+v", msg)
	}

	var unsolvable service.SolveResult
	if code := post("/api/solve", map[string]string{"board": "0,0 1,0 0,1 0,0"}, &unsolvable); code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	if unsolvable.Found || unsolvable.Trace != "No solution found" {
		t.Errorf("Expected no solution, got %+v", unsolvable)
	}
}
