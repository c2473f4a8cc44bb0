package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/mcp-training/shoepuzzle/game/engine"
	"github.com/wricardo/mcp-training/shoepuzzle/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Shoe Block Puzzle",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Shoe Block Puzzle - MCP Interface

This is a thin client that proxies all requests to the REST API server.

OBJECTIVE:
Push the block (#) around the 3x3 board until the red shoe (r) and the blue shoe (b) share a cell.

AVAILABLE TOOLS:
- game_state: Get the current board
- move: Single move (up/down/left/right) - requires intent explanation
- bulk_move: Multiple moves at once - requires intent explanation
- reset_game: Reset to the initial board
- move_history: View past moves
- create_session: Create new puzzle session
- get_session: Get session details
- list_sessions: List all active sessions
- list_configs: List available layouts with their shortest solution
- game_instructions: Get the full rules
- solve: Compute a shortest solution, optionally playing it
- hint: Get the next move of a shortest solution
- describe_cell: List the pieces stacked on one cell

NOTE: The 'intent' parameter on move/bulk_move tools serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new puzzle session with optional layout selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the layout to use, see list_configs (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active puzzle sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Play
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board, legal moves and status",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move the block in a direction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to move the block",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before moving",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: "Execute multiple moves in sequence, stopping at the first refused move",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"moves": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": []string{"up", "down", "left", "right"},
					},
					"description": fmt.Sprintf("Array of moves (at most %d)", engine.MaxBulkMoves),
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence of moves (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before moving",
				},
			},
			Required: []string{"session_id", "moves"},
		},
	}, c.handleBulkMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the board to its initial layout",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available layouts",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the complete rules of the puzzle",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	// Solver
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve",
		Description: "Compute a shortest solution from the current board. With apply, the solution is played on the session.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"apply": map[string]interface{}{
					"type":        "boolean",
					"description": "Play the solution on the session",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleSolve)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "hint",
		Description: "Get the next move of a shortest solution from the current board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleHint)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "List the pieces stacked on a cell of the board. Useful because several pieces can share one cell.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row of the cell (0-based, 0 is the top)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column of the cell (0-based, 0 is the left)",
				},
			},
			Required: []string{"session_id", "row", "col"},
		},
	}, c.handleDescribeCell)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// arguments returns the tool arguments, empty when the call carried none
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		return args
	}
	return map[string]interface{}{}
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n", session.ID, session.ConfigName)
	if session.GameState != nil {
		result += "\n" + formatGameState(session.GameState)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		status := ""
		if s.GameState != nil && s.GameState.Solved {
			status = " solved"
		}
		result += fmt.Sprintf("- %s (Config: %s, Created: %s)%s\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"), status)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)
	reset, _ := args["reset"].(bool)

	// intent is for the caller's benefit only

	body := map[string]interface{}{
		"direction": direction,
		"reset":     reset,
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	movesRaw, _ := args["moves"].([]interface{})
	reset, _ := args["reset"].(bool)

	moves := make([]string, 0, len(movesRaw))
	for _, m := range movesRaw {
		if move, ok := m.(string); ok {
			moves = append(moves, move)
		}
	}
	if len(moves) == 0 {
		return mcp.NewToolResultError("moves must contain at least one direction"), nil
	}

	body := map[string]interface{}{
		"moves": moves,
		"reset": reset,
	}

	var result service.BulkMoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/bulk-move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBulkMoveResult(sessionID, &result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	params := url.Values{}
	if page, ok := args["page"].(float64); ok {
		params.Set("page", fmt.Sprint(int(page)))
	}
	if limit, ok := args["limit"].(float64); ok {
		params.Set("limit", fmt.Sprint(int(limit)))
	}
	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatHistory(&history)

	// The current segment comes from the live state; history alone is still useful without it
	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err == nil {
		result += "\n" + formatCurrentSegment(session.GameState)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, cfg := range configs {
		shortest := "unsolvable"
		if cfg.ShortestSolution >= 0 {
			shortest = fmt.Sprintf("%d moves", cfg.ShortestSolution)
		}
		fmt.Fprintf(&b, "• %s (config_id: %s)\n  %s\n  Start: %s, Shortest solution: %s\n\n",
			cfg.Name, cfg.ConfigID, cfg.Description, cfg.Initial, shortest)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Shoe Block Puzzle - Complete Instructions

OBJECTIVE:
Bring the red shoe and the blue shoe onto the same cell. Only the block can be moved.

BOARD LEGEND:
• # block
• r red shoe
• b blue shoe
• k black shoe
• . empty cell
Several pieces can share a cell; they are printed together, e.g. "#k" is the block on the black shoe.
Coordinates are (row,col) with (0,0) at the top left. A board is written as
[(block),(red),(blue),(black)], e.g. [(0,0),(2,0),(1,1),(0,2)].

MOVEMENT RULES:
• up: only into an empty cell. Carries the black shoe if it is under the block, and the red shoe
  only when the red and black shoes are both under the block.
• left: only into an empty cell. Carries the red and blue shoes, never the black shoe.
• right: into an empty cell, or onto the black shoe unless the block stands on the blue shoe.
  Carries every shoe under the block.
• down: into an empty cell, or onto the blue shoe, or onto the red shoe unless the block stands on
  the blue shoe. Never possible while the block stands on the black shoe. Carries every shoe under
  the block.
• The block never leaves the 3x3 board.

STRATEGY TIPS:
• Check the legal moves listed with each state before moving.
• Use describe_cell when you are unsure what is stacked on a cell.
• Use hint for the next move of a shortest solution, or solve to see the whole path.
• Some layouts cannot be solved at all; list_configs shows which.

MOVEMENT COMMANDS:
• move: one move with an intent explanation
• bulk_move: several moves at once (stops at the first refused move)
• reset_game: back to the initial layout (history is kept)

Good luck!`

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleSolve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	apply, _ := args["apply"].(bool)

	var result service.SolveResult
	body := map[string]interface{}{"apply": apply}
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/solve"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSolveResult(&result)), nil
}

func (c *Client) handleHint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var hint service.HintResult
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/hint"), nil, &hint); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(hint.Message), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	row, rowOK := args["row"].(float64)
	col, colOK := args["col"].(float64)
	if !rowOK || !colOK {
		return mcp.NewToolResultError("row and col are required integers"), nil
	}

	pos := engine.Position{Row: int(row), Col: int(col)}
	if !pos.OnBoard() {
		return mcp.NewToolResultError(fmt.Sprintf("Cell %s is out of bounds. The board is %dx%d (0-%d for row and col)",
			pos, engine.BoardSize, engine.BoardSize, engine.BoardSize-1)), nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(describeCell(state.Board, pos)), nil
}

// Formatting helpers

func describeCell(board engine.PuzzleState, pos engine.Position) string {
	pieces := engine.PiecesAt(board, pos)
	if len(pieces) == 0 {
		return fmt.Sprintf("Cell %s is empty.", pos)
	}

	names := make([]string, 0, len(pieces))
	for _, p := range pieces {
		names = append(names, fmt.Sprintf("%s (%s)", p, engine.PieceSymbol(p)))
	}
	result := fmt.Sprintf("Cell %s holds: %s", pos, strings.Join(names, ", "))
	if board.Position(engine.Block) == pos {
		result += fmt.Sprintf("\nThe block is here; legal moves: %s", formatMoves(board.LegalMoves().Strings()))
	}
	return result
}

func formatMoves(moves []string) string {
	if len(moves) == 0 {
		return "none"
	}
	return strings.Join(moves, ", ")
}

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName, session.CreatedAt.Format(time.RFC3339), formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "Game state unavailable"
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Board: %s | Moves: %d\n\n", state.Board, state.CurrentMovesCount)
	for _, line := range engine.RenderBoard(state.Board) {
		result.WriteString(line)
		result.WriteString("\n")
	}
	fmt.Fprintf(&result, "\nLegal moves: %s\n", formatMoves(state.LegalMoves.Strings()))

	if state.Solved {
		result.WriteString("\n🎉 SOLVED! The red and blue shoes are together.\n")
	} else {
		fmt.Fprintf(&result, "Red shoe is %d cells from the blue shoe\n", engine.ShoeDistance(state.Board))
	}
	if state.Message != "" {
		fmt.Fprintf(&result, "\nMessage: %s", state.Message)
	}

	return result.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Success {
		b.WriteString("✓ Move successful\n")
	} else {
		b.WriteString("✗ Move failed\n")
	}

	if s := result.Step; s != nil {
		fmt.Fprintf(&b, "Step: %s %s→%s", s.Dir, s.From, s.To)
		if len(s.Carried) > 0 {
			fmt.Fprintf(&b, " carried=%s", strings.Join(s.Carried, ","))
		}
		b.WriteString("\n")
	}
	if a := result.AttemptedTo; a != nil {
		fmt.Fprintf(&b, "Blocked: %s toward %s (%s)", a.Direction, a.Target, a.Reason)
		if len(a.Occupants) > 0 {
			fmt.Fprintf(&b, " occupied by %s", strings.Join(a.Occupants, ","))
		}
		b.WriteString("\n")
	}

	if len(result.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, event := range result.Events {
			fmt.Fprintf(&b, "- %s: %s\n", event.Type, event.Message)
		}
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var b strings.Builder

	requested := result.RequestedMoves
	if requested == 0 {
		requested = result.MovesExecuted
	}

	fmt.Fprintf(&b, "Session: %s\n", sessionID)
	fmt.Fprintf(&b, "Executed %d/%d moves\n", result.MovesExecuted, requested)
	if result.StoppedReason != "" {
		fmt.Fprintf(&b, "Stopped: %s\n", result.StoppedReason)
	}
	if result.Truncated {
		fmt.Fprintf(&b, "Truncated to %d moves\n", result.Limit)
	}
	if a := result.AttemptedTo; a != nil {
		fmt.Fprintf(&b, "Blocked on move %d: %s toward %s (%s)\n", result.StoppedOnMove, a.Direction, a.Target, a.Reason)
	}

	if len(result.Steps) > 0 {
		b.WriteString("\nSteps:\n")
		for _, s := range result.Steps {
			fmt.Fprintf(&b, "%d. %s %s→%s\n", s.Idx, s.Dir, s.From, s.To)
		}
	}

	fmt.Fprintf(&b, "\nStart: %s\nEnd:   %s\n", result.StartBoard, result.EndBoard)
	for _, line := range result.BoardView {
		b.WriteString(line)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Legal moves: %s\n", formatMoves(result.PossibleMoves))

	if result.Solved {
		b.WriteString("\n🎉 SOLVED!\n")
	}
	if result.Message != "" {
		fmt.Fprintf(&b, "Message: %s\n", result.Message)
	}
	return b.String()
}

func formatSolveResult(result *service.SolveResult) string {
	if !result.Found {
		return fmt.Sprintf("%s from %s (%d boards examined)", result.Trace, result.Start, result.Discovered)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Shortest solution: %d moves (%d boards expanded, %d discovered)\n",
		result.Length, result.Expanded, result.Discovered)
	if len(result.Moves) > 0 {
		fmt.Fprintf(&b, "Moves: %s\n", strings.Join(result.Moves, ", "))
	}
	b.WriteString("\n")
	b.WriteString(result.Trace)
	b.WriteString("\n")

	if result.Applied {
		b.WriteString("\nSolution applied to the session.\n\n")
		b.WriteString(formatGameState(result.GameState))
	}
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (Page %d/%d) · Total (cumulative): %d\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for _, move := range history.Moves {
		status := "✓"
		if !move.Success {
			status = "✗"
		}
		fmt.Fprintf(&b, "%d. %s %s %s→%s\n", move.MoveNumber, move.Action, status, move.FromBoard, move.ToBoard)
	}

	return b.String()
}

func formatCurrentSegment(state *engine.GameState) string {
	if state == nil {
		return "Current Segment: unavailable"
	}
	header := fmt.Sprintf("Current Move Segment · Moves: %d\n\n", state.CurrentMovesCount)
	if len(state.CurrentMoves) == 0 {
		return header + "(no moves in current segment)"
	}

	var b strings.Builder
	b.WriteString(header)
	for i, move := range state.CurrentMoves {
		status := "✓"
		if !move.Success {
			status = "✗"
		}
		fmt.Fprintf(&b, "%d. %s %s %s\n", i+1, move.Action, status, move.ToBoard)
	}
	return b.String()
}
