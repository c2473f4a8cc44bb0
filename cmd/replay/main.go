// Command replay plays a puzzle session against a running server, one move
// per request, so the moves show up on WebSocket viewers as they happen.
//
// With the "hint" strategy it asks the server for the next move after every
// step; with "plan" it fetches a whole solution once and replays it.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/shoepuzzle/game/engine"
	"github.com/wricardo/mcp-training/shoepuzzle/game/service"
)

// ErrNoSolution is returned when the board cannot be solved from where it is
var ErrNoSolution = errors.New("no solution from the current board")

// Client talks to the REST API on behalf of one session
type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// do sends a JSON request and decodes a JSON response into out
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s %s failed: %s - %s", method, path, resp.Status, strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s response: %w", path, err)
	}
	return nil
}

func (c *Client) sessionPath(suffix string) string {
	return "/api/sessions/" + c.sessionID + suffix
}

func (c *Client) CreateSession(ctx context.Context, configID string) (*engine.GameState, error) {
	req := map[string]string{}
	if configID != "" {
		req["config_id"] = configID
	}

	var info service.SessionInfo
	if err := c.do(ctx, http.MethodPost, "/api/sessions", req, &info); err != nil {
		return nil, err
	}
	c.sessionID = info.ID
	return info.GameState, nil
}

func (c *Client) GetState(ctx context.Context) (*engine.GameState, error) {
	var state engine.GameState
	if err := c.do(ctx, http.MethodGet, c.sessionPath("/state"), nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *Client) Reset(ctx context.Context) (*engine.GameState, error) {
	var resp struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}
	if err := c.do(ctx, http.MethodPost, c.sessionPath("/reset"), nil, &resp); err != nil {
		return nil, err
	}
	return resp.State, nil
}

func (c *Client) Move(ctx context.Context, direction string) (*service.MoveResult, error) {
	var result service.MoveResult
	req := map[string]string{"direction": direction}
	if err := c.do(ctx, http.MethodPost, c.sessionPath("/move"), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Hint(ctx context.Context) (*service.HintResult, error) {
	var hint service.HintResult
	if err := c.do(ctx, http.MethodGet, c.sessionPath("/hint"), nil, &hint); err != nil {
		return nil, err
	}
	return &hint, nil
}

// Solve fetches a shortest solution without playing it
func (c *Client) Solve(ctx context.Context) (*service.SolveResult, error) {
	var result service.SolveResult
	if err := c.do(ctx, http.MethodPost, c.sessionPath("/solve"), map[string]bool{"apply": false}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Player drives a session to the solved board
type Player struct {
	client   *Client
	strategy string
	maxMoves int
	delay    time.Duration
	verbose  bool
}

// Play moves the block until the board is solved. It returns the number of
// moves played.
func (p *Player) Play(ctx context.Context, state *engine.GameState) (int, error) {
	var plan []string
	if p.strategy == "plan" {
		solution, err := p.client.Solve(ctx)
		if err != nil {
			return 0, err
		}
		if !solution.Found {
			return 0, ErrNoSolution
		}
		plan = solution.Moves
		log.Printf("Planned %d moves: %s", len(plan), strings.Join(plan, " "))
	}

	moves := 0
	for !state.Solved {
		if moves >= p.maxMoves {
			return moves, fmt.Errorf("gave up after %d moves", moves)
		}

		var direction string
		if p.strategy == "plan" {
			if moves >= len(plan) {
				return moves, fmt.Errorf("plan exhausted on unsolved board %s", state.Board)
			}
			direction = plan[moves]
		} else {
			hint, err := p.client.Hint(ctx)
			if err != nil {
				return moves, err
			}
			if !hint.Found {
				return moves, ErrNoSolution
			}
			direction = hint.Direction
		}

		result, err := p.client.Move(ctx, direction)
		if err != nil {
			return moves, err
		}
		if !result.Success {
			return moves, fmt.Errorf("move %s refused: %s", direction, result.Message)
		}
		state = result.GameState
		moves++

		if p.verbose {
			log.Printf("%3d. %-5s %s", moves, direction, state.Board)
		}
		if p.delay > 0 {
			select {
			case <-ctx.Done():
				return moves, ctx.Err()
			case <-time.After(p.delay):
			}
		}
	}
	return moves, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "replay",
		Usage: "solve a session move by move through the REST API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "puzzle server URL", Sources: cli.EnvVars("PUZZLE_URL")},
			&cli.StringFlag{Name: "config", Usage: "layout for a new session"},
			&cli.StringFlag{Name: "continue", Usage: "resume an existing session by ID"},
			&cli.StringFlag{Name: "session-file", Value: ".session", Usage: "file remembering the last session ID"},
			&cli.StringFlag{Name: "strategy", Value: "hint", Usage: `"hint" asks before every move, "plan" solves once`},
			&cli.IntFlag{Name: "max-moves", Value: 200, Usage: "maximum moves before giving up"},
			&cli.DurationFlag{Name: "delay", Usage: "pause between moves"},
			&cli.BoolFlag{Name: "verbose", Usage: "log every move"},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	strategy := cmd.String("strategy")
	if strategy != "hint" && strategy != "plan" {
		return fmt.Errorf("unknown strategy %q", strategy)
	}

	log.Printf("Connecting to puzzle server at %s", cmd.String("url"))
	client := NewClient(cmd.String("url"))

	sessionFile := cmd.String("session-file")
	state, err := openSession(ctx, client, cmd.String("continue"), cmd.String("config"), sessionFile)
	if err != nil {
		return err
	}

	// Every run starts from the initial layout
	if !state.Board.Equal(state.Initial) || state.Solved {
		if state, err = client.Reset(ctx); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}
	log.Printf("Session %s starts at %s", client.sessionID, state.Board)

	player := &Player{
		client:   client,
		strategy: strategy,
		maxMoves: int(cmd.Int("max-moves")),
		delay:    cmd.Duration("delay"),
		verbose:  cmd.Bool("verbose"),
	}
	moves, err := player.Play(ctx, state)
	if err != nil {
		return fmt.Errorf("session %s: %w", client.sessionID, err)
	}

	log.Printf("🎉 Solved session %s in %d moves", client.sessionID, moves)
	return nil
}

// openSession resumes the given or remembered session, or creates a new one
// and remembers it.
func openSession(ctx context.Context, client *Client, resume, configID, sessionFile string) (*engine.GameState, error) {
	if resume == "" && sessionFile != "" {
		if data, err := os.ReadFile(sessionFile); err == nil {
			resume = string(bytes.TrimSpace(data))
		}
	}

	if resume != "" {
		client.sessionID = resume
		state, err := client.GetState(ctx)
		if err == nil {
			log.Printf("🔄 Resuming session: %s", resume)
			return state, nil
		}
		log.Printf("⚠️  Failed to resume session %s (may be deleted): %v", resume, err)
	}

	state, err := client.CreateSession(ctx, configID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	log.Printf("✨ Session created: %s", client.sessionID)

	if sessionFile != "" {
		if err := os.WriteFile(sessionFile, []byte(client.sessionID), 0644); err != nil {
			log.Printf("Warning: Failed to save session ID: %v", err)
		}
	}
	return state, nil
}
