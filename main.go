// Command shoepuzzle serves and solves the shoe block puzzle.
//
// It supports three commands:
//  1. "server" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//  3. "solve" – prints a shortest solution for a layout or an arbitrary board
//
// Flags control host/port, config and session directories, debug logging,
// and optional ngrok tunneling for easy external access during development.
// Every flag can also be set from the environment or a .env file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/shoepuzzle/api"
	"github.com/wricardo/mcp-training/shoepuzzle/game/config"
	"github.com/wricardo/mcp-training/shoepuzzle/game/engine"
	"github.com/wricardo/mcp-training/shoepuzzle/game/service"
	"github.com/wricardo/mcp-training/shoepuzzle/game/session"
	"github.com/wricardo/mcp-training/shoepuzzle/game/solver"
	"github.com/wricardo/mcp-training/shoepuzzle/transport/mcp"
	"github.com/wricardo/mcp-training/shoepuzzle/transport/websocket"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Shoe Block Puzzle Server"
)

// settings are the resolved global flags
type settings struct {
	host        string
	port        int
	configDir   string
	sessionsDir string

	ngrok       bool
	ngrokAuth   string
	ngrokDomain string
}

func (s settings) addr() string {
	return net.JoinHostPort(s.host, fmt.Sprint(s.port))
}

func settingsFrom(cmd *cli.Command) settings {
	return settings{
		host:        cmd.String("host"),
		port:        int(cmd.Int("port")),
		configDir:   cmd.String("config-dir"),
		sessionsDir: cmd.String("sessions-dir"),
		ngrok:       cmd.Bool("ngrok"),
		ngrokAuth:   cmd.String("ngrok-auth"),
		ngrokDomain: cmd.String("ngrok-domain"),
	}
}

// main loads .env, then runs the command line until a signal arrives.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

// newApp builds the command tree
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "shoepuzzle",
		Usage:   "bring the red and blue shoes together by pushing the block",
		Version: Version,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "host",
				Value:   "localhost",
				Usage:   "HTTP server host",
				Sources: cli.EnvVars("HOST"),
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing puzzle layouts",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "sessions-dir",
				Value:   "sessions",
				Usage:   "directory where sessions are persisted",
				Sources: cli.EnvVars("SESSIONS_DIR"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "enable ngrok tunnel",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-auth",
				Usage:   "ngrok auth token",
				Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				log.SetFlags(log.LstdFlags | log.Lshortfile)
			} else {
				log.SetFlags(log.LstdFlags)
			}
			return ctx, nil
		},
		Action: serverAction,
		Commands: []*cli.Command{
			{
				Name:    "server",
				Aliases: []string{"http"},
				Usage:   "run the HTTP server with API, WebSocket, and MCP endpoint",
				Action:  serverAction,
			},
			{
				Name:    "mcp",
				Aliases: []string{"stdio-mcp", "mcp-stdio"},
				Usage:   "run an MCP stdio server backed by the HTTP API",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					s := settingsFrom(cmd)
					log.Printf("Starting %s v%s (mode: mcp)", AppName, Version)
					puzzleService, err := initializeServices(ctx, s)
					if err != nil {
						return fmt.Errorf("failed to initialize services: %w", err)
					}
					return runStdioMCPWithInternalServer(ctx, puzzleService, s)
				},
			},
			{
				Name:  "solve",
				Usage: "print a shortest solution",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "layout to solve (default: classic)",
					},
					&cli.StringFlag{
						Name:  "board",
						Usage: `board to solve as "r,c r,c r,c r,c" (block, red, blue, black)`,
					},
					&cli.IntFlag{
						Name:  "max-depth",
						Usage: "give up beyond this many moves (0: no limit)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					board, err := resolveBoard(cmd.String("config-dir"), cmd.String("config"), cmd.String("board"))
					if err != nil {
						return err
					}
					return solveBoard(ctx, cmd.Root().Writer, board, int(cmd.Int("max-depth")))
				},
			},
		},
	}
}

func serverAction(ctx context.Context, cmd *cli.Command) error {
	s := settingsFrom(cmd)
	log.Printf("Starting %s v%s (mode: server)", AppName, Version)

	puzzleService, err := initializeServices(ctx, s)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	return runHTTPServer(ctx, puzzleService, s)
}

// resolveBoard picks the board to solve: an explicit board wins over a
// named layout, which wins over the classic layout.
func resolveBoard(configDir, configName, board string) (engine.PuzzleState, error) {
	if board != "" {
		return engine.ParsePositions(board)
	}
	if configName == "" {
		return engine.DefaultPuzzleState(), nil
	}

	configManager, err := config.NewManager(configDir)
	if err != nil {
		return engine.PuzzleState{}, fmt.Errorf("failed to create config manager: %w", err)
	}
	cfg, err := configManager.LoadConfig(configName)
	if err != nil {
		return engine.PuzzleState{}, err
	}
	return cfg.InitialState()
}

// solveBoard writes the solution trace, one board per line, or a single
// "No solution found" line.
func solveBoard(ctx context.Context, w io.Writer, board engine.PuzzleState, maxDepth int) error {
	res, err := solver.New(solver.WithMaxDepth(maxDepth)).Search(ctx, board)
	if err != nil {
		return err
	}
	log.Printf("[SOLVE] board=%s found=%t expanded=%d discovered=%d %s",
		board, res.Found, res.Expanded, res.Discovered, res.Elapsed)

	goal, ok := res.Node()
	if !ok {
		_, err := fmt.Fprintln(w, "No solution found")
		return err
	}
	_, err = fmt.Fprintln(w, solver.ReconstructPath(goal))
	return err
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled, it also provisions a public tunnel. It returns once ctx is done and
// the servers have shut down.
func runHTTPServer(ctx context.Context, puzzleService service.PuzzleService, s settings) error {
	hub := websocket.NewHub()
	go hub.Run(ctx)

	addr := s.addr()
	apiServer := api.NewServer(puzzleService, hub)
	mcpClient := mcp.NewClient("http://" + addr)

	// Main router combines API and MCP
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", mcpHandler(mcpClient))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	serveErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	if s.ngrok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, s, mainRouter)
		}()
	}

	var err error
	select {
	case <-ctx.Done():
		log.Println("Shutting down...")
	case err = <-serveErr:
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Printf("HTTP server shutdown error: %v", shutdownErr)
	}

	wg.Wait()
	log.Println("Server stopped")
	return err
}

// mcpHandler answers single JSON-RPC messages posted to /mcp
func mcpHandler(client *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := client.GetMCPServer().HandleMessage(r.Context(), body)

		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(responseData)
	}
}

// runNgrokTunnel serves handler through an ngrok tunnel until ctx is done
func runNgrokTunnel(ctx context.Context, s settings, handler http.Handler) {
	if s.ngrokAuth == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if s.ngrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(s.ngrokDomain))
		log.Printf("Using custom ngrok domain: %s", s.ngrokDomain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(s.ngrokAuth))
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}

	ngrokURL := tun.URL()
	log.Printf("🚀 Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
	log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	tunnelServer := &http.Server{Handler: handler}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		tunnelServer.Shutdown(shutdownCtx)
	}()

	if err := tunnelServer.Serve(tun); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("Ngrok server error: %v", err)
	}
	if err := tun.Close(); err != nil {
		log.Printf("Failed to close ngrok tunnel: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// initializeServices wires session/config managers and the puzzle service.
// It also starts background routines, bound to ctx, that prune stale sessions.
func initializeServices(ctx context.Context, s settings) (service.PuzzleService, error) {
	// Config manager first, persistence needs it to restore sessions
	configManager, err := config.NewManager(s.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	persistence, err := session.NewFilePersistence(s.sessionsDir, configManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create session persistence: %w", err)
	}

	sessionManager := session.NewManagerWithPersistence(persistence)
	if err := sessionManager.LoadPersistedSessions(); err != nil {
		log.Printf("Warning: Failed to load persisted sessions: %v", err)
	}
	log.Printf("Loaded %d configs and %d sessions", configManager.Count(), sessionManager.Count())

	puzzleService := service.NewPuzzleService(sessionManager, configManager)

	go sessionCleanupRoutine(ctx, sessionManager, time.Hour, 24*time.Hour)
	go filesystemSyncRoutine(ctx, sessionManager, persistence, 5*time.Second)

	return puzzleService, nil
}

// sessionCleanupRoutine periodically evicts sessions that have not been accessed
// within maxAge. Evicted sessions stay on disk and reload on demand.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, every, maxAge time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(maxAge); removed > 0 {
				log.Printf("Cleaned up %d expired sessions", removed)
			}
		}
	}
}

// filesystemSyncRoutine periodically removes sessions from memory whose
// files were deleted from the sessions directory.
func filesystemSyncRoutine(ctx context.Context, manager *session.Manager, persistence session.SessionPersistence, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if pruned := syncWithFilesystem(manager, persistence); pruned > 0 {
				log.Printf("Filesystem sync: pruned %d orphaned sessions from memory", pruned)
			}
		}
	}
}

func syncWithFilesystem(manager *session.Manager, persistence session.SessionPersistence) int {
	pruned := 0
	for _, sess := range manager.List() {
		if persistence.Exists(sess.ID) {
			continue
		}
		if err := manager.DeleteFromMemory(sess.ID); err == nil {
			pruned++
			log.Printf("Pruned session %s from memory (file deleted)", sess.ID)
		}
	}
	return pruned
}

// runStdioMCPWithInternalServer runs an MCP stdio server.
// It reuses an API already listening on the configured address; otherwise it
// starts an internal HTTP API bound to a random loopback port and targets that.
func runStdioMCPWithInternalServer(ctx context.Context, puzzleService service.PuzzleService, s settings) error {
	externalURL := "http://" + s.addr()
	log.Printf("Checking for external API server at %s...", externalURL)

	baseURL := externalURL
	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/health")
	if err == nil {
		resp.Body.Close()
	}
	if err != nil || resp.StatusCode != http.StatusOK {
		log.Printf("No external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}
		baseURL = "http://" + listener.Addr().String()

		hub := websocket.NewHub()
		go hub.Run(ctx)

		httpServer := &http.Server{Handler: api.NewServer(puzzleService, hub)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()
		defer httpServer.Close()

		log.Println("MCP stdio server ready (using internal HTTP server)")
	} else {
		log.Printf("External API server found at %s, using it for MCP", externalURL)
	}

	mcpClient := mcp.NewClient(baseURL)
	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
