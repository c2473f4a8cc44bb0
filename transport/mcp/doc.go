// Package mcp exposes the shoe block puzzle to AI agents over the Model
// Context Protocol.
//
// Client is a thin proxy: every tool call is translated into a request to
// the REST API and the JSON answer is rendered as plain text for the agent.
// The same Client serves both the /mcp HTTP endpoint of the server command
// and the stdio transport of the mcp command.
//
// MCP Tools:
//   - create_session, list_sessions, get_session: session management
//   - game_state: current board with its rendering and legal moves
//   - move, bulk_move: play, with an intent parameter for the agent's reasoning
//   - reset_game, move_history: start over and review past moves
//   - list_configs: layouts with their shortest solution length
//   - game_instructions: the movement rules
//   - solve, hint: shortest solution from the current board
//   - describe_cell: the pieces stacked on one cell
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		log.Fatal(err)
//	}
//
// Tool failures, including API errors, are returned as error results rather
// than Go errors so the agent can read and react to them.
package mcp
