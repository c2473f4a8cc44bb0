// Package service provides the business logic layer of the shoe block puzzle server.
//
// The service layer sits between the transports (HTTP, WebSocket, MCP) and the
// puzzle engine and solver. It owns:
//   - session lifecycle (create, get, list, delete)
//   - move execution with per-step traces and refusal diagnostics
//   - paginated move history
//   - shortest-solution search, hints and solution playback
//   - configuration listing, loading and saving
//
// Every returned GameState carries a rendered board_view so clients that only
// read text can follow the game.
//
// Usage:
//
//	svc := service.NewPuzzleService(sessionManager, configManager)
//
//	info, err := svc.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	hint, err := svc.Hint(ctx, info.ID)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(hint.Message)
//
// The service is safe for concurrent use. Operations on sessions take a
// read or write lock depending on whether they change a board.
package service
