// Package websocket pushes board updates to browsers watching a puzzle session.
//
// A single Hub goroutine owns the registry of connected clients, keyed by
// session ID. Clients connect with ?session=<id> and only listen; every
// successful move, bulk move, reset or applied solution is broadcast to the
// clients of that session as JSON:
//
//	{"session_id": "a3f9", "event": "state_update", "game_state": {...}}
//	{"session_id": "a3f9", "event": "solution", "data": {...}}
//
// Broadcasting never blocks the caller. Messages queue in a buffered channel
// and are dropped with a log line when the hub falls behind; a client whose
// own send buffer is full is disconnected.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
// Cancelling ctx stops the hub and closes every connection.
package websocket
