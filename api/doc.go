// Package api serves the puzzle over HTTP with a gorilla/mux router.
//
// Endpoints:
//
// Sessions:
//   - POST   /api/sessions            {"config_id": "classic"} creates a session
//   - GET    /api/sessions            ?sort=created|accessed&order=asc|desc&limit=N&config=ID
//   - GET    /api/sessions/{id}
//   - DELETE /api/sessions/{id}
//
// Play:
//   - GET  /api/sessions/{id}/state
//   - POST /api/sessions/{id}/move       {"direction": "up", "reset": false}
//   - POST /api/sessions/{id}/bulk-move  {"moves": ["right", "down"], "reset": false}
//   - POST /api/sessions/{id}/reset
//   - GET  /api/sessions/{id}/history    ?page=1&limit=20&order=desc
//
// Solver:
//   - POST /api/sessions/{id}/solve  {"apply": true} or ?apply=true plays the solution
//   - GET  /api/sessions/{id}/hint
//   - POST /api/solve                {"board": "0,0 2,0 1,1 0,2"} or {"positions": [...]}
//
// Configuration:
//   - GET  /api/configs
//   - POST /api/configs         a PuzzleConfig plus an optional "config_id"
//   - GET  /api/configs/{name}
//
// Misc:
//   - GET /health
//   - GET /ws?session={id}      WebSocket board updates
//
// Boards are encoded as the list of piece positions in the order block,
// red shoe, blue shoe, black shoe:
//
//	[{"row":0,"col":0},{"row":2,"col":0},{"row":1,"col":1},{"row":0,"col":2}]
//
// Errors are returned as {"error": "message"} with 400 for bad input, 404
// for unknown sessions or configs and 500 otherwise.
//
// Every move, bulk move and solve is logged on one compact line:
//
//	[MOVE] session=a3f9 right [(0,0),...]->[(0,1),...] carried= solved=false
//	[BULK] session=a3f9 exec=2/2 stop=none end=[(1,1),...] solved=true
//	[SOLVE] session=a3f9 found=true len=24 expanded=133 discovered=137 applied=false 0.210ms
package api
