// Package session keeps the play sessions of the puzzle server.
//
// Manager stores sessions in memory under case-insensitive 4-character IDs
// and is safe for concurrent use. With a SessionPersistence attached, every
// change is written through and sessions missing from memory are loaded
// lazily, so a restarted server picks up where players left off.
//
// FilePersistence stores one JSON document per session in a directory:
//
//	{
//	  "id": "a3f9",
//	  "config_name": "classic",
//	  "created_at": "...",
//	  "last_accessed_at": "...",
//	  "game_state": { "board": [...], "initial": [...], ... }
//	}
//
// Usage:
//
//	persistence, err := session.NewFilePersistence("sessions", configManager)
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManagerWithPersistence(persistence)
//	if err := manager.LoadPersistedSessions(); err != nil {
//		log.Printf("Warning: %v", err)
//	}
//
//	sess, err := manager.Create("", config)
//
// CleanupExpiredSessions only evicts idle sessions from memory; their files
// remain and are reloaded on the next access.
package session
