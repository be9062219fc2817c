// Package session provides session management for rover mission control.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management and expiry cleanup
//   - Pluggable persistence (JSON files or SQLite)
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each session owns its own rover engine instance and metadata like creation
// time and last access time.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. The manager ensures
// IDs are unique and generates them from cryptographic randomness. Lookups
// are case-insensitive.
//
// Persistence:
//
// SessionPersistence abstracts the storage backend. FilePersistence writes
// one JSON file per session; SQLitePersistence stores the same serialized
// form as rows in a SQLite database. The server selects a backend at
// startup and the manager auto-saves sessions after every state change.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sessionID)
//	sessions := manager.List()
//
// Concurrency:
//
// The session manager is thread-safe. Multiple goroutines can safely
// create, retrieve, and modify different sessions simultaneously.
package session
