// Package websocket provides WebSocket transport for Mission Control.
//
// The websocket package implements:
//   - Real-time mission state streaming
//   - Session-aware WebSocket connections
//   - Automatic state broadcasting after dispatches and resets
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup.
//
// Message Protocol:
//
// Messages are JSON-encoded with the following structure:
//   - Outgoing: {session_id, mission_state, report, event} after each
//     state change
//   - Incoming messages are currently ignored; commands go through the
//     REST API
//
// Session Integration:
//
// WebSocket connections are session-aware. Clients specify their session ID
// via query parameter (?session=abc1) when establishing the connection.
// State updates are broadcast only to clients connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// after a dispatch
//	hub.BroadcastToSession(sessionID, state, report)
//
// Concurrency:
//
// The hub and client handlers are designed for concurrent operation.
// Multiple clients can connect, disconnect, and receive updates
// simultaneously without blocking each other.
package websocket
