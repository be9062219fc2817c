// Package api provides the HTTP REST API for Mission Control.
//
// The api package implements:
//   - RESTful endpoints for rover command dispatch
//   - Session management endpoints
//   - Configuration listing, retrieval, and creation
//   - WebSocket upgrade handling with state broadcast
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session (optional config_id)
//   - GET /api/sessions - List all sessions (sort/order/limit query params)
//   - GET /api/sessions/fleet - Multi-session fleet overview
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Mission Operations:
//   - GET /api/sessions/{id}/state - Current mission state
//   - GET /api/sessions/{id}/report - Rover position report: "(x, y, H)"
//     with a " LOST" suffix once contact is lost
//   - POST /api/sessions/{id}/dispatch - Apply one command character
//   - POST /api/sessions/{id}/sequence - Apply a command string
//   - POST /api/sessions/{id}/reset - Reset rover to mission start
//   - GET /api/sessions/{id}/history - Command history with pagination
//
// Configuration:
//   - GET /api/configs - List available mission configurations
//   - GET /api/configs/{name} - Get a configuration
//   - POST /api/configs - Save a new configuration
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Commands are sent as POST with a
// JSON body:
//
//	{
//	  "command": "F",        // dispatch: exactly one of F, L, R
//	  "commands": "LFRFF",   // sequence: any mix of F, L, R
//	  "reset": true|false    // optional reset before applying
//	}
//
// A sequence containing an unsupported character is rejected as a whole
// with HTTP 400 and the rover does not move.
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
