// Package mcp provides the Model Context Protocol interface for Rover
// Mission Control.
//
// The package implements a thin MCP client that proxies every tool call to
// the REST API server, so the MCP surface and the HTTP surface always agree
// on semantics.
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - rover_state: Get the rover's current mission state
//   - dispatch: Dispatch a single command (F/L/R)
//   - dispatch_sequence: Dispatch a command string, e.g. "LFRFF"
//   - reset_rover: Reset the rover to its mission start pose
//   - command_history: Retrieve command history with pagination
//   - mission_report: Get the "(x, y, H)" position report
//   - create_session: Create a new mission session with config selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - list_configs: List available mission configurations
//   - mission_instructions: Get comprehensive mission instructions
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint for remote MCP integration
//
// Session Management:
//
// All rover tools take a session_id parameter. AI agents can manage
// multiple concurrent mission sessions independently.
//
// Usage:
//
//	// Stdio mode
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
//	// HTTP mode: route POST /mcp to GetMCPServer().HandleMessage
package mcp
