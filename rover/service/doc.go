// Package service provides the business logic layer for rover mission control.
//
// The service package implements:
//   - Multi-session mission management
//   - Command decoding and dispatch orchestration
//   - Configuration management and loading
//   - Command history tracking with pagination
//
// Core Interfaces:
//
// MissionService is the main service interface providing high-level mission
// operations. SessionManager handles session creation, retrieval, and
// lifecycle. ConfigManager manages mission configuration loading and
// validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP)
// and the rover engine, providing session isolation, command-string
// decoding, and business logic orchestration. Each session maintains its own
// engine instance with independent state.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	missionService := service.NewMissionService(sessionMgr, configMgr)
//
//	// Create a new session
//	info, err := missionService.CreateSession(ctx, "plateau")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Dispatch a command sequence
//	result, err := missionService.DispatchSequence(ctx, info.ID, "LFRFF", false)
//
// Command Semantics:
//
// Command strings are decoded fail-fast before anything runs: one
// unsupported character rejects the whole call and the rover never moves.
// Once the rover is lost, remaining commands in a sequence are discarded and
// later dispatches are refused - the rover's last in-bounds state is frozen.
package service
