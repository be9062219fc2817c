// Package engine provides the core simulation logic for the rover mission.
//
// The engine package implements:
//   - Pure state transitions for a rover on a bounded grid
//   - Rotation and forward-movement semantics with boundary detection
//   - The absorbing "lost" terminal state
//   - Command string decoding and operator report formatting
//   - Mission configuration loading and validation
//
// Core Types:
//
// RoverState is an immutable value holding position, heading, and the lost
// flag. GridBounds defines the inclusive rectangle of valid coordinates.
// Step and Run are the pure transition functions; the Engine interface,
// implemented by RoverEngine, wraps them with a command log for the session
// layer. MissionConfig defines the grid and deployment loaded from JSON.
//
// Usage:
//
//	grid := engine.GridBounds{EdgeX: 4, EdgeY: 8}
//	rover := engine.RoverState{X: 2, Y: 3, Heading: engine.East}
//
//	actions, err := engine.DecodeCommands("LFRFF")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	final := engine.Run(grid, rover, actions)
//	fmt.Println(engine.FormatReport(final)) // "(4, 4, E)"
//
// Simulation Rules:
//
// The rover moves one cell per Forward command in the direction it faces and
// rotates 90 degrees in place for RotateLeft/RotateRight. A forward move
// that would leave the grid marks the rover lost: its position and heading
// freeze at the last in-bounds values and every later command is ignored.
// Going out of bounds is a modeled outcome, not an error - Step and Run
// never fail for valid inputs.
package engine
