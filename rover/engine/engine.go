package engine

import (
	"fmt"
	"time"
)

// MissionState bundles everything a running mission tracks: the current
// rover value, the operator message, and the command log. The embedded
// RoverState is replaced wholesale on every transition - it is never
// mutated in place.
type MissionState struct {
	Rover         RoverState        `json:"rover"`
	Message       string            `json:"message"`
	ConfigName    string            `json:"config_name"`
	CommandLog    []CommandLogEntry `json:"command_log"`
	TotalCommands int               `json:"total_commands"`

	// CurrentLog tracks only the commands since the last reset. It mirrors
	// CommandLog entries but gets cleared on reset while CommandLog remains
	// cumulative.
	CurrentLog      []CommandLogEntry `json:"current_log"`
	CurrentCommands int               `json:"current_commands"`
}

// Engine provides the main interface for mission operations
type Engine interface {
	// Mission state management
	GetState() *MissionState
	SetState(state *MissionState) error
	Reset() *MissionState
	IsLost() bool
	GetRover() RoverState
	Report() string

	// Command operations
	Dispatch(action Action) bool
	ExecuteSequence(actions []Action) []bool

	// Configuration
	GetConfig() *MissionConfig
	SetConfig(config *MissionConfig) error

	// History
	GetCommandLog() []CommandLogEntry
	GetLastCommand() *CommandLogEntry
}

// RoverEngine implements the Engine interface. It wraps the pure Step/Run
// core with a command log and operator messages for the session layer.
type RoverEngine struct {
	state  *MissionState
	config *MissionConfig
}

// NewEngine creates a new rover engine for the provided mission
func NewEngine(config *MissionConfig) (*RoverEngine, error) {
	if err := ValidateMissionConfig(config); err != nil {
		return nil, err
	}

	return &RoverEngine{
		config: config,
		state:  initMissionState(config),
	}, nil
}

// NewEngineWithDefaults creates a new rover engine on the default plateau
func NewEngineWithDefaults() *RoverEngine {
	config := DefaultMissionConfig()
	return &RoverEngine{
		config: config,
		state:  initMissionState(config),
	}
}

func initMissionState(config *MissionConfig) *MissionState {
	return &MissionState{
		Rover:           InitRoverStateFromConfig(config),
		Message:         config.Messages.Deployed,
		ConfigName:      config.Name,
		CommandLog:      []CommandLogEntry{},
		TotalCommands:   0,
		CurrentLog:      []CommandLogEntry{},
		CurrentCommands: 0,
	}
}

// GetState returns the current mission state
func (e *RoverEngine) GetState() *MissionState {
	return e.state
}

// SetState sets the mission state (used for persistence loading)
func (e *RoverEngine) SetState(state *MissionState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if !state.Rover.Heading.Valid() {
		return fmt.Errorf("invalid heading %q in restored state", state.Rover.Heading)
	}
	e.state = state
	return nil
}

// Reset returns the rover to the mission's start state. The cumulative
// command log survives a reset; only the current segment is cleared.
func (e *RoverEngine) Reset() *MissionState {
	prevLog := e.state.CommandLog
	prevTotal := e.state.TotalCommands

	e.state = initMissionState(e.config)

	e.state.CommandLog = prevLog
	e.state.TotalCommands = prevTotal
	e.state.CurrentLog = []CommandLogEntry{}
	e.state.CurrentCommands = 0

	return e.state
}

// IsLost returns whether the rover has left the grid
func (e *RoverEngine) IsLost() bool {
	return e.state.Rover.Lost
}

// GetRover returns the current rover state value
func (e *RoverEngine) GetRover() RoverState {
	return e.state.Rover
}

// Report returns the rover's current operator report
func (e *RoverEngine) Report() string {
	return FormatReport(e.state.Rover)
}

// Dispatch applies a single action to the rover. It returns false when the
// rover is already lost: the state stays frozen and nothing is logged, per
// the absorbing-lost invariant.
func (e *RoverEngine) Dispatch(action Action) bool {
	if e.state.Rover.Lost {
		return false
	}

	from := e.state.Rover
	next := Step(e.config.Bounds(), from, action)
	e.state.Rover = next
	e.logCommand(action, from, next)

	if next.Lost {
		e.state.Message = fmt.Sprintf(e.config.Messages.RoverLost, next.X, next.Y, next.Heading)
	} else if e.config.Messages.Nominal != "" {
		e.state.Message = fmt.Sprintf(e.config.Messages.Nominal, next.X, next.Y, next.Heading)
	}

	return true
}

// ExecuteSequence applies actions in order, returning the applied status for
// each. It stops as soon as the rover is lost; remaining actions are never
// evaluated.
func (e *RoverEngine) ExecuteSequence(actions []Action) []bool {
	results := make([]bool, 0, len(actions))

	for _, action := range actions {
		if e.IsLost() {
			break
		}
		results = append(results, e.Dispatch(action))
	}

	return results
}

// GetConfig returns the current mission configuration
func (e *RoverEngine) GetConfig() *MissionConfig {
	return e.config
}

// SetConfig sets a new mission configuration and restarts the mission
func (e *RoverEngine) SetConfig(config *MissionConfig) error {
	if err := ValidateMissionConfig(config); err != nil {
		return err
	}

	e.config = config
	e.state = initMissionState(config)
	return nil
}

// GetCommandLog returns the cumulative command log
func (e *RoverEngine) GetCommandLog() []CommandLogEntry {
	return e.state.CommandLog
}

// GetLastCommand returns the last dispatched command, or nil if none
func (e *RoverEngine) GetLastCommand() *CommandLogEntry {
	if len(e.state.CommandLog) == 0 {
		return nil
	}
	return &e.state.CommandLog[len(e.state.CommandLog)-1]
}

// logCommand appends a command to the cumulative log and the current segment
func (e *RoverEngine) logCommand(action Action, from, to RoverState) {
	entry := CommandLogEntry{
		Action:    action,
		From:      from,
		To:        to,
		Applied:   true,
		Timestamp: time.Now().Unix(),
		Number:    e.state.TotalCommands + 1,
	}
	e.state.CommandLog = append(e.state.CommandLog, entry)
	e.state.TotalCommands++

	e.state.CurrentLog = append(e.state.CurrentLog, entry)
	e.state.CurrentCommands++
}
