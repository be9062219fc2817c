package service

import (
	"time"

	"github.com/roverops/mission-control/rover/engine"
)

// SessionInfo provides information about a mission session
type SessionInfo struct {
	ID             string                `json:"id"`
	ConfigName     string                `json:"config_name"`
	CreatedAt      time.Time             `json:"created_at"`
	LastAccessedAt time.Time             `json:"last_accessed_at"`
	MissionState   *engine.MissionState  `json:"mission_state"`
	MissionConfig  *engine.MissionConfig `json:"mission_config"`
	Report         string                `json:"report"`
}

// DispatchResult contains the result of a single-command dispatch
type DispatchResult struct {
	Applied      bool                 `json:"applied"`
	MissionState *engine.MissionState `json:"mission_state"`
	Report       string               `json:"report"`
	Message      string               `json:"message"`
	Events       []MissionEvent       `json:"events,omitempty"`
	Step         *StepInfo            `json:"step,omitempty"`
}

// SequenceResult contains the result of dispatching a command sequence
type SequenceResult struct {
	// Summary
	RequestedCommands int                  `json:"requested_commands"`
	CommandsApplied   int                  `json:"commands_applied"`
	Success           bool                 `json:"success"`
	MissionState      *engine.MissionState `json:"mission_state"`
	Report            string               `json:"report"`
	Events            []MissionEvent       `json:"events"`
	StoppedReason     string               `json:"stopped_reason,omitempty"`    // Human-readable reason
	StopReasonCode    string               `json:"stop_reason_code,omitempty"`  // Machine-friendly code: rover_lost
	StoppedOnCommand  int                  `json:"stopped_on_command,omitempty"` // 1-based index of the first skipped command
	Truncated         bool                 `json:"truncated,omitempty"`
	Limit             int                  `json:"limit,omitempty"`

	// Start/end snapshot
	StartRover engine.RoverState `json:"start_rover"`
	EndRover   engine.RoverState `json:"end_rover"`

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`

	// Final status aids
	Lost    bool   `json:"lost"`
	Message string `json:"message,omitempty"`
}

// StepInfo is a compact record for each applied command in a sequence call
type StepInfo struct {
	Idx    int               `json:"idx"`
	Action engine.Action     `json:"action"`
	From   engine.RoverState `json:"from"`
	To     engine.RoverState `json:"to"`
	Lost   bool              `json:"lost,omitempty"`
}

// MissionEvent represents an event that occurred during a mission
type MissionEvent struct {
	Type      string            `json:"type"` // "dispatch", "rover_lost", "reset"
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Rover     engine.RoverState `json:"rover,omitempty"`
}

// HistoryOptions configures command history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated command history
type HistoryResponse struct {
	Commands      []engine.CommandLogEntry `json:"commands"`
	TotalCommands int                      `json:"total_commands"`
	Page          int                      `json:"page"`
	PageSize      int                      `json:"page_size"`
	TotalPages    int                      `json:"total_pages"`
	HasNext       bool                     `json:"has_next"`
	HasPrevious   bool                     `json:"has_previous"`
}

// ConfigInfo provides information about a mission configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	EdgeX       int    `json:"edge_x"`
	EdgeY       int    `json:"edge_y"`
}
