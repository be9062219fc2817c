package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/roverops/mission-control/rover/engine"
)

// ErrSingleCommandExpected is returned by Dispatch when the command string
// does not hold exactly one command character. It is a client input error,
// like a decode failure.
var ErrSingleCommandExpected = errors.New("dispatch expects exactly one command character")

// missionServiceImpl implements the MissionService interface
type missionServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewMissionService creates a new mission service instance
func NewMissionService(sessions SessionManager, configs ConfigManager) MissionService {
	return &missionServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *missionServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new mission session
func (s *missionServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.MissionConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return s.sessionInfo(session, configID), nil
}

// GetSession retrieves session information
func (s *missionServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return s.sessionInfo(session, s.getConfigID(session.Config.Name)), nil
}

// ListSessions returns all active sessions
func (s *missionServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, s.getConfigID(sess.Config.Name)))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *missionServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Dispatch decodes and applies a single command character for a session.
// An unsupported character fails the whole call before anything runs.
func (s *missionServiceImpl) Dispatch(ctx context.Context, sessionID, command string, reset bool) (*DispatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	actions, err := engine.DecodeCommands(command)
	if err != nil {
		return nil, err
	}
	if len(actions) != 1 {
		return nil, fmt.Errorf("%w, got %d", ErrSingleCommandExpected, len(actions))
	}
	action := actions[0]

	events := []MissionEvent{}

	if reset {
		sess.Engine.Reset()
		events = append(events, MissionEvent{
			Type:      "reset",
			Message:   "Rover reset to mission start",
			Timestamp: time.Now(),
		})
	}

	from := sess.Engine.GetRover()
	applied := sess.Engine.Dispatch(action)
	to := sess.Engine.GetRover()
	state := sess.Engine.GetState()

	result := &DispatchResult{
		Applied:      applied,
		MissionState: state,
		Report:       sess.Engine.Report(),
		Message:      state.Message,
		Events:       events,
	}

	if applied {
		result.Events = append(result.Events, s.extractDispatchEvents(sess, action, from, to)...)
		result.Step = &StepInfo{
			Idx:    1,
			Action: action,
			From:   from,
			To:     to,
			Lost:   to.Lost,
		}
	}

	// Auto-save session after dispatch
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after dispatch: %v", sessionID, err)
	}

	return result, nil
}

// DispatchSequence decodes a command string and applies it in order. The
// decode is fail-fast: one bad character rejects the whole sequence and the
// rover never moves. Execution stops as soon as the rover is lost; remaining
// commands are discarded.
func (s *missionServiceImpl) DispatchSequence(ctx context.Context, sessionID, commands string, reset bool) (*SequenceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	actions, err := engine.DecodeCommands(commands)
	if err != nil {
		return nil, err
	}

	result := &SequenceResult{
		RequestedCommands: len(actions),
		Events:            make([]MissionEvent, 0),
		Success:           true,
		StartRover:        sess.Engine.GetRover(),
	}

	if reset {
		sess.Engine.Reset()
		result.StartRover = sess.Engine.GetRover()
		result.Events = append(result.Events, MissionEvent{
			Type:      "reset",
			Message:   "Rover reset to mission start",
			Timestamp: time.Now(),
		})
	}

	// Limit sequence length to prevent abuse
	if len(actions) > engine.MaxSequenceCommands {
		result.Truncated = true
		result.Limit = engine.MaxSequenceCommands
		actions = actions[:engine.MaxSequenceCommands]
	}

	for i, action := range actions {
		if sess.Engine.IsLost() {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("rover lost; %d remaining commands discarded", len(actions)-i)
			result.StopReasonCode = "rover_lost"
			result.StoppedOnCommand = i + 1
			break
		}

		from := sess.Engine.GetRover()
		sess.Engine.Dispatch(action)
		to := sess.Engine.GetRover()

		result.CommandsApplied++
		result.Events = append(result.Events, s.extractDispatchEvents(sess, action, from, to)...)
		result.Steps = append(result.Steps, StepInfo{
			Idx:    i + 1,
			Action: action,
			From:   from,
			To:     to,
			Lost:   to.Lost,
		})
	}

	state := sess.Engine.GetState()
	result.MissionState = state
	result.EndRover = state.Rover
	result.Lost = state.Rover.Lost
	result.Message = state.Message
	result.Report = sess.Engine.Report()

	// The fold ran to completion but ended with the fatal move itself
	if result.Lost && result.StopReasonCode == "" {
		result.StopReasonCode = "rover_lost"
	}

	// Auto-save session after the sequence
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after sequence: %v", sessionID, err)
	}

	return result, nil
}

// Reset resets a mission session to its start state
func (s *missionServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.MissionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state := sess.Engine.Reset()

	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after reset: %v", sessionID, err)
	}

	return state, nil
}

// GetMissionState retrieves the current mission state
func (s *missionServiceImpl) GetMissionState(ctx context.Context, sessionID string) (*engine.MissionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState(), nil
}

// GetReport renders the session's rover in the operator display form
func (s *missionServiceImpl) GetReport(ctx context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return "", fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.Report(), nil
}

// GetCommandHistory returns paginated command history
func (s *missionServiceImpl) GetCommandHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetCommandLog()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var commands []engine.CommandLogEntry
	if opts.Order == "desc" {
		// Reverse order (most recent first)
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			commands = append(commands, history[i])
		}
	} else {
		if start < total {
			commands = history[start:end]
		}
	}

	if commands == nil {
		commands = []engine.CommandLogEntry{}
	}

	return &HistoryResponse{
		Commands:      commands,
		TotalCommands: total,
		Page:          opts.Page,
		PageSize:      opts.Limit,
		TotalPages:    totalPages,
		HasNext:       opts.Page < totalPages,
		HasPrevious:   opts.Page > 1,
	}, nil
}

// ListConfigs returns available mission configurations
func (s *missionServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific mission configuration
func (s *missionServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.MissionConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a mission configuration to disk
func (s *missionServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.MissionConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// sessionInfo builds the API view of a session
func (s *missionServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		MissionState:   sess.Engine.GetState(),
		MissionConfig:  sess.Config,
		Report:         sess.Engine.Report(),
	}
}

// extractDispatchEvents generates events from an applied command
func (s *missionServiceImpl) extractDispatchEvents(sess *Session, action engine.Action, from, to engine.RoverState) []MissionEvent {
	events := []MissionEvent{
		{
			Type:      "dispatch",
			Message:   fmt.Sprintf("Applied %s: %s -> %s", action, from.Report(), to.Report()),
			Timestamp: time.Now(),
			Rover:     to,
		},
	}

	if to.Lost && !from.Lost {
		events = append(events, MissionEvent{
			Type:      "rover_lost",
			Message:   sess.Engine.GetState().Message,
			Timestamp: time.Now(),
			Rover:     to,
		})
	}

	return events
}
