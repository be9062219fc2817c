package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateMissionConfig validates a mission configuration for correctness.
// The transition core itself accepts any grid and state; rejecting broken
// missions is the job of this upstream layer.
func ValidateMissionConfig(config *MissionConfig) error {
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	if config.EdgeX < MinEdge || config.EdgeX > MaxEdge {
		return fmt.Errorf("config validation: edge_x must be between %d and %d, got %d", MinEdge, MaxEdge, config.EdgeX)
	}
	if config.EdgeY < MinEdge || config.EdgeY > MaxEdge {
		return fmt.Errorf("config validation: edge_y must be between %d and %d, got %d", MinEdge, MaxEdge, config.EdgeY)
	}

	if !config.StartHeading.Valid() {
		return fmt.Errorf("config validation: start_heading must be one of N/E/S/W, got %q", config.StartHeading)
	}

	if config.Bounds().OutOfBounds(config.StartX, config.StartY) {
		return fmt.Errorf("config validation: start position (%d, %d) is outside the %dx%d grid",
			config.StartX, config.StartY, config.EdgeX, config.EdgeY)
	}

	if config.Messages.Deployed == "" {
		return fmt.Errorf("config validation: messages.deployed is required")
	}
	if config.Messages.RoverLost == "" {
		return fmt.Errorf("config validation: messages.rover_lost is required")
	}

	// Validate format strings: nominal and rover_lost are rendered with
	// Sprintf(msg, x, y, heading)
	if !strings.Contains(config.Messages.RoverLost, "%d") || !strings.Contains(config.Messages.RoverLost, "%s") {
		return fmt.Errorf("config validation: messages.rover_lost must contain %%d for coordinates and %%s for heading")
	}
	if config.Messages.Nominal != "" && (!strings.Contains(config.Messages.Nominal, "%d") || !strings.Contains(config.Messages.Nominal, "%s")) {
		return fmt.Errorf("config validation: messages.nominal must contain %%d for coordinates and %%s for heading")
	}

	return nil
}

// LoadMissionConfig loads a mission configuration from a JSON file
func LoadMissionConfig(filename string) (*MissionConfig, error) {
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config MissionConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateMissionConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// InitRoverStateFromConfig builds the initial rover state for a mission.
// A nil config falls back to the built-in default plateau.
func InitRoverStateFromConfig(config *MissionConfig) RoverState {
	if config == nil {
		config = DefaultMissionConfig()
	}

	return RoverState{
		X:       config.StartX,
		Y:       config.StartY,
		Heading: config.StartHeading,
		Lost:    false,
	}
}

// DefaultMissionConfig returns the built-in default mission
func DefaultMissionConfig() *MissionConfig {
	config := &MissionConfig{
		Name:         "default",
		Description:  "Default 5x5 plateau with the rover deployed at the origin",
		EdgeX:        4,
		EdgeY:        4,
		StartX:       0,
		StartY:       0,
		StartHeading: North,
	}
	config.Messages.Deployed = "Rover deployed. Awaiting commands."
	config.Messages.Nominal = "Rover nominal at (%d, %d) facing %s"
	config.Messages.RoverLost = "Contact lost! Last known position (%d, %d) facing %s"
	return config
}
