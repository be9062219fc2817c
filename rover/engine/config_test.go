package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateMissionConfig(t *testing.T) {
	valid := createTestConfig()
	if err := ValidateMissionConfig(valid); err != nil {
		t.Errorf("Expected valid config, got error: %v", err)
	}
}

func TestValidateMissionConfig_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MissionConfig)
	}{
		{"missing name", func(c *MissionConfig) { c.Name = "" }},
		{"missing description", func(c *MissionConfig) { c.Description = "" }},
		{"negative edge_x", func(c *MissionConfig) { c.EdgeX = -1 }},
		{"negative edge_y", func(c *MissionConfig) { c.EdgeY = -1 }},
		{"edge_x too large", func(c *MissionConfig) { c.EdgeX = MaxEdge + 1 }},
		{"invalid heading", func(c *MissionConfig) { c.StartHeading = "NE" }},
		{"lowercase heading", func(c *MissionConfig) { c.StartHeading = "n" }},
		{"start off grid x", func(c *MissionConfig) { c.StartX = c.EdgeX + 1 }},
		{"start off grid y", func(c *MissionConfig) { c.StartY = c.EdgeY + 1 }},
		{"negative start", func(c *MissionConfig) { c.StartX = -1 }},
		{"missing deployed message", func(c *MissionConfig) { c.Messages.Deployed = "" }},
		{"missing lost message", func(c *MissionConfig) { c.Messages.RoverLost = "" }},
		{"lost message without verbs", func(c *MissionConfig) { c.Messages.RoverLost = "Contact lost." }},
		{"lost message missing heading verb", func(c *MissionConfig) { c.Messages.RoverLost = "Lost at (%d, %d)" }},
		{"nominal message without verbs", func(c *MissionConfig) { c.Messages.Nominal = "All good." }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := createTestConfig()
			tt.mutate(config)
			if err := ValidateMissionConfig(config); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestValidateMissionConfig_DegenerateGridIsLegal(t *testing.T) {
	config := createTestConfig()
	config.EdgeX, config.EdgeY = 0, 0
	config.StartX, config.StartY = 0, 0

	if err := ValidateMissionConfig(config); err != nil {
		t.Errorf("Expected 1x1 grid to be legal, got error: %v", err)
	}
}

func TestDefaultMissionConfig(t *testing.T) {
	config := DefaultMissionConfig()
	if err := ValidateMissionConfig(config); err != nil {
		t.Errorf("Expected built-in default to validate, got: %v", err)
	}
}

func TestInitRoverStateFromConfig(t *testing.T) {
	config := createTestConfig()
	state := InitRoverStateFromConfig(config)

	if state.X != config.StartX || state.Y != config.StartY {
		t.Errorf("Expected position (%d, %d), got (%d, %d)", config.StartX, config.StartY, state.X, state.Y)
	}
	if state.Heading != config.StartHeading {
		t.Errorf("Expected heading %s, got %s", config.StartHeading, state.Heading)
	}
	if state.Lost {
		t.Error("Expected fresh rover not to be lost")
	}

	// nil config falls back to the default plateau
	state = InitRoverStateFromConfig(nil)
	if state.Lost || !state.Heading.Valid() {
		t.Errorf("Unexpected default state %+v", state)
	}
}

func TestLoadMissionConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mission.json")

	data := `{
		"name": "Load Test",
		"description": "Mission loaded from disk",
		"edge_x": 4,
		"edge_y": 8,
		"start_x": 2,
		"start_y": 3,
		"start_heading": "E",
		"messages": {
			"deployed": "deployed",
			"nominal": "at (%d, %d) facing %s",
			"rover_lost": "lost at (%d, %d) facing %s"
		}
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	config, err := LoadMissionConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.Name != "Load Test" || config.EdgeX != 4 || config.StartHeading != East {
		t.Errorf("Unexpected config %+v", config)
	}
}

func TestLoadMissionConfig_Invalid(t *testing.T) {
	dir := t.TempDir()

	// Missing file
	if _, err := LoadMissionConfig(filepath.Join(dir, "nope.json")); err == nil {
		t.Error("Expected error for missing file")
	}

	// Bad JSON
	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{not json"), 0644)
	if _, err := LoadMissionConfig(bad); err == nil {
		t.Error("Expected error for malformed JSON")
	}

	// Fails validation
	invalid := filepath.Join(dir, "invalid.json")
	os.WriteFile(invalid, []byte(`{"name":"x","description":"y","edge_x":-1,"edge_y":0,"start_heading":"N"}`), 0644)
	if _, err := LoadMissionConfig(invalid); err == nil {
		t.Error("Expected validation error for negative edge")
	}
}
