package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "test_config_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpfile.Close()

	return tmpfile.Name()
}

func TestValidateConfig_ValidConfig(t *testing.T) {
	validConfig := `{
		"name": "Test Mission",
		"description": "Test mission configuration",
		"edge_x": 4,
		"edge_y": 8,
		"start_x": 2,
		"start_y": 3,
		"start_heading": "E",
		"messages": {
			"deployed": "Rover deployed.",
			"nominal": "Rover nominal at (%d, %d) facing %s",
			"rover_lost": "Contact lost at (%d, %d) facing %s"
		}
	}`

	path := writeTempConfig(t, validConfig)

	result := validateConfig(path)
	if !result.Valid {
		t.Errorf("Expected valid config, but got errors: %v", result.Errors)
	}

	if result.File != filepath.Base(path) {
		t.Errorf("Expected file name %s, got %s", filepath.Base(path), result.File)
	}
}

func TestValidateConfig_InvalidJSON(t *testing.T) {
	path := writeTempConfig(t, `{"name": "test", invalid json}`)

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected invalid result for malformed JSON")
	}

	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "Invalid JSON") {
		t.Errorf("Expected JSON error, got: %v", result.Errors)
	}
}

func TestValidateConfig_MissingFile(t *testing.T) {
	result := validateConfig("/nonexistent/path/config.json")
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}

	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "Failed to read file") {
		t.Errorf("Expected read error, got: %v", result.Errors)
	}
}

func TestValidateConfig_MissingFields(t *testing.T) {
	config := `{
		"edge_x": 4,
		"edge_y": 8,
		"start_x": 0,
		"start_y": 0,
		"start_heading": "N",
		"messages": {}
	}`

	path := writeTempConfig(t, config)

	result := validateConfig(path)
	if result.Valid {
		t.Fatal("Expected invalid result for config missing fields")
	}

	expectedErrors := []string{
		"Missing required field: name",
		"Missing required field: description",
		"Missing required message: deployed",
		"Missing required message: rover_lost",
	}
	for _, expected := range expectedErrors {
		found := false
		for _, err := range result.Errors {
			if err == expected {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected error %q, got: %v", expected, result.Errors)
		}
	}
}

func TestValidateConfig_StartOutsideGrid(t *testing.T) {
	config := `{
		"name": "Test Mission",
		"description": "Start pose outside the grid",
		"edge_x": 4,
		"edge_y": 4,
		"start_x": 9,
		"start_y": 0,
		"start_heading": "N",
		"messages": {
			"deployed": "Deployed.",
			"rover_lost": "Lost."
		}
	}`

	path := writeTempConfig(t, config)

	result := validateConfig(path)
	if result.Valid {
		t.Fatal("Expected invalid result for start position outside grid")
	}

	found := false
	for _, err := range result.Errors {
		if strings.Contains(err, "Start position (9, 0) is outside the grid") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected start position error, got: %v", result.Errors)
	}
}

func TestValidateConfig_InvalidHeading(t *testing.T) {
	config := `{
		"name": "Test Mission",
		"description": "Bad heading",
		"edge_x": 4,
		"edge_y": 4,
		"start_x": 0,
		"start_y": 0,
		"start_heading": "Q",
		"messages": {
			"deployed": "Deployed.",
			"rover_lost": "Lost."
		}
	}`

	path := writeTempConfig(t, config)

	result := validateConfig(path)
	if result.Valid {
		t.Fatal("Expected invalid result for bad heading")
	}

	found := false
	for _, err := range result.Errors {
		if strings.Contains(err, "start_heading must be one of N/E/S/W") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected heading error, got: %v", result.Errors)
	}
}

func TestValidateConfig_EdgeOutOfRange(t *testing.T) {
	config := `{
		"name": "Test Mission",
		"description": "Edge beyond the supported range",
		"edge_x": 2000,
		"edge_y": 4,
		"start_x": 0,
		"start_y": 0,
		"start_heading": "N",
		"messages": {
			"deployed": "Deployed.",
			"rover_lost": "Lost."
		}
	}`

	path := writeTempConfig(t, config)

	result := validateConfig(path)
	if result.Valid {
		t.Fatal("Expected invalid result for out-of-range edge")
	}

	found := false
	for _, err := range result.Errors {
		if strings.Contains(err, "edge_x must be between") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected edge range error, got: %v", result.Errors)
	}
}

func TestEdgeClearance(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		expected int
	}{
		{
			name:     "north with room",
			config:   Config{EdgeX: 4, EdgeY: 8, StartX: 2, StartY: 3, StartHeading: "N"},
			expected: 5,
		},
		{
			name:     "east at the edge",
			config:   Config{EdgeX: 4, EdgeY: 8, StartX: 4, StartY: 3, StartHeading: "E"},
			expected: 0,
		},
		{
			name:     "south from origin row",
			config:   Config{EdgeX: 4, EdgeY: 8, StartX: 2, StartY: 0, StartHeading: "S"},
			expected: 0,
		},
		{
			name:     "west mid-grid",
			config:   Config{EdgeX: 12, EdgeY: 6, StartX: 6, StartY: 3, StartHeading: "W"},
			expected: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := edgeClearance(tt.config); got != tt.expected {
				t.Errorf("Expected clearance %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestValidateConfig_MessageMissingFormatVerbs(t *testing.T) {
	config := `{
		"name": "Test Mission",
		"description": "Templates without coordinate verbs",
		"edge_x": 4,
		"edge_y": 4,
		"start_x": 0,
		"start_y": 0,
		"start_heading": "N",
		"messages": {
			"deployed": "Deployed.",
			"nominal": "All good.",
			"rover_lost": "Lost."
		}
	}`

	path := writeTempConfig(t, config)

	result := validateConfig(path)
	if result.Valid {
		t.Fatal("Expected invalid result for message templates without format verbs")
	}

	for _, msg := range []string{"rover_lost", "nominal"} {
		found := false
		for _, err := range result.Errors {
			if strings.Contains(err, "Message "+msg+" must contain") {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected format verb error for %s, got: %v", msg, result.Errors)
		}
	}
}

func TestValidateConfig_ClearanceWarning(t *testing.T) {
	config := `{
		"name": "Cliff Edge",
		"description": "Rover starts facing straight off the grid",
		"edge_x": 4,
		"edge_y": 4,
		"start_x": 4,
		"start_y": 2,
		"start_heading": "E",
		"messages": {
			"deployed": "Deployed.",
			"rover_lost": "Lost at (%d, %d) facing %s"
		}
	}`

	path := writeTempConfig(t, config)

	result := validateConfig(path)
	if !result.Valid {
		t.Fatalf("Expected valid config, got errors: %v", result.Errors)
	}

	found := false
	for _, info := range result.Errors {
		if strings.Contains(info, "FIRST forward command loses the rover") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected clearance warning, got: %v", result.Errors)
	}
}

func TestValidateConfig_ProjectConfigs(t *testing.T) {
	files, err := filepath.Glob("../configs/*.json")
	if err != nil {
		t.Fatalf("Failed to glob configs: %v", err)
	}
	if len(files) == 0 {
		t.Skip("No config files found")
	}

	for _, file := range files {
		result := validateConfig(file)
		if !result.Valid {
			t.Errorf("Config %s is invalid: %v", result.File, result.Errors)
		}
	}
}
