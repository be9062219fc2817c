package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func runSimulate(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newCommand()
	var buf bytes.Buffer
	cmd.Writer = &buf

	err := cmd.Run(context.Background(), append([]string{"simulate"}, args...))
	return buf.String(), err
}

func TestSimulate_KnownItinerary(t *testing.T) {
	output, err := runSimulate(t, "--edge-x", "4", "--edge-y", "8", "--x", "2", "--y", "3", "--heading", "E", "--commands", "LFRFF")
	if err != nil {
		t.Fatalf("Simulation failed: %v", err)
	}

	if !strings.Contains(output, "(4, 4, E)") {
		t.Errorf("Expected final report (4, 4, E), got: %s", output)
	}
}

func TestSimulate_RoverLost(t *testing.T) {
	output, err := runSimulate(t, "--edge-x", "4", "--edge-y", "8", "--x", "0", "--y", "2", "--heading", "N", "--commands", "FFLFFFFF")
	if err != nil {
		t.Fatalf("Simulation failed: %v", err)
	}

	if !strings.Contains(output, "(0, 4, W) LOST") {
		t.Errorf("Expected lost report (0, 4, W) LOST, got: %s", output)
	}
}

func TestSimulate_PositionalCommands(t *testing.T) {
	output, err := runSimulate(t, "--edge-x", "4", "--edge-y", "8", "FF")
	if err != nil {
		t.Fatalf("Simulation failed: %v", err)
	}

	if !strings.Contains(output, "(0, 2, N)") {
		t.Errorf("Expected report (0, 2, N), got: %s", output)
	}
}

func TestSimulate_RejectsBadCommandString(t *testing.T) {
	_, err := runSimulate(t, "--commands", "FFXFF")
	if err == nil {
		t.Fatal("Expected error for unsupported command character")
	}

	if !strings.Contains(err.Error(), "unsupported action") {
		t.Errorf("Expected unsupported action error, got: %v", err)
	}

	if !strings.Contains(err.Error(), "position 2") {
		t.Errorf("Expected character position in error, got: %v", err)
	}
}

func TestSimulate_RejectsInvalidHeading(t *testing.T) {
	_, err := runSimulate(t, "--heading", "Q", "--commands", "F")
	if err == nil {
		t.Fatal("Expected error for invalid heading")
	}

	if !strings.Contains(err.Error(), "invalid heading") {
		t.Errorf("Expected invalid heading error, got: %v", err)
	}
}

func TestSimulate_RejectsStartOutsideGrid(t *testing.T) {
	_, err := runSimulate(t, "--edge-x", "4", "--edge-y", "4", "--x", "9", "--commands", "F")
	if err == nil {
		t.Fatal("Expected error for start position outside the grid")
	}
}

func TestSimulate_RequiresCommands(t *testing.T) {
	_, err := runSimulate(t)
	if err == nil {
		t.Fatal("Expected error when no commands are given")
	}

	if !strings.Contains(err.Error(), "no commands given") {
		t.Errorf("Expected missing commands error, got: %v", err)
	}
}

func TestSimulate_Trace(t *testing.T) {
	output, err := runSimulate(t, "--x", "2", "--y", "3", "--heading", "E", "--trace", "--commands", "LF")
	if err != nil {
		t.Fatalf("Simulation failed: %v", err)
	}

	expected := []string{
		"Deployed at (2, 3, E)",
		"1. L (2, 3, E) -> (2, 3, N) OK",
		"2. F (2, 3, N) -> (2, 4, N) OK",
		"(2, 4, N)",
	}
	for _, line := range expected {
		if !strings.Contains(output, line) {
			t.Errorf("Expected %q in trace output, got: %s", line, output)
		}
	}
}

func TestSimulate_ConfigFile(t *testing.T) {
	output, err := runSimulate(t, "--config", "../../configs/canyon.json", "--commands", "FF")
	if err != nil {
		t.Fatalf("Simulation failed: %v", err)
	}

	if !strings.Contains(output, "(8, 3, E)") {
		t.Errorf("Expected report (8, 3, E) from canyon config, got: %s", output)
	}
}
