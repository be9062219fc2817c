// Command validate provides a small CLI that validates mission configuration
// JSON files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Grid edges within the supported range
//   - Start position inside the grid and a valid start heading
//   - Required message keys
//   - Edge clearance: how many forward commands the rover can take in its
//     start heading before it drives off the grid
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Grid edges accepted by the engine.
const (
	minEdge = 0
	maxEdge = 1000
)

// Config mirrors the JSON schema for a mission configuration.
type Config struct {
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	EdgeX        int               `json:"edge_x"`
	EdgeY        int               `json:"edge_y"`
	StartX       int               `json:"start_x"`
	StartY       int               `json:"start_y"`
	StartHeading string            `json:"start_heading"`
	Messages     map[string]string `json:"messages"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration JSON file.
// It performs structural checks, grid/start-pose validation, message
// presence, and edge clearance analysis.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if config.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing required field: name")
	}
	if config.Description == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing required field: description")
	}

	// Validate grid edges
	if config.EdgeX < minEdge || config.EdgeX > maxEdge {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("edge_x must be between %d and %d, got %d", minEdge, maxEdge, config.EdgeX))
	}
	if config.EdgeY < minEdge || config.EdgeY > maxEdge {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("edge_y must be between %d and %d, got %d", minEdge, maxEdge, config.EdgeY))
	}

	// Validate start pose
	validHeadings := map[string]bool{"N": true, "E": true, "S": true, "W": true}
	if !validHeadings[config.StartHeading] {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("start_heading must be one of N/E/S/W, got %q", config.StartHeading))
	}

	if config.StartX < 0 || config.StartX > config.EdgeX || config.StartY < 0 || config.StartY > config.EdgeY {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Start position (%d, %d) is outside the grid with edges (%d, %d)",
			config.StartX, config.StartY, config.EdgeX, config.EdgeY))
	}

	// Validate messages
	requiredMessages := []string{
		"deployed",
		"rover_lost",
	}
	for _, msg := range requiredMessages {
		if _, exists := config.Messages[msg]; !exists {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Missing required message: %s", msg))
		}
	}

	// Validate format strings: nominal and rover_lost are rendered with
	// coordinates and heading
	templatedMessages := []string{"rover_lost", "nominal"}
	for _, msg := range templatedMessages {
		template, exists := config.Messages[msg]
		if !exists || template == "" {
			continue
		}
		if !strings.Contains(template, "%d") || !strings.Contains(template, "%s") {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Message %s must contain %%d for coordinates and %%s for heading", msg))
		}
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: x 0..%d, y 0..%d (%d cells)",
			config.EdgeX, config.EdgeY, (config.EdgeX+1)*(config.EdgeY+1)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Start: (%d, %d, %s)", config.StartX, config.StartY, config.StartHeading))

		clearance := edgeClearance(config)
		if clearance == 0 {
			result.Errors = append(result.Errors, "⚠ Edge clearance: the FIRST forward command loses the rover")
		} else {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Edge clearance: %d forward command(s) before the rover is lost", clearance))
		}
	}

	return result
}

// edgeClearance counts how many forward commands the rover can take in its
// start heading before the next one would carry it off the grid.
func edgeClearance(config Config) int {
	switch config.StartHeading {
	case "N":
		return config.EdgeY - config.StartY
	case "S":
		return config.StartY
	case "E":
		return config.EdgeX - config.StartX
	case "W":
		return config.StartX
	}
	return 0
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
