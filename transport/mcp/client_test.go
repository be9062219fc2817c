package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/roverops/mission-control/rover/engine"
	"github.com/roverops/mission-control/rover/service"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	// Create a test server that returns a known response
	expectedResponse := map[string]interface{}{
		"id":     "test-session",
		"report": "(2, 3, E)",
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	err := client.apiCall("GET", "/api", nil, &response)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["id"] != expectedResponse["id"] {
		t.Errorf("Expected id %v, got %v", expectedResponse["id"], response["id"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for HTTP 500 response")
	}

	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("Expected 'API error' in error message, got: %v", err)
	}
}

func TestClient_apiCall_ErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "unsupported command character 'X' at position 2"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("POST", "/api/sessions/abcd/sequence", map[string]string{"commands": "FFXFF"}, nil)
	if err == nil {
		t.Fatal("Expected error for HTTP 400 response")
	}

	if !strings.Contains(err.Error(), "unsupported command character") {
		t.Errorf("Expected API error message to be surfaced, got: %v", err)
	}
}

func TestClient_createSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			t.Errorf("Expected POST /api/sessions, got %s %s", r.Method, r.URL.Path)
		}

		resp := service.SessionInfo{
			ID:         "test-session-123",
			ConfigName: "plateau",
			Report:     "(2, 3, E)",
			MissionState: &engine.MissionState{
				Rover: engine.RoverState{X: 2, Y: 3, Heading: engine.East},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "create_session",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleCreateSession(ctx, request)
	if err != nil {
		t.Fatalf("createSession failed: %v", err)
	}

	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "test-session-123") {
		t.Errorf("Expected session ID in result, got: %s", resultStr.Text)
	}

	if !strings.Contains(resultStr.Text, "(2, 3, E)") {
		t.Errorf("Expected report in result, got: %s", resultStr.Text)
	}
}

func TestClient_dispatchSequence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions/abcd/sequence" {
			t.Errorf("Expected POST /api/sessions/abcd/sequence, got %s %s", r.Method, r.URL.Path)
		}

		var req map[string]interface{}
		json.NewDecoder(r.Body).Decode(&req)
		if req["commands"] != "LFRFF" {
			t.Errorf("Expected commands LFRFF, got %v", req["commands"])
		}

		resp := service.SequenceResult{
			RequestedCommands: 5,
			CommandsApplied:   5,
			Success:           true,
			Report:            "(4, 4, E)",
			MissionState: &engine.MissionState{
				Rover:      engine.RoverState{X: 4, Y: 4, Heading: engine.East},
				ConfigName: "plateau",
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "dispatch_sequence",
			Arguments: map[string]interface{}{
				"session_id": "abcd",
				"commands":   "LFRFF",
			},
		},
	}

	result, err := client.handleDispatchSequence(ctx, request)
	if err != nil {
		t.Fatalf("dispatchSequence failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "Applied 5/5 commands") {
		t.Errorf("Expected sequence summary in result, got: %s", resultStr.Text)
	}

	if !strings.Contains(resultStr.Text, "(4, 4, E)") {
		t.Errorf("Expected final report in result, got: %s", resultStr.Text)
	}
}

func TestClient_missionReport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sessions/abcd/report" {
			t.Errorf("Expected /api/sessions/abcd/report, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"session_id": "abcd",
			"report":     "(0, 4, W) LOST",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "mission_report",
			Arguments: map[string]interface{}{
				"session_id": "abcd",
			},
		},
	}

	result, err := client.handleMissionReport(ctx, request)
	if err != nil {
		t.Fatalf("missionReport failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if resultStr.Text != "(0, 4, W) LOST" {
		t.Errorf("Expected report text, got: %s", resultStr.Text)
	}
}

func TestFormatMissionState(t *testing.T) {
	state := &engine.MissionState{
		Rover:         engine.RoverState{X: 3, Y: 5, Heading: engine.North},
		Message:       "Rover deployed and ready",
		TotalCommands: 7,
	}

	result := formatMissionState(state)

	expectedFields := []string{
		"Report: (3, 5, N)",
		"Position: (3,5)",
		"Heading: N",
		"Commands: 7",
		"Rover deployed and ready",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}

	if strings.Contains(result, "ROVER LOST") {
		t.Errorf("Did not expect lost marker for in-bounds rover, got: %s", result)
	}
}

func TestFormatMissionState_Lost(t *testing.T) {
	state := &engine.MissionState{
		Rover:   engine.RoverState{X: 4, Y: 3, Heading: engine.East, Lost: true},
		Message: "Rover lost contact",
	}

	result := formatMissionState(state)

	if !strings.Contains(result, "(4, 3, E) LOST") {
		t.Errorf("Expected LOST report in result, got: %s", result)
	}

	if !strings.Contains(result, "ROVER LOST") {
		t.Errorf("Expected lost notice in result, got: %s", result)
	}
}

func TestFormatDispatchResult(t *testing.T) {
	dispatchResult := &service.DispatchResult{
		Applied: true,
		Report:  "(3, 3, E)",
		Step: &service.StepInfo{
			Idx:    1,
			Action: engine.Forward,
			From:   engine.RoverState{X: 2, Y: 3, Heading: engine.East},
			To:     engine.RoverState{X: 3, Y: 3, Heading: engine.East},
		},
		MissionState: &engine.MissionState{
			Rover: engine.RoverState{X: 3, Y: 3, Heading: engine.East},
		},
	}

	result := formatDispatchResult(dispatchResult)

	expectedFields := []string{
		"✓ Command applied",
		"Step: F (2,3,E)→(3,3,E)",
		"Report: (3, 3, E)",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatDispatchResult_NotApplied(t *testing.T) {
	dispatchResult := &service.DispatchResult{
		Applied: false,
		Message: "rover is lost and no longer responds",
		MissionState: &engine.MissionState{
			Rover: engine.RoverState{X: 4, Y: 3, Heading: engine.East, Lost: true},
		},
	}

	result := formatDispatchResult(dispatchResult)

	if !strings.Contains(result, "✗ Command not applied") {
		t.Errorf("Expected '✗ Command not applied' in result, got: %s", result)
	}
}

func TestFormatHistory(t *testing.T) {
	history := &service.HistoryResponse{
		Commands: []engine.CommandLogEntry{
			{
				Action:  engine.RotateLeft,
				From:    engine.RoverState{X: 2, Y: 3, Heading: engine.East},
				To:      engine.RoverState{X: 2, Y: 3, Heading: engine.North},
				Applied: true,
				Number:  1,
			},
			{
				Action:  engine.Forward,
				From:    engine.RoverState{X: 2, Y: 3, Heading: engine.North},
				To:      engine.RoverState{X: 2, Y: 4, Heading: engine.North},
				Applied: true,
				Number:  2,
			},
		},
		TotalCommands: 2,
		Page:          1,
		PageSize:      20,
		TotalPages:    1,
	}

	result := formatHistory(history)

	if !strings.Contains(result, "Command History (Page 1/1)") {
		t.Errorf("Expected history header, got: %s", result)
	}

	if !strings.Contains(result, "1. L ✓ → (2, 3, N)") {
		t.Errorf("Expected first command line, got: %s", result)
	}

	if !strings.Contains(result, "2. F ✓ → (2, 4, N)") {
		t.Errorf("Expected second command line, got: %s", result)
	}
}

func TestClient_handleMissionInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "mission_instructions",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleMissionInstructions(ctx, request)
	if err != nil {
		t.Fatalf("handleMissionInstructions failed: %v", err)
	}

	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	expectedContent := []string{
		"Rover Mission Control - Complete Instructions",
		"MISSION OBJECTIVE:",
		"THE GRID:",
		"THE ROVER:",
		"COMMANDS:",
		"GETTING LOST:",
		"PLANNING TIPS FOR AI AGENTS:",
		"SESSION MANAGEMENT:",
	}

	for _, content := range expectedContent {
		if !strings.Contains(resultStr.Text, content) {
			t.Errorf("Expected '%s' in instructions, got: %s", content, resultStr.Text)
		}
	}
}

func TestClient_Integration(t *testing.T) {
	// Verifies the client can be created and initialized without errors
	client := NewClient("http://localhost:8080")

	if client == nil {
		t.Fatal("Failed to create client")
	}

	if client.mcpServer == nil {
		t.Fatal("MCP server not initialized")
	}

	if client.baseURL == "" {
		t.Error("Base URL not set")
	}

	if client.httpClient == nil {
		t.Error("HTTP client not initialized")
	}
}
