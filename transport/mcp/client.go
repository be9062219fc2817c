package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/roverops/mission-control/rover/engine"
	"github.com/roverops/mission-control/rover/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Rover Mission Control",
		"2.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Rover Mission Control - MCP Interface

This is a thin client that proxies all requests to the REST API server.

MISSION BRIEF:
A rover sits on a rectangular grid. Drive it with command strings made of
F (forward), L (turn left) and R (turn right). Driving off the grid edge
loses the rover permanently: its last in-bounds position is preserved and
its report gains a LOST marker.

AVAILABLE TOOLS:
- rover_state: Get current mission state
- dispatch: Single command (F/L/R) - requires intent explanation
- dispatch_sequence: Command string like "LFRFF" - requires intent explanation
- reset_rover: Reset rover to mission start
- command_history: View past commands
- mission_report: Get the rover's position report "(x, y, H)"
- create_session: Create new mission session
- get_session: Get session details
- list_sessions: List all active sessions
- list_configs: List available mission configurations
- mission_instructions: Get comprehensive mission instructions and rules

NOTE: The 'intent' parameter on dispatch tools serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new mission session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the mission config to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active mission sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Mission operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "rover_state",
		Description: "Get the rover's current mission state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleRoverState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "dispatch",
		Description: "Dispatch a single command to the rover",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"command": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"F", "L", "R"},
					"description": "Command to dispatch: F=forward, L=turn left, R=turn right",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this command (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before dispatching",
				},
			},
			Required: []string{"session_id", "command"},
		},
	}, c.handleDispatch)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "dispatch_sequence",
		Description: "Dispatch a command string in sequence, e.g. \"LFRFF\". Decoding is all-or-nothing: an unsupported character rejects the whole string before the rover moves.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"commands": map[string]interface{}{
					"type":        "string",
					"description": "Command string made of F, L and R characters",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this command sequence (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before dispatching",
				},
			},
			Required: []string{"session_id", "commands"},
		},
	}, c.handleDispatchSequence)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_rover",
		Description: "Reset the rover to its mission start pose",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "command_history",
		Description: "Get command history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleCommandHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "mission_report",
		Description: "Get the rover's position report in the form \"(x, y, H)\", with a LOST marker if the rover fell off the grid",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMissionReport)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available mission configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "mission_instructions",
		Description: "Get comprehensive mission instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleMissionInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configName, _ := args["config_name"].(string)

	body := map[string]string{}
	if configName != "" {
		body["config_name"] = configName
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\nReport: %s\n",
		session.ID, session.ConfigName, session.Report)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Config: %s, Report: %s, Created: %s)\n",
			s.ID, s.ConfigName, s.Report, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRoverState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.MissionState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatMissionState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleDispatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	command, _ := args["command"].(string)
	intent, _ := args["intent"].(string)
	reset, _ := args["reset"].(bool)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"command": command,
		"reset":   reset,
	}

	var result service.DispatchResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/dispatch", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatDispatchResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleDispatchSequence(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	commands, _ := args["commands"].(string)
	intent, _ := args["intent"].(string)
	reset, _ := args["reset"].(bool)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"commands": commands,
		"reset":    reset,
	}

	var result service.SequenceResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/sequence", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatSequenceResult(sessionID, &result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string               `json:"message"`
		State   *engine.MissionState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatMissionState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleCommandHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Also fetch the current segment from live state
	var session service.SessionInfo
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session); err != nil {
		// If fetching session fails, still return the history
		result := formatHistory(&history)
		return mcp.NewToolResultText(result), nil
	}

	result := formatHistory(&history)
	result += "\n" + formatCurrentSegment(session.MissionState)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMissionReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		SessionID string `json:"session_id"`
		Report    string `json:"report"`
	}

	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/report", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(response.Report), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s\n  %s\n  Grid: edges (%d, %d)\n\n",
			config.ConfigID, config.Description, config.EdgeX, config.EdgeY)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMissionInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Rover Mission Control - Complete Instructions

MISSION OBJECTIVE:
Drive a rover across a rectangular grid using command strings, without
driving it off the edge.

THE GRID:
- Coordinates are integer (x, y) pairs with the origin at the bottom-left
- A config names the top-right edge (edge_x, edge_y); both edges are valid
  positions, so a grid with edges (4, 8) spans x in 0..4 and y in 0..8
- There are no obstacles: the only hazard is the edge of the grid

THE ROVER:
- Has a position (x, y) and a heading: N, E, S or W
- Reports its pose as "(x, y, H)", e.g. "(4, 2, E)"

COMMANDS:
- F: move one cell forward in the current heading
- L: turn 90 degrees left (heading changes, position does not)
- R: turn 90 degrees right
- Sequences are plain strings, e.g. "LFRFF" - they decode all-or-nothing,
  so "FFXFF" is rejected before the rover moves at all

GETTING LOST:
- An F that would carry the rover past an edge loses it PERMANENTLY
- A lost rover keeps its last in-bounds position and heading
- Its report gains a LOST marker: "(4, 3, E) LOST"
- Further commands to a lost rover are acknowledged but have no effect
- A sequence stops at the command that loses the rover; the rest is skipped
- reset_rover is the only way back: it returns the rover to the mission
  start pose and clears the lost flag

PLANNING TIPS FOR AI AGENTS:
1. Check rover_state before dispatching: know the current pose and the grid
   edges before planning a route
2. Count your F commands against the distance to the nearest edge in the
   current heading - one F too many and the rover is gone
3. Use dispatch_sequence for efficiency, but validate the string first:
   one bad character rejects the whole sequence
4. After a sequence, read commands_applied and stop_reason_code to learn
   whether everything was applied or the rover was lost partway
5. mission_report gives the canonical one-line summary at any time

SESSION MANAGEMENT:
- Multiple mission sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions maintain independent rover state and configuration
- Use session-specific tools for multi-rover management

Remember: the grid edge is unforgiving. Plan the route, count the cells,
then dispatch.`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatMissionState(session.MissionState))
}

func formatMissionState(state *engine.MissionState) string {
	if state == nil {
		return "No mission state available"
	}

	var result strings.Builder

	result.WriteString(fmt.Sprintf("Report: %s\n", state.Rover.Report()))
	result.WriteString(fmt.Sprintf("Position: (%d,%d) | Heading: %s | Commands: %d\n",
		state.Rover.X, state.Rover.Y, state.Rover.Heading, state.TotalCommands))

	if state.Rover.Lost {
		result.WriteString("\nROVER LOST - it drove off the grid and no longer responds to commands.\nUse reset_rover to return it to the mission start.")
	}

	if state.Message != "" {
		result.WriteString(fmt.Sprintf("\nMessage: %s", state.Message))
	}

	return result.String()
}

func formatDispatchResult(result *service.DispatchResult) string {
	response := ""
	if result.Applied {
		response = "✓ Command applied\n"
	} else {
		response = "✗ Command not applied\n"
	}

	// Compact step summary (if available)
	if result.Step != nil {
		s := result.Step
		status := "✓"
		if s.Lost {
			status = "LOST"
		}
		response += fmt.Sprintf("Step: %s (%d,%d,%s)→(%d,%d,%s) %s\n",
			s.Action, s.From.X, s.From.Y, s.From.Heading, s.To.X, s.To.Y, s.To.Heading, status)
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	response += "\n" + formatMissionState(result.MissionState)
	return response
}

func formatSequenceResult(sessionID string, result *service.SequenceResult) string {
	var b strings.Builder

	configName := ""
	if result.MissionState != nil {
		configName = result.MissionState.ConfigName
	}
	b.WriteString(fmt.Sprintf("Session: %s • Config: %s\n", sessionID, configName))

	// Sequence summary
	b.WriteString(fmt.Sprintf("Applied %d/%d commands\n", result.CommandsApplied, result.RequestedCommands))
	if result.StoppedReason != "" {
		b.WriteString(fmt.Sprintf("Stopped: %s\n", result.StoppedReason))
	}

	if len(result.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, event := range result.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	// Per-step trace (this call only)
	if len(result.Steps) > 0 {
		b.WriteString("\nSteps (this call):\n")
		for _, s := range result.Steps {
			status := "✓"
			if s.Lost {
				status = "LOST"
			}
			b.WriteString(fmt.Sprintf("%d. %s (%d,%d,%s)→(%d,%d,%s) %s\n",
				s.Idx, s.Action, s.From.X, s.From.Y, s.From.Heading,
				s.To.X, s.To.Y, s.To.Heading, status))
		}
	}

	// Full state at the end (kept for compatibility)
	b.WriteString("\n")
	b.WriteString(formatMissionState(result.MissionState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Command History (Page %d/%d) — Total (cumulative): %d\n\n",
		history.Page, history.TotalPages, history.TotalCommands)

	for _, cmd := range history.Commands {
		status := "✓"
		if !cmd.Applied {
			status = "✗"
		}
		result += fmt.Sprintf("%d. %s %s → %s\n",
			cmd.Number, cmd.Action, status, cmd.To.Report())
	}

	return result
}

func formatCurrentSegment(state *engine.MissionState) string {
	if state == nil {
		return "Current Segment: unavailable"
	}
	commands := state.CurrentLog
	total := state.CurrentCommands
	header := fmt.Sprintf("Current Command Segment — Commands: %d\n\n", total)
	if len(commands) == 0 {
		return header + "(no commands in current segment)"
	}
	var b strings.Builder
	b.WriteString(header)
	for i, cmd := range commands {
		status := "✓"
		if !cmd.Applied {
			status = "✗"
		}
		// i is zero-based within the segment
		b.WriteString(fmt.Sprintf("%d. %s %s → %s\n", i+1, cmd.Action, status, cmd.To.Report()))
	}
	return b.String()
}
