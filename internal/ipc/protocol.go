package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload          CommandType = "RELOAD"
	CommandGetStatus       CommandType = "GET_STATUS"
	CommandGetMonitors     CommandType = "GET_MONITORS"
	CommandListLayouts     CommandType = "LIST_LAYOUTS"
	CommandAction          CommandType = "COMMAND"
	CommandSwitchWorkspace CommandType = "SWITCH_WORKSPACE"
	CommandMoveToWorkspace CommandType = "MOVE_TO_WORKSPACE"
	CommandSetEnabled      CommandType = "SET_ENABLED"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	Enabled          bool              `json:"enabled"`
	FocusedWorkspace string            `json:"focused_workspace"`
	Workspaces       []WorkspaceStatus `json:"workspaces"`
	UptimeSeconds    int64             `json:"uptime_seconds"`
	DaemonRunning    bool              `json:"daemon_running"`
}

// WorkspaceStatus describes one workspace. Monitor is empty when the workspace is
// not shown anywhere.
type WorkspaceStatus struct {
	Name    string         `json:"name"`
	Monitor string         `json:"monitor,omitempty"`
	Layout  string         `json:"layout"`
	Focused bool           `json:"focused"`
	Windows []WindowStatus `json:"windows"`
}

type WindowStatus struct {
	Handle  uint32 `json:"handle"`
	Title   string `json:"title"`
	Class   string `json:"class"`
	Focused bool   `json:"focused"`
	Tiled   bool   `json:"tiled"`
}

// MonitorInfo represents information about a single monitor
type MonitorInfo struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Workspace string `json:"workspace,omitempty"`
}

// MonitorsData represents the data returned by GET_MONITORS
type MonitorsData struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// LayoutsData lists registered engines, the configured cycle order and the engine
// active on the focused workspace.
type LayoutsData struct {
	Registered   []string `json:"registered"`
	Cycle        []string `json:"cycle"`
	ActiveLayout string   `json:"active_layout"`
}

type ActionPayload struct {
	Action string `json:"action"`
}

type WorkspacePayload struct {
	Workspace string `json:"workspace"`
}

// SetEnabledPayload sets tiling on or off. Toggle wins over Enabled.
type SetEnabledPayload struct {
	Enabled bool `json:"enabled"`
	Toggle  bool `json:"toggle,omitempty"`
}

type EnabledData struct {
	Enabled bool `json:"enabled"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
