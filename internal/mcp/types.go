package mcp

import "github.com/1broseidon/tilewm/internal/ipc"

// WorkspaceStatusInput is the input for the workspace_status tool.
type WorkspaceStatusInput struct {
	Workspace string `json:"workspace,omitempty" jsonschema:"Only report this workspace (default: all workspaces)"`
}

// WorkspaceStatusOutput is the output for the workspace_status tool.
type WorkspaceStatusOutput struct {
	Enabled          bool                  `json:"enabled"`
	FocusedWorkspace string                `json:"focused_workspace"`
	Workspaces       []ipc.WorkspaceStatus `json:"workspaces"`
}

// WorkspaceCommandInput is the input for the workspace_command tool.
type WorkspaceCommandInput struct {
	Action string `json:"action" jsonschema:"Action to run on the focused workspace, e.g. focus_next, swap_primary, next_layout, shrink_primary, relayout"`
}

// WorkspaceCommandOutput is the output for the workspace_command tool.
type WorkspaceCommandOutput struct {
	Action           string `json:"action"`
	FocusedWorkspace string `json:"focused_workspace"`
	Layout           string `json:"layout"`
}

// SwitchWorkspaceInput is the input for the switch_workspace tool.
type SwitchWorkspaceInput struct {
	Workspace string `json:"workspace" jsonschema:"Name of the workspace to show on the focused monitor"`
}

// MoveWindowInput is the input for the move_window tool.
type MoveWindowInput struct {
	Workspace string `json:"workspace" jsonschema:"Name of the workspace the focused window moves to"`
}

// WorkspaceChangeOutput reports where focus landed after a workspace change.
type WorkspaceChangeOutput struct {
	FocusedWorkspace string `json:"focused_workspace"`
}

// SetEnabledInput is the input for the set_tiling tool.
type SetEnabledInput struct {
	Enabled *bool `json:"enabled,omitempty" jsonschema:"Turn tiling on or off. Omit to toggle."`
}

// SetEnabledOutput is the output for the set_tiling tool.
type SetEnabledOutput struct {
	Enabled bool `json:"enabled"`
}

// ListLayoutsInput is the input for the list_layouts tool.
type ListLayoutsInput struct{}

// ListLayoutsOutput is the output for the list_layouts tool.
type ListLayoutsOutput struct {
	Registered   []string `json:"registered"`
	Cycle        []string `json:"cycle"`
	ActiveLayout string   `json:"active_layout"`
}

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// ListMonitorsOutput is the output for the list_monitors tool.
type ListMonitorsOutput struct {
	Monitors []ipc.MonitorInfo `json:"monitors"`
}
