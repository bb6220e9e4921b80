package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/tilewm/internal/ipc"
)

const (
	ServerName    = "tilewm"
	ServerVersion = "0.1.0"
)

// Daemon is the part of the IPC client the tools use.
type Daemon interface {
	GetStatus() (*ipc.StatusData, error)
	GetMonitors() (*ipc.MonitorsData, error)
	ListLayouts() (*ipc.LayoutsData, error)
	Command(action string) error
	SwitchWorkspace(name string) error
	MoveToWorkspace(name string) error
	SetEnabled(enabled bool) (bool, error)
	ToggleEnabled() (bool, error)
}

var _ Daemon = (*ipc.Client)(nil)

// Server exposes the running tilewm daemon as MCP tools.
type Server struct {
	mcpServer *mcpsdk.Server
	daemon    Daemon
}

// NewServer creates a new MCP server talking to the daemon through d.
func NewServer(d Daemon) *Server {
	s := &Server{daemon: d}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "workspace_status",
		Description: "Report whether tiling is enabled, which workspace is focused, and for every workspace its monitor, active layout and windows (title, class, whether it is tiled).",
	}, s.handleWorkspaceStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "workspace_command",
		Description: "Run a tiling action on the focused workspace: focus_next, focus_previous, focus_primary, focus_last, swap_primary, swap_next, swap_previous, next_layout, previous_layout, reset_layout, shrink_primary, expand_primary, increment_primary, decrement_primary, close_focused, relayout or toggle_enabled.",
	}, s.handleWorkspaceCommand)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "switch_workspace",
		Description: "Show a workspace on the focused monitor. A workspace already visible on another monitor swaps places with the current one.",
	}, s.handleSwitchWorkspace)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_window",
		Description: "Move the focused window to another workspace.",
	}, s.handleMoveWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_tiling",
		Description: "Enable or disable tiling. Omit enabled to toggle. While disabled windows keep their own geometry.",
	}, s.handleSetEnabled)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_layouts",
		Description: "List the registered layout engines, the configured cycle order and the layout active on the focused workspace.",
	}, s.handleListLayouts)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List monitors with their usable geometry and the workspace each one shows.",
	}, s.handleListMonitors)
}
