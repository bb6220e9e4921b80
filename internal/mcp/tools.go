package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/tilewm/internal/ipc"
)

func (s *Server) handleWorkspaceStatus(_ context.Context, _ *mcpsdk.CallToolRequest, args WorkspaceStatusInput) (*mcpsdk.CallToolResult, WorkspaceStatusOutput, error) {
	status, err := s.daemon.GetStatus()
	if err != nil {
		return nil, WorkspaceStatusOutput{}, err
	}

	out := WorkspaceStatusOutput{
		Enabled:          status.Enabled,
		FocusedWorkspace: status.FocusedWorkspace,
		Workspaces:       status.Workspaces,
	}
	if name := strings.TrimSpace(args.Workspace); name != "" {
		ws, ok := findWorkspace(status, name)
		if !ok {
			return nil, WorkspaceStatusOutput{}, fmt.Errorf("unknown workspace %q", name)
		}
		out.Workspaces = []ipc.WorkspaceStatus{ws}
	}
	return nil, out, nil
}

func (s *Server) handleWorkspaceCommand(_ context.Context, _ *mcpsdk.CallToolRequest, args WorkspaceCommandInput) (*mcpsdk.CallToolResult, WorkspaceCommandOutput, error) {
	action := strings.TrimSpace(args.Action)
	if action == "" {
		return nil, WorkspaceCommandOutput{}, fmt.Errorf("action is required")
	}
	if err := s.daemon.Command(action); err != nil {
		return nil, WorkspaceCommandOutput{}, err
	}

	out := WorkspaceCommandOutput{Action: action}
	if status, err := s.daemon.GetStatus(); err == nil {
		out.FocusedWorkspace = status.FocusedWorkspace
		if ws, ok := findWorkspace(status, status.FocusedWorkspace); ok {
			out.Layout = ws.Layout
		}
	}
	return nil, out, nil
}

func (s *Server) handleSwitchWorkspace(_ context.Context, _ *mcpsdk.CallToolRequest, args SwitchWorkspaceInput) (*mcpsdk.CallToolResult, WorkspaceChangeOutput, error) {
	name := strings.TrimSpace(args.Workspace)
	if name == "" {
		return nil, WorkspaceChangeOutput{}, fmt.Errorf("workspace is required")
	}
	if err := s.daemon.SwitchWorkspace(name); err != nil {
		return nil, WorkspaceChangeOutput{}, err
	}
	return nil, s.focusedOutput(), nil
}

func (s *Server) handleMoveWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveWindowInput) (*mcpsdk.CallToolResult, WorkspaceChangeOutput, error) {
	name := strings.TrimSpace(args.Workspace)
	if name == "" {
		return nil, WorkspaceChangeOutput{}, fmt.Errorf("workspace is required")
	}
	if err := s.daemon.MoveToWorkspace(name); err != nil {
		return nil, WorkspaceChangeOutput{}, err
	}
	return nil, s.focusedOutput(), nil
}

func (s *Server) handleSetEnabled(_ context.Context, _ *mcpsdk.CallToolRequest, args SetEnabledInput) (*mcpsdk.CallToolResult, SetEnabledOutput, error) {
	var (
		enabled bool
		err     error
	)
	if args.Enabled == nil {
		enabled, err = s.daemon.ToggleEnabled()
	} else {
		enabled, err = s.daemon.SetEnabled(*args.Enabled)
	}
	if err != nil {
		return nil, SetEnabledOutput{}, err
	}
	return nil, SetEnabledOutput{Enabled: enabled}, nil
}

func (s *Server) handleListLayouts(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListLayoutsInput) (*mcpsdk.CallToolResult, ListLayoutsOutput, error) {
	layouts, err := s.daemon.ListLayouts()
	if err != nil {
		return nil, ListLayoutsOutput{}, err
	}
	return nil, ListLayoutsOutput{
		Registered:   layouts.Registered,
		Cycle:        layouts.Cycle,
		ActiveLayout: layouts.ActiveLayout,
	}, nil
}

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	monitors, err := s.daemon.GetMonitors()
	if err != nil {
		return nil, ListMonitorsOutput{}, err
	}
	return nil, ListMonitorsOutput{Monitors: monitors.Monitors}, nil
}

// focusedOutput reports the focused workspace; a failed status query leaves it empty.
func (s *Server) focusedOutput() WorkspaceChangeOutput {
	status, err := s.daemon.GetStatus()
	if err != nil {
		return WorkspaceChangeOutput{}
	}
	return WorkspaceChangeOutput{FocusedWorkspace: status.FocusedWorkspace}
}

func findWorkspace(status *ipc.StatusData, name string) (ipc.WorkspaceStatus, bool) {
	for _, ws := range status.Workspaces {
		if ws.Name == name {
			return ws, true
		}
	}
	return ipc.WorkspaceStatus{}, false
}
