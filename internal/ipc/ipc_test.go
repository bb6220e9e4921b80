package ipc

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// fakeController is called from server goroutines; mu guards every field.
type fakeController struct {
	mu        sync.Mutex
	enabled   bool
	actions   []string
	switched  []string
	moved     []string
	workspace map[string]bool
}

func newFakeController() *fakeController {
	return &fakeController{
		enabled:   true,
		workspace: map[string]bool{"one": true, "two": true},
	}
}

func (f *fakeController) Status() StatusData {
	f.mu.Lock()
	defer f.mu.Unlock()
	return StatusData{
		Enabled:          f.enabled,
		FocusedWorkspace: "one",
		Workspaces: []WorkspaceStatus{
			{Name: "one", Monitor: "left", Layout: "tall", Focused: true, Windows: []WindowStatus{
				{Handle: 7, Title: "term - vim", Class: "Alacritty", Tiled: true},
			}},
			{Name: "two", Layout: "tall"},
		},
	}
}

func (f *fakeController) Monitors() ([]MonitorInfo, error) {
	return []MonitorInfo{{ID: 0, Name: "left", Width: 1920, Height: 1080, Workspace: "one"}}, nil
}

func (f *fakeController) Layouts() LayoutsData {
	return LayoutsData{Registered: []string{"full", "grid", "tall", "wide"}, Cycle: []string{"tall", "full"}, ActiveLayout: "tall"}
}

func (f *fakeController) Dispatch(action string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if action == "bogus" {
		return fmt.Errorf("unknown action %q", action)
	}
	f.actions = append(f.actions, action)
	return nil
}

func (f *fakeController) SwitchToWorkspace(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.workspace[name] {
		return fmt.Errorf("unknown workspace %q", name)
	}
	f.switched = append(f.switched, name)
	return nil
}

func (f *fakeController) MoveFocusedWindowToWorkspace(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.moved = append(f.moved, name)
	return nil
}

func (f *fakeController) SetEnabled(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enabled = enabled
}

func (f *fakeController) snapshot() (actions, switched, moved []string, enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.actions, f.switched, f.moved, f.enabled
}

func (f *fakeController) ToggleEnabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enabled = !f.enabled
	return f.enabled
}

func startServer(t *testing.T, ctrl Controller, reload ReloadFunc) *Client {
	t.Helper()
	socket := filepath.Join(t.TempDir(), "tilewm.sock")
	srv := NewServerAt(socket, ctrl, reload)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	t.Cleanup(srv.Stop)
	return NewClientAt(socket)
}

func TestClientServer_Status(t *testing.T) {
	client := startServer(t, newFakeController(), nil)

	status, err := client.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus error: %v", err)
	}
	if !status.DaemonRunning || !status.Enabled {
		t.Fatalf("unexpected status: %+v", status)
	}
	if status.FocusedWorkspace != "one" || len(status.Workspaces) != 2 {
		t.Fatalf("unexpected workspaces: %+v", status.Workspaces)
	}
	if got := status.Workspaces[0].Windows[0].Class; got != "Alacritty" {
		t.Fatalf("unexpected window class %q", got)
	}
}

func TestClientServer_MonitorsAndLayouts(t *testing.T) {
	client := startServer(t, newFakeController(), nil)

	monitors, err := client.GetMonitors()
	if err != nil {
		t.Fatalf("GetMonitors error: %v", err)
	}
	if len(monitors.Monitors) != 1 || monitors.Monitors[0].Workspace != "one" {
		t.Fatalf("unexpected monitors: %+v", monitors)
	}

	layouts, err := client.ListLayouts()
	if err != nil {
		t.Fatalf("ListLayouts error: %v", err)
	}
	if layouts.ActiveLayout != "tall" || len(layouts.Cycle) != 2 {
		t.Fatalf("unexpected layouts: %+v", layouts)
	}
}

func TestClientServer_CommandsReachController(t *testing.T) {
	ctrl := newFakeController()
	client := startServer(t, ctrl, nil)

	if err := client.Command("focus_next"); err != nil {
		t.Fatalf("Command error: %v", err)
	}
	if err := client.SwitchWorkspace("two"); err != nil {
		t.Fatalf("SwitchWorkspace error: %v", err)
	}
	if err := client.MoveToWorkspace("one"); err != nil {
		t.Fatalf("MoveToWorkspace error: %v", err)
	}

	actions, switched, moved, _ := ctrl.snapshot()
	if len(actions) != 1 || actions[0] != "focus_next" {
		t.Fatalf("unexpected actions: %v", actions)
	}
	if len(switched) != 1 || switched[0] != "two" {
		t.Fatalf("unexpected switches: %v", switched)
	}
	if len(moved) != 1 || moved[0] != "one" {
		t.Fatalf("unexpected moves: %v", moved)
	}
}

func TestClientServer_ControllerErrorsBecomeDaemonErrors(t *testing.T) {
	client := startServer(t, newFakeController(), nil)

	err := client.Command("bogus")
	if err == nil || !strings.Contains(err.Error(), "daemon error: unknown action") {
		t.Fatalf("expected daemon error, got %v", err)
	}
	if err := client.SwitchWorkspace("nope"); err == nil {
		t.Fatalf("expected error for unknown workspace")
	}
	if err := client.SwitchWorkspace(""); err == nil || !strings.Contains(err.Error(), "workspace is required") {
		t.Fatalf("expected required error, got %v", err)
	}
}

func TestClientServer_SetEnabledAndToggle(t *testing.T) {
	ctrl := newFakeController()
	client := startServer(t, ctrl, nil)

	enabled, err := client.SetEnabled(false)
	if err != nil || enabled {
		t.Fatalf("SetEnabled(false) = %v, %v", enabled, err)
	}
	if _, _, _, on := ctrl.snapshot(); on {
		t.Fatalf("controller still enabled")
	}

	enabled, err = client.ToggleEnabled()
	if err != nil || !enabled {
		t.Fatalf("ToggleEnabled() = %v, %v", enabled, err)
	}
}

func TestClientServer_Reload(t *testing.T) {
	var calls atomic.Int32
	client := startServer(t, newFakeController(), func() error {
		if calls.Add(1) > 1 {
			return errors.New("bad yaml")
		}
		return nil
	})

	if err := client.Reload(); err != nil {
		t.Fatalf("Reload error: %v", err)
	}
	if err := client.Reload(); err == nil || !strings.Contains(err.Error(), "bad yaml") {
		t.Fatalf("expected reload failure, got %v", err)
	}
}

func TestClientServer_ReloadUnsupported(t *testing.T) {
	client := startServer(t, newFakeController(), nil)
	if err := client.Reload(); err == nil {
		t.Fatalf("expected error when reload is not wired")
	}
}

func TestServer_UnknownCommand(t *testing.T) {
	srv := NewServerAt(filepath.Join(t.TempDir(), "unused.sock"), newFakeController(), nil)
	resp := srv.handleCommand(&Request{Command: "SHUTDOWN"})
	if resp.Status != "ERROR" || !strings.Contains(resp.Error, "Unknown command") {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestClient_NoDaemon(t *testing.T) {
	client := NewClientAt(filepath.Join(t.TempDir(), "missing.sock"))
	if err := client.Ping(); err == nil || !strings.Contains(err.Error(), "is the daemon running?") {
		t.Fatalf("expected connection error, got %v", err)
	}
}

func TestParseRequest_Invalid(t *testing.T) {
	if _, err := ParseRequest([]byte("{not json")); err == nil {
		t.Fatalf("expected parse error")
	}
}
