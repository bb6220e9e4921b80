package daemon

import (
	"fmt"
	"sort"
	"strings"

	"github.com/1broseidon/tilewm/internal/tiling"
)

// workspaceActions maps an action name to the operation it runs on the focused workspace.
var workspaceActions = map[string]func(*tiling.Workspace){
	"focus_next":        (*tiling.Workspace).FocusNextWindow,
	"focus_previous":    (*tiling.Workspace).FocusPreviousWindow,
	"focus_primary":     (*tiling.Workspace).FocusPrimaryWindow,
	"focus_last":        (*tiling.Workspace).FocusLastFocusedWindow,
	"swap_primary":      (*tiling.Workspace).SwapFocusAndPrimaryWindow,
	"swap_next":         (*tiling.Workspace).SwapFocusAndNextWindow,
	"swap_previous":     (*tiling.Workspace).SwapFocusAndPreviousWindow,
	"next_layout":       (*tiling.Workspace).NextLayoutEngine,
	"previous_layout":   (*tiling.Workspace).PreviousLayoutEngine,
	"reset_layout":      (*tiling.Workspace).ResetLayout,
	"shrink_primary":    (*tiling.Workspace).ShrinkPrimaryArea,
	"expand_primary":    (*tiling.Workspace).ExpandPrimaryArea,
	"increment_primary": (*tiling.Workspace).IncrementNumberOfPrimaryWindows,
	"decrement_primary": (*tiling.Workspace).DecrementNumberOfPrimaryWindows,
	"close_focused":     (*tiling.Workspace).CloseFocusedWindow,
}

// Actions returns every plain action name Dispatch accepts, sorted.
func Actions() []string {
	names := make([]string, 0, len(workspaceActions)+2)
	for name := range workspaceActions {
		names = append(names, name)
	}
	names = append(names, "relayout", "toggle_enabled")
	sort.Strings(names)
	return names
}

// Dispatch runs a named action. Besides the workspace actions it accepts
// "relayout", "toggle_enabled", "workspace:<name>" and "move:<name>".
func (m *Manager) Dispatch(action string) error {
	if name, ok := strings.CutPrefix(action, "workspace:"); ok {
		return m.SwitchToWorkspace(name)
	}
	if name, ok := strings.CutPrefix(action, "move:"); ok {
		return m.MoveFocusedWindowToWorkspace(name)
	}

	switch action {
	case "relayout":
		m.LayoutAll()
		return nil
	case "toggle_enabled":
		m.ToggleEnabled()
		return nil
	}

	op, ok := workspaceActions[action]
	if !ok {
		return fmt.Errorf("unknown action %q", action)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ws := m.focusedWorkspace()
	if ws == nil {
		return ErrNoFocusedWorkspace
	}
	m.logger.Debug("dispatch", "action", action, "workspace", ws.Name())
	op(ws)
	return nil
}
