package palette

import (
	"fmt"

	"github.com/1broseidon/tilewm/internal/ipc"
)

// layoutActions are offered under the Layout submenu.
var layoutActions = []struct{ label, action string }{
	{"Next layout", "next_layout"},
	{"Previous layout", "previous_layout"},
	{"Reset layout", "reset_layout"},
	{"Shrink primary area", "shrink_primary"},
	{"Expand primary area", "expand_primary"},
	{"More primary windows", "increment_primary"},
	{"Fewer primary windows", "decrement_primary"},
	{"Relayout all", "relayout"},
}

// WorkspaceMenu builds the palette menu from daemon status. Selected actions use the
// daemon's action names, with workspace:<name> and move:<name> for workspace changes.
func WorkspaceMenu(status *ipc.StatusData) []MenuItem {
	items := []MenuItem{{Label: "Workspaces", IsHeader: true}}

	move := make([]MenuItem, 0, len(status.Workspaces))
	for _, ws := range status.Workspaces {
		label := fmt.Sprintf("%s  [%s, %d windows]", ws.Name, ws.Layout, len(ws.Windows))
		if ws.Monitor != "" {
			label += " on " + ws.Monitor
		}
		items = append(items, MenuItem{
			Label:    label,
			Action:   "workspace:" + ws.Name,
			Icon:     "preferences-desktop-display",
			Meta:     windowMeta(ws),
			IsActive: ws.Name == status.FocusedWorkspace,
		})
		if ws.Name != status.FocusedWorkspace {
			move = append(move, MenuItem{Label: ws.Name, Action: "move:" + ws.Name})
		}
	}

	layout := make([]MenuItem, 0, len(layoutActions))
	for _, a := range layoutActions {
		layout = append(layout, MenuItem{Label: a.label, Action: a.action})
	}

	toggle := "Disable tiling"
	if !status.Enabled {
		toggle = "Enable tiling"
	}

	items = append(items, MenuItem{Label: "Actions", IsHeader: true})
	if len(move) > 0 {
		items = append(items, MenuItem{Label: "Move focused window", Icon: "window-new", Submenu: move})
	}
	items = append(items,
		MenuItem{Label: "Layout", Icon: "view-grid", Submenu: layout},
		MenuItem{Label: toggle, Action: "toggle_enabled", Icon: "system-run"},
	)
	return items
}

func windowMeta(ws ipc.WorkspaceStatus) string {
	meta := ""
	for _, w := range ws.Windows {
		meta += " " + w.Class + " " + w.Title
	}
	return meta
}
