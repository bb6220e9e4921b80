package platform

import (
	"github.com/1broseidon/tilewm/internal/tiling"
)

// Backend abstracts window-system operations for the daemon.
type Backend interface {
	// Monitors returns the usable area of each monitor, ordered left to right.
	Monitors() ([]tiling.Monitor, error)
	// ActiveWindow returns the focused window handle, or 0 when none.
	ActiveWindow() (tiling.WindowHandle, error)
	// ListWindows returns the manageable top-level windows on the current desktop.
	ListWindows() ([]tiling.Window, error)
	// Window returns the single cached window object for a handle.
	Window(handle tiling.WindowHandle) tiling.Window
	// Forget drops a destroyed window from the cache.
	Forget(handle tiling.WindowHandle)

	tiling.Deferrer
}
