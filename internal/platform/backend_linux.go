//go:build linux

package platform

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/1broseidon/tilewm/internal/tiling"
	"github.com/1broseidon/tilewm/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// LinuxBackend wraps an existing X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn   *x11.Connection
	logger *slog.Logger

	mu      sync.Mutex
	windows map[tiling.WindowHandle]*Window
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection, logger *slog.Logger) *LinuxBackend {
	if logger == nil {
		logger = slog.Default()
	}
	return &LinuxBackend{
		conn:    conn,
		logger:  logger.With("component", "x11"),
		windows: make(map[tiling.WindowHandle]*Window),
	}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay(display string, logger *slog.Logger) (*LinuxBackend, error) {
	conn, err := x11.NewConnectionDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return NewLinuxBackend(conn, logger), nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// Quit stops EventLoop.
func (b *LinuxBackend) Quit() {
	if b != nil && b.conn != nil {
		b.conn.Quit()
	}
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the X11 root window ID.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

// Monitors returns the usable area of every active monitor.
func (b *LinuxBackend) Monitors() ([]tiling.Monitor, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.GetUsableMonitors()
	if err != nil {
		return nil, err
	}

	out := make([]tiling.Monitor, 0, len(monitors))
	for _, m := range monitors {
		out = append(out, tiling.Monitor{
			Name:   m.Name,
			X:      m.X,
			Y:      m.Y,
			Width:  m.Width,
			Height: m.Height,
		})
	}
	return out, nil
}

// ActiveWindow returns the currently active/focused window ID.
func (b *LinuxBackend) ActiveWindow() (tiling.WindowHandle, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}

	wid, err := conn.GetActiveWindow()
	if err != nil {
		return 0, err
	}
	return tiling.WindowHandle(wid), nil
}

// ListWindows lists the manageable windows of the current desktop in client list order.
// Dialogs, docks, transients and windows that skip the taskbar are left out.
func (b *LinuxBackend) ListWindows() ([]tiling.Window, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	clients, err := conn.ClientList()
	if err != nil {
		return nil, err
	}

	windows := make([]tiling.Window, 0, len(clients))
	for _, id := range clients {
		if !b.manageable(id) {
			continue
		}
		windows = append(windows, b.window(id))
	}
	return windows, nil
}

func (b *LinuxBackend) manageable(id xproto.Window) bool {
	return b.conn.IsNormalWindow(id) && !b.conn.IsTransient(id) && !b.conn.SkipsTaskbar(id)
}

// Window returns the cached window for a handle, creating it on first use. The
// same *Window is returned until Forget is called.
func (b *LinuxBackend) Window(handle tiling.WindowHandle) tiling.Window {
	return b.window(xproto.Window(handle))
}

func (b *LinuxBackend) window(id xproto.Window) *Window {
	b.mu.Lock()
	defer b.mu.Unlock()

	handle := tiling.WindowHandle(id)
	if w, ok := b.windows[handle]; ok {
		return w
	}
	w := newWindow(b.conn, id, b.logger)
	b.windows[handle] = w
	return w
}

// Forget drops a window from the cache.
func (b *LinuxBackend) Forget(handle tiling.WindowHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.windows, handle)
}

// DeferWindowsPos starts a batch of window moves applied atomically on Close.
func (b *LinuxBackend) DeferWindowsPos(count int) tiling.DeferredMoves {
	return newMoveBatch(b.conn, b.logger, count)
}

// WatchRoot reports client list and active window changes. Callbacks run on the
// event loop goroutine.
func (b *LinuxBackend) WatchRoot(onClients func(), onActive func(tiling.WindowHandle)) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.WatchRootProperties(func(atom string) {
		switch atom {
		case "_NET_CLIENT_LIST", "_NET_CURRENT_DESKTOP":
			if onClients != nil {
				onClients()
			}
		case "_NET_ACTIVE_WINDOW":
			if onActive == nil {
				return
			}
			active, err := b.ActiveWindow()
			if err != nil {
				b.logger.Debug("active window query failed", "error", err)
				return
			}
			onActive(active)
		}
	})
}

// WatchWindow reports property and geometry changes of one window.
func (b *LinuxBackend) WatchWindow(handle tiling.WindowHandle, onChange func(tiling.WindowUpdateType)) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	id := xproto.Window(handle)
	return conn.WatchWindowProperties(id, func(atom string) {
		switch atom {
		case "_NET_WM_NAME", "WM_NAME":
			onChange(tiling.TitleChange)
		case "WM_STATE":
			if conn.IsIconified(id) {
				onChange(tiling.MinimizeStart)
			} else {
				onChange(tiling.MinimizeEnd)
			}
		case "ConfigureNotify":
			onChange(tiling.Move)
		}
	})
}

// UnwatchWindow stops WatchWindow callbacks for handle.
func (b *LinuxBackend) UnwatchWindow(handle tiling.WindowHandle) {
	if b != nil && b.conn != nil {
		b.conn.UnwatchWindow(xproto.Window(handle))
	}
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}
