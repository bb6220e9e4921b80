//go:build linux

package platform

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/1broseidon/tilewm/internal/tiling"
	"github.com/1broseidon/tilewm/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// Window is the X11 implementation of tiling.Window.
//
// Native failures are logged and swallowed: the tiling core has no use for them and
// a window that vanished mid-operation is cleaned up by the next sync.
type Window struct {
	id     xproto.Window
	conn   *x11.Connection
	logger *slog.Logger

	// manualHide is set when tilewm iconified the window to park its workspace, so
	// the window still counts as layout-eligible and is restored on show.
	manualHide atomic.Bool

	pid             int
	processName     string
	processFileName string
}

var _ tiling.Window = (*Window)(nil)

func newWindow(conn *x11.Connection, id xproto.Window, logger *slog.Logger) *Window {
	w := &Window{
		id:     id,
		conn:   conn,
		logger: logger.With("window", uint32(id)),
		pid:    conn.WindowPid(id),
	}
	w.processName, w.processFileName = processNames(w.pid)
	return w
}

// processNames reads the command name and executable base name from procfs.
func processNames(pid int) (name, fileName string) {
	if pid <= 0 {
		return "", ""
	}
	dir := filepath.Join("/proc", strconv.Itoa(pid))
	if data, err := os.ReadFile(filepath.Join(dir, "comm")); err == nil {
		name = strings.TrimSpace(string(data))
	}
	if exe, err := os.Readlink(filepath.Join(dir, "exe")); err == nil {
		fileName = filepath.Base(exe)
	}
	return name, fileName
}

func (w *Window) Handle() tiling.WindowHandle { return tiling.WindowHandle(w.id) }
func (w *Window) Title() string               { return w.conn.WindowTitle(w.id) }
func (w *Window) Class() string               { return w.conn.WindowClass(w.id) }
func (w *Window) ProcessID() int              { return w.pid }
func (w *Window) ProcessName() string         { return w.processName }
func (w *Window) ProcessFileName() string     { return w.processFileName }

// DidManualHide reports whether tilewm hid the window.
func (w *Window) DidManualHide() bool { return w.manualHide.Load() }

func (w *Window) Location() tiling.WindowLocation {
	x, y, width, height, err := w.conn.WindowGeometry(w.id)
	if err != nil {
		w.logger.Debug("geometry query failed", "error", err)
	}
	state := tiling.Normal
	switch {
	case w.IsMinimized():
		state = tiling.Minimized
	case w.IsMaximized():
		state = tiling.Maximized
	}
	return tiling.WindowLocation{X: x, Y: y, Width: width, Height: height, State: state}
}

func (w *Window) CanLayout() bool {
	if w.manualHide.Load() {
		return true
	}
	return !w.conn.IsIconified(w.id) && !w.conn.IsFullscreen(w.id)
}

func (w *Window) IsFocused() bool {
	active, err := w.conn.GetActiveWindow()
	return err == nil && active == w.id
}

func (w *Window) IsMinimized() bool { return w.conn.IsIconified(w.id) }
func (w *Window) IsMaximized() bool { return w.conn.IsMaximized(w.id) }

// IsMouseMoving reports an interactive drag: the window is focused and a pointer
// button is held.
func (w *Window) IsMouseMoving() bool {
	return w.conn.PointerButtonsDown() && w.IsFocused()
}

func (w *Window) Focus() {
	if w.IsFocused() {
		return
	}
	w.logger.Debug("focus")
	w.check("focus", w.conn.FocusWindow(w.id))
}

// Hide iconifies the window. It stays in the client list so workspace membership
// survives the round trip.
func (w *Window) Hide() {
	if w.CanLayout() {
		w.manualHide.Store(true)
	}
	w.check("hide", w.conn.IconifyWindow(w.id))
}

func (w *Window) ShowNormal() {
	w.manualHide.Store(false)
	w.check("map", w.conn.MapWindow(w.id))
	w.check("unmaximize", w.conn.UnmaximizeWindow(w.id))
}

func (w *Window) ShowMaximized() {
	w.manualHide.Store(false)
	w.check("map", w.conn.MapWindow(w.id))
	w.check("maximize", w.conn.MaximizeWindow(w.id))
}

func (w *Window) ShowMinimized() {
	w.manualHide.Store(false)
	if !w.conn.IsIconified(w.id) {
		w.check("iconify", w.conn.IconifyWindow(w.id))
	}
}

// ShowInCurrentState re-applies the window's own display state. A window tilewm
// hid is still iconic, so only its maximized flag decides how it comes back.
func (w *Window) ShowInCurrentState() {
	hidden := w.manualHide.Load()
	minimized := !hidden && w.IsMinimized()
	switch currentState(hidden, minimized, w.IsMaximized()) {
	case tiling.Minimized:
		w.ShowMinimized()
	case tiling.Maximized:
		w.ShowMaximized()
	default:
		w.ShowNormal()
	}
}

// currentState picks the state ShowInCurrentState restores. Minimized wins unless
// tilewm did the minimizing.
func currentState(manualHide, minimized, maximized bool) tiling.DisplayState {
	switch {
	case minimized && !manualHide:
		return tiling.Minimized
	case maximized:
		return tiling.Maximized
	default:
		return tiling.Normal
	}
}

func (w *Window) BringToTop() {
	w.check("raise", w.conn.RaiseWindow(w.id))
}

func (w *Window) Close() {
	w.logger.Debug("close")
	w.check("close", w.conn.CloseWindow(w.id))
}

func (w *Window) String() string {
	return fmt.Sprintf("[%d][%s][%s][%s]", uint32(w.id), w.Title(), w.Class(), w.processName)
}

func (w *Window) check(op string, err error) {
	if err != nil {
		w.logger.Debug("window operation failed", "op", op, "error", err)
	}
}
