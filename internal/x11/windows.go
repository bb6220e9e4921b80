package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

const (
	stateHidden       = "_NET_WM_STATE_HIDDEN"
	stateMaxHorz      = "_NET_WM_STATE_MAXIMIZED_HORZ"
	stateMaxVert      = "_NET_WM_STATE_MAXIMIZED_VERT"
	stateFullscreen   = "_NET_WM_STATE_FULLSCREEN"
	stateSkipTaskbar  = "_NET_WM_STATE_SKIP_TASKBAR"
	iconicState       = 3
	sourceIndication  = 2 // pager/direct action
	ewmhActionRemove  = 0
	ewmhActionAdd     = 1
	stickyDesktopMask = 0xFFFFFFFF
)

// MoveResizeWindow moves and resizes a window to the specified geometry
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	// Maximized windows ignore geometry requests in most window managers.
	_ = c.UnmaximizeWindow(windowID)

	if err := ewmh.MoveresizeWindow(c.XUtil, windowID, x, y, width, height); err != nil {
		// Fallback to direct window manipulation
		xwindow.New(c.XUtil, windowID).MoveResize(x, y, width, height)
	}
	return nil
}

// UnmaximizeWindow removes maximized state from a window
func (c *Connection) UnmaximizeWindow(windowID xproto.Window) error {
	states, err := c.WindowStates(windowID)
	if err != nil {
		return err
	}
	if !containsState(states, stateMaxHorz) && !containsState(states, stateMaxVert) {
		return nil
	}
	return c.requestWmState(windowID, ewmhActionRemove, stateMaxHorz, stateMaxVert)
}

// MaximizeWindow asks the window manager to maximize a window in both directions.
func (c *Connection) MaximizeWindow(windowID xproto.Window) error {
	return c.requestWmState(windowID, ewmhActionAdd, stateMaxHorz, stateMaxVert)
}

func (c *Connection) requestWmState(windowID xproto.Window, action uint32, first, second string) error {
	firstAtom, err := xprop.Atm(c.XUtil, first)
	if err != nil {
		return err
	}
	secondAtom, err := xprop.Atm(c.XUtil, second)
	if err != nil {
		return err
	}
	return c.sendRootMessage(windowID, "_NET_WM_STATE",
		[]uint32{action, uint32(firstAtom), uint32(secondAtom), sourceIndication, 0})
}

// IconifyWindow minimizes a window via WM_CHANGE_STATE.
func (c *Connection) IconifyWindow(windowID xproto.Window) error {
	return c.sendRootMessage(windowID, "WM_CHANGE_STATE", []uint32{iconicState, 0, 0, 0, 0})
}

// sendRootMessage sends a 32-bit client message about windowID to the root window,
// where the window manager picks it up. Messages are built by hand because the
// xgbutil ewmh request helpers panic on this library version.
func (c *Connection) sendRootMessage(windowID xproto.Window, messageType string, data []uint32) error {
	atom, err := xprop.Atm(c.XUtil, messageType)
	if err != nil {
		return fmt.Errorf("failed to intern %s: %w", messageType, err)
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   atom,
		Data:   xproto.ClientMessageDataUnionData32New(data),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

// MapWindow maps a window. The window manager turns this into a de-iconify.
func (c *Connection) MapWindow(windowID xproto.Window) error {
	return xproto.MapWindowChecked(c.XUtil.Conn(), windowID).Check()
}

// RaiseWindow puts a window on top of its siblings.
func (c *Connection) RaiseWindow(windowID xproto.Window) error {
	return xproto.ConfigureWindowChecked(
		c.XUtil.Conn(),
		windowID,
		xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove},
	).Check()
}

// CloseWindow requests graceful window close via WM_DELETE_WINDOW.
func (c *Connection) CloseWindow(windowID xproto.Window) error {
	deleteReply, err := xproto.InternAtom(c.XUtil.Conn(), false, uint16(len("WM_DELETE_WINDOW")), "WM_DELETE_WINDOW").Reply()
	if err != nil {
		return err
	}
	protocolsReply, err := xproto.InternAtom(c.XUtil.Conn(), false, uint16(len("WM_PROTOCOLS")), "WM_PROTOCOLS").Reply()
	if err != nil {
		return err
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   protocolsReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(deleteReply.Atom), 0, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		windowID,
		xproto.EventMaskNoEvent,
		string(ev.Bytes()),
	).Check()
}

// WindowStates returns the _NET_WM_STATE atoms set on a window.
func (c *Connection) WindowStates(windowID xproto.Window) ([]string, error) {
	return ewmh.WmStateGet(c.XUtil, windowID)
}

// IsIconified reports whether the window manager has hidden the window.
func (c *Connection) IsIconified(windowID xproto.Window) bool {
	if hints, err := icccm.WmStateGet(c.XUtil, windowID); err == nil && hints.State == icccm.StateIconic {
		return true
	}
	states, err := c.WindowStates(windowID)
	return err == nil && containsState(states, stateHidden)
}

// IsMaximized reports whether both maximized states are set.
func (c *Connection) IsMaximized(windowID xproto.Window) bool {
	states, err := c.WindowStates(windowID)
	if err != nil {
		return false
	}
	return containsState(states, stateMaxHorz) && containsState(states, stateMaxVert)
}

// IsFullscreen reports whether the window is in fullscreen state.
func (c *Connection) IsFullscreen(windowID xproto.Window) bool {
	states, err := c.WindowStates(windowID)
	return err == nil && containsState(states, stateFullscreen)
}

// SkipsTaskbar reports whether the window asked to be left out of taskbars.
func (c *Connection) SkipsTaskbar(windowID xproto.Window) bool {
	states, err := c.WindowStates(windowID)
	return err == nil && containsState(states, stateSkipTaskbar)
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}

	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_NORMAL":
			return true
		case "_NET_WM_WINDOW_TYPE_DESKTOP",
			"_NET_WM_WINDOW_TYPE_DOCK",
			"_NET_WM_WINDOW_TYPE_SPLASH",
			"_NET_WM_WINDOW_TYPE_DIALOG",
			"_NET_WM_WINDOW_TYPE_NOTIFICATION":
			return false
		}
	}

	// If no specific type is set, assume it's normal
	return len(types) == 0
}

// IsTransient reports whether the window is a transient for another window.
func (c *Connection) IsTransient(windowID xproto.Window) bool {
	owner, err := icccm.WmTransientForGet(c.XUtil, windowID)
	return err == nil && owner != 0
}

// WindowGeometry returns the window rectangle in root coordinates.
func (c *Connection) WindowGeometry(windowID xproto.Window) (x, y, width, height int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return 0, 0, 0, 0, err
	}
	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(), windowID, c.Root, 0, 0).Reply()
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return int(translate.DstX), int(translate.DstY), int(geom.Width), int(geom.Height), nil
}

// WindowClass returns the WM_CLASS class part.
func (c *Connection) WindowClass(windowID xproto.Window) string {
	wmClass, err := icccm.WmClassGet(c.XUtil, windowID)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(wmClass.Class)
}

// WindowTitle returns _NET_WM_NAME, falling back to WM_NAME.
func (c *Connection) WindowTitle(windowID xproto.Window) string {
	if title, err := ewmh.WmNameGet(c.XUtil, windowID); err == nil {
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}
	if title, err := icccm.WmNameGet(c.XUtil, windowID); err == nil {
		return strings.TrimSpace(title)
	}
	return ""
}

// WindowPid returns _NET_WM_PID or 0 when unset.
func (c *Connection) WindowPid(windowID xproto.Window) int {
	pid, err := ewmh.WmPidGet(c.XUtil, windowID)
	if err != nil {
		return 0
	}
	return int(pid)
}

// PointerButtonsDown reports whether the left or right mouse button is held, which
// is how an interactive move or resize shows up to other clients.
func (c *Connection) PointerButtonsDown() bool {
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return false
	}
	return pointer.Mask&(xproto.KeyButMaskButton1|xproto.KeyButMaskButton3) != 0
}

func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

func hasWindowType(c *Connection, windowID xproto.Window, want string) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}

func containsState(states []string, want string) bool {
	for _, s := range states {
		if s == want {
			return true
		}
	}
	return false
}
