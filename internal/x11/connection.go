package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection establishes a connection to the X11 server and initializes required extensions
func NewConnection() (*Connection, error) {
	return NewConnectionDisplay("")
}

// NewConnectionDisplay connects to a specific display, e.g. ":1". An empty display
// uses $DISPLAY.
func NewConnectionDisplay(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, err
	}

	// Initialize keybind module (required for global hotkeys)
	keybind.Initialize(xu)

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// EventLoop starts the main X11 event loop (blocking)
func (c *Connection) EventLoop() {
	xevent.Main(c.XUtil)
}

// Quit stops a running EventLoop.
func (c *Connection) Quit() {
	xevent.Quit(c.XUtil)
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// Batch runs fn with the server grabbed so the window manager and other clients
// observe every request fn issues at once. The grab is always released.
func (c *Connection) Batch(fn func() error) (err error) {
	conn := c.XUtil.Conn()
	if gerr := xproto.GrabServerChecked(conn).Check(); gerr != nil {
		return fmt.Errorf("failed to grab server: %w", gerr)
	}
	defer func() {
		if uerr := xproto.UngrabServerChecked(conn).Check(); uerr != nil && err == nil {
			err = fmt.Errorf("failed to ungrab server: %w", uerr)
		}
		conn.Sync()
	}()
	return fn()
}
