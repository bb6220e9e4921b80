package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// WatchRootProperties calls fn with the atom name of every root window property
// change, e.g. _NET_CLIENT_LIST or _NET_ACTIVE_WINDOW. Callbacks run on the event
// loop goroutine.
func (c *Connection) WatchRootProperties(fn func(atom string)) error {
	root := xwindow.New(c.XUtil, c.Root)
	if err := root.Listen(xproto.EventMaskPropertyChange); err != nil {
		return fmt.Errorf("failed to listen on root window: %w", err)
	}

	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		name, err := xprop.AtomName(xu, ev.Atom)
		if err != nil {
			return
		}
		fn(name)
	}).Connect(c.XUtil, c.Root)
	return nil
}

// WatchWindowProperties calls fn when a property on windowID changes. Used to follow
// title and state changes of managed windows.
func (c *Connection) WatchWindowProperties(windowID xproto.Window, fn func(atom string)) error {
	win := xwindow.New(c.XUtil, windowID)
	if err := win.Listen(xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify); err != nil {
		return fmt.Errorf("failed to listen on window %d: %w", windowID, err)
	}

	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		name, err := xprop.AtomName(xu, ev.Atom)
		if err != nil {
			return
		}
		fn(name)
	}).Connect(c.XUtil, windowID)
	xevent.ConfigureNotifyFun(func(xu *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		fn("ConfigureNotify")
	}).Connect(c.XUtil, windowID)
	return nil
}

// UnwatchWindow drops every event callback registered for windowID.
func (c *Connection) UnwatchWindow(windowID xproto.Window) {
	xevent.Detach(c.XUtil, windowID)
}
