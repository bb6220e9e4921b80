package tiling

import (
	"fmt"
	"log/slog"
)

// Workspace is a named set of windows tiled by one active layout engine at a time.
//
// A Workspace is not safe for concurrent use. All entry points are expected to be
// called from one goroutine (or under one lock held by the caller), and every
// mutating call finishes with a synchronous layout pass.
type Workspace struct {
	ctx    Context
	logger *slog.Logger

	name    string
	windows []Window

	engines     []LayoutEngine
	layoutIndex int

	// lastFocused is looked up by handle among the members; the workspace never owns
	// the window behind it.
	lastFocused    WindowHandle
	hasLastFocused bool

	indicating bool
}

// NewWorkspace creates a workspace. It panics when no layout engines are given.
func NewWorkspace(ctx Context, name string, engines ...LayoutEngine) *Workspace {
	if len(engines) == 0 {
		panic(fmt.Sprintf("tiling: workspace %q created without layout engines", name))
	}

	owned := make([]LayoutEngine, len(engines))
	copy(owned, engines)

	return &Workspace{
		ctx:     ctx,
		logger:  ctx.logger().With("workspace", name),
		name:    name,
		engines: owned,
	}
}

// Name returns the workspace name.
func (ws *Workspace) Name() string { return ws.name }

func (ws *Workspace) String() string { return ws.name }

// Windows returns a copy of the member windows in insertion order.
func (ws *Workspace) Windows() []Window {
	out := make([]Window, len(ws.windows))
	copy(out, ws.windows)
	return out
}

// ContainsWindow reports whether w is a member.
func (ws *Workspace) ContainsWindow(w Window) bool {
	return ws.indexOf(w) >= 0
}

// FocusedWindow returns the member the OS reports as focused, or nil.
func (ws *Workspace) FocusedWindow() Window {
	for _, w := range ws.windows {
		if w.IsFocused() {
			return w
		}
	}
	return nil
}

// LastFocusedWindow returns the most recently focused member, or nil.
func (ws *Workspace) LastFocusedWindow() Window {
	if !ws.hasLastFocused {
		return nil
	}
	for _, w := range ws.windows {
		if w.Handle() == ws.lastFocused {
			return w
		}
	}
	return nil
}

// LayoutName returns the name of the active layout engine.
func (ws *Workspace) LayoutName() string { return ws.engine().Name() }

// ActiveLayoutEngine returns the engine used by DoLayout.
func (ws *Workspace) ActiveLayoutEngine() LayoutEngine { return ws.engine() }

// IsIndicating reports the transient indicator flag used by status displays.
func (ws *Workspace) IsIndicating() bool { return ws.indicating }

// SetIndicating sets the indicator flag. It has no effect on layout.
func (ws *Workspace) SetIndicating(v bool) { ws.indicating = v }

// AddWindow appends w. A window that is already focused becomes the last focused
// window when none is recorded yet.
func (ws *Workspace) AddWindow(w Window, relayout bool) {
	if w == nil || ws.ContainsWindow(w) {
		return
	}

	if !ws.hasLastFocused && w.IsFocused() {
		ws.setLastFocused(w)
	}

	ws.windows = append(ws.windows, w)
	ws.logger.Debug("window added", "handle", w.Handle(), "count", len(ws.windows))

	if relayout {
		ws.DoLayout()
	}
}

// RemoveWindow drops w. If w was the last focused window, focus history moves to the
// next window of the layout-eligible list as it was before the removal.
func (ws *Workspace) RemoveWindow(w Window, relayout bool) {
	if w == nil {
		return
	}

	if ws.hasLastFocused && ws.lastFocused == w.Handle() {
		windows := ws.windowsForLayout()
		if len(windows) > 1 {
			next := windows[(indexIn(windows, w)+1)%len(windows)]
			ws.setLastFocused(next)
		} else {
			ws.clearLastFocused()
		}
	}

	if idx := ws.indexOf(w); idx >= 0 {
		ws.windows = append(ws.windows[:idx], ws.windows[idx+1:]...)
		ws.logger.Debug("window removed", "handle", w.Handle(), "count", len(ws.windows))
	}

	if relayout {
		ws.DoLayout()
	}
}

// UpdateWindow records a change reported for w.
func (ws *Workspace) UpdateWindow(w Window, kind WindowUpdateType, relayout bool) {
	if w != nil && kind == Foreground {
		ws.setLastFocused(w)
	}

	if relayout {
		ws.DoLayout()
	}
}

// CloseFocusedWindow asks the focused layout-eligible window to close.
func (ws *Workspace) CloseFocusedWindow() {
	if w := focusedIn(ws.windowsForLayout()); w != nil {
		w.Close()
	}
}

// NextLayoutEngine switches to the following engine, wrapping around.
func (ws *Workspace) NextLayoutEngine() {
	ws.layoutIndex = (ws.layoutIndex + 1) % len(ws.engines)
	ws.DoLayout()
}

// PreviousLayoutEngine switches to the preceding engine, wrapping around.
func (ws *Workspace) PreviousLayoutEngine() {
	n := len(ws.engines)
	ws.layoutIndex = (ws.layoutIndex - 1 + n) % n
	ws.DoLayout()
}

// ResetLayout restores the active engine's default primary area.
func (ws *Workspace) ResetLayout() {
	ws.engine().ResetPrimaryArea()
	ws.DoLayout()
}

func (ws *Workspace) ShrinkPrimaryArea() {
	ws.engine().ShrinkPrimaryArea()
	ws.DoLayout()
}

func (ws *Workspace) ExpandPrimaryArea() {
	ws.engine().ExpandPrimaryArea()
	ws.DoLayout()
}

func (ws *Workspace) IncrementNumberOfPrimaryWindows() {
	ws.engine().IncrementNumInPrimary()
	ws.DoLayout()
}

func (ws *Workspace) DecrementNumberOfPrimaryWindows() {
	ws.engine().DecrementNumInPrimary()
	ws.DoLayout()
}

// FocusLastFocusedWindow focuses the last focused window, or the primary window if
// there is none.
func (ws *Workspace) FocusLastFocusedWindow() {
	if w := ws.LastFocusedWindow(); w != nil {
		w.Focus()
		return
	}
	ws.FocusPrimaryWindow()
}

// FocusNextWindow moves focus to the next layout-eligible window, wrapping around.
func (ws *Workspace) FocusNextWindow() {
	ws.focusRelative(1)
}

// FocusPreviousWindow moves focus to the previous layout-eligible window, wrapping around.
func (ws *Workspace) FocusPreviousWindow() {
	ws.focusRelative(-1)
}

func (ws *Workspace) focusRelative(delta int) {
	windows := ws.windowsForLayout()
	n := len(windows)
	if n == 0 {
		return
	}

	for i, w := range windows {
		if w.IsFocused() {
			windows[(i+delta+n)%n].Focus()
			return
		}
	}

	if last := ws.LastFocusedWindow(); last != nil {
		last.Focus()
		return
	}
	windows[0].Focus()
}

// FocusPrimaryWindow focuses the first layout-eligible window.
func (ws *Workspace) FocusPrimaryWindow() {
	windows := ws.windowsForLayout()
	if len(windows) > 0 {
		windows[0].Focus()
	}
}

// SwapFocusAndPrimaryWindow swaps the focused window with the primary window.
func (ws *Workspace) SwapFocusAndPrimaryWindow() {
	windows := ws.windowsForLayout()
	if len(windows) <= 1 {
		return
	}
	if focus := focusedIn(windows); focus != nil {
		ws.SwapWindows(windows[0], focus)
	}
}

// SwapFocusAndNextWindow swaps the focused window with its next neighbour, wrapping around.
func (ws *Workspace) SwapFocusAndNextWindow() {
	ws.swapFocusRelative(1)
}

// SwapFocusAndPreviousWindow swaps the focused window with its previous neighbour, wrapping around.
func (ws *Workspace) SwapFocusAndPreviousWindow() {
	ws.swapFocusRelative(-1)
}

func (ws *Workspace) swapFocusRelative(delta int) {
	windows := ws.windowsForLayout()
	n := len(windows)
	for i, w := range windows {
		if w.IsFocused() {
			ws.SwapWindows(w, windows[(i+delta+n)%n])
			return
		}
	}
}

// SwapWindows exchanges the positions of a and b in the member list and relayouts.
func (ws *Workspace) SwapWindows(a, b Window) {
	left, right := ws.indexOf(a), ws.indexOf(b)
	if left < 0 || right < 0 {
		return
	}

	ws.logger.Debug("swap windows", "left", a.Handle(), "right", b.Handle())
	ws.windows[left], ws.windows[right] = ws.windows[right], ws.windows[left]
	ws.DoLayout()
}

// SwapWindowToPoint moves w into the layout slot under (x, y), swapping with the
// window that occupies it. It reports whether a swap, and so a relayout, happened.
func (ws *Workspace) SwapWindowToPoint(w Window, x, y int) bool {
	windows := ws.windowsForLayout()
	if indexIn(windows, w) < 0 {
		return false
	}

	index := ws.layoutSlotIndexForPoint(windows, x, y)
	if index < 0 || index >= len(windows) {
		return false
	}

	dest := windows[index]
	if dest.Handle() == w.Handle() {
		return false
	}
	ws.logger.Debug("swap window to point", "handle", w.Handle(), "x", x, "y", y)
	ws.SwapWindows(w, dest)
	return true
}

// IsPointInside reports whether (x, y) lies on the monitor showing this workspace.
func (ws *Workspace) IsPointInside(x, y int) bool {
	monitor, ok := ws.ctx.Container.MonitorForWorkspace(ws)
	if !ok {
		return false
	}
	return monitor.IsPointInside(x, y)
}

func (ws *Workspace) layoutSlotIndexForPoint(windows []Window, x, y int) int {
	monitor, ok := ws.ctx.Container.MonitorForWorkspace(ws)
	if !ok {
		return -1
	}

	locations := ws.engine().CalcLayout(windows, monitor.Width, monitor.Height)
	for i, loc := range locations {
		if loc.Translate(monitor.X, monitor.Y).IsPointInside(x, y) {
			return i
		}
	}
	return -1
}

// DoLayout applies the active engine to the layout-eligible windows.
func (ws *Workspace) DoLayout() {
	if !ws.ctx.Container.Enabled() {
		for _, w := range ws.windows {
			w.ShowInCurrentState()
		}
		return
	}

	monitor, ok := ws.ctx.Container.MonitorForWorkspace(ws)
	if !ok {
		for _, w := range ws.windows {
			w.Hide()
		}
		return
	}

	windows := ws.windowsForLayout()
	for _, w := range windows {
		w.ShowInCurrentState()
	}

	locations := ws.engine().CalcLayout(windows, monitor.Width, monitor.Height)
	ws.applyLocations(windows, locations, monitor)
}

func (ws *Workspace) applyLocations(windows []Window, locations []WindowLocation, monitor Monitor) {
	if len(locations) != len(windows) {
		ws.logger.Warn("layout returned wrong number of locations",
			"layout", ws.LayoutName(), "windows", len(windows), "locations", len(locations))
	}

	moves := ws.ctx.Deferrer.DeferWindowsPos(len(windows))
	defer func() {
		if err := moves.Close(); err != nil {
			ws.logger.Warn("failed to apply window moves", "error", err)
		}
	}()

	for i, loc := range locations {
		if i >= len(windows) {
			break
		}
		w := windows[i]
		if w.IsMouseMoving() {
			continue
		}
		moves.DeferWindowPos(w, loc.Translate(monitor.X, monitor.Y))
	}
}

// windowsForLayout returns the layout-eligible windows: members in reverse insertion
// order that can be laid out. Newest windows land closest to the primary slot.
func (ws *Workspace) windowsForLayout() []Window {
	out := make([]Window, 0, len(ws.windows))
	for i := len(ws.windows) - 1; i >= 0; i-- {
		if ws.windows[i].CanLayout() {
			out = append(out, ws.windows[i])
		}
	}
	return out
}

// WindowsForLayout exposes the layout-eligible list for status consumers.
func (ws *Workspace) WindowsForLayout() []Window {
	return ws.windowsForLayout()
}

func (ws *Workspace) engine() LayoutEngine {
	return ws.engines[ws.layoutIndex]
}

func (ws *Workspace) setLastFocused(w Window) {
	ws.lastFocused = w.Handle()
	ws.hasLastFocused = true
}

func (ws *Workspace) clearLastFocused() {
	ws.lastFocused = 0
	ws.hasLastFocused = false
}

func (ws *Workspace) indexOf(w Window) int {
	return indexIn(ws.windows, w)
}

func indexIn(windows []Window, w Window) int {
	if w == nil {
		return -1
	}
	h := w.Handle()
	for i, candidate := range windows {
		if candidate.Handle() == h {
			return i
		}
	}
	return -1
}

func focusedIn(windows []Window) Window {
	for _, w := range windows {
		if w.IsFocused() {
			return w
		}
	}
	return nil
}
