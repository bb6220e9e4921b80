package tiling

import "fmt"

// fakeDesktop tracks which fake window is focused so IsFocused stays consistent.
type fakeDesktop struct {
	focused WindowHandle
}

type fakeWindow struct {
	desktop *fakeDesktop
	handle  WindowHandle
	title   string

	canLayout   bool
	minimized   bool
	maximized   bool
	mouseMoving bool
	location    WindowLocation

	focusCalls int
	hideCalls  int
	showCalls  int
	closeCalls int
}

func (d *fakeDesktop) newWindow(handle WindowHandle) *fakeWindow {
	return &fakeWindow{
		desktop:   d,
		handle:    handle,
		title:     fmt.Sprintf("window-%d", handle),
		canLayout: true,
		location:  WindowLocation{X: int(handle) * 10, Y: int(handle) * 10, Width: 100, Height: 100},
	}
}

func (w *fakeWindow) Handle() WindowHandle     { return w.handle }
func (w *fakeWindow) Title() string            { return w.title }
func (w *fakeWindow) Class() string            { return "Fake" }
func (w *fakeWindow) Location() WindowLocation { return w.location }
func (w *fakeWindow) ProcessID() int           { return int(w.handle) }
func (w *fakeWindow) ProcessName() string      { return "fake" }
func (w *fakeWindow) ProcessFileName() string  { return "fake" }
func (w *fakeWindow) CanLayout() bool          { return w.canLayout }
func (w *fakeWindow) IsFocused() bool          { return w.desktop.focused == w.handle }
func (w *fakeWindow) IsMinimized() bool        { return w.minimized }
func (w *fakeWindow) IsMaximized() bool        { return w.maximized }
func (w *fakeWindow) IsMouseMoving() bool      { return w.mouseMoving }
func (w *fakeWindow) Focus() {
	w.focusCalls++
	w.desktop.focused = w.handle
}
func (w *fakeWindow) Hide()               { w.hideCalls++ }
func (w *fakeWindow) ShowNormal()         { w.showCalls++ }
func (w *fakeWindow) ShowMaximized()      { w.showCalls++ }
func (w *fakeWindow) ShowMinimized()      { w.showCalls++ }
func (w *fakeWindow) ShowInCurrentState() { w.showCalls++ }
func (w *fakeWindow) BringToTop()         {}
func (w *fakeWindow) Close()              { w.closeCalls++ }

type fakeContainer struct {
	monitor    Monitor
	hasMonitor bool
	enabled    bool
}

func (c *fakeContainer) MonitorForWorkspace(*Workspace) (Monitor, bool) {
	return c.monitor, c.hasMonitor
}

func (c *fakeContainer) Enabled() bool { return c.enabled }

type move struct {
	handle WindowHandle
	loc    WindowLocation
}

// fakeDeferrer records each batch. A batch only becomes visible once closed.
type fakeDeferrer struct {
	batches   [][]move
	acquired  int
	lastCount int
}

type fakeBatch struct {
	d       *fakeDeferrer
	pending []move
}

func (d *fakeDeferrer) DeferWindowsPos(count int) DeferredMoves {
	d.acquired++
	d.lastCount = count
	return &fakeBatch{d: d}
}

func (b *fakeBatch) DeferWindowPos(w Window, loc WindowLocation) {
	b.pending = append(b.pending, move{handle: w.Handle(), loc: loc})
}

func (b *fakeBatch) Close() error {
	b.d.batches = append(b.d.batches, b.pending)
	return nil
}

func (d *fakeDeferrer) lastBatch() []move {
	if len(d.batches) == 0 {
		return nil
	}
	return d.batches[len(d.batches)-1]
}

// fixedEngine returns preset locations, in order, for up to len(locs) windows.
type fixedEngine struct {
	noTuning
	name string
	locs []WindowLocation
}

func (e *fixedEngine) Name() string { return e.name }

func (e *fixedEngine) CalcLayout(windows []Window, width, height int) []WindowLocation {
	out := make([]WindowLocation, len(windows))
	copy(out, e.locs)
	return out
}

type harness struct {
	desktop   *fakeDesktop
	container *fakeContainer
	deferrer  *fakeDeferrer
}

func newHarness() *harness {
	return &harness{
		desktop: &fakeDesktop{},
		container: &fakeContainer{
			monitor:    Monitor{Name: "DP-1", X: 0, Y: 0, Width: 1200, Height: 600},
			hasMonitor: true,
			enabled:    true,
		},
		deferrer: &fakeDeferrer{},
	}
}

func (h *harness) context() Context {
	return Context{Container: h.container, Deferrer: h.deferrer}
}

func (h *harness) workspace(engines ...LayoutEngine) *Workspace {
	if len(engines) == 0 {
		engines = []LayoutEngine{NewTallLayoutEngine(1, 0.5, 0.03)}
	}
	return NewWorkspace(h.context(), "main", engines...)
}

func handles(windows []Window) []WindowHandle {
	out := make([]WindowHandle, len(windows))
	for i, w := range windows {
		out[i] = w.Handle()
	}
	return out
}
