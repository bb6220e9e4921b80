package daemon

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/tiling"
)

type fakeWindow struct {
	backend *fakeBackend
	handle  tiling.WindowHandle
	class   string

	loc           tiling.WindowLocation
	userMinimized bool
	hidden        bool
	mouseMoving   bool
	closed        bool
}

func (w *fakeWindow) Handle() tiling.WindowHandle     { return w.handle }
func (w *fakeWindow) Title() string                   { return fmt.Sprintf("window %d", w.handle) }
func (w *fakeWindow) Class() string                   { return w.class }
func (w *fakeWindow) Location() tiling.WindowLocation { return w.loc }
func (w *fakeWindow) ProcessID() int                  { return int(w.handle) }
func (w *fakeWindow) ProcessName() string             { return "fake" }
func (w *fakeWindow) ProcessFileName() string         { return "fake" }
func (w *fakeWindow) CanLayout() bool                 { return w.hidden || !w.userMinimized }
func (w *fakeWindow) IsFocused() bool                 { return w.backend.active == w.handle }
func (w *fakeWindow) IsMinimized() bool               { return w.hidden || w.userMinimized }
func (w *fakeWindow) IsMaximized() bool               { return false }
func (w *fakeWindow) IsMouseMoving() bool             { return w.mouseMoving }
func (w *fakeWindow) Focus()                          { w.backend.active = w.handle }
func (w *fakeWindow) Hide()                           { w.hidden = true }
func (w *fakeWindow) ShowNormal()                     { w.hidden, w.userMinimized = false, false }
func (w *fakeWindow) ShowMaximized()                  { w.hidden, w.userMinimized = false, false }
func (w *fakeWindow) ShowMinimized()                  { w.userMinimized = true }
func (w *fakeWindow) BringToTop()                     {}
func (w *fakeWindow) Close()                          { w.closed = true }
func (w *fakeWindow) DidManualHide() bool             { return w.hidden }

func (w *fakeWindow) ShowInCurrentState() {
	if w.hidden {
		w.ShowNormal()
	}
}

type fakeBackend struct {
	monitors  []tiling.Monitor
	windows   []*fakeWindow
	active    tiling.WindowHandle
	forgotten []tiling.WindowHandle
	batches   int
	failList  bool
}

func newFakeBackend(monitors ...tiling.Monitor) *fakeBackend {
	return &fakeBackend{monitors: monitors}
}

func (b *fakeBackend) newWindow(handle tiling.WindowHandle) *fakeWindow {
	w := &fakeWindow{backend: b, handle: handle, class: "Fake"}
	b.windows = append(b.windows, w)
	return w
}

func (b *fakeBackend) Monitors() ([]tiling.Monitor, error) {
	return append([]tiling.Monitor(nil), b.monitors...), nil
}

func (b *fakeBackend) ActiveWindow() (tiling.WindowHandle, error) { return b.active, nil }

func (b *fakeBackend) ListWindows() ([]tiling.Window, error) {
	if b.failList {
		return nil, errors.New("list failed")
	}
	out := make([]tiling.Window, 0, len(b.windows))
	for _, w := range b.windows {
		out = append(out, w)
	}
	return out, nil
}

func (b *fakeBackend) Window(handle tiling.WindowHandle) tiling.Window {
	for _, w := range b.windows {
		if w.handle == handle {
			return w
		}
	}
	return nil
}

func (b *fakeBackend) Forget(handle tiling.WindowHandle) {
	b.forgotten = append(b.forgotten, handle)
}

func (b *fakeBackend) remove(handle tiling.WindowHandle) {
	for i, w := range b.windows {
		if w.handle == handle {
			b.windows = append(b.windows[:i], b.windows[i+1:]...)
			return
		}
	}
}

func (b *fakeBackend) DeferWindowsPos(count int) tiling.DeferredMoves {
	b.batches++
	return &fakeBatch{}
}

// fakeBatch applies placements on Close, like the X11 batch.
type fakeBatch struct {
	moves []func()
}

func (f *fakeBatch) DeferWindowPos(w tiling.Window, loc tiling.WindowLocation) {
	fw := w.(*fakeWindow)
	f.moves = append(f.moves, func() { fw.loc = loc })
}

func (f *fakeBatch) Close() error {
	for _, move := range f.moves {
		move()
	}
	return nil
}

type fakeWatcher struct {
	callbacks map[tiling.WindowHandle]func(tiling.WindowUpdateType)
}

func (f *fakeWatcher) WatchWindow(handle tiling.WindowHandle, onChange func(tiling.WindowUpdateType)) error {
	f.callbacks[handle] = onChange
	return nil
}

func (f *fakeWatcher) UnwatchWindow(handle tiling.WindowHandle) {
	delete(f.callbacks, handle)
}

var (
	leftMonitor  = tiling.Monitor{Name: "left", X: 0, Y: 0, Width: 1000, Height: 800}
	rightMonitor = tiling.Monitor{Name: "right", X: 1000, Y: 0, Width: 1000, Height: 800}
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestManager(t *testing.T, backend *fakeBackend) *Manager {
	t.Helper()
	m, err := NewManager(config.DefaultConfig(), backend, discardLogger())
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}
	return m
}

func workspaceOf(t *testing.T, m *Manager, h tiling.WindowHandle) string {
	t.Helper()
	for _, ws := range m.Status().Workspaces {
		for _, w := range ws.Windows {
			if tiling.WindowHandle(w.Handle) == h {
				return ws.Name
			}
		}
	}
	return ""
}
