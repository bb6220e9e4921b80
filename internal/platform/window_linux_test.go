//go:build linux

package platform

import (
	"log/slog"
	"testing"

	"github.com/1broseidon/tilewm/internal/tiling"
)

func TestCurrentState(t *testing.T) {
	tests := []struct {
		name       string
		manualHide bool
		minimized  bool
		maximized  bool
		want       tiling.DisplayState
	}{
		{name: "normal", want: tiling.Normal},
		{name: "maximized", maximized: true, want: tiling.Maximized},
		{name: "user minimized", minimized: true, want: tiling.Minimized},
		{name: "user minimized while maximized", minimized: true, maximized: true, want: tiling.Minimized},
		{name: "hidden by tilewm", manualHide: true, minimized: true, want: tiling.Normal},
		{name: "hidden by tilewm while maximized", manualHide: true, minimized: true, maximized: true, want: tiling.Maximized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := currentState(tt.manualHide, tt.minimized, tt.maximized); got != tt.want {
				t.Fatalf("currentState(%v, %v, %v) = %v, want %v",
					tt.manualHide, tt.minimized, tt.maximized, got, tt.want)
			}
		})
	}
}

// iconicWindow still reports WM_STATE Iconic, as a window does between the map
// request and the window manager's state change.
type iconicWindow struct {
	tiling.Window
	handle tiling.WindowHandle
}

func (w iconicWindow) Handle() tiling.WindowHandle { return w.handle }
func (w iconicWindow) IsMinimized() bool           { return true }
func (w iconicWindow) CanLayout() bool             { return false }

func TestMoveBatch_QueuesWindowsStillReportedIconic(t *testing.T) {
	batch := newMoveBatch(nil, slog.Default(), 2)
	batch.DeferWindowPos(iconicWindow{handle: 7}, tiling.WindowLocation{X: 10, Y: 20, Width: 300, Height: 200})
	batch.DeferWindowPos(iconicWindow{handle: 8}, tiling.WindowLocation{Width: 300, Height: 200, State: tiling.Maximized})

	if len(batch.moves) != 2 {
		t.Fatalf("queued %d moves, want 2", len(batch.moves))
	}
	if batch.moves[0].id != 7 || batch.moves[0].loc.X != 10 || batch.moves[0].loc.Y != 20 {
		t.Fatalf("unexpected first move %+v", batch.moves[0])
	}
	if batch.moves[1].loc.State != tiling.Maximized {
		t.Fatalf("second move lost its state: %+v", batch.moves[1])
	}
}

func TestMoveBatch_CloseTwiceIsNoop(t *testing.T) {
	batch := newMoveBatch(nil, slog.Default(), 0)
	if err := batch.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	batch.moves = append(batch.moves, pendingMove{id: 1})
	if err := batch.Close(); err != nil {
		t.Fatalf("second Close() error: %v", err)
	}
}
