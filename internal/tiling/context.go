package tiling

import "log/slog"

// Monitor describes the screen area a workspace is shown on.
type Monitor struct {
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

// IsPointInside reports whether (x, y) lies within the monitor. Both edges are inclusive.
func (m Monitor) IsPointInside(x, y int) bool {
	return m.X <= x && x <= m.X+m.Width && m.Y <= y && y <= m.Y+m.Height
}

// Container answers the questions a workspace cannot answer about itself. Both
// values may change between calls and are re-queried on every layout pass.
type Container interface {
	// MonitorForWorkspace returns the monitor the workspace is currently shown on.
	MonitorForWorkspace(ws *Workspace) (Monitor, bool)
	// Enabled reports whether tiling is active. When false windows keep their own geometry.
	Enabled() bool
}

// DeferredMoves collects window moves and applies them together on Close.
type DeferredMoves interface {
	DeferWindowPos(w Window, loc WindowLocation)
	Close() error
}

// Deferrer hands out move batches sized for an expected number of moves.
type Deferrer interface {
	DeferWindowsPos(count int) DeferredMoves
}

// Context bundles the collaborators a workspace is constructed with.
type Context struct {
	Container Container
	Deferrer  Deferrer
	Logger    *slog.Logger
}

func (c Context) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
