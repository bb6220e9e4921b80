//go:build linux

package platform

import (
	"log/slog"

	"github.com/1broseidon/tilewm/internal/tiling"
	"github.com/1broseidon/tilewm/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

type pendingMove struct {
	id  xproto.Window
	loc tiling.WindowLocation
}

// MoveBatch collects window placements and applies them under one server grab.
type MoveBatch struct {
	conn   *x11.Connection
	logger *slog.Logger
	moves  []pendingMove
	closed bool
}

var _ tiling.DeferredMoves = (*MoveBatch)(nil)

func newMoveBatch(conn *x11.Connection, logger *slog.Logger, count int) *MoveBatch {
	return &MoveBatch{
		conn:   conn,
		logger: logger,
		moves:  make([]pendingMove, 0, count),
	}
}

// DeferWindowPos queues a placement. The location's State picks how it is applied:
// minimized locations are left alone, maximized ones are maximized and normal ones
// are moved and resized. The window itself is not queried; a window that was just
// mapped may still report WM_STATE Iconic.
func (b *MoveBatch) DeferWindowPos(w tiling.Window, loc tiling.WindowLocation) {
	b.moves = append(b.moves, pendingMove{id: xproto.Window(w.Handle()), loc: loc})
}

// Close applies every queued placement. Calling Close twice is a no-op.
func (b *MoveBatch) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	if len(b.moves) == 0 {
		return nil
	}

	return b.conn.Batch(func() error {
		for _, m := range b.moves {
			var err error
			switch m.loc.State {
			case tiling.Minimized:
				continue
			case tiling.Maximized:
				err = b.conn.MaximizeWindow(m.id)
			default:
				err = b.conn.MoveResizeWindow(m.id, m.loc.X, m.loc.Y, m.loc.Width, m.loc.Height)
			}
			if err != nil {
				b.logger.Debug("deferred move failed", "window", uint32(m.id), "error", err)
			}
		}
		return nil
	})
}
