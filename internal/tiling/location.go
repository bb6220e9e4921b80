package tiling

// DisplayState is the show state a window is placed in.
type DisplayState int

const (
	Normal DisplayState = iota
	Minimized
	Maximized
)

func (s DisplayState) String() string {
	switch s {
	case Minimized:
		return "minimized"
	case Maximized:
		return "maximized"
	default:
		return "normal"
	}
}

// WindowLocation represents a window position, size and display state
type WindowLocation struct {
	X      int
	Y      int
	Width  int
	Height int
	State  DisplayState
}

// IsPointInside reports whether (x, y) lies within the rectangle. Both edges are inclusive.
func (l WindowLocation) IsPointInside(x, y int) bool {
	return l.X <= x && x <= l.X+l.Width && l.Y <= y && y <= l.Y+l.Height
}

// Translate returns a copy of the location shifted by dx, dy.
func (l WindowLocation) Translate(dx, dy int) WindowLocation {
	l.X += dx
	l.Y += dy
	return l
}
