package tiling

// GapLayoutEngine wraps another engine and leaves an outer margin around the container
// and an inner gap between neighbouring windows.
type GapLayoutEngine struct {
	inner    LayoutEngine
	outerGap int
	innerGap int
}

var _ LayoutEngine = (*GapLayoutEngine)(nil)

// WithGaps wraps engine with gaps. Zero gaps return engine unchanged.
func WithGaps(engine LayoutEngine, outerGap, innerGap int) LayoutEngine {
	if outerGap <= 0 && innerGap <= 0 {
		return engine
	}
	return &GapLayoutEngine{
		inner:    engine,
		outerGap: max(outerGap, 0),
		innerGap: max(innerGap, 0),
	}
}

// Unwrap returns the decorated engine.
func (e *GapLayoutEngine) Unwrap() LayoutEngine { return e.inner }

func (e *GapLayoutEngine) Name() string { return e.inner.Name() }

func (e *GapLayoutEngine) CalcLayout(windows []Window, width, height int) []WindowLocation {
	if len(windows) == 0 {
		return nil
	}

	outerX := min(e.outerGap, max(width-1, 0)/2)
	outerY := min(e.outerGap, max(height-1, 0)/2)
	innerWidth := max(width-2*outerX, 0)
	innerHeight := max(height-2*outerY, 0)

	locations := e.inner.CalcLayout(windows, innerWidth, innerHeight)
	half := e.innerGap / 2
	for i, loc := range locations {
		hx := min(half, max(loc.Width-1, 0)/2)
		hy := min(half, max(loc.Height-1, 0)/2)
		locations[i] = WindowLocation{
			X:      loc.X + outerX + hx,
			Y:      loc.Y + outerY + hy,
			Width:  max(loc.Width-2*hx, 0),
			Height: max(loc.Height-2*hy, 0),
			State:  loc.State,
		}
	}
	return locations
}

func (e *GapLayoutEngine) ShrinkPrimaryArea()     { e.inner.ShrinkPrimaryArea() }
func (e *GapLayoutEngine) ExpandPrimaryArea()     { e.inner.ExpandPrimaryArea() }
func (e *GapLayoutEngine) ResetPrimaryArea()      { e.inner.ResetPrimaryArea() }
func (e *GapLayoutEngine) IncrementNumInPrimary() { e.inner.IncrementNumInPrimary() }
func (e *GapLayoutEngine) DecrementNumInPrimary() { e.inner.DecrementNumInPrimary() }
