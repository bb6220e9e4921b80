package tiling

// FullLayoutEngine gives every window the whole container. The focused window is the
// one the user sees.
type FullLayoutEngine struct {
	noTuning
}

var _ LayoutEngine = (*FullLayoutEngine)(nil)

// NewFullLayoutEngine creates a monocle engine.
func NewFullLayoutEngine() *FullLayoutEngine {
	return &FullLayoutEngine{}
}

func (e *FullLayoutEngine) Name() string { return "full" }

func (e *FullLayoutEngine) CalcLayout(windows []Window, width, height int) []WindowLocation {
	if len(windows) == 0 {
		return nil
	}
	locations := make([]WindowLocation, len(windows))
	for i := range locations {
		locations[i] = WindowLocation{Width: width, Height: height, State: Normal}
	}
	return locations
}
