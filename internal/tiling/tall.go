package tiling

// TallLayoutEngine places a primary area on one side of the container and stacks the
// remaining windows in the other. The primary area holds NumInPrimary windows and is
// sized by a ratio of the container.
//
// The wide variant rotates the split so the primary area is a row across the top.
type TallLayoutEngine struct {
	name string
	wide bool

	numInPrimary        int
	defaultNumInPrimary int

	primaryRatio        float64
	defaultPrimaryRatio float64
	ratioIncrement      float64
}

var _ LayoutEngine = (*TallLayoutEngine)(nil)

// NewTallLayoutEngine creates a primary-left / stack-right engine.
func NewTallLayoutEngine(numInPrimary int, primaryRatio, ratioIncrement float64) *TallLayoutEngine {
	return newSplitEngine("tall", false, numInPrimary, primaryRatio, ratioIncrement)
}

// NewWideLayoutEngine creates a primary-top / stack-bottom engine.
func NewWideLayoutEngine(numInPrimary int, primaryRatio, ratioIncrement float64) *TallLayoutEngine {
	return newSplitEngine("wide", true, numInPrimary, primaryRatio, ratioIncrement)
}

func newSplitEngine(name string, wide bool, numInPrimary int, primaryRatio, ratioIncrement float64) *TallLayoutEngine {
	if numInPrimary < 1 {
		numInPrimary = 1
	}
	primaryRatio = clampRatio(primaryRatio)
	if ratioIncrement <= 0 {
		ratioIncrement = 0.03
	}
	return &TallLayoutEngine{
		name:                name,
		wide:                wide,
		numInPrimary:        numInPrimary,
		defaultNumInPrimary: numInPrimary,
		primaryRatio:        primaryRatio,
		defaultPrimaryRatio: primaryRatio,
		ratioIncrement:      ratioIncrement,
	}
}

func (e *TallLayoutEngine) Name() string { return e.name }

// NumInPrimary returns the current number of primary slots.
func (e *TallLayoutEngine) NumInPrimary() int { return e.numInPrimary }

// PrimaryRatio returns the current share of the container given to the primary area.
func (e *TallLayoutEngine) PrimaryRatio() float64 { return e.primaryRatio }

func (e *TallLayoutEngine) CalcLayout(windows []Window, width, height int) []WindowLocation {
	n := len(windows)
	if n == 0 {
		return nil
	}

	// Work in "tall" orientation: major is the axis the primary area is cut from.
	major, minor := width, height
	if e.wide {
		major, minor = height, width
	}

	primaryCount := min(e.numInPrimary, n)
	stackCount := n - primaryCount

	primarySize := major
	if stackCount > 0 {
		primarySize = int(float64(major) * e.primaryRatio)
	}

	locations := make([]WindowLocation, 0, n)
	place := func(offsetMajor, sizeMajor, count int) {
		offsetMinor := 0
		for _, size := range splitEvenly(minor, count) {
			loc := WindowLocation{X: offsetMajor, Y: offsetMinor, Width: sizeMajor, Height: size, State: Normal}
			if e.wide {
				loc = WindowLocation{X: offsetMinor, Y: offsetMajor, Width: size, Height: sizeMajor, State: Normal}
			}
			locations = append(locations, loc)
			offsetMinor += size
		}
	}

	place(0, primarySize, primaryCount)
	if stackCount > 0 {
		place(primarySize, major-primarySize, stackCount)
	}
	return locations
}

func (e *TallLayoutEngine) ShrinkPrimaryArea() {
	e.primaryRatio = clampRatio(e.primaryRatio - e.ratioIncrement)
}

func (e *TallLayoutEngine) ExpandPrimaryArea() {
	e.primaryRatio = clampRatio(e.primaryRatio + e.ratioIncrement)
}

func (e *TallLayoutEngine) ResetPrimaryArea() {
	e.primaryRatio = e.defaultPrimaryRatio
	e.numInPrimary = e.defaultNumInPrimary
}

func (e *TallLayoutEngine) IncrementNumInPrimary() {
	e.numInPrimary++
}

func (e *TallLayoutEngine) DecrementNumInPrimary() {
	if e.numInPrimary > 1 {
		e.numInPrimary--
	}
}
