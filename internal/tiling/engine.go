package tiling

// LayoutEngine computes window geometry for an ordered list of windows.
//
// CalcLayout must return exactly len(windows) locations, in the same order, each
// inside a width×height container whose origin is (0, 0). Engines read the window
// list only and keep their own tunable state.
type LayoutEngine interface {
	Name() string
	CalcLayout(windows []Window, width, height int) []WindowLocation

	ShrinkPrimaryArea()
	ExpandPrimaryArea()
	ResetPrimaryArea()
	IncrementNumInPrimary()
	DecrementNumInPrimary()
}

const (
	minPrimaryRatio = 0.05
	maxPrimaryRatio = 0.95
)

func clampRatio(r float64) float64 {
	if r < minPrimaryRatio {
		return minPrimaryRatio
	}
	if r > maxPrimaryRatio {
		return maxPrimaryRatio
	}
	return r
}

// splitEvenly divides total into n parts, handing the remainder to the last part so
// the parts cover total exactly.
func splitEvenly(total, n int) []int {
	if n <= 0 {
		return nil
	}
	parts := make([]int, n)
	base := total / n
	for i := range parts {
		parts[i] = base
	}
	parts[n-1] += total - base*n
	return parts
}

// noTuning provides no-op tunables for engines without a primary area.
type noTuning struct{}

func (noTuning) ShrinkPrimaryArea()     {}
func (noTuning) ExpandPrimaryArea()     {}
func (noTuning) ResetPrimaryArea()      {}
func (noTuning) IncrementNumInPrimary() {}
func (noTuning) DecrementNumInPrimary() {}
