package tiling

import "math"

// CalculateGrid determines the optimal grid dimensions for the given number of windows
func CalculateGrid(numWindows int) (rows, cols int) {
	if numWindows <= 0 {
		return 0, 0
	}

	// Calculate columns first (ceiling of square root)
	cols = int(math.Ceil(math.Sqrt(float64(numWindows))))

	// Calculate rows needed
	rows = int(math.Ceil(float64(numWindows) / float64(cols)))

	return rows, cols
}

// GridLayoutEngine arranges windows in a near-square grid.
type GridLayoutEngine struct {
	noTuning

	// FlexibleLastRow lets a partially filled last row widen its windows to span the container.
	FlexibleLastRow bool
}

var _ LayoutEngine = (*GridLayoutEngine)(nil)

// NewGridLayoutEngine creates a grid engine.
func NewGridLayoutEngine(flexibleLastRow bool) *GridLayoutEngine {
	return &GridLayoutEngine{FlexibleLastRow: flexibleLastRow}
}

func (e *GridLayoutEngine) Name() string { return "grid" }

func (e *GridLayoutEngine) CalcLayout(windows []Window, width, height int) []WindowLocation {
	numWindows := len(windows)
	if numWindows == 0 {
		return nil
	}

	rows, cols := CalculateGrid(numWindows)
	colWidths := splitEvenly(width, cols)
	rowHeights := splitEvenly(height, rows)

	// Last row info for flexible layout
	lastRowIndex := rows - 1
	windowsInLastRow := numWindows - lastRowIndex*cols
	var lastRowWidths []int
	if e.FlexibleLastRow && windowsInLastRow < cols {
		lastRowWidths = splitEvenly(width, windowsInLastRow)
	}

	positions := make([]WindowLocation, numWindows)
	y := 0
	for row := 0; row < rows; row++ {
		widths := colWidths
		if row == lastRowIndex && lastRowWidths != nil {
			widths = lastRowWidths
		}

		x := 0
		for col := 0; col < len(widths); col++ {
			i := row*cols + col
			if i >= numWindows {
				break
			}
			positions[i] = WindowLocation{
				X:      x,
				Y:      y,
				Width:  widths[col],
				Height: rowHeights[row],
				State:  Normal,
			}
			x += widths[col]
		}
		y += rowHeights[row]
	}

	return positions
}
