package tui

import (
	"fmt"
	"strings"

	"github.com/1broseidon/tilewm/internal/tiling"
)

// renderLayoutPreview draws the named layout with count tiles onto a width×height
// character canvas. Engines only read the length of the window list, so the
// preview lays out placeholders.
func renderLayoutPreview(layout string, count, width, height int) []string {
	if width < 5 || height < 3 {
		return emptyCanvas(width, height)
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	engine, err := tiling.NewLayoutEngine(layout, tiling.DefaultLayoutOptions())
	if err == nil && count > 0 {
		// Scale up so integer splits stay close to the real proportions.
		monW, monH := width*2, height*2
		locs := engine.CalcLayout(make([]tiling.Window, count), monW, monH)
		for i, loc := range locs {
			drawTile(canvas, loc, i+1, monW, monH, width, height)
		}
	}
	drawBorder(canvas, width, height)

	lines := make([]string, height)
	for i, row := range canvas {
		lines[i] = string(row)
	}
	return lines
}

func drawTile(canvas [][]rune, loc tiling.WindowLocation, num, monW, monH, canvasW, canvasH int) {
	x1 := max(loc.X*canvasW/monW, 1)
	y1 := max(loc.Y*canvasH/monH, 1)
	x2 := min((loc.X+loc.Width)*canvasW/monW, canvasW-2)
	y2 := min((loc.Y+loc.Height)*canvasH/monH, canvasH-2)
	if x2 <= x1 || y2 <= y1 {
		return
	}

	for x := x1; x <= x2; x++ {
		canvas[y1][x] = '─'
		canvas[y2][x] = '─'
	}
	for y := y1; y <= y2; y++ {
		canvas[y][x1] = '│'
		canvas[y][x2] = '│'
	}
	canvas[y1][x1] = '┌'
	canvas[y1][x2] = '┐'
	canvas[y2][x1] = '└'
	canvas[y2][x2] = '┘'

	cy, cx := (y1+y2)/2, (x1+x2)/2
	if cy <= y1 || cy >= y2 {
		return
	}
	label := fmt.Sprintf("%d", num)
	start := cx - len(label)/2
	for i, r := range label {
		if x := start + i; x > x1 && x < x2 {
			canvas[cy][x] = r
		}
	}
}

func drawBorder(canvas [][]rune, width, height int) {
	for x := 0; x < width; x++ {
		canvas[0][x] = '═'
		canvas[height-1][x] = '═'
	}
	for y := 0; y < height; y++ {
		canvas[y][0] = '║'
		canvas[y][width-1] = '║'
	}
	canvas[0][0] = '╔'
	canvas[0][width-1] = '╗'
	canvas[height-1][0] = '╚'
	canvas[height-1][width-1] = '╝'
}

func emptyCanvas(width, height int) []string {
	if height < 0 {
		return nil
	}
	lines := make([]string, height)
	empty := strings.Repeat(" ", max(width, 0))
	for i := range lines {
		lines[i] = empty
	}
	return lines
}
