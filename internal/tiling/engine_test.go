package tiling

import (
	"reflect"
	"testing"
)

func makeWindows(n int) []Window {
	d := &fakeDesktop{}
	out := make([]Window, n)
	for i := range out {
		out[i] = d.newWindow(WindowHandle(i + 1))
	}
	return out
}

func TestEngines_LocationCountAndBounds(t *testing.T) {
	engines := []LayoutEngine{
		NewTallLayoutEngine(1, 0.5, 0.03),
		NewTallLayoutEngine(3, 0.7, 0.03),
		NewWideLayoutEngine(2, 0.4, 0.03),
		NewFullLayoutEngine(),
		NewGridLayoutEngine(true),
		NewGridLayoutEngine(false),
		WithGaps(NewTallLayoutEngine(1, 0.5, 0.03), 10, 6),
		WithGaps(NewGridLayoutEngine(true), 40, 40),
	}
	sizes := [][2]int{{1200, 600}, {1920, 1080}, {333, 201}, {5, 5}, {1, 1}, {0, 600}, {0, 0}}

	for _, engine := range engines {
		for _, size := range sizes {
			for n := 0; n <= 12; n++ {
				locs := engine.CalcLayout(makeWindows(n), size[0], size[1])
				if len(locs) != n {
					t.Fatalf("%s %v n=%d: expected %d locations, got %d", engine.Name(), size, n, n, len(locs))
				}
				for i, loc := range locs {
					if loc.X < 0 || loc.Y < 0 || loc.X+loc.Width > size[0] || loc.Y+loc.Height > size[1] {
						t.Fatalf("%s %v n=%d: location %d out of bounds: %+v", engine.Name(), size, n, i, loc)
					}
				}
			}
		}
	}
}

func TestTallLayout_PrimaryAndStack(t *testing.T) {
	engine := NewTallLayoutEngine(1, 0.5, 0.03)

	got := engine.CalcLayout(makeWindows(3), 1200, 600)
	want := []WindowLocation{
		{X: 0, Y: 0, Width: 600, Height: 600},
		{X: 600, Y: 0, Width: 600, Height: 300},
		{X: 600, Y: 300, Width: 600, Height: 300},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	single := engine.CalcLayout(makeWindows(1), 1200, 600)
	if single[0].Width != 1200 || single[0].Height != 600 {
		t.Fatalf("expected single window to fill the container, got %+v", single[0])
	}
}

func TestTallLayout_StackRemainderGoesToLastSlot(t *testing.T) {
	engine := NewTallLayoutEngine(1, 0.5, 0.03)
	locs := engine.CalcLayout(makeWindows(4), 1000, 100)

	// Stack height 100 split three ways: 33, 33, 34.
	if locs[3].Y != 66 || locs[3].Height != 34 {
		t.Fatalf("expected last slot y=66 h=34, got %+v", locs[3])
	}
}

func TestWideLayout_PrimaryRowOnTop(t *testing.T) {
	engine := NewWideLayoutEngine(1, 0.5, 0.03)
	got := engine.CalcLayout(makeWindows(3), 1000, 800)
	want := []WindowLocation{
		{X: 0, Y: 0, Width: 1000, Height: 400},
		{X: 0, Y: 400, Width: 500, Height: 400},
		{X: 500, Y: 400, Width: 500, Height: 400},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestTallLayout_TunablesClampAndReset(t *testing.T) {
	engine := NewTallLayoutEngine(2, 0.5, 0.2)

	for i := 0; i < 10; i++ {
		engine.ExpandPrimaryArea()
	}
	if engine.PrimaryRatio() != maxPrimaryRatio {
		t.Fatalf("expected ratio clamped to %v, got %v", maxPrimaryRatio, engine.PrimaryRatio())
	}
	for i := 0; i < 10; i++ {
		engine.ShrinkPrimaryArea()
	}
	if engine.PrimaryRatio() != minPrimaryRatio {
		t.Fatalf("expected ratio clamped to %v, got %v", minPrimaryRatio, engine.PrimaryRatio())
	}

	for i := 0; i < 5; i++ {
		engine.DecrementNumInPrimary()
	}
	if engine.NumInPrimary() != 1 {
		t.Fatalf("expected primary count floor of 1, got %d", engine.NumInPrimary())
	}

	engine.IncrementNumInPrimary()
	engine.IncrementNumInPrimary()
	engine.ResetPrimaryArea()
	if engine.PrimaryRatio() != 0.5 || engine.NumInPrimary() != 2 {
		t.Fatalf("expected defaults restored, got ratio=%v num=%d", engine.PrimaryRatio(), engine.NumInPrimary())
	}
}

func TestTallLayout_NormalizesConstructorArguments(t *testing.T) {
	engine := NewTallLayoutEngine(0, 2.0, -1)
	if engine.NumInPrimary() != 1 {
		t.Fatalf("expected num in primary 1, got %d", engine.NumInPrimary())
	}
	if engine.PrimaryRatio() != maxPrimaryRatio {
		t.Fatalf("expected ratio clamped, got %v", engine.PrimaryRatio())
	}
}

func TestFullLayout_EveryWindowFillsContainer(t *testing.T) {
	for _, loc := range NewFullLayoutEngine().CalcLayout(makeWindows(3), 800, 600) {
		if loc != (WindowLocation{Width: 800, Height: 600}) {
			t.Fatalf("expected full container, got %+v", loc)
		}
	}
}

func TestCalculateGrid(t *testing.T) {
	tests := []struct {
		n, rows, cols int
	}{
		{0, 0, 0},
		{1, 1, 1},
		{2, 1, 2},
		{3, 2, 2},
		{5, 2, 3},
		{9, 3, 3},
		{10, 3, 4},
	}
	for _, tt := range tests {
		rows, cols := CalculateGrid(tt.n)
		if rows != tt.rows || cols != tt.cols {
			t.Errorf("CalculateGrid(%d) = %dx%d, want %dx%d", tt.n, rows, cols, tt.rows, tt.cols)
		}
	}
}

func TestGridLayout_FlexibleLastRow(t *testing.T) {
	locs := NewGridLayoutEngine(true).CalcLayout(makeWindows(3), 1000, 600)
	if locs[2].Width != 1000 || locs[2].X != 0 || locs[2].Y != 300 {
		t.Fatalf("expected last window to span the row, got %+v", locs[2])
	}

	fixed := NewGridLayoutEngine(false).CalcLayout(makeWindows(3), 1000, 600)
	if fixed[2].Width != 500 {
		t.Fatalf("expected last window to keep column width, got %+v", fixed[2])
	}
}

func TestGapLayout_InsetsAndDelegates(t *testing.T) {
	tall := NewTallLayoutEngine(1, 0.5, 0.1)
	engine := WithGaps(tall, 10, 20)

	got := engine.CalcLayout(makeWindows(2), 1020, 520)
	want := []WindowLocation{
		{X: 20, Y: 20, Width: 480, Height: 480},
		{X: 520, Y: 20, Width: 480, Height: 480},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	if engine.Name() != "tall" {
		t.Fatalf("expected wrapped name, got %q", engine.Name())
	}
	engine.ExpandPrimaryArea()
	if tall.PrimaryRatio() <= 0.5 {
		t.Fatalf("expected tunables delegated to wrapped engine")
	}
	if WithGaps(tall, 0, 0) != LayoutEngine(tall) {
		t.Fatalf("expected zero gaps to return the engine unchanged")
	}
}

func TestGapLayout_EmptyContainer(t *testing.T) {
	engine := WithGaps(NewTallLayoutEngine(1, 0.5, 0.03), 10, 6)
	got := engine.CalcLayout(makeWindows(2), 0, 0)
	want := []WindowLocation{{}, {}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected empty rectangles %+v, got %+v", want, got)
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range []string{"tall", "wide", "full", "grid"} {
		engine, err := NewLayoutEngine(name, DefaultLayoutOptions())
		if err != nil {
			t.Fatalf("NewLayoutEngine(%q): %v", name, err)
		}
		if engine.Name() != name {
			t.Fatalf("expected engine %q, got %q", name, engine.Name())
		}
	}

	if _, err := NewLayoutEngine("spiral", DefaultLayoutOptions()); err == nil {
		t.Fatalf("expected error for unknown layout")
	}

	a, _ := NewLayoutEngine("tall", DefaultLayoutOptions())
	b, _ := NewLayoutEngine("tall", DefaultLayoutOptions())
	if a == b {
		t.Fatalf("expected a fresh engine per call")
	}
}

func TestRegisterLayout_CustomAndDuplicate(t *testing.T) {
	if !IsRegisteredLayout("test-columns") {
		RegisterLayout("test-columns", func(LayoutOptions) LayoutEngine { return NewGridLayoutEngine(false) })
	}
	if !IsRegisteredLayout("test-columns") {
		t.Fatalf("expected custom layout to be registered")
	}

	found := false
	for _, name := range LayoutNames() {
		if name == "test-columns" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected custom layout in LayoutNames")
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate registration")
		}
	}()
	RegisterLayout("tall", func(LayoutOptions) LayoutEngine { return NewFullLayoutEngine() })
}

func TestWindowLocation_IsPointInsideInclusive(t *testing.T) {
	loc := WindowLocation{X: 10, Y: 20, Width: 100, Height: 50}
	tests := []struct {
		x, y int
		want bool
	}{
		{10, 20, true},
		{110, 70, true},
		{9, 20, false},
		{50, 71, false},
	}
	for _, tt := range tests {
		if got := loc.IsPointInside(tt.x, tt.y); got != tt.want {
			t.Errorf("IsPointInside(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestFormatTitle(t *testing.T) {
	d := &fakeDesktop{}
	w := d.newWindow(1)

	w.title = "notes.txt"
	if got := FormatTitle(w, 54); got != "fake - notes.txt" {
		t.Fatalf("unexpected title %q", got)
	}

	w.title = "Fake Browser"
	if got := FormatTitle(w, 54); got != "Fake Browser" {
		t.Fatalf("expected process prefix dropped, got %q", got)
	}

	w.title = "a very long window title"
	if got := FormatTitle(w, 10); got != "fa - a ver" {
		t.Fatalf("expected truncation, got %q", got)
	}

	if got := FormatTitle(nil, 10); got != "" {
		t.Fatalf("expected empty title for nil window, got %q", got)
	}
}
