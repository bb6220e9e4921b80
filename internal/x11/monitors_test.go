package x11

import (
	"testing"

	"github.com/BurntSushi/xgbutil/ewmh"
)

func TestIntersectionRect(t *testing.T) {
	tests := []struct {
		name string
		got  rect
		want rect
	}{
		{"overlap", intersectionRect(0, 0, 100, 100, 50, 50, 150, 150), rect{x: 50, y: 50, w: 50, h: 50}},
		{"contained", intersectionRect(0, 0, 100, 100, 10, 20, 30, 40), rect{x: 10, y: 20, w: 20, h: 20}},
		{"touching edges", intersectionRect(0, 0, 100, 100, 100, 0, 200, 100), rect{}},
		{"disjoint", intersectionRect(0, 0, 10, 10, 50, 50, 60, 60), rect{}},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.name, tt.got, tt.want)
		}
	}
}

func TestUpdateStrutsForMonitor_OnlyCountsOverlappingDocks(t *testing.T) {
	left := &Monitor{X: 0, Y: 0, Width: 1920, Height: 1080}
	right := &Monitor{X: 1920, Y: 0, Width: 1280, Height: 1024}

	// A 30px top panel spanning only the left monitor.
	panel := &ewmh.WmStrutPartial{Top: 30, TopStartX: 0, TopEndX: 1919}

	var leftAcc, rightAcc dockStruts
	updateStrutsForMonitor(left, 3200, 1080, panel, &leftAcc)
	updateStrutsForMonitor(right, 3200, 1080, panel, &rightAcc)

	if leftAcc.top != 30 {
		t.Fatalf("expected left monitor top strut 30, got %+v", leftAcc)
	}
	if rightAcc != (dockStruts{}) {
		t.Fatalf("expected no struts on right monitor, got %+v", rightAcc)
	}
}

func TestUpdateStrutsForMonitor_BottomAndSides(t *testing.T) {
	mon := &Monitor{X: 0, Y: 0, Width: 1000, Height: 800}
	sp := &ewmh.WmStrutPartial{
		Bottom:       40,
		BottomStartX: 0,
		BottomEndX:   999,
		Left:         20,
		LeftStartY:   0,
		LeftEndY:     799,
	}

	var acc dockStruts
	updateStrutsForMonitor(mon, 1000, 800, sp, &acc)
	if acc.bottom != 40 || acc.left != 20 || acc.top != 0 || acc.right != 0 {
		t.Fatalf("unexpected struts %+v", acc)
	}
}
