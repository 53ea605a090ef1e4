package x11

import (
	"testing"

	"github.com/BurntSushi/xgbutil/ewmh"
)

func TestPickMonitor(t *testing.T) {
	monitors := []Monitor{
		{ID: 0, Name: "left", Width: 1920, Height: 1080},
		{ID: 1, Name: "right", X: 1920, Width: 2560, Height: 1440},
	}
	tests := []struct {
		x, y int
		want string
	}{
		{100, 100, "left"},
		{2000, 1200, "right"},
		{-1, -1, "left"},
		{2000, 1439, "right"},
		{1000, 1200, "left"}, // below the left monitor, falls back to the first
	}
	for _, tt := range tests {
		if got := pickMonitor(monitors, tt.x, tt.y); got.Name != tt.want {
			t.Fatalf("pickMonitor(%d, %d): expected %s, got %s", tt.x, tt.y, tt.want, got.Name)
		}
	}
}

func TestApplyStruts(t *testing.T) {
	left := Monitor{Name: "left", Width: 1920, Height: 1080}
	right := Monitor{Name: "right", X: 1920, Width: 1920, Height: 1080}
	rootW, rootH := 3840, 1080

	// Bottom panel spanning only the left monitor.
	panel := ewmh.WmStrutPartial{Bottom: 40, BottomStartX: 0, BottomEndX: 1919}
	// Top bar spanning the whole root.
	bar := fullEdgeStrut(&ewmh.WmStrut{Top: 24}, rootW, rootH)

	got := applyStruts(left, rootW, rootH, []ewmh.WmStrutPartial{panel, bar})
	if got.Y != 24 || got.Height != 1080-24-40 || got.Width != 1920 {
		t.Fatalf("unexpected left work area %+v", got)
	}

	got = applyStruts(right, rootW, rootH, []ewmh.WmStrutPartial{panel, bar})
	if got.Y != 24 || got.Height != 1080-24 || got.X != 1920 {
		t.Fatalf("unexpected right work area %+v", got)
	}
}

func TestApplyStruts_SideAndClamp(t *testing.T) {
	mon := Monitor{Width: 100, Height: 100}
	side := ewmh.WmStrutPartial{Left: 30, LeftEndY: 99, Right: 90, RightStartY: 0, RightEndY: 99}

	got := applyStruts(mon, 100, 100, []ewmh.WmStrutPartial{side})
	if got.X != 30 || got.Width != 1 {
		t.Fatalf("expected width clamped to 1 at x=30, got %+v", got)
	}
}

func TestWatcherChanged(t *testing.T) {
	w := NewWatcher(nil, nil)
	if !w.changed(Monitor{Width: 800, Height: 600}) {
		t.Fatalf("expected first measurement to be reported")
	}
	if w.changed(Monitor{Name: "other", Width: 800, Height: 600}) {
		t.Fatalf("expected an unchanged size to be suppressed")
	}
	if !w.changed(Monitor{Width: 1024, Height: 600}) {
		t.Fatalf("expected a new size to be reported")
	}
}
