package dock

import (
	"math"
	"math/rand"
	"testing"

	"github.com/1broseidon/deskwm/internal/settings"
	"github.com/1broseidon/deskwm/internal/viewport"
)

func testSettings() settings.Dock {
	return settings.Dock{DockSize: 50, DockMag: 2, Influence: 6}
}

func items(n int) []Item {
	out := make([]Item, n)
	for i := range out {
		out[i] = Item{ID: string(rune('a' + i)), Desktop: true}
	}
	return out
}

func TestScale_PeakAndSaturation(t *testing.T) {
	s := testSettings()

	if got := Scale(0, s); got != 100 {
		t.Fatalf("expected peak 100 at distance 0, got %v", got)
	}
	if got := Scale(s.Radius(), s); got != 50 {
		t.Fatalf("expected base size at the radius, got %v", got)
	}
	if got := Scale(10*s.Radius(), s); got != 50 {
		t.Fatalf("expected base size far away, got %v", got)
	}
	if got := Scale(-s.Radius()/2, s); math.Abs(got-75) > 1e-9 {
		t.Fatalf("expected 75 at half radius, got %v", got)
	}
	if got := Scale(math.NaN(), s); got != 50 {
		t.Fatalf("expected base size for NaN, got %v", got)
	}
}

func TestScale_Monotone(t *testing.T) {
	s := testSettings()
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		a := r.Float64() * 2 * s.Radius()
		b := r.Float64() * 2 * s.Radius()
		if a > b {
			a, b = b, a
		}
		sa, sb := Scale(a, s), Scale(b, s)
		if sa < sb {
			t.Fatalf("scale increased with distance: %v@%v < %v@%v", sa, a, sb, b)
		}
		if sa < s.DockSize || sa > s.DockSize*s.DockMag {
			t.Fatalf("scale %v outside [%v, %v]", sa, s.DockSize, s.DockSize*s.DockMag)
		}
	}
}

func TestScale_NoMagnification(t *testing.T) {
	s := testSettings()
	s.DockMag = 1
	if got := Scale(0, s); got != s.DockSize {
		t.Fatalf("expected %v, got %v", s.DockSize, got)
	}
}

func TestComputeLayout(t *testing.T) {
	vp := viewport.Measure(1024, 768, 50, 0)
	l := ComputeLayout(3, vp, testSettings())

	// 3*50 + 2*8 + 2*8 = 182
	if l.Width != 182 {
		t.Fatalf("expected width 182, got %v", l.Width)
	}
	if l.Left != (1024-182)/2.0 {
		t.Fatalf("expected left %v, got %v", (1024-182)/2.0, l.Left)
	}
	want := []float64{l.Left + 33, l.Left + 91, l.Left + 149}
	for i := range want {
		if l.Centers[i] != want[i] {
			t.Fatalf("center %d: expected %v, got %v", i, want[i], l.Centers[i])
		}
	}
	if mid := l.Centers[1]; mid != 512 {
		t.Fatalf("expected middle icon at the surface center, got %v", mid)
	}
}

func TestDock_PointerPublishesAndResets(t *testing.T) {
	store := settings.NewStore(testSettings())
	vp := viewport.Measure(1024, 768, 50, 0)
	d := New(store, vp, items(3))

	var got [][]float64
	d.Scales().Subscribe(func(v []float64) { got = append(got, v) })

	x := d.Layout().Centers[1]
	d.Pointer(&x)
	d.Pointer(nil)

	if len(got) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(got))
	}
	hover := got[0]
	if hover[1] != 100 {
		t.Fatalf("expected hovered icon at 100, got %v", hover[1])
	}
	if hover[0] != hover[2] || hover[0] <= 50 || hover[0] >= 100 {
		t.Fatalf("expected symmetric neighbour falloff, got %v", hover)
	}
	for i, v := range got[1] {
		if v != 50 {
			t.Fatalf("icon %d: expected reset to 50, got %v", i, v)
		}
	}
}

func TestDock_MobileDisablesMagnification(t *testing.T) {
	store := settings.NewStore(testSettings())
	d := New(store, viewport.Measure(400, 700, 50, 0), items(2))

	x := d.Layout().Centers[0]
	d.Pointer(&x)
	for i, v := range d.Scales().Get() {
		if v != 50 {
			t.Fatalf("icon %d: expected 50 on mobile, got %v", i, v)
		}
	}
}

func TestDock_SettingsChangeRefresh(t *testing.T) {
	store := settings.NewStore(testSettings())
	d := New(store, viewport.Measure(1024, 768, 50, 0), items(1))

	x := d.Layout().Centers[0]
	d.Pointer(&x)
	if err := store.Update(settings.Dock{DockSize: 40, DockMag: 3}); err != nil {
		t.Fatalf("update: %v", err)
	}
	d.Refresh()

	// The row is re-centered, so the old pointer still sits over the icon.
	if got := d.Scales().Get()[0]; got != 120 {
		t.Fatalf("expected 120 after refresh, got %v", got)
	}
}

func TestDock_HitTest(t *testing.T) {
	store := settings.NewStore(testSettings())
	d := New(store, viewport.Measure(1024, 768, 50, 0), items(3))
	l := d.Layout()

	if got := d.HitTest(l.Centers[2]); got != 2 {
		t.Fatalf("expected hit on icon 2, got %d", got)
	}
	if got := d.HitTest(l.Centers[0] + 29); got != -1 {
		t.Fatalf("expected a miss in the spacing gap, got %d", got)
	}
}
