package settings

import "testing"

func TestNewStore_FillsDefaults(t *testing.T) {
	s := NewStore(Dock{DockSize: -1})
	got := s.Snapshot()
	if got != Defaults() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestUpdate_ValidatesAndPublishes(t *testing.T) {
	s := NewStore(Defaults())
	var published []Dock
	s.Updates().Subscribe(func(d Dock) { published = append(published, d) })

	if err := s.Update(Dock{DockSize: 64, DockMag: 0.5}); err == nil {
		t.Fatalf("expected dock_mag < 1 to be rejected")
	}
	if err := s.Update(Dock{DockSize: 64, DockMag: 1.5}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got := s.Snapshot()
	if got.DockSize != 64 || got.DockMag != 1.5 || got.Influence != DefaultInfluence {
		t.Fatalf("unexpected snapshot %+v", got)
	}
	if len(published) != 1 {
		t.Fatalf("expected one published update, got %d", len(published))
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := NewStore(Defaults())
	snap := s.Snapshot()
	snap.DockSize = 999
	if s.Snapshot().DockSize == 999 {
		t.Fatalf("snapshot must not alias the store")
	}
}

func TestRadius(t *testing.T) {
	d := Dock{DockSize: 50, DockMag: 2, Influence: 6}
	if d.Radius() != 300 {
		t.Fatalf("expected 300, got %v", d.Radius())
	}
}
