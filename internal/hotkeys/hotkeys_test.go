package hotkeys

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/wm"
)

func newDesktop(t *testing.T, cfg *config.Config) *desktop.Desktop {
	t.Helper()
	cfg.Apps = []config.AppConfig{
		{ID: "calc", Desktop: true},
		{ID: "launchpad"},
	}
	return desktop.New(cfg, 1024, 768)
}

func binding(t *testing.T, bs []Binding, name string) Binding {
	t.Helper()
	for _, b := range bs {
		if b.Name == name {
			return b
		}
	}
	t.Fatalf("no %s binding in %+v", name, bs)
	return Binding{}
}

func TestBindings_SkipsDisabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.CloseHotkey = ""
	bs := Bindings(cfg, newDesktop(t, cfg))
	if len(bs) != 3 {
		t.Fatalf("expected 3 bindings, got %d", len(bs))
	}
	for _, b := range bs {
		if b.Name == "close" {
			t.Fatalf("expected close binding to be omitted")
		}
	}
}

func TestBindings_ActOnFocusedWindow(t *testing.T) {
	cfg := config.DefaultConfig()
	d := newDesktop(t, cfg)
	bs := Bindings(cfg, d)

	if binding(t, bs, "maximize").Run() {
		t.Fatalf("expected maximize without a focused window to do nothing")
	}

	d.Open("calc")
	if !binding(t, bs, "maximize").Run() {
		t.Fatalf("expected maximize to act")
	}
	if w, _ := d.Manager().Window("calc"); w.State != wm.StateMaximized {
		t.Fatalf("expected maximized, got %s", w.State)
	}
	if binding(t, bs, "minimize").Run() {
		t.Fatalf("expected minimize to be inert while maximized")
	}
	if !binding(t, bs, "close").Run() || d.Manager().IsOpen("calc") {
		t.Fatalf("expected close to remove the window")
	}
}

func TestBindings_Launchpad(t *testing.T) {
	cfg := config.DefaultConfig()
	d := newDesktop(t, cfg)
	lp := binding(t, Bindings(cfg, d), "launchpad")

	lp.Run()
	if !d.Launchpad().Get() {
		t.Fatalf("expected launchpad to show")
	}
	lp.Run()
	if d.Launchpad().Get() {
		t.Fatalf("expected launchpad to hide")
	}
}

func TestIgnoreMasks(t *testing.T) {
	caps := uint16(xproto.ModMaskLock)
	num := uint16(xproto.ModMask2)
	got := ignoreMasks([]uint16{caps, num})
	want := map[uint16]bool{0: true, caps: true, num: true, caps | num: true}
	if len(got) != len(want) {
		t.Fatalf("expected %d masks, got %v", len(want), got)
	}
	for _, m := range got {
		if !want[m] {
			t.Fatalf("unexpected mask %d in %v", m, got)
		}
	}
}
