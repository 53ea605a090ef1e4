package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/1broseidon/deskwm/internal/apps"
	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/frame"
	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/settings"
	"github.com/1broseidon/deskwm/internal/wm"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.DockSize = 60
	cfg.Apps = []config.AppConfig{
		{ID: apps.LaunchpadID, Title: "Launchpad"},
		{ID: "calc", Title: "Calculator", Desktop: true},
		{ID: "docs", Title: "Docs", Link: "https://example.com/docs"},
	}
	return cfg
}

// newTestModel sizes a 128x49 terminal: 48 surface rows of 16px make a
// 1024x768 desktop.
func newTestModel(t *testing.T) (model, *desktop.Desktop) {
	t.Helper()
	d := desktop.New(testConfig(), 0, 0)
	m := newModel(d, DefaultMetrics, log.New(io.Discard))
	m = update(t, m, tea.WindowSizeMsg{Width: 128, Height: 49})
	return m, d
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return out
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMetrics(t *testing.T) {
	m := DefaultMetrics
	if w, h := m.Surface(128, 48); w != 1024 || h != 768 {
		t.Fatalf("expected 1024x768, got %vx%v", w, h)
	}
	if m.col(192) != 24 || m.row(144) != 9 {
		t.Fatalf("unexpected cell for (192,144): %d,%d", m.col(192), m.row(144))
	}
	if m.x(10) != 84 || m.y(2) != 40 {
		t.Fatalf("unexpected cell centre: %v,%v", m.x(10), m.y(2))
	}
}

func TestWindowSize_ResizesDesktop(t *testing.T) {
	_, d := newTestModel(t)
	vp := d.Manager().Viewport()
	if vp.Width != 1024 || vp.Height != 768 {
		t.Fatalf("expected 1024x768 viewport, got %+v", vp)
	}
}

func TestBuildScene(t *testing.T) {
	m, d := newTestModel(t)
	d.Open("calc")

	s := m.scene()
	if len(s.windows) != 1 {
		t.Fatalf("expected one window, got %d", len(s.windows))
	}
	b := s.windows[0]
	if b.x != 24 || b.y != 9 || b.w != 80 || b.h != 25 {
		t.Fatalf("unexpected box %+v", b)
	}
	if s.dockTop != 43 {
		t.Fatalf("expected dock to start at row 43, got %d", s.dockTop)
	}
	if s.focused != "calc" {
		t.Fatalf("expected calc focused, got %q", s.focused)
	}

	d.SetMin("calc")
	if got := m.scene().windows; len(got) != 0 {
		t.Fatalf("expected minimized windows to be skipped, got %d", len(got))
	}
}

func TestToBox_ClampsAboveSurface(t *testing.T) {
	st := frame.State{Bounds: geometry.Rect{X: 0, Y: -48, Width: 80, Height: 160}}
	b := toBox(st, DefaultMetrics)
	if b.y != 0 || b.h != 7 {
		t.Fatalf("expected title row kept on row 0 with height 7, got %+v", b)
	}
	if b.w != 11 {
		t.Fatalf("expected minimum width 11, got %d", b.w)
	}
}

func TestHitTest(t *testing.T) {
	m, d := newTestModel(t)
	d.Open("calc")
	s := m.scene()

	tests := []struct {
		name string
		x, y int
		want hitKind
	}{
		{"close", 26, 9, hitControl},
		{"maximize", 30, 9, hitControl},
		{"title", 50, 9, hitTitle},
		{"body", 50, 20, hitBody},
		{"resize corner", 103, 33, hitResize},
		{"dock", 64, 46, hitDock},
		{"empty", 5, 5, hitNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.hitTest(tt.x, tt.y); got.kind != tt.want {
				t.Fatalf("hitTest(%d,%d): expected %v, got %v", tt.x, tt.y, tt.want, got.kind)
			}
		})
	}
}

func TestHitTest_HiddenDockYieldsToWindows(t *testing.T) {
	m, d := newTestModel(t)
	d.Open("calc")
	d.SetMax("calc", nil)

	s := m.scene()
	if !s.dock.Hidden {
		t.Fatalf("expected dock hidden behind a maximized window")
	}
	if got := s.hitTest(64, 46); got.kind != hitBody {
		t.Fatalf("expected the maximized window under the dock row, got %v", got.kind)
	}
}

func TestMouse_TitleDrag(t *testing.T) {
	m, d := newTestModel(t)
	d.Open("calc")

	m = update(t, m, press(50, 9))
	if m.drag == nil {
		t.Fatalf("expected a drag to start on the title bar")
	}
	m = update(t, m, motion(40, 5))
	if got := m.scene().windows[0]; got.x != 14 || got.y != 5 {
		t.Fatalf("expected the box to follow the drag, got %+v", got)
	}
	m = update(t, m, release(40, 5))

	r, _ := d.Manager().Bounds("calc")
	if r.X != 112 || r.Y != 80 {
		t.Fatalf("expected committed position (112,80), got (%v,%v)", r.X, r.Y)
	}
	if m.drag != nil {
		t.Fatalf("expected the drag to end on release")
	}
}

func TestMouse_CornerResize(t *testing.T) {
	m, d := newTestModel(t)
	d.Open("calc")

	m = update(t, m, press(103, 33))
	m = update(t, m, motion(93, 30))
	update(t, m, release(93, 30))

	r, _ := d.Manager().Bounds("calc")
	if r.Width != 560 || r.Height != 352 {
		t.Fatalf("expected 560x352 after resize, got %vx%v", r.Width, r.Height)
	}
}

func TestMouse_DoubleClickMaximizes(t *testing.T) {
	m, d := newTestModel(t)
	d.Open("calc")
	now := time.Unix(100, 0)
	m.now = func() time.Time { return now }

	m = update(t, m, press(50, 9))
	m = update(t, m, release(50, 9))
	now = now.Add(200 * time.Millisecond)
	update(t, m, press(50, 9))

	w, _ := d.Manager().Window("calc")
	if w.State != wm.StateMaximized {
		t.Fatalf("expected maximized, got %v", w.State)
	}
}

func TestMouse_SlowSecondClickDoesNotMaximize(t *testing.T) {
	m, d := newTestModel(t)
	d.Open("calc")
	now := time.Unix(100, 0)
	m.now = func() time.Time { return now }

	m = update(t, m, press(50, 9))
	m = update(t, m, release(50, 9))
	now = now.Add(time.Second)
	update(t, m, press(50, 9))

	if w, _ := d.Manager().Window("calc"); w.State != wm.StateNormal {
		t.Fatalf("expected normal, got %v", w.State)
	}
}

func TestMouse_Controls(t *testing.T) {
	m, d := newTestModel(t)
	d.Open("calc")

	m = update(t, m, press(30, 9))
	if w, _ := d.Manager().Window("calc"); w.State != wm.StateMaximized {
		t.Fatalf("expected maximize control to maximize, got %v", w.State)
	}

	// Maximized windows fill the surface, so the close dot moves to (2,0).
	update(t, m, press(2, 0))
	if d.Manager().IsOpen("calc") {
		t.Fatalf("expected close control to close the window")
	}
}

func TestMouse_DockMagnifiesAndResets(t *testing.T) {
	m, d := newTestModel(t)
	centre := DefaultMetrics.col(d.Dock().Layout().Centers[1])

	m = update(t, m, motion(centre, 46))
	scales := d.Dock().Scales().Get()
	if scales[1] <= 110 {
		t.Fatalf("expected the hovered item magnified, got %v", scales)
	}
	if !m.inDock {
		t.Fatalf("expected pointer tracked in the dock")
	}

	m = update(t, m, motion(centre, 20))
	for i, s := range d.Dock().Scales().Get() {
		if s != 60 {
			t.Fatalf("expected scale %d reset to 60, got %v", i, s)
		}
	}
	if m.inDock {
		t.Fatalf("expected pointer to have left the dock")
	}
}

func TestMouse_DockClick(t *testing.T) {
	m, d := newTestModel(t)
	layout := d.Dock().Layout()

	m = update(t, m, press(DefaultMetrics.col(layout.Centers[1]), 46))
	if !d.Manager().IsOpen("calc") {
		t.Fatalf("expected the calc dock item to open a window")
	}

	m = update(t, m, press(DefaultMetrics.col(layout.Centers[2]), 46))
	if m.status != "link: https://example.com/docs" {
		t.Fatalf("expected link status, got %q", m.status)
	}

	m = update(t, m, press(DefaultMetrics.col(layout.Centers[0]), 46))
	if !d.Launchpad().Get() {
		t.Fatalf("expected the launchpad item to show the launchpad")
	}
	// The next message picks up the flag.
	m = update(t, m, motion(0, 0))
	if m.launchpad == nil {
		t.Fatalf("expected the launchpad overlay")
	}
	if !strings.Contains(m.View(), "Launchpad") {
		t.Fatalf("expected launchpad title in view")
	}
}

func TestLaunchpad_Keys(t *testing.T) {
	m, d := newTestModel(t)

	m = update(t, m, runeKey(" "))
	if !d.Launchpad().Get() || m.launchpad == nil {
		t.Fatalf("expected space to open the launchpad")
	}
	if got := len(m.launchpad.Items()); got != 2 {
		t.Fatalf("expected launchpad to list 2 apps, got %d", got)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !d.Manager().IsOpen("calc") {
		t.Fatalf("expected enter to open the selected app")
	}
	if d.Launchpad().Get() || m.launchpad != nil {
		t.Fatalf("expected opening an app to dismiss the launchpad")
	}

	m = update(t, m, runeKey(" "))
	update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if d.Launchpad().Get() {
		t.Fatalf("expected esc to hide the launchpad")
	}
}

func TestKeys_WindowActions(t *testing.T) {
	m, d := newTestModel(t)
	d.Open("calc")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if r, _ := d.Manager().Bounds("calc"); r.X != 200 {
		t.Fatalf("expected right arrow to move one cell, got x=%v", r.X)
	}

	m = update(t, m, runeKey("x"))
	if w, _ := d.Manager().Window("calc"); w.State != wm.StateMaximized {
		t.Fatalf("expected x to maximize, got %v", w.State)
	}

	m = update(t, m, runeKey("m"))
	if m.status != "minimize is not available for calc" {
		t.Fatalf("expected minimize refused while maximized, got %q", m.status)
	}

	update(t, m, runeKey("w"))
	if d.Manager().IsOpen("calc") {
		t.Fatalf("expected w to close the window")
	}
}

func TestKeys_QuitAndHelp(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, runeKey("?"))
	if !m.help.ShowAll {
		t.Fatalf("expected ? to expand help")
	}

	_, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestSettingsForm(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, runeKey("s"))
	if m.settings == nil {
		t.Fatalf("expected s to open dock settings")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.settings != nil {
		t.Fatalf("expected esc to cancel dock settings")
	}

	f := newSettingsForm(settings.Dock{DockSize: 60, DockMag: 2, Influence: 1.5})
	if f.fSize != "60" || f.fMag != "2" || f.fInfluence != "1.5" {
		t.Fatalf("unexpected bound values %q %q %q", f.fSize, f.fMag, f.fInfluence)
	}
	f.fSize = " 72 "
	if got := f.values(); got.DockSize != 72 || got.DockMag != 2 {
		t.Fatalf("unexpected values %+v", got)
	}
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) error
		in   string
		ok   bool
	}{
		{"positive", positive, "4", true},
		{"positive zero", positive, "0", false},
		{"positive text", positive, "big", false},
		{"mag one", atLeastOne, "1", true},
		{"mag below one", atLeastOne, "0.5", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn(tt.in)
			if (err == nil) != tt.ok {
				t.Fatalf("%s(%q): unexpected error state %v", tt.name, tt.in, err)
			}
		})
	}
}

func TestView_DrawsWindowAndDock(t *testing.T) {
	m, d := newTestModel(t)
	d.Open("calc")

	out := m.View()
	lines := strings.Split(out, "\n")
	if len(lines) != 49 {
		t.Fatalf("expected 49 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[9], "Calculator") {
		t.Fatalf("expected title on row 9, got %q", lines[9])
	}
	if !strings.Contains(lines[46], "[") {
		t.Fatalf("expected dock items on row 46, got %q", lines[46])
	}
	if !strings.Contains(lines[47], "•") {
		t.Fatalf("expected an open marker on row 47, got %q", lines[47])
	}
}

func TestDockLabel(t *testing.T) {
	tests := []struct {
		title string
		w     int
		want  string
	}{
		{"Calculator", 5, "[Cal]"},
		{"Go", 6, "[ Go ]"},
		{"Docs", 3, "[D]"},
	}
	for _, tt := range tests {
		if got := dockLabel(tt.title, tt.w); got != tt.want {
			t.Fatalf("dockLabel(%q, %d): expected %q, got %q", tt.title, tt.w, tt.want, got)
		}
	}
}
