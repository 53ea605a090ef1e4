package wm

import (
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/signal"
	"github.com/1broseidon/deskwm/internal/viewport"
)

// Manager owns the window set. Every mutation goes through one of its
// methods; events are processed one at a time under a single lock, so the
// last event to arrive is authoritative.
//
// Operations on an unknown id are no-ops and report false, which tolerates
// stale callbacks from UI events that raced a close.
type Manager struct {
	mu      sync.Mutex
	engine  geometry.Engine
	vp      viewport.Viewport
	windows map[string]*Window
	topZ    int
	logger  *log.Logger
	changes *signal.Value[Change]
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the diagnostics logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a window manager for the given viewport.
func NewManager(engine geometry.Engine, vp viewport.Viewport, opts ...Option) *Manager {
	m := &Manager{
		engine:  engine,
		vp:      vp,
		windows: make(map[string]*Window),
		logger:  log.New(io.Discard),
		changes: signal.New(Change{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Changes is the stream of committed transitions.
func (m *Manager) Changes() *signal.Value[Change] {
	return m.changes
}

// Engine returns the constraint engine in use.
func (m *Manager) Engine() geometry.Engine {
	return m.engine
}

// Viewport returns the current viewport.
func (m *Manager) Viewport() viewport.Viewport {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vp
}

// Open creates the window for id if it does not exist. An existing
// minimized window is restored instead; any existing window is brought to
// the front. It reports whether anything happened: a window was created,
// restored or raised.
func (m *Manager) Open(id string, opts OpenOptions) bool {
	m.mu.Lock()

	if w, ok := m.windows[id]; ok {
		kind := ChangeFocus
		if w.State == StateMinimized {
			w.State = m.openStateLocked(w)
			kind = ChangeRestore
		}
		focused := m.raiseLocked(w)
		snap := *w
		m.mu.Unlock()

		if kind != ChangeRestore && !focused {
			return false
		}
		m.logger.Debug("reopen", "id", id, "state", snap.State, "z", snap.Z)
		m.changes.Set(Change{Kind: kind, ID: id, Window: snap})
		return true
	}

	title := opts.Title
	if title == "" {
		title = id
	}
	w := &Window{
		ID:          id,
		Title:       title,
		Constraints: opts.Constraints,
		Restored:    m.engine.Initial(m.vp, opts.Constraints, opts.Hints),
	}
	w.State = m.openStateLocked(w)
	m.topZ++
	w.Z = m.topZ
	m.windows[id] = w
	snap := *w
	m.mu.Unlock()

	m.logger.Debug("open", "id", id, "state", snap.State, "z", snap.Z, "geometry", snap.Restored)
	m.changes.Set(Change{Kind: ChangeOpen, ID: id, Window: snap})
	return true
}

// openStateLocked is the state a window enters when it is opened or
// restored: Maximized under the Mobile policy, Normal otherwise. Aspect-locked
// windows never maximize; the Mobile policy still renders them full-screen.
func (m *Manager) openStateLocked(w *Window) State {
	if m.vp.IsMobile() && !w.AspectLocked() {
		return StateMaximized
	}
	return StateNormal
}

// Focus brings id to the front. It does not change the window state.
func (m *Manager) Focus(id string) bool {
	m.mu.Lock()
	w, ok := m.windows[id]
	if !ok {
		m.mu.Unlock()
		return false
	}
	if !m.raiseLocked(w) {
		m.mu.Unlock()
		return false
	}
	snap := *w
	m.mu.Unlock()

	m.changes.Set(Change{Kind: ChangeFocus, ID: id, Window: snap})
	return true
}

// raiseLocked assigns w the next z index unless it already holds the top.
func (m *Manager) raiseLocked(w *Window) bool {
	if w.Z == m.topZ {
		return false
	}
	m.topZ++
	w.Z = m.topZ
	return true
}

// SetMinimized hides a Normal window. Its geometry is kept for restore.
func (m *Manager) SetMinimized(id string) bool {
	m.mu.Lock()
	w, ok := m.windows[id]
	if !ok || w.State != StateNormal {
		m.mu.Unlock()
		return false
	}
	w.State = StateMinimized
	snap := *w
	m.mu.Unlock()

	m.logger.Debug("minimize", "id", id)
	m.changes.Set(Change{Kind: ChangeMinimize, ID: id, Window: snap})
	return true
}

// SetMaximized toggles between Normal and Maximized, or forces the given
// target. Aspect-locked and minimized windows are left alone, and a window
// cannot leave Maximized while the Mobile policy is active.
func (m *Manager) SetMaximized(id string, target *bool) bool {
	m.mu.Lock()
	w, ok := m.windows[id]
	if !ok || w.AspectLocked() || w.State == StateMinimized {
		m.mu.Unlock()
		return false
	}

	want := w.State != StateMaximized
	if target != nil {
		want = *target
	}
	if want == (w.State == StateMaximized) {
		m.mu.Unlock()
		return false
	}
	if !want && m.vp.IsMobile() {
		m.mu.Unlock()
		return false
	}

	kind := ChangeMaximize
	if want {
		w.State = StateMaximized
	} else {
		w.State = StateNormal
		w.Restored = m.engine.Clamp(w.Restored, m.vp, w.Constraints, false)
		kind = ChangeUnmax
	}
	snap := *w
	m.mu.Unlock()

	m.logger.Debug("maximize", "id", id, "state", snap.State)
	m.changes.Set(Change{Kind: kind, ID: id, Window: snap})
	return true
}

// Close removes id regardless of its state.
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	if _, ok := m.windows[id]; !ok {
		m.mu.Unlock()
		return false
	}
	delete(m.windows, id)
	m.mu.Unlock()

	m.logger.Debug("close", "id", id)
	m.changes.Set(Change{Kind: ChangeClose, ID: id})
	return true
}

// DragStop commits a drag that ended at (x, y). Dragging is disabled for
// maximized windows and under the Mobile policy.
func (m *Manager) DragStop(id string, x, y float64) bool {
	m.mu.Lock()
	w, ok := m.windows[id]
	if !ok || !m.gesturesEnabledLocked(w) {
		m.mu.Unlock()
		return false
	}
	req := w.Restored
	req.X, req.Y = x, y
	w.Restored = m.engine.Clamp(req, m.vp, w.Constraints, false)
	snap := *w
	m.mu.Unlock()

	m.logger.Debug("drag stop", "id", id, "requested_x", x, "requested_y", y, "geometry", snap.Restored)
	m.changes.Set(Change{Kind: ChangeMove, ID: id, Window: snap})
	return true
}

// ResizeStop commits a resize that ended with bounds r. For aspect-locked
// windows the height is derived from the width.
func (m *Manager) ResizeStop(id string, r geometry.Rect) bool {
	m.mu.Lock()
	w, ok := m.windows[id]
	if !ok || !m.gesturesEnabledLocked(w) {
		m.mu.Unlock()
		return false
	}
	w.Restored = m.engine.Clamp(r, m.vp, w.Constraints, false)
	snap := *w
	m.mu.Unlock()

	m.logger.Debug("resize stop", "id", id, "requested", r, "geometry", snap.Restored)
	m.changes.Set(Change{Kind: ChangeResize, ID: id, Window: snap})
	return true
}

func (m *Manager) gesturesEnabledLocked(w *Window) bool {
	return w.State == StateNormal && !m.vp.IsMobile()
}

// SetViewport applies a new surface measurement. Restored geometry is
// re-clamped so no window is larger than the surface, and every visible
// window is forced to Maximized under the Mobile policy.
func (m *Manager) SetViewport(vp viewport.Viewport) {
	m.mu.Lock()
	m.vp = vp
	for _, w := range m.windows {
		if vp.IsMobile() {
			w.Restored = m.engine.ClampSize(w.Restored, vp, w.Constraints)
			if w.State == StateNormal && !w.AspectLocked() {
				w.State = StateMaximized
			}
			continue
		}
		w.Restored = m.engine.Clamp(w.Restored, vp, w.Constraints, false)
	}
	m.mu.Unlock()

	m.logger.Debug("viewport", "width", vp.Width, "height", vp.Height, "policy", vp.Policy)
	m.changes.Set(Change{Kind: ChangeViewport})
}

// Window returns a copy of the record for id.
func (m *Manager) Window(id string) (Window, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.windows[id]
	if !ok {
		return Window{}, false
	}
	return *w, true
}

// Windows returns copies of all windows ordered back to front.
func (m *Manager) Windows() []Window {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Window, 0, len(m.windows))
	for _, w := range m.windows {
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Z < out[j].Z })
	return out
}

// IsOpen reports whether id has a live window (minimized windows count).
func (m *Manager) IsOpen(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.windows[id]
	return ok
}

// Focused returns the frontmost visible window, or "" when none is visible.
func (m *Manager) Focused() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	best, bestZ := "", 0
	for id, w := range m.windows {
		if w.State == StateMinimized {
			continue
		}
		if best == "" || w.Z > bestZ {
			best, bestZ = id, w.Z
		}
	}
	return best
}

// Bounds returns the rendered rectangle of id for the current viewport.
func (m *Manager) Bounds(id string) (geometry.Rect, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.windows[id]
	if !ok {
		return geometry.Rect{}, false
	}
	return m.boundsLocked(w), true
}

func (m *Manager) boundsLocked(w *Window) geometry.Rect {
	return m.engine.Clamp(w.Restored, m.vp, w.Constraints, w.State == StateMaximized)
}
