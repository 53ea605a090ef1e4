// Package desktop is the host orchestrator. It owns the window manager,
// the dock and the launchpad flag, and implements the callback contract
// the frames and controls call into.
package desktop

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/1broseidon/deskwm/internal/apps"
	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/controls"
	"github.com/1broseidon/deskwm/internal/dock"
	"github.com/1broseidon/deskwm/internal/frame"
	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/settings"
	"github.com/1broseidon/deskwm/internal/signal"
	"github.com/1broseidon/deskwm/internal/viewport"
	"github.com/1broseidon/deskwm/internal/wm"
)

// DockAction is what activating a dock item did.
type DockAction string

const (
	DockNone      DockAction = "none"
	DockWindow    DockAction = "window"
	DockLaunchpad DockAction = "launchpad"
	DockLink      DockAction = "link"
)

// DockResult describes the outcome of a dock activation. Links are
// returned to the caller to open; the desktop never launches anything.
type DockResult struct {
	Action  DockAction `json:"action"`
	ID      string     `json:"id"`
	Link    string     `json:"link,omitempty"`
	Changed bool       `json:"changed"`
}

// Status is a point-in-time summary of the desktop.
type Status struct {
	Viewport   viewport.Viewport `json:"viewport"`
	Windows    int               `json:"windows"`
	Visible    int               `json:"visible"`
	Focused    string            `json:"focused,omitempty"`
	Launchpad  bool              `json:"launchpad"`
	DockHidden bool              `json:"dock_hidden"`
	Dock       settings.Dock     `json:"dock"`
}

// DockState is the dock render contract.
type DockState struct {
	Items  []dock.Item `json:"items"`
	Scales []float64   `json:"scales"`
	Layout dock.Layout `json:"layout"`
	Hidden bool        `json:"hidden"`
}

// Desktop wires the window manager, frames, dock and settings together.
type Desktop struct {
	// ev serializes compound events (resize, reload, settings, launchpad
	// and dock routing) so each one commits as a unit.
	ev sync.Mutex

	mu         sync.Mutex
	registry   *apps.Registry
	breakpoint float64

	mgr       *wm.Manager
	frames    *frame.Frame
	dock      *dock.Dock
	store     *settings.Store
	launchpad *signal.Value[bool]
	logger    *log.Logger
}

// Option configures a Desktop.
type Option func(*Desktop)

// WithLogger sets the diagnostics logger.
func WithLogger(l *log.Logger) Option {
	return func(d *Desktop) {
		if l != nil {
			d.logger = l
		}
	}
}

// New creates a desktop for cfg on a surface of the given size.
func New(cfg *config.Config, width, height float64, opts ...Option) *Desktop {
	d := &Desktop{
		registry:   apps.FromConfig(cfg),
		breakpoint: cfg.MobileBreakpoint,
		store:      settings.NewStore(cfg.DockSettings()),
		launchpad:  signal.New(false),
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(d)
	}

	vp := d.measure(width, height)
	d.mgr = wm.NewManager(cfg.Engine(), vp, wm.WithLogger(d.logger.WithPrefix("wm")))
	d.frames = frame.New(d.mgr, d)
	d.dock = dock.New(d.store, vp, d.registry.DockItems(d.mgr.IsOpen))

	d.mgr.Changes().Subscribe(func(c wm.Change) {
		switch c.Kind {
		case wm.ChangeOpen, wm.ChangeClose:
			d.refreshDockItems()
		}
	})
	return d
}

func (d *Desktop) measure(width, height float64) viewport.Viewport {
	d.mu.Lock()
	bp := d.breakpoint
	d.mu.Unlock()
	return viewport.Measure(width, height, d.store.Snapshot().DockSize, bp)
}

func (d *Desktop) refreshDockItems() {
	d.mu.Lock()
	reg := d.registry
	d.mu.Unlock()
	d.dock.SetItems(reg.DockItems(d.mgr.IsOpen))
}

// Manager exposes the window manager.
func (d *Desktop) Manager() *wm.Manager { return d.mgr }

// Frames exposes the gesture router.
func (d *Desktop) Frames() *frame.Frame { return d.frames }

// Dock exposes the magnification model.
func (d *Desktop) Dock() *dock.Dock { return d.dock }

// Settings exposes the shared settings store.
func (d *Desktop) Settings() *settings.Store { return d.store }

// Launchpad publishes the launchpad visibility.
func (d *Desktop) Launchpad() *signal.Value[bool] { return d.launchpad }

// Registry returns the current application registry.
func (d *Desktop) Registry() *apps.Registry {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.registry
}

// ShowStartup opens every app marked show in the registry.
func (d *Desktop) ShowStartup() {
	for _, a := range d.Registry().All() {
		if a.Show && a.Desktop {
			d.Open(a.ID)
		}
	}
}

// Open opens (or restores and raises) the window of a desktop app.
// Apps that are not registered as desktop apps cannot become windows.
func (d *Desktop) Open(id string) bool {
	a, ok := d.Registry().Get(id)
	if !ok || !a.Desktop {
		d.logger.Debug("open refused", "id", id, "registered", ok)
		return false
	}
	return d.mgr.Open(id, d.Registry().OpenOptions(id))
}

// Close removes the window for id.
func (d *Desktop) Close(id string) bool { return d.mgr.Close(id) }

// Focus raises the window for id.
func (d *Desktop) Focus(id string) bool { return d.mgr.Focus(id) }

// SetMin minimizes the window for id.
func (d *Desktop) SetMin(id string) bool { return d.mgr.SetMinimized(id) }

// SetMax toggles maximize, or forces target when non-nil.
func (d *Desktop) SetMax(id string, target *bool) bool { return d.mgr.SetMaximized(id, target) }

// DragStop commits a title-bar drag.
func (d *Desktop) DragStop(id string, x, y float64) bool { return d.mgr.DragStop(id, x, y) }

// ResizeStop commits a resize.
func (d *Desktop) ResizeStop(id string, r geometry.Rect) bool { return d.mgr.ResizeStop(id, r) }

// ToggleLaunchpad shows or hides the launchpad.
func (d *Desktop) ToggleLaunchpad(target bool) bool {
	d.ev.Lock()
	defer d.ev.Unlock()
	return d.setLaunchpadLocked(target)
}

// FlipLaunchpad toggles the launchpad and reports the new visibility.
func (d *Desktop) FlipLaunchpad() bool {
	d.ev.Lock()
	defer d.ev.Unlock()
	target := !d.launchpad.Get()
	d.setLaunchpadLocked(target)
	return target
}

func (d *Desktop) setLaunchpadLocked(target bool) bool {
	if d.launchpad.Get() == target {
		return false
	}
	d.launchpad.Set(target)
	d.logger.Debug("launchpad", "visible", target)
	return true
}

// ActivateDock routes a dock click. The launchpad item toggles the
// launchpad; anything else closes it first, then opens a window or hands
// back a link.
func (d *Desktop) ActivateDock(id string) (DockResult, bool) {
	d.ev.Lock()
	defer d.ev.Unlock()

	a, ok := d.Registry().Get(id)
	if !ok {
		return DockResult{Action: DockNone, ID: id}, false
	}
	if id == apps.LaunchpadID {
		changed := d.setLaunchpadLocked(!d.launchpad.Get())
		return DockResult{Action: DockLaunchpad, ID: id, Changed: changed}, true
	}

	d.setLaunchpadLocked(false)
	switch {
	case a.Desktop:
		return DockResult{Action: DockWindow, ID: id, Changed: d.Open(id)}, true
	case a.Link != "":
		return DockResult{Action: DockLink, ID: id, Link: a.Link}, true
	default:
		return DockResult{Action: DockNone, ID: id}, true
	}
}

// Activate handles a title-bar control.
func (d *Desktop) Activate(a controls.Activate) bool {
	return d.frames.Activate(a)
}

// Pointer forwards the dock pointer position; nil means the pointer left.
func (d *Desktop) Pointer(x *float64) {
	d.dock.Pointer(x)
}

// Resize applies a new surface size.
func (d *Desktop) Resize(width, height float64) viewport.Viewport {
	d.ev.Lock()
	defer d.ev.Unlock()
	return d.resizeLocked(width, height)
}

func (d *Desktop) resizeLocked(width, height float64) viewport.Viewport {
	vp := d.measure(width, height)
	d.mgr.SetViewport(vp)
	d.dock.SetViewport(vp)
	return vp
}

// SetDockSettings updates the shared dock settings. A new dock size
// changes the dock allowance, so windows are re-clamped.
func (d *Desktop) SetDockSettings(s settings.Dock) error {
	d.ev.Lock()
	defer d.ev.Unlock()

	if err := d.store.Update(s); err != nil {
		return err
	}
	cur := d.mgr.Viewport()
	d.resizeLocked(cur.Width, cur.Height)
	return nil
}

// Reload swaps in a new registry and dock settings. Open windows are kept;
// engine margins apply from the next start.
func (d *Desktop) Reload(cfg *config.Config) error {
	d.ev.Lock()
	defer d.ev.Unlock()

	if err := d.store.Update(cfg.DockSettings()); err != nil {
		return err
	}
	d.mu.Lock()
	d.registry = apps.FromConfig(cfg)
	d.breakpoint = cfg.MobileBreakpoint
	d.mu.Unlock()

	cur := d.mgr.Viewport()
	d.resizeLocked(cur.Width, cur.Height)
	d.refreshDockItems()
	d.logger.Info("config reloaded", "apps", d.Registry().Len())
	return nil
}

// DockHidden reports whether the dock is lowered behind the windows, which
// happens while the frontmost window is maximized.
func (d *Desktop) DockHidden() bool {
	id := d.mgr.Focused()
	if id == "" {
		return false
	}
	w, ok := d.mgr.Window(id)
	return ok && w.State == wm.StateMaximized
}

// DockState returns the dock render contract.
func (d *Desktop) DockState() DockState {
	return DockState{
		Items:  d.dock.Items(),
		Scales: d.dock.Scales().Get(),
		Layout: d.dock.Layout(),
		Hidden: d.DockHidden(),
	}
}

// Status summarizes the desktop.
func (d *Desktop) Status() Status {
	ws := d.mgr.Windows()
	visible := 0
	for _, w := range ws {
		if w.Visible() {
			visible++
		}
	}
	return Status{
		Viewport:   d.mgr.Viewport(),
		Windows:    len(ws),
		Visible:    visible,
		Focused:    d.mgr.Focused(),
		Launchpad:  d.launchpad.Get(),
		DockHidden: d.DockHidden(),
		Dock:       d.store.Snapshot(),
	}
}
