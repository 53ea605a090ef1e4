// Package frame composes a window record, the constraint engine and the
// title-bar controls into the draggable, resizable frame handed to the
// render layer.
package frame

import (
	"github.com/1broseidon/deskwm/internal/controls"
	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/viewport"
	"github.com/1broseidon/deskwm/internal/wm"
)

// Host is the orchestrator the frame forwards gestures to.
type Host interface {
	controls.Host
	DragStop(id string, x, y float64) bool
	ResizeStop(id string, r geometry.Rect) bool
}

// Source provides the committed window state. *wm.Manager satisfies it.
type Source interface {
	Window(id string) (wm.Window, bool)
	Windows() []wm.Window
	Viewport() viewport.Viewport
	Engine() geometry.Engine
}

// State is the render contract of one window.
type State struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Bounds   geometry.Rect     `json:"bounds"`
	Z        int               `json:"z"`
	State    wm.State          `json:"state"`
	Visible  bool              `json:"visible"`
	Controls []controls.Button `json:"controls"`

	// ContentWidth follows the frame width; ContentHeight excludes the
	// title bar.
	ContentWidth  float64 `json:"content_width"`
	ContentHeight float64 `json:"content_height"`

	Draggable bool `json:"draggable"`
	Resizable bool `json:"resizable"`
	Mobile    bool `json:"mobile"`
}

// Frame routes pointer gestures for every window.
type Frame struct {
	src  Source
	host Host
}

// New creates a frame router.
func New(src Source, host Host) *Frame {
	return &Frame{src: src, host: host}
}

// PointerDown focuses the window under the pointer.
func (f *Frame) PointerDown(id string) bool {
	if _, ok := f.src.Window(id); !ok {
		return false
	}
	return f.host.Focus(id)
}

// DragStop commits the final drag position of the title bar.
func (f *Frame) DragStop(id string, x, y float64) bool {
	w, ok := f.src.Window(id)
	if !ok || !f.movable(w) {
		return false
	}
	return f.host.DragStop(id, x, y)
}

// ResizeStop commits the final bounds of a corner or edge resize.
func (f *Frame) ResizeStop(id string, r geometry.Rect) bool {
	w, ok := f.src.Window(id)
	if !ok || !f.movable(w) {
		return false
	}
	return f.host.ResizeStop(id, r)
}

// TitleDoubleClick toggles maximize. It is ignored for aspect-locked
// windows and under the Mobile policy.
func (f *Frame) TitleDoubleClick(id string) bool {
	w, ok := f.src.Window(id)
	if !ok || w.AspectLocked() || f.src.Viewport().IsMobile() {
		return false
	}
	return f.host.SetMax(id, nil)
}

// Activate handles a traffic-light button.
func (f *Frame) Activate(a controls.Activate) bool {
	w, ok := f.src.Window(a.Window)
	if !ok {
		return false
	}
	return controls.Dispatch(f.host, w, a, f.src.Viewport())
}

func (f *Frame) movable(w wm.Window) bool {
	return w.State == wm.StateNormal && !f.src.Viewport().IsMobile()
}

// Render returns the render contract for id.
func (f *Frame) Render(id string) (State, bool) {
	w, ok := f.src.Window(id)
	if !ok {
		return State{}, false
	}
	return f.render(w, f.src.Viewport()), true
}

// RenderAll returns every window back to front, minimized ones included
// with Visible=false.
func (f *Frame) RenderAll() []State {
	vp := f.src.Viewport()
	ws := f.src.Windows()
	out := make([]State, 0, len(ws))
	for _, w := range ws {
		out = append(out, f.render(w, vp))
	}
	return out
}

func (f *Frame) render(w wm.Window, vp viewport.Viewport) State {
	eng := f.src.Engine()
	b := eng.Clamp(w.Restored, vp, w.Constraints, w.State == wm.StateMaximized)

	movable := w.State == wm.StateNormal && !vp.IsMobile()
	content := b.Height - eng.TitleBarHeight
	if content < 0 {
		content = 0
	}
	return State{
		ID:            w.ID,
		Title:         w.Title,
		Bounds:        b,
		Z:             w.Z,
		State:         w.State,
		Visible:       w.Visible(),
		Controls:      controls.Buttons(w),
		ContentWidth:  b.Width,
		ContentHeight: content,
		Draggable:     movable,
		Resizable:     movable,
		Mobile:        vp.IsMobile(),
	}
}
