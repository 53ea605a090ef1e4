// Package geometry is the constraint engine that turns a requested window
// rectangle into a boundary-safe one for the current viewport.
//
// All coordinates are viewport pixels with the origin at the top-left corner
// of the surface. Every geometry change a window goes through is routed
// through Engine.Clamp; raw drag/resize output is never stored directly.
package geometry

import (
	"math"

	"github.com/1broseidon/deskwm/internal/viewport"
)

const (
	DefaultWidth     = 640
	DefaultHeight    = 400
	DefaultMinWidth  = 200
	DefaultMinHeight = 150

	DefaultMarginX = 20
	DefaultMarginY = 20

	// DefaultTitleBarHeight is the extra height an aspect-locked window
	// carries on top of its ratio-derived content height.
	DefaultTitleBarHeight = 40
)

// Rect represents a window position and size
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Intersect returns the overlap of r and o (zero-sized if disjoint).
func (r Rect) Intersect(o Rect) Rect {
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.Right(), o.Right())
	y1 := math.Min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Constraints are the per-window size limits.
type Constraints struct {
	MinWidth  float64 `json:"min_width,omitempty"`
	MinHeight float64 `json:"min_height,omitempty"`
	// AspectRatio is width/height of the content area; 0 means unlocked.
	AspectRatio float64 `json:"aspect_ratio,omitempty"`
}

// Locked reports whether the aspect ratio is fixed.
func (c Constraints) Locked() bool {
	return c.AspectRatio > 0
}

func (c Constraints) withDefaults() Constraints {
	if c.MinWidth <= 0 {
		c.MinWidth = DefaultMinWidth
	}
	if c.MinHeight <= 0 {
		c.MinHeight = DefaultMinHeight
	}
	return c
}

// Hints are caller-supplied initial size and offsets for a new window.
// Zero Width/Height mean "use the default size".
type Hints struct {
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
}

// Engine holds the process-wide margins of the safety band.
type Engine struct {
	MarginX        float64
	MarginY        float64
	TitleBarHeight float64
}

// NewEngine returns an engine with the default margins.
func NewEngine() Engine {
	return Engine{
		MarginX:        DefaultMarginX,
		MarginY:        DefaultMarginY,
		TitleBarHeight: DefaultTitleBarHeight,
	}
}

// Clamp computes the boundary-safe rectangle for req.
//
// Mobile or maximized windows fill the viewport. Otherwise the size is
// limited to the viewport (and to the aspect ratio when locked) and the
// position is pulled into the safety band.
func (e Engine) Clamp(req Rect, vp viewport.Viewport, c Constraints, maximized bool) Rect {
	if vp.IsMobile() || maximized {
		return e.FullScreen(vp)
	}
	sized := e.ClampSize(req, vp, c)
	return e.ClampPosition(sized, vp)
}

// FullScreen is the rectangle of a maximized or mobile window. The small
// negative offset hides the top boundary margin.
func (e Engine) FullScreen(vp viewport.Viewport) Rect {
	return Rect{
		X:      0,
		Y:      -e.MarginY,
		Width:  vp.Width,
		Height: vp.Height,
	}
}

// ClampSize applies minimums, the aspect lock and the viewport cap to the
// size of req. The position is left untouched.
func (e Engine) ClampSize(req Rect, vp viewport.Viewport, c Constraints) Rect {
	c = c.withDefaults()
	out := req
	if c.Locked() {
		out.Width, out.Height = e.fitAspect(req.Width, vp, c)
		return out
	}
	out.Width = clampLen(req.Width, c.MinWidth, vp.Width)
	out.Height = clampLen(req.Height, c.MinHeight, vp.Height)
	return out
}

// fitAspect derives height from width for an aspect-locked window. The
// viewport cap is applied last and may push the size under the minimums on
// very small surfaces.
func (e Engine) fitAspect(width float64, vp viewport.Viewport, c Constraints) (float64, float64) {
	r := c.AspectRatio
	extra := e.TitleBarHeight

	w := width
	if math.IsNaN(w) || w < c.MinWidth {
		w = c.MinWidth
	}
	h := w/r + extra
	if h < c.MinHeight {
		h = c.MinHeight
		w = (h - extra) * r
	}
	if w > vp.Width {
		w = vp.Width
		h = w/r + extra
	}
	if h > vp.Height && vp.Height > extra {
		h = vp.Height
		w = (h - extra) * r
	}
	return w, h
}

// Band is the allowed range for a window's top-left corner.
type Band struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// SafetyBand returns the range that keeps at least MarginX of a window of
// the given width on screen horizontally, keeps the title bar below the top
// edge, and stops the window from being parked behind the dock.
func (e Engine) SafetyBand(width float64, vp viewport.Viewport) Band {
	b := Band{
		MinX: e.MarginX - width,
		MaxX: vp.Width - e.MarginX,
		MinY: 0,
		MaxY: vp.Height - e.MarginY - (vp.DockHeight() + e.MarginY),
	}
	if b.MinX > b.MaxX {
		b.MinX = b.MaxX
	}
	// The top edge must stay reachable even when the surface is shorter
	// than the dock allowance.
	if b.MaxY < b.MinY {
		b.MaxY = b.MinY
	}
	return b
}

// ClampPosition pulls r's corner into the safety band.
func (e Engine) ClampPosition(r Rect, vp viewport.Viewport) Rect {
	b := e.SafetyBand(r.Width, vp)
	r.X = clampPos(r.X, b.MinX, b.MaxX)
	r.Y = clampPos(r.Y, b.MinY, b.MaxY)
	return r
}

// Initial computes the restored geometry of a newly opened window: the
// default (or hinted) size, centered in the area above the dock, shifted by
// the hinted offsets.
func (e Engine) Initial(vp viewport.Viewport, c Constraints, h Hints) Rect {
	width := h.Width
	if width <= 0 {
		width = DefaultWidth
	}
	height := h.Height
	if height <= 0 {
		height = DefaultHeight
	}
	if vp.IsMobile() {
		width, height = vp.Width, vp.Height
	}

	sized := e.ClampSize(Rect{Width: width, Height: height}, vp, c)
	sized.X = (vp.Width-sized.Width)/2 + h.X
	sized.Y = (vp.Height-sized.Height-vp.DockSize-e.MarginY)/2 + h.Y
	return e.ClampPosition(sized, vp)
}

func clampLen(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	if v < 0 {
		v = 0
	}
	return v
}

func clampPos(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(hi, math.Max(lo, v))
}
