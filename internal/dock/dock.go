// Package dock computes the magnified icon sizes of the application dock.
//
// Item centers come from the base (unmagnified) row so that magnifying one
// icon never shifts the distance measurements of its neighbours.
package dock

import (
	"math"
	"sync"

	"github.com/1broseidon/deskwm/internal/settings"
	"github.com/1broseidon/deskwm/internal/signal"
	"github.com/1broseidon/deskwm/internal/viewport"
)

const (
	ItemSpacing = 8
	Padding     = 8
)

// Item is the dock view of one registered application.
type Item struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Icon    string `json:"icon,omitempty"`
	Desktop bool   `json:"desktop"`
	Link    string `json:"link,omitempty"`
	IsOpen  bool   `json:"is_open"`
}

// Layout is the base geometry of the dock row.
type Layout struct {
	Left    float64   `json:"left"`
	Width   float64   `json:"width"`
	Centers []float64 `json:"centers"`
}

// ComputeLayout places n icons of the settings' base size in a row centered
// in the viewport.
func ComputeLayout(n int, vp viewport.Viewport, s settings.Dock) Layout {
	if n <= 0 {
		return Layout{Left: vp.Width / 2}
	}
	size := s.DockSize
	width := float64(n)*size + float64(n-1)*ItemSpacing + 2*Padding
	left := (vp.Width - width) / 2

	centers := make([]float64, n)
	for i := range centers {
		centers[i] = left + Padding + float64(i)*(size+ItemSpacing) + size/2
	}
	return Layout{Left: left, Width: width, Centers: centers}
}

// Scale maps a horizontal pointer distance to an icon size. It is
// DockSize*DockMag at distance 0, falls off along a raised cosine and
// saturates at DockSize once the distance reaches the influence radius.
func Scale(distance float64, s settings.Dock) float64 {
	base := s.DockSize
	radius := s.Radius()
	d := math.Abs(distance)
	if math.IsNaN(d) || radius <= 0 || d >= radius || s.DockMag <= 1 {
		return base
	}
	falloff := (1 + math.Cos(math.Pi*d/radius)) / 2
	return base + base*(s.DockMag-1)*falloff
}

// Scales computes every icon size for the given pointer position. A nil
// pointer, or the Mobile policy, yields base sizes.
func Scales(l Layout, pointerX *float64, vp viewport.Viewport, s settings.Dock) []float64 {
	out := make([]float64, len(l.Centers))
	for i, c := range l.Centers {
		if pointerX == nil || vp.IsMobile() {
			out[i] = s.DockSize
			continue
		}
		out[i] = Scale(*pointerX-c, s)
	}
	return out
}

// Dock tracks the pointer over the dock and publishes icon sizes.
type Dock struct {
	mu       sync.Mutex
	store    *settings.Store
	vp       viewport.Viewport
	items    []Item
	pointerX *float64
	scales   *signal.Value[[]float64]
}

// New creates a dock over items. The settings store is read on every
// recomputation, never written.
func New(store *settings.Store, vp viewport.Viewport, items []Item) *Dock {
	d := &Dock{
		store: store,
		vp:    vp,
		items: append([]Item(nil), items...),
	}
	d.scales = signal.New(d.computeLocked())
	return d
}

// Scales is the published icon size sequence, index-aligned with Items.
func (d *Dock) Scales() *signal.Value[[]float64] {
	return d.scales
}

// Pointer records the pointer position. nil means the pointer left the
// dock; sizes snap back to base in a single update.
func (d *Dock) Pointer(x *float64) {
	d.mu.Lock()
	if x != nil {
		v := *x
		x = &v
	}
	d.pointerX = x
	out := d.computeLocked()
	d.mu.Unlock()

	d.scales.Set(out)
}

// SetViewport updates the surface the row is centered in.
func (d *Dock) SetViewport(vp viewport.Viewport) {
	d.mu.Lock()
	d.vp = vp
	out := d.computeLocked()
	d.mu.Unlock()

	d.scales.Set(out)
}

// SetItems replaces the dock contents, e.g. after the open set changed.
func (d *Dock) SetItems(items []Item) {
	d.mu.Lock()
	d.items = append([]Item(nil), items...)
	out := d.computeLocked()
	d.mu.Unlock()

	d.scales.Set(out)
}

// Refresh recomputes sizes after a settings change.
func (d *Dock) Refresh() {
	d.mu.Lock()
	out := d.computeLocked()
	d.mu.Unlock()

	d.scales.Set(out)
}

// Items returns a copy of the current items.
func (d *Dock) Items() []Item {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Item(nil), d.items...)
}

// Layout returns the base layout for the current items and viewport.
func (d *Dock) Layout() Layout {
	d.mu.Lock()
	defer d.mu.Unlock()
	return ComputeLayout(len(d.items), d.vp, d.store.Snapshot())
}

// HitTest returns the index of the icon under x in the base layout, or -1.
func (d *Dock) HitTest(x float64) int {
	l := d.Layout()
	size := d.store.Snapshot().DockSize
	for i, c := range l.Centers {
		if math.Abs(x-c) <= size/2 {
			return i
		}
	}
	return -1
}

func (d *Dock) computeLocked() []float64 {
	s := d.store.Snapshot()
	l := ComputeLayout(len(d.items), d.vp, s)
	return Scales(l, d.pointerX, d.vp, s)
}
