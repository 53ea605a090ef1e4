// Package controls maps the three title-bar buttons to window state
// transitions.
package controls

import (
	"fmt"
	"strings"

	"github.com/1broseidon/deskwm/internal/viewport"
	"github.com/1broseidon/deskwm/internal/wm"
)

// Control identifies a title-bar button.
type Control int

const (
	Close Control = iota
	Minimize
	Maximize
)

// String returns the string representation of the control
func (c Control) String() string {
	switch c {
	case Close:
		return "close"
	case Minimize:
		return "minimize"
	case Maximize:
		return "maximize"
	default:
		return "unknown"
	}
}

// ParseControl parses a control name.
func ParseControl(s string) (Control, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "close":
		return Close, nil
	case "minimize", "min":
		return Minimize, nil
	case "maximize", "max":
		return Maximize, nil
	default:
		return 0, fmt.Errorf("unknown control %q", s)
	}
}

// Modality is the input device an activation came from. Mouse clicks and
// touch ends are handled identically.
type Modality int

const (
	Mouse Modality = iota
	Touch
)

// String returns the string representation of the modality
func (m Modality) String() string {
	if m == Touch {
		return "touch"
	}
	return "mouse"
}

// ParseModality parses a modality name. Empty means Mouse.
func ParseModality(s string) (Modality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mouse", "click":
		return Mouse, nil
	case "touch":
		return Touch, nil
	default:
		return 0, fmt.Errorf("unknown modality %q", s)
	}
}

// Activate is a single button activation.
type Activate struct {
	Window   string
	Control  Control
	Modality Modality
}

// Host receives the state-machine calls an activation produces.
type Host interface {
	Focus(id string) bool
	Close(id string) bool
	SetMin(id string) bool
	SetMax(id string, target *bool) bool
}

// Glyph is the icon drawn on the maximize button.
type Glyph string

const (
	GlyphNone      Glyph = ""
	GlyphEnterFull Glyph = "enter-full"
	GlyphExitFull  Glyph = "exit-full"
)

// Button is the render state of one control.
type Button struct {
	Control Control `json:"-"`
	Name    string  `json:"name"`
	Enabled bool    `json:"enabled"`
	Glyph   Glyph   `json:"glyph,omitempty"`
}

// Enabled reports whether c does anything for w. Minimize is inert while
// maximized and maximize is inert for aspect-locked windows.
func Enabled(c Control, w wm.Window) bool {
	switch c {
	case Close:
		return true
	case Minimize:
		return w.State == wm.StateNormal
	case Maximize:
		return !w.AspectLocked()
	default:
		return false
	}
}

// GlyphFor returns the maximize button icon for w.
func GlyphFor(w wm.Window) Glyph {
	if w.AspectLocked() {
		return GlyphNone
	}
	if w.State == wm.StateMaximized {
		return GlyphExitFull
	}
	return GlyphEnterFull
}

// Buttons returns the three controls in title-bar order.
func Buttons(w wm.Window) []Button {
	out := make([]Button, 0, 3)
	for _, c := range []Control{Close, Minimize, Maximize} {
		b := Button{Control: c, Name: c.String(), Enabled: Enabled(c, w)}
		if c == Maximize {
			b.Glyph = GlyphFor(w)
		}
		out = append(out, b)
	}
	return out
}

// Dispatch runs the state-machine calls for a. Every control except close
// brings the window to the front exactly once before acting; close
// removes the window without focusing it. Disabled controls only focus.
// It reports whether the action itself changed anything.
func Dispatch(h Host, w wm.Window, a Activate, vp viewport.Viewport) bool {
	if a.Control == Close {
		return h.Close(w.ID)
	}
	h.Focus(w.ID)
	if !Enabled(a.Control, w) {
		return false
	}
	switch a.Control {
	case Minimize:
		return h.SetMin(w.ID)
	case Maximize:
		if vp.IsMobile() && w.State == wm.StateMaximized {
			return false
		}
		return h.SetMax(w.ID, nil)
	}
	return false
}
