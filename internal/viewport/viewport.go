// Package viewport derives the viewport dimensions and the device class that
// every geometry and dock computation is resolved against.
package viewport

import "fmt"

// DefaultBreakpoint is the surface width below which the layout is Mobile.
const DefaultBreakpoint = 640

const (
	// desktopDockPadding is the vertical chrome around the dock icons on desktop.
	desktopDockPadding = 15
	// mobileDockPadding is the vertical chrome around the dock icons on mobile.
	mobileDockPadding = 12
)

// Policy is the layout variant selected once per event and passed down to
// the constraint engine and the dock.
type Policy int

const (
	// Desktop allows free-floating, draggable and resizable windows.
	Desktop Policy = iota
	// Mobile forces every window full-screen and disables magnification.
	Mobile
)

// String returns the string representation of the policy
func (p Policy) String() string {
	switch p {
	case Desktop:
		return "desktop"
	case Mobile:
		return "mobile"
	default:
		return "unknown"
	}
}

// MarshalText encodes the policy by name.
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a policy name.
func (p *Policy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "desktop":
		*p = Desktop
	case "mobile":
		*p = Mobile
	default:
		return fmt.Errorf("unknown layout policy %q", string(text))
	}
	return nil
}

// Classify maps a surface width to a layout policy.
func Classify(width float64, breakpoint float64) Policy {
	if breakpoint <= 0 {
		breakpoint = DefaultBreakpoint
	}
	if width < breakpoint {
		return Mobile
	}
	return Desktop
}

// Viewport is one measurement of the display surface. It is a value; a new
// one is produced whenever the host surface resizes.
type Viewport struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	DockSize float64 `json:"dock_size"`
	Policy   Policy  `json:"policy"`
}

// Measure builds a Viewport from the latest surface size.
func Measure(width, height, dockSize, breakpoint float64) Viewport {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return Viewport{
		Width:    width,
		Height:   height,
		DockSize: dockSize,
		Policy:   Classify(width, breakpoint),
	}
}

// IsMobile reports whether the Mobile policy applies.
func (v Viewport) IsMobile() bool {
	return v.Policy == Mobile
}

// DockHeight is the height the dock occupies at the bottom of the surface.
func (v Viewport) DockHeight() float64 {
	if v.IsMobile() {
		return v.DockSize + mobileDockPadding
	}
	return v.DockSize + desktopDockPadding
}

// WithDockSize returns a copy of v with a new dock size.
func (v Viewport) WithDockSize(dockSize float64) Viewport {
	v.DockSize = dockSize
	return v
}
