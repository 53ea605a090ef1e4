package mcp

import (
	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/frame"
	"github.com/1broseidon/deskwm/internal/viewport"
)

// EmptyInput is the input for tools that take no arguments.
type EmptyInput struct{}

// WindowInput targets one window by application id.
type WindowInput struct {
	ID string `json:"id" jsonschema:"required,Application id of the window (e.g. calculator, notes)"`
}

// ChangedOutput reports whether a tool changed desktop state.
type ChangedOutput struct {
	ID      string `json:"id,omitempty"`
	Changed bool   `json:"changed"`
}

// StatusOutput is the output for the get_status tool.
type StatusOutput struct {
	SessionID     string         `json:"session_id"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	Surface       string         `json:"surface"`
	Desktop       desktop.Status `json:"desktop"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []frame.State `json:"windows"`
}

// MaximizeInput is the input for the maximize_window tool.
type MaximizeInput struct {
	ID     string `json:"id" jsonschema:"required,Application id of the window"`
	Target *bool  `json:"target,omitempty" jsonschema:"Force maximized (true) or restored (false). Omit to toggle."`
}

// MoveInput is the input for the move_window tool.
type MoveInput struct {
	ID string  `json:"id" jsonschema:"required,Application id of the window"`
	X  float64 `json:"x" jsonschema:"required,New left edge in surface pixels. Clamped so part of the title bar stays reachable."`
	Y  float64 `json:"y" jsonschema:"required,New top edge in surface pixels. Clamped above the dock."`
}

// ResizeInput is the input for the resize_window tool.
type ResizeInput struct {
	ID     string  `json:"id" jsonschema:"required,Application id of the window"`
	X      float64 `json:"x" jsonschema:"required,Left edge after the resize"`
	Y      float64 `json:"y" jsonschema:"required,Top edge after the resize"`
	Width  float64 `json:"width" jsonschema:"required,Width after the resize. Raised to the window minimum."`
	Height float64 `json:"height" jsonschema:"required,Height after the resize. Aspect-locked windows derive it from the width."`
}

// ActivateInput is the input for the press_control tool.
type ActivateInput struct {
	ID       string `json:"id" jsonschema:"required,Application id of the window"`
	Control  string `json:"control" jsonschema:"required,Title-bar control: close, minimize or maximize"`
	Modality string `json:"modality,omitempty" jsonschema:"mouse (default) or touch"`
}

// ViewportInput is the input for the set_viewport tool.
type ViewportInput struct {
	Width  float64 `json:"width" jsonschema:"required,Surface width in pixels"`
	Height float64 `json:"height" jsonschema:"required,Surface height in pixels"`
}

// ViewportOutput is the output for the set_viewport tool.
type ViewportOutput struct {
	Viewport viewport.Viewport `json:"viewport"`
}

// DockOutput is the output for the dock tools.
type DockOutput struct {
	Dock desktop.DockState `json:"dock"`
}

// SetDockInput is the input for the set_dock tool.
type SetDockInput struct {
	DockSize  float64 `json:"dock_size" jsonschema:"required,Base icon size in pixels (> 0)"`
	DockMag   float64 `json:"dock_mag" jsonschema:"required,Peak magnification multiplier (>= 1)"`
	Influence float64 `json:"influence,omitempty" jsonschema:"Influence radius as a multiple of dock_size. Omit to keep the current value."`
}

// PointerInput is the input for the dock_pointer tool.
type PointerInput struct {
	X *float64 `json:"x,omitempty" jsonschema:"Pointer x over the dock. Omit when the pointer leaves the dock."`
}

// PointerOutput is the output for the dock_pointer tool.
type PointerOutput struct {
	Scales []float64 `json:"scales"`
}

// DockClickOutput is the output for the click_dock tool.
type DockClickOutput struct {
	Result desktop.DockResult `json:"result"`
}

// LaunchpadInput is the input for the launchpad tool.
type LaunchpadInput struct {
	Visible *bool `json:"visible,omitempty" jsonschema:"Show (true) or hide (false) the launchpad. Omit to toggle."`
}

// LaunchpadOutput is the output for the launchpad tool.
type LaunchpadOutput struct {
	Visible bool `json:"visible"`
	Changed bool `json:"changed"`
}

// ReloadOutput is the output for the reload_config tool.
type ReloadOutput struct {
	Reloaded bool `json:"reloaded"`
}
