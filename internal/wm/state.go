package wm

import (
	"fmt"

	"github.com/1broseidon/deskwm/internal/geometry"
)

// State represents the presentation state of a window.
type State int

const (
	// StateNormal is a free-floating window at its restored geometry.
	StateNormal State = iota
	// StateMinimized is hidden but still present in the window set.
	StateMinimized
	// StateMaximized fills the viewport; restored geometry is kept for later.
	StateMaximized
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateMinimized:
		return "minimized"
	case StateMaximized:
		return "maximized"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "normal":
		*s = StateNormal
	case "minimized":
		*s = StateMinimized
	case "maximized":
		*s = StateMaximized
	default:
		return fmt.Errorf("unknown window state %q", string(text))
	}
	return nil
}

// Window is one simulated application instance.
type Window struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	// Restored is the Normal-state bounds, kept while maximized or minimized.
	Restored    geometry.Rect        `json:"restored"`
	Constraints geometry.Constraints `json:"constraints"`
	Z           int                  `json:"z"`
	State       State                `json:"state"`
}

// AspectLocked reports whether the window keeps a fixed aspect ratio.
// Maximize is unavailable for such windows.
func (w Window) AspectLocked() bool {
	return w.Constraints.Locked()
}

// Visible reports whether the window is drawn.
func (w Window) Visible() bool {
	return w.State != StateMinimized
}

// OpenOptions describe a window to create on first open.
type OpenOptions struct {
	Title       string
	Hints       geometry.Hints
	Constraints geometry.Constraints
}

// ChangeKind identifies what a state-machine transition did.
type ChangeKind string

const (
	ChangeOpen     ChangeKind = "OPEN"
	ChangeRestore  ChangeKind = "RESTORE"
	ChangeFocus    ChangeKind = "FOCUS"
	ChangeMinimize ChangeKind = "MINIMIZE"
	ChangeMaximize ChangeKind = "MAXIMIZE"
	ChangeUnmax    ChangeKind = "UNMAXIMIZE"
	ChangeMove     ChangeKind = "MOVE"
	ChangeResize   ChangeKind = "RESIZE"
	ChangeClose    ChangeKind = "CLOSE"
	ChangeViewport ChangeKind = "VIEWPORT"
)

// Change is published after every committed transition.
type Change struct {
	Kind ChangeKind
	// ID is empty for viewport changes.
	ID string
	// Window is the record after the change; zero for ChangeClose.
	Window Window
}
