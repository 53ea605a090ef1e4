package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/frame"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload       CommandType = "RELOAD"
	CommandGetStatus    CommandType = "GET_STATUS"
	CommandListWindows  CommandType = "LIST_WINDOWS"
	CommandOpen         CommandType = "OPEN"
	CommandClose        CommandType = "CLOSE"
	CommandFocus        CommandType = "FOCUS"
	CommandMinimize     CommandType = "MINIMIZE"
	CommandMaximize     CommandType = "MAXIMIZE"
	CommandDragStop     CommandType = "DRAG_STOP"
	CommandResizeStop   CommandType = "RESIZE_STOP"
	CommandDoubleClick  CommandType = "DOUBLE_CLICK"
	CommandActivate     CommandType = "ACTIVATE"
	CommandSetViewport  CommandType = "SET_VIEWPORT"
	CommandPointer      CommandType = "POINTER"
	CommandGetDock      CommandType = "GET_DOCK"
	CommandSetDock      CommandType = "SET_DOCK"
	CommandActivateDock CommandType = "ACTIVATE_DOCK"
	CommandLaunchpad    CommandType = "LAUNCHPAD"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	SessionID     string         `json:"session_id"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	DaemonRunning bool           `json:"daemon_running"`
	Surface       string         `json:"surface"`
	Desktop       desktop.Status `json:"desktop"`
}

// WindowsData is returned by LIST_WINDOWS, back to front.
type WindowsData struct {
	Windows []frame.State `json:"windows"`
}

// ResultData reports whether a state-changing command did anything.
// Commands on unknown or ineligible windows succeed with Changed=false.
type ResultData struct {
	Changed bool `json:"changed"`
}

// WindowPayload targets a single window.
type WindowPayload struct {
	ID string `json:"id"`
}

// MaximizePayload toggles maximize, or forces Target when set.
type MaximizePayload struct {
	ID     string `json:"id"`
	Target *bool  `json:"target,omitempty"`
}

// DragStopPayload is the final position of a title-bar drag.
type DragStopPayload struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// ResizeStopPayload is the final bounds of a resize.
type ResizeStopPayload struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ActivatePayload is a title-bar control activation.
type ActivatePayload struct {
	ID       string `json:"id"`
	Control  string `json:"control"`
	Modality string `json:"modality,omitempty"`
}

// ViewportPayload is a new surface size.
type ViewportPayload struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PointerPayload is the dock pointer position; a null X means the pointer
// left the dock.
type PointerPayload struct {
	X *float64 `json:"x"`
}

// DockPayload updates the shared dock settings. Influence 0 keeps the
// current radius multiplier.
type DockPayload struct {
	DockSize  float64 `json:"dock_size"`
	DockMag   float64 `json:"dock_mag"`
	Influence float64 `json:"influence,omitempty"`
}

// LaunchpadPayload shows or hides the launchpad; a nil Target toggles it.
type LaunchpadPayload struct {
	Target *bool `json:"target,omitempty"`
}

// LaunchpadData reports the launchpad visibility after LAUNCHPAD.
type LaunchpadData struct {
	Visible bool `json:"visible"`
	Changed bool `json:"changed"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
