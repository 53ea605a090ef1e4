package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/runtimepath"
	"github.com/1broseidon/deskwm/internal/viewport"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientWithSocket(socketPath)
}

// NewClientWithSocket creates a client for an explicit socket path.
func NewClientWithSocket(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// call sends command with an optional payload and decodes the response data
// into out when out is non-nil.
func (c *Client) call(cmd CommandType, payload interface{}, out interface{}) error {
	req := &Request{Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", cmd, err)
		}
		req.Payload = data
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s data: %w", cmd, err)
	}
	return nil
}

func (c *Client) changed(cmd CommandType, payload interface{}) (bool, error) {
	var res ResultData
	if err := c.call(cmd, payload, &res); err != nil {
		return false, err
	}
	return res.Changed, nil
}

// Reload sends a RELOAD command to the daemon
func (c *Client) Reload() error {
	return c.call(CommandReload, nil, nil)
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	var status StatusData
	if err := c.call(CommandGetStatus, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ListWindows retrieves the rendered state of every window, back to front.
func (c *Client) ListWindows() (*WindowsData, error) {
	var data WindowsData
	if err := c.call(CommandListWindows, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Open opens or raises the window for a desktop app.
func (c *Client) Open(id string) (bool, error) {
	return c.changed(CommandOpen, WindowPayload{ID: id})
}

// Close closes a window.
func (c *Client) Close(id string) (bool, error) {
	return c.changed(CommandClose, WindowPayload{ID: id})
}

// Focus raises a window.
func (c *Client) Focus(id string) (bool, error) {
	return c.changed(CommandFocus, WindowPayload{ID: id})
}

// Minimize minimizes a window.
func (c *Client) Minimize(id string) (bool, error) {
	return c.changed(CommandMinimize, WindowPayload{ID: id})
}

// Maximize toggles maximize, or forces target when non-nil.
func (c *Client) Maximize(id string, target *bool) (bool, error) {
	return c.changed(CommandMaximize, MaximizePayload{ID: id, Target: target})
}

// DragStop commits a title-bar drag to x, y.
func (c *Client) DragStop(id string, x, y float64) (bool, error) {
	return c.changed(CommandDragStop, DragStopPayload{ID: id, X: x, Y: y})
}

// ResizeStop commits a resize to the given bounds.
func (c *Client) ResizeStop(id string, x, y, width, height float64) (bool, error) {
	return c.changed(CommandResizeStop, ResizeStopPayload{ID: id, X: x, Y: y, Width: width, Height: height})
}

// DoubleClick sends a title-bar double click.
func (c *Client) DoubleClick(id string) (bool, error) {
	return c.changed(CommandDoubleClick, WindowPayload{ID: id})
}

// Activate activates a title-bar control.
func (c *Client) Activate(id, control, modality string) (bool, error) {
	return c.changed(CommandActivate, ActivatePayload{ID: id, Control: control, Modality: modality})
}

// SetViewport tells the daemon the surface size changed.
func (c *Client) SetViewport(width, height float64) (*viewport.Viewport, error) {
	var vp viewport.Viewport
	if err := c.call(CommandSetViewport, ViewportPayload{Width: width, Height: height}, &vp); err != nil {
		return nil, err
	}
	return &vp, nil
}

// Pointer sends the dock pointer position and returns the new scales.
func (c *Client) Pointer(x *float64) ([]float64, error) {
	var scales []float64
	if err := c.call(CommandPointer, PointerPayload{X: x}, &scales); err != nil {
		return nil, err
	}
	return scales, nil
}

// GetDock retrieves the dock render state.
func (c *Client) GetDock() (*desktop.DockState, error) {
	var st desktop.DockState
	if err := c.call(CommandGetDock, nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// SetDock updates the dock settings.
func (c *Client) SetDock(size, mag, influence float64) (*desktop.DockState, error) {
	var st desktop.DockState
	payload := DockPayload{DockSize: size, DockMag: mag, Influence: influence}
	if err := c.call(CommandSetDock, payload, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// ActivateDock clicks a dock item.
func (c *Client) ActivateDock(id string) (*desktop.DockResult, error) {
	var res desktop.DockResult
	if err := c.call(CommandActivateDock, WindowPayload{ID: id}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Launchpad shows or hides the launchpad; nil toggles.
func (c *Client) Launchpad(target *bool) (*LaunchpadData, error) {
	var data LaunchpadData
	if err := c.call(CommandLaunchpad, LaunchpadPayload{Target: target}, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
