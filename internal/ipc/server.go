package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/controls"
	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/runtimepath"
	"github.com/1broseidon/deskwm/internal/settings"
)

// ReloadFunc loads a fresh configuration for RELOAD.
type ReloadFunc func() (*config.Config, error)

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	desk         *desktop.Desktop
	reload       ReloadFunc
	sessionID    string
	surface      string
	startTime    time.Time
	logger       *log.Logger
	shuttingDown bool
	shutdownMu   sync.Mutex
	wg           sync.WaitGroup
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithSocketPath overrides the runtime socket path.
func WithSocketPath(path string) ServerOption {
	return func(s *Server) { s.socketPath = path }
}

// WithReload sets the config loader used by RELOAD.
func WithReload(fn ReloadFunc) ServerOption {
	return func(s *Server) { s.reload = fn }
}

// WithSession sets the session id and surface name reported by GET_STATUS.
func WithSession(id, surface string) ServerOption {
	return func(s *Server) {
		s.sessionID = id
		s.surface = surface
	}
}

// WithServerLogger sets the diagnostics logger.
func WithServerLogger(l *log.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new IPC server
func NewServer(desk *desktop.Desktop, opts ...ServerOption) (*Server, error) {
	s := &Server{
		desk:      desk,
		reload:    config.Load,
		startTime: time.Now(),
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.socketPath == "" {
		socketPath, err := runtimepath.SocketPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
		}
		s.socketPath = socketPath
	}

	// Remove existing socket if present
	os.Remove(s.socketPath)

	return s, nil
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			s.logger.Warn("IPC accept error", "err", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection serves one request per connection.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("IPC read error", "err", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.Handle(req)

	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal response", "err", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn("failed to send response", "err", err)
	}
}

// Handle processes one request. Connections are served concurrently, but
// every state change is serialized by the window manager.
func (s *Server) Handle(req *Request) *Response {
	s.logger.Debug("IPC request", "command", req.Command)

	switch req.Command {
	case CommandReload:
		return s.handleReload()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandListWindows:
		return ok(WindowsData{Windows: s.desk.Frames().RenderAll()})
	case CommandOpen:
		return s.withWindow(req.Payload, s.desk.Open)
	case CommandClose:
		return s.withWindow(req.Payload, s.desk.Close)
	case CommandFocus:
		return s.withWindow(req.Payload, s.desk.Frames().PointerDown)
	case CommandMinimize:
		return s.withWindow(req.Payload, s.desk.SetMin)
	case CommandDoubleClick:
		return s.withWindow(req.Payload, s.desk.Frames().TitleDoubleClick)
	case CommandMaximize:
		return s.handleMaximize(req.Payload)
	case CommandDragStop:
		return s.handleDragStop(req.Payload)
	case CommandResizeStop:
		return s.handleResizeStop(req.Payload)
	case CommandActivate:
		return s.handleActivate(req.Payload)
	case CommandSetViewport:
		return s.handleSetViewport(req.Payload)
	case CommandPointer:
		return s.handlePointer(req.Payload)
	case CommandGetDock:
		return ok(s.desk.DockState())
	case CommandSetDock:
		return s.handleSetDock(req.Payload)
	case CommandActivateDock:
		return s.handleActivateDock(req.Payload)
	case CommandLaunchpad:
		return s.handleLaunchpad(req.Payload)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func ok(data interface{}) *Response {
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func decode(payload json.RawMessage, out interface{}) error {
	if len(payload) == 0 {
		return fmt.Errorf("payload is required")
	}
	return json.Unmarshal(payload, out)
}

func (s *Server) withWindow(payload json.RawMessage, fn func(id string) bool) *Response {
	var req WindowPayload
	if err := decode(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid window payload: %v", err))
	}
	if strings.TrimSpace(req.ID) == "" {
		return NewErrorResponse("id is required")
	}
	return ok(ResultData{Changed: fn(req.ID)})
}

func (s *Server) handleReload() *Response {
	s.logger.Info("IPC: received RELOAD")

	newCfg, err := s.reload()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}
	if err := s.desk.Reload(newCfg); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to apply config: %v", err))
	}
	return ok(nil)
}

func (s *Server) handleGetStatus() *Response {
	return ok(StatusData{
		SessionID:     s.sessionID,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		DaemonRunning: true,
		Surface:       s.surface,
		Desktop:       s.desk.Status(),
	})
}

func (s *Server) handleMaximize(payload json.RawMessage) *Response {
	var req MaximizePayload
	if err := decode(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid maximize payload: %v", err))
	}
	if req.ID == "" {
		return NewErrorResponse("id is required")
	}
	return ok(ResultData{Changed: s.desk.SetMax(req.ID, req.Target)})
}

func (s *Server) handleDragStop(payload json.RawMessage) *Response {
	var req DragStopPayload
	if err := decode(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid drag payload: %v", err))
	}
	if req.ID == "" {
		return NewErrorResponse("id is required")
	}
	return ok(ResultData{Changed: s.desk.Frames().DragStop(req.ID, req.X, req.Y)})
}

func (s *Server) handleResizeStop(payload json.RawMessage) *Response {
	var req ResizeStopPayload
	if err := decode(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid resize payload: %v", err))
	}
	if req.ID == "" {
		return NewErrorResponse("id is required")
	}
	r := geometry.Rect{X: req.X, Y: req.Y, Width: req.Width, Height: req.Height}
	return ok(ResultData{Changed: s.desk.Frames().ResizeStop(req.ID, r)})
}

func (s *Server) handleActivate(payload json.RawMessage) *Response {
	var req ActivatePayload
	if err := decode(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid activate payload: %v", err))
	}
	if req.ID == "" {
		return NewErrorResponse("id is required")
	}
	ctl, err := controls.ParseControl(req.Control)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	mod, err := controls.ParseModality(req.Modality)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	changed := s.desk.Activate(controls.Activate{Window: req.ID, Control: ctl, Modality: mod})
	return ok(ResultData{Changed: changed})
}

func (s *Server) handleSetViewport(payload json.RawMessage) *Response {
	var req ViewportPayload
	if err := decode(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid viewport payload: %v", err))
	}
	if req.Width <= 0 || req.Height <= 0 {
		return NewErrorResponse("width and height must be > 0")
	}
	return ok(s.desk.Resize(req.Width, req.Height))
}

func (s *Server) handlePointer(payload json.RawMessage) *Response {
	var req PointerPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			return NewErrorResponse(fmt.Sprintf("Invalid pointer payload: %v", err))
		}
	}
	s.desk.Pointer(req.X)
	return ok(s.desk.Dock().Scales().Get())
}

func (s *Server) handleSetDock(payload json.RawMessage) *Response {
	var req DockPayload
	if err := decode(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid dock payload: %v", err))
	}
	d := settings.Dock{DockSize: req.DockSize, DockMag: req.DockMag, Influence: req.Influence}
	if err := s.desk.SetDockSettings(d); err != nil {
		return NewErrorResponse(err.Error())
	}
	return ok(s.desk.DockState())
}

func (s *Server) handleActivateDock(payload json.RawMessage) *Response {
	var req WindowPayload
	if err := decode(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid dock payload: %v", err))
	}
	res, found := s.desk.ActivateDock(req.ID)
	if !found {
		return NewErrorResponse(fmt.Sprintf("Unknown app: %s", req.ID))
	}
	return ok(res)
}

func (s *Server) handleLaunchpad(payload json.RawMessage) *Response {
	var req LaunchpadPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			return NewErrorResponse(fmt.Sprintf("Invalid launchpad payload: %v", err))
		}
	}
	target := !s.desk.Launchpad().Get()
	if req.Target != nil {
		target = *req.Target
	}
	changed := s.desk.ToggleLaunchpad(target)
	return ok(LaunchpadData{Visible: s.desk.Launchpad().Get(), Changed: changed})
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	os.Remove(s.socketPath)
}
