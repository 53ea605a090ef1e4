package mcp

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/ipc"
	"github.com/1broseidon/deskwm/internal/viewport"
)

const (
	ServerName    = "deskwm"
	ServerVersion = "0.1.0"
)

// Daemon is the subset of the IPC client the tools drive. *ipc.Client
// satisfies it.
type Daemon interface {
	GetStatus() (*ipc.StatusData, error)
	ListWindows() (*ipc.WindowsData, error)
	Open(id string) (bool, error)
	Close(id string) (bool, error)
	Focus(id string) (bool, error)
	Minimize(id string) (bool, error)
	Maximize(id string, target *bool) (bool, error)
	DragStop(id string, x, y float64) (bool, error)
	ResizeStop(id string, x, y, width, height float64) (bool, error)
	Activate(id, control, modality string) (bool, error)
	SetViewport(width, height float64) (*viewport.Viewport, error)
	Pointer(x *float64) ([]float64, error)
	GetDock() (*desktop.DockState, error)
	SetDock(size, mag, influence float64) (*desktop.DockState, error)
	ActivateDock(id string) (*desktop.DockResult, error)
	Launchpad(target *bool) (*ipc.LaunchpadData, error)
	Reload() error
}

// Server is the MCP server exposing the desktop to agents.
type Server struct {
	mcpServer *mcpsdk.Server
	daemon    Daemon
	logger    *log.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the diagnostics logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new MCP server backed by the running daemon.
func NewServer(daemon Daemon, opts ...Option) *Server {
	s := &Server{
		daemon: daemon,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Report the desktop status: viewport size and policy (desktop or mobile), window counts, the focused window, launchpad visibility and dock settings.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List every open window back to front with its rendered bounds, state (normal, minimized, maximized) and which title-bar controls are enabled.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "open_window",
		Description: "Open the window for a desktop application, or restore and raise it if it is already open. Applications that only link elsewhere cannot be opened as windows.",
	}, s.handleOpenWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Close a window. Closing never focuses another window.",
	}, s.handleCloseWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Raise a window to the front.",
	}, s.handleFocusWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "minimize_window",
		Description: "Minimize a normal window. Maximized and minimized windows are left unchanged.",
	}, s.handleMinimizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "maximize_window",
		Description: "Toggle maximize on a window, or force it with target. Aspect-locked windows cannot be maximized.",
	}, s.handleMaximizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_window",
		Description: "Move a normal window as if its title bar was dragged to x, y. The position is clamped to the surface.",
	}, s.handleMoveWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "resize_window",
		Description: "Resize a normal window to the given bounds. Minimum sizes and aspect locks are enforced.",
	}, s.handleResizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "press_control",
		Description: "Press a title-bar control (close, minimize, maximize) on a window, with mouse or touch.",
	}, s.handlePressControl)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_viewport",
		Description: "Tell the desktop the surface was resized. Windows are re-clamped and the mobile policy applies below the breakpoint.",
	}, s.handleSetViewport)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_dock",
		Description: "Return the dock items, their current scales and layout, and whether the dock is hidden.",
	}, s.handleGetDock)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_dock",
		Description: "Change the dock base size, peak magnification and influence radius.",
	}, s.handleSetDock)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "dock_pointer",
		Description: "Move the pointer over the dock at x, or omit x to take it away. Returns the icon scales.",
	}, s.handleDockPointer)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "click_dock",
		Description: "Click a dock item: toggles the launchpad, opens a desktop app, or returns the app link.",
	}, s.handleClickDock)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "launchpad",
		Description: "Show, hide or toggle the launchpad.",
	}, s.handleLaunchpad)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "reload_config",
		Description: "Reload the daemon configuration. Open windows are kept.",
	}, s.handleReloadConfig)
}
