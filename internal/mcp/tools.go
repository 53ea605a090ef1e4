package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func requireID(tool, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%s: id is required", tool)
	}
	return id, nil
}

// windowTool runs a single-window daemon call and logs the outcome.
func (s *Server) windowTool(tool, id string, fn func(string) (bool, error)) (ChangedOutput, error) {
	id, err := requireID(tool, id)
	if err != nil {
		return ChangedOutput{}, err
	}
	changed, err := fn(id)
	if err != nil {
		s.logger.Warn("tool failed", "tool", tool, "id", id, "err", err)
		return ChangedOutput{}, err
	}
	s.logger.Debug("tool", "tool", tool, "id", id, "changed", changed)
	return ChangedOutput{ID: id, Changed: changed}, nil
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, StatusOutput, error) {
	st, err := s.daemon.GetStatus()
	if err != nil {
		return nil, StatusOutput{}, err
	}
	return nil, StatusOutput{
		SessionID:     st.SessionID,
		UptimeSeconds: st.UptimeSeconds,
		Surface:       st.Surface,
		Desktop:       st.Desktop,
	}, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	data, err := s.daemon.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	return nil, ListWindowsOutput{Windows: data.Windows}, nil
}

func (s *Server) handleOpenWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, ChangedOutput, error) {
	out, err := s.windowTool("open_window", args.ID, s.daemon.Open)
	if err == nil && !out.Changed {
		return nil, out, fmt.Errorf("open_window: %q is not a desktop application", out.ID)
	}
	return nil, out, err
}

func (s *Server) handleCloseWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, ChangedOutput, error) {
	out, err := s.windowTool("close_window", args.ID, s.daemon.Close)
	return nil, out, err
}

func (s *Server) handleFocusWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, ChangedOutput, error) {
	out, err := s.windowTool("focus_window", args.ID, s.daemon.Focus)
	return nil, out, err
}

func (s *Server) handleMinimizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, ChangedOutput, error) {
	out, err := s.windowTool("minimize_window", args.ID, s.daemon.Minimize)
	return nil, out, err
}

func (s *Server) handleMaximizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args MaximizeInput) (*mcpsdk.CallToolResult, ChangedOutput, error) {
	out, err := s.windowTool("maximize_window", args.ID, func(id string) (bool, error) {
		return s.daemon.Maximize(id, args.Target)
	})
	return nil, out, err
}

func (s *Server) handleMoveWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveInput) (*mcpsdk.CallToolResult, ChangedOutput, error) {
	out, err := s.windowTool("move_window", args.ID, func(id string) (bool, error) {
		return s.daemon.DragStop(id, args.X, args.Y)
	})
	return nil, out, err
}

func (s *Server) handleResizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args ResizeInput) (*mcpsdk.CallToolResult, ChangedOutput, error) {
	if args.Width <= 0 || args.Height <= 0 {
		return nil, ChangedOutput{}, fmt.Errorf("resize_window: width and height must be > 0")
	}
	out, err := s.windowTool("resize_window", args.ID, func(id string) (bool, error) {
		return s.daemon.ResizeStop(id, args.X, args.Y, args.Width, args.Height)
	})
	return nil, out, err
}

func (s *Server) handlePressControl(_ context.Context, _ *mcpsdk.CallToolRequest, args ActivateInput) (*mcpsdk.CallToolResult, ChangedOutput, error) {
	out, err := s.windowTool("press_control", args.ID, func(id string) (bool, error) {
		return s.daemon.Activate(id, args.Control, args.Modality)
	})
	return nil, out, err
}

func (s *Server) handleSetViewport(_ context.Context, _ *mcpsdk.CallToolRequest, args ViewportInput) (*mcpsdk.CallToolResult, ViewportOutput, error) {
	vp, err := s.daemon.SetViewport(args.Width, args.Height)
	if err != nil {
		return nil, ViewportOutput{}, err
	}
	s.logger.Info("viewport set", "width", vp.Width, "height", vp.Height, "policy", vp.Policy)
	return nil, ViewportOutput{Viewport: *vp}, nil
}

func (s *Server) handleGetDock(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, DockOutput, error) {
	st, err := s.daemon.GetDock()
	if err != nil {
		return nil, DockOutput{}, err
	}
	return nil, DockOutput{Dock: *st}, nil
}

func (s *Server) handleSetDock(_ context.Context, _ *mcpsdk.CallToolRequest, args SetDockInput) (*mcpsdk.CallToolResult, DockOutput, error) {
	st, err := s.daemon.SetDock(args.DockSize, args.DockMag, args.Influence)
	if err != nil {
		return nil, DockOutput{}, err
	}
	return nil, DockOutput{Dock: *st}, nil
}

func (s *Server) handleDockPointer(_ context.Context, _ *mcpsdk.CallToolRequest, args PointerInput) (*mcpsdk.CallToolResult, PointerOutput, error) {
	scales, err := s.daemon.Pointer(args.X)
	if err != nil {
		return nil, PointerOutput{}, err
	}
	return nil, PointerOutput{Scales: scales}, nil
}

func (s *Server) handleClickDock(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, DockClickOutput, error) {
	id, err := requireID("click_dock", args.ID)
	if err != nil {
		return nil, DockClickOutput{}, err
	}
	res, err := s.daemon.ActivateDock(id)
	if err != nil {
		return nil, DockClickOutput{}, err
	}
	s.logger.Debug("dock click", "id", id, "action", res.Action)
	return nil, DockClickOutput{Result: *res}, nil
}

func (s *Server) handleLaunchpad(_ context.Context, _ *mcpsdk.CallToolRequest, args LaunchpadInput) (*mcpsdk.CallToolResult, LaunchpadOutput, error) {
	data, err := s.daemon.Launchpad(args.Visible)
	if err != nil {
		return nil, LaunchpadOutput{}, err
	}
	return nil, LaunchpadOutput{Visible: data.Visible, Changed: data.Changed}, nil
}

func (s *Server) handleReloadConfig(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, ReloadOutput, error) {
	if err := s.daemon.Reload(); err != nil {
		return nil, ReloadOutput{}, err
	}
	s.logger.Info("config reloaded")
	return nil, ReloadOutput{Reloaded: true}, nil
}
