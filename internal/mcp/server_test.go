package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/deskwm/internal/apps"
	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/ipc"
	"github.com/1broseidon/deskwm/internal/wm"
)

func newTestServer(t *testing.T) (*Server, *desktop.Desktop) {
	t.Helper()
	dir, err := os.MkdirTemp("", "deskwm-mcp")
	if err != nil {
		t.Fatalf("mkdir temp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	cfg := config.DefaultConfig()
	cfg.DockSize = 60
	cfg.Apps = []config.AppConfig{
		{ID: apps.LaunchpadID, Title: "Launchpad"},
		{ID: "calc", Title: "Calculator", Desktop: true},
		{ID: "docs", Title: "Docs", Link: "https://example.com/docs"},
	}
	desk := desktop.New(cfg, 1024, 768)

	daemon, err := ipc.NewServer(desk,
		ipc.WithSocketPath(filepath.Join(dir, "d.sock")),
		ipc.WithReload(func() (*config.Config, error) { return cfg, nil }),
	)
	if err != nil {
		t.Fatalf("ipc server: %v", err)
	}
	if err := daemon.Start(); err != nil {
		t.Fatalf("ipc start: %v", err)
	}
	t.Cleanup(daemon.Stop)

	return NewServer(ipc.NewClientWithSocket(daemon.SocketPath())), desk
}

func TestWindowTools(t *testing.T) {
	s, desk := newTestServer(t)
	ctx := context.Background()

	_, out, err := s.handleOpenWindow(ctx, nil, WindowInput{ID: " calc "})
	if err != nil || !out.Changed || out.ID != "calc" {
		t.Fatalf("open: out=%+v err=%v", out, err)
	}

	_, _, err = s.handleOpenWindow(ctx, nil, WindowInput{ID: "docs"})
	if err == nil || !strings.Contains(err.Error(), "not a desktop application") {
		t.Fatalf("expected link app to be refused, got %v", err)
	}

	_, out, err = s.handleMoveWindow(ctx, nil, MoveInput{ID: "calc", X: -700, Y: 900})
	if err != nil || !out.Changed {
		t.Fatalf("move: out=%+v err=%v", out, err)
	}
	w, _ := desk.Manager().Window("calc")
	if w.Restored.X != -620 || w.Restored.Y != 653 {
		t.Fatalf("expected clamped move, got %+v", w.Restored)
	}

	_, out, err = s.handlePressControl(ctx, nil, ActivateInput{ID: "calc", Control: "minimize"})
	if err != nil || !out.Changed {
		t.Fatalf("minimize: out=%+v err=%v", out, err)
	}
	if w, _ := desk.Manager().Window("calc"); w.State != wm.StateMinimized {
		t.Fatalf("expected minimized, got %s", w.State)
	}

	_, list, err := s.handleListWindows(ctx, nil, EmptyInput{})
	if err != nil || len(list.Windows) != 1 || list.Windows[0].Visible {
		t.Fatalf("list: %+v err=%v", list, err)
	}
}

func TestWindowTools_RequireID(t *testing.T) {
	s, _ := newTestServer(t)
	if _, _, err := s.handleFocusWindow(context.Background(), nil, WindowInput{ID: "  "}); err == nil {
		t.Fatalf("expected missing id error")
	}
	if _, _, err := s.handleResizeWindow(context.Background(), nil, ResizeInput{ID: "calc"}); err == nil {
		t.Fatalf("expected zero size to be rejected")
	}
}

func TestDockTools(t *testing.T) {
	s, desk := newTestServer(t)
	ctx := context.Background()

	_, dock, err := s.handleGetDock(ctx, nil, EmptyInput{})
	if err != nil || len(dock.Dock.Items) != 3 {
		t.Fatalf("get dock: %+v err=%v", dock, err)
	}

	x := dock.Dock.Layout.Centers[1]
	_, ptr, err := s.handleDockPointer(ctx, nil, PointerInput{X: &x})
	if err != nil || ptr.Scales[1] != 120 {
		t.Fatalf("pointer: %+v err=%v", ptr, err)
	}

	_, click, err := s.handleClickDock(ctx, nil, WindowInput{ID: apps.LaunchpadID})
	if err != nil || click.Result.Action != desktop.DockLaunchpad || !desk.Launchpad().Get() {
		t.Fatalf("click launchpad: %+v err=%v", click, err)
	}

	hide := false
	_, lp, err := s.handleLaunchpad(ctx, nil, LaunchpadInput{Visible: &hide})
	if err != nil || lp.Visible || !lp.Changed {
		t.Fatalf("launchpad: %+v err=%v", lp, err)
	}

	if _, _, err := s.handleSetDock(ctx, nil, SetDockInput{DockSize: 40, DockMag: 0.5}); err == nil {
		t.Fatalf("expected invalid magnification to be rejected")
	}
}

func TestStatusAndReload(t *testing.T) {
	s, desk := newTestServer(t)
	ctx := context.Background()
	desk.Open("calc")

	_, st, err := s.handleGetStatus(ctx, nil, EmptyInput{})
	if err != nil || st.Desktop.Windows != 1 || st.Desktop.Focused != "calc" {
		t.Fatalf("status: %+v err=%v", st, err)
	}

	_, vp, err := s.handleSetViewport(ctx, nil, ViewportInput{Width: 375, Height: 812})
	if err != nil || !vp.Viewport.IsMobile() {
		t.Fatalf("viewport: %+v err=%v", vp, err)
	}

	_, rl, err := s.handleReloadConfig(ctx, nil, EmptyInput{})
	if err != nil || !rl.Reloaded {
		t.Fatalf("reload: %+v err=%v", rl, err)
	}
}

func TestNewServer_RegistersTools(t *testing.T) {
	s := NewServer(ipc.NewClientWithSocket(filepath.Join(os.TempDir(), "deskwm-none.sock")))
	if s.mcpServer == nil {
		t.Fatalf("expected MCP server to be created")
	}
}
