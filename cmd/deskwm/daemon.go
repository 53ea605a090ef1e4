package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/eventlog"
	"github.com/1broseidon/deskwm/internal/hotkeys"
	"github.com/1broseidon/deskwm/internal/ipc"
	"github.com/1broseidon/deskwm/internal/runtimepath"
	"github.com/1broseidon/deskwm/internal/x11"
)

func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "deskwm",
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// openSurface connects to X11 when the config asks for it. Auto mode falls
// back to the fixed viewport when no display is reachable.
func openSurface(cfg *config.Config, logger *log.Logger) (*x11.Connection, config.SurfaceSource, error) {
	if cfg.Surface == config.SurfaceFixed {
		return nil, config.SurfaceFixed, nil
	}
	conn, err := x11.NewConnection(cfg.Display)
	if err == nil {
		return conn, config.SurfaceX11, nil
	}
	if cfg.Surface == config.SurfaceX11 {
		return nil, "", err
	}
	logger.Warn("no display, using fixed viewport", "err", err,
		"width", cfg.Viewport.Width, "height", cfg.Viewport.Height)
	return nil, config.SurfaceFixed, nil
}

func writePIDFile() (string, error) {
	path, err := runtimepath.PIDPath()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0600); err != nil {
		return "", fmt.Errorf("failed to write pid file: %w", err)
	}
	return path, nil
}

func newEventLog(cfg *config.Config) (*eventlog.Logger, error) {
	lc := cfg.GetLoggingConfig()
	return eventlog.New(eventlog.Config{
		Enabled:   lc.Enabled,
		Level:     eventlog.ParseLogLevel(lc.Level),
		FilePath:  lc.File,
		MaxSizeMB: lc.MaxSizeMB,
		MaxFiles:  lc.MaxFiles,
	})
}

func runDaemon(args []string) int {
	fs := newFlagSet("daemon",
		"Usage: deskwm daemon [--path PATH]",
		"",
		"Run the desktop daemon in the foreground.")
	path := fs.String("path", "", "Config file path (default: ~/.config/deskwm/config.yaml)")
	if code, ok := parseArgs(fs, args, 0); !ok {
		return code
	}

	load := config.Load
	if *path != "" {
		load = func() (*config.Config, error) {
			res, err := config.LoadFromPath(*path)
			if err != nil {
				return nil, err
			}
			return res.Config, nil
		}
	}

	cfg, err := load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	logger := newLogger(cfg.LogLevel)

	conn, surface, err := openSurface(cfg, logger)
	if err != nil {
		logger.Error("failed to connect to display", "err", err)
		return 1
	}
	if conn != nil {
		defer conn.Close()
	}

	desk := desktop.New(cfg, cfg.Viewport.Width, cfg.Viewport.Height, desktop.WithLogger(logger.WithPrefix("desktop")))

	actions, err := newEventLog(cfg)
	if err != nil {
		logger.Error("failed to open action log", "err", err)
		return 1
	}
	defer actions.Close()
	detach := actions.Attach(desk.Manager().Changes())
	defer detach()

	if conn != nil {
		watcher := x11.NewWatcher(conn, logger.WithPrefix("x11"))
		if err := watcher.Start(func(m x11.Monitor) {
			desk.Resize(float64(m.Width), float64(m.Height))
		}); err != nil {
			logger.Error("failed to watch display", "err", err)
			return 1
		}
		handler := hotkeys.NewHandler(conn, logger.WithPrefix("hotkeys"))
		if err := handler.Register(hotkeys.Bindings(cfg, desk)); err != nil {
			logger.Warn("hotkeys unavailable", "err", err)
		}
	}

	sessionID := uuid.NewString()
	server, err := ipc.NewServer(desk,
		ipc.WithSession(sessionID, string(surface)),
		ipc.WithReload(load),
		ipc.WithServerLogger(logger.WithPrefix("ipc")),
	)
	if err != nil {
		logger.Error("failed to create IPC server", "err", err)
		return 1
	}
	if err := server.Start(); err != nil {
		logger.Error("failed to start IPC server", "err", err)
		return 1
	}
	defer server.Stop()

	pidPath, err := writePIDFile()
	if err != nil {
		logger.Warn("pid file unavailable", "err", err)
	} else {
		defer os.Remove(pidPath)
	}

	desk.ShowStartup()
	vp := desk.Manager().Viewport()
	logger.Info("daemon started",
		"session", sessionID,
		"surface", surface,
		"viewport", fmt.Sprintf("%gx%g", vp.Width, vp.Height),
		"policy", vp.Policy,
		"socket", server.SocketPath(),
		"apps", desk.Registry().Len(),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	done := make(chan struct{})

	go func() {
		for sig := range sigCh {
			if sig == syscall.SIGHUP {
				reload(load, desk, logger)
				continue
			}
			logger.Info("shutting down", "signal", sig)
			if conn != nil {
				conn.Quit()
			}
			close(done)
			return
		}
	}()

	if conn != nil {
		conn.EventLoop()
	}
	<-done
	return 0
}

func reload(load ipc.ReloadFunc, desk *desktop.Desktop, logger *log.Logger) {
	cfg, err := load()
	if err != nil {
		logger.Error("config reload failed", "err", err)
		return
	}
	if err := desk.Reload(cfg); err != nil {
		logger.Error("config reload failed", "err", err)
	}
}
