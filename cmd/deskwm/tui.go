package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/tui"
)

func runTUI(args []string) int {
	fs := newFlagSet("tui",
		"Usage: deskwm tui [--path PATH] [--cell-width N] [--cell-height N]",
		"",
		"Run a desktop in this terminal. Every cell stands for a block of",
		"surface pixels, so the layout matches a display of the same size.",
		"",
		"Keybindings:",
		"  mouse       Drag title bars, resize from the corner, click controls and the dock",
		"  tab         Raise the next window",
		"  m / x / w   Minimize, maximize or close the front window",
		"  arrows      Move the front window one cell",
		"  space       Toggle the launchpad",
		"  s           Edit dock settings",
		"  q, Ctrl+C   Quit")
	path := fs.String("path", "", "Config file path (default: ~/.config/deskwm/config.yaml)")
	cellW := fs.Float64("cell-width", tui.DefaultMetrics.CellWidth, "Pixels per column")
	cellH := fs.Float64("cell-height", tui.DefaultMetrics.CellHeight, "Pixels per row")
	debugLog := fs.String("log", "", "Write debug logs to this file")
	if code, ok := parseArgs(fs, args, 0); !ok {
		return code
	}
	if *cellW <= 0 || *cellH <= 0 {
		fmt.Fprintln(os.Stderr, "cell sizes must be > 0")
		return 2
	}

	res, err := loadConfigResult(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config

	// The terminal owns stdout, so logs only go to a file.
	var logOut io.Writer = io.Discard
	if *debugLog != "" {
		f, err := os.OpenFile(*debugLog, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		defer f.Close()
		logOut = f
	}
	logger := log.NewWithOptions(logOut, log.Options{ReportTimestamp: true, Prefix: "tui", Level: log.DebugLevel})

	metrics := tui.Metrics{CellWidth: *cellW, CellHeight: *cellH}
	w, h, err := tui.TerminalSurface(metrics)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	desk := desktop.New(cfg, w, h, desktop.WithLogger(logger.WithPrefix("desktop")))
	desk.ShowStartup()

	if err := tui.Run(desk, metrics, logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
