// Package tui renders the desktop in a terminal. Each cell stands for a
// CellWidth×CellHeight block of surface pixels, so windows, the dock and
// the launchpad follow the same geometry the daemon serves over IPC.
package tui

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/1broseidon/deskwm/internal/desktop"
)

// Run starts the interactive desktop and blocks until the user quits.
func Run(d *desktop.Desktop, m Metrics, logger *log.Logger) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	p := tea.NewProgram(newModel(d, m, logger), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// TerminalSurface returns the pixel surface of the current terminal, less
// the bottom help row.
func TerminalSurface(m Metrics) (float64, float64, error) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read terminal size: %w", err)
	}
	w, h := m.Surface(cols, max(0, rows-1))
	return w, h, nil
}
