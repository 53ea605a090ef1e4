package tui

import "github.com/charmbracelet/lipgloss"

var palette = map[styleID]lipgloss.Style{
	stBorder:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	stBorderFocused: lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
	stTitle:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
	stClose:         lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	stMinimize:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
	stMaximize:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	stDisabled:      lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	stDockItem:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("236")),
	stDockOpen:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	stStatus:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("235")),
}

var (
	helpBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)
