package tui

import (
	"github.com/charmbracelet/bubbles/list"

	"github.com/1broseidon/deskwm/internal/apps"
	"github.com/1broseidon/deskwm/internal/desktop"
)

// appItem is one launchpad entry.
type appItem struct {
	id    string
	title string
	desc  string
}

func (i appItem) Title() string       { return i.title }
func (i appItem) Description() string { return i.desc }
func (i appItem) FilterValue() string { return i.title }

// newLaunchpad lists every app except the launchpad itself.
func newLaunchpad(d *desktop.Desktop, width, height int) list.Model {
	var items []list.Item
	for _, a := range d.Registry().All() {
		if a.ID == apps.LaunchpadID {
			continue
		}
		desc := "window"
		switch {
		case a.Desktop && d.Manager().IsOpen(a.ID):
			desc = "window · open"
		case !a.Desktop && a.Link != "":
			desc = a.Link
		case !a.Desktop:
			desc = "unavailable"
		}
		items = append(items, appItem{id: a.ID, title: a.Title, desc: desc})
	}

	l := list.New(items, list.NewDefaultDelegate(), max(20, width/2), max(6, height-6))
	l.Title = "Launchpad"
	l.SetShowStatusBar(false)
	return l
}

func selectedApp(l list.Model) (appItem, bool) {
	it, ok := l.SelectedItem().(appItem)
	return it, ok
}
