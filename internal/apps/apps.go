// Package apps is the read-only application registry that supplies dock
// contents, window titles and per-app window hints.
package apps

import (
	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/dock"
	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/wm"
)

// LaunchpadID is the dock entry that toggles the launchpad instead of
// opening a window.
const LaunchpadID = "launchpad"

// App is one registered application.
type App struct {
	ID      string
	Title   string
	Icon    string
	Desktop bool
	Link    string
	Show    bool

	Hints       geometry.Hints
	Constraints geometry.Constraints
}

// Registry is an ordered, immutable set of apps.
type Registry struct {
	apps  []App
	index map[string]int
}

// FromConfig builds the registry from the effective config. App-level
// minimum sizes fall back to the configured defaults.
func FromConfig(cfg *config.Config) *Registry {
	def := cfg.DefaultWindow
	list := make([]App, 0, len(cfg.Apps))
	for _, a := range cfg.Apps {
		app := App{
			ID:      a.ID,
			Title:   a.Title,
			Icon:    a.Icon,
			Desktop: a.Desktop,
			Link:    a.Link,
			Show:    a.Show,
			Hints: geometry.Hints{
				Width:  orDefault(a.Width, def.Width),
				Height: orDefault(a.Height, def.Height),
				X:      a.X,
				Y:      a.Y,
			},
			Constraints: geometry.Constraints{
				MinWidth:    orDefault(a.MinWidth, def.MinWidth),
				MinHeight:   orDefault(a.MinHeight, def.MinHeight),
				AspectRatio: a.AspectRatio,
			},
		}
		list = append(list, app)
	}
	return New(list)
}

// New creates a registry from apps in dock order. Later duplicates of an
// id are dropped.
func New(list []App) *Registry {
	r := &Registry{index: make(map[string]int, len(list))}
	for _, a := range list {
		if _, ok := r.index[a.ID]; ok {
			continue
		}
		if a.Title == "" {
			a.Title = a.ID
		}
		r.index[a.ID] = len(r.apps)
		r.apps = append(r.apps, a)
	}
	return r
}

// Get returns the app with the given id.
func (r *Registry) Get(id string) (App, bool) {
	i, ok := r.index[id]
	if !ok {
		return App{}, false
	}
	return r.apps[i], true
}

// All returns the apps in dock order.
func (r *Registry) All() []App {
	return append([]App(nil), r.apps...)
}

// Len is the number of registered apps.
func (r *Registry) Len() int {
	return len(r.apps)
}

// OpenOptions returns the window options for id. Unknown ids get the
// engine defaults and the id as title.
func (r *Registry) OpenOptions(id string) wm.OpenOptions {
	a, ok := r.Get(id)
	if !ok {
		return wm.OpenOptions{Title: id}
	}
	return wm.OpenOptions{
		Title:       a.Title,
		Hints:       a.Hints,
		Constraints: a.Constraints,
	}
}

// DockItems returns the dock entries with IsOpen derived from isOpen. Only
// desktop apps can show the open indicator.
func (r *Registry) DockItems(isOpen func(id string) bool) []dock.Item {
	out := make([]dock.Item, 0, len(r.apps))
	for _, a := range r.apps {
		out = append(out, dock.Item{
			ID:      a.ID,
			Title:   a.Title,
			Icon:    a.Icon,
			Desktop: a.Desktop,
			Link:    a.Link,
			IsOpen:  a.Desktop && isOpen != nil && isOpen(a.ID),
		})
	}
	return out
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}
