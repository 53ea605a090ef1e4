package hotkeys

import (
	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/controls"
	"github.com/1broseidon/deskwm/internal/desktop"
)

// Binding ties a key sequence (xgbutil keybind syntax, e.g. "Mod4-Mod1-q")
// to a desktop action.
type Binding struct {
	Name string
	Keys string
	Run  func() bool
}

// Bindings returns the configured hotkeys for d. Actions on the focused
// window go through the title-bar controls, so their enable rules apply.
// Bindings with an empty key sequence are omitted.
func Bindings(cfg *config.Config, d *desktop.Desktop) []Binding {
	onFocused := func(c controls.Control) func() bool {
		return func() bool {
			id := d.Manager().Focused()
			if id == "" {
				return false
			}
			return d.Activate(controls.Activate{Window: id, Control: c})
		}
	}

	all := []Binding{
		{Name: "launchpad", Keys: cfg.LaunchpadHotkey, Run: func() bool {
			d.FlipLaunchpad()
			return true
		}},
		{Name: "maximize", Keys: cfg.MaximizeHotkey, Run: onFocused(controls.Maximize)},
		{Name: "minimize", Keys: cfg.MinimizeHotkey, Run: onFocused(controls.Minimize)},
		{Name: "close", Keys: cfg.CloseHotkey, Run: onFocused(controls.Close)},
	}

	out := make([]Binding, 0, len(all))
	for _, b := range all {
		if b.Keys != "" {
			out = append(out, b)
		}
	}
	return out
}
