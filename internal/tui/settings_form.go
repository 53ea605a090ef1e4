package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/1broseidon/deskwm/internal/settings"
)

// settingsForm edits the shared dock settings. Values are bound as
// strings for huh and converted on submit.
type settingsForm struct {
	form *huh.Form

	fSize      string
	fMag       string
	fInfluence string
}

func newSettingsForm(cur settings.Dock) *settingsForm {
	f := &settingsForm{
		fSize:      formatFloat(cur.DockSize),
		fMag:       formatFloat(cur.DockMag),
		fInfluence: formatFloat(cur.Influence),
	}
	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Dock size").
				Description("Base icon size in pixels").
				Value(&f.fSize).
				Validate(positive),
			huh.NewInput().
				Title("Magnification").
				Description("Peak size multiplier under the pointer").
				Value(&f.fMag).
				Validate(atLeastOne),
			huh.NewInput().
				Title("Influence").
				Description("Falloff radius as a multiple of the dock size").
				Value(&f.fInfluence).
				Validate(positive),
		),
	).WithShowHelp(true)
	return f
}

// values converts the bound fields. Validation already ran on submit.
func (f *settingsForm) values() settings.Dock {
	size, _ := parseFloat(f.fSize)
	mag, _ := parseFloat(f.fMag)
	infl, _ := parseFloat(f.fInfluence)
	return settings.Dock{DockSize: size, DockMag: mag, Influence: infl}
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func positive(s string) error {
	v, err := parseFloat(s)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if v <= 0 {
		return fmt.Errorf("must be > 0")
	}
	return nil
}

func atLeastOne(s string) error {
	v, err := parseFloat(s)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if v < 1 {
		return fmt.Errorf("must be >= 1")
	}
	return nil
}
