package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawWindowDefaults struct {
	Width     *float64 `yaml:"width"`
	Height    *float64 `yaml:"height"`
	MinWidth  *float64 `yaml:"min_width"`
	MinHeight *float64 `yaml:"min_height"`
}

type RawViewport struct {
	Width  *float64 `yaml:"width"`
	Height *float64 `yaml:"height"`
}

type RawLoggingConfig struct {
	Enabled   *bool   `yaml:"enabled"`
	Level     *string `yaml:"level"`
	File      *string `yaml:"file"`
	MaxSizeMB *int    `yaml:"max_size_mb"`
	MaxFiles  *int    `yaml:"max_files"`
}

// RawConfig is one config file as written. Nil fields were not set and
// fall through to earlier files or the defaults.
type RawConfig struct {
	Include          IncludeList        `yaml:"include"`
	DockSize         *float64           `yaml:"dock_size"`
	DockMag          *float64           `yaml:"dock_mag"`
	DockInfluence    *float64           `yaml:"dock_influence"`
	MinMarginX       *float64           `yaml:"min_margin_x"`
	MinMarginY       *float64           `yaml:"min_margin_y"`
	TitleBarHeight   *float64           `yaml:"title_bar_height"`
	MobileBreakpoint *float64           `yaml:"mobile_breakpoint"`
	DefaultWindow    *RawWindowDefaults `yaml:"default_window"`
	Surface          *SurfaceSource     `yaml:"surface"`
	Display          *string            `yaml:"display"`
	Viewport         *RawViewport       `yaml:"viewport"`
	LogLevel         *string            `yaml:"log_level"`
	Logging          *RawLoggingConfig  `yaml:"logging"`
	// Apps replaces the registry as a whole; entries are not merged by id.
	Apps []AppConfig `yaml:"apps"`

	LaunchpadHotkey *string `yaml:"launchpad_hotkey"`
	MaximizeHotkey  *string `yaml:"maximize_hotkey"`
	MinimizeHotkey  *string `yaml:"minimize_hotkey"`
	CloseHotkey     *string `yaml:"close_hotkey"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.DockSize != nil {
		out.DockSize = overlay.DockSize
	}
	if overlay.DockMag != nil {
		out.DockMag = overlay.DockMag
	}
	if overlay.DockInfluence != nil {
		out.DockInfluence = overlay.DockInfluence
	}
	if overlay.MinMarginX != nil {
		out.MinMarginX = overlay.MinMarginX
	}
	if overlay.MinMarginY != nil {
		out.MinMarginY = overlay.MinMarginY
	}
	if overlay.TitleBarHeight != nil {
		out.TitleBarHeight = overlay.TitleBarHeight
	}
	if overlay.MobileBreakpoint != nil {
		out.MobileBreakpoint = overlay.MobileBreakpoint
	}
	if overlay.DefaultWindow != nil {
		base := RawWindowDefaults{}
		if out.DefaultWindow != nil {
			base = *out.DefaultWindow
		}
		merged := mergeRawWindowDefaults(base, *overlay.DefaultWindow)
		out.DefaultWindow = &merged
	}
	if overlay.Surface != nil {
		out.Surface = overlay.Surface
	}
	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.Viewport != nil {
		base := RawViewport{}
		if out.Viewport != nil {
			base = *out.Viewport
		}
		if overlay.Viewport.Width != nil {
			base.Width = overlay.Viewport.Width
		}
		if overlay.Viewport.Height != nil {
			base.Height = overlay.Viewport.Height
		}
		out.Viewport = &base
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.Logging != nil {
		base := RawLoggingConfig{}
		if out.Logging != nil {
			base = *out.Logging
		}
		merged := mergeRawLogging(base, *overlay.Logging)
		out.Logging = &merged
	}
	if overlay.Apps != nil {
		out.Apps = append([]AppConfig(nil), overlay.Apps...)
	}
	if overlay.LaunchpadHotkey != nil {
		out.LaunchpadHotkey = overlay.LaunchpadHotkey
	}
	if overlay.MaximizeHotkey != nil {
		out.MaximizeHotkey = overlay.MaximizeHotkey
	}
	if overlay.MinimizeHotkey != nil {
		out.MinimizeHotkey = overlay.MinimizeHotkey
	}
	if overlay.CloseHotkey != nil {
		out.CloseHotkey = overlay.CloseHotkey
	}

	return out
}

func mergeRawWindowDefaults(base RawWindowDefaults, overlay RawWindowDefaults) RawWindowDefaults {
	out := base
	if overlay.Width != nil {
		out.Width = overlay.Width
	}
	if overlay.Height != nil {
		out.Height = overlay.Height
	}
	if overlay.MinWidth != nil {
		out.MinWidth = overlay.MinWidth
	}
	if overlay.MinHeight != nil {
		out.MinHeight = overlay.MinHeight
	}
	return out
}

func mergeRawLogging(base RawLoggingConfig, overlay RawLoggingConfig) RawLoggingConfig {
	out := base
	if overlay.Enabled != nil {
		out.Enabled = overlay.Enabled
	}
	if overlay.Level != nil {
		out.Level = overlay.Level
	}
	if overlay.File != nil {
		out.File = overlay.File
	}
	if overlay.MaxSizeMB != nil {
		out.MaxSizeMB = overlay.MaxSizeMB
	}
	if overlay.MaxFiles != nil {
		out.MaxFiles = overlay.MaxFiles
	}
	return out
}
