package config

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig overlays raw on the defaults and fills per-app
// window defaults.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.DockSize != nil {
		cfg.DockSize = *raw.DockSize
	}
	if raw.DockMag != nil {
		cfg.DockMag = *raw.DockMag
	}
	if raw.DockInfluence != nil {
		cfg.DockInfluence = *raw.DockInfluence
	}
	if raw.MinMarginX != nil {
		cfg.MinMarginX = *raw.MinMarginX
	}
	if raw.MinMarginY != nil {
		cfg.MinMarginY = *raw.MinMarginY
	}
	if raw.TitleBarHeight != nil {
		cfg.TitleBarHeight = *raw.TitleBarHeight
	}
	if raw.MobileBreakpoint != nil {
		cfg.MobileBreakpoint = *raw.MobileBreakpoint
	}
	if raw.DefaultWindow != nil {
		if raw.DefaultWindow.Width != nil {
			cfg.DefaultWindow.Width = *raw.DefaultWindow.Width
		}
		if raw.DefaultWindow.Height != nil {
			cfg.DefaultWindow.Height = *raw.DefaultWindow.Height
		}
		if raw.DefaultWindow.MinWidth != nil {
			cfg.DefaultWindow.MinWidth = *raw.DefaultWindow.MinWidth
		}
		if raw.DefaultWindow.MinHeight != nil {
			cfg.DefaultWindow.MinHeight = *raw.DefaultWindow.MinHeight
		}
	}
	if raw.Surface != nil {
		cfg.Surface = SurfaceSource(strings.ToLower(strings.TrimSpace(string(*raw.Surface))))
	}
	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.Viewport != nil {
		if raw.Viewport.Width != nil {
			cfg.Viewport.Width = *raw.Viewport.Width
		}
		if raw.Viewport.Height != nil {
			cfg.Viewport.Height = *raw.Viewport.Height
		}
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(*raw.LogLevel))
	}
	if raw.Logging != nil {
		if raw.Logging.Enabled != nil {
			cfg.Logging.Enabled = *raw.Logging.Enabled
		}
		if raw.Logging.Level != nil {
			cfg.Logging.Level = *raw.Logging.Level
		}
		if raw.Logging.File != nil {
			cfg.Logging.File = *raw.Logging.File
		}
		if raw.Logging.MaxSizeMB != nil {
			cfg.Logging.MaxSizeMB = *raw.Logging.MaxSizeMB
		}
		if raw.Logging.MaxFiles != nil {
			cfg.Logging.MaxFiles = *raw.Logging.MaxFiles
		}
	}
	if raw.Apps != nil {
		cfg.Apps = append([]AppConfig(nil), raw.Apps...)
	}
	if raw.LaunchpadHotkey != nil {
		cfg.LaunchpadHotkey = strings.TrimSpace(*raw.LaunchpadHotkey)
	}
	if raw.MaximizeHotkey != nil {
		cfg.MaximizeHotkey = strings.TrimSpace(*raw.MaximizeHotkey)
	}
	if raw.MinimizeHotkey != nil {
		cfg.MinimizeHotkey = strings.TrimSpace(*raw.MinimizeHotkey)
	}
	if raw.CloseHotkey != nil {
		cfg.CloseHotkey = strings.TrimSpace(*raw.CloseHotkey)
	}

	for i := range cfg.Apps {
		cfg.Apps[i].ID = strings.TrimSpace(cfg.Apps[i].ID)
		if cfg.Apps[i].Title == "" {
			cfg.Apps[i].Title = cfg.Apps[i].ID
		}
	}

	return cfg, nil
}
