package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths include:
//
//	dock_size
//	dock_mag
//	dock_influence
//	min_margin_x
//	title_bar_height
//	mobile_breakpoint
//	default_window.width
//	surface
//	viewport.height
//	log_level
//	launchpad_hotkey
//	logging.max_size_mb
//	apps
//	apps.<index>
//	apps.<id>.title
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	// apps.<id>.field resolves through the index-keyed source paths.
	if parts := strings.Split(path, "."); len(parts) >= 2 && parts[0] == "apps" {
		if idx := appIndex(res.Config, parts[1]); idx >= 0 {
			indexed := strings.Join(append([]string{"apps", strconv.Itoa(idx)}, parts[2:]...), ".")
			if src, ok := res.Sources[indexed]; ok {
				return value, src, nil
			}
		}
	}

	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	scalar := func(v any) (any, error) {
		if len(parts) != 1 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		return v, nil
	}

	switch parts[0] {
	case "dock_size":
		return scalar(cfg.DockSize)
	case "dock_mag":
		return scalar(cfg.DockMag)
	case "dock_influence":
		return scalar(cfg.DockInfluence)
	case "min_margin_x":
		return scalar(cfg.MinMarginX)
	case "min_margin_y":
		return scalar(cfg.MinMarginY)
	case "title_bar_height":
		return scalar(cfg.TitleBarHeight)
	case "mobile_breakpoint":
		return scalar(cfg.MobileBreakpoint)
	case "surface":
		return scalar(string(cfg.Surface))
	case "display":
		return scalar(cfg.Display)
	case "log_level":
		return scalar(cfg.LogLevel)
	case "launchpad_hotkey":
		return scalar(cfg.LaunchpadHotkey)
	case "maximize_hotkey":
		return scalar(cfg.MaximizeHotkey)
	case "minimize_hotkey":
		return scalar(cfg.MinimizeHotkey)
	case "close_hotkey":
		return scalar(cfg.CloseHotkey)
	case "default_window":
		if len(parts) == 1 {
			return cfg.DefaultWindow, nil
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		switch parts[1] {
		case "width":
			return cfg.DefaultWindow.Width, nil
		case "height":
			return cfg.DefaultWindow.Height, nil
		case "min_width":
			return cfg.DefaultWindow.MinWidth, nil
		case "min_height":
			return cfg.DefaultWindow.MinHeight, nil
		}
	case "viewport":
		if len(parts) == 1 {
			return cfg.Viewport, nil
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		switch parts[1] {
		case "width":
			return cfg.Viewport.Width, nil
		case "height":
			return cfg.Viewport.Height, nil
		}
	case "logging":
		lc := cfg.GetLoggingConfig()
		if len(parts) == 1 {
			return lc, nil
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		switch parts[1] {
		case "enabled":
			return lc.Enabled, nil
		case "level":
			return lc.Level, nil
		case "file":
			return lc.File, nil
		case "max_size_mb":
			return lc.MaxSizeMB, nil
		case "max_files":
			return lc.MaxFiles, nil
		}
	case "apps":
		return lookupApp(cfg, parts, path)
	}
	return nil, fmt.Errorf("unknown path: %s", path)
}

func lookupApp(cfg *Config, parts []string, path string) (any, error) {
	if len(parts) == 1 {
		return cfg.Apps, nil
	}
	idx := appIndex(cfg, parts[1])
	if idx < 0 {
		return nil, fmt.Errorf("unknown app: %s", parts[1])
	}
	app := cfg.Apps[idx]
	if len(parts) == 2 {
		return app, nil
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("unknown path: %s", path)
	}
	switch parts[2] {
	case "id":
		return app.ID, nil
	case "title":
		return app.Title, nil
	case "icon":
		return app.Icon, nil
	case "desktop":
		return app.Desktop, nil
	case "link":
		return app.Link, nil
	case "width":
		return app.Width, nil
	case "height":
		return app.Height, nil
	case "min_width":
		return app.MinWidth, nil
	case "min_height":
		return app.MinHeight, nil
	case "x":
		return app.X, nil
	case "y":
		return app.Y, nil
	case "aspect_ratio":
		return app.AspectRatio, nil
	case "show":
		return app.Show, nil
	}
	return nil, fmt.Errorf("unknown path: %s", path)
}

// appIndex accepts either a registry index or an app id.
func appIndex(cfg *Config, key string) int {
	if i, err := strconv.Atoi(key); err == nil {
		if i >= 0 && i < len(cfg.Apps) {
			return i
		}
		return -1
	}
	for i, app := range cfg.Apps {
		if app.ID == key {
			return i
		}
	}
	return -1
}
