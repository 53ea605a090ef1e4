package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/settings"
	"github.com/1broseidon/deskwm/internal/viewport"
)

// SurfaceSource selects where the daemon measures the viewport from.
type SurfaceSource string

const (
	SurfaceFixed SurfaceSource = "fixed" // viewport.width/height from config, updated over IPC.
	SurfaceX11   SurfaceSource = "x11"   // Root window / RandR primary output.
	SurfaceAuto  SurfaceSource = "auto"  // X11 when a display is reachable, fixed otherwise.
)

// WindowDefaults are the geometry defaults applied to apps that leave them unset.
type WindowDefaults struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	MinWidth  float64 `yaml:"min_width"`
	MinHeight float64 `yaml:"min_height"`
}

// ViewportConfig is the fixed surface size used without a display probe.
type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// AppConfig describes one registered application.
type AppConfig struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	Icon    string `yaml:"icon,omitempty"`
	Desktop bool   `yaml:"desktop"`
	Link    string `yaml:"link,omitempty"`

	Width       float64 `yaml:"width,omitempty"`
	Height      float64 `yaml:"height,omitempty"`
	MinWidth    float64 `yaml:"min_width,omitempty"`
	MinHeight   float64 `yaml:"min_height,omitempty"`
	X           float64 `yaml:"x,omitempty"`
	Y           float64 `yaml:"y,omitempty"`
	AspectRatio float64 `yaml:"aspect_ratio,omitempty"`
	// Show opens the app when the daemon starts.
	Show bool `yaml:"show,omitempty"`
}

// LoggingConfig configures the window action log.
type LoggingConfig struct {
	// Enabled turns action logging on/off
	Enabled bool `yaml:"enabled,omitempty"`
	// Level controls logging verbosity: debug, info, warn, error
	Level string `yaml:"level,omitempty"`
	// File is the log file path (default: ~/.local/share/deskwm/actions.log)
	File string `yaml:"file,omitempty"`
	// MaxSizeMB is the maximum log file size before rotation (default: 10)
	MaxSizeMB int `yaml:"max_size_mb,omitempty"`
	// MaxFiles is the number of rotated files to keep (default: 3)
	MaxFiles int `yaml:"max_files,omitempty"`
}

// Config is the effective configuration.
type Config struct {
	DockSize         float64        `yaml:"dock_size"`
	DockMag          float64        `yaml:"dock_mag"`
	DockInfluence    float64        `yaml:"dock_influence"`
	MinMarginX       float64        `yaml:"min_margin_x"`
	MinMarginY       float64        `yaml:"min_margin_y"`
	TitleBarHeight   float64        `yaml:"title_bar_height"`
	MobileBreakpoint float64        `yaml:"mobile_breakpoint"`
	DefaultWindow    WindowDefaults `yaml:"default_window"`
	Surface          SurfaceSource  `yaml:"surface"`
	Display          string         `yaml:"display,omitempty"`
	Viewport         ViewportConfig `yaml:"viewport"`
	LogLevel         string         `yaml:"log_level"`
	Logging          LoggingConfig  `yaml:"logging,omitempty"`
	Apps             []AppConfig    `yaml:"apps"`

	// Global hotkeys, only bound on an X11 surface. Empty disables a binding.
	LaunchpadHotkey string `yaml:"launchpad_hotkey"`
	MaximizeHotkey  string `yaml:"maximize_hotkey"`
	MinimizeHotkey  string `yaml:"minimize_hotkey"`
	CloseHotkey     string `yaml:"close_hotkey"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		DockSize:         settings.DefaultDockSize,
		DockMag:          settings.DefaultDockMag,
		DockInfluence:    settings.DefaultInfluence,
		MinMarginX:       geometry.DefaultMarginX,
		MinMarginY:       geometry.DefaultMarginY,
		TitleBarHeight:   geometry.DefaultTitleBarHeight,
		MobileBreakpoint: viewport.DefaultBreakpoint,
		DefaultWindow: WindowDefaults{
			Width:     geometry.DefaultWidth,
			Height:    geometry.DefaultHeight,
			MinWidth:  geometry.DefaultMinWidth,
			MinHeight: geometry.DefaultMinHeight,
		},
		Surface: SurfaceAuto,
		Viewport: ViewportConfig{
			Width:  1280,
			Height: 800,
		},
		LogLevel:        "info",
		Apps:            BuiltinApps(),
		LaunchpadHotkey: "Mod4-Mod1-space",
		MaximizeHotkey:  "Mod4-Mod1-Up",
		MinimizeHotkey:  "Mod4-Mod1-Down",
		CloseHotkey:     "Mod4-Mod1-q",
	}
}

// Engine returns the constraint engine described by the config.
func (c *Config) Engine() geometry.Engine {
	return geometry.Engine{
		MarginX:        c.MinMarginX,
		MarginY:        c.MinMarginY,
		TitleBarHeight: c.TitleBarHeight,
	}
}

// DockSettings returns the shared dock settings described by the config.
func (c *Config) DockSettings() settings.Dock {
	return settings.Dock{
		DockSize:  c.DockSize,
		DockMag:   c.DockMag,
		Influence: c.DockInfluence,
	}
}

// FixedViewport measures the configured fixed surface.
func (c *Config) FixedViewport() viewport.Viewport {
	return viewport.Measure(c.Viewport.Width, c.Viewport.Height, c.DockSize, c.MobileBreakpoint)
}

// App returns the registered app with the given id.
func (c *Config) App(id string) (AppConfig, bool) {
	for _, app := range c.Apps {
		if app.ID == id {
			return app, true
		}
	}
	return AppConfig{}, false
}

// GetLoggingConfig returns the logging configuration with defaults applied.
func (c *Config) GetLoggingConfig() LoggingConfig {
	if c == nil {
		return LoggingConfig{}
	}
	cfg := c.Logging
	if cfg.File == "" {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			home = os.Getenv("HOME")
		}
		if home == "" {
			home = "."
		}
		cfg.File = filepath.Join(home, ".local/share/deskwm/actions.log")
	}
	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxFiles == 0 {
		cfg.MaxFiles = 3
	}
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	return cfg
}

// Save writes the configuration to the standard location.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the effective configuration.
func (c *Config) Validate() error {
	if c.DockSize <= 0 {
		return &ValidationError{Path: "dock_size", Err: fmt.Errorf("dock_size must be > 0")}
	}
	if c.DockMag < 1 {
		return &ValidationError{Path: "dock_mag", Err: fmt.Errorf("dock_mag must be >= 1")}
	}
	if c.DockInfluence <= 0 {
		return &ValidationError{Path: "dock_influence", Err: fmt.Errorf("dock_influence must be > 0")}
	}
	if c.MinMarginX < 0 {
		return &ValidationError{Path: "min_margin_x", Err: fmt.Errorf("min_margin_x must be >= 0")}
	}
	if c.MinMarginY < 0 {
		return &ValidationError{Path: "min_margin_y", Err: fmt.Errorf("min_margin_y must be >= 0")}
	}
	if c.TitleBarHeight < 0 {
		return &ValidationError{Path: "title_bar_height", Err: fmt.Errorf("title_bar_height must be >= 0")}
	}
	if c.MobileBreakpoint < 0 {
		return &ValidationError{Path: "mobile_breakpoint", Err: fmt.Errorf("mobile_breakpoint must be >= 0")}
	}
	if err := validateWindowDefaults(c.DefaultWindow); err != nil {
		return err
	}
	switch c.Surface {
	case SurfaceFixed, SurfaceX11, SurfaceAuto:
	default:
		return &ValidationError{Path: "surface", Err: fmt.Errorf("surface must be one of: auto, x11, fixed")}
	}
	if c.Viewport.Width <= 0 {
		return &ValidationError{Path: "viewport.width", Err: fmt.Errorf("width must be > 0")}
	}
	if c.Viewport.Height <= 0 {
		return &ValidationError{Path: "viewport.height", Err: fmt.Errorf("height must be > 0")}
	}
	if !isValidLevel(c.LogLevel) {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	if c.Logging.Level != "" && !isValidLevel(c.Logging.Level) {
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("level must be one of: debug, info, warn, error")}
	}
	if c.Logging.MaxSizeMB < 0 {
		return &ValidationError{Path: "logging.max_size_mb", Err: fmt.Errorf("max_size_mb must be >= 0")}
	}
	if c.Logging.MaxFiles < 0 {
		return &ValidationError{Path: "logging.max_files", Err: fmt.Errorf("max_files must be >= 0")}
	}
	if err := validateHotkeys(c); err != nil {
		return err
	}
	return validateApps(c.Apps)
}

// validateHotkeys rejects two actions bound to the same key sequence.
func validateHotkeys(c *Config) error {
	bindings := []struct {
		path string
		key  string
	}{
		{"launchpad_hotkey", c.LaunchpadHotkey},
		{"maximize_hotkey", c.MaximizeHotkey},
		{"minimize_hotkey", c.MinimizeHotkey},
		{"close_hotkey", c.CloseHotkey},
	}
	seen := make(map[string]string, len(bindings))
	for _, b := range bindings {
		key := strings.TrimSpace(b.key)
		if key == "" {
			continue
		}
		if other, ok := seen[key]; ok {
			return &ValidationError{Path: b.path, Err: fmt.Errorf("%q is already bound by %s", key, other)}
		}
		seen[key] = b.path
	}
	return nil
}

func validateWindowDefaults(w WindowDefaults) error {
	if w.Width <= 0 {
		return &ValidationError{Path: "default_window.width", Err: fmt.Errorf("width must be > 0")}
	}
	if w.Height <= 0 {
		return &ValidationError{Path: "default_window.height", Err: fmt.Errorf("height must be > 0")}
	}
	if w.MinWidth <= 0 {
		return &ValidationError{Path: "default_window.min_width", Err: fmt.Errorf("min_width must be > 0")}
	}
	if w.MinHeight <= 0 {
		return &ValidationError{Path: "default_window.min_height", Err: fmt.Errorf("min_height must be > 0")}
	}
	return nil
}

func validateApps(apps []AppConfig) error {
	if len(apps) == 0 {
		return &ValidationError{Path: "apps", Err: fmt.Errorf("apps must not be empty")}
	}
	seen := make(map[string]struct{}, len(apps))
	for i, app := range apps {
		path := fmt.Sprintf("apps.%d", i)
		id := strings.TrimSpace(app.ID)
		if id == "" {
			return &ValidationError{Path: path + ".id", Err: fmt.Errorf("id is required")}
		}
		if _, ok := seen[id]; ok {
			return &ValidationError{Path: path + ".id", Err: fmt.Errorf("duplicate app id %q", id)}
		}
		seen[id] = struct{}{}

		if app.Width < 0 || app.Height < 0 || app.MinWidth < 0 || app.MinHeight < 0 {
			return &ValidationError{Path: path, Err: fmt.Errorf("sizes must be >= 0")}
		}
		if app.AspectRatio < 0 {
			return &ValidationError{Path: path + ".aspect_ratio", Err: fmt.Errorf("aspect_ratio must be >= 0")}
		}
		if !app.Desktop && app.Show {
			return &ValidationError{Path: path + ".show", Err: fmt.Errorf("show requires desktop: true")}
		}
	}
	return nil
}

func isValidLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error":
		return true
	default:
		return false
	}
}
