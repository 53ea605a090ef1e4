package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if _, ok := cfg.App("launchpad"); !ok {
		t.Fatalf("expected builtin launchpad app")
	}
	eng := cfg.Engine()
	if eng.MarginX != 20 || eng.MarginY != 20 || eng.TitleBarHeight != 40 {
		t.Fatalf("unexpected engine %+v", eng)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.DockSize != 50 || res.Config.DockMag != 2 {
		t.Fatalf("expected default dock settings, got %v/%v", res.Config.DockSize, res.Config.DockMag)
	}
	if len(res.Files) != 1 {
		t.Fatalf("expected one loaded file, got %v", res.Files)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no loaded files, got %v", res.Files)
	}
}

func TestLoadFromPath_OverridesAndExplain(t *testing.T) {
	data := strings.Join([]string{
		"dock_size: 64",
		"dock_mag: 1.5",
		"default_window:",
		"  width: 500",
		"viewport:",
		"  width: 1920",
		"  height: 1080",
		"surface: FIXED",
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.DockSize != 64 || cfg.DockMag != 1.5 {
		t.Fatalf("unexpected dock settings %v/%v", cfg.DockSize, cfg.DockMag)
	}
	if cfg.DefaultWindow.Width != 500 || cfg.DefaultWindow.Height != 400 {
		t.Fatalf("expected partial default_window merge, got %+v", cfg.DefaultWindow)
	}
	if cfg.Surface != SurfaceFixed {
		t.Fatalf("expected surface fixed, got %q", cfg.Surface)
	}
	vp := cfg.FixedViewport()
	if vp.Width != 1920 || vp.DockSize != 64 || vp.IsMobile() {
		t.Fatalf("unexpected fixed viewport %+v", vp)
	}

	val, src, err := Explain(res, "dock_size")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != float64(64) {
		t.Fatalf("expected 64, got %#v", val)
	}
	if src.Kind != SourceFile || src.Line != 1 {
		t.Fatalf("expected file source on line 1, got %+v", src)
	}

	_, src, err = Explain(res, "dock_influence")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if src.Kind != SourceDefault {
		t.Fatalf("expected default source, got %+v", src)
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "unknown_key: 1\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown_key") && !strings.Contains(err.Error(), "field") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_ValidationErrorHasSourceContext(t *testing.T) {
	data := strings.Join([]string{
		"dock_size: 50",
		"dock_mag: 0.5",
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Path != "dock_mag" || verr.Source.Line != 2 {
		t.Fatalf("unexpected validation error %+v", verr)
	}
	if !strings.Contains(err.Error(), path+":2:") {
		t.Fatalf("expected file:line prefix, got %v", err)
	}
}

func TestLoadFromPath_AppsReplaceRegistry(t *testing.T) {
	data := `
apps:
  - id: calc
    title: Calculator
    desktop: true
    width: 300
    aspect_ratio: 0.75
  - id: docs
    link: https://example.com
`
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Config.Apps) != 2 {
		t.Fatalf("expected 2 apps, got %d", len(res.Config.Apps))
	}
	docs, _ := res.Config.App("docs")
	if docs.Title != "docs" {
		t.Fatalf("expected title to default to id, got %q", docs.Title)
	}

	val, src, err := Explain(res, "apps.calc.aspect_ratio")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != 0.75 {
		t.Fatalf("expected 0.75, got %#v", val)
	}
	if src.Kind != SourceFile || src.Line != 7 {
		t.Fatalf("expected source on line 7, got %+v", src)
	}
}

func TestLoadFromPath_DuplicateAppID(t *testing.T) {
	data := `
apps:
  - id: calc
    desktop: true
  - id: calc
    desktop: true
`
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	_, err := LoadFromPath(path)
	if err == nil || !strings.Contains(err.Error(), "apps.1.id") {
		t.Fatalf("expected duplicate id error at apps.1.id, got %v", err)
	}
	if !strings.Contains(err.Error(), path+":5:") {
		t.Fatalf("expected source context for the duplicate, got %v", err)
	}
}

func TestLoadFromPath_IncludeDirectoryOrderAndMainOverrides(t *testing.T) {
	dir := t.TempDir()

	// config.d loaded first, in sorted order.
	configD := filepath.Join(dir, "config.d")
	if err := os.MkdirAll(configD, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeConfig(t, configD, "10-base.yaml", "dock_size: 40\ndock_mag: 3\n")
	writeConfig(t, configD, "20-override.yaml", "dock_size: 44\n")

	main := strings.Join([]string{
		"include:",
		"  - config.d",
		"dock_size: 48",
		"",
	}, "\n")
	path := writeConfig(t, dir, "config.yaml", main)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.DockSize != 48 {
		t.Fatalf("expected dock_size 48, got %v", res.Config.DockSize)
	}
	if res.Config.DockMag != 3 {
		t.Fatalf("expected dock_mag from include, got %v", res.Config.DockMag)
	}
	if len(res.Files) != 3 {
		t.Fatalf("expected 3 files, got %v", res.Files)
	}
}

func TestLoadFromPath_IncludeMissingPathHasContext(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "include:\n  - missing.yaml\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "include") || !strings.Contains(err.Error(), "missing.yaml") {
		t.Fatalf("expected include error, got %v", err)
	}
	if !strings.Contains(err.Error(), path+":") {
		t.Fatalf("expected error to include file:line:col prefix, got %v", err)
	}
}

func TestLoadFromPath_IncludeCycleDetection(t *testing.T) {
	dir := t.TempDir()
	a := writeConfig(t, dir, "a.yaml", "include: b.yaml\n")
	writeConfig(t, dir, "b.yaml", "include: a.yaml\n")

	_, err := LoadFromPath(a)
	if err == nil {
		t.Fatalf("expected cycle error")
	}
	if !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"dock size", func(c *Config) { c.DockSize = 0 }, "dock_size"},
		{"influence", func(c *Config) { c.DockInfluence = -1 }, "dock_influence"},
		{"margin", func(c *Config) { c.MinMarginX = -1 }, "min_margin_x"},
		{"surface", func(c *Config) { c.Surface = "wayland" }, "surface"},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"default min", func(c *Config) { c.DefaultWindow.MinHeight = 0 }, "default_window.min_height"},
		{"no apps", func(c *Config) { c.Apps = nil }, "apps"},
		{"empty id", func(c *Config) { c.Apps = []AppConfig{{ID: " "}} }, "apps.0.id"},
		{"show link", func(c *Config) { c.Apps = []AppConfig{{ID: "x", Show: true}} }, "apps.0.show"},
		{"hotkey clash", func(c *Config) { c.CloseHotkey = c.LaunchpadHotkey }, "close_hotkey"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("expected path %q, got %q", tt.path, verr.Path)
			}
		})
	}
}

func TestSaveTo_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.DockSize = 72

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load saved: %v", err)
	}
	if res.Config.DockSize != 72 || len(res.Config.Apps) != len(cfg.Apps) {
		t.Fatalf("unexpected reloaded config %+v", res.Config)
	}
}

func TestSaveTo_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.DockMag = 0
	if err := cfg.SaveTo(path); err == nil {
		t.Fatalf("expected invalid config to be rejected")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no file to be written")
	}
}

func TestDefaultConfigPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if path != "/tmp/xdg/deskwm/config.yaml" {
		t.Fatalf("unexpected path %q", path)
	}
}

func TestGetLoggingConfig_Defaults(t *testing.T) {
	t.Setenv("HOME", "/home/test")
	cfg := DefaultConfig()
	lc := cfg.GetLoggingConfig()
	if lc.MaxSizeMB != 10 || lc.MaxFiles != 3 || lc.Level != "info" {
		t.Fatalf("unexpected logging defaults %+v", lc)
	}
	if !strings.HasSuffix(lc.File, filepath.Join("deskwm", "actions.log")) {
		t.Fatalf("unexpected log file %q", lc.File)
	}
}

func TestLoadFromPath_HotkeyDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("close_hotkey: \"\"\nmaximize_hotkey: \" Mod4-m \"\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.CloseHotkey != "" {
		t.Fatalf("expected close hotkey disabled, got %q", res.Config.CloseHotkey)
	}
	if res.Config.MaximizeHotkey != "Mod4-m" {
		t.Fatalf("expected trimmed maximize hotkey, got %q", res.Config.MaximizeHotkey)
	}
	if res.Config.LaunchpadHotkey != DefaultConfig().LaunchpadHotkey {
		t.Fatalf("expected default launchpad hotkey, got %q", res.Config.LaunchpadHotkey)
	}
}
