package main

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/1broseidon/deskwm/internal/config"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		want   int
		ok     bool
		code   int
		jsonOn bool
	}{
		{name: "exact", args: []string{"calc"}, want: 1, ok: true},
		{name: "flag then arg", args: []string{"--json", "calc"}, want: 1, ok: true, jsonOn: true},
		{name: "missing", args: nil, want: 1, code: 2},
		{name: "extra", args: []string{"a", "b"}, want: 1, code: 2},
		{name: "help", args: []string{"-h"}, want: 1, code: 0},
		{name: "bad flag", args: []string{"--nope"}, want: 0, code: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFlagSet("test", "Usage: test")
			fs.SetOutput(io.Discard)
			jsonOut := fs.Bool("json", false, "")
			code, ok := parseArgs(fs, tt.args, tt.want)
			if ok != tt.ok || (!ok && code != tt.code) {
				t.Fatalf("parseArgs(%v): expected ok=%v code=%d, got ok=%v code=%d", tt.args, tt.ok, tt.code, ok, code)
			}
			if ok && *jsonOut != tt.jsonOn {
				t.Fatalf("expected json=%v", tt.jsonOn)
			}
		})
	}
}

func TestParseFloats(t *testing.T) {
	fs := newFlagSet("test")
	fs.SetOutput(io.Discard)

	got, ok := parseFloats(fs, []string{"10", "-2.5"})
	if !ok || got[0] != 10 || got[1] != -2.5 {
		t.Fatalf("unexpected result %v %v", got, ok)
	}
	if _, ok := parseFloats(fs, []string{"ten"}); ok {
		t.Fatalf("expected invalid number to fail")
	}
}

func TestFormatSource(t *testing.T) {
	tests := []struct {
		src  config.Source
		want string
	}{
		{config.Source{Kind: config.SourceFile, File: "/c.yaml", Line: 3, Column: 5}, "file:/c.yaml:3:5"},
		{config.Source{Kind: config.SourceFile, File: "/c.yaml"}, "file:/c.yaml"},
		{config.Source{Kind: config.SourceDefault, Name: "defaults"}, "default:defaults"},
		{config.Source{Kind: config.SourceDefault}, "default"},
	}
	for _, tt := range tests {
		if got := formatSource(tt.src); got != tt.want {
			t.Fatalf("formatSource(%+v): expected %q, got %q", tt.src, tt.want, got)
		}
	}
}

func TestOpenSurface_Fixed(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Surface = config.SurfaceFixed

	conn, surface, err := openSurface(cfg, log.New(io.Discard))
	if err != nil || conn != nil || surface != config.SurfaceFixed {
		t.Fatalf("expected fixed surface without a connection, got %v %q %v", conn, surface, err)
	}
}

func TestOpenSurface_AutoFallsBack(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Surface = config.SurfaceAuto
	cfg.Display = ":4242"

	conn, surface, err := openSurface(cfg, log.New(io.Discard))
	if conn != nil {
		conn.Close()
		t.Skip("an X server answered on :4242")
	}
	if err != nil || surface != config.SurfaceFixed {
		t.Fatalf("expected fallback to fixed, got %q %v", surface, err)
	}

	cfg.Surface = config.SurfaceX11
	if _, _, err := openSurface(cfg, log.New(io.Discard)); err == nil {
		t.Fatalf("expected x11 surface to fail without a display")
	}
}

func TestWritePIDFile(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	path, err := writePIDFile()
	if err != nil {
		t.Fatalf("write pid file: %v", err)
	}
	if filepath.Base(path) != "deskwm.pid" {
		t.Fatalf("unexpected pid path %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read pid file: %v", err)
	}
	if strings.TrimSpace(string(data)) != strconv.Itoa(os.Getpid()) {
		t.Fatalf("unexpected pid file contents %q", data)
	}
}

func TestNewEventLog_Disabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Logging.File = filepath.Join(t.TempDir(), "actions.log")

	l, err := newEventLog(cfg)
	if err != nil {
		t.Fatalf("new event log: %v", err)
	}
	defer l.Close()
	if _, err := os.Stat(cfg.Logging.File); !os.IsNotExist(err) {
		t.Fatalf("expected no file for a disabled log, got %v", err)
	}
}
