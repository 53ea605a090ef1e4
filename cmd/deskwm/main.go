package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/1broseidon/deskwm/internal/ipc"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "windows":
		os.Exit(runWindows(os.Args[2:]))
	case "open", "close", "focus", "minimize", "double-click":
		os.Exit(runWindowCommand(os.Args[1], os.Args[2:]))
	case "maximize":
		os.Exit(runMaximize(os.Args[2:]))
	case "move":
		os.Exit(runMove(os.Args[2:]))
	case "resize":
		os.Exit(runResize(os.Args[2:]))
	case "activate":
		os.Exit(runActivate(os.Args[2:]))
	case "viewport":
		os.Exit(runViewport(os.Args[2:]))
	case "pointer":
		os.Exit(runPointer(os.Args[2:]))
	case "dock":
		os.Exit(runDock(os.Args[2:]))
	case "launchpad":
		os.Exit(runLaunchpad(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: deskwm <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the desktop daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  reload              Reload configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  windows             List windows in stacking order")
	fmt.Fprintln(w, "  open <id>           Open (or raise) a desktop app")
	fmt.Fprintln(w, "  close <id>          Close a window")
	fmt.Fprintln(w, "  focus <id>          Raise a window")
	fmt.Fprintln(w, "  minimize <id>       Minimize a window")
	fmt.Fprintln(w, "  maximize <id>       Toggle or set maximize")
	fmt.Fprintln(w, "  double-click <id>   Title-bar double click")
	fmt.Fprintln(w, "  move <id> X Y       Commit a title-bar drag")
	fmt.Fprintln(w, "  resize <id> X Y W H Commit a resize")
	fmt.Fprintln(w, "  activate <id> <control>  Press close|minimize|maximize")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  viewport W H        Report a new surface size")
	fmt.Fprintln(w, "  pointer [X]         Report the dock pointer (no X: pointer left)")
	fmt.Fprintln(w, "  dock get|set|click  Inspect, tune or click the dock")
	fmt.Fprintln(w, "  launchpad           Toggle, show or hide the launchpad")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Run the desktop in this terminal")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'deskwm <command> --help' for command-specific options.")
}

// newFlagSet builds a flag set whose usage prints the given lines.
func newFlagSet(name string, usage ...string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		for _, line := range usage {
			fmt.Fprintln(os.Stderr, line)
		}
		if hasFlags(fs) {
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Flags:")
			fs.PrintDefaults()
		}
	}
	return fs
}

func hasFlags(fs *flag.FlagSet) bool {
	n := 0
	fs.VisitAll(func(*flag.Flag) { n++ })
	return n > 0
}

// parseArgs parses fs and checks the positional count. The int result is
// the exit code to use when ok is false.
func parseArgs(fs *flag.FlagSet, args []string, want int) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0, false
		}
		return 2, false
	}
	if fs.NArg() != want {
		fmt.Fprintf(os.Stderr, "%s takes %d argument(s)\n\n", fs.Name(), want)
		fs.Usage()
		return 2, false
	}
	return 0, true
}

func parseFloats(fs *flag.FlagSet, args []string) ([]float64, bool) {
	out := make([]float64, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid number %q\n\n", a)
			fs.Usage()
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

func printJSON(v interface{}) int {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// reportChanged prints the outcome of a state-changing command.
func reportChanged(changed bool, err error) int {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("changed: %v\n", changed)
	return 0
}

func runStatus(args []string) int {
	fs := newFlagSet("status", "Usage: deskwm status [--json]", "", "Show daemon status via IPC.")
	jsonOut := fs.Bool("json", false, "Output as JSON")
	if code, ok := parseArgs(fs, args, 0); !ok {
		return code
	}

	status, err := ipc.NewClient().GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *jsonOut {
		return printJSON(status)
	}
	vp := status.Desktop.Viewport
	fmt.Printf("daemon_running: %v\n", status.DaemonRunning)
	fmt.Printf("session_id:     %s\n", status.SessionID)
	fmt.Printf("surface:        %s\n", status.Surface)
	fmt.Printf("viewport:       %gx%g (%s)\n", vp.Width, vp.Height, vp.Policy)
	fmt.Printf("windows:        %d (%d visible)\n", status.Desktop.Windows, status.Desktop.Visible)
	fmt.Printf("focused:        %s\n", status.Desktop.Focused)
	fmt.Printf("launchpad:      %v\n", status.Desktop.Launchpad)
	fmt.Printf("dock_hidden:    %v\n", status.Desktop.DockHidden)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	return 0
}

func runReload(args []string) int {
	fs := newFlagSet("reload", "Usage: deskwm reload", "", "Ask the daemon to reload its configuration.")
	if code, ok := parseArgs(fs, args, 0); !ok {
		return code
	}
	if err := ipc.NewClient().Reload(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("config reloaded")
	return 0
}

func runWindows(args []string) int {
	fs := newFlagSet("windows", "Usage: deskwm windows [--json]", "", "List windows back to front.")
	jsonOut := fs.Bool("json", false, "Output full render state as JSON")
	if code, ok := parseArgs(fs, args, 0); !ok {
		return code
	}

	data, err := ipc.NewClient().ListWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *jsonOut {
		return printJSON(data.Windows)
	}
	for _, w := range data.Windows {
		b := w.Bounds
		fmt.Printf("%-12s %-10s z=%-3d %gx%g+%g+%g\n", w.ID, w.State, w.Z, b.Width, b.Height, b.X, b.Y)
	}
	return 0
}

func runWindowCommand(name string, args []string) int {
	fs := newFlagSet(name, fmt.Sprintf("Usage: deskwm %s <id>", name))
	if code, ok := parseArgs(fs, args, 1); !ok {
		return code
	}

	client := ipc.NewClient()
	id := fs.Arg(0)
	switch name {
	case "open":
		return reportChanged(client.Open(id))
	case "close":
		return reportChanged(client.Close(id))
	case "focus":
		return reportChanged(client.Focus(id))
	case "minimize":
		return reportChanged(client.Minimize(id))
	default:
		return reportChanged(client.DoubleClick(id))
	}
}

func runMaximize(args []string) int {
	fs := newFlagSet("maximize",
		"Usage: deskwm maximize [--on|--off] <id>",
		"",
		"Toggle maximize, or force it on or off.")
	on := fs.Bool("on", false, "Maximize")
	off := fs.Bool("off", false, "Restore")
	if code, ok := parseArgs(fs, args, 1); !ok {
		return code
	}
	if *on && *off {
		fmt.Fprintln(os.Stderr, "--on and --off are mutually exclusive")
		return 2
	}

	var target *bool
	switch {
	case *on:
		target = boolPtr(true)
	case *off:
		target = boolPtr(false)
	}
	return reportChanged(ipc.NewClient().Maximize(fs.Arg(0), target))
}

func runMove(args []string) int {
	fs := newFlagSet("move", "Usage: deskwm move <id> X Y", "", "Commit a drag to the requested top-left corner.")
	if code, ok := parseArgs(fs, args, 3); !ok {
		return code
	}
	v, ok := parseFloats(fs, fs.Args()[1:])
	if !ok {
		return 2
	}
	return reportChanged(ipc.NewClient().DragStop(fs.Arg(0), v[0], v[1]))
}

func runResize(args []string) int {
	fs := newFlagSet("resize", "Usage: deskwm resize <id> X Y WIDTH HEIGHT", "", "Commit a resize to the requested rectangle.")
	if code, ok := parseArgs(fs, args, 5); !ok {
		return code
	}
	v, ok := parseFloats(fs, fs.Args()[1:])
	if !ok {
		return 2
	}
	return reportChanged(ipc.NewClient().ResizeStop(fs.Arg(0), v[0], v[1], v[2], v[3]))
}

func runActivate(args []string) int {
	fs := newFlagSet("activate",
		"Usage: deskwm activate [--touch] <id> <close|minimize|maximize>",
		"",
		"Press a title-bar control.")
	touch := fs.Bool("touch", false, "Report the press as a touch end")
	if code, ok := parseArgs(fs, args, 2); !ok {
		return code
	}
	modality := "mouse"
	if *touch {
		modality = "touch"
	}
	return reportChanged(ipc.NewClient().Activate(fs.Arg(0), fs.Arg(1), modality))
}

func runViewport(args []string) int {
	fs := newFlagSet("viewport", "Usage: deskwm viewport WIDTH HEIGHT", "", "Report a new surface size to the daemon.")
	if code, ok := parseArgs(fs, args, 2); !ok {
		return code
	}
	v, ok := parseFloats(fs, fs.Args())
	if !ok {
		return 2
	}
	vp, err := ipc.NewClient().SetViewport(v[0], v[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("viewport: %gx%g (%s)\n", vp.Width, vp.Height, vp.Policy)
	return 0
}

func runPointer(args []string) int {
	fs := newFlagSet("pointer",
		"Usage: deskwm pointer [X]",
		"",
		"Report the pointer x over the dock. Without X the pointer has left.")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return 2
	}

	var x *float64
	if fs.NArg() == 1 {
		v, ok := parseFloats(fs, fs.Args())
		if !ok {
			return 2
		}
		x = &v[0]
	}
	scales, err := ipc.NewClient().Pointer(x)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for i, s := range scales {
		fmt.Printf("%d: %g\n", i, s)
	}
	return 0
}

func printDockUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  deskwm dock get [--json]")
	fmt.Fprintln(w, "  deskwm dock set [--size N] [--mag N] [--influence N]")
	fmt.Fprintln(w, "  deskwm dock click <id>")
}

func runDock(args []string) int {
	if len(args) == 0 {
		printDockUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printDockUsage(os.Stdout)
		return 0
	}

	client := ipc.NewClient()

	switch args[0] {
	case "get":
		fs := newFlagSet("get", "Usage: deskwm dock get [--json]")
		jsonOut := fs.Bool("json", false, "Output as JSON")
		if code, ok := parseArgs(fs, args[1:], 0); !ok {
			return code
		}
		st, err := client.GetDock()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if *jsonOut {
			return printJSON(st)
		}
		fmt.Printf("hidden: %v\n", st.Hidden)
		for i, item := range st.Items {
			open := ""
			if item.IsOpen {
				open = " (open)"
			}
			scale := 0.0
			if i < len(st.Scales) {
				scale = st.Scales[i]
			}
			fmt.Printf("- %s%s scale=%g\n", item.ID, open, scale)
		}
		return 0

	case "set":
		fs := newFlagSet("set",
			"Usage: deskwm dock set [--size N] [--mag N] [--influence N]",
			"",
			"Update the shared dock settings. Unset flags keep the current value.")
		size := fs.Float64("size", 0, "Base icon size in pixels")
		mag := fs.Float64("mag", 0, "Peak magnification multiplier (>= 1)")
		influence := fs.Float64("influence", 0, "Falloff radius in multiples of the dock size")
		if code, ok := parseArgs(fs, args[1:], 0); !ok {
			return code
		}
		status, err := client.GetStatus()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		cur := status.Desktop.Dock
		if *size > 0 {
			cur.DockSize = *size
		}
		if *mag > 0 {
			cur.DockMag = *mag
		}
		if *influence > 0 {
			cur.Influence = *influence
		}
		st, err := client.SetDock(cur.DockSize, cur.DockMag, cur.Influence)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("dock items: %d\n", len(st.Items))
		return 0

	case "click":
		fs := newFlagSet("click", "Usage: deskwm dock click <id>", "", "Activate a dock item.")
		if code, ok := parseArgs(fs, args[1:], 1); !ok {
			return code
		}
		res, err := client.ActivateDock(fs.Arg(0))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("action:  %s\n", res.Action)
		if res.Link != "" {
			fmt.Printf("link:    %s\n", res.Link)
		}
		fmt.Printf("changed: %v\n", res.Changed)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown dock command: %s\n\n", args[0])
		printDockUsage(os.Stderr)
		return 2
	}
}

func runLaunchpad(args []string) int {
	fs := newFlagSet("launchpad", "Usage: deskwm launchpad [--show|--hide]", "", "Toggle the launchpad, or force it shown or hidden.")
	show := fs.Bool("show", false, "Show the launchpad")
	hide := fs.Bool("hide", false, "Hide the launchpad")
	if code, ok := parseArgs(fs, args, 0); !ok {
		return code
	}
	if *show && *hide {
		fmt.Fprintln(os.Stderr, "--show and --hide are mutually exclusive")
		return 2
	}

	var target *bool
	switch {
	case *show:
		target = boolPtr(true)
	case *hide:
		target = boolPtr(false)
	}
	res, err := ipc.NewClient().Launchpad(target)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("visible: %v\n", res.Visible)
	fmt.Printf("changed: %v\n", res.Changed)
	return 0
}

func boolPtr(v bool) *bool { return &v }
