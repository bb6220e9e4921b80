package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/ipc"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemonCommand(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "command":
		os.Exit(runAction(os.Args[2:]))
	case "workspace":
		os.Exit(runWorkspaceChange("workspace", os.Args[2:]))
	case "move":
		os.Exit(runWorkspaceChange("move", os.Args[2:]))
	case "enable", "disable", "toggle":
		os.Exit(runEnable(os.Args[1], os.Args[2:]))
	case "layout":
		os.Exit(runLayout(os.Args[2:]))
	case "monitors":
		os.Exit(runMonitors(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "palette":
		os.Exit(runPalette(os.Args[2:]))
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
	fmt.Fprintln(w, "Usage: tilewm <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the tilewm daemon (foreground)")
	fmt.Fprintln(w, "  status              Show workspaces and their windows")
	fmt.Fprintln(w, "  monitors            Show monitors and the workspace each one shows")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  command <action>    Run an action on the focused workspace")
	fmt.Fprintln(w, "  workspace <name>    Show a workspace on the focused monitor")
	fmt.Fprintln(w, "  move <name>         Move the focused window to a workspace")
	fmt.Fprintln(w, "  enable | disable    Turn tiling on or off")
	fmt.Fprintln(w, "  toggle              Flip tiling on/off")
	fmt.Fprintln(w, "  layout list         List layouts and the cycle order")
	fmt.Fprintln(w, "  reload              Reload the daemon's configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "  config path         Print the config file location")
	fmt.Fprintln(w, "  config init         Create a configuration interactively")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  palette             Open command palette")
	fmt.Fprintln(w, "  tui                 Open interactive dashboard")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'tilewm <command> --help' for command-specific options.")
}

// newFlagSet returns a flag set that prints usage lines to stderr.
func newFlagSet(name string, usage ...string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		for _, line := range usage {
			fmt.Fprintln(os.Stderr, line)
		}
		hasFlags := false
		fs.VisitAll(func(*flag.Flag) { hasFlags = true })
		if hasFlags {
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Flags:")
			fs.PrintDefaults()
		}
	}
	return fs
}

// parseFlags parses args and returns an exit code when the command should stop.
func parseFlags(fs *flag.FlagSet, args []string, wantArgs int) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0, false
		}
		return 2, false
	}
	if wantArgs >= 0 && fs.NArg() != wantArgs {
		if wantArgs == 0 {
			fmt.Fprintf(os.Stderr, "%s takes no arguments\n", fs.Name())
		} else {
			fmt.Fprintf(os.Stderr, "%s requires %d argument(s)\n", fs.Name(), wantArgs)
		}
		fs.Usage()
		return 2, false
	}
	return 0, true
}

func configPathFlag(fs *flag.FlagSet) *string {
	return fs.String("path", "", "Config file path (default: ~/.config/tilewm/config.yaml)")
}

func resolveConfigPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return config.DefaultConfigPath()
}

func fail(err error) int {
	fmt.Fprintln(os.Stderr, err)
	return 1
}

func printJSON(v any) int {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fail(err)
	}
	return 0
}

func runDaemonCommand(args []string) int {
	fs := newFlagSet("daemon", "Usage: tilewm daemon [--path PATH]", "", "Run the tiling daemon in the foreground.")
	path := configPathFlag(fs)
	if code, ok := parseFlags(fs, args, 0); !ok {
		return code
	}
	resolved, err := resolveConfigPath(*path)
	if err != nil {
		return fail(err)
	}
	runDaemon(resolved)
	return 0
}

func runStatus(args []string) int {
	fs := newFlagSet("status", "Usage: tilewm status [--json]", "", "Show daemon status via IPC.")
	jsonOut := fs.Bool("json", false, "Output status as JSON")
	if code, ok := parseFlags(fs, args, 0); !ok {
		return code
	}

	status, err := ipc.NewClient().GetStatus()
	if err != nil {
		return fail(err)
	}
	if *jsonOut {
		return printJSON(status)
	}
	printStatus(os.Stdout, status, stdoutIsTerminal())
	return 0
}

func runAction(args []string) int {
	fs := newFlagSet("command", "Usage: tilewm command <action>", "",
		"Run an action on the focused workspace. Actions:",
		"  "+strings.Join(config.ActionNames(), ", "),
		"  workspace:<name>, move:<name>")
	if code, ok := parseFlags(fs, args, 1); !ok {
		return code
	}
	if err := ipc.NewClient().Command(fs.Arg(0)); err != nil {
		return fail(err)
	}
	return 0
}

func runWorkspaceChange(name string, args []string) int {
	usage := "Usage: tilewm workspace <name>"
	desc := "Show a workspace on the focused monitor."
	if name == "move" {
		usage = "Usage: tilewm move <name>"
		desc = "Move the focused window to a workspace."
	}
	fs := newFlagSet(name, usage, "", desc)
	if code, ok := parseFlags(fs, args, 1); !ok {
		return code
	}

	client := ipc.NewClient()
	var err error
	if name == "move" {
		err = client.MoveToWorkspace(fs.Arg(0))
	} else {
		err = client.SwitchWorkspace(fs.Arg(0))
	}
	if err != nil {
		return fail(err)
	}
	return 0
}

func runEnable(name string, args []string) int {
	fs := newFlagSet(name, "Usage: tilewm "+name, "", "Change whether the daemon tiles windows.")
	if code, ok := parseFlags(fs, args, 0); !ok {
		return code
	}

	client := ipc.NewClient()
	var (
		enabled bool
		err     error
	)
	switch name {
	case "enable":
		enabled, err = client.SetEnabled(true)
	case "disable":
		enabled, err = client.SetEnabled(false)
	default:
		enabled, err = client.ToggleEnabled()
	}
	if err != nil {
		return fail(err)
	}
	fmt.Printf("tiling: %s\n", onOff(enabled))
	return 0
}

func runLayout(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage: tilewm layout list [--json]")
		if len(args) == 0 {
			return 2
		}
		return 0
	}
	if args[0] != "list" {
		fmt.Fprintf(os.Stderr, "Unknown layout subcommand: %s\n", args[0])
		return 2
	}

	fs := newFlagSet("list", "Usage: tilewm layout list [--json]", "",
		"List registered layouts, the configured cycle order and the focused workspace's layout.")
	jsonOut := fs.Bool("json", false, "Output as JSON")
	if code, ok := parseFlags(fs, args[1:], 0); !ok {
		return code
	}

	data, err := ipc.NewClient().ListLayouts()
	if err != nil {
		return fail(err)
	}
	if *jsonOut {
		return printJSON(data)
	}
	fmt.Printf("active_layout: %s\n", data.ActiveLayout)
	fmt.Printf("cycle:         %s\n", strings.Join(data.Cycle, " → "))
	for _, name := range data.Registered {
		fmt.Printf("- %s\n", name)
	}
	return 0
}

func runMonitors(args []string) int {
	fs := newFlagSet("monitors", "Usage: tilewm monitors [--json]")
	jsonOut := fs.Bool("json", false, "Output as JSON")
	if code, ok := parseFlags(fs, args, 0); !ok {
		return code
	}

	data, err := ipc.NewClient().GetMonitors()
	if err != nil {
		return fail(err)
	}
	if *jsonOut {
		return printJSON(data)
	}
	for _, m := range data.Monitors {
		ws := m.Workspace
		if ws == "" {
			ws = "-"
		}
		fmt.Printf("%d  %-10s %dx%d+%d+%d  %s\n", m.ID, m.Name, m.Width, m.Height, m.X, m.Y, ws)
	}
	return 0
}

func runReload(args []string) int {
	fs := newFlagSet("reload", "Usage: tilewm reload", "", "Ask the daemon to reload its configuration.")
	if code, ok := parseFlags(fs, args, 0); !ok {
		return code
	}
	if err := ipc.NewClient().Reload(); err != nil {
		return fail(err)
	}
	fmt.Println("config reloaded")
	return 0
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
