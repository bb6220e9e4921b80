package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/ipc"
	"github.com/1broseidon/tilewm/internal/tui"
)

func printConfigUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  tilewm config validate [--path PATH]")
	fmt.Fprintln(os.Stderr, "  tilewm config print [--path PATH] [--defaults]")
	fmt.Fprintln(os.Stderr, "  tilewm config explain [--path PATH] <yaml.path>")
	fmt.Fprintln(os.Stderr, "  tilewm config path")
	fmt.Fprintln(os.Stderr, "  tilewm config init [--path PATH] [--yes]")
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printConfigUsage()
		return 2
	}

	switch args[0] {
	case "validate":
		fs := newFlagSet("validate", "Usage: tilewm config validate [--path PATH]")
		path := configPathFlag(fs)
		if code, ok := parseFlags(fs, args[1:], 0); !ok {
			return code
		}
		res, err := loadConfig(*path)
		if err != nil {
			return fail(err)
		}
		if res.File == "" {
			fmt.Println("config: ok (no file, using defaults)")
			return 0
		}
		fmt.Printf("config: ok (%s)\n", res.File)
		return 0

	case "print":
		fs := newFlagSet("print", "Usage: tilewm config print [--path PATH] [--defaults]")
		path := configPathFlag(fs)
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if code, ok := parseFlags(fs, args[1:], 0); !ok {
			return code
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			res, err := loadConfig(*path)
			if err != nil {
				return fail(err)
			}
			cfg = res.Config
		}
		data, err := cfg.Marshal()
		if err != nil {
			return fail(err)
		}
		fmt.Print(string(data))
		return 0

	case "explain":
		fs := newFlagSet("explain", "Usage: tilewm config explain [--path PATH] <yaml.path>")
		path := configPathFlag(fs)
		if code, ok := parseFlags(fs, args[1:], 1); !ok {
			return code
		}
		queryPath := fs.Arg(0)

		res, err := loadConfig(*path)
		if err != nil {
			return fail(err)
		}
		value, src, err := config.Explain(res, queryPath)
		if err != nil {
			return fail(err)
		}
		out, err := yaml.Marshal(value)
		if err != nil {
			return fail(err)
		}

		fmt.Printf("path: %s\n", queryPath)
		fmt.Printf("source: %s\n", formatSource(src))
		fmt.Printf("value:\n%s", string(out))
		return 0

	case "path":
		path, err := config.DefaultConfigPath()
		if err != nil {
			return fail(err)
		}
		fmt.Println(path)
		return 0

	case "init":
		return runConfigInit(args[1:])

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func runConfigInit(args []string) int {
	fs := newFlagSet("init", "Usage: tilewm config init [--path PATH] [--yes]", "",
		"Walk through the main settings and write them to the config file.",
		"An existing file is used as the starting point.")
	path := configPathFlag(fs)
	yes := fs.Bool("yes", false, "Write without asking for confirmation")
	if code, ok := parseFlags(fs, args, 0); !ok {
		return code
	}
	if !stdoutIsTerminal() {
		return fail(fmt.Errorf("config init requires an interactive terminal"))
	}

	target, err := resolveConfigPath(*path)
	if err != nil {
		return fail(err)
	}
	res, err := config.LoadFromPath(target)
	if err != nil {
		return fail(err)
	}

	updated, err := tui.RunInitWizard(res.Config)
	if errors.Is(err, tui.ErrAborted) {
		return 0
	}
	if err != nil {
		return fail(err)
	}

	if !*yes {
		ok, err := tui.ConfirmWrite(res.Config, updated)
		if errors.Is(err, tui.ErrAborted) || (err == nil && !ok) {
			fmt.Println("config: not written")
			return 0
		}
		if err != nil {
			return fail(err)
		}
	}

	if err := updated.SaveTo(target); err != nil {
		return fail(err)
	}
	fmt.Printf("config: written to %s\n", target)

	// A running daemon picks the file up through its watcher; reload explicitly in
	// case the watcher is disabled.
	if err := ipc.NewClient().Reload(); err == nil {
		fmt.Println("daemon: reloaded")
	}
	return 0
}

func loadConfig(path string) (*config.LoadResult, error) {
	resolved, err := resolveConfigPath(path)
	if err != nil {
		return nil, err
	}
	return config.LoadFromPath(resolved)
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	case config.SourceDefault:
		return "default"
	default:
		return string(src.Kind)
	}
}
