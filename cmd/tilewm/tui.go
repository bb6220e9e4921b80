package main

import (
	"fmt"
	"os"

	"github.com/1broseidon/tilewm/internal/ipc"
	"github.com/1broseidon/tilewm/internal/tui"
)

func runTUI(args []string) int {
	fs := newFlagSet("tui", "Usage: tilewm tui", "",
		"Interactive dashboard for the running daemon.", "",
		"Keybindings:",
		"  ↑/↓, j/k  Select workspace",
		"  Enter     Show selected workspace",
		"  n / p     Next / previous layout",
		"  t         Toggle tiling",
		"  r         Reload config",
		"  g         Refresh now",
		"  q         Quit")
	if code, ok := parseFlags(fs, args, 0); !ok {
		return code
	}
	if err := tui.Run(ipc.NewClient()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
