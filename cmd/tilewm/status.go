package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/1broseidon/tilewm/internal/ipc"
)

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// terminalWidth returns the width of stdout, or 0 when it is not a terminal.
func terminalWidth() int {
	if !stdoutIsTerminal() {
		return 0
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return w
}

// printStatus writes one block per workspace. On a terminal, window lines are cut
// to the terminal width.
func printStatus(w io.Writer, status *ipc.StatusData, tty bool) {
	width := 0
	if tty {
		width = terminalWidth()
	}

	fmt.Fprintf(w, "tiling:    %s\n", onOff(status.Enabled))
	fmt.Fprintf(w, "focused:   %s\n", status.FocusedWorkspace)
	fmt.Fprintf(w, "uptime:    %ds\n", status.UptimeSeconds)

	for _, ws := range status.Workspaces {
		marker := " "
		if ws.Name == status.FocusedWorkspace {
			marker = "*"
		}
		monitor := ws.Monitor
		if monitor == "" {
			monitor = "hidden"
		}
		fmt.Fprintf(w, "\n%s %s  [%s] %s\n", marker, ws.Name, ws.Layout, monitor)

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, win := range ws.Windows {
			flags := ""
			if win.Focused {
				flags += "F"
			}
			if !win.Tiled {
				flags += "~"
			}
			line := fmt.Sprintf("    0x%08x\t%s\t%s\t%s", win.Handle, flags, win.Class, win.Title)
			if width > 0 && len(line) > width {
				line = line[:width]
			}
			fmt.Fprintln(tw, line)
		}
		tw.Flush()
	}
}
