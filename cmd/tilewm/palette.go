package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/1broseidon/tilewm/internal/ipc"
	"github.com/1broseidon/tilewm/internal/palette"
)

func runPalette(args []string) int {
	fs := newFlagSet("palette", "Usage: tilewm palette [--path PATH] [--backend NAME]", "",
		"Show a command palette for workspace and layout actions.",
		"Backends: rofi, dmenu (palette_backend in the config, default: auto).")
	path := configPathFlag(fs)
	backendName := fs.String("backend", "", "Override the configured palette backend")
	if code, ok := parseFlags(fs, args, 0); !ok {
		return code
	}

	res, err := loadConfig(*path)
	if err != nil {
		return fail(err)
	}
	name := res.Config.PaletteBackend
	if *backendName != "" {
		name = *backendName
	}
	backend, err := palette.NewBackend(name)
	if err != nil {
		return fail(err)
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		return fail(err)
	}

	menu := palette.NewMenu(backend, "tilewm", palette.WorkspaceMenu(status))
	menu.SetMessage(contextMessage(status))

	action, err := menu.Show()
	if err != nil {
		if errors.Is(err, palette.ErrCancelled) {
			return 0
		}
		return fail(err)
	}
	if err := client.Command(action); err != nil {
		return fail(err)
	}
	return 0
}

// contextMessage summarises the focused workspace for the launcher's message bar.
func contextMessage(status *ipc.StatusData) string {
	parts := []string{"tiling " + onOff(status.Enabled)}
	for _, ws := range status.Workspaces {
		if ws.Name != status.FocusedWorkspace {
			continue
		}
		parts = append(parts, ws.Name, ws.Layout, fmt.Sprintf("%d windows", len(ws.Windows)))
	}
	return strings.Join(parts, " • ")
}
