package tui

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/tilewm/internal/ipc"
)

// Daemon is the part of the IPC client the dashboard drives.
type Daemon interface {
	GetStatus() (*ipc.StatusData, error)
	ListLayouts() (*ipc.LayoutsData, error)
	Command(action string) error
	SwitchWorkspace(name string) error
	ToggleEnabled() (bool, error)
	Reload() error
}

var _ Daemon = (*ipc.Client)(nil)

const defaultRefresh = time.Second

// Run starts the dashboard and blocks until the user quits.
func Run(d Daemon) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	p := tea.NewProgram(newModel(d, defaultRefresh), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
