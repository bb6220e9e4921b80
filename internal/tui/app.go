package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/tilewm/internal/ipc"
)

// workspaceItem implements list.Item for the workspace sidebar.
type workspaceItem struct {
	ws ipc.WorkspaceStatus
}

func (i workspaceItem) Title() string {
	prefix := "  "
	if i.ws.Focused {
		prefix = "* "
	}
	return prefix + i.ws.Name
}

func (i workspaceItem) Description() string {
	where := i.ws.Monitor
	if where == "" {
		where = "hidden"
	}
	return fmt.Sprintf("%s • %s • %d windows", i.ws.Layout, where, len(i.ws.Windows))
}

func (i workspaceItem) FilterValue() string { return i.ws.Name }

// statusMsg carries the result of a GET_STATUS round trip.
type statusMsg struct {
	status *ipc.StatusData
	err    error
}

// tickMsg triggers the next status poll.
type tickMsg time.Time

// actionMsg reports the outcome of a user action.
type actionMsg struct {
	text string
	err  error
}

// model is the root bubbletea model for the dashboard.
type model struct {
	daemon  Daemon
	refresh time.Duration

	list   list.Model
	status *ipc.StatusData
	err    error

	// Last action feedback shown in the status bar.
	notice string

	width  int
	height int
}

func newModel(d Daemon, refresh time.Duration) model {
	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Workspaces"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return model{
		daemon:  d,
		refresh: refresh,
		list:    l,
	}
}

func (m model) fetchStatus() tea.Cmd {
	d := m.daemon
	return func() tea.Msg {
		status, err := d.GetStatus()
		return statusMsg{status: status, err: err}
	}
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// run performs fn off the update loop and reports text on success.
func (m model) run(text string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{text: text}
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tea.Batch(m.fetchStatus(), m.tick())
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.sidebarWidth(), m.contentHeight())
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.fetchStatus(), m.tick())

	case statusMsg:
		m.applyStatus(msg.status, msg.err)
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.notice = "error: " + msg.err.Error()
		} else {
			m.notice = msg.text
		}
		return m, m.fetchStatus()

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	d := m.daemon
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit, true
	case "enter":
		name := m.selectedName()
		if name == "" {
			return nil, true
		}
		return m.run("switched to "+name, func() error { return d.SwitchWorkspace(name) }), true
	case "n":
		return m.run("next layout", func() error { return d.Command("next_layout") }), true
	case "p":
		return m.run("previous layout", func() error { return d.Command("previous_layout") }), true
	case "t":
		return func() tea.Msg {
			enabled, err := d.ToggleEnabled()
			if err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{text: "tiling " + onOff(enabled)}
		}, true
	case "r":
		return m.run("config reloaded", d.Reload), true
	case "g":
		return m.fetchStatus(), true
	}
	return nil, false
}

// applyStatus replaces the workspace list, keeping the selection on the same name.
func (m *model) applyStatus(status *ipc.StatusData, err error) {
	if err != nil {
		m.err = err
		m.status = nil
		m.list.SetItems(nil)
		return
	}
	m.err = nil
	m.status = status

	selected := m.selectedName()
	items := make([]list.Item, 0, len(status.Workspaces))
	index := -1
	for i, ws := range status.Workspaces {
		items = append(items, workspaceItem{ws: ws})
		if ws.Name == selected {
			index = i
		}
		if selected == "" && ws.Name == status.FocusedWorkspace {
			index = i
		}
	}
	m.list.SetItems(items)
	if index >= 0 {
		m.list.Select(index)
	}
}

func (m model) selectedName() string {
	if item, ok := m.list.SelectedItem().(workspaceItem); ok {
		return item.ws.Name
	}
	return ""
}

func (m model) selectedWorkspace() (ipc.WorkspaceStatus, bool) {
	item, ok := m.list.SelectedItem().(workspaceItem)
	return item.ws, ok
}

func (m model) sidebarWidth() int {
	w := m.width / 3
	if w < 24 {
		w = 24
	}
	return w
}

// contentHeight is the height left between the status and help bars.
func (m model) contentHeight() int {
	h := m.height - 2
	if h < 1 {
		h = 1
	}
	return h
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := renderStatusBar(m.status, m.err, m.notice, m.width)
	helpBar := renderHelpBar(m.width)

	var content string
	if m.err != nil {
		content = renderPlaceholder("daemon not running", m.width, m.contentHeight())
	} else {
		sidebar := lipgloss.NewStyle().Width(m.sidebarWidth()).Render(m.list.View())
		detailWidth := m.width - m.sidebarWidth() - 2
		detail := ""
		if ws, ok := m.selectedWorkspace(); ok {
			detail = renderWorkspaceDetail(ws, detailWidth, m.contentHeight())
		}
		content = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", detail)
	}

	return lipgloss.JoinVertical(lipgloss.Left, statusBar, content, helpBar)
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
