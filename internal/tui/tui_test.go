package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/ipc"
)

type fakeDaemon struct {
	status    ipc.StatusData
	statusErr error
	switched  []string
	commands  []string
	enabled   bool
	reloads   int
}

func newFakeDaemon() *fakeDaemon {
	return &fakeDaemon{
		enabled: true,
		status: ipc.StatusData{
			Enabled:          true,
			FocusedWorkspace: "two",
			Workspaces: []ipc.WorkspaceStatus{
				{Name: "one", Layout: "tall"},
				{Name: "two", Monitor: "eDP-1", Layout: "grid", Focused: true, Windows: []ipc.WindowStatus{
					{Handle: 1, Title: "vim", Class: "Alacritty", Focused: true, Tiled: true},
					{Handle: 2, Title: "htop", Class: "Alacritty", Tiled: true},
				}},
				{Name: "three", Layout: "full"},
			},
		},
	}
}

func (f *fakeDaemon) GetStatus() (*ipc.StatusData, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	status := f.status
	return &status, nil
}

func (f *fakeDaemon) ListLayouts() (*ipc.LayoutsData, error) {
	return &ipc.LayoutsData{Registered: []string{"full", "grid", "tall", "wide"}}, nil
}

func (f *fakeDaemon) Command(action string) error {
	f.commands = append(f.commands, action)
	return nil
}

func (f *fakeDaemon) SwitchWorkspace(name string) error {
	if name == "three" {
		return errors.New("daemon error: no monitor")
	}
	f.switched = append(f.switched, name)
	return nil
}

func (f *fakeDaemon) ToggleEnabled() (bool, error) {
	f.enabled = !f.enabled
	return f.enabled, nil
}

func (f *fakeDaemon) Reload() error {
	f.reloads++
	return nil
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func loaded(t *testing.T, d *fakeDaemon) model {
	t.Helper()
	m := newModel(d, time.Second)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(t, m, m.fetchStatus()())
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestStatus_SelectsFocusedWorkspace(t *testing.T) {
	m := loaded(t, newFakeDaemon())
	if got := m.selectedName(); got != "two" {
		t.Fatalf("selected = %q, want two", got)
	}
	if len(m.list.Items()) != 3 {
		t.Fatalf("expected 3 items, got %d", len(m.list.Items()))
	}
}

func TestStatus_RefreshKeepsSelection(t *testing.T) {
	d := newFakeDaemon()
	m := loaded(t, d)
	m.list.Select(0)

	d.status.FocusedWorkspace = "three"
	m, _ = update(t, m, m.fetchStatus()())
	if got := m.selectedName(); got != "one" {
		t.Fatalf("selection moved to %q", got)
	}
}

func TestEnter_SwitchesToSelected(t *testing.T) {
	d := newFakeDaemon()
	m := loaded(t, d)
	m.list.Select(0)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected command")
	}
	msg, ok := cmd().(actionMsg)
	if !ok || msg.err != nil || msg.text != "switched to one" {
		t.Fatalf("unexpected result: %+v", msg)
	}
	if len(d.switched) != 1 || d.switched[0] != "one" {
		t.Fatalf("unexpected switches: %v", d.switched)
	}
}

func TestAction_ErrorShownInStatusBar(t *testing.T) {
	d := newFakeDaemon()
	m := loaded(t, d)
	m.list.Select(2)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, refresh := update(t, m, cmd())
	if !strings.HasPrefix(m.notice, "error: ") {
		t.Fatalf("expected error notice, got %q", m.notice)
	}
	if refresh == nil {
		t.Fatalf("expected a status refresh after an action")
	}
}

func TestKeys_LayoutToggleReload(t *testing.T) {
	d := newFakeDaemon()
	m := loaded(t, d)

	_, cmd := update(t, m, runes("n"))
	cmd()
	_, cmd = update(t, m, runes("p"))
	cmd()
	if strings.Join(d.commands, ",") != "next_layout,previous_layout" {
		t.Fatalf("unexpected commands: %v", d.commands)
	}

	_, cmd = update(t, m, runes("t"))
	if msg := cmd().(actionMsg); msg.text != "tiling off" {
		t.Fatalf("unexpected toggle result: %+v", msg)
	}

	_, cmd = update(t, m, runes("r"))
	cmd()
	if d.reloads != 1 {
		t.Fatalf("expected one reload, got %d", d.reloads)
	}
}

func TestQuit(t *testing.T) {
	m := loaded(t, newFakeDaemon())
	_, cmd := update(t, m, runes("q"))
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit")
	}
}

func TestView_DaemonDown(t *testing.T) {
	d := newFakeDaemon()
	d.statusErr = errors.New("failed to connect to daemon")
	m := loaded(t, d)

	if !strings.Contains(m.View(), "daemon not running") {
		t.Fatalf("expected daemon down message")
	}
	if len(m.list.Items()) != 0 {
		t.Fatalf("expected empty list")
	}
}

func TestView_ShowsWindowsOfSelected(t *testing.T) {
	m := loaded(t, newFakeDaemon())
	view := m.View()
	for _, want := range []string{"vim", "htop", "tiling:on", "focused:two"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestRenderLayoutPreview(t *testing.T) {
	lines := renderLayoutPreview("tall", 3, 30, 12)
	if len(lines) != 12 {
		t.Fatalf("expected 12 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "╔") {
		t.Fatalf("missing border: %q", lines[0])
	}
	joined := strings.Join(lines, "\n")
	for _, label := range []string{"1", "2", "3"} {
		if !strings.Contains(joined, label) {
			t.Fatalf("preview missing tile %s:\n%s", label, joined)
		}
	}

	// Unknown layouts still draw the frame.
	lines = renderLayoutPreview("spiral", 2, 20, 6)
	if strings.ContainsAny(strings.Join(lines, ""), "┌12") {
		t.Fatalf("unexpected tiles for unknown layout")
	}
}

func TestInitAnswers_Apply(t *testing.T) {
	base := config.DefaultConfig()
	answers := answersFrom(base)
	answers.Workspaces = " web, code ,, chat "
	answers.Layouts = []string{"grid", "tall"}
	answers.GapSize = "8"
	answers.ModKey = "Mod1"

	cfg, err := answers.Apply(base)
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if strings.Join(cfg.Workspaces, ",") != "web,code,chat" {
		t.Fatalf("unexpected workspaces: %v", cfg.Workspaces)
	}
	if cfg.GapSize != 8 || cfg.Layouts[0] != "grid" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Keybindings["Mod1-2"] != "workspace:code" || cfg.Keybindings["Mod1-j"] != "focus_next" {
		t.Fatalf("unexpected keybindings: %v", cfg.Keybindings)
	}
	if _, ok := cfg.Keybindings["Mod4-j"]; ok {
		t.Fatalf("Mod4 bindings should be rewritten")
	}
	if base.GapSize != 0 || len(base.Workspaces) != 5 {
		t.Fatalf("base config was modified")
	}
}

func TestInitAnswers_ApplyRejectsBadInput(t *testing.T) {
	base := config.DefaultConfig()

	answers := answersFrom(base)
	answers.GapSize = "-1"
	if _, err := answers.Apply(base); err == nil {
		t.Fatalf("expected gap error")
	}

	answers = answersFrom(base)
	answers.PrimaryPercent = "99"
	if _, err := answers.Apply(base); err == nil {
		t.Fatalf("expected validation error for primary_percent")
	}

	answers = answersFrom(base)
	answers.Layouts = []string{"spiral"}
	if _, err := answers.Apply(base); err == nil {
		t.Fatalf("expected validation error for unknown layout")
	}
}

func TestRenderDiff(t *testing.T) {
	original := config.DefaultConfig()
	if diff := RenderDiff(original, cloneConfig(original)); diff != "" {
		t.Fatalf("expected empty diff, got %q", diff)
	}

	updated := cloneConfig(original)
	updated.GapSize = 12
	diff := RenderDiff(original, updated)
	if !strings.Contains(diff, "gap_size: 12") || !strings.Contains(diff, "gap_size: 0") {
		t.Fatalf("diff missing gap change:\n%s", diff)
	}
	if strings.Contains(diff, "title_max_length") {
		t.Fatalf("diff should only carry nearby context:\n%s", diff)
	}
}
