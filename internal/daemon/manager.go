package daemon

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/ipc"
	"github.com/1broseidon/tilewm/internal/platform"
	"github.com/1broseidon/tilewm/internal/tiling"
)

// ErrNoFocusedWorkspace is returned when no monitor shows a workspace.
var ErrNoFocusedWorkspace = errors.New("no workspace is shown on the focused monitor")

// WindowWatcher follows per-window changes. The X11 backend implements it.
type WindowWatcher interface {
	WatchWindow(handle tiling.WindowHandle, onChange func(tiling.WindowUpdateType)) error
	UnwatchWindow(handle tiling.WindowHandle)
}

// Manager owns the workspaces and decides which monitor shows which workspace and
// which workspace every managed window belongs to.
//
// Every exported method takes the same lock, so X event callbacks, the reconciler,
// IPC requests and hotkeys are serialized. Workspaces call back into the manager
// through container while that lock is held.
type Manager struct {
	mu      sync.Mutex
	backend platform.Backend
	watcher WindowWatcher
	logger  *slog.Logger
	cfg     *config.Config
	enabled bool

	workspaces []*tiling.Workspace
	byName     map[string]int

	monitors []tiling.Monitor
	// shown maps a monitor index to the index of the workspace it shows, or -1.
	shown          []int
	focusedMonitor int

	windows  map[tiling.WindowHandle]tiling.Window
	owner    map[tiling.WindowHandle]*tiling.Workspace
	dragging map[tiling.WindowHandle]bool
}

var _ ipc.Controller = (*Manager)(nil)

// NewManager builds the workspaces from cfg and assigns workspace i to monitor i.
func NewManager(cfg *config.Config, backend platform.Backend, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		backend:  backend,
		logger:   logger.With("component", "manager"),
		windows:  make(map[tiling.WindowHandle]tiling.Window),
		owner:    make(map[tiling.WindowHandle]*tiling.Workspace),
		dragging: make(map[tiling.WindowHandle]bool),
	}
	if err := m.applyConfig(cfg); err != nil {
		return nil, err
	}
	m.refreshMonitors()
	return m, nil
}

// SetWindowWatcher registers the watcher used for newly managed windows.
func (m *Manager) SetWindowWatcher(w WindowWatcher) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.watcher = w
}

// container is the tiling.Container view of the manager. Its methods run while the
// manager lock is held.
type container struct{ m *Manager }

func (c container) MonitorForWorkspace(ws *tiling.Workspace) (tiling.Monitor, bool) {
	return c.m.monitorFor(ws)
}

func (c container) Enabled() bool { return c.m.enabled }

func (m *Manager) context() tiling.Context {
	return tiling.Context{
		Container: container{m},
		Deferrer:  m.backend,
		Logger:    m.logger,
	}
}

// applyConfig rebuilds the workspaces from cfg. Windows stay on the workspace with
// the same name; windows of a workspace that no longer exists move to the first one.
func (m *Manager) applyConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ctx := m.context()
	workspaces := make([]*tiling.Workspace, 0, len(cfg.Workspaces))
	byName := make(map[string]int, len(cfg.Workspaces))
	for i, name := range cfg.Workspaces {
		engines, err := cfg.BuildEngines()
		if err != nil {
			return fmt.Errorf("failed to build layouts for workspace %s: %w", name, err)
		}
		workspaces = append(workspaces, tiling.NewWorkspace(ctx, name, engines...))
		byName[name] = i
	}

	// Carry over membership and the monitor assignment by name.
	shownNames := make([]string, len(m.shown))
	for i, idx := range m.shown {
		if idx >= 0 {
			shownNames[i] = m.workspaces[idx].Name()
		}
	}
	for _, old := range m.workspaces {
		target := workspaces[0]
		if idx, ok := byName[old.Name()]; ok {
			target = workspaces[idx]
		}
		for _, w := range old.Windows() {
			target.AddWindow(w, false)
			m.owner[w.Handle()] = target
		}
	}

	m.cfg = cfg
	m.enabled = cfg.IsEnabled()
	m.workspaces = workspaces
	m.byName = byName

	used := make(map[int]bool)
	for i, name := range shownNames {
		m.shown[i] = -1
		if idx, ok := byName[name]; ok && !used[idx] {
			m.shown[i] = idx
			used[idx] = true
		}
	}
	m.fillMonitors(used)

	for h, w := range m.windows {
		if cfg.IsIgnoredClass(w.Class()) {
			m.unmanage(h, false)
		}
	}
	return nil
}

// fillMonitors gives every monitor without a workspace the first free one.
func (m *Manager) fillMonitors(used map[int]bool) {
	next := 0
	for i := range m.shown {
		if m.shown[i] >= 0 {
			continue
		}
		for next < len(m.workspaces) && used[next] {
			next++
		}
		if next < len(m.workspaces) {
			m.shown[i] = next
			used[next] = true
		}
	}
}

// refreshMonitors re-reads the monitor layout. Existing assignments survive for the
// monitors that are still there.
func (m *Manager) refreshMonitors() bool {
	monitors, err := m.backend.Monitors()
	if err != nil {
		m.logger.Warn("failed to query monitors", "error", err)
		return false
	}
	if sameMonitors(m.monitors, monitors) {
		return false
	}

	m.logger.Info("monitors changed", "count", len(monitors))
	shown := make([]int, len(monitors))
	used := make(map[int]bool)
	for i := range shown {
		shown[i] = -1
		if i < len(m.shown) && m.shown[i] >= 0 {
			shown[i] = m.shown[i]
			used[m.shown[i]] = true
		}
	}
	m.monitors = monitors
	m.shown = shown
	m.fillMonitors(used)
	if m.focusedMonitor >= len(monitors) {
		m.focusedMonitor = 0
	}
	return true
}

func sameMonitors(a, b []tiling.Monitor) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (m *Manager) indexOf(ws *tiling.Workspace) int {
	if ws == nil {
		return -1
	}
	if idx, ok := m.byName[ws.Name()]; ok && m.workspaces[idx] == ws {
		return idx
	}
	return -1
}

func (m *Manager) monitorIndexFor(ws *tiling.Workspace) int {
	idx := m.indexOf(ws)
	if idx < 0 {
		return -1
	}
	for i, shown := range m.shown {
		if shown == idx {
			return i
		}
	}
	return -1
}

func (m *Manager) monitorFor(ws *tiling.Workspace) (tiling.Monitor, bool) {
	i := m.monitorIndexFor(ws)
	if i < 0 {
		return tiling.Monitor{}, false
	}
	return m.monitors[i], true
}

func (m *Manager) focusedWorkspace() *tiling.Workspace {
	if m.focusedMonitor < 0 || m.focusedMonitor >= len(m.shown) {
		return nil
	}
	idx := m.shown[m.focusedMonitor]
	if idx < 0 {
		return nil
	}
	return m.workspaces[idx]
}

// workspaceAtPoint returns the workspace shown on the monitor containing (x, y).
func (m *Manager) workspaceAtPoint(x, y int) *tiling.Workspace {
	for i, mon := range m.monitors {
		if mon.IsPointInside(x, y) && m.shown[i] >= 0 {
			return m.workspaces[m.shown[i]]
		}
	}
	return nil
}

// WindowCreated starts managing w on the focused workspace.
func (m *Manager) WindowCreated(w tiling.Window) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.manage(w, true)
}

func (m *Manager) manage(w tiling.Window, relayout bool) *tiling.Workspace {
	h := w.Handle()
	if _, ok := m.windows[h]; ok {
		return nil
	}
	if m.cfg.IsIgnoredClass(w.Class()) {
		return nil
	}

	ws := m.focusedWorkspace()
	if ws == nil {
		ws = m.workspaces[0]
	}
	m.windows[h] = w
	m.owner[h] = ws
	m.logger.Debug("manage window", "handle", h, "class", w.Class(), "workspace", ws.Name())

	if m.watcher != nil {
		if err := m.watcher.WatchWindow(h, func(kind tiling.WindowUpdateType) {
			m.WindowUpdated(h, kind)
		}); err != nil {
			m.logger.Debug("failed to watch window", "handle", h, "error", err)
		}
	}

	ws.AddWindow(w, relayout)
	return ws
}

// WindowDestroyed stops managing the window with handle h.
func (m *Manager) WindowDestroyed(h tiling.WindowHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unmanage(h, true)
}

func (m *Manager) unmanage(h tiling.WindowHandle, relayout bool) *tiling.Workspace {
	w, ok := m.windows[h]
	if !ok {
		return nil
	}
	ws := m.owner[h]
	delete(m.windows, h)
	delete(m.owner, h)
	delete(m.dragging, h)
	if m.watcher != nil {
		m.watcher.UnwatchWindow(h)
	}
	m.backend.Forget(h)
	m.logger.Debug("unmanage window", "handle", h)

	if ws != nil {
		ws.RemoveWindow(w, relayout)
	}
	return ws
}

// WindowFocused records that h became the active window. Focusing a window of a
// hidden workspace brings that workspace onto the focused monitor.
func (m *Manager) WindowFocused(h tiling.WindowHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.finishDrags()

	w, ok := m.windows[h]
	if !ok {
		return
	}
	ws := m.owner[h]
	if mon := m.monitorIndexFor(ws); mon >= 0 {
		m.focusedMonitor = mon
	} else if !w.IsMinimized() {
		m.logger.Debug("focused window on hidden workspace", "handle", h, "workspace", ws.Name())
		m.show(m.indexOf(ws))
	}
	ws.UpdateWindow(w, tiling.Foreground, false)
}

// WindowUpdated handles a change reported for a managed window.
//
// Moves and resizes never trigger a layout on their own: they are the echo of our
// own placements. A move made by the user with the pointer is tracked and resolved
// when the button is released.
func (m *Manager) WindowUpdated(h tiling.WindowHandle, kind tiling.WindowUpdateType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[h]
	if !ok {
		return
	}
	ws := m.owner[h]

	switch kind {
	case tiling.Move, tiling.Resize:
		if w.IsMouseMoving() {
			m.dragging[h] = true
			return
		}
		if m.dragging[h] {
			delete(m.dragging, h)
			m.finishDrag(w, ws)
		}
	case tiling.MinimizeStart:
		if manuallyHidden(w) {
			return
		}
		ws.UpdateWindow(w, kind, true)
	case tiling.MinimizeEnd:
		if m.monitorIndexFor(ws) < 0 {
			// restored from outside, e.g. a taskbar
			m.show(m.indexOf(ws))
			return
		}
		ws.UpdateWindow(w, kind, true)
	default:
		ws.UpdateWindow(w, kind, false)
	}
}

func manuallyHidden(w tiling.Window) bool {
	hidden, ok := w.(interface{ DidManualHide() bool })
	return ok && hidden.DidManualHide()
}

// finishDrags resolves drags whose button has been released.
func (m *Manager) finishDrags() {
	for h := range m.dragging {
		w := m.windows[h]
		if w == nil {
			delete(m.dragging, h)
			continue
		}
		if w.IsMouseMoving() {
			continue
		}
		delete(m.dragging, h)
		m.finishDrag(w, m.owner[h])
	}
}

// finishDrag drops w into the layout slot under its centre. Dropping it on another
// monitor moves it to the workspace shown there.
func (m *Manager) finishDrag(w tiling.Window, ws *tiling.Workspace) {
	if !m.enabled || ws == nil {
		return
	}
	loc := w.Location()
	x, y := loc.X+loc.Width/2, loc.Y+loc.Height/2
	m.logger.Debug("drag finished", "handle", w.Handle(), "x", x, "y", y)

	target := m.workspaceAtPoint(x, y)
	if target != nil && target != ws {
		ws.RemoveWindow(w, true)
		target.AddWindow(w, false)
		m.owner[w.Handle()] = target
		ws = target
	}
	if !ws.SwapWindowToPoint(w, x, y) {
		ws.DoLayout()
	}
}

// Sync reconciles the managed set with the windows that currently exist and
// re-reads the monitor layout.
func (m *Manager) Sync(windows []tiling.Window) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.finishDrags()
	dirty := make(map[*tiling.Workspace]bool)
	if m.refreshMonitors() {
		for _, ws := range m.workspaces {
			dirty[ws] = true
		}
	}

	present := make(map[tiling.WindowHandle]bool, len(windows))
	for _, w := range windows {
		present[w.Handle()] = true
		if ws := m.manage(w, false); ws != nil {
			dirty[ws] = true
		}
	}
	for h := range m.windows {
		if present[h] {
			continue
		}
		if ws := m.unmanage(h, false); ws != nil {
			dirty[ws] = true
		}
	}

	for _, ws := range m.workspaces {
		if dirty[ws] {
			ws.DoLayout()
		}
	}
}

// SwitchToWorkspace shows the named workspace on the focused monitor. A workspace
// already shown on another monitor trades places with the current one.
func (m *Manager) SwitchToWorkspace(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, ok := m.byName[name]
	if !ok {
		return fmt.Errorf("unknown workspace %q", name)
	}
	if len(m.monitors) == 0 {
		return errors.New("no monitors available")
	}
	m.show(idx)
	return nil
}

// show puts workspace idx on the focused monitor and focuses its last focused window.
func (m *Manager) show(idx int) {
	if idx < 0 || len(m.shown) == 0 {
		return
	}
	target := m.workspaces[idx]
	current := m.shown[m.focusedMonitor]
	if current == idx {
		target.FocusLastFocusedWindow()
		return
	}

	m.logger.Info("switch workspace", "workspace", target.Name(), "monitor", m.monitors[m.focusedMonitor].Name)
	for i, shown := range m.shown {
		if shown == idx {
			m.shown[i] = current
		}
	}
	m.shown[m.focusedMonitor] = idx

	if current >= 0 {
		m.workspaces[current].DoLayout()
	}
	target.DoLayout()
	target.FocusLastFocusedWindow()
}

// MoveFocusedWindowToWorkspace moves the active window to the named workspace.
func (m *Manager) MoveFocusedWindowToWorkspace(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, ok := m.byName[name]
	if !ok {
		return fmt.Errorf("unknown workspace %q", name)
	}
	active, err := m.backend.ActiveWindow()
	if err != nil {
		return fmt.Errorf("failed to get active window: %w", err)
	}
	w, ok := m.windows[active]
	if !ok {
		return errors.New("no managed window is focused")
	}

	from := m.owner[active]
	target := m.workspaces[idx]
	if from == target {
		return nil
	}

	m.logger.Info("move window", "handle", active, "from", from.Name(), "to", target.Name())
	from.RemoveWindow(w, true)
	target.AddWindow(w, true)
	m.owner[active] = target
	from.FocusLastFocusedWindow()
	return nil
}

// Enabled reports whether tiling is active.
func (m *Manager) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

// SetEnabled turns tiling on or off and relayouts every workspace.
func (m *Manager) SetEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setEnabled(enabled)
}

// ToggleEnabled flips tiling and returns the new state.
func (m *Manager) ToggleEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setEnabled(!m.enabled)
	return m.enabled
}

func (m *Manager) setEnabled(enabled bool) {
	if m.enabled == enabled {
		return
	}
	m.logger.Info("tiling toggled", "enabled", enabled)
	m.enabled = enabled
	m.layoutAll()
}

// LayoutAll relayouts every workspace.
func (m *Manager) LayoutAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.layoutAll()
}

func (m *Manager) layoutAll() {
	for _, ws := range m.workspaces {
		ws.DoLayout()
	}
}

// UpdateConfig applies a reloaded configuration.
func (m *Manager) UpdateConfig(cfg *config.Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.applyConfig(cfg); err != nil {
		return err
	}
	m.logger.Info("config applied", "workspaces", len(cfg.Workspaces), "layouts", cfg.Layouts)
	m.layoutAll()
	return nil
}

// Workspace returns the named workspace.
func (m *Manager) Workspace(name string) (*tiling.Workspace, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx, ok := m.byName[name]
	if !ok {
		return nil, false
	}
	return m.workspaces[idx], true
}

// Status reports every workspace with its monitor, layout and windows.
func (m *Manager) Status() ipc.StatusData {
	m.mu.Lock()
	defer m.mu.Unlock()

	focused := m.focusedWorkspace()
	status := ipc.StatusData{
		Enabled:    m.enabled,
		Workspaces: make([]ipc.WorkspaceStatus, 0, len(m.workspaces)),
	}
	if focused != nil {
		status.FocusedWorkspace = focused.Name()
	}

	for _, ws := range m.workspaces {
		tiled := make(map[tiling.WindowHandle]bool)
		for _, w := range ws.WindowsForLayout() {
			tiled[w.Handle()] = true
		}

		wsStatus := ipc.WorkspaceStatus{
			Name:    ws.Name(),
			Layout:  ws.LayoutName(),
			Focused: ws == focused,
			Windows: make([]ipc.WindowStatus, 0),
		}
		if mon, ok := m.monitorFor(ws); ok {
			wsStatus.Monitor = mon.Name
		}
		last := ws.LastFocusedWindow()
		for _, w := range ws.Windows() {
			wsStatus.Windows = append(wsStatus.Windows, ipc.WindowStatus{
				Handle:  uint32(w.Handle()),
				Title:   tiling.FormatTitle(w, m.cfg.TitleMaxLength),
				Class:   w.Class(),
				Focused: last != nil && last.Handle() == w.Handle(),
				Tiled:   tiled[w.Handle()],
			})
		}
		status.Workspaces = append(status.Workspaces, wsStatus)
	}
	return status
}

// Monitors lists the monitors and the workspace each one shows.
func (m *Manager) Monitors() ([]ipc.MonitorInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]ipc.MonitorInfo, 0, len(m.monitors))
	for i, mon := range m.monitors {
		info := ipc.MonitorInfo{
			ID:     i,
			Name:   mon.Name,
			X:      mon.X,
			Y:      mon.Y,
			Width:  mon.Width,
			Height: mon.Height,
		}
		if m.shown[i] >= 0 {
			info.Workspace = m.workspaces[m.shown[i]].Name()
		}
		out = append(out, info)
	}
	return out, nil
}

// Layouts lists the registered engines, the configured cycle and the active engine
// of the focused workspace.
func (m *Manager) Layouts() ipc.LayoutsData {
	m.mu.Lock()
	defer m.mu.Unlock()

	data := ipc.LayoutsData{
		Registered: tiling.LayoutNames(),
		Cycle:      append([]string(nil), m.cfg.Layouts...),
	}
	if ws := m.focusedWorkspace(); ws != nil {
		data.ActiveLayout = ws.LayoutName()
	}
	return data
}
