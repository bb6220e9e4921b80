package tiling

import "strings"

// WindowHandle is a stable, platform-neutral window identifier.
type WindowHandle uint32

// Window is the capability set the workspace core needs from a native top-level window.
//
// Mutators are fire-and-forget: implementations swallow native failures (for example a
// window that disappeared between the event and the call) and report them through their
// own diagnostics instead of returning errors.
type Window interface {
	Handle() WindowHandle
	Title() string
	Class() string
	Location() WindowLocation

	ProcessID() int
	ProcessName() string
	ProcessFileName() string

	// CanLayout reports whether the window takes part in tiling. A window hidden by
	// Hide stays manageable even though the OS reports it invisible.
	CanLayout() bool

	IsFocused() bool
	IsMinimized() bool
	IsMaximized() bool
	IsMouseMoving() bool

	Focus()
	Hide()
	ShowNormal()
	ShowMaximized()
	ShowMinimized()
	// ShowInCurrentState re-shows the window as minimized, maximized or normal
	// depending on its own current state.
	ShowInCurrentState()

	BringToTop()
	Close()
}

// WindowUpdateType describes what changed about a window.
type WindowUpdateType int

const (
	Foreground WindowUpdateType = iota
	Move
	Resize
	TitleChange
	MinimizeStart
	MinimizeEnd
)

func (t WindowUpdateType) String() string {
	switch t {
	case Foreground:
		return "foreground"
	case Move:
		return "move"
	case Resize:
		return "resize"
	case TitleChange:
		return "title"
	case MinimizeStart:
		return "minimize-start"
	case MinimizeEnd:
		return "minimize-end"
	default:
		return "unknown"
	}
}

// FormatTitle builds a short "process - title" label for status displays.
// The process prefix is dropped when the title already mentions the process.
func FormatTitle(w Window, maxLength int) string {
	if w == nil {
		return ""
	}
	if maxLength <= 0 {
		maxLength = 1
	}

	process := strings.TrimSpace(w.ProcessName())
	title := truncate(strings.TrimSpace(w.Title()), maxLength)

	label := title
	if process != "" && !strings.Contains(strings.ToLower(title), strings.ToLower(process)) {
		label = truncate(process, maxLength/4) + " - " + title
	}
	return truncate(label, maxLength)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n < 0 {
		n = 0
	}
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
