package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/tilewm/internal/ipc"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	floatStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// renderStatusBar renders the daemon connection and tiling state.
func renderStatusBar(status *ipc.StatusData, err error, notice string, width int) string {
	var text string
	if err != nil || status == nil {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("●")
		text = dot + " daemon not running"
	} else {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
		parts := []string{
			dot + " daemon connected",
			"tiling:" + onOff(status.Enabled),
		}
		if status.FocusedWorkspace != "" {
			parts = append(parts, "focused:"+status.FocusedWorkspace)
		}
		if notice != "" {
			parts = append(parts, notice)
		}
		text = strings.Join(parts, "  ")
	}

	style := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250")).
		Padding(0, 1)
	return style.Render(text)
}

func renderHelpBar(width int) string {
	help := "↑/↓: select  enter: switch  n/p: next/prev layout  t: toggle tiling  r: reload  q: quit"
	style := lipgloss.NewStyle().
		Width(width).
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	return style.Render(help)
}

func renderPlaceholder(msg string, width, height int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Foreground(lipgloss.Color("241")).
		Align(lipgloss.Center, lipgloss.Center)
	return style.Render(msg)
}

// renderWorkspaceDetail lists the windows of ws above a preview of its layout.
func renderWorkspaceDetail(ws ipc.WorkspaceStatus, width, height int) string {
	if width < 10 {
		return ""
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render(ws.Name))
	monitor := ws.Monitor
	if monitor == "" {
		monitor = "not shown"
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s on %s", ws.Layout, monitor)))
	b.WriteString("\n\n")

	tiled := 0
	if len(ws.Windows) == 0 {
		b.WriteString(dimStyle.Render("no windows"))
		b.WriteString("\n")
	}
	for _, w := range ws.Windows {
		line := truncateText(fmt.Sprintf("%s  %s", w.Class, w.Title), width-4)
		switch {
		case w.Focused:
			line = focusStyle.Render("> " + line)
		case !w.Tiled:
			line = floatStyle.Render("~ " + line)
		default:
			line = "  " + line
		}
		if w.Tiled {
			tiled++
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	used := len(ws.Windows) + 3
	if len(ws.Windows) == 0 {
		used = 4
	}
	previewHeight := height - used - 1
	if previewHeight >= 5 && tiled > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(renderLayoutPreview(ws.Layout, tiled, width, previewHeight), "\n"))
	}
	return b.String()
}

func truncateText(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
