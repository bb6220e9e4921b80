package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/tilewm/internal/config"
)

type diffKind int

const (
	diffContext diffKind = iota
	diffRemoved
	diffAdded
)

type diffLine struct {
	kind diffKind
	text string
}

var (
	addStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	rmStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	ctxStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// RenderDiff renders the YAML difference between two configs, or "" when they
// marshal identically.
func RenderDiff(original, updated *config.Config) string {
	lines := computeDiffLines(original, updated)
	if len(lines) == 0 {
		return ""
	}
	out := make([]string, 0, len(lines))
	for _, dl := range lines {
		switch dl.kind {
		case diffAdded:
			out = append(out, addStyle.Render("+ "+dl.text))
		case diffRemoved:
			out = append(out, rmStyle.Render("- "+dl.text))
		default:
			out = append(out, ctxStyle.Render("  "+dl.text))
		}
	}
	return strings.Join(out, "\n")
}

func computeDiffLines(original, updated *config.Config) []diffLine {
	a := yamlLines(original)
	b := yamlLines(updated)
	if strings.Join(a, "\n") == strings.Join(b, "\n") {
		return nil
	}
	return filterDiffContext(lcsDiff(a, b), 2)
}

func yamlLines(cfg *config.Config) []string {
	if cfg == nil {
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

// lcsDiff computes a line diff from the longest common subsequence of a and b.
func lcsDiff(a, b []string) []diffLine {
	m, n := len(a), len(b)
	tbl := make([][]int, m+1)
	for i := range tbl {
		tbl[i] = make([]int, n+1)
	}
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			switch {
			case a[i] == b[j]:
				tbl[i][j] = tbl[i+1][j+1] + 1
			case tbl[i+1][j] >= tbl[i][j+1]:
				tbl[i][j] = tbl[i+1][j]
			default:
				tbl[i][j] = tbl[i][j+1]
			}
		}
	}

	var out []diffLine
	i, j := 0, 0
	for i < m && j < n {
		switch {
		case a[i] == b[j]:
			out = append(out, diffLine{kind: diffContext, text: a[i]})
			i++
			j++
		case tbl[i+1][j] >= tbl[i][j+1]:
			out = append(out, diffLine{kind: diffRemoved, text: a[i]})
			i++
		default:
			out = append(out, diffLine{kind: diffAdded, text: b[j]})
			j++
		}
	}
	for ; i < m; i++ {
		out = append(out, diffLine{kind: diffRemoved, text: a[i]})
	}
	for ; j < n; j++ {
		out = append(out, diffLine{kind: diffAdded, text: b[j]})
	}
	return out
}

// filterDiffContext keeps changed lines plus ctx lines around them, marking gaps
// with "...".
func filterDiffContext(lines []diffLine, ctx int) []diffLine {
	keep := make([]bool, len(lines))
	for i, l := range lines {
		if l.kind == diffContext {
			continue
		}
		for j := max(i-ctx, 0); j <= min(i+ctx, len(lines)-1); j++ {
			keep[j] = true
		}
	}

	var out []diffLine
	gap := false
	for i, l := range lines {
		if !keep[i] {
			gap = true
			continue
		}
		if gap && len(out) > 0 {
			out = append(out, diffLine{kind: diffContext, text: "..."})
		}
		gap = false
		out = append(out, l)
	}
	return out
}
