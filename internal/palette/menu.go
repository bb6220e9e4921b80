package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MenuItem represents an item in the menu hierarchy.
type MenuItem struct {
	Label    string
	Action   string // empty for parent items
	Icon     string
	Meta     string
	IsHeader bool
	IsActive bool
	Submenu  []MenuItem
}

// IsParent returns true if this item has a submenu.
func (m MenuItem) IsParent() bool {
	return len(m.Submenu) > 0
}

// Menu handles hierarchical menu navigation using a palette backend.
type Menu struct {
	backend Backend
	root    []MenuItem
	prompt  string
	message string
}

// NewMenu creates a new hierarchical menu with the given backend and root items.
func NewMenu(backend Backend, prompt string, items []MenuItem) *Menu {
	return &Menu{
		backend: backend,
		root:    items,
		prompt:  prompt,
	}
}

// SetMessage sets a context message shown in the launcher's message bar.
func (m *Menu) SetMessage(msg string) {
	m.message = msg
}

// Show displays the menu and follows submenus. It returns the action of the chosen
// leaf item, or ErrCancelled when the user leaves the top level.
func (m *Menu) Show() (string, error) {
	return m.showLevel(m.root, m.prompt, false)
}

const (
	backAction    = "__back__"
	submenuPrefix = "__submenu__:"
)

func (m *Menu) showLevel(items []MenuItem, prompt string, nested bool) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("menu: no items to show")
	}

	entries := make([]Item, 0, len(items)+1)
	if nested {
		entries = append(entries, Item{Label: "← Back", Action: backAction, Icon: "go-previous"})
	}
	for i, item := range items {
		entry := Item{
			Label:    item.Label,
			Action:   item.Action,
			Icon:     item.Icon,
			Meta:     item.Meta,
			IsHeader: item.IsHeader,
			IsActive: item.IsActive,
		}
		if item.IsParent() {
			entry.Label += " →"
			entry.Action = submenuPrefix + strconv.Itoa(i)
			if entry.Icon == "" {
				entry.Icon = "folder"
			}
		}
		entries = append(entries, entry)
	}

	for {
		chosen, err := m.backend.Show(prompt, entries, m.message)
		if err != nil {
			return "", err
		}

		switch {
		case chosen.IsHeader || strings.TrimSpace(chosen.Action) == "":
			// dmenu cannot make rows non-selectable
			continue
		case chosen.Action == backAction:
			return "", ErrCancelled
		case strings.HasPrefix(chosen.Action, submenuPrefix):
			idx, err := strconv.Atoi(strings.TrimPrefix(chosen.Action, submenuPrefix))
			if err != nil || idx < 0 || idx >= len(items) {
				continue
			}
			action, err := m.showLevel(items[idx].Submenu, items[idx].Label, true)
			if errors.Is(err, ErrCancelled) {
				continue
			}
			return action, err
		default:
			return chosen.Action, nil
		}
	}
}
