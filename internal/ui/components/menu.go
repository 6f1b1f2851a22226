package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/factz/internal/ui/theme"
)

// MenuItem is one menu entry. Disabled entries are drawn dimmed and the
// cursor skips them.
type MenuItem struct {
	Label    string
	Hint     string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list with a cursor.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu places the cursor on the first enabled entry.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	if m.step(1) {
		return m
	}
	m.Selected = 0
	return m
}

// step moves the cursor to the next enabled entry in direction dir and
// reports whether it moved.
func (m *Menu) step(dir int) bool {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Selected = i
			return true
		}
	}
	return false
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		m.step(-1)
	case "down", "j":
		m.step(1)
	case "enter":
		if item := m.Current(); !item.Disabled && item.Action != nil {
			return m, item.Action()
		}
	}
	return m, nil
}

func (m Menu) View() string {
	lines := make([]string, len(m.Items))
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			lines[i] = theme.Hint.Render("    " + item.Label)
		case i == m.Selected:
			lines[i] = theme.Selected.Render("  ▸ " + item.Label)
			if item.Hint != "" {
				lines[i] += theme.Hint.Render("  " + item.Hint)
			}
		default:
			lines[i] = theme.Unselected.Render("    " + item.Label)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// Current returns the entry under the cursor.
func (m Menu) Current() MenuItem {
	return m.Items[m.Selected]
}
