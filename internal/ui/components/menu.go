package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/aipalm/aipalm/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Disabled entries are drawn dimmed and
// skipped by the cursor.
type MenuItem struct {
	Icon     string
	Label    string
	Hint     string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list with a cursor that never rests on a disabled item
// while an enabled one exists.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu places the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	if next, ok := m.seek(-1, 1); ok {
		m.Selected = next
	}
	return m
}

// seek walks from index from in direction dir and returns the first enabled
// item it meets.
func (m Menu) seek(from, dir int) (int, bool) {
	for i := from + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i, true
		}
	}
	return 0, false
}

// Update moves the cursor and runs the selected action on enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(kmsg, keyUp):
		if i, ok := m.seek(m.Selected, -1); ok {
			m.Selected = i
		}
	case key.Matches(kmsg, keyDown):
		if i, ok := m.seek(m.Selected, 1); ok {
			m.Selected = i
		}
	case key.Matches(kmsg, keySelect):
		if m.Selected < 0 || m.Selected >= len(m.Items) {
			return m, nil
		}
		if it := m.Items[m.Selected]; !it.Disabled && it.Action != nil {
			return m, it.Action()
		}
	}
	return m, nil
}

// View draws one line per item with a ☽ cursor on the selection.
func (m Menu) View() string {
	var b strings.Builder
	for i, it := range m.Items {
		if i > 0 {
			b.WriteByte('\n')
		}
		label := it.Label
		if it.Icon != "" {
			label = it.Icon + "  " + label
		}
		switch {
		case it.Disabled:
			b.WriteString(theme.Disabled.Render("    " + label))
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("  ☽ " + label))
			if it.Hint != "" {
				b.WriteString("  " + theme.Hint.Render(it.Hint))
			}
		default:
			b.WriteString(theme.Body.Render("    " + label))
		}
	}
	return b.String()
}
