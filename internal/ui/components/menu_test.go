package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pickedMsg string

func press(code rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: code} }

func pick(label string) func() tea.Cmd {
	return func() tea.Cmd { return func() tea.Msg { return pickedMsg(label) } }
}

func TestMenuSkipsDisabledItems(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "Scan", Disabled: true},
		{Label: "Chat", Action: pick("chat")},
		{Label: "History", Disabled: true},
		{Label: "Settings", Action: pick("settings")},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(press(tea.KeyDown))
	assert.Equal(t, 3, m.Selected)

	m, _ = m.Update(press(tea.KeyDown))
	assert.Equal(t, 3, m.Selected, "cursor stays on the last enabled item")

	m, _ = m.Update(press(tea.KeyUp))
	m, _ = m.Update(press(tea.KeyUp))
	assert.Equal(t, 1, m.Selected)

	_, cmd := m.Update(press(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, pickedMsg("chat"), cmd())
}

func TestMenuAllDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "A", Disabled: true}, {Label: "B", Disabled: true}})
	m, _ = m.Update(press(tea.KeyDown))
	_, cmd := m.Update(press(tea.KeyEnter))
	assert.Nil(t, cmd)
}

func TestMenuViewMarksSelection(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "Scan", Hint: "photo"}, {Label: "Chat"}})
	view := m.View()
	assert.Contains(t, view, "☽ Scan")
	assert.Contains(t, view, "photo")
	assert.Contains(t, view, "    Chat")
}

func TestButton(t *testing.T) {
	b := NewButton("Start", true, pick("start"))
	_, cmd := b.Update(press(tea.KeySpace))
	require.NotNil(t, cmd)
	assert.Equal(t, pickedMsg("start"), cmd())

	_, cmd = b.Update(press('x'))
	assert.Nil(t, cmd)

	b.Active = false
	_, cmd = b.Update(press(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.NotContains(t, b.View(), "✦")
}
