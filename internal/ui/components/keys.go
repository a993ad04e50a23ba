package components

import "charm.land/bubbles/v2/key"

// Keys shared by the menu and button widgets.
var (
	keyUp     = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up"))
	keyDown   = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down"))
	keySelect = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select"))
	keyPress  = key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("enter", "continue"))
)
