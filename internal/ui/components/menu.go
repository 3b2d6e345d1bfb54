package components

import (
	tea "charm.land/bubbletea/v2"
)

// MenuItem is one entry of a Menu. Action runs on enter.
type MenuItem struct {
	Label  string
	Action func() tea.Cmd
}

// Menu is a vertical list of actions. The cursor wraps at both ends;
// rendering is left to the owning screen.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Update moves the cursor or runs the selected action.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	n := len(m.Items)
	switch kmsg.String() {
	case "up", "k", "shift+tab":
		m.Selected = (m.Selected - 1 + n) % n
	case "down", "j", "tab":
		m.Selected = (m.Selected + 1) % n
	case "enter":
		if a := m.Items[m.Selected].Action; a != nil {
			return m, a()
		}
	}
	return m, nil
}

// Labels returns the item labels in order.
func (m Menu) Labels() []string {
	out := make([]string, len(m.Items))
	for i, item := range m.Items {
		out[i] = item.Label
	}
	return out
}
