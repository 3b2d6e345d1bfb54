package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ctdguide/internal/ui/theme"
)

// FilterInput wraps bubbles/textinput as a one-line search box.
type FilterInput struct {
	Model textinput.Model
}

// NewFilterInput creates an unfocused filter input.
func NewFilterInput(placeholder string, maxLen int) FilterInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "/ "
	if maxLen > 0 {
		ti.CharLimit = maxLen
	}
	return FilterInput{Model: ti}
}

// Focus starts capturing keys.
func (f *FilterInput) Focus() tea.Cmd {
	return f.Model.Focus()
}

// Blur stops capturing keys and keeps the text.
func (f *FilterInput) Blur() {
	f.Model.Blur()
}

// Focused reports whether the input is capturing keys.
func (f FilterInput) Focused() bool {
	return f.Model.Focused()
}

// Clear empties the input.
func (f *FilterInput) Clear() {
	f.Model.SetValue("")
}

// Update handles messages while focused.
func (f FilterInput) Update(msg tea.Msg) (FilterInput, tea.Cmd) {
	if !f.Model.Focused() {
		return f, nil
	}
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

// View renders the input.
func (f FilterInput) View() string {
	if !f.Model.Focused() && f.Value() == "" {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("/ 검색")
	}
	return f.Model.View()
}

// Value returns the trimmed query.
func (f FilterInput) Value() string {
	return strings.TrimSpace(f.Model.Value())
}

// Matches reports whether any of fields contains the query, ignoring case.
// An empty query matches everything.
func (f FilterInput) Matches(fields ...string) bool {
	q := strings.ToLower(f.Value())
	if q == "" {
		return true
	}
	for _, s := range fields {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}
