package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ctdguide/internal/ui/theme"
)

// Choice is a single-answer selector over a short list of options.
type Choice struct {
	Prompt    string
	Options   []string
	Selected  int
	Submitted bool
	Chosen    int
}

// NewChoice creates a choice with nothing submitted.
func NewChoice(prompt string, options []string) Choice {
	return Choice{
		Prompt:  prompt,
		Options: options,
		Chosen:  -1,
	}
}

// NewYesNo creates a two-option choice labelled 예 / 아니오.
func NewYesNo(prompt string) Choice {
	return NewChoice(prompt, []string{"예", "아니오"})
}

// Init returns nil.
func (c Choice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection. y and n pick the
// first and second option directly.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	if c.Submitted {
		return c, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k", "left", "h":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j", "right", "l":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "y":
		c.submit(0)
	case "n":
		if len(c.Options) > 1 {
			c.submit(1)
		}
	case "enter":
		c.submit(c.Selected)
	}

	return c, nil
}

func (c *Choice) submit(i int) {
	c.Selected = i
	c.Chosen = i
	c.Submitted = true
}

// Reset clears a submission so the choice can be answered again.
func (c *Choice) Reset() {
	c.Submitted = false
	c.Chosen = -1
}

// Yes reports whether the first option was submitted.
func (c Choice) Yes() bool {
	return c.Submitted && c.Chosen == 0
}

// View renders the prompt and options.
func (c Choice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Prompt))
	b.WriteString("\n\n")

	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d) %s", prefix, i+1, opt)

		switch {
		case c.Submitted && i == c.Chosen:
			b.WriteString(theme.Positive.Render(line))
		case c.Submitted:
			b.WriteString(theme.Locked.Render(line))
		case i == c.Selected:
			b.WriteString(theme.Selected.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
