package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/ctdguide/internal/ui/theme"
)

// StepProgress is a bar showing how many of Total steps are done.
type StepProgress struct {
	Label       string
	Done, Total int
	Width       int
}

func NewStepProgress(label string, done, total, width int) StepProgress {
	return StepProgress{Label: label, Done: done, Total: total, Width: width}
}

// Fraction returns Done/Total clamped to [0, 1]; zero when Total is zero.
func (p StepProgress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return min(max(float64(p.Done)/float64(p.Total), 0), 1)
}

func (p StepProgress) View() string {
	var label string
	if p.Label != "" {
		label = theme.Unselected.Render(p.Label) + "  "
	}
	counter := fmt.Sprintf("  %d/%d", p.Done, p.Total)

	bar := max(p.Width-lipgloss.Width(label)-lipgloss.Width(counter), 4)
	filled := int(float64(bar) * p.Fraction())

	return label +
		lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", bar-filled)) +
		theme.Hint.Render(counter)
}
