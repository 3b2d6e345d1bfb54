package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/ctdguide/internal/ui/theme"
)

// Gate questions and fail texts are long Korean sentences, so panels are
// allowed wider than a menu would need.
const (
	minPanelWidth = 24
	maxPanelWidth = 72
)

// ContentWidth returns the inner width of panels drawn inside a Frame of
// frameWidth columns.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, minPanelWidth), maxPanelWidth)
}

// Frame centers content inside a double border filling width x height.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Panel draws content in a rounded box cw columns wide. accent colors the
// border; nil uses the neutral border color.
func Panel(content string, cw int, accent color.Color) string {
	if accent == nil {
		accent = theme.Border
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Width(cw-2).
		Padding(1, 2).
		Render(content)
}

// Heading renders a centered bold line.
func Heading(text string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Highlight).
		Bold(true).
		Render(text)
}
