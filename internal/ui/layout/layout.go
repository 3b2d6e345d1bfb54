// Package layout composes the header, content and footer of every screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/ctdguide/internal/ui/theme"
)

// Korean labels and long gate texts need more room than the 80x24 minimum
// of most TUIs; below this the wizard pages start clipping.
const (
	MinWidth  = 80
	MinHeight = 24

	compactWidth  = 100
	compactHeight = 22
)

// KeyHint is a key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// IsCompact reports whether a screen with the given content area should
// drop decorative parts.
func IsCompact(width, contentHeight int) bool {
	return width < compactWidth || contentHeight < compactHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	body := fmt.Sprintf("Terminal too small.\n\nResize to at least %d x %d\n\nCurrent: %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Warning.Align(lipgloss.Center).Render(body))
}

// RenderHeader renders the top bar: program name, the screen title in the
// middle and the catalog version on the right. version may be empty.
func RenderHeader(title, version string, width int) string {
	inner := max(width-4, 0)

	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  ctdguide")
	var ver string
	if version != "" {
		ver = theme.Hint.Render("catalog ") +
			lipgloss.NewStyle().Foreground(theme.Accent).Render(version)
	}

	side := max(lipgloss.Width(brand), lipgloss.Width(ver))
	mid := max(inner-2*side, 0)
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(side).Render(brand),
		lipgloss.NewStyle().Width(mid).Align(lipgloss.Center).Foreground(theme.Text).Render(title),
		lipgloss.NewStyle().Width(side).Align(lipgloss.Right).Render(ver),
	)

	return theme.Header.Width(width).Render(row)
}

// RenderFooter renders the key hints separated by dots.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + theme.Hint.Render(h.Description)
	}
	sep := theme.Hint.Render("  ·  ")
	return theme.Footer.Width(width).Render("  " + strings.Join(parts, sep))
}

// RenderFrame stacks header, content and footer, giving the content
// whatever height is left.
func RenderFrame(header, content, footer string, width, height int) string {
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(h).MaxHeight(h).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
