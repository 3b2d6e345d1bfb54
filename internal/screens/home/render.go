package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/ctdguide/internal/ui/theme"
)

const banner = `  ██████╗████████╗██████╗
 ██╔════╝╚══██╔══╝██╔══██╗
 ██║        ██║   ██║  ██║
 ██║        ██║   ██║  ██║
 ╚██████╗   ██║   ██████╔╝
  ╚═════╝   ╚═╝   ╚═════╝`

const (
	bannerCompact = "C · T · D   G U I D E"
	tagline       = "허가 후 제조방법 변경 · 변경수준 확인"
	buttonWidth   = 22
)

func centered(cw int, s string) string {
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(s)
}

func renderBanner(cw int, compact bool) string {
	title := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	if compact {
		return centered(cw, title.Render(bannerCompact))
	}
	return centered(cw, title.Render(banner)) + "\n" +
		centered(cw, lipgloss.NewStyle().Foreground(theme.TextDim).Render(tagline))
}

// renderCatalogBox shows the catalog counts and, when there is room, the
// tier legend.
func renderCatalogBox(st stats, cw int, compact bool) string {
	count := func(c lipgloss.Style, n int, label string) string {
		return c.Bold(true).Render(fmt.Sprintf("%d %s", n, label))
	}
	counts := strings.Join([]string{
		count(lipgloss.NewStyle().Foreground(theme.Highlight), st.sections, "SECTIONS"),
		count(lipgloss.NewStyle().Foreground(theme.Accent), st.topics, "TOPICS"),
		count(lipgloss.NewStyle().Foreground(theme.Info), st.rules, "RULES"),
	}, "  ")

	lines := []string{counts}
	if !compact {
		legend := make([]string, len(st.tiers))
		for i, t := range st.tiers {
			legend[i] = theme.TierBadge(t.Code) + " " + t.Name
		}
		lines = append(lines,
			strings.Join(legend, "  "),
			theme.Hint.Render("catalog "+st.version),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Info).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// renderMenu draws the items as bordered buttons, or as plain lines when
// compact.
func renderMenu(items []string, selected, cw int, compact bool) string {
	rows := make([]string, len(items))
	for i, label := range items {
		active := i == selected
		switch {
		case compact && active:
			rows[i] = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Highlight).
				Bold(true).
				Render(" ▸ " + label + " ")
		case compact:
			rows[i] = theme.Unselected.Render("   " + label)
		default:
			btn := lipgloss.NewStyle().
				Width(buttonWidth).
				Align(lipgloss.Center).
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1).
				Foreground(theme.Text).
				BorderForeground(theme.Border)
			if active {
				btn = btn.Bold(true).
					Foreground(theme.BgDark).
					Background(theme.Highlight).
					BorderForeground(theme.Highlight)
				label = "▸ " + label
			}
			rows[i] = btn.Render(label)
		}
	}
	return centered(cw, strings.Join(rows, "\n"))
}
