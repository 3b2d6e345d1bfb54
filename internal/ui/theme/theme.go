// Package theme holds the palette and shared lipgloss styles.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette. Dark background, low-saturation text for long review sessions.
var (
	Primary   = lipgloss.Color("#6366F1") // indigo
	Secondary = lipgloss.Color("#14B8A6") // teal
	Accent    = lipgloss.Color("#F59E0B") // amber
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Highlight = lipgloss.Color("#FACC15")
	Info      = lipgloss.Color("#22D3EE")

	Text    = lipgloss.Color("#F8FAFC")
	TextDim = lipgloss.Color("#94A3B8")
	BgDark  = lipgloss.Color("#0F172A")
	BgPanel = lipgloss.Color("#1E293B")
	Border  = lipgloss.Color("#334155")
)

// tierColors runs from the lightest reporting burden to the heaviest.
var tierColors = map[string]color.Color{
	"AR":   Success,
	"IR":   Secondary,
	"Cmin": Accent,
	"Cmaj": Error,
}

// TierColor returns the display color of a reporting tier code.
func TierColor(code string) color.Color {
	if c, ok := tierColors[code]; ok {
		return c
	}
	return Text
}

// TierBadge renders a tier code as a bold colored badge.
func TierBadge(code string) string {
	return lipgloss.NewStyle().
		Foreground(BgDark).
		Background(TierColor(code)).
		Bold(true).
		Padding(0, 1).
		Render(code)
}

var (
	Header = lipgloss.NewStyle().Background(BgPanel).Padding(0, 2)
	Footer = lipgloss.NewStyle().Background(BgPanel).Padding(0, 2)

	Hint           = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
	SectionHeading = lipgloss.NewStyle().Foreground(Secondary).Bold(true)

	// List rows.
	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Locked     = lipgloss.NewStyle().Foreground(TextDim)

	// Answer marks and notices.
	Positive = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Warning  = lipgloss.NewStyle().Foreground(Accent)
)
