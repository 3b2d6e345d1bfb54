package browser

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ctdguide/internal/catalog"
	"github.com/abhisek/ctdguide/internal/screen"
	"github.com/abhisek/ctdguide/internal/ui/layout"
	"github.com/abhisek/ctdguide/internal/ui/theme"
)

// TopicDetailScreen shows the questions and rules of one topic.
type TopicDetailScreen struct {
	topic        catalog.Topic
	section      catalog.Section
	rules        []catalog.Rule
	cat          *catalog.Catalog
	scrollOffset int
}

var _ screen.Screen = (*TopicDetailScreen)(nil)
var _ screen.KeyHintProvider = (*TopicDetailScreen)(nil)

func newTopicDetail(t catalog.Topic, sec catalog.Section, rules []catalog.Rule, cat *catalog.Catalog) *TopicDetailScreen {
	return &TopicDetailScreen{topic: t, section: sec, rules: rules, cat: cat}
}

func (d *TopicDetailScreen) Init() tea.Cmd { return nil }
func (d *TopicDetailScreen) Title() string { return d.topic.ID }

func (d *TopicDetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up", "k":
			d.scrollOffset = max(d.scrollOffset-1, 0)
		case "down", "j":
			d.scrollOffset++
		case "pgup":
			d.scrollOffset = max(d.scrollOffset-10, 0)
		case "pgdown", "space", " ":
			d.scrollOffset += 10
		}
	}
	return d, nil
}

func (d *TopicDetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *TopicDetailScreen) View(width, height int) string {
	lines := strings.Split(d.render(width), "\n")
	d.scrollOffset = min(d.scrollOffset, max(len(lines)-height, 0))
	end := min(d.scrollOffset+height, len(lines))
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top,
		strings.Join(lines[d.scrollOffset:end], "\n"))
}

func (d *TopicDetailScreen) render(width int) string {
	t := d.topic
	contentWidth := min(width-8, 90)

	heading := theme.SectionHeading
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	valStyle := lipgloss.NewStyle().Foreground(theme.Text)
	wrap := lipgloss.NewStyle().Width(contentWidth).PaddingLeft(4)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Width(contentWidth).
		PaddingLeft(2).
		Render(fmt.Sprintf("%d. %s", t.Number, t.DisplayTitle())))
	b.WriteString("\n")
	if t.Heading != "" {
		b.WriteString(dimStyle.PaddingLeft(2).Render(t.Title) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(dimStyle.Render("  Section:   ") + valStyle.Render(d.section.Title) + "\n")
	b.WriteString(dimStyle.Render("  Topic id:  ") + valStyle.Render(t.ID) + "\n")
	if t.AutoSelect {
		b.WriteString(dimStyle.Render("  Selection: ") + theme.Warning.Render("자동 선택") + "\n")
	}
	b.WriteString("\n")

	if len(t.SubVariants) > 0 {
		b.WriteString(heading.Render("  변경 유형") + "\n")
		for _, sv := range t.SubVariants {
			tag := ""
			if t.IsForced(sv.ID) {
				tag = theme.Warning.Render(" [고정]")
			} else if p, ok := t.Partner(sv.ID); ok {
				tag = theme.Locked.Render(" [↔ " + p + "]")
			}
			b.WriteString(wrap.Render(valStyle.Render(sv.ID+"  ")+sv.Label+tag) + "\n")
		}
		b.WriteString("\n")
	}

	if len(t.Requirements) > 0 {
		b.WriteString(heading.Render("  충족 조건") + "\n")
		for _, r := range t.Requirements {
			b.WriteString(wrap.Render(valStyle.Render(r.ID+"  ")+r.Label) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(heading.Render(fmt.Sprintf("  규칙 (%d)", len(d.rules))) + "\n")
	for i, r := range d.rules {
		name := r.Tier
		if tier, ok := d.cat.Tier(r.Tier); ok {
			name = tier.Name
		}
		b.WriteString(fmt.Sprintf("  #%d %s %s\n", i+1, theme.TierBadge(r.Tier), valStyle.Render(name)))
		b.WriteString(dimStyle.Render(wrap.Render(predicate(r))) + "\n")
		b.WriteString(wrap.Render(r.Documents) + "\n\n")
	}

	return b.String()
}

// predicate renders a rule's conditions on one line.
func predicate(r catalog.Rule) string {
	if r.Unconditional() {
		return "조건 없음"
	}
	var parts []string
	if r.SubVariant != "" {
		parts = append(parts, r.SubVariant+" 변경 있음")
	}
	if len(r.Satisfied) > 0 {
		parts = append(parts, "충족: "+strings.Join(r.Satisfied, ", "))
	}
	if len(r.Unsatisfied) > 0 {
		parts = append(parts, "미충족: "+strings.Join(r.Unsatisfied, ", "))
	}
	return strings.Join(parts, " · ")
}
