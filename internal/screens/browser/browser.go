// Package browser lists the catalog's sections and topics and shows the
// rules of a single topic.
package browser

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ctdguide/internal/catalog"
	"github.com/abhisek/ctdguide/internal/router"
	"github.com/abhisek/ctdguide/internal/screen"
	"github.com/abhisek/ctdguide/internal/ui/components"
	"github.com/abhisek/ctdguide/internal/ui/layout"
	"github.com/abhisek/ctdguide/internal/ui/theme"
)

type rowKind int

const (
	rowSectionHeader rowKind = iota
	rowTopic
)

type row struct {
	kind    rowKind
	section catalog.Section
	topic   *catalog.Topic
}

// BrowserScreen displays the catalog organized by section.
type BrowserScreen struct {
	cat          *catalog.Catalog
	filter       components.FilterInput
	rows         []row
	cursor       int
	scrollOffset int
}

var (
	_ screen.Screen          = (*BrowserScreen)(nil)
	_ screen.KeyHintProvider = (*BrowserScreen)(nil)
	_ screen.BackHandler     = (*BrowserScreen)(nil)
)

// New creates a BrowserScreen over cat.
func New(cat *catalog.Catalog) *BrowserScreen {
	b := &BrowserScreen{
		cat:    cat,
		filter: components.NewFilterInput("번호, 제목 또는 id", 40),
	}
	b.rebuild()
	return b
}

// rebuild recomputes the rows for the current filter and puts the
// cursor on the first topic.
func (b *BrowserScreen) rebuild() {
	b.rows = b.rows[:0]
	for _, sec := range b.cat.Sections() {
		var topics []row
		for i := range sec.Topics {
			t := &sec.Topics[i]
			if b.filter.Matches(t.ID, t.Title, t.Heading, fmt.Sprint(t.Number)) {
				topics = append(topics, row{kind: rowTopic, section: sec, topic: t})
			}
		}
		if len(topics) == 0 {
			continue
		}
		b.rows = append(b.rows, row{kind: rowSectionHeader, section: sec})
		b.rows = append(b.rows, topics...)
	}

	b.cursor, b.scrollOffset = 0, 0
	for i, r := range b.rows {
		if r.kind == rowTopic {
			b.cursor = i
			break
		}
	}
}

func (b *BrowserScreen) Init() tea.Cmd { return nil }

func (b *BrowserScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}

	if b.filter.Focused() {
		switch kmsg.String() {
		case "enter", "down":
			b.filter.Blur()
			return b, nil
		}
		var cmd tea.Cmd
		b.filter, cmd = b.filter.Update(msg)
		b.rebuild()
		return b, cmd
	}

	switch kmsg.String() {
	case "up", "k":
		b.moveCursor(-1)
	case "down", "j":
		b.moveCursor(1)
	case "tab":
		b.nextSection()
	case "shift+tab":
		b.prevSection()
	case "/":
		return b, b.filter.Focus()
	case "enter":
		return b, b.selectTopic()
	case "q":
		return b, router.Pop()
	}
	return b, nil
}

// Back closes the filter first, then leaves the screen.
func (b *BrowserScreen) Back() (tea.Cmd, bool) {
	if b.filter.Focused() || b.filter.Value() != "" {
		b.filter.Blur()
		b.filter.Clear()
		b.rebuild()
		return nil, true
	}
	return nil, false
}

func (b *BrowserScreen) Title() string {
	return "Catalog"
}

// KeyHints returns the key binding hints for the footer.
func (b *BrowserScreen) KeyHints() []layout.KeyHint {
	if b.filter.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Section"},
		{Key: "/", Description: "Filter"},
		{Key: "Enter", Description: "Rules"},
		{Key: "Esc", Description: "Back"},
	}
}

func (b *BrowserScreen) View(width, height int) string {
	head := "  " + b.filter.View()
	listHeight := max(height-2, 1)

	if len(b.rows) == 0 {
		return head + "\n\n" + theme.Locked.PaddingLeft(2).Render("일치하는 항목이 없습니다.")
	}

	b.adjustScroll(listHeight)

	var lines []string
	for i := b.scrollOffset; i < len(b.rows) && len(lines) < listHeight; i++ {
		r := b.rows[i]
		switch r.kind {
		case rowSectionHeader:
			lines = append(lines, b.renderSectionHeader(r.section, width))
		case rowTopic:
			lines = append(lines, b.renderTopicRow(r, i == b.cursor, width))
		}
	}
	return head + "\n\n" + strings.Join(lines, "\n")
}

// moveCursor moves the cursor by delta, skipping section headers.
func (b *BrowserScreen) moveCursor(delta int) {
	next := b.cursor + delta
	for next >= 0 && next < len(b.rows) {
		if b.rows[next].kind == rowTopic {
			b.cursor = next
			return
		}
		next += delta
	}
}

// nextSection jumps to the first topic of the next section.
func (b *BrowserScreen) nextSection() {
	if len(b.rows) == 0 {
		return
	}
	current := b.rows[b.cursor].section.ID
	for i := b.cursor + 1; i < len(b.rows); i++ {
		if b.rows[i].kind == rowTopic && b.rows[i].section.ID != current {
			b.cursor = i
			return
		}
	}
}

// prevSection jumps to the first topic of the previous section.
func (b *BrowserScreen) prevSection() {
	if len(b.rows) == 0 {
		return
	}
	current := b.rows[b.cursor].section.ID
	prev := ""
	for i := b.cursor - 1; i >= 0; i-- {
		if b.rows[i].kind == rowTopic && b.rows[i].section.ID != current {
			prev = b.rows[i].section.ID
			break
		}
	}
	if prev == "" {
		return
	}
	for i, r := range b.rows {
		if r.kind == rowTopic && r.section.ID == prev {
			b.cursor = i
			return
		}
	}
}

// adjustScroll keeps the cursor and its section header visible.
func (b *BrowserScreen) adjustScroll(height int) {
	headerRow := b.cursor
	for headerRow > 0 && b.rows[headerRow-1].kind == rowSectionHeader {
		headerRow--
	}
	if headerRow < b.scrollOffset {
		b.scrollOffset = headerRow
	}
	if b.cursor >= b.scrollOffset+height {
		b.scrollOffset = b.cursor - height + 1
	}
}

// selectTopic opens the detail screen for the topic under the cursor.
func (b *BrowserScreen) selectTopic() tea.Cmd {
	if len(b.rows) == 0 {
		return nil
	}
	r := b.rows[b.cursor]
	if r.kind != rowTopic || r.topic == nil {
		return nil
	}
	rules, err := b.cat.RulesFor(r.topic.ID)
	if err != nil {
		return nil
	}
	return router.Push(newTopicDetail(*r.topic, r.section, rules, b.cat))
}

func (b *BrowserScreen) renderSectionHeader(sec catalog.Section, width int) string {
	name := sec.Title
	if sec.Group != "" {
		name = sec.Group + "  ·  " + sec.Title
	}
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		PaddingLeft(2).
		Render(name)
}

func (b *BrowserScreen) renderTopicRow(r row, selected bool, width int) string {
	t := r.topic
	rules, _ := b.cat.RulesFor(t.ID)

	idWidth := 8
	countWidth := 10
	titleWidth := max(width-idWidth-countWidth-12, 10)

	title := fmt.Sprintf("%d. %s", t.Number, t.DisplayTitle())
	if lipgloss.Width(title) > titleWidth {
		title = truncate(title, titleWidth)
	}

	titleStyle := theme.Unselected
	idStyle := theme.Locked
	cursor := "  "
	if selected {
		cursor = "▸ "
		titleStyle = theme.Selected
		idStyle = lipgloss.NewStyle().Foreground(theme.Primary)
	}

	auto := ""
	if t.AutoSelect {
		auto = theme.Warning.Render(" ●")
	}

	return fmt.Sprintf("  %s%s %s%s  %s",
		cursor,
		idStyle.Width(idWidth).Render(t.ID),
		titleStyle.Width(titleWidth).Render(title),
		auto,
		theme.Locked.Render(fmt.Sprintf("%d rules", len(rules))),
	)
}

// truncate cuts s to at most w display cells, ending with an ellipsis.
func truncate(s string, w int) string {
	var sb strings.Builder
	for _, r := range s {
		if lipgloss.Width(sb.String()+string(r)) > w-1 {
			break
		}
		sb.WriteRune(r)
	}
	return sb.String() + "…"
}
