package guide

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/ctdguide/internal/ui/theme"
)

type rowKind int

const (
	rowHeader rowKind = iota
	rowItem
)

type row struct {
	kind   rowKind
	id     string
	label  string
	note   string
	locked bool
}

// mark is the answer column of one item row.
type mark struct {
	text  string
	style lipgloss.Style
}

// checklist is a scrollable list of answerable items grouped under
// headers. Headers are never selectable.
type checklist struct {
	rows         []row
	cursor       int
	scrollOffset int
}

func newChecklist(rows []row) checklist {
	c := checklist{rows: rows}
	for i, r := range rows {
		if r.kind == rowItem {
			c.cursor = i
			break
		}
	}
	return c
}

// current returns the item under the cursor.
func (c *checklist) current() (row, bool) {
	if c.cursor < 0 || c.cursor >= len(c.rows) || c.rows[c.cursor].kind != rowItem {
		return row{}, false
	}
	return c.rows[c.cursor], true
}

func (c *checklist) items() []row {
	var out []row
	for _, r := range c.rows {
		if r.kind == rowItem {
			out = append(out, r)
		}
	}
	return out
}

// moveCursor moves the cursor by delta, skipping headers.
func (c *checklist) moveCursor(delta int) {
	next := c.cursor + delta
	for next >= 0 && next < len(c.rows) {
		if c.rows[next].kind == rowItem {
			c.cursor = next
			return
		}
		next += delta
	}
}

// adjustScroll keeps the cursor and its header inside the window.
func (c *checklist) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	top := c.cursor
	for top > 0 && c.rows[top-1].kind == rowHeader {
		top--
	}
	if top < c.scrollOffset {
		c.scrollOffset = top
	}
	if c.cursor >= c.scrollOffset+height {
		c.scrollOffset = c.cursor - height + 1
	}
}

func (c *checklist) view(width, height int, markOf func(r row) mark) string {
	c.adjustScroll(height)

	var lines []string
	for i := c.scrollOffset; i < len(c.rows) && len(lines) < height; i++ {
		r := c.rows[i]
		if r.kind == rowHeader {
			lines = append(lines, theme.SectionHeading.PaddingLeft(2).Render(r.label))
			continue
		}
		lines = append(lines, renderItem(r, markOf(r), i == c.cursor, width))
	}
	return strings.Join(lines, "\n")
}

const markWidth = 10

func renderItem(r row, m mark, selected bool, width int) string {
	cursor := "  "
	labelStyle := theme.Unselected
	if selected {
		cursor = "▸ "
		labelStyle = theme.Selected
	}
	if r.locked && !selected {
		labelStyle = theme.Locked
	}

	labelWidth := max(width-markWidth-12, 10)
	label := r.label
	if lipgloss.Width(label) > labelWidth {
		label = truncate(label, labelWidth)
	}
	if r.note != "" {
		label += theme.Locked.Render("  " + r.note)
	}

	return fmt.Sprintf("  %s%s %s",
		cursor,
		m.style.Width(markWidth+2).Render("["+m.text+"]"),
		labelStyle.Render(label),
	)
}

// truncate cuts s to at most w display cells, ending with an ellipsis.
func truncate(s string, w int) string {
	var b strings.Builder
	for _, r := range s {
		if lipgloss.Width(b.String()+string(r)) > w-1 {
			break
		}
		b.WriteRune(r)
	}
	return b.String() + "…"
}

// changeMark renders a changed/unchanged answer.
func changeMark(changed, answered bool) mark {
	switch {
	case !answered:
		return mark{text: "  -  ", style: theme.Warning}
	case changed:
		return mark{text: "변경 있음", style: theme.Positive}
	default:
		return mark{text: "변경 없음", style: theme.Locked}
	}
}
