package guide

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ctdguide/internal/screen"
	"github.com/abhisek/ctdguide/internal/ui/layout"
	"github.com/abhisek/ctdguide/internal/ui/theme"
	"github.com/abhisek/ctdguide/internal/wizard"
)

// TopicsScreen asks which topics of the changed sections apply.
// Auto-selected topics are shown locked.
type TopicsScreen struct {
	session *wizard.Session
	list    checklist
	err     string
}

var (
	_ screen.Screen          = (*TopicsScreen)(nil)
	_ screen.KeyHintProvider = (*TopicsScreen)(nil)
	_ screen.BackHandler     = (*TopicsScreen)(nil)
)

func newTopicsScreen(s *wizard.Session) *TopicsScreen {
	cat := s.Catalog()
	var rows []row
	for _, id := range s.ChangedSections() {
		sec, _ := cat.Section(id)
		rows = append(rows, row{kind: rowHeader, label: sec.Title})
		for _, t := range cat.TopicsIn(id) {
			r := row{kind: rowItem, id: t.ID, label: topicLabel(t.Number, t.DisplayTitle())}
			if t.AutoSelect {
				r.locked = true
				r.note = "자동 선택"
			}
			rows = append(rows, r)
		}
	}
	return &TopicsScreen{session: s, list: newChecklist(rows)}
}

func (t *TopicsScreen) Init() tea.Cmd { return nil }
func (t *TopicsScreen) Title() string { return "Changed Topics" }

func (t *TopicsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}
	t.err = ""

	switch kmsg.String() {
	case "up", "k":
		t.list.moveCursor(-1)
	case "down", "j":
		t.list.moveCursor(1)
	case "y", "right", "l":
		t.set(true)
	case "n", "left", "h":
		t.set(false)
	case "space", " ":
		if r, ok := t.list.current(); ok {
			changed, answered := t.session.TopicChanged(r.id)
			t.set(!answered || !changed)
		}
	case "a":
		for _, r := range t.list.items() {
			if _, answered := t.session.TopicChanged(r.id); !answered {
				_ = t.session.SetTopicChanged(r.id, false)
			}
		}
	case "enter":
		if err := t.session.ConfirmTopics(); err != nil {
			t.err = errorText(err)
			return t, nil
		}
		return t, advance(t.session)
	}
	return t, nil
}

func (t *TopicsScreen) set(changed bool) {
	r, ok := t.list.current()
	if !ok {
		return
	}
	if err := t.session.SetTopicChanged(r.id, changed); err != nil {
		t.err = errorText(err)
		return
	}
	t.list.moveCursor(1)
}

// Back returns to section selection.
func (t *TopicsScreen) Back() (tea.Cmd, bool) {
	return back(t.session)
}

func (t *TopicsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Y/N", Description: "Changed/Unchanged"},
		{Key: "A", Description: "Rest unchanged"},
		{Key: "Enter", Description: "Confirm"},
		{Key: "Esc", Description: "Back"},
	}
}

func (t *TopicsScreen) View(width, height int) string {
	head := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		PaddingLeft(2).
		Render("변경하려는 항목을 모두 선택하십시오.")

	bottom := renderMessage(t.err, width)
	used := lipgloss.Height(head) + 2
	if bottom != "" {
		used += lipgloss.Height(bottom) + 1
	}
	body := t.list.view(width, max(height-used, 1), func(r row) mark {
		return changeMark(t.session.TopicChanged(r.id))
	})

	parts := []string{head, "", body}
	if bottom != "" {
		parts = append(parts, "", bottom)
	}
	return strings.Join(parts, "\n")
}
