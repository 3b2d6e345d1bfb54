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

// SectionsScreen asks which CTD sections are changed.
type SectionsScreen struct {
	session *wizard.Session
	list    checklist
	notice  string
	err     string
}

var (
	_ screen.Screen          = (*SectionsScreen)(nil)
	_ screen.KeyHintProvider = (*SectionsScreen)(nil)
	_ screen.BackHandler     = (*SectionsScreen)(nil)
)

func newSectionsScreen(s *wizard.Session, notice string) *SectionsScreen {
	var rows []row
	group := ""
	for _, sec := range s.Catalog().Sections() {
		if sec.Group != group {
			group = sec.Group
			rows = append(rows, row{kind: rowHeader, label: group})
		}
		rows = append(rows, row{kind: rowItem, id: sec.ID, label: sec.Title})
	}
	return &SectionsScreen{session: s, list: newChecklist(rows), notice: notice}
}

func (s *SectionsScreen) Init() tea.Cmd  { return nil }
func (s *SectionsScreen) Title() string  { return "Changed Sections" }

func (s *SectionsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	s.err = ""

	switch kmsg.String() {
	case "up", "k":
		s.list.moveCursor(-1)
	case "down", "j":
		s.list.moveCursor(1)
	case "y", "right", "l":
		s.set(true)
	case "n", "left", "h":
		s.set(false)
	case "space", " ":
		if r, ok := s.list.current(); ok {
			changed, answered := s.session.SectionChanged(r.id)
			s.set(!answered || !changed)
		}
	case "a":
		for _, r := range s.list.items() {
			if _, answered := s.session.SectionChanged(r.id); !answered {
				_ = s.session.SetSectionChanged(r.id, false)
			}
		}
	case "enter":
		if err := s.session.ConfirmSections(); err != nil {
			s.err = errorText(err)
			return s, nil
		}
		return s, advance(s.session)
	}
	return s, nil
}

func (s *SectionsScreen) set(changed bool) {
	r, ok := s.list.current()
	if !ok {
		return
	}
	if err := s.session.SetSectionChanged(r.id, changed); err != nil {
		s.err = errorText(err)
		return
	}
	s.list.moveCursor(1)
}

// Back returns to the last eligibility question.
func (s *SectionsScreen) Back() (tea.Cmd, bool) {
	return back(s.session)
}

func (s *SectionsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Y/N", Description: "Changed/Unchanged"},
		{Key: "A", Description: "Rest unchanged"},
		{Key: "Enter", Description: "Confirm"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SectionsScreen) View(width, height int) string {
	var top []string
	if n := renderNotice(s.notice, textWidth(width)); n != "" {
		top = append(top, n, "")
	}
	top = append(top, lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		PaddingLeft(2).
		Render("변경하려는 항목이 속한 CTD 단락을 모두 선택하십시오."), "")

	bottom := renderMessage(s.err, width)

	used := lipgloss.Height(strings.Join(top, "\n")) + 1
	if bottom != "" {
		used += lipgloss.Height(bottom) + 1
	}
	body := s.list.view(width, max(height-used, 1), func(r row) mark {
		return changeMark(s.session.SectionChanged(r.id))
	})

	out := strings.Join(top, "\n") + "\n" + body
	if bottom != "" {
		out += "\n\n" + bottom
	}
	return out
}
