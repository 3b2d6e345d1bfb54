package guide

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ctdguide/internal/catalog"
	"github.com/abhisek/ctdguide/internal/classify"
	"github.com/abhisek/ctdguide/internal/screen"
	"github.com/abhisek/ctdguide/internal/selection"
	"github.com/abhisek/ctdguide/internal/ui/components"
	"github.com/abhisek/ctdguide/internal/ui/layout"
	"github.com/abhisek/ctdguide/internal/ui/theme"
	"github.com/abhisek/ctdguide/internal/wizard"
)

// AnswersScreen collects sub-variant and requirement answers for the
// current target topic.
type AnswersScreen struct {
	session *wizard.Session
	topic   catalog.Topic
	store   *selection.Store
	engine  *classify.Engine
	list    checklist
	err     string
}

var (
	_ screen.Screen          = (*AnswersScreen)(nil)
	_ screen.KeyHintProvider = (*AnswersScreen)(nil)
	_ screen.BackHandler     = (*AnswersScreen)(nil)
)

func newAnswersScreen(s *wizard.Session) *AnswersScreen {
	topic, _ := s.CurrentTopic()

	var rows []row
	if len(topic.SubVariants) > 0 {
		rows = append(rows, row{kind: rowHeader, label: "변경 유형"})
		for _, sv := range topic.SubVariants {
			r := row{kind: rowItem, id: sv.ID, label: sv.Label}
			if topic.IsForced(sv.ID) {
				r.locked = true
				r.note = "고정"
			} else if p, ok := topic.Partner(sv.ID); ok {
				r.note = "↔ " + p
			}
			rows = append(rows, r)
		}
	}
	if len(topic.Requirements) > 0 {
		rows = append(rows, row{kind: rowHeader, label: "충족 조건"})
		for _, req := range topic.Requirements {
			rows = append(rows, row{kind: rowItem, id: req.ID, label: req.Label})
		}
	}

	return &AnswersScreen{
		session: s,
		topic:   topic,
		store:   s.Store(),
		engine:  classify.New(s.Catalog()),
		list:    newChecklist(rows),
	}
}

func (a *AnswersScreen) Init() tea.Cmd { return nil }

func (a *AnswersScreen) Title() string {
	return fmt.Sprintf("Topic %d/%d", a.session.Current()+1, len(a.session.Targets()))
}

func (a *AnswersScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || a.store == nil {
		return a, nil
	}
	a.err = ""

	switch kmsg.String() {
	case "up", "k":
		a.list.moveCursor(-1)
	case "down", "j":
		a.list.moveCursor(1)
	case "space", " ":
		if r, ok := a.list.current(); ok {
			a.setErr(a.store.Toggle(r.id))
		}
	case "y", "right", "l":
		a.answer(true)
	case "n", "left", "h":
		a.answer(false)
	case "r":
		a.store.Reset()
	case "enter", "tab":
		if err := a.session.NextTopic(); err != nil {
			a.setErr(err)
			return a, nil
		}
		return a, advance(a.session)
	}
	return a, nil
}

// answer records a positive or negative answer for the row under the
// cursor and moves down.
func (a *AnswersScreen) answer(positive bool) {
	r, ok := a.list.current()
	if !ok {
		return
	}
	var err error
	switch {
	case a.topic.HasSubVariant(r.id):
		v := catalog.AnswerAbsent
		if positive {
			v = catalog.AnswerPresent
		}
		err = a.store.SetSubVariant(r.id, v)
	default:
		v := catalog.AnswerUnsatisfied
		if positive {
			v = catalog.AnswerSatisfied
		}
		err = a.store.SetRequirement(r.id, v)
	}
	if err != nil {
		a.setErr(err)
		return
	}
	a.list.moveCursor(1)
}

func (a *AnswersScreen) setErr(err error) {
	a.err = errorText(err)
}

// Back goes to the previous topic, or to topic selection from the first.
func (a *AnswersScreen) Back() (tea.Cmd, bool) {
	return back(a.session)
}

func (a *AnswersScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Y/N", Description: "Answer"},
		{Key: "Space", Description: "Toggle"},
		{Key: "R", Description: "Reset"},
		{Key: "Enter", Description: "Next topic"},
		{Key: "Esc", Description: "Previous"},
	}
}

func (a *AnswersScreen) View(width, height int) string {
	if a.store == nil {
		return ""
	}
	tw := textWidth(width)
	cat := a.session.Catalog()
	sec, _ := cat.Section(a.topic.Section())

	progress := components.NewStepProgress("주제", a.session.Current()+1, len(a.session.Targets()), min(width-4, 60))

	head := []string{
		"  " + progress.View(),
		"",
		lipgloss.NewStyle().Foreground(theme.TextDim).PaddingLeft(2).Render(sec.Title),
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).PaddingLeft(2).Width(tw).
			Render(topicLabel(a.topic.Number, a.topic.DisplayTitle())),
		"",
	}
	foot := []string{"", a.preview(tw)}
	if e := renderMessage(a.err, tw); e != "" {
		foot = append(foot, e)
	}

	headStr := strings.Join(head, "\n")
	footStr := strings.Join(foot, "\n")
	listHeight := max(height-lipgloss.Height(headStr)-lipgloss.Height(footStr), 1)

	body := a.list.view(width, listHeight, func(r row) mark {
		return answerMark(a.store.Answer(r.id))
	})
	return headStr + "\n" + body + "\n" + footStr
}

// preview shows the outcome the current answers would produce.
func (a *AnswersScreen) preview(width int) string {
	if missing := a.store.Missing(); len(missing) > 0 {
		return theme.Warning.PaddingLeft(2).Render(fmt.Sprintf("미응답 %d개", len(missing)))
	}
	outcomes, err := a.engine.Classify(a.topic.ID, a.store)
	if err != nil {
		return renderMessage(err.Error(), width)
	}
	if len(outcomes) == 0 {
		return theme.Locked.PaddingLeft(2).Render("예상 결과: 가이드라인 범위 밖")
	}
	badges := make([]string, len(outcomes))
	for i, o := range outcomes {
		badges[i] = theme.TierBadge(o.Tier)
	}
	return "  " + theme.Locked.Render("예상 결과: ") + strings.Join(badges, " ")
}

func answerMark(ans catalog.Answer) mark {
	switch ans {
	case catalog.AnswerPresent, catalog.AnswerSatisfied:
		return mark{text: ans.Label(), style: theme.Positive}
	case catalog.AnswerAbsent, catalog.AnswerUnsatisfied:
		return mark{text: ans.Label(), style: theme.Locked}
	default:
		return mark{text: "  -  ", style: theme.Warning}
	}
}
