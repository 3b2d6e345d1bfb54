package guide

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ctdguide/internal/router"
	"github.com/abhisek/ctdguide/internal/screen"
	"github.com/abhisek/ctdguide/internal/ui/components"
	"github.com/abhisek/ctdguide/internal/ui/layout"
	"github.com/abhisek/ctdguide/internal/ui/theme"
	"github.com/abhisek/ctdguide/internal/wizard"
)

// GateScreen asks one eligibility question. A "no" shows the gate's
// fail text and holds the guide until the user goes back.
type GateScreen struct {
	session *wizard.Session
	choice  components.Choice
	notice  string
	err     string
}

var (
	_ screen.Screen          = (*GateScreen)(nil)
	_ screen.KeyHintProvider = (*GateScreen)(nil)
	_ screen.BackHandler     = (*GateScreen)(nil)
)

func newGateScreen(s *wizard.Session, notice string) *GateScreen {
	g, _ := s.Gate()
	return &GateScreen{
		session: s,
		choice:  components.NewYesNo(g.Question),
		notice:  notice,
	}
}

func (g *GateScreen) Init() tea.Cmd { return nil }

func (g *GateScreen) Title() string {
	_, idx := g.session.Gate()
	return fmt.Sprintf("Eligibility %d/%d", idx+1, g.session.GateCount())
}

func (g *GateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); !ok {
		return g, nil
	}

	if g.session.Stopped() {
		if k := msg.(tea.KeyMsg).String(); k == "enter" || k == "b" {
			cmd, _ := g.Back()
			return g, cmd
		}
		return g, nil
	}

	g.choice, _ = g.choice.Update(msg)
	if !g.choice.Submitted {
		return g, nil
	}

	text, err := g.session.AnswerGate(g.choice.Yes())
	if err != nil {
		g.err = errorText(err)
		g.choice.Reset()
		return g, nil
	}
	if g.session.Stopped() {
		return g, nil
	}
	return g, router.Replace(stepWithNotice(g.session, text))
}

// Back clears a stop, or returns to the previous gate. On the first gate
// it leaves the guide.
func (g *GateScreen) Back() (tea.Cmd, bool) {
	if g.session.Stopped() {
		_ = g.session.BackGate()
		g.choice.Reset()
		return nil, true
	}
	if _, idx := g.session.Gate(); idx <= 0 {
		return nil, false
	}
	return back(g.session)
}

func (g *GateScreen) KeyHints() []layout.KeyHint {
	if g.session.Stopped() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Change answer"},
			{Key: "Esc", Description: "Change answer"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Y/N", Description: "Answer"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (g *GateScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	tw := cw - 6

	var sections []string
	if n := renderNotice(g.notice, tw); n != "" && !g.session.Stopped() {
		sections = append(sections, n)
	}

	if g.session.Stopped() {
		sections = append(sections,
			components.Heading("가이드라인 적용 대상이 아닙니다", cw),
			components.Panel(lipgloss.NewStyle().
				Foreground(theme.Error).
				Width(tw).
				Render(g.session.StopReason()), cw, theme.Error),
		)
	} else {
		_, idx := g.session.Gate()
		sections = append(sections,
			components.Heading(fmt.Sprintf("사전 확인 %d / %d", idx+1, g.session.GateCount()), cw),
			components.Panel(lipgloss.NewStyle().Width(tw).Render(g.choice.View()), cw, nil),
		)
	}
	if e := renderMessage(g.err, cw); e != "" {
		sections = append(sections, e)
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}
