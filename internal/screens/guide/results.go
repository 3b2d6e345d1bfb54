package guide

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ctdguide/internal/report"
	"github.com/abhisek/ctdguide/internal/router"
	"github.com/abhisek/ctdguide/internal/screen"
	"github.com/abhisek/ctdguide/internal/ui/layout"
	"github.com/abhisek/ctdguide/internal/ui/theme"
	"github.com/abhisek/ctdguide/internal/wizard"
)

// ResultsScreen shows the text report of a finished session.
type ResultsScreen struct {
	session *wizard.Session
	rep     report.Report
	vp      viewport.Model
	err     string
}

var (
	_ screen.Screen          = (*ResultsScreen)(nil)
	_ screen.KeyHintProvider = (*ResultsScreen)(nil)
	_ screen.BackHandler     = (*ResultsScreen)(nil)
)

// tierLine matches the outcome line of the text report, e.g. "  [IR] 시판전보고".
var tierLine = regexp.MustCompile(`^  \[(\w+)\] (.*)$`)

func newResultsScreen(s *wizard.Session) *ResultsScreen {
	r := &ResultsScreen{session: s, vp: viewport.New()}
	r.vp.SoftWrap = true
	results, err := s.Results()
	if err != nil {
		r.err = errorText(err)
		return r
	}
	r.rep = report.New(s.Catalog(), results)

	var buf bytes.Buffer
	if err := report.WriteText(&buf, r.rep); err != nil {
		r.err = errorText(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	for i, l := range lines {
		if m := tierLine.FindStringSubmatch(l); m != nil {
			lines[i] = "  " + theme.TierBadge(m[1]) + " " + lipgloss.NewStyle().Bold(true).Render(m[2])
		}
	}
	r.vp.SetContentLines(lines)
	return r
}

func (r *ResultsScreen) Init() tea.Cmd { return nil }
func (r *ResultsScreen) Title() string { return "Results" }

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}
	switch kmsg.String() {
	case "home", "g":
		r.vp.GotoTop()
		return r, nil
	case "end", "G":
		r.vp.GotoBottom()
		return r, nil
	case "enter", "q":
		if r.session.Phase() == wizard.PhaseResults {
			if err := r.session.Finish(); err != nil {
				r.err = errorText(err)
				return r, nil
			}
		}
		return r, router.Pop()
	}

	var cmd tea.Cmd
	r.vp, cmd = r.vp.Update(msg)
	return r, cmd
}

// Back reopens the last answered step.
func (r *ResultsScreen) Back() (tea.Cmd, bool) {
	return back(r.session)
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "PgUp/PgDn", Description: "Page"},
		{Key: "G", Description: "Top/Bottom"},
		{Key: "Enter", Description: "Done"},
		{Key: "Esc", Description: "Edit answers"},
	}
}

// summary counts the tiers across all results.
func (r *ResultsScreen) summary() string {
	counts := make(map[string]int)
	outOfScope := 0
	for _, res := range r.rep.Results {
		if res.OutOfScope() {
			outOfScope++
		}
		for _, o := range res.Outcomes {
			counts[o.Tier]++
		}
	}

	var parts []string
	for _, t := range r.session.Catalog().Tiers() {
		if n := counts[t.Code]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", theme.TierBadge(t.Code), n))
		}
	}
	if outOfScope > 0 {
		parts = append(parts, theme.Locked.Render(fmt.Sprintf("범위 밖 %d", outOfScope)))
	}
	if len(parts) == 0 {
		return ""
	}
	return "  " + strings.Join(parts, "  ")
}

func (r *ResultsScreen) View(width, height int) string {
	var head []string
	if s := r.summary(); s != "" {
		head = append(head, s, "")
	}
	if e := renderMessage(r.err, width); e != "" {
		head = append(head, e, "")
	}

	r.vp.SetWidth(max(width-2, 10))
	r.vp.SetHeight(max(height-len(head), 1))
	body := lipgloss.NewStyle().PaddingLeft(2).Render(r.vp.View())
	return strings.Join(append(head, body), "\n")
}
