// Package guide implements the step-by-step classification screens. Each
// screen renders one phase of a wizard.Session and replaces itself with
// the next screen when the session moves on.
package guide

import (
	"errors"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ctdguide/internal/catalog"
	"github.com/abhisek/ctdguide/internal/router"
	"github.com/abhisek/ctdguide/internal/screen"
	"github.com/abhisek/ctdguide/internal/selection"
	"github.com/abhisek/ctdguide/internal/ui/theme"
	"github.com/abhisek/ctdguide/internal/wizard"
)

// Start opens a new session on cat and returns its first screen.
func Start(cat *catalog.Catalog, logger *slog.Logger) screen.Screen {
	return Step(wizard.New(cat, logger))
}

// Step returns the screen for the session's current phase.
func Step(s *wizard.Session) screen.Screen {
	return stepWithNotice(s, "")
}

func stepWithNotice(s *wizard.Session, notice string) screen.Screen {
	switch s.Phase() {
	case wizard.PhaseGates:
		return newGateScreen(s, notice)
	case wizard.PhaseSections:
		return newSectionsScreen(s, notice)
	case wizard.PhaseTopics:
		return newTopicsScreen(s)
	case wizard.PhaseAnswers:
		return newAnswersScreen(s)
	default:
		return newResultsScreen(s)
	}
}

// advance replaces the active screen with the one for the session's phase.
func advance(s *wizard.Session) tea.Cmd {
	return router.Replace(Step(s))
}

// back steps the session back one phase and shows the matching screen.
func back(s *wizard.Session) (tea.Cmd, bool) {
	if err := s.Back(); err != nil {
		return nil, false
	}
	return advance(s), true
}

// errorText turns session and store errors into a message for the user.
func errorText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, wizard.ErrIncomplete):
		return "답하지 않은 항목이 있습니다 (" + err.Error() + ")"
	case errors.Is(err, wizard.ErrAutoSelected):
		return "이 항목은 해당 단락이 변경되면 항상 변경으로 처리됩니다"
	case errors.Is(err, selection.ErrForced):
		return "이 변경 유형은 항상 '변경 있음'으로 고정되어 있습니다"
	default:
		return err.Error()
	}
}

func renderMessage(msg string, width int) string {
	if msg == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(theme.Error).
		Width(width).
		PaddingLeft(2).
		Render("! " + msg)
}

func renderNotice(msg string, width int) string {
	if msg == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(theme.Success).
		Width(width).
		PaddingLeft(2).
		Render(msg)
}

// textWidth caps the wrap width of long catalog text.
func textWidth(width int) int {
	return min(max(width-8, 20), 90)
}

func topicLabel(number int, title string) string {
	return fmt.Sprintf("%d. %s", number, title)
}
