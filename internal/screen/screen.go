package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ctdguide/internal/ui/layout"
)

// Screen is one page of the terminal UI.
type Screen interface {
	// Init returns an initial command when the screen becomes active.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content between header and footer.
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens that supply their own
// footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// BackHandler is implemented by screens that handle Esc themselves
// instead of being popped off the stack. Back returns the command to
// run and whether the key was consumed.
type BackHandler interface {
	Back() (tea.Cmd, bool)
}
