package app

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ctdguide/internal/catalog"
	"github.com/abhisek/ctdguide/internal/router"
	"github.com/abhisek/ctdguide/internal/screen"
	"github.com/abhisek/ctdguide/internal/screens/home"
	"github.com/abhisek/ctdguide/internal/ui/layout"
)

// Options configures the terminal UI.
type Options struct {
	Catalog *catalog.Catalog
	Logger  *slog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	version string
	width   int
	height  int
}

// newAppModel creates an AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	return AppModel{
		router:  router.New(home.New(opts.Catalog, opts.Logger), opts.Logger),
		version: opts.Catalog.Version(),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok {
				if cmd, consumed := bh.Back(); consumed {
					return m, cmd
				}
			}
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

var (
	rootHints = []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	nestedHints = []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
)

// footerHints prefers the active screen's own hints.
func (m AppModel) footerHints() []layout.KeyHint {
	switch p, ok := m.router.Active().(screen.KeyHintProvider); {
	case ok:
		return p.KeyHints()
	case m.router.Depth() > 1:
		return nestedHints
	default:
		return rootHints
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	title := strings.Join(m.router.Trail(), " › ")
	header := layout.RenderHeader(title, m.version, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the terminal UI and blocks until it exits.
func Run(opts Options) error {
	if opts.Catalog == nil {
		return errors.New("app: catalog is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	start := time.Now()
	_, err := tea.NewProgram(newAppModel(opts)).Run()
	opts.Logger.Info("tui exited", "duration", time.Since(start).Round(time.Second), "error", err)
	return err
}
