package home

import (
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ctdguide/internal/catalog"
	"github.com/abhisek/ctdguide/internal/router"
	"github.com/abhisek/ctdguide/internal/screen"
	"github.com/abhisek/ctdguide/internal/screens/browser"
	"github.com/abhisek/ctdguide/internal/screens/guide"
	"github.com/abhisek/ctdguide/internal/ui/components"
	"github.com/abhisek/ctdguide/internal/ui/layout"
	"github.com/abhisek/ctdguide/internal/ui/theme"
)

type stats struct {
	sections, topics, rules int
	version                 string
	tiers                   []catalog.Tier
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	cat   *catalog.Catalog
	menu  components.Menu
	stats stats
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen over cat. Each guide run gets its own session
// logged through logger.
func New(cat *catalog.Catalog, logger *slog.Logger) *HomeScreen {
	items := []components.MenuItem{
		{Label: "START GUIDE", Action: func() tea.Cmd {
			return router.Push(guide.Start(cat, logger))
		}},
		{Label: "BROWSE CATALOG", Action: func() tea.Cmd {
			return router.Push(browser.New(cat))
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		cat:  cat,
		menu: components.NewMenu(items),
		stats: stats{
			sections: len(cat.Sections()),
			topics:   len(cat.Topics()),
			rules:    cat.RuleCount(),
			version:  cat.Version(),
			tiers:    cat.Tiers(),
		},
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height)
	cw := components.ContentWidth(width)

	parts := []string{
		renderBanner(cw, compact),
		renderCatalogBox(h.stats, cw, compact),
		renderMenu(h.menu.Labels(), h.menu.Selected, cw, compact),
	}
	if !compact {
		parts = append(parts, centered(cw, theme.Hint.Render(h.cat.Guideline())))
	}
	return components.Frame(strings.Join(parts, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
