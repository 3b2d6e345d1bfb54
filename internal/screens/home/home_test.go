package home

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ctdguide/internal/catalog"
	"github.com/abhisek/ctdguide/internal/router"
	"github.com/abhisek/ctdguide/internal/screens/browser"
	"github.com/abhisek/ctdguide/internal/screens/guide"
)

func newTestHome() *HomeScreen {
	return New(catalog.Default(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestStats(t *testing.T) {
	h := newTestHome()
	cat := catalog.Default()
	if h.stats.sections != len(cat.Sections()) || h.stats.topics != len(cat.Topics()) {
		t.Errorf("stats = %+v", h.stats)
	}
	if h.stats.rules != cat.RuleCount() {
		t.Errorf("rules = %d, want %d", h.stats.rules, cat.RuleCount())
	}
}

func TestViewShowsMenuAndCounts(t *testing.T) {
	h := newTestHome()
	view := h.View(120, 40)
	for _, want := range []string{"START GUIDE", "BROWSE CATALOG", "EXIT", "TOPICS", catalog.Default().Version()} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	compact := h.View(80, 18)
	if !strings.Contains(compact, "START GUIDE") {
		t.Error("compact view missing menu")
	}
}

func TestStartGuidePushesGate(t *testing.T) {
	h := newTestHome()
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg")
	}
	if _, ok := msg.Screen.(*guide.GateScreen); !ok {
		t.Errorf("pushed %T, want *guide.GateScreen", msg.Screen)
	}
}

func TestBrowsePushesBrowser(t *testing.T) {
	h := newTestHome()
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg")
	}
	if _, ok := msg.Screen.(*browser.BrowserScreen); !ok {
		t.Errorf("pushed %T, want *browser.BrowserScreen", msg.Screen)
	}
}
