package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMenuWraps(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "a"}, {Label: "b"}, {Label: "c"}})
	m, _ = m.Update(key(tea.KeyUp))
	if m.Selected != 2 {
		t.Errorf("up from first = %d, want 2", m.Selected)
	}
	m, _ = m.Update(key(tea.KeyDown))
	if m.Selected != 0 {
		t.Errorf("down from last = %d, want 0", m.Selected)
	}
	if got := strings.Join(m.Labels(), ","); got != "a,b,c" {
		t.Errorf("Labels() = %q", got)
	}
}

func TestMenuEnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "go", Action: func() tea.Cmd {
		ran = true
		return nil
	}}})
	m.Update(key(tea.KeyEnter))
	if !ran {
		t.Error("expected action to run on enter")
	}
}

func TestChoiceYesNoKeys(t *testing.T) {
	c := NewYesNo("계속할까요?")
	c, _ = c.Update(key('n'))
	if !c.Submitted || c.Yes() {
		t.Fatalf("n should submit no, got %+v", c)
	}

	// Submitted choices ignore input until reset.
	c, _ = c.Update(key('y'))
	if c.Yes() {
		t.Error("submitted choice should not change")
	}

	c.Reset()
	c, _ = c.Update(key(tea.KeyEnter))
	if !c.Yes() {
		t.Error("enter on first option should be yes")
	}
}

func TestChoiceNavigation(t *testing.T) {
	c := NewChoice("pick", []string{"a", "b", "c"})
	c, _ = c.Update(key(tea.KeyDown))
	c, _ = c.Update(key(tea.KeyDown))
	c, _ = c.Update(key(tea.KeyDown))
	if c.Selected != 2 {
		t.Errorf("Selected = %d, want 2", c.Selected)
	}
	c, _ = c.Update(key(tea.KeyEnter))
	if c.Chosen != 2 {
		t.Errorf("Chosen = %d, want 2", c.Chosen)
	}
}

func TestStepProgress(t *testing.T) {
	p := NewStepProgress("topics", 1, 4, 40)
	if p.Fraction() != 0.25 {
		t.Errorf("Fraction() = %v, want 0.25", p.Fraction())
	}
	if !strings.Contains(p.View(), "1/4") {
		t.Errorf("view missing counter: %q", p.View())
	}

	if f := NewStepProgress("topics", 0, 0, 40).Fraction(); f != 0 {
		t.Errorf("Fraction with zero total = %v", f)
	}
	if f := NewStepProgress("", 5, 4, 40).Fraction(); f != 1 {
		t.Errorf("Fraction past total = %v, want 1", f)
	}
}

func TestContentWidthClamps(t *testing.T) {
	tests := []struct{ frame, want int }{
		{20, minPanelWidth},
		{60, 54},
		{200, maxPanelWidth},
	}
	for _, tt := range tests {
		if got := ContentWidth(tt.frame); got != tt.want {
			t.Errorf("ContentWidth(%d) = %d, want %d", tt.frame, got, tt.want)
		}
	}
}

func TestFilterInputMatches(t *testing.T) {
	f := NewFilterInput("search", 40)
	if !f.Matches("anything") {
		t.Error("empty query should match")
	}
	f.Model.SetValue("  포장 ")
	if !f.Matches("p7_20", "1차 포장재 변경") {
		t.Error("expected a match on the title")
	}
	if f.Matches("p1_8", "원료") {
		t.Error("unexpected match")
	}
	f.Clear()
	if f.Value() != "" {
		t.Errorf("Value() after Clear = %q", f.Value())
	}
}

func TestFilterInputIgnoresKeysWhenBlurred(t *testing.T) {
	f := NewFilterInput("search", 40)
	f, _ = f.Update(key('x'))
	if f.Value() != "" {
		t.Errorf("blurred input took a key: %q", f.Value())
	}
}
