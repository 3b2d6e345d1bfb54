// Package router keeps the stack of screens shown by the terminal UI.
// Screens navigate by returning the commands from Push, Pop or Replace.
package router

import (
	"io"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ctdguide/internal/screen"
)

// PushScreenMsg opens Screen on top of the active one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the active screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the active screen without growing the stack.
// Guide steps use it so that Esc from any step returns home.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router is a stack of screens. The bottom screen is never popped.
type Router struct {
	stack  []screen.Screen
	logger *slog.Logger
}

// New returns a router rooted at root. logger may be nil.
func New(root screen.Screen, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Router{stack: []screen.Screen{root}, logger: logger}
}

// Push stacks s on top and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	r.logger.Debug("screen pushed", "screen", s.Title(), "depth", len(r.stack))
	return s.Init()
}

// Pop drops the active screen. The root screen stays.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	top := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.logger.Debug("screen popped", "screen", top.Title(), "depth", len(r.stack))
	return nil
}

// Replace swaps the active screen for s and returns its Init command.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	r.logger.Debug("screen replaced", "screen", s.Title(), "depth", len(r.stack))
	return s.Init()
}

// Active returns the top screen.
func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of stacked screens.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Trail returns the titles of the stacked screens, bottom first.
func (r *Router) Trail() []string {
	out := make([]string, len(r.stack))
	for i, s := range r.stack {
		out[i] = s.Title()
	}
	return out
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	next, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}

// Push returns a command that opens s on top of the active screen.
func Push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

// Replace returns a command that swaps the active screen for s.
func Replace(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return ReplaceScreenMsg{Screen: s} }
}

// Pop returns a command that closes the active screen.
func Pop() tea.Cmd {
	return func() tea.Msg { return PopScreenMsg{} }
}
