// Package router keeps the navigation stack of screens. Home sits at the
// bottom; drills, summaries and browsers are pushed over it.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/factz/internal/screen"
)

type PushScreenMsg struct {
	Screen screen.Screen
}

type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the active screen in place, so popping the new
// one lands on the screen below. A finished drill becomes its summary
// this way.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) top() int { return len(r.stack) - 1 }

// Push puts s on top and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop drops the top screen unless it is the root. The screen underneath
// gets a chance to refresh through screen.Resumer.
func (r *Router) Pop() tea.Cmd {
	if r.Depth() < 2 {
		return nil
	}
	r.stack[r.top()] = nil
	r.stack = r.stack[:r.top()]

	if res, ok := r.Active().(screen.Resumer); ok {
		return res.Resume()
	}
	return nil
}

// Replace puts s where the top screen was and returns its Init command.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if r.Depth() == 0 {
		return r.Push(s)
	}
	r.stack[r.top()] = s
	return s.Init()
}

// Active is the top screen, or nil for an empty stack.
func (r *Router) Active() screen.Screen {
	if r.Depth() == 0 {
		return nil
	}
	return r.stack[r.top()]
}

func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages. Anything else goes to the active
// screen, whose returned value becomes the new top.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch nav := msg.(type) {
	case PushScreenMsg:
		return r.Push(nav.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(nav.Screen)
	}

	if r.Depth() == 0 {
		return nil
	}
	next, cmd := r.Active().Update(msg)
	r.stack[r.top()] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if s := r.Active(); s != nil {
		return s.View(width, height)
	}
	return ""
}
