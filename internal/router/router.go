package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Deepakpottavatri06/CourseGen/internal/screen"
)

// PushScreenMsg requests the router to push a new screen onto the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg requests the router to pop the current screen off the stack.
type PopScreenMsg struct{}

// ReplaceScreenMsg requests the router to swap the top screen for Screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// ResetScreenMsg requests the router to drop every screen and start over
// from Screen, optionally pushing Then on top of it.
type ResetScreenMsg struct {
	Screen screen.Screen
	Then   screen.Screen
}

// Router manages a stack of screens.
type Router struct {
	stack []screen.Screen
}

// New creates a new Router with the given initial screen.
func New(initial screen.Screen) *Router {
	return &Router{
		stack: []screen.Screen{initial},
	}
}

// Init returns the initial screen's Init command.
func (r *Router) Init() tea.Cmd {
	if active := r.Active(); active != nil {
		return active.Init()
	}
	return nil
}

// Push adds a screen on top of the stack and calls its Init().
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes and tears down the top screen. No-op if stack depth would
// become 0.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	top := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	closeScreen(top)
	return nil
}

// Replace swaps the top screen for s, tearing the old one down.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.stack) == 0 {
		r.stack = append(r.stack, s)
		return s.Init()
	}
	top := r.stack[len(r.stack)-1]
	r.stack[len(r.stack)-1] = s
	closeScreen(top)
	return s.Init()
}

// Reset tears down every screen and leaves s as the only one.
func (r *Router) Reset(s screen.Screen) tea.Cmd {
	for i := len(r.stack) - 1; i >= 0; i-- {
		closeScreen(r.stack[i])
	}
	r.stack = []screen.Screen{s}
	return s.Init()
}

// Active returns the top screen on the stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update forwards a message to the active screen and handles navigation messages.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case ResetScreenMsg:
		cmd := r.Reset(msg.Screen)
		if msg.Then != nil {
			cmd = tea.Batch(cmd, r.Push(msg.Then))
		}
		return cmd
	}

	active := r.Active()
	if active == nil {
		return nil
	}

	// Replies addressed to a screen that is no longer on top are stale.
	if a, ok := msg.(screen.Addressed); ok && a.Recipient() != active {
		return nil
	}

	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}

func closeScreen(s screen.Screen) {
	if c, ok := s.(screen.Closer); ok {
		c.Close()
	}
}
