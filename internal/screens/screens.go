// Package screens holds what every terminal screen shares: its
// dependencies, navigation to sibling screens, and the request lifetime
// tied to a screen's place on the stack.
package screens

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/Deepakpottavatri06/CourseGen/internal/api"
	"github.com/Deepakpottavatri06/CourseGen/internal/auth"
	"github.com/Deepakpottavatri06/CourseGen/internal/logger"
	"github.com/Deepakpottavatri06/CourseGen/internal/router"
	"github.com/Deepakpottavatri06/CourseGen/internal/screen"
)

// Navigator builds screens by name so screens can link to each other
// without importing each other.
type Navigator interface {
	Home() screen.Screen
	About() screen.Screen
	Login(notice string) screen.Screen
	Register() screen.Screen
	Dashboard() screen.Screen
	Reader(courseID string) screen.Screen
	Generate() screen.Screen
}

// Deps is what screens need from the rest of the program.
type Deps struct {
	Session *auth.Session
	API     api.API
	Log     *logger.Logger
	Nav     Navigator
}

// Logger returns d.Log or a no-op logger.
func (d Deps) Logger() *logger.Logger {
	if d.Log == nil {
		return logger.Nop()
	}
	return d.Log
}

// Expired ends the session when err is an authorization failure and returns
// the command that sends the user back to the logged-out home screen.
// It returns nil for any other error.
func (d Deps) Expired(err error) tea.Cmd {
	if d.Session == nil {
		return nil
	}
	expired, clearErr := d.Session.Expire(context.Background(), err)
	if !expired {
		return nil
	}
	d.Logger().Warn("session rejected by server, logging out")
	if clearErr != nil {
		d.Logger().Error("failed to clear rejected token", "error", clearErr)
	}
	home := d.Nav.Home()
	return func() tea.Msg { return router.ResetScreenMsg{Screen: home} }
}

// Lifetime is the context of one screen's requests. It is cancelled when
// the screen leaves the stack.
type Lifetime struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewLifetime starts a lifetime.
func NewLifetime() Lifetime {
	ctx, cancel := context.WithCancel(context.Background())
	return Lifetime{ctx: ctx, cancel: cancel}
}

// Context returns the lifetime's context.
func (l Lifetime) Context() context.Context { return l.ctx }

// Close cancels in-flight requests.
func (l Lifetime) Close() { l.cancel() }

// Push returns a command that pushes s.
func Push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

// Replace returns a command that replaces the active screen with s.
func Replace(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: s} }
}

// Pop returns a command that pops the active screen.
func Pop() tea.Cmd {
	return func() tea.Msg { return router.PopScreenMsg{} }
}
