package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Deepakpottavatri06/CourseGen/internal/router"
	"github.com/Deepakpottavatri06/CourseGen/internal/screen"
	"github.com/Deepakpottavatri06/CourseGen/internal/screens"
	"github.com/Deepakpottavatri06/CourseGen/internal/ui/components"
	"github.com/Deepakpottavatri06/CourseGen/internal/ui/layout"
	"github.com/Deepakpottavatri06/CourseGen/internal/ui/theme"
)

// Menu labels.
const (
	LabelDashboard = "Dashboard"
	LabelGenerate  = "Generate Course"
	LabelAbout     = "About"
	LabelLogin     = "Login"
	LabelRegister  = "Register"
	LabelLogout    = "Logout"
	LabelQuit      = "Quit"
)

// HomeScreen is the landing screen. Its menu depends on whether the
// session is authenticated and is rebuilt when that changes.
type HomeScreen struct {
	deps   screens.Deps
	menu   components.Menu
	authed bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps screens.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.rebuild()
	return h
}

func (h *HomeScreen) rebuild() {
	h.authed = h.deps.Session != nil && h.deps.Session.Authenticated()
	nav := h.deps.Nav

	var items []components.MenuItem
	if h.authed {
		items = []components.MenuItem{
			{Label: LabelDashboard, Action: func() tea.Cmd { return screens.Push(nav.Dashboard()) }},
			{Label: LabelGenerate, Action: func() tea.Cmd { return screens.Push(nav.Generate()) }},
			{Label: LabelAbout, Action: func() tea.Cmd { return screens.Push(nav.About()) }},
			{Label: LabelLogout, Action: h.logout},
			{Label: LabelQuit, Action: func() tea.Cmd { return tea.Quit }},
		}
	} else {
		items = []components.MenuItem{
			{Label: LabelLogin, Action: func() tea.Cmd { return screens.Push(nav.Login("")) }},
			{Label: LabelRegister, Action: func() tea.Cmd { return screens.Push(nav.Register()) }},
			{Label: LabelAbout, Action: func() tea.Cmd { return screens.Push(nav.About()) }},
			{Label: LabelQuit, Action: func() tea.Cmd { return tea.Quit }},
		}
	}
	h.menu = components.NewMenu(items)
}

func (h *HomeScreen) logout() tea.Cmd {
	if err := h.deps.Session.Logout(context.Background()); err != nil {
		h.deps.Logger().Error("logout failed", "error", err)
	}
	home := h.deps.Nav.Home()
	return func() tea.Msg { return router.ResetScreenMsg{Screen: home} }
}

// Labels returns the current menu labels in order.
func (h *HomeScreen) Labels() []string {
	labels := make([]string, len(h.menu.Items))
	for i, item := range h.menu.Items {
		labels[i] = item.Label
	}
	return labels
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	// The session can change underneath us (login pushed on top, or a
	// token expiring while idle).
	if authed := h.deps.Session != nil && h.deps.Session.Authenticated(); authed != h.authed {
		h.rebuild()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	title := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(theme.Title.Render("CourseGen"))

	var greeting string
	if h.authed {
		greeting = "Welcome back"
		if sub := h.deps.Session.Subject(); sub != "" {
			greeting += ", " + sub
		}
		greeting += ". Pick up where you left off or generate a new course."
	} else {
		greeting = "Generate structured courses on any topic and read them here. Log in or register to start."
	}

	sections := []string{
		title,
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Foreground(theme.TextDim).Render(greeting),
		components.Card(strings.TrimRight(h.menu.View(), "\n"), cw),
	}
	content := strings.Join(sections, "\n\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
