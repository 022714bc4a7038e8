package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/Deepakpottavatri06/CourseGen/internal/api"
	"github.com/Deepakpottavatri06/CourseGen/internal/auth"
	"github.com/Deepakpottavatri06/CourseGen/internal/logger"
	"github.com/Deepakpottavatri06/CourseGen/internal/router"
	"github.com/Deepakpottavatri06/CourseGen/internal/screen"
	"github.com/Deepakpottavatri06/CourseGen/internal/screens/welcome"
	"github.com/Deepakpottavatri06/CourseGen/internal/ui/layout"
)

// Options holds what the TUI needs from the command that starts it.
type Options struct {
	Session *auth.Session
	API     api.API
	Log     *logger.Logger

	// SkipSplash starts on the home screen instead of the welcome animation.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	session *auth.Session
	width   int
	height  int
}

func newAppModel(opts Options) AppModel {
	nav := newNavigator(opts)

	var first screen.Screen
	if opts.SkipSplash {
		first = nav.Home()
	} else {
		first = welcome.New(nav.Home)
	}
	return AppModel{
		router:  router.New(first),
		session: opts.Session,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.user(), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	content := m.router.View(m.width, layout.ContentHeight(m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// user names the signed-in account for the header.
func (m AppModel) user() string {
	if m.session == nil || !m.session.Authenticated() {
		return ""
	}
	if sub := m.session.Subject(); sub != "" {
		return sub
	}
	return "signed in"
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		opts.Log.Error("tui exited with error", "error", err)
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
