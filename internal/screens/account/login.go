package account

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Deepakpottavatri06/CourseGen/internal/screen"
	"github.com/Deepakpottavatri06/CourseGen/internal/screens"
	"github.com/Deepakpottavatri06/CourseGen/internal/ui/components"
	"github.com/Deepakpottavatri06/CourseGen/internal/ui/layout"
	"github.com/Deepakpottavatri06/CourseGen/internal/ui/theme"
)

const msgLoginFailed = "Login failed. Please check your connection and try again."

const (
	fieldLoginEmail = iota
	fieldLoginPassword
)

type loginDoneMsg struct {
	to  screen.Screen
	err error
}

func (m loginDoneMsg) Recipient() screen.Screen { return m.to }

// LoginScreen exchanges email and password for a session token.
type LoginScreen struct {
	deps    screens.Deps
	life    screens.Lifetime
	form    form
	notice  string
	errMsg  string
	pending bool
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.Closer = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// NewLogin creates a LoginScreen. notice is shown above the form, e.g.
// after a successful registration.
func NewLogin(deps screens.Deps, notice string) *LoginScreen {
	return &LoginScreen{
		deps:   deps,
		life:   screens.NewLifetime(),
		notice: notice,
		form: newForm(
			components.NewTextInput("Email", "you@example.com", 254),
			components.NewPasswordInput("Password"),
		),
	}
}

func (s *LoginScreen) Init() tea.Cmd {
	return nil
}

func (s *LoginScreen) Close() {
	s.life.Close()
}

func (s *LoginScreen) Title() string {
	return "Login"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Log in"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(loginDoneMsg); ok {
		s.pending = false
		if msg.err != nil {
			s.errMsg = describe(msg.err, msgLoginFailed)
			s.deps.Logger().Warn("login failed", "error", msg.err)
			return s, nil
		}
		s.deps.Logger().Info("logged in")
		return s, screens.Replace(s.deps.Nav.Dashboard())
	}

	if s.pending {
		return s, nil
	}

	cmd, submit := s.form.update(msg)
	if submit {
		return s, s.submit()
	}
	return s, cmd
}

func (s *LoginScreen) submit() tea.Cmd {
	s.pending = true
	s.errMsg = ""
	email := s.form.value(fieldLoginEmail)
	password := s.form.value(fieldLoginPassword)
	ctx := s.life.Context()

	return func() tea.Msg {
		err := s.deps.Session.Login(ctx, s.deps.API, email, password)
		return loginDoneMsg{to: s, err: err}
	}
}

func (s *LoginScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw - 8).Render("Log in to CourseGen"))
	b.WriteString("\n\n")
	if s.notice != "" {
		b.WriteString(theme.SuccessText.Render("✓ " + s.notice))
		b.WriteString("\n\n")
	}
	b.WriteString(s.form.view())
	b.WriteString("\n\n")
	switch {
	case s.pending:
		b.WriteString(theme.Hint.Render("Logging in..."))
	case s.errMsg != "":
		b.WriteString(components.ErrorLine(s.errMsg))
	default:
		b.WriteString(components.NewButton("Log in", s.form.onLast(), nil).View())
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.Card(b.String(), cw))
}
