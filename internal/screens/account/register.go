package account

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Deepakpottavatri06/CourseGen/internal/api"
	"github.com/Deepakpottavatri06/CourseGen/internal/screen"
	"github.com/Deepakpottavatri06/CourseGen/internal/screens"
	"github.com/Deepakpottavatri06/CourseGen/internal/ui/components"
	"github.com/Deepakpottavatri06/CourseGen/internal/ui/layout"
	"github.com/Deepakpottavatri06/CourseGen/internal/ui/theme"
)

const (
	msgRegisterFailed = "Registration failed. Please try again."
	msgRegistered     = "Registration successful. Please log in."
)

const (
	fieldRegisterEmail = iota
	fieldRegisterName
	fieldRegisterPassword
)

type registerDoneMsg struct {
	to   screen.Screen
	acct *api.Account
	err  error
}

func (m registerDoneMsg) Recipient() screen.Screen { return m.to }

// RegisterScreen creates an account and then hands over to the login screen.
type RegisterScreen struct {
	deps    screens.Deps
	life    screens.Lifetime
	form    form
	errMsg  string
	pending bool
}

var _ screen.Screen = (*RegisterScreen)(nil)
var _ screen.Closer = (*RegisterScreen)(nil)
var _ screen.KeyHintProvider = (*RegisterScreen)(nil)

// NewRegister creates a RegisterScreen.
func NewRegister(deps screens.Deps) *RegisterScreen {
	return &RegisterScreen{
		deps: deps,
		life: screens.NewLifetime(),
		form: newForm(
			components.NewTextInput("Email", "you@example.com", 254),
			components.NewTextInput("Name", "Ada Lovelace", 100),
			components.NewPasswordInput("Password"),
		),
	}
}

func (s *RegisterScreen) Init() tea.Cmd {
	return nil
}

func (s *RegisterScreen) Close() {
	s.life.Close()
}

func (s *RegisterScreen) Title() string {
	return "Register"
}

func (s *RegisterScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Register"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *RegisterScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(registerDoneMsg); ok {
		s.pending = false
		if msg.err != nil {
			s.errMsg = describe(msg.err, msgRegisterFailed)
			s.deps.Logger().Warn("registration failed", "error", msg.err)
			return s, nil
		}
		s.deps.Logger().Info("account registered", "email", msg.acct.Email)
		return s, screens.Replace(s.deps.Nav.Login(msgRegistered))
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

func (s *RegisterScreen) submit() tea.Cmd {
	s.pending = true
	s.errMsg = ""
	email := s.form.value(fieldRegisterEmail)
	name := s.form.value(fieldRegisterName)
	password := s.form.value(fieldRegisterPassword)
	ctx := s.life.Context()

	return func() tea.Msg {
		acct, err := s.deps.Session.Register(ctx, s.deps.API, email, name, password)
		return registerDoneMsg{to: s, acct: acct, err: err}
	}
}

func (s *RegisterScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw - 8).Render("Create your account"))
	b.WriteString("\n\n")
	b.WriteString(s.form.view())
	b.WriteString("\n\n")
	switch {
	case s.pending:
		b.WriteString(theme.Hint.Render("Creating account..."))
	case s.errMsg != "":
		b.WriteString(components.ErrorLine(s.errMsg))
	default:
		b.WriteString(components.NewButton("Register", s.form.onLast(), nil).View())
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.Card(b.String(), cw))
}
