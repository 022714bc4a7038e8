// Package screenstest provides fakes for testing screens: a scripted API,
// a navigator that returns named placeholder screens, and key helpers.
package screenstest

import (
	"context"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/Deepakpottavatri06/CourseGen/internal/api"
	"github.com/Deepakpottavatri06/CourseGen/internal/auth"
	"github.com/Deepakpottavatri06/CourseGen/internal/course"
	"github.com/Deepakpottavatri06/CourseGen/internal/screen"
	"github.com/Deepakpottavatri06/CourseGen/internal/screens"
)

// API is a scripted api.API. Zero values answer with empty successes.
type API struct {
	mu sync.Mutex

	Token    *api.Token
	LoginErr error

	Account     *api.Account
	RegisterErr error

	Courses []course.Course
	ListErr error

	Course *course.Course
	GetErr error

	ReadErr error
	Reads   []string

	Generated   *api.Generated
	GenerateErr error
	Requests    []course.GenerateRequest
}

var _ api.API = (*API)(nil)

func (f *API) Login(_ context.Context, _ api.Credentials) (*api.Token, error) {
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	if f.Token == nil {
		return &api.Token{AccessToken: "opaque-token", TokenType: "bearer"}, nil
	}
	return f.Token, nil
}

func (f *API) Register(_ context.Context, reg api.Registration) (*api.Account, error) {
	if f.RegisterErr != nil {
		return nil, f.RegisterErr
	}
	if f.Account == nil {
		return &api.Account{Email: reg.Email, Name: reg.Name}, nil
	}
	return f.Account, nil
}

func (f *API) ListCourses(_ context.Context) ([]course.Course, error) {
	return f.Courses, f.ListErr
}

func (f *API) GetCourse(_ context.Context, _ string) (*course.Course, error) {
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	return f.Course, nil
}

func (f *API) MarkSubtopicRead(_ context.Context, _, subtopic string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Reads = append(f.Reads, subtopic)
	return f.ReadErr
}

func (f *API) GenerateCourse(_ context.Context, req course.GenerateRequest) (*api.Generated, error) {
	f.mu.Lock()
	f.Requests = append(f.Requests, req)
	f.mu.Unlock()
	if f.GenerateErr != nil {
		return nil, f.GenerateErr
	}
	if f.Generated == nil {
		return &api.Generated{ID: "c-new"}, nil
	}
	return f.Generated, nil
}

// Placeholder stands in for a screen built by Nav.
type Placeholder struct {
	Name string
	Arg  string
}

func (p *Placeholder) Init() tea.Cmd                           { return nil }
func (p *Placeholder) Update(tea.Msg) (screen.Screen, tea.Cmd) { return p, nil }
func (p *Placeholder) View(int, int) string                    { return p.Name }
func (p *Placeholder) Title() string                           { return p.Name }

// Nav returns Placeholders named after the requested screen.
type Nav struct{}

var _ screens.Navigator = Nav{}

func (Nav) Home() screen.Screen               { return &Placeholder{Name: "home"} }
func (Nav) About() screen.Screen              { return &Placeholder{Name: "about"} }
func (Nav) Login(notice string) screen.Screen { return &Placeholder{Name: "login", Arg: notice} }
func (Nav) Register() screen.Screen           { return &Placeholder{Name: "register"} }
func (Nav) Dashboard() screen.Screen          { return &Placeholder{Name: "dashboard"} }
func (Nav) Reader(id string) screen.Screen    { return &Placeholder{Name: "reader", Arg: id} }
func (Nav) Generate() screen.Screen           { return &Placeholder{Name: "generate"} }

// Deps returns screen dependencies around f. When loggedIn is true the
// session holds an opaque token.
func Deps(t *testing.T, f *API, loggedIn bool) screens.Deps {
	t.Helper()
	sess, err := auth.NewSession(context.Background(), nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if loggedIn {
		if err := sess.Login(context.Background(), f, "ada@example.com", "secret"); err != nil {
			t.Fatalf("Login: %v", err)
		}
	}
	return screens.Deps{Session: sess, API: f, Nav: Nav{}}
}

// Key builds a key press for a printable rune.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special builds a key press for a non-printable key such as tea.KeyEnter.
func Special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Type feeds s to scr one rune at a time.
func Type(scr screen.Screen, s string) screen.Screen {
	for _, r := range s {
		scr, _ = scr.Update(Key(r))
	}
	return scr
}

// Run executes cmd and returns its message, or nil. Batches are not expanded.
func Run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
