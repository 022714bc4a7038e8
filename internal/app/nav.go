package app

import (
	"github.com/Deepakpottavatri06/CourseGen/internal/screen"
	"github.com/Deepakpottavatri06/CourseGen/internal/screens"
	"github.com/Deepakpottavatri06/CourseGen/internal/screens/about"
	"github.com/Deepakpottavatri06/CourseGen/internal/screens/account"
	"github.com/Deepakpottavatri06/CourseGen/internal/screens/dashboard"
	"github.com/Deepakpottavatri06/CourseGen/internal/screens/generate"
	"github.com/Deepakpottavatri06/CourseGen/internal/screens/home"
	"github.com/Deepakpottavatri06/CourseGen/internal/screens/reader"
)

// navigator builds every screen with the same dependencies, itself included.
type navigator struct {
	deps screens.Deps
}

var _ screens.Navigator = (*navigator)(nil)

func newNavigator(opts Options) *navigator {
	n := &navigator{}
	n.deps = screens.Deps{
		Session: opts.Session,
		API:     opts.API,
		Log:     opts.Log,
		Nav:     n,
	}
	return n
}

func (n *navigator) Home() screen.Screen               { return home.New(n.deps) }
func (n *navigator) About() screen.Screen              { return about.New() }
func (n *navigator) Login(notice string) screen.Screen { return account.NewLogin(n.deps, notice) }
func (n *navigator) Register() screen.Screen           { return account.NewRegister(n.deps) }
func (n *navigator) Dashboard() screen.Screen          { return dashboard.New(n.deps) }
func (n *navigator) Reader(id string) screen.Screen    { return reader.New(n.deps, id) }
func (n *navigator) Generate() screen.Screen           { return generate.New(n.deps) }
