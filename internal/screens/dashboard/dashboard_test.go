package dashboard

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/Deepakpottavatri06/CourseGen/internal/api"
	"github.com/Deepakpottavatri06/CourseGen/internal/course"
	"github.com/Deepakpottavatri06/CourseGen/internal/router"
	"github.com/Deepakpottavatri06/CourseGen/internal/screens/screenstest"
)

func sampleCourses() []course.Course {
	return []course.Course{
		{ID: "c1", Topic: "Rust Basics", Difficulty: course.Beginner, EstimatedReadingTime: 30,
			SubTopics: []string{"Ownership", "Borrowing"}, ContentLoaded: true},
		{ID: "c2", Topic: "Distributed Systems", Difficulty: course.Advanced, EstimatedReadingTime: 90,
			SubTopics: []string{"Consensus"}},
	}
}

func loaded(t *testing.T, f *screenstest.API) *DashboardScreen {
	t.Helper()
	s := New(screenstest.Deps(t, f, true))
	s.Update(screenstest.Run(s.Init()))
	return s
}

func TestDashboardListsCourses(t *testing.T) {
	s := loaded(t, &screenstest.API{Courses: sampleCourses()})

	if len(s.Courses()) != 2 {
		t.Fatalf("courses = %d, want 2", len(s.Courses()))
	}
	view := s.View(120, 40)
	for _, want := range []string{"Rust Basics", "Distributed Systems", "Beginner", "Advanced", "generating"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestDashboardOpenCourse(t *testing.T) {
	s := loaded(t, &screenstest.API{Courses: sampleCourses()})

	s.Update(screenstest.Special(tea.KeyDown))
	_, cmd := s.Update(screenstest.Special(tea.KeyEnter))

	msg, ok := screenstest.Run(cmd).(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	p := msg.Screen.(*screenstest.Placeholder)
	if p.Name != "reader" || p.Arg != "c2" {
		t.Errorf("pushed %s(%s), want reader(c2)", p.Name, p.Arg)
	}
}

func TestDashboardGenerateKey(t *testing.T) {
	s := loaded(t, &screenstest.API{})

	_, cmd := s.Update(screenstest.Key('g'))
	msg, ok := screenstest.Run(cmd).(router.PushScreenMsg)
	if !ok || msg.Screen.(*screenstest.Placeholder).Name != "generate" {
		t.Error("g should open the generate form")
	}
}

func TestDashboardEmptyState(t *testing.T) {
	s := loaded(t, &screenstest.API{})

	if !strings.Contains(s.View(100, 30), "generate your first course") {
		t.Error("empty dashboard should prompt to generate")
	}
	if _, cmd := s.Update(screenstest.Special(tea.KeyEnter)); cmd != nil {
		t.Error("enter on an empty list should do nothing")
	}
}

func TestDashboardLoadError(t *testing.T) {
	s := loaded(t, &screenstest.API{ListErr: &api.StatusError{Status: 500}})

	if !strings.Contains(s.View(100, 30), MsgLoadFailed) {
		t.Error("view should show the load failure")
	}
}

func TestDashboardUnauthorized(t *testing.T) {
	f := &screenstest.API{ListErr: api.ErrUnauthorized}
	deps := screenstest.Deps(t, f, true)
	s := New(deps)

	_, cmd := s.Update(screenstest.Run(s.Init()))

	if _, ok := screenstest.Run(cmd).(router.ResetScreenMsg); !ok {
		t.Error("expected reset to home")
	}
	if deps.Session.Authenticated() {
		t.Error("session should be cleared")
	}
}

func TestDashboardRefresh(t *testing.T) {
	f := &screenstest.API{}
	s := loaded(t, f)
	f.Courses = sampleCourses()

	_, cmd := s.Update(screenstest.Key('r'))
	if cmd == nil {
		t.Fatal("r should reload")
	}
	if !strings.Contains(s.View(100, 30), "Loading") {
		t.Error("view should show loading while refreshing")
	}
	s.Update(cmd())
	if len(s.Courses()) != 2 {
		t.Errorf("courses = %d after refresh, want 2", len(s.Courses()))
	}
}
