package generate

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/Deepakpottavatri06/CourseGen/internal/api"
	"github.com/Deepakpottavatri06/CourseGen/internal/course"
	"github.com/Deepakpottavatri06/CourseGen/internal/router"
	"github.com/Deepakpottavatri06/CourseGen/internal/screens/screenstest"
)

func ctrlS() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
}

func tab() tea.KeyPressMsg {
	return screenstest.Special(tea.KeyTab)
}

func enter() tea.KeyPressMsg {
	return screenstest.Special(tea.KeyEnter)
}

// filled returns a screen with topic "Rust" and the given subtopics added,
// focus left on the subtopic input.
func filled(t *testing.T, f *screenstest.API, subs ...string) *GenerateScreen {
	t.Helper()
	s := New(screenstest.Deps(t, f, true))
	screenstest.Type(s, "Rust")
	s.Update(tab())
	for _, sub := range subs {
		screenstest.Type(s, sub)
		s.Update(enter())
	}
	return s
}

func TestGenerateAddSubtopics(t *testing.T) {
	s := filled(t, &screenstest.API{}, "Ownership", "Borrowing")

	got := s.Subtopics()
	if len(got) != 2 || got[0] != "Ownership" || got[1] != "Borrowing" {
		t.Errorf("subtopics = %v", got)
	}
	if s.subtopic.Value() != "" {
		t.Error("input should clear after adding")
	}
}

func TestGenerateRejectsDuplicate(t *testing.T) {
	s := filled(t, &screenstest.API{}, "Ownership", "Ownership")

	if len(s.Subtopics()) != 1 {
		t.Errorf("subtopics = %v, want one entry", s.Subtopics())
	}
	if s.Error() != course.ErrDuplicateSubtopic.Error() {
		t.Errorf("error = %q", s.Error())
	}
}

func TestGenerateRejectsNinth(t *testing.T) {
	subs := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}
	s := filled(t, &screenstest.API{}, subs...)

	if len(s.Subtopics()) != course.MaxSubtopics {
		t.Errorf("subtopics = %d, want %d", len(s.Subtopics()), course.MaxSubtopics)
	}
	if s.Error() != course.ErrTooManySubtopics.Error() {
		t.Errorf("error = %q", s.Error())
	}
}

func TestGenerateEmptySubtopicIgnored(t *testing.T) {
	s := filled(t, &screenstest.API{}, "   ")
	if len(s.Subtopics()) != 0 || s.Error() != "" {
		t.Errorf("blank entry should be ignored silently, got %v %q", s.Subtopics(), s.Error())
	}
}

func TestGenerateRequiresSubtopic(t *testing.T) {
	f := &screenstest.API{}
	s := filled(t, f)

	if _, cmd := s.Update(ctrlS()); cmd != nil {
		t.Error("submit without subtopics should not send")
	}
	if s.Error() != MsgNoSubtopics {
		t.Errorf("error = %q, want %q", s.Error(), MsgNoSubtopics)
	}
}

func TestGenerateRequiresTopic(t *testing.T) {
	f := &screenstest.API{}
	s := New(screenstest.Deps(t, f, true))
	s.Update(tab())
	screenstest.Type(s, "Ownership")
	s.Update(enter())

	if _, cmd := s.Update(ctrlS()); cmd != nil {
		t.Error("submit without topic should not send")
	}
	if !strings.Contains(s.Error(), "topic is required") {
		t.Errorf("error = %q", s.Error())
	}
}

func TestGenerateDifficultyCycle(t *testing.T) {
	s := filled(t, &screenstest.API{}, "Ownership")

	s.Update(tab()) // list
	s.Update(tab()) // difficulty
	s.Update(screenstest.Special(tea.KeyRight))

	if got := s.Request().Difficulty; got != course.Intermediate {
		t.Errorf("difficulty = %q, want intermediate", got)
	}
}

func TestGenerateFocusSkipsEmptyList(t *testing.T) {
	s := filled(t, &screenstest.API{})
	s.Update(tab())
	if s.focus != fieldDifficulty {
		t.Errorf("focus = %d, want difficulty", s.focus)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if s.focus != fieldSubtopic {
		t.Errorf("focus = %d, want subtopic", s.focus)
	}
}

func TestGenerateRemoveSubtopic(t *testing.T) {
	s := filled(t, &screenstest.API{}, "Ownership", "Borrowing")

	s.Update(tab())
	s.Update(screenstest.Special(tea.KeyDown))
	s.Update(screenstest.Key('x'))

	got := s.Subtopics()
	if len(got) != 1 || got[0] != "Ownership" {
		t.Errorf("subtopics = %v, want [Ownership]", got)
	}
}

func TestGenerateSuccessRedirects(t *testing.T) {
	f := &screenstest.API{}
	s := filled(t, f, " Ownership ")

	_, cmd := s.Update(ctrlS())
	if cmd == nil {
		t.Fatal("expected a generate command")
	}
	if _, again := s.Update(ctrlS()); again != nil {
		t.Error("submit while pending should be ignored")
	}

	_, tick := s.Update(cmd())
	if !s.Done() || tick == nil {
		t.Fatal("expected success state and a redirect timer")
	}
	if !strings.Contains(s.View(100, 30), "Course generation started!") {
		t.Error("view should show the success message")
	}

	req := f.Requests[0]
	if req.Topic != "Rust" || req.SubTopics[0] != "Ownership" || req.Difficulty != course.Beginner || req.Language != "english" {
		t.Errorf("request = %+v", req)
	}

	_, cmd = s.Update(redirectMsg{to: s})
	msg, ok := screenstest.Run(cmd).(router.ResetScreenMsg)
	if !ok {
		t.Fatalf("expected ResetScreenMsg")
	}
	home, _ := msg.Screen.(*screenstest.Placeholder)
	then, _ := msg.Then.(*screenstest.Placeholder)
	if home == nil || home.Name != "home" || then == nil || then.Name != "dashboard" {
		t.Errorf("reset = %+v", msg)
	}
}

func TestGenerateFailureShowsMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"network", &api.StatusError{Status: 502}, MsgFailed},
		{"server detail", &api.StatusError{Status: 400, Message: "Topic too broad"}, "Topic too broad"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := filled(t, &screenstest.API{GenerateErr: tt.err}, "Ownership")
			_, cmd := s.Update(ctrlS())
			s.Update(cmd())

			if s.Done() {
				t.Error("should not be done")
			}
			if s.Error() != tt.want {
				t.Errorf("error = %q, want %q", s.Error(), tt.want)
			}
		})
	}
}

func TestGenerateSubmitButton(t *testing.T) {
	f := &screenstest.API{}
	s := filled(t, f, "Ownership")
	s.Update(tab())
	s.Update(tab())
	s.Update(tab())

	if _, cmd := s.Update(enter()); cmd == nil {
		t.Error("enter on the submit button should send")
	}
}
