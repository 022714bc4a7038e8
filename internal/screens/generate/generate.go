package generate

import (
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Deepakpottavatri06/CourseGen/internal/api"
	"github.com/Deepakpottavatri06/CourseGen/internal/course"
	"github.com/Deepakpottavatri06/CourseGen/internal/router"
	"github.com/Deepakpottavatri06/CourseGen/internal/screen"
	"github.com/Deepakpottavatri06/CourseGen/internal/screens"
	"github.com/Deepakpottavatri06/CourseGen/internal/ui/components"
	"github.com/Deepakpottavatri06/CourseGen/internal/ui/layout"
)

// User-facing messages.
const (
	MsgNoSubtopics = "Please add at least one subtopic."
	MsgFailed      = "Network error or server issue. Please try again."
	MsgStarted     = "Course generation started! You will be redirected to your dashboard shortly. " +
		"Please allow a few minutes for the course to be fully prepared."
)

// RedirectDelay is how long the success message stays up before the
// dashboard is shown.
const RedirectDelay = 2 * time.Second

type field int

const (
	fieldTopic field = iota
	fieldSubtopic
	fieldList
	fieldDifficulty
	fieldSubmit
	fieldCount
)

type generatedMsg struct {
	to  screen.Screen
	res *api.Generated
	err error
}

func (m generatedMsg) Recipient() screen.Screen { return m.to }

type redirectMsg struct {
	to screen.Screen
}

func (m redirectMsg) Recipient() screen.Screen { return m.to }

// GenerateScreen is the form that requests a new course.
type GenerateScreen struct {
	deps screens.Deps
	life screens.Lifetime

	topic      components.TextInput
	subtopic   components.TextInput
	difficulty components.Choice
	subtopics  []string
	listCursor int
	focus      field

	errMsg  string
	pending bool
	done    bool
}

var _ screen.Screen = (*GenerateScreen)(nil)
var _ screen.Closer = (*GenerateScreen)(nil)
var _ screen.KeyHintProvider = (*GenerateScreen)(nil)

// New creates a GenerateScreen with the topic field focused.
func New(deps screens.Deps) *GenerateScreen {
	labels := make([]string, len(course.Difficulties))
	for i, d := range course.Difficulties {
		labels[i] = d.Label()
	}
	s := &GenerateScreen{
		deps:       deps,
		life:       screens.NewLifetime(),
		topic:      components.NewTextInput("Topic", "e.g. Rust Basics", 200),
		subtopic:   components.NewTextInput("Add subtopic", "type a subtopic and press Enter", 200),
		difficulty: components.NewChoice("Difficulty", labels),
	}
	s.topic.Focus()
	return s
}

func (s *GenerateScreen) Init() tea.Cmd {
	return nil
}

func (s *GenerateScreen) Close() {
	s.life.Close()
}

func (s *GenerateScreen) Title() string {
	return "Generate Course"
}

func (s *GenerateScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Next field"}}
	switch s.focus {
	case fieldSubtopic:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Add"})
	case fieldList:
		hints = append(hints, layout.KeyHint{Key: "x", Description: "Remove"})
	case fieldDifficulty:
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Change"})
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+S", Description: "Generate"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

// Subtopics returns the subtopics added so far.
func (s *GenerateScreen) Subtopics() []string {
	return s.subtopics
}

// Request builds the generation request from the form.
func (s *GenerateScreen) Request() course.GenerateRequest {
	req := course.NewGenerateRequest(s.topic.Value(), append([]string(nil), s.subtopics...))
	req.Difficulty = course.Difficulties[s.difficulty.Selected]
	return req
}

// Error returns the message shown under the form, if any.
func (s *GenerateScreen) Error() string {
	return s.errMsg
}

// Done reports whether generation was accepted.
func (s *GenerateScreen) Done() bool {
	return s.done
}

func (s *GenerateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		s.pending = false
		if msg.err != nil {
			s.deps.Logger().Error("error generating course", "error", msg.err)
			if cmd := s.deps.Expired(msg.err); cmd != nil {
				return s, cmd
			}
			s.errMsg = api.Message(msg.err, MsgFailed)
			return s, nil
		}
		s.done = true
		if msg.res != nil {
			s.deps.Logger().Info("course generation started", "course_id", msg.res.ID)
		}
		return s, tea.Tick(RedirectDelay, func(time.Time) tea.Msg {
			return redirectMsg{to: s}
		})

	case redirectMsg:
		return s, func() tea.Msg {
			return router.ResetScreenMsg{Screen: s.deps.Nav.Home(), Then: s.deps.Nav.Dashboard()}
		}

	case tea.KeyPressMsg:
		if s.pending || s.done {
			return s, nil
		}
		return s, s.handleKey(msg)
	}

	return s, s.forward(msg)
}

func (s *GenerateScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		return s.move(1)
	case "shift+tab":
		return s.move(-1)
	case "ctrl+s":
		return s.submit()
	}

	switch s.focus {
	case fieldTopic:
		if msg.String() == "enter" {
			return s.setFocus(fieldSubtopic)
		}
	case fieldSubtopic:
		if msg.String() == "enter" {
			s.addSubtopic()
			return nil
		}
	case fieldList:
		switch msg.String() {
		case "up", "k":
			if s.listCursor > 0 {
				s.listCursor--
			}
		case "down", "j":
			if s.listCursor < len(s.subtopics)-1 {
				s.listCursor++
			}
		case "x", "delete", "backspace":
			s.removeSubtopic()
		}
		return nil
	case fieldDifficulty:
		var cmd tea.Cmd
		s.difficulty, cmd = s.difficulty.Update(msg)
		return cmd
	case fieldSubmit:
		if msg.String() == "enter" {
			return s.submit()
		}
		return nil
	}

	return s.forward(msg)
}

// forward passes msg to the focused text input.
func (s *GenerateScreen) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focus {
	case fieldTopic:
		s.topic, cmd = s.topic.Update(msg)
	case fieldSubtopic:
		s.subtopic, cmd = s.subtopic.Update(msg)
	}
	return cmd
}

// move steps focus by dir, skipping the subtopic list while it is empty.
func (s *GenerateScreen) move(dir int) tea.Cmd {
	f := s.focus
	for {
		f = (f + field(dir) + fieldCount) % fieldCount
		if f != fieldList || len(s.subtopics) > 0 {
			return s.setFocus(f)
		}
	}
}

func (s *GenerateScreen) setFocus(f field) tea.Cmd {
	s.topic.Blur()
	s.subtopic.Blur()
	s.difficulty.Focused = false
	s.focus = f

	switch f {
	case fieldTopic:
		return s.topic.Focus()
	case fieldSubtopic:
		return s.subtopic.Focus()
	case fieldDifficulty:
		s.difficulty.Focused = true
	}
	return nil
}

func (s *GenerateScreen) addSubtopic() {
	list, err := course.AddSubtopic(s.subtopics, s.subtopic.Value())
	switch {
	case errors.Is(err, course.ErrEmptySubtopic):
		return
	case err != nil:
		s.errMsg = err.Error()
		return
	}
	s.subtopics = list
	s.subtopic.Reset()
	s.errMsg = ""
}

func (s *GenerateScreen) removeSubtopic() {
	if s.listCursor >= len(s.subtopics) {
		return
	}
	s.subtopics = course.RemoveSubtopic(s.subtopics, s.subtopics[s.listCursor])
	if s.listCursor >= len(s.subtopics) && s.listCursor > 0 {
		s.listCursor--
	}
	if len(s.subtopics) == 0 {
		s.setFocus(fieldSubtopic)
	}
}

func (s *GenerateScreen) submit() tea.Cmd {
	if s.pending {
		return nil
	}
	if len(s.subtopics) == 0 {
		s.errMsg = MsgNoSubtopics
		return nil
	}
	req := s.Request()
	req.Normalize()
	if err := req.Validate(); err != nil {
		s.errMsg = err.Error()
		return nil
	}

	s.pending = true
	s.errMsg = ""
	ctx := s.life.Context()
	return func() tea.Msg {
		res, err := s.deps.API.GenerateCourse(ctx, req)
		return generatedMsg{to: s, res: res, err: err}
	}
}
