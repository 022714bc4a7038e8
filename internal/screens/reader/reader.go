package reader

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Deepakpottavatri06/CourseGen/internal/courseview"
	"github.com/Deepakpottavatri06/CourseGen/internal/screen"
	"github.com/Deepakpottavatri06/CourseGen/internal/screens"
	"github.com/Deepakpottavatri06/CourseGen/internal/ui/layout"
)

type courseLoadedMsg struct {
	to  screen.Screen
	res courseview.LoadResult
}

func (m courseLoadedMsg) Recipient() screen.Screen { return m.to }

type markedReadMsg struct {
	to  screen.Screen
	req courseview.ReadRequest
	err error
}

func (m markedReadMsg) Recipient() screen.Screen { return m.to }

// ReaderScreen shows one course as a sidebar of sections and a content pane.
type ReaderScreen struct {
	deps  screens.Deps
	life  screens.Lifetime
	model *courseview.Model

	// cursor is the sidebar highlight, moved with ↑↓ and opened with Enter.
	cursor int

	// offset is the first visible line of the content pane. It resets when
	// the model's scroll token changes.
	offset    int
	seenToken int

	// marking is true while a mark-as-read request is outstanding.
	marking bool
}

var _ screen.Screen = (*ReaderScreen)(nil)
var _ screen.Closer = (*ReaderScreen)(nil)
var _ screen.KeyHintProvider = (*ReaderScreen)(nil)

// New creates a ReaderScreen for courseID.
func New(deps screens.Deps, courseID string) *ReaderScreen {
	return &ReaderScreen{
		deps:  deps,
		life:  screens.NewLifetime(),
		model: courseview.New(deps.API, courseID, deps.Log),
	}
}

// Model exposes the view model.
func (s *ReaderScreen) Model() *courseview.Model {
	return s.model
}

func (s *ReaderScreen) Init() tea.Cmd {
	ctx := s.life.Context()
	return func() tea.Msg {
		return courseLoadedMsg{to: s, res: s.model.Fetch(ctx)}
	}
}

func (s *ReaderScreen) Close() {
	s.life.Close()
}

func (s *ReaderScreen) Title() string {
	if c := s.model.Course(); c != nil && c.Topic != "" {
		return c.Topic
	}
	return "Course"
}

func (s *ReaderScreen) KeyHints() []layout.KeyHint {
	if s.model.Mode() != courseview.ModeReady {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back to dashboard"},
		}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Prev/Next"},
		{Key: "↑↓", Description: "Sections"},
		{Key: "m", Description: "Mark read"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ReaderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case courseLoadedMsg:
		s.model.Apply(msg.res)
		s.syncScroll()
		if s.model.ErrorKind() == courseview.ErrorUnauthorized {
			return s, s.deps.Expired(msg.res.Err)
		}
		return s, nil

	case markedReadMsg:
		s.marking = false
		if msg.err == nil {
			s.model.ConfirmRead(msg.req.Slug)
			return s, nil
		}
		return s, s.deps.Expired(msg.err)

	case tea.KeyPressMsg:
		if s.model.Mode() != courseview.ModeReady {
			switch msg.String() {
			case "enter", "b":
				return s, screens.Pop()
			}
			return s, nil
		}
		cmd := s.handleKey(msg.String())
		s.syncScroll()
		return s, cmd
	}
	return s, nil
}

func (s *ReaderScreen) handleKey(key string) tea.Cmd {
	switch key {
	case "left", "h":
		s.model.Previous()
		s.cursor = s.model.CurrentIndex()
	case "right", "l":
		s.model.Next()
		s.cursor = s.model.CurrentIndex()
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < s.model.Len()-1 {
			s.cursor++
		}
	case "enter":
		s.model.GoToPage(s.cursor)
	case "m":
		return s.markRead()
	case "pgdown", "ctrl+d", "space":
		s.offset += scrollStep
	case "pgup", "ctrl+u":
		s.offset -= scrollStep
		if s.offset < 0 {
			s.offset = 0
		}
	case "home", "g":
		s.model.GoToPage(0)
		s.cursor = 0
	case "end", "G":
		s.model.GoToPage(s.model.Len() - 1)
		s.cursor = s.model.CurrentIndex()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			idx := int(key[0] - '1')
			s.model.GoToPage(idx)
			if s.model.CurrentIndex() == idx {
				s.cursor = idx
			}
		}
	}
	return nil
}

// markRead sends the write for the current subtopic, even one already
// flagged read. A second press while one is outstanding is ignored.
func (s *ReaderScreen) markRead() tea.Cmd {
	if s.marking {
		return nil
	}
	req, ok := s.model.ReadRequest()
	if !ok {
		return nil
	}
	s.marking = true
	ctx := s.life.Context()
	return func() tea.Msg {
		err := s.model.SendRead(ctx, req)
		return markedReadMsg{to: s, req: req, err: err}
	}
}

func (s *ReaderScreen) syncScroll() {
	if t := s.model.ScrollToken(); t != s.seenToken {
		s.seenToken = t
		s.offset = 0
	}
}
