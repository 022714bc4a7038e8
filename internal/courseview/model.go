package courseview

import (
	"context"
	"errors"
	"fmt"

	"github.com/Deepakpottavatri06/CourseGen/internal/api"
	"github.com/Deepakpottavatri06/CourseGen/internal/course"
	"github.com/Deepakpottavatri06/CourseGen/internal/logger"
)

// User-facing messages for the error mode.
const (
	MsgNotFound   = "Course not found."
	MsgLoadFailed = "Failed to load course details. Please try again later."
)

// CourseAPI is the slice of the backend the view model talks to.
type CourseAPI interface {
	GetCourse(ctx context.Context, id string) (*course.Course, error)
	MarkSubtopicRead(ctx context.Context, courseID, subtopic string) error
}

// Mode is the display mode of a course view. A view leaves ModeLoading
// exactly once, on the first Apply.
type Mode int

const (
	ModeLoading Mode = iota
	ModeGenerating
	ModeError
	ModeReady
)

func (m Mode) String() string {
	switch m {
	case ModeLoading:
		return "loading"
	case ModeGenerating:
		return "generating"
	case ModeError:
		return "error"
	case ModeReady:
		return "ready"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ErrorKind classifies the failure behind ModeError.
type ErrorKind int

const (
	ErrorNone ErrorKind = iota
	ErrorNotFound
	ErrorUnauthorized
	ErrorNetwork
)

// LoadResult is the outcome of fetching a course document.
type LoadResult struct {
	Course *course.Course
	Err    error
}

// ReadRequest identifies the subtopic a mark-as-read call targets.
type ReadRequest struct {
	CourseID string
	Slug     string
	Title    string
}

// Model is the paginated reading state of a single course.
type Model struct {
	api      CourseAPI
	log      *logger.Logger
	courseID string

	mode     Mode
	errKind  ErrorKind
	errMsg   string
	course   *course.Course
	sections []Section
	current  int
	activeID string
	read     map[string]bool

	// scrollToken increments on every page change; views scroll their
	// content pane to the top whenever it differs from the last value seen.
	scrollToken int
}

// New creates a Model for courseID in ModeLoading. The api is expected to
// carry the caller's authorization.
func New(api CourseAPI, courseID string, log *logger.Logger) *Model {
	if log == nil {
		log = logger.Nop()
	}
	return &Model{
		api:      api,
		log:      log.With("course_id", courseID),
		courseID: courseID,
		read:     make(map[string]bool),
	}
}

// Fetch requests the course document. It does not touch view state and is
// safe to call off the UI goroutine.
func (m *Model) Fetch(ctx context.Context) LoadResult {
	c, err := m.api.GetCourse(ctx, m.courseID)
	return LoadResult{Course: c, Err: err}
}

// Apply moves the view out of ModeLoading according to res.
func (m *Model) Apply(res LoadResult) {
	if m.mode != ModeLoading {
		return
	}

	switch {
	case res.Err != nil:
		m.fail(res.Err)
		return
	case res.Course == nil:
		m.fail(api.ErrNotFound)
		return
	case !res.Course.ContentLoaded:
		m.course = res.Course
		m.mode = ModeGenerating
		return
	}

	m.course = res.Course
	m.sections = Flatten(res.Course)
	for _, s := range m.sections {
		if s.Kind == KindSubtopic {
			m.read[s.ID] = false
		}
	}
	if dups := DuplicateSlugs(m.sections); len(dups) > 0 {
		m.log.Warn("subtopic titles share a section id", "ids", dups)
	}

	m.mode = ModeReady
	m.current = 0
	if len(m.sections) > 0 {
		m.activeID = m.sections[0].ID
	}
}

func (m *Model) fail(err error) {
	m.mode = ModeError
	switch {
	case errors.Is(err, api.ErrNotFound):
		m.errKind = ErrorNotFound
		m.errMsg = MsgNotFound
	case errors.Is(err, api.ErrUnauthorized):
		m.errKind = ErrorUnauthorized
		m.errMsg = MsgLoadFailed
	default:
		m.errKind = ErrorNetwork
		m.errMsg = MsgLoadFailed
	}
	m.log.Error("failed to fetch course details", "error", err)
}

// Load fetches and applies in one call.
func (m *Model) Load(ctx context.Context) {
	m.Apply(m.Fetch(ctx))
}

func (m *Model) Mode() Mode              { return m.mode }
func (m *Model) ErrorKind() ErrorKind    { return m.errKind }
func (m *Model) ErrorMessage() string    { return m.errMsg }
func (m *Model) Course() *course.Course  { return m.course }
func (m *Model) CourseID() string        { return m.courseID }
func (m *Model) Sections() []Section     { return m.sections }
func (m *Model) Len() int                { return len(m.sections) }
func (m *Model) CurrentIndex() int       { return m.current }
func (m *Model) ActiveSectionID() string { return m.activeID }
func (m *Model) ScrollToken() int        { return m.scrollToken }

// Current returns the displayed section, or nil before the course is ready.
func (m *Model) Current() *Section {
	if m.current < 0 || m.current >= len(m.sections) {
		return nil
	}
	return &m.sections[m.current]
}

// IsRead reports the local read flag of the section with the given id.
func (m *Model) IsRead(id string) bool {
	return m.read[id]
}

// GoToPage selects section index. Out-of-range indexes are ignored.
func (m *Model) GoToPage(index int) {
	if index < 0 || index >= len(m.sections) {
		return
	}
	m.current = index
	m.activeID = m.sections[index].ID
	m.scrollToken++
}

func (m *Model) Previous() { m.GoToPage(m.current - 1) }
func (m *Model) Next()     { m.GoToPage(m.current + 1) }

// HasPrevious is false on the first section.
func (m *Model) HasPrevious() bool {
	return m.current > 0
}

// HasNext is false on the last section.
func (m *Model) HasNext() bool {
	return m.current < len(m.sections)-1
}

// Progress returns the number of subtopics marked read locally and the
// number of subtopic sections.
func (m *Model) Progress() (read, total int) {
	for _, s := range m.sections {
		if s.Kind != KindSubtopic {
			continue
		}
		total++
		if m.read[s.ID] {
			read++
		}
	}
	return read, total
}

// ReadRequest describes the mark-as-read call for the current section.
// ok is false when the view is not ready or the section is not a subtopic.
func (m *Model) ReadRequest() (req ReadRequest, ok bool) {
	if m.mode != ModeReady {
		return ReadRequest{}, false
	}
	s := m.Current()
	if s == nil || s.Kind != KindSubtopic {
		return ReadRequest{}, false
	}
	id := m.courseID
	if m.course != nil && m.course.ID != "" {
		id = m.course.ID
	}
	return ReadRequest{CourseID: id, Slug: s.ID, Title: s.Title}, true
}

// SendRead performs the write for req. It does not touch view state.
func (m *Model) SendRead(ctx context.Context, req ReadRequest) error {
	if err := m.api.MarkSubtopicRead(ctx, req.CourseID, req.Title); err != nil {
		m.log.Error("error marking subtopic as read", "subtopic", req.Title, "error", err)
		return err
	}
	m.log.Info("subtopic marked as read", "subtopic", req.Title)
	return nil
}

// ConfirmRead sets the local read flag after a successful write.
func (m *Model) ConfirmRead(slug string) {
	if _, ok := m.read[slug]; !ok {
		return
	}
	m.read[slug] = true
}

// MarkCurrentAsRead marks the current subtopic read on the server and, on
// success, locally. It is a no-op for main sections.
func (m *Model) MarkCurrentAsRead(ctx context.Context) error {
	req, ok := m.ReadRequest()
	if !ok {
		return nil
	}
	if err := m.SendRead(ctx, req); err != nil {
		return err
	}
	m.ConfirmRead(req.Slug)
	return nil
}
