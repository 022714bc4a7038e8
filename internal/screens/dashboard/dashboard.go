package dashboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Deepakpottavatri06/CourseGen/internal/course"
	"github.com/Deepakpottavatri06/CourseGen/internal/screen"
	"github.com/Deepakpottavatri06/CourseGen/internal/screens"
	"github.com/Deepakpottavatri06/CourseGen/internal/ui/layout"
	"github.com/Deepakpottavatri06/CourseGen/internal/ui/theme"
)

// MsgLoadFailed is shown when the course list cannot be fetched.
const MsgLoadFailed = "Failed to load courses. Please try again later."

type coursesLoadedMsg struct {
	to      screen.Screen
	Courses []course.Course
	Err     error
}

func (m coursesLoadedMsg) Recipient() screen.Screen { return m.to }

// DashboardScreen lists the user's generated courses.
type DashboardScreen struct {
	deps     screens.Deps
	life     screens.Lifetime
	courses  []course.Course
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.Closer = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a new DashboardScreen.
func New(deps screens.Deps) *DashboardScreen {
	return &DashboardScreen{
		deps: deps,
		life: screens.NewLifetime(),
	}
}

func (s *DashboardScreen) Init() tea.Cmd {
	return s.load()
}

func (s *DashboardScreen) load() tea.Cmd {
	s.loaded = false
	s.errMsg = ""
	ctx := s.life.Context()
	return func() tea.Msg {
		courses, err := s.deps.API.ListCourses(ctx)
		return coursesLoadedMsg{to: s, Courses: courses, Err: err}
	}
}

func (s *DashboardScreen) Close() {
	s.life.Close()
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Open"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "g", Description: "Generate"},
		{Key: "r", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

// Courses returns the loaded course list.
func (s *DashboardScreen) Courses() []course.Course {
	return s.courses
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case coursesLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.deps.Logger().Error("failed to fetch courses", "error", msg.Err)
			if cmd := s.deps.Expired(msg.Err); cmd != nil {
				return s, cmd
			}
			s.errMsg = MsgLoadFailed
			return s, nil
		}
		s.courses = msg.Courses
		if s.selected >= len(s.courses) {
			s.selected = 0
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.courses)-1 {
				s.selected++
			}
		case "enter":
			if s.loaded && s.selected < len(s.courses) {
				return s, screens.Push(s.deps.Nav.Reader(s.courses[s.selected].ID))
			}
		case "g":
			return s, screens.Push(s.deps.Nav.Generate())
		case "r":
			if s.loaded {
				return s, s.load()
			}
		}
	}
	return s, nil
}

func (s *DashboardScreen) View(width, height int) string {
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString(center(theme.Title, "Your Personalized Learning Dashboard"))
	b.WriteString("\n")
	b.WriteString(center(theme.Subtitle, "Access the custom courses you've generated and learn at your own pace."))
	b.WriteString("\n\n")

	switch {
	case s.errMsg != "":
		b.WriteString(center(theme.ErrorText, "Error! "+s.errMsg))
		return b.String()
	case !s.loaded:
		b.WriteString(center(theme.Hint, "Loading your courses..."))
		return b.String()
	case len(s.courses) == 0:
		b.WriteString(center(theme.Hint, "It looks like you haven't generated any courses yet."))
		b.WriteString("\n")
		b.WriteString(center(theme.Selected, "Press g to generate your first course!"))
		return b.String()
	}

	cardWidth := width - 8
	if cardWidth > 90 {
		cardWidth = 90
	}

	// Each card is 4 lines plus a gap; keep the selection in view.
	const perCard = 5
	visible := (height - 4) / perCard
	if visible < 1 {
		visible = 1
	}
	start := 0
	if s.selected >= visible {
		start = s.selected - visible + 1
	}

	for i := start; i < len(s.courses) && i < start+visible; i++ {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			renderCard(s.courses[i], i == s.selected, cardWidth)))
		b.WriteString("\n")
	}

	return b.String()
}

func renderCard(c course.Course, selected bool, width int) string {
	title := theme.Heading.Render(c.Topic)
	if selected {
		title = theme.Selected.Render("▸ " + c.Topic)
	}

	status := theme.ReadMark.Render("ready")
	if !c.ContentLoaded {
		status = lipgloss.NewStyle().Foreground(theme.Accent).Render("generating")
	}

	meta := theme.Hint.Render(fmt.Sprintf("Difficulty: %s   Reading time: %d mins   ",
		c.Difficulty.Label(), c.EstimatedReadingTime)) + status

	subs := theme.Body.Render(truncate(strings.Join(c.SubTopics, " · "), width-4))

	border := theme.Border
	if selected {
		border = theme.Primary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width).
		Padding(0, 1).
		Render(title + "\n" + meta + "\n" + subs)
}

func truncate(s string, n int) string {
	if n <= 1 || lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) > n-1 {
		r = r[:n-1]
	}
	return string(r) + "…"
}
