package about

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Deepakpottavatri06/CourseGen/internal/screen"
	"github.com/Deepakpottavatri06/CourseGen/internal/ui/components"
	"github.com/Deepakpottavatri06/CourseGen/internal/ui/layout"
	"github.com/Deepakpottavatri06/CourseGen/internal/ui/theme"
)

type feature struct {
	name, text string
}

var features = []feature{
	{"AI-Powered Curation", "Content is gathered and curated from many sources so you get the most relevant material."},
	{"Personalized Learning", "Every course is shaped by your topic, chosen subtopics and difficulty."},
	{"Time-Efficient", "Skip hours of research. Get a structured course in minutes."},
	{"Multiple Sources", "Each subtopic lists the sources it was built from."},
	{"Structured Learning", "Courses move from introduction and objectives through each subtopic in order."},
}

// AboutScreen describes the product. It scrolls with ↑↓.
type AboutScreen struct {
	offset int
}

var _ screen.Screen = (*AboutScreen)(nil)
var _ screen.KeyHintProvider = (*AboutScreen)(nil)

// New creates a new AboutScreen.
func New() *AboutScreen {
	return &AboutScreen{}
}

func (a *AboutScreen) Init() tea.Cmd {
	return nil
}

func (a *AboutScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "up", "k":
			if a.offset > 0 {
				a.offset--
			}
		case "down", "j":
			a.offset++
		}
	}
	return a, nil
}

func (a *AboutScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("About CourseGen"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(cw).Render("Personalized learning through generated courses"))
	b.WriteString("\n\n")
	b.WriteString(theme.Heading.Render("Our Mission"))
	b.WriteString("\n")
	b.WriteString(layout.Wrap("Learning should be personalized, accessible and efficient. CourseGen builds "+
		"a custom course for the topic you want to master, split into the subtopics you care about.", cw))
	b.WriteString("\n\n")
	b.WriteString(theme.Heading.Render("Why CourseGen?"))
	b.WriteString("\n")
	for _, f := range features {
		b.WriteString(theme.Selected.Render("• " + f.name))
		b.WriteString("\n")
		b.WriteString(layout.Wrap("  "+f.text, cw))
		b.WriteString("\n")
	}

	lines := strings.Split(b.String(), "\n")
	maxOffset := len(lines) - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if a.offset > maxOffset {
		a.offset = maxOffset
	}
	lines = lines[a.offset:]

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n"))
}

func (a *AboutScreen) Title() string {
	return "About"
}

func (a *AboutScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}
