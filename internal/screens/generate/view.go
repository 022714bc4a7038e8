package generate

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Deepakpottavatri06/CourseGen/internal/course"
	"github.com/Deepakpottavatri06/CourseGen/internal/ui/components"
	"github.com/Deepakpottavatri06/CourseGen/internal/ui/layout"
	"github.com/Deepakpottavatri06/CourseGen/internal/ui/theme"
)

func (s *GenerateScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if s.done {
		body := theme.SuccessText.Render("✓ Success") + "\n\n" + layout.Wrap(MsgStarted, cw-6)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.Card(body, cw))
	}

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw - 8).Render("Generate a New Course"))
	b.WriteString("\n\n")
	b.WriteString(s.topic.View())
	b.WriteString("\n\n")
	b.WriteString(s.subtopic.View())
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%d/%d subtopics", len(s.subtopics), course.MaxSubtopics)))
	b.WriteString("\n")
	b.WriteString(s.renderList())
	b.WriteString("\n\n")
	b.WriteString(s.difficulty.View())
	b.WriteString("\n\n")

	switch {
	case s.pending:
		b.WriteString(theme.Hint.Render("Generating..."))
	default:
		if s.errMsg != "" {
			b.WriteString(components.ErrorLine(s.errMsg))
			b.WriteString("\n")
		}
		b.WriteString(components.NewButton("Generate Course", s.focus == fieldSubmit, nil).View())
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.Card(b.String(), cw))
}

func (s *GenerateScreen) renderList() string {
	if len(s.subtopics) == 0 {
		return theme.Disabled.Render("  no subtopics yet")
	}
	lines := make([]string, len(s.subtopics))
	for i, sub := range s.subtopics {
		switch {
		case s.focus == fieldList && i == s.listCursor:
			lines[i] = theme.Selected.Render("▸ " + sub + "  ✕")
		default:
			lines[i] = theme.Body.Render("• " + sub)
		}
	}
	return strings.Join(lines, "\n")
}
