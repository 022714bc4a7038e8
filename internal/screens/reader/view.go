package reader

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Deepakpottavatri06/CourseGen/internal/courseview"
	"github.com/Deepakpottavatri06/CourseGen/internal/ui/components"
	"github.com/Deepakpottavatri06/CourseGen/internal/ui/layout"
	"github.com/Deepakpottavatri06/CourseGen/internal/ui/theme"
)

const (
	scrollStep = 10

	sidebarWidth        = 30
	compactSidebarWidth = 22
)

// Messages for the non-ready modes.
const (
	msgLoading    = "Loading course..."
	msgGenerating = "Your course is being generated. This can take a few minutes; check back from the dashboard."
)

func (s *ReaderScreen) View(width, height int) string {
	switch s.model.Mode() {
	case courseview.ModeLoading:
		return placeCentered(theme.Hint.Render(msgLoading), width, height)
	case courseview.ModeGenerating:
		body := theme.Heading.Render("Course in progress") + "\n\n" +
			layout.Wrap(msgGenerating, components.ContentWidth(width)-6) + "\n\n" +
			theme.Hint.Render("Press Enter to go back to the dashboard")
		return placeCentered(components.Card(body, components.ContentWidth(width)), width, height)
	case courseview.ModeError:
		body := theme.ErrorText.Render(s.model.ErrorMessage()) + "\n\n" +
			theme.Hint.Render("Press Enter to go back to the dashboard")
		return placeCentered(components.Card(body, components.ContentWidth(width)), width, height)
	}

	header := s.renderHeader(width)
	bodyHeight := height - lipgloss.Height(header) - 1
	if bodyHeight < 4 {
		bodyHeight = 4
	}

	sw := sidebarWidth
	if layout.IsCompactWidth(width) {
		sw = compactSidebarWidth
	}
	sidebar := s.renderSidebar(sw, bodyHeight)
	paneWidth := width - lipgloss.Width(sidebar) - 2
	pane := s.renderPane(paneWidth, bodyHeight)

	return header + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", pane)
}

func (s *ReaderScreen) renderHeader(width int) string {
	c := s.model.Course()
	read, total := s.model.Progress()

	meta := theme.Hint.Render(fmt.Sprintf("%s · %d min read · %d/%d read",
		c.Difficulty.Label(), c.EstimatedReadingTime, read, total))
	bar := components.NewProgressBar("", components.Fraction(read, total), true, width/3).View()

	gap := width - lipgloss.Width(meta) - lipgloss.Width(bar)
	if gap < 1 {
		gap = 1
	}
	return meta + strings.Repeat(" ", gap) + bar
}

// renderSidebar lists the sections in a bordered box exactly height lines
// tall. Long outlines are windowed around the cursor.
func (s *ReaderScreen) renderSidebar(width, height int) string {
	inner := width - 4
	rows := max(1, height-3)
	sections := s.model.Sections()
	start, end := sidebarWindow(len(sections), s.cursor, rows)

	lines := make([]string, 0, rows+1)
	lines = append(lines, theme.Heading.Render("Contents"))
	for i := start; i < end; i++ {
		sec := sections[i]
		mark := "  "
		if sec.Kind == courseview.KindSubtopic && s.model.IsRead(sec.ID) {
			mark = theme.ReadMark.Render("✓ ")
		}

		label := truncate(fmt.Sprintf("%d. %s", i+1, sec.Title), inner-3)

		var style lipgloss.Style
		switch {
		case sec.ID == s.model.ActiveSectionID() && i == s.model.CurrentIndex():
			style = theme.Active
		case i == s.cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}

		prefix := " "
		switch {
		case i == s.cursor:
			prefix = "▸"
		case i == start && start > 0:
			prefix = "↑"
		case i == end-1 && end < len(sections):
			prefix = "↓"
		}
		lines = append(lines, prefix+mark+style.Render(label))
	}
	for len(lines) < rows+1 {
		lines = append(lines, "")
	}

	return theme.Sidebar.
		Width(width).
		Render(strings.Join(lines, "\n"))
}

// sidebarWindow returns the [start, end) range of n entries to show in
// rows lines, keeping cursor roughly centred.
func sidebarWindow(n, cursor, rows int) (start, end int) {
	if n <= rows {
		return 0, n
	}
	start = cursor - rows/2
	if start < 0 {
		start = 0
	}
	if start > n-rows {
		start = n - rows
	}
	return start, start + rows
}

func (s *ReaderScreen) renderPane(width, height int) string {
	sec := s.model.Current()
	if sec == nil || width < 10 {
		return ""
	}
	text := renderSection(sec, s.model.IsRead(sec.ID), s.marking, width-2)

	nav := s.renderNav(width - 2)
	lines := strings.Split(text, "\n")

	visible := height - 2
	if visible < 1 {
		visible = 1
	}
	maxOffset := len(lines) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.offset > maxOffset {
		s.offset = maxOffset
	}
	end := s.offset + visible
	if end > len(lines) {
		end = len(lines)
	}

	return strings.Join(lines[s.offset:end], "\n") + "\n\n" + nav
}

func (s *ReaderScreen) renderNav(width int) string {
	prev := theme.Disabled.Render("← Previous")
	if s.model.HasPrevious() {
		prev = theme.Selected.Render("← Previous")
	}
	next := theme.Disabled.Render("Next →")
	if s.model.HasNext() {
		next = theme.Selected.Render("Next →")
	}
	pos := theme.Hint.Render(fmt.Sprintf("%d / %d", s.model.CurrentIndex()+1, s.model.Len()))

	gap := (width - lipgloss.Width(prev) - lipgloss.Width(next) - lipgloss.Width(pos)) / 2
	if gap < 1 {
		gap = 1
	}
	return prev + strings.Repeat(" ", gap) + pos + strings.Repeat(" ", gap) + next
}

// renderSection lays out one section's payload as wrapped text.
func renderSection(sec *courseview.Section, read, marking bool, width int) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render(sec.Title))
	b.WriteString("\n\n")

	switch {
	case sec.Intro != nil:
		b.WriteString(layout.Wrap(sec.Intro.Introduction, width))
		b.WriteString("\n\n")
		b.WriteString(theme.Heading.Render("Overview"))
		b.WriteString("\n")
		b.WriteString(layout.Wrap(sec.Intro.Overview, width))
	case sec.Kind == courseview.KindMain:
		if len(sec.Items) == 0 {
			b.WriteString(theme.Hint.Render("None listed."))
		}
		for _, item := range sec.Items {
			b.WriteString(layout.Wrap("• "+item, width))
			b.WriteString("\n")
		}
	default:
		b.WriteString(renderMarkdown(sec.Body, width))
		if len(sec.Sources) > 0 {
			b.WriteString("\n\n")
			b.WriteString(theme.Heading.Render("Sources"))
			b.WriteString("\n")
			for _, src := range sec.Sources {
				b.WriteString(theme.Link.Render(src))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n\n")
		switch {
		case read:
			b.WriteString(theme.ReadMark.Render("✓ Read"))
		case marking:
			b.WriteString(theme.Hint.Render("Marking as read..."))
		default:
			b.WriteString(components.NewButton("Mark as read (m)", true, nil).View())
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
