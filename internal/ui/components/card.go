package components

import (
	"charm.land/lipgloss/v2"

	"github.com/Deepakpottavatri06/CourseGen/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for centered forms and
// cards. All boxes are rendered at this width so they visually align.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Padding(1, 2).
		Render(content)
}

// ErrorLine renders msg as an inline error, or "" when msg is empty.
func ErrorLine(msg string) string {
	if msg == "" {
		return ""
	}
	return theme.ErrorText.Render("✗ " + msg)
}
