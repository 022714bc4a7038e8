package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/Deepakpottavatri06/CourseGen/internal/ui/theme"
)

const bannerText = "C O U R S E G E N"

const bannerCompact = "CourseGen"

// RenderBanner returns the CourseGen banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 30 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 30 {
		return style.Render(bannerCompact)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 3).
		Render(style.Render(bannerText))
}
