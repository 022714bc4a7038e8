package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/Deepakpottavatri06/CourseGen/internal/ui/theme"
)

// Choice is a single-line selector over a fixed set of options, cycled with
// left/right or space.
type Choice struct {
	Label    string
	Options  []string
	Selected int
	Focused  bool
}

// NewChoice creates a Choice with the first option selected.
func NewChoice(label string, options []string) Choice {
	return Choice{Label: label, Options: options}
}

// Update cycles the selection while focused.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	if !c.Focused || len(c.Options) == 0 {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "left", "h":
		c.Selected = (c.Selected - 1 + len(c.Options)) % len(c.Options)
	case "right", "l", "space":
		c.Selected = (c.Selected + 1) % len(c.Options)
	}
	return c, nil
}

// Value returns the selected option.
func (c Choice) Value() string {
	if c.Selected < 0 || c.Selected >= len(c.Options) {
		return ""
	}
	return c.Options[c.Selected]
}

// View renders the options with the selected one highlighted.
func (c Choice) View() string {
	parts := make([]string, 0, len(c.Options))
	for i, opt := range c.Options {
		switch {
		case i == c.Selected && c.Focused:
			parts = append(parts, theme.Active.Render(" "+opt+" "))
		case i == c.Selected:
			parts = append(parts, theme.Selected.Render("["+opt+"]"))
		default:
			parts = append(parts, theme.Hint.Render(" "+opt+" "))
		}
	}
	label := theme.Body.Render(c.Label)
	if c.Focused {
		label = theme.Selected.Render(c.Label)
	}
	return label + "  " + strings.Join(parts, " ")
}
