package account

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/Deepakpottavatri06/CourseGen/internal/api"
	"github.com/Deepakpottavatri06/CourseGen/internal/auth"
	"github.com/Deepakpottavatri06/CourseGen/internal/ui/components"
)

// form is a vertical list of inputs with one focused at a time.
type form struct {
	inputs []components.TextInput
	focus  int
}

func newForm(inputs ...components.TextInput) form {
	f := form{inputs: inputs}
	f.inputs[0].Focus()
	return f
}

func (f *form) setFocus(i int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (i + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

func (f *form) next() tea.Cmd { return f.setFocus(f.focus + 1) }
func (f *form) prev() tea.Cmd { return f.setFocus(f.focus - 1) }

func (f *form) onLast() bool {
	return f.focus == len(f.inputs)-1
}

// update routes navigation keys and forwards the rest to the focused input.
// submit reports an Enter on the last field.
func (f *form) update(msg tea.Msg) (cmd tea.Cmd, submit bool) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			return f.next(), false
		case "shift+tab", "up":
			return f.prev(), false
		case "enter":
			if f.onLast() {
				return nil, true
			}
			return f.next(), false
		}
	}
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd, false
}

func (f *form) value(i int) string {
	return f.inputs[i].Value()
}

func (f *form) view() string {
	parts := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		parts[i] = in.View()
	}
	return strings.Join(parts, "\n\n")
}

// describe turns a login or register failure into a user-facing message.
func describe(err error, fallback string) string {
	var ie *auth.InputError
	if errors.As(err, &ie) {
		return strings.Join(ie.Problems, "\n")
	}
	return api.Message(err, fallback)
}
