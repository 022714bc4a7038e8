package reader

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/Deepakpottavatri06/CourseGen/internal/ui/theme"
)

var (
	mdStrong = lipgloss.NewStyle().Bold(true).Foreground(theme.Text)
	mdEmph   = lipgloss.NewStyle().Italic(true)
	mdCode   = lipgloss.NewStyle().Foreground(theme.Accent)
	mdQuote  = theme.Hint
)

var md = goldmark.New()

// renderMarkdown renders subtopic content for a pane width columns wide.
func renderMarkdown(src string, width int) string {
	if width < 10 {
		width = 10
	}
	source := []byte(src)
	r := &mdRenderer{src: source, width: width}
	r.blocks(md.Parser().Parse(text.NewReader(source)), "")
	return strings.Join(r.out, "\n")
}

type mdRenderer struct {
	src   []byte
	width int
	out   []string
}

func (r *mdRenderer) blocks(parent ast.Node, indent string) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		r.block(n, indent)
	}
}

func (r *mdRenderer) block(n ast.Node, indent string) {
	switch n := n.(type) {
	case *ast.Heading:
		r.gap()
		r.wrap(indent, indent, theme.Heading.Render(r.inline(n)))
	case *ast.Paragraph:
		r.gap()
		r.wrap(indent, indent, r.inline(n))
	case *ast.TextBlock:
		r.wrap(indent, indent, r.inline(n))
	case *ast.List:
		if indent == "" {
			r.gap()
		}
		r.list(n, indent)
	case *ast.FencedCodeBlock:
		r.gap()
		r.code(n, indent)
	case *ast.CodeBlock:
		r.gap()
		r.code(n, indent)
	case *ast.Blockquote:
		r.gap()
		start := len(r.out)
		r.blocks(n, indent+"│ ")
		for i := start; i < len(r.out); i++ {
			r.out[i] = mdQuote.Render(r.out[i])
		}
	case *ast.ThematicBreak:
		r.gap()
		r.emit(indent + strings.Repeat("─", max(1, r.width-ansi.StringWidth(indent))))
	case *ast.HTMLBlock:
	default:
		r.blocks(n, indent)
	}
}

func (r *mdRenderer) list(l *ast.List, indent string) {
	num := l.Start
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if l.IsOrdered() {
			marker = fmt.Sprintf("%d. ", num)
			num++
		}
		pad := strings.Repeat(" ", ansi.StringWidth(marker))

		lead := indent + marker
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch c.(type) {
			case *ast.TextBlock, *ast.Paragraph:
				r.wrap(lead, indent+pad, r.inline(c))
			default:
				if lead != indent+pad {
					r.emit(lead)
				}
				r.block(c, indent+pad)
			}
			lead = indent + pad
		}
		if item.FirstChild() == nil {
			r.emit(lead)
		}
	}
}

type lineBlock interface {
	Lines() *text.Segments
}

func (r *mdRenderer) code(n lineBlock, indent string) {
	lines := n.Lines()
	limit := r.width - ansi.StringWidth(indent) - 2
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := strings.TrimRight(string(seg.Value(r.src)), "\r\n")
		r.emit(indent + "  " + mdCode.Render(ansi.Truncate(line, max(1, limit), "…")))
	}
}

func (r *mdRenderer) inline(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(r.src))
			switch {
			case c.HardLineBreak():
				b.WriteString("\n")
			case c.SoftLineBreak():
				b.WriteString(" ")
			}
		case *ast.String:
			b.Write(c.Value)
		case *ast.Emphasis:
			if c.Level >= 2 {
				b.WriteString(mdStrong.Render(r.inline(c)))
			} else {
				b.WriteString(mdEmph.Render(r.inline(c)))
			}
		case *ast.CodeSpan:
			b.WriteString(mdCode.Render(r.inline(c)))
		case *ast.Link:
			label := r.inline(c)
			b.WriteString(theme.Link.Render(label))
			if dest := string(c.Destination); dest != "" && dest != ansi.Strip(label) {
				b.WriteString(" (" + dest + ")")
			}
		case *ast.AutoLink:
			b.WriteString(theme.Link.Render(string(c.URL(r.src))))
		case *ast.Image:
			b.WriteString("[" + r.inline(c) + "]")
		case *ast.RawHTML:
		default:
			b.WriteString(r.inline(c))
		}
	}
	return b.String()
}

// wrap word-wraps s and prefixes the first line with first and the rest
// with rest.
func (r *mdRenderer) wrap(first, rest, s string) {
	limit := max(1, r.width-ansi.StringWidth(first))
	for i, line := range strings.Split(ansi.Wrap(s, limit, ""), "\n") {
		if i == 0 {
			r.emit(first + line)
		} else {
			r.emit(rest + line)
		}
	}
}

func (r *mdRenderer) emit(line string) {
	r.out = append(r.out, line)
}

// gap separates blocks with a single blank line.
func (r *mdRenderer) gap() {
	if len(r.out) > 0 && r.out[len(r.out)-1] != "" {
		r.out = append(r.out, "")
	}
}
