// Package report renders diagnostics for terminals, with the offending
// source line shown under each message.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/you-not-fish/lang/internal/syntax"
)

// Color modes accepted by NewPrinter.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Color Palette
var (
	ColorError = lipgloss.Color("#EF4444") // Red
	ColorMuted = lipgloss.Color("#6B7280") // Gray
	ColorText  = lipgloss.Color("#F8FAFC") // Slate 50
)

// Printer writes diagnostics to w. Without color its output is plain text
// whose first line per diagnostic is exactly the diagnostic's Error string.
type Printer struct {
	w       io.Writer
	color   bool
	context int // source lines shown before the offending one

	header lipgloss.Style
	gutter lipgloss.Style
	code   lipgloss.Style
}

// NewPrinter returns a Printer for w. In auto mode color is used only when
// w is a terminal that supports it.
func NewPrinter(w io.Writer, mode string) *Printer {
	r := lipgloss.NewRenderer(w)
	color := false
	switch mode {
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
		color = true
	case ColorNever:
	default:
		color = r.ColorProfile() != termenv.Ascii
	}

	return &Printer{
		w:       w,
		color:   color,
		context: 1,
		header:  r.NewStyle().Foreground(ColorError).Bold(true),
		gutter:  r.NewStyle().Foreground(ColorMuted),
		code:    r.NewStyle().Foreground(ColorText),
	}
}

// SetContext sets how many lines before the offending one are shown.
func (p *Printer) SetContext(n int) {
	if n < 0 {
		n = 0
	}
	p.context = n
}

func (p *Printer) render(st lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return st.Render(s)
}

// Format returns d rendered with its source context. src may be nil, in
// which case only the message line is produced.
func (p *Printer) Format(d *syntax.Diagnostic, src *syntax.Source) string {
	var b strings.Builder
	b.WriteString(p.render(p.header, d.Error()))
	b.WriteByte('\n')

	if src == nil {
		return b.String()
	}
	if _, ok := src.Line(d.Line); !ok {
		return b.String()
	}

	first := d.Line - p.context
	if first < 1 {
		first = 1
	}
	for n := first; n <= d.Line; n++ {
		text, _ := src.Line(n)
		marker := " "
		if n == d.Line {
			marker = ">"
		}
		b.WriteString(p.render(p.gutter, fmt.Sprintf("%s%4d | ", marker, n)))
		b.WriteString(p.render(p.code, text))
		b.WriteByte('\n')
	}
	return b.String()
}

// Print writes every diagnostic in order and returns how many were
// written.
func (p *Printer) Print(diags []*syntax.Diagnostic, src *syntax.Source) (int, error) {
	for i, d := range diags {
		if i > 0 {
			if _, err := io.WriteString(p.w, "\n"); err != nil {
				return i, err
			}
		}
		if _, err := io.WriteString(p.w, p.Format(d, src)); err != nil {
			return i, err
		}
	}
	return len(diags), nil
}

// Summary returns a one-line count such as "2 errors".
func Summary(n int) string {
	if n == 1 {
		return "1 error"
	}
	return fmt.Sprintf("%d errors", n)
}
