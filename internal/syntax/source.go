package syntax

import (
	"io"
	"strings"
)

// Source holds the complete text of one compilation unit and maps spans
// and line numbers back to the text they cover.
type Source struct {
	name  string
	text  string
	lines []int // byte offset of the start of each line
}

// NewSource returns a Source for text.
func NewSource(name, text string) *Source {
	s := &Source{name: name, text: text, lines: []int{0}}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			s.lines = append(s.lines, i+1)
		}
	}
	return s
}

// ReadSource reads all of r into a Source.
func ReadSource(name string, r io.Reader) (*Source, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewSource(name, string(buf)), nil
}

// Name returns the file name the source was loaded from.
func (s *Source) Name() string { return s.name }

// Text returns the whole source text.
func (s *Source) Text() string { return s.text }

// Len returns the length of the source in bytes.
func (s *Source) Len() int { return len(s.text) }

// Spanned returns the text covered by span. Out-of-range spans are clamped.
func (s *Source) Spanned(span Span) string {
	lo, hi := clamp(span.Low, 0, len(s.text)), clamp(span.High, 0, len(s.text))
	if lo > hi {
		return ""
	}
	return s.text[lo:hi]
}

// NumLines returns the number of lines in the source. A trailing newline
// does not start a new line.
func (s *Source) NumLines() int {
	n := len(s.lines)
	if n > 1 && s.lines[n-1] == len(s.text) {
		n--
	}
	return n
}

// Line returns the text of the 1-based line n without its newline.
// It returns "" and false if n is out of range.
func (s *Source) Line(n int) (string, bool) {
	if n < 1 || n > s.NumLines() {
		return "", false
	}
	start := s.lines[n-1]
	end := len(s.text)
	if n < len(s.lines) {
		end = s.lines[n] - 1
	}
	return strings.TrimSuffix(s.text[start:end], "\r"), true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
