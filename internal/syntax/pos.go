package syntax

import "fmt"

// Pos is a line/column position in a source file.
// The zero value is an invalid position.
type Pos struct {
	filename string
	line     int // 1-based
	col      int // 1-based byte column
}

// NewPos returns the position line:col in filename.
func NewPos(filename string, line, col int) Pos {
	return Pos{filename: filename, line: line, col: col}
}

// String formats p as "filename:line:col", or "line:col" when the
// filename is empty.
func (p Pos) String() string {
	if p.filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.filename, p.line, p.col)
	}
	return fmt.Sprintf("%d:%d", p.line, p.col)
}

// IsValid reports whether p refers to a real source line.
func (p Pos) IsValid() bool {
	return p.line > 0
}

func (p Pos) Line() int        { return p.line }
func (p Pos) Col() int         { return p.col }
func (p Pos) Filename() string { return p.filename }

// Span is a half-open byte range [Low, High) into the source text.
type Span struct {
	Low, High int
}
