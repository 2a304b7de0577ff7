package syntax

import "fmt"

// DiagnosticKind describes what went wrong at a diagnostic's line.
// The concrete kinds below are the only implementations.
type DiagnosticKind interface {
	Message() string
	aKind()
}

type diagKind struct{}

func (diagKind) aKind() {}

// InvalidToken is a character sequence that does not start any token.
type InvalidToken struct {
	diagKind
	Lexeme string
}

// UnexpectedToken is a token of the wrong kind for the construct being parsed.
type UnexpectedToken struct {
	diagKind
	Expected TokenKind
	Found    TokenKind
}

// VarRedeclared is a second declaration of a name in the same scope.
type VarRedeclared struct {
	diagKind
	OriginalLine int
	Name         string
}

// VarUnknown is a reference to a name with no visible variable binding.
type VarUnknown struct {
	diagKind
	Name string
}

// TypeUnknown is a type annotation naming no known type.
type TypeUnknown struct {
	diagKind
	Name string
}

// NumLiteralTooLarge is an integer literal outside the 32-bit signed range.
type NumLiteralTooLarge struct {
	diagKind
	Lexeme string
}

// ExpectedExpression is a token that cannot start an expression term.
type ExpectedExpression struct {
	diagKind
	Found TokenKind
}

// NestingTooDeep reports source nested deeper than the parser allows.
type NestingTooDeep struct {
	diagKind
	Limit int
}

func (k *InvalidToken) Message() string {
	return fmt.Sprintf("Unexpected token in source file: '%s'", k.Lexeme)
}

func (k *UnexpectedToken) Message() string {
	return fmt.Sprintf("Expected token '%s', found '%s'", k.Expected, k.Found)
}

func (k *VarRedeclared) Message() string {
	return fmt.Sprintf("Variable '%s' redeclared. (Originally declared on line %d)", k.Name, k.OriginalLine)
}

func (k *VarUnknown) Message() string {
	return fmt.Sprintf("Unknown variable '%s'", k.Name)
}

func (k *TypeUnknown) Message() string {
	return fmt.Sprintf("Unknown type '%s'", k.Name)
}

func (k *NumLiteralTooLarge) Message() string {
	return fmt.Sprintf("Number literal '%s' does not fit in 32 bits", k.Lexeme)
}

func (k *ExpectedExpression) Message() string {
	return fmt.Sprintf("Expected expression, found '%s'", k.Found)
}

func (k *NestingTooDeep) Message() string {
	return fmt.Sprintf("Nesting exceeds maximum depth of %d", k.Limit)
}

// Diagnostic is one failure at a source line. It implements error; the
// error text is the stable rendering "ERROR (line N): message".
type Diagnostic struct {
	Line int
	Kind DiagnosticKind
}

// NewDiagnostic returns a diagnostic of kind k at line.
func NewDiagnostic(line int, k DiagnosticKind) *Diagnostic {
	return &Diagnostic{Line: line, Kind: k}
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("ERROR (line %d): %s", d.Line, d.Kind.Message())
}

// Diagnostics accumulates the diagnostics of one compilation. It only
// records; deciding whether to stop is up to the caller.
type Diagnostics struct {
	list []*Diagnostic
}

// Report appends d.
func (s *Diagnostics) Report(d *Diagnostic) {
	s.list = append(s.list, d)
}

// HasDiagnostics reports whether anything has been reported since the
// last drain.
func (s *Diagnostics) HasDiagnostics() bool {
	return len(s.list) > 0
}

// Len returns the number of pending diagnostics.
func (s *Diagnostics) Len() int {
	return len(s.list)
}

// TakeDiagnostics returns all pending diagnostics in report order and
// empties the sink.
func (s *Diagnostics) TakeDiagnostics() []*Diagnostic {
	list := s.list
	s.list = nil
	return list
}
