// Package syntax implements the token model, token stream and scanner for
// the language.
package syntax

import "fmt"

// TokenKind identifies the lexical class of a token.
type TokenKind uint

const (
	// Special tokens
	EOF TokenKind = iota // end of input, always the last token

	// Dynamic classes
	Name    // identifier: x, total, _tmp
	Literal // decimal integer literal: 0, 42

	// Operators
	Assign // =
	Eql    // ==
	Neq    // !=
	Lss    // <
	Leq    // <=
	Gtr    // >
	Geq    // >=
	Add    // +
	Sub    // -
	Mul    // *
	Div    // /
	Not    // !

	// Delimiters
	Semi   // ;
	Colon  // :
	Lbrace // {
	Rbrace // }
	Lparen // (
	Rparen // )
	Comma  // ,

	// Keywords
	Break
	Continue
	Else
	Func
	If
	Let
	Return
	While

	tokenCount
)

// tokenNames maps kinds to the surface syntax used in diagnostics.
var tokenNames = [...]string{
	EOF: "EOF",

	Name:    "identifier",
	Literal: "literal",

	Assign: "=",
	Eql:    "==",
	Neq:    "!=",
	Lss:    "<",
	Leq:    "<=",
	Gtr:    ">",
	Geq:    ">=",
	Add:    "+",
	Sub:    "-",
	Mul:    "*",
	Div:    "/",
	Not:    "!",

	Semi:   ";",
	Colon:  ":",
	Lbrace: "{",
	Rbrace: "}",
	Lparen: "(",
	Rparen: ")",
	Comma:  ",",

	Break:    "break",
	Continue: "continue",
	Else:     "else",
	Func:     "func",
	If:       "if",
	Let:      "let",
	Return:   "return",
	While:    "while",
}

// String returns the surface syntax of the kind.
func (k TokenKind) String() string {
	if k < tokenCount {
		return tokenNames[k]
	}
	return fmt.Sprintf("token(%d)", k)
}

// IsKeyword reports whether k is a keyword.
func (k TokenKind) IsKeyword() bool {
	return k >= Break && k <= While
}

// IsOperator reports whether k is an operator.
func (k TokenKind) IsOperator() bool {
	return k >= Assign && k <= Not
}

// keywords maps reserved words to their kind.
var keywords = map[string]TokenKind{
	"break":    Break,
	"continue": Continue,
	"else":     Else,
	"func":     Func,
	"if":       If,
	"let":      Let,
	"return":   Return,
	"while":    While,
}

// LookupKeyword returns the keyword kind for ident, or Name if ident is
// not reserved.
func LookupKeyword(ident string) TokenKind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return Name
}

// Token is one lexical unit. Tokens are immutable values and are copied
// into every AST node that needs one.
type Token struct {
	Kind   TokenKind
	Lexeme string // source text of the token; empty for EOF
	Span   Span
	Pos    Pos
}

// Line returns the 1-based source line of the token.
func (t Token) Line() int {
	return t.Pos.Line()
}

// Is reports whether the token has kind k.
func (t Token) Is(k TokenKind) bool {
	return t.Kind == k
}

func (t Token) String() string {
	if t.Kind == Name || t.Kind == Literal {
		return fmt.Sprintf("%s %q", t.Kind, t.Lexeme)
	}
	return t.Kind.String()
}
