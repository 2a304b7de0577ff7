package syntax

import (
	"unicode"
	"unicode/utf8"
)

// ErrorHandler is called by the Scanner for every character that cannot
// start a token. The offending text is passed as lexeme.
type ErrorHandler func(pos Pos, lexeme string)

// Scanner turns source text into tokens.
type Scanner struct {
	src  *Source
	errh ErrorHandler

	// Position of ch
	offs int // byte offset of ch
	line int // 1-based
	col  int // 1-based

	ch    rune // current character, -1 at end of input
	width int  // byte width of ch
}

// NewScanner returns a Scanner reading from src. If errh is nil, invalid
// characters are skipped silently.
func NewScanner(src *Source, errh ErrorHandler) *Scanner {
	s := &Scanner{src: src, errh: errh, line: 1, col: 1}
	s.load()
	return s
}

// load decodes the character at s.offs into s.ch.
func (s *Scanner) load() {
	if s.offs >= len(s.src.text) {
		s.ch, s.width = -1, 0
		return
	}
	s.ch, s.width = utf8.DecodeRuneInString(s.src.text[s.offs:])
}

// nextch advances past the current character.
func (s *Scanner) nextch() {
	if s.ch < 0 {
		return
	}
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col += s.width
	}
	s.offs += s.width
	s.load()
}

// peekch returns the character after ch without consuming anything.
func (s *Scanner) peekch() rune {
	next := s.offs + s.width
	if next >= len(s.src.text) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(s.src.text[next:])
	return r
}

func (s *Scanner) pos() Pos {
	return NewPos(s.src.name, s.line, s.col)
}

// Next scans and returns the next token. Once the end of input is reached
// every call returns an EOF token.
func (s *Scanner) Next() Token {
redo:
	s.skipWhitespace()

	start, pos := s.offs, s.pos()
	var kind TokenKind

	switch {
	case s.ch < 0:
		return Token{Kind: EOF, Span: Span{start, start}, Pos: pos}

	case isLetter(s.ch):
		for isLetter(s.ch) || unicode.IsDigit(s.ch) {
			s.nextch()
		}
		kind = LookupKeyword(s.src.text[start:s.offs])

	case isDigit(s.ch):
		for isDigit(s.ch) {
			s.nextch()
		}
		kind = Literal

	case s.ch == '/' && s.peekch() == '/':
		s.skipLineComment()
		goto redo

	default:
		if kind = s.operator(); kind == EOF {
			s.nextch()
			if s.errh != nil {
				s.errh(pos, s.src.text[start:s.offs])
			}
			goto redo
		}
	}

	return Token{
		Kind:   kind,
		Lexeme: s.src.text[start:s.offs],
		Span:   Span{start, s.offs},
		Pos:    pos,
	}
}

// operator scans a one- or two-character operator or delimiter. It
// returns EOF, consuming nothing, if ch cannot start one.
func (s *Scanner) operator() TokenKind {
	var kind TokenKind
	switch s.ch {
	case ';':
		kind = Semi
	case ':':
		kind = Colon
	case '{':
		kind = Lbrace
	case '}':
		kind = Rbrace
	case '(':
		kind = Lparen
	case ')':
		kind = Rparen
	case ',':
		kind = Comma
	case '+':
		kind = Add
	case '-':
		kind = Sub
	case '*':
		kind = Mul
	case '/':
		kind = Div
	case '!':
		s.nextch()
		return s.switch2(Neq, Not)
	case '=':
		s.nextch()
		return s.switch2(Eql, Assign)
	case '<':
		s.nextch()
		return s.switch2(Leq, Lss)
	case '>':
		s.nextch()
		return s.switch2(Geq, Gtr)
	default:
		return EOF
	}
	s.nextch()
	return kind
}

// switch2 returns eq and consumes '=' if it follows, otherwise returns def.
func (s *Scanner) switch2(eq, def TokenKind) TokenKind {
	if s.ch == '=' {
		s.nextch()
		return eq
	}
	return def
}

func (s *Scanner) skipWhitespace() {
	for s.ch >= 0 && unicode.IsSpace(s.ch) {
		s.nextch()
	}
}

// skipLineComment skips from "//" up to, but not including, the newline.
func (s *Scanner) skipLineComment() {
	for s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
}

// isLetter reports whether r may start an identifier.
func isLetter(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// isDigit reports whether r is a decimal digit (0-9).
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// Tokenize scans all of src and returns the resulting stream. The last
// token is always EOF.
func Tokenize(src *Source, errh ErrorHandler) *TokenStream {
	s := NewScanner(src, errh)
	var toks []Token
	for {
		tok := s.Next()
		toks = append(toks, tok)
		if tok.Kind == EOF {
			break
		}
	}
	return NewTokenStream(toks)
}
