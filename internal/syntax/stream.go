package syntax

// TokenStream is a cursor over a finite token sequence that always ends in
// EOF. The cursor never moves past the EOF token, so Peek and Advance
// always return a token.
type TokenStream struct {
	toks []Token
	pos  int
}

// NewTokenStream returns a stream over toks. If toks does not end with an
// EOF token, one is appended after the last token.
func NewTokenStream(toks []Token) *TokenStream {
	if n := len(toks); n == 0 || toks[n-1].Kind != EOF {
		eof := Token{Kind: EOF}
		if n > 0 {
			last := toks[n-1]
			eof.Span = Span{last.Span.High, last.Span.High}
			eof.Pos = last.Pos
		}
		toks = append(toks, eof)
	}
	return &TokenStream{toks: toks}
}

// Peek returns the current token without consuming it.
func (s *TokenStream) Peek() Token {
	return s.toks[s.pos]
}

// Advance returns the current token and moves past it, unless it is EOF.
func (s *TokenStream) Advance() Token {
	tok := s.toks[s.pos]
	if !tok.Is(EOF) {
		s.pos++
	}
	return tok
}

// Expect advances and returns the consumed token. If its kind is not kind,
// the error is an UnexpectedToken diagnostic at the consumed token's line.
func (s *TokenStream) Expect(kind TokenKind) (Token, error) {
	tok := s.Advance()
	if !tok.Is(kind) {
		return tok, NewDiagnostic(tok.Line(), &UnexpectedToken{Expected: kind, Found: tok.Kind})
	}
	return tok, nil
}

// MatchKind consumes and returns the current token only if it has the
// given kind. Otherwise the cursor is left untouched.
func (s *TokenStream) MatchKind(kind TokenKind) (Token, bool) {
	if !s.Peek().Is(kind) {
		return Token{}, false
	}
	return s.Advance(), true
}

// Any reports whether tokens other than EOF remain.
func (s *TokenStream) Any() bool {
	return !s.Peek().Is(EOF)
}

// Pos returns the index of the current token.
func (s *TokenStream) Pos() int {
	return s.pos
}

// Len returns the number of tokens in the stream, including EOF.
func (s *TokenStream) Len() int {
	return len(s.toks)
}

// Tokens returns the underlying token sequence.
func (s *TokenStream) Tokens() []Token {
	return s.toks
}
