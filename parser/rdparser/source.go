package rdparser

import (
	"github.com/luthersystems/lispy/parser/token"
)

// TokenSource provides one token of lookahead over a token sequence.
type TokenSource struct {
	toks  []token.Token
	next  int
	Token *token.Token // the most recently scanned token
	Peek  *token.Token // nil at the end of input
}

// NewTokenSource initializes and returns a new TokenSource over toks.
func NewTokenSource(toks []token.Token) *TokenSource {
	s := &TokenSource{
		toks: toks,
	}
	s.scan()
	return s
}

// AcceptType scans the next token if it has one of the given types.
func (s *TokenSource) AcceptType(typ ...token.Type) bool {
	if s.Peek == nil {
		return false
	}
	for _, typ := range typ {
		if s.Peek.Type == typ {
			s.scan()
			return true
		}
	}
	return false
}

// Scan advances the source by one token.  At the end of input Scan returns
// false.
func (s *TokenSource) Scan() bool {
	if s.IsEOF() {
		return false
	}
	s.scan()
	return true
}

// IsEOF returns true if there are no more tokens.
func (s *TokenSource) IsEOF() bool {
	return s.Peek == nil
}

func (s *TokenSource) scan() {
	s.Token = s.Peek
	if s.next >= len(s.toks) {
		s.Peek = nil
		return
	}
	s.Peek = &s.toks[s.next]
	s.next++
}
