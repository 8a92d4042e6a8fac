package token

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// Scanner facilitates construction of tokens from source text.  The scanner
// decodes utf-8 runes but tracks positions as byte offsets.
type Scanner struct {
	src   string
	start int // start of the current token
	pos   int // index of c, a utf-8 rune in src
	next  int // index of the rune following pos
	c     Rune
}

// NewScanner initializes and returns a new Scanner.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src}
}

// Source returns the text being scanned.
func (s *Scanner) Source() string {
	return s.src
}

// EmitToken returns a token spanning the text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) Token {
	tok := Token{
		Type: typ,
		Span: Span{Start: s.start, End: s.next - 1},
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.start = s.next
}

// Text returns a string containing text scanned since the last call to either
// EmitToken or Ignore.
func (s *Scanner) Text() string {
	return s.src[s.start:s.next]
}

// Rune returns the current unicode rune that is being scanned.  The rune
// returned by Rune is the last rune in a token returned by EmitToken.
func (s *Scanner) Rune() rune {
	return s.c.C
}

// Start returns the byte offset at which the current token begins.
func (s *Scanner) Start() int {
	return s.start
}

// EOF returns true when all input has been scanned.
func (s *Scanner) EOF() bool {
	return s.next >= len(s.src)
}

// Peek returns the next rune to be scanned, if there are any.  If an invalid
// utf-8 sequence or EOF prevents futher runes from being scanned Peek returns
// a false second value.  If Peek returns a false value the next call to
// s.ScanRune will return an error that reflects of the cause.
func (s *Scanner) Peek() (rune, bool) {
	if s.EOF() {
		return 0, false
	}
	c, n := utf8.DecodeRuneInString(s.src[s.next:])
	if (Rune{c, n}).IsRuneError() {
		return utf8.RuneError, false
	}
	return c, true
}

// ScanRune attempts to scan a utf-8 rune from the input for inclusion in the
// current token.  At the end of input ScanRune returns io.EOF.  An invalid
// utf-8 byte is still consumed, as a single byte, and an *InvalidUTF8Error is
// returned so that the caller may emit a token for it.
func (s *Scanner) ScanRune() error {
	if s.EOF() {
		return io.EOF
	}
	c, n := utf8.DecodeRuneInString(s.src[s.next:])
	s.c = Rune{c, n}
	s.pos = s.next
	s.next += n
	if s.c.IsRuneError() {
		return &InvalidUTF8Error{Pos: s.pos, Byte: s.src[s.pos]}
	}
	return nil
}

// Rune contains a rune that read by Scanner during peeking operations.
type Rune struct {
	C rune
	N int
}

// IsRuneError returns true if Rune represents an invalid utf-8 sequence read
// by utf8.DecodeRune.
func (r Rune) IsRuneError() bool {
	return r.C == utf8.RuneError && r.N == 1
}

// InvalidUTF8Error is returned by Scanner.ScanRune for bytes that do not
// begin a valid utf-8 sequence.
type InvalidUTF8Error struct {
	Pos  int
	Byte byte
}

func (err *InvalidUTF8Error) Error() string {
	return fmt.Sprintf("invalid utf-8 sequence in source text starting with byte %q at %d", err.Byte, err.Pos)
}
