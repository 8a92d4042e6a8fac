package token

import (
	"fmt"
	"unicode/utf8"
)

// Token is a lexical element of source text.  A token does not copy its text,
// the text is recovered by slicing the source with Span.
type Token struct {
	Type Type
	Span Span
}

// Text returns the source text covered by tok.
func (tok Token) Text(src string) string {
	return tok.Span.Slice(src)
}

// Literal returns the text of a String token without its delimiting quotes.
// For any other token type Literal is the same as Text.
func (tok Token) Literal(src string) string {
	text := tok.Text(src)
	if tok.Type != String {
		return text
	}
	if len(text) > 0 && text[0] == '"' {
		text = text[1:]
	}
	if len(text) > 0 && text[len(text)-1] == '"' {
		text = text[:len(text)-1]
	}
	return text
}

func (tok Token) String() string {
	return fmt.Sprintf("%v%v", tok.Type, tok.Span)
}

// Type is the kind of a Token.
type Type uint

// Token types produced by the lexer.
const (
	Invalid Type = iota
	LParen
	RParen
	Plus
	Minus
	Gt
	Lt
	Eq
	Quote
	Integer
	String
	Identifier
	True
	False
	Define
	Lambda
	Print
	If
	ReadN
	ReadS
	Error

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		Invalid:    "Invalid",
		LParen:     "LParen",
		RParen:     "RParen",
		Plus:       "Plus",
		Minus:      "Minus",
		Gt:         "Gt",
		Lt:         "Lt",
		Eq:         "Eq",
		Quote:      "Quote",
		Integer:    "Integer",
		String:     "String",
		Identifier: "Identifier",
		True:       "True",
		False:      "False",
		Define:     "Define",
		Lambda:     "Lambda",
		Print:      "Print",
		If:         "If",
		ReadN:      "ReadN",
		ReadS:      "ReadS",
		Error:      "Error",
	}
	if typ >= numTokenTypes {
		return typeStrings[Invalid]
	}
	return typeStrings[typ]
}

// Keywords maps reserved words to their token types.
var Keywords = map[string]Type{
	"define": Define,
	"lambda": Lambda,
	"print":  Print,
	"if":     If,
	"true":   True,
	"false":  False,
	"readn":  ReadN,
	"reads":  ReadS,
}

// Span is a pair of inclusive byte offsets into source text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by s.
func (s Span) Len() int {
	return s.End - s.Start + 1
}

// Slice returns the text of src covered by s.  Slice clamps s to the bounds
// of src so that it never panics.
func (s Span) Slice(src string) string {
	start, end := s.Start, s.End+1
	if start < 0 {
		start = 0
	}
	if end > len(src) {
		end = len(src)
	}
	if start >= end {
		return ""
	}
	return src[start:end]
}

// Join returns the smallest span covering both s and other.
func (s Span) Join(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("[%d:%d]", s.Start, s.End)
}

// Location is a human readable source position.
type Location struct {
	File string
	Pos  int
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number in runes (starting at 1 when tracked)
}

// Position computes the Location of byte offset pos in src.
func Position(file string, src string, pos int) *Location {
	if pos > len(src) {
		pos = len(src)
	}
	loc := &Location{File: file, Pos: pos, Line: 1, Col: 1}
	for i, c := range src {
		if i >= pos {
			break
		}
		if c == '\n' {
			loc.Line++
			loc.Col = 1
			continue
		}
		loc.Col++
	}
	return loc
}

// LineAt returns the full line of src containing byte offset pos and the
// offset at which that line starts.
func LineAt(src string, pos int) (string, int) {
	if pos > len(src) {
		pos = len(src)
	}
	start := pos
	for start > 0 && src[start-1] != '\n' {
		start--
	}
	end := pos
	for end < len(src) && src[end] != '\n' {
		end++
	}
	return src[start:end], start
}

// RuneCount returns the number of runes in src between byte offsets start
// and end.
func RuneCount(src string, start, end int) int {
	if start < 0 {
		start = 0
	}
	if end > len(src) {
		end = len(src)
	}
	if start >= end {
		return 0
	}
	return utf8.RuneCountInString(src[start:end])
}

func (loc *Location) String() string {
	switch {
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}
