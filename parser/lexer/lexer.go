package lexer

import (
	"io"
	"unicode"

	"github.com/hashicorp/go-multierror"
	"github.com/jcgregorio/logger"
	"github.com/jcgregorio/slog"

	"github.com/luthersystems/lispy/diag"
	"github.com/luthersystems/lispy/parser/token"
)

// Lexer produces tokens from a token.Scanner.  A Lexer never fails, text it
// does not recognize is returned as token.Error.
type Lexer struct {
	scanner *token.Scanner
	ch      rune // current unicode rune
	log     slog.Logger
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithLogger returns an Option that makes the lexer report warnings to l.
func WithLogger(l slog.Logger) Option {
	return func(lex *Lexer) {
		lex.log = l
	}
}

// New returns a Lexer that reads runes from s.
func New(s *token.Scanner, opts ...Option) *Lexer {
	lex := &Lexer{
		scanner: s,
	}
	for _, opt := range opts {
		opt(lex)
	}
	if lex.log == nil {
		lex.log = logger.NewNopLogger()
	}
	return lex
}

// Tokenize returns all of the tokens in src.
func Tokenize(src string, opts ...Option) []token.Token {
	lex := New(token.NewScanner(src), opts...)
	var toks []token.Token
	for {
		tok, ok := lex.NextToken()
		if !ok {
			return toks
		}
		toks = append(toks, tok)
	}
}

// Errors returns an error describing every token.Error in toks, or nil if
// there are none.
func Errors(src string, toks []token.Token) error {
	var result *multierror.Error
	for _, tok := range toks {
		if tok.Type != token.Error {
			continue
		}
		result = multierror.Append(result,
			diag.Errorf(diag.LexError, tok.Span, "unexpected character %q", tok.Text(src)))
	}
	return result.ErrorOrNil()
}

// NextToken returns the next token in the input.  When the input is exhausted
// NextToken returns false.
func (lex *Lexer) NextToken() (token.Token, bool) {
	lex.skipWhitespace()
	err := lex.readChar()
	if err == io.EOF {
		return token.Token{}, false
	}
	if err != nil {
		// invalid utf-8; the bad byte becomes its own token
		return lex.scanner.EmitToken(token.Error), true
	}
	switch lex.ch {
	case '(':
		return lex.charToken(token.LParen)
	case ')':
		return lex.charToken(token.RParen)
	case '+':
		return lex.charToken(token.Plus)
	case '-':
		return lex.charToken(token.Minus)
	case '>':
		return lex.charToken(token.Gt)
	case '<':
		return lex.charToken(token.Lt)
	case '=':
		return lex.charToken(token.Eq)
	case '\'':
		return lex.charToken(token.Quote)
	case '"':
		return lex.readString()
	default:
		if isDigit(lex.ch) {
			return lex.readNumber()
		}
		if isWordStart(lex.ch) {
			return lex.readWord()
		}
		return lex.charToken(token.Error)
	}
}

func (lex *Lexer) charToken(typ token.Type) (token.Token, bool) {
	return lex.scanner.EmitToken(typ), true
}

func (lex *Lexer) readNumber() (token.Token, bool) {
	for isDigit(lex.peekRune()) {
		lex.readChar()
	}
	// the literal may not fit in an int64; that is found out at parse time.
	return lex.scanner.EmitToken(token.Integer), true
}

func (lex *Lexer) readWord() (token.Token, bool) {
	for isWord(lex.peekRune()) {
		lex.readChar()
	}
	typ, ok := token.Keywords[lex.scanner.Text()]
	if !ok {
		typ = token.Identifier
	}
	return lex.scanner.EmitToken(typ), true
}

// readString scans a string literal.  The opening quote has been read.  The
// emitted token spans both quotes.
func (lex *Lexer) readString() (token.Token, bool) {
	for {
		err := lex.readChar()
		if err == io.EOF {
			start := lex.scanner.Start()
			loc := token.Position("", lex.scanner.Source(), start)
			lex.log.Warningf("line %d column %d: unterminated string literal", loc.Line, loc.Col)
			return lex.scanner.EmitToken(token.String), true
		}
		if err == nil && lex.ch == '"' {
			return lex.scanner.EmitToken(token.String), true
		}
		// invalid utf-8 inside a string is kept as part of the string
	}
}

// skipWhitespace consumes whitespace and comments.
func (lex *Lexer) skipWhitespace() {
	for {
		c, ok := lex.scanner.Peek()
		if !ok {
			break
		}
		if isSpace(c) {
			lex.readChar()
			continue
		}
		if c == ';' {
			for lex.peekRune() != '\n' && !lex.scanner.EOF() {
				lex.readChar()
			}
			continue
		}
		break
	}
	lex.scanner.Ignore()
}

func (lex *Lexer) peekRune() rune {
	r, _ := lex.scanner.Peek()
	return r
}

func (lex *Lexer) readChar() error {
	err := lex.scanner.ScanRune()
	lex.ch = lex.scanner.Rune()
	return err
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isWordStart(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

func isWord(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}
