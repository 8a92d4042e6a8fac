// Package parser provides the lispy parser.
//
//	program := top*
//	top     := '(' expr ')'
//	expr    := 'true' | 'false' | <integer> | <string> | <identifier>
//	         | '(' expr ')'
//	         | 'if' '(' expr ')' '(' expr ')' '(' expr ')'
//	         | 'print' '(' expr ')'
//	         | ('+' | '-') expr+
//	         | ('<' | '>' | '=') expr expr
//	         | 'define' <identifier> '(' expr ')'
//	         | 'lambda' '(' <identifier>* ')' '(' expr ')'
//	         | 'readn' | 'reads'
//	         | "'" <identifier> '(' expr* ')'
//	integer := /[0-9]+/
//	string  := '"' /[^"]*/ '"'
//	identifier := /[\pL_][\pL\p{Nd}_]*/
package parser

import (
	"bytes"
	"io"

	parsec "github.com/prataprc/goparsec"

	"github.com/luthersystems/lispy/ast"
	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/parser/lexer"
	"github.com/luthersystems/lispy/parser/rdparser"
)

// NewReader returns a lisp.Reader that parses with the recursive descent
// parser.
func NewReader(opts ...lexer.Option) lisp.Reader {
	return rdparser.NewReader(opts...)
}

// Parse reads and parses the program in r.
func Parse(name string, r io.Reader, opts ...lexer.Option) ([]ast.Expr, error) {
	return NewReader(opts...).Read(name, r)
}

// ParseString parses the program in src.
func ParseString(src string, opts ...lexer.Option) ([]ast.Expr, error) {
	return rdparser.New(src, lexer.Tokenize(src, opts...)).ParseProgram()
}

// Complete returns true if text contains no unclosed top-level form.  A REPL
// uses Complete to decide whether to read another line before parsing.  Text
// with unbalanced closing parentheses or other garbage is complete so that
// the parser can report it.
func Complete(text []byte) bool {
	s := parsec.NewScanner(text)
	p := newParsecParser()
	root, s := p(s)
	for root != nil {
		root, s = p(s)
	}
	rest := bytes.TrimLeft(text[s.GetCursor():], " \t\r\n")
	return !bytes.HasPrefix(rest, []byte("("))
}

// newParsecParser returns a parser that recognises balanced forms without
// interpreting them.
func newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	comment := parsec.Token(`;[^\n]*`, "COMMENT")
	str := parsec.Token(`"[^"]*"`, "STRING")
	term := parsec.Token(`[^\s()";]+`, "TERM")
	var expr parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	sexpr := parsec.And(nil, openP, exprList, closeP)
	expr = parsec.OrdChoice(nil, comment, str, term, sexpr)
	return expr
}
