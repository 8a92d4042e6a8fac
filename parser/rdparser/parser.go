package rdparser

import (
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/luthersystems/lispy/ast"
	"github.com/luthersystems/lispy/diag"
	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/parser/internal/interntoken"
	"github.com/luthersystems/lispy/parser/lexer"
	"github.com/luthersystems/lispy/parser/token"
)

type reader struct {
	opts  []lexer.Option
	names *interntoken.Table
}

// NewReader returns a lisp.Reader to use in a lisp.Runtime.  Identifier names
// are interned across every source the reader parses.
func NewReader(opts ...lexer.Option) lisp.Reader {
	return &reader{
		opts:  opts,
		names: interntoken.NewTable(),
	}
}

// Read implements lisp.Reader.
func (r *reader) Read(name string, src io.Reader) ([]ast.Expr, error) {
	b, err := io.ReadAll(src)
	if err != nil {
		return nil, diag.Newf(diag.IOError, "%v", errors.Wrapf(err, "read %s", name))
	}
	text := string(b)
	p := New(text, lexer.Tokenize(text, r.opts...))
	p.names = r.names
	return p.ParseProgram()
}

// Parser is a recursive descent parser with one token of lookahead.
type Parser struct {
	src   string
	toks  *TokenSource
	names *interntoken.Table
}

// New initializes and returns a new Parser that reads toks, which were
// scanned from src.
func New(src string, toks []token.Token) *Parser {
	return &Parser{
		src:  src,
		toks: NewTokenSource(toks),
	}
}

// ParseProgram parses a sequence of top-level forms.  Parsing stops at the
// first error.
func (p *Parser) ParseProgram() ([]ast.Expr, error) {
	var exprs []ast.Expr
	for !p.toks.IsEOF() {
		expr, err := p.ParseTopLevel()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// ParseTopLevel parses one parenthesised top-level form.
func (p *Parser) ParseTopLevel() (ast.Expr, error) {
	return p.parseGroup()
}

// ParseExpression parses the expression at the current position.
func (p *Parser) ParseExpression() (ast.Expr, error) {
	if p.toks.IsEOF() {
		return nil, p.eofError("an expression")
	}
	tok := *p.toks.Peek
	switch tok.Type {
	case token.True, token.False:
		p.toks.Scan()
		return &ast.Boolean{Value: tok.Type == token.True, Source: tok.Span}, nil
	case token.Integer:
		return p.ParseLiteralInt()
	case token.String:
		p.toks.Scan()
		return &ast.String{Value: tok.Literal(p.src), Source: tok.Span}, nil
	case token.Identifier:
		p.toks.Scan()
		return &ast.Identifier{Name: p.name(tok), Source: tok.Span}, nil
	case token.LParen:
		return p.parseGroup()
	case token.If:
		return p.ParseIf()
	case token.Print:
		return p.ParsePrint()
	case token.Plus, token.Minus:
		return p.ParseArithmetic()
	case token.Lt, token.Gt, token.Eq:
		return p.ParseBinary()
	case token.Define:
		return p.ParseDefine()
	case token.Lambda:
		return p.ParseLambda()
	case token.ReadN, token.ReadS:
		p.toks.Scan()
		kind := ast.InputNumber
		if tok.Type == token.ReadS {
			kind = ast.InputString
		}
		return &ast.Input{Kind: kind, Source: tok.Span}, nil
	case token.Quote:
		return p.ParseFunCall()
	case token.Error:
		return nil, p.lexError(tok)
	default:
		return nil, diag.Errorf(diag.ParseError, tok.Span, "unexpected %v", tok.Type)
	}
}

// ParseLiteralInt parses a decimal integer literal that must fit in 64 bits.
func (p *Parser) ParseLiteralInt() (ast.Expr, error) {
	tok, err := p.consume(token.Integer)
	if err != nil {
		return nil, err
	}
	text := tok.Text(p.src)
	x, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, diag.Errorf(diag.ParseError, tok.Span, "integer literal out of range: %s", text)
	}
	return &ast.Number{Value: x, Source: tok.Span}, nil
}

// ParseIf parses
//
//	'if' '(' expr ')' '(' expr ')' '(' expr ')'
func (p *Parser) ParseIf() (ast.Expr, error) {
	kw, err := p.consume(token.If)
	if err != nil {
		return nil, err
	}
	var branches [3]ast.Expr
	for i := range branches {
		branches[i], err = p.parseGroup()
		if err != nil {
			return nil, err
		}
	}
	if !p.atGroupEnd() {
		return nil, p.arityError(kw, "if expects 3 parenthesised branches")
	}
	return &ast.If{
		Cond:   branches[0],
		Then:   branches[1],
		Else:   branches[2],
		Source: p.spanFrom(kw),
	}, nil
}

// ParsePrint parses
//
//	'print' '(' expr ')'
func (p *Parser) ParsePrint() (ast.Expr, error) {
	kw, err := p.consume(token.Print)
	if err != nil {
		return nil, err
	}
	value, err := p.parseGroup()
	if err != nil {
		return nil, err
	}
	return &ast.Print{Value: value, Source: p.spanFrom(kw)}, nil
}

// ParseArithmetic parses an operator followed by one or more operands.
func (p *Parser) ParseArithmetic() (ast.Expr, error) {
	if p.toks.IsEOF() {
		return nil, p.eofError("an operator")
	}
	op := *p.toks.Peek
	p.toks.Scan()
	operands, err := p.parseList()
	if err != nil {
		return nil, err
	}
	if len(operands) == 0 {
		return nil, diag.Errorf(diag.ParseError, op.Span, "%s expects at least one operand", op.Text(p.src))
	}
	e := &ast.Arithmetic{Op: ast.Plus, Operands: operands, Source: p.spanFrom(op)}
	if op.Type == token.Minus {
		e.Op = ast.Minus
	}
	return e, nil
}

// ParseBinary parses a comparison operator followed by exactly two operands.
func (p *Parser) ParseBinary() (ast.Expr, error) {
	if p.toks.IsEOF() {
		return nil, p.eofError("an operator")
	}
	op := *p.toks.Peek
	p.toks.Scan()
	operands, err := p.parseList()
	if err != nil {
		return nil, err
	}
	if len(operands) != 2 {
		return nil, diag.Errorf(diag.ParseError, p.spanFrom(op),
			"expected 2 operands for %s, received %d", op.Text(p.src), len(operands))
	}
	e := &ast.Binary{Left: operands[0], Right: operands[1], Source: p.spanFrom(op)}
	switch op.Type {
	case token.Lt:
		e.Op = ast.Lt
	case token.Gt:
		e.Op = ast.Gt
	default:
		e.Op = ast.Eq
	}
	return e, nil
}

// ParseDefine parses
//
//	'define' Identifier '(' expr ')'
func (p *Parser) ParseDefine() (ast.Expr, error) {
	kw, err := p.consume(token.Define)
	if err != nil {
		return nil, err
	}
	name, err := p.consume(token.Identifier)
	if err != nil {
		return nil, err
	}
	value, err := p.parseGroup()
	if err != nil {
		return nil, err
	}
	return &ast.Define{Name: p.name(name), Value: value, Source: p.spanFrom(kw)}, nil
}

// ParseLambda parses
//
//	'lambda' '(' Identifier* ')' '(' expr ')'
func (p *Parser) ParseLambda() (ast.Expr, error) {
	kw, err := p.consume(token.Lambda)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LParen); err != nil {
		return nil, err
	}
	params := []string{}
	seen := make(map[string]bool)
	for !p.toks.AcceptType(token.RParen) {
		tok, err := p.consume(token.Identifier)
		if err != nil {
			return nil, err
		}
		name := p.name(tok)
		if seen[name] {
			return nil, diag.Errorf(diag.ParseError, tok.Span, "duplicate parameter %s", name)
		}
		seen[name] = true
		params = append(params, name)
	}
	body, err := p.parseGroup()
	if err != nil {
		return nil, err
	}
	return &ast.Lambda{Params: params, Body: body, Source: p.spanFrom(kw)}, nil
}

// ParseFunCall parses
//
//	"'" Identifier '(' expr* ')'
func (p *Parser) ParseFunCall() (ast.Expr, error) {
	quote, err := p.consume(token.Quote)
	if err != nil {
		return nil, err
	}
	name, err := p.consume(token.Identifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LParen); err != nil {
		return nil, err
	}
	args, err := p.parseList()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RParen); err != nil {
		return nil, err
	}
	return &ast.FunCall{Name: p.name(name), Args: args, Source: p.spanFrom(quote)}, nil
}

// parseGroup parses '(' expr ')'.
func (p *Parser) parseGroup() (ast.Expr, error) {
	if _, err := p.consume(token.LParen); err != nil {
		return nil, err
	}
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RParen); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseList parses expressions up to, but not including, the next RParen.
func (p *Parser) parseList() ([]ast.Expr, error) {
	var exprs []ast.Expr
	for {
		if p.toks.IsEOF() {
			return nil, p.eofError(token.RParen.String())
		}
		if p.toks.Peek.Type == token.RParen {
			return exprs, nil
		}
		x, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, x)
	}
}

func (p *Parser) name(tok token.Token) string {
	return p.names.Get(tok.Text(p.src))
}

func (p *Parser) atGroupEnd() bool {
	return p.toks.IsEOF() || p.toks.Peek.Type == token.RParen
}

// consume scans the next token, which must have type expected.
func (p *Parser) consume(expected token.Type) (token.Token, error) {
	if p.toks.IsEOF() {
		return token.Token{}, p.eofError(expected.String())
	}
	tok := *p.toks.Peek
	if tok.Type == token.Error {
		return token.Token{}, p.lexError(tok)
	}
	if tok.Type != expected {
		return token.Token{}, diag.Errorf(diag.ParseError, tok.Span,
			"expected %v, received %v", expected, tok.Type)
	}
	p.toks.Scan()
	return tok, nil
}

func (p *Parser) arityError(kw token.Token, msg string) error {
	span := kw.Span
	if p.toks.Peek != nil {
		span = span.Join(p.toks.Peek.Span)
	}
	return diag.Errorf(diag.ParseError, span, "%s", msg)
}

func (p *Parser) lexError(tok token.Token) error {
	return diag.Errorf(diag.LexError, tok.Span, "unexpected character %q", tok.Text(p.src))
}

func (p *Parser) eofError(expected string) error {
	if p.toks.Token == nil {
		return diag.Newf(diag.ParseError, "unexpected end of input, expected %s", expected)
	}
	return diag.Errorf(diag.ParseError, p.toks.Token.Span,
		"unexpected end of input, expected %s", expected)
}

// spanFrom returns the span from the start of first through the most
// recently scanned token.
func (p *Parser) spanFrom(first token.Token) token.Span {
	if p.toks.Token == nil {
		return first.Span
	}
	return first.Span.Join(p.toks.Token.Span)
}
