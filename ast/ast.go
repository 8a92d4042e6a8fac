// Package ast defines the expression tree produced by the parser and walked
// by the evaluator.
package ast

import (
	"strconv"
	"strings"

	"github.com/luthersystems/lispy/parser/token"
)

// Expr is an expression node.  The concrete node types are the pointer types
// declared in this package.
type Expr interface {
	// Pos returns the span of source text the expression was parsed from.
	Pos() token.Span
	// String returns the expression in source syntax, as it would appear
	// between the parentheses of a top-level form.
	String() string
	exprNode()
}

// ArithOp is the operator of an Arithmetic expression.
type ArithOp uint

// Arithmetic operators
const (
	Plus ArithOp = iota
	Minus
)

func (op ArithOp) String() string {
	if op == Minus {
		return "-"
	}
	return "+"
}

// CompareOp is the operator of a Binary expression.
type CompareOp uint

// Comparison operators
const (
	Eq CompareOp = iota
	Lt
	Gt
)

func (op CompareOp) String() string {
	switch op {
	case Lt:
		return "<"
	case Gt:
		return ">"
	default:
		return "="
	}
}

// InputKind selects the value produced by an Input expression.
type InputKind uint

// Input kinds
const (
	InputNumber InputKind = iota
	InputString
)

func (k InputKind) String() string {
	if k == InputString {
		return "reads"
	}
	return "readn"
}

type (
	// Number is an integer literal.
	Number struct {
		Value  int64
		Source token.Span
	}

	// String is a string literal.
	String struct {
		Value  string
		Source token.Span
	}

	// Boolean is true or false.
	Boolean struct {
		Value  bool
		Source token.Span
	}

	// Identifier is a variable reference.
	Identifier struct {
		Name   string
		Source token.Span
	}

	// Arithmetic is an n-ary sum or difference.  Operands is never empty.
	Arithmetic struct {
		Op       ArithOp
		Operands []Expr
		Source   token.Span
	}

	// Binary is an integer comparison.
	Binary struct {
		Op          CompareOp
		Left, Right Expr
		Source      token.Span
	}

	// If is a three-branch conditional.
	If struct {
		Cond, Then, Else Expr
		Source           token.Span
	}

	// Define binds Name to the value of Value.
	Define struct {
		Name   string
		Value  Expr
		Source token.Span
	}

	// Lambda is an anonymous function.  Params contains no duplicates.
	Lambda struct {
		Params []string
		Body   Expr
		Source token.Span
	}

	// FunCall applies the function bound to Name to Args.
	FunCall struct {
		Name   string
		Args   []Expr
		Source token.Span
	}

	// Print writes the value of Value to standard output.
	Print struct {
		Value  Expr
		Source token.Span
	}

	// Input reads a line from standard input.
	Input struct {
		Kind   InputKind
		Source token.Span
	}
)

func (e *Number) Pos() token.Span     { return e.Source }
func (e *String) Pos() token.Span     { return e.Source }
func (e *Boolean) Pos() token.Span    { return e.Source }
func (e *Identifier) Pos() token.Span { return e.Source }
func (e *Arithmetic) Pos() token.Span { return e.Source }
func (e *Binary) Pos() token.Span     { return e.Source }
func (e *If) Pos() token.Span         { return e.Source }
func (e *Define) Pos() token.Span     { return e.Source }
func (e *Lambda) Pos() token.Span     { return e.Source }
func (e *FunCall) Pos() token.Span    { return e.Source }
func (e *Print) Pos() token.Span      { return e.Source }
func (e *Input) Pos() token.Span      { return e.Source }

func (*Number) exprNode()     {}
func (*String) exprNode()     {}
func (*Boolean) exprNode()    {}
func (*Identifier) exprNode() {}
func (*Arithmetic) exprNode() {}
func (*Binary) exprNode()     {}
func (*If) exprNode()         {}
func (*Define) exprNode()     {}
func (*Lambda) exprNode()     {}
func (*FunCall) exprNode()    {}
func (*Print) exprNode()      {}
func (*Input) exprNode()      {}

func (e *Number) String() string { return strconv.FormatInt(e.Value, 10) }

// String returns the literal with its quotes.  Literals cannot contain
// escapes so no quoting is necessary.
func (e *String) String() string { return `"` + e.Value + `"` }

func (e *Boolean) String() string { return strconv.FormatBool(e.Value) }

func (e *Identifier) String() string { return e.Name }

func (e *Arithmetic) String() string {
	return e.Op.String() + " " + operands(e.Operands)
}

func (e *Binary) String() string {
	return e.Op.String() + " " + operand(e.Left) + " " + operand(e.Right)
}

func (e *If) String() string {
	return "if " + group(e.Cond) + " " + group(e.Then) + " " + group(e.Else)
}

func (e *Define) String() string {
	return "define " + e.Name + " " + group(e.Value)
}

func (e *Lambda) String() string {
	return "lambda (" + strings.Join(e.Params, " ") + ") " + group(e.Body)
}

func (e *FunCall) String() string {
	return "'" + e.Name + " (" + operands(e.Args) + ")"
}

func (e *Print) String() string {
	return "print " + group(e.Value)
}

func (e *Input) String() string { return e.Kind.String() }

// Program returns exprs as top-level forms, one per line.
func Program(exprs []Expr) string {
	var b strings.Builder
	for _, e := range exprs {
		b.WriteString(group(e))
		b.WriteString("\n")
	}
	return b.String()
}

func group(e Expr) string {
	return "(" + e.String() + ")"
}

// operand renders e in a position where atoms may appear bare.
func operand(e Expr) string {
	switch e.(type) {
	case *Number, *String, *Boolean, *Identifier, *Input:
		return e.String()
	default:
		return group(e)
	}
}

func operands(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = operand(e)
	}
	return strings.Join(parts, " ")
}
