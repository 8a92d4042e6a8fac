// Package diag defines the interpreter's error taxonomy and renders
// diagnostics for the command line.
package diag

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/luthersystems/lispy/parser/token"
)

// Kind classifies an Error.
type Kind uint

// Possible Kind values
const (
	RuntimeError Kind = iota
	LexError
	ParseError
	RuntimeTypeError
	UnboundNameError
	ArityError
	IOError
)

var kindStrings = []string{
	RuntimeError:     "runtime error",
	LexError:         "lex error",
	ParseError:       "parse error",
	RuntimeTypeError: "type error",
	UnboundNameError: "unbound name",
	ArityError:       "arity error",
	IOError:          "io error",
}

func (k Kind) String() string {
	if int(k) >= len(kindStrings) {
		return kindStrings[RuntimeError]
	}
	return kindStrings[k]
}

// StackPrinter is implemented by call stacks which can be attached to an
// Error.
type StackPrinter interface {
	DebugPrint(w io.Writer) (int, error)
}

// Error is a failure detected by the lexer, parser or evaluator.  Span is nil
// when the failure has no source position.
type Error struct {
	Kind  Kind
	Msg   string
	Span  *token.Span
	Stack StackPrinter
}

// Errorf returns an Error of the given kind located at span.
func Errorf(kind Kind, span token.Span, format string, v ...interface{}) *Error {
	return &Error{
		Kind: kind,
		Msg:  fmt.Sprintf(format, v...),
		Span: &span,
	}
}

// Newf returns an Error of the given kind with no source position.
func Newf(kind Kind, format string, v ...interface{}) *Error {
	return &Error{
		Kind: kind,
		Msg:  fmt.Sprintf(format, v...),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Span == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%v: %s at %v", e.Kind, e.Msg, *e.Span)
}

// As returns the *Error wrapped by err, if there is one.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind returns true if err wraps an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}
