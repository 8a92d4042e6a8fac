package lisp

import (
	"io"

	"github.com/luthersystems/lispy/ast"
)

// Reader abstracts a parser implementation so that it may be implemented in a
// separate package as an optional/swappable component.
type Reader interface {
	// Read the contents of r and return the sequence of top-level
	// expressions that it contains.  The name identifies r in diagnostics.
	Read(name string, r io.Reader) ([]ast.Expr, error)
}
