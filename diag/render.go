package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	multierror "github.com/hashicorp/go-multierror"

	"github.com/luthersystems/lispy/parser/token"
)

var (
	kindColor  = color.New(color.FgRed, color.Bold)
	caretColor = color.New(color.FgGreen)
)

// Renderer writes diagnostics for errors found in a named source text.
type Renderer struct {
	File   string
	Source string
	// Trace causes call stacks attached to errors to be printed.
	Trace bool
}

// Render writes a diagnostic for err to w.  Errors aggregated with
// go-multierror are rendered one after the other.
func (r *Renderer) Render(w io.Writer, err error) {
	if merr, ok := err.(*multierror.Error); ok {
		for _, err := range merr.Errors {
			r.Render(w, err)
		}
		return
	}
	e, ok := As(err)
	if !ok {
		fmt.Fprintf(w, "%s: %v\n", r.File, err)
		return
	}
	if e.Span == nil {
		fmt.Fprintf(w, "%s: %s: %s\n", r.File, kindColor.Sprint(e.Kind), e.Msg)
		r.renderStack(w, e)
		return
	}
	loc := token.Position(r.File, r.Source, e.Span.Start)
	fmt.Fprintf(w, "%v: %s: %s\n", loc, kindColor.Sprint(e.Kind), e.Msg)
	r.renderSource(w, *e.Span)
	r.renderStack(w, e)
}

func (r *Renderer) renderSource(w io.Writer, span token.Span) {
	if span.Start >= len(r.Source) {
		return
	}
	line, lineStart := token.LineAt(r.Source, span.Start)
	end := span.End + 1
	if end > lineStart+len(line) {
		end = lineStart + len(line)
	}
	pad := token.RuneCount(r.Source, lineStart, span.Start)
	width := token.RuneCount(r.Source, span.Start, end)
	if width < 1 {
		width = 1
	}
	fmt.Fprintf(w, "    %s\n", strings.ReplaceAll(line, "\t", " "))
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", pad),
		caretColor.Sprint("^"+strings.Repeat("~", width-1)))
}

func (r *Renderer) renderStack(w io.Writer, e *Error) {
	if !r.Trace || e.Stack == nil {
		return
	}
	e.Stack.DebugPrint(w)
}
