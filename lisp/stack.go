package lisp

import (
	"fmt"
	"io"

	"github.com/luthersystems/lispy/diag"
	"github.com/luthersystems/lispy/parser/token"
)

// DefaultMaxHeight is the call depth permitted when no WithMaxDepth Config
// is given.
const DefaultMaxHeight = 10000

// CallStack is a function call stack.
type CallStack struct {
	Frames []CallFrame
	// MaxHeight bounds the number of frames.  A MaxHeight of zero or less
	// means the stack is unbounded.
	MaxHeight int
}

// CallFrame is one frame in the CallStack
type CallFrame struct {
	Name   string
	Source token.Span
}

// Copy creates a copy of the current stack so that it can be attached to a
// runtime error.
func (s *CallStack) Copy() *CallStack {
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{Frames: frames, MaxHeight: s.MaxHeight}
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// Height returns the number of frames on the stack.
func (s *CallStack) Height() int {
	return len(s.Frames)
}

// Push pushes a new stack frame for a call to name.  Push returns a
// RuntimeError without modifying s when the stack is already at its maximum
// height.
func (s *CallStack) Push(name string, src token.Span) error {
	if s.MaxHeight > 0 && len(s.Frames) >= s.MaxHeight {
		return diag.Errorf(diag.RuntimeError, src, "maximum call depth exceeded (%d)", s.MaxHeight)
	}
	s.Frames = append(s.Frames, CallFrame{Name: name, Source: src})
	return nil
}

// Pop removes the top CallFrame from the stack and returns it.
func (s *CallStack) Pop() CallFrame {
	top := s.Top()
	if top == nil {
		panic("pop called on an empty stack")
	}
	f := *top
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s.Frames))
	if err != nil {
		return n, err
	}
	indent := "  "
	for i := len(s.Frames) - 1; i >= 0; i-- {
		f := s.Frames[i]
		_n, err := fmt.Fprintf(w, "%sheight %d: %s %v\n", indent, i, f.Name, f.Source)
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
