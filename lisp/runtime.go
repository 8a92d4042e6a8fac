package lisp

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/jcgregorio/logger"
	"github.com/jcgregorio/slog"
)

// Runtime is an object underlying a family of environments that share the
// same streams, reader and call stack.
type Runtime struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  LineReader
	Logger slog.Logger
	Reader Reader
	Stack  *CallStack
	Scope  Scope
}

// StandardRuntime returns a new Runtime that uses the process standard
// streams and logs warnings to os.Stderr.
func StandardRuntime() *Runtime {
	return &Runtime{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdin:  NewLineReader(os.Stdin),
		Logger: logger.NewFromOptions(&logger.Options{
			SyncWriter: os.Stderr,
		}),
		Stack: &CallStack{MaxHeight: DefaultMaxHeight},
	}
}

// LineReader is a source of input lines for readn and reads.
type LineReader interface {
	// ReadLine returns the next line without its line terminator.  At the
	// end of input ReadLine returns io.EOF, unless a final unterminated
	// line was read.
	ReadLine() (string, error)
}

type lineReader struct {
	r *bufio.Reader
}

// NewLineReader returns a LineReader that reads lines from r.  Both "\n" and
// "\r\n" terminators are removed.
func NewLineReader(r io.Reader) LineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

func (lr *lineReader) ReadLine() (string, error) {
	line, err := lr.r.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}
