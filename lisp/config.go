package lisp

import (
	"io"

	"github.com/jcgregorio/slog"
)

// Config is a function that configures a root environment or its runtime.
type Config func(env *LEnv) error

// WithMaxDepth returns a Config that will prevent an execution environment
// from allowing the call stack height to exceed n.  A value of zero or less
// removes the limit.
func WithMaxDepth(n int) Config {
	return func(env *LEnv) error {
		env.Runtime.Stack.MaxHeight = n
		return nil
	}
}

// WithReader returns a Config that makes environments use r to parse source
// streams.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(env *LEnv) error {
		env.Runtime.Reader = r
		return nil
	}
}

// WithScope returns a Config that selects the scoping rule used when calling
// functions.
func WithScope(s Scope) Config {
	return func(env *LEnv) error {
		env.Runtime.Scope = s
		return nil
	}
}

// WithStdout returns a Config that makes print write to w instead of the
// default, os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(env *LEnv) error {
		env.Runtime.Stdout = w
		return nil
	}
}

// WithStderr returns a Config that makes environments write debugging output
// to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(env *LEnv) error {
		env.Runtime.Stderr = w
		return nil
	}
}

// WithStdin returns a Config that makes readn and reads consume lines from r
// instead of the default, os.Stdin.  When r implements LineReader it is used
// directly.
func WithStdin(r io.Reader) Config {
	return func(env *LEnv) error {
		if lr, ok := r.(LineReader); ok {
			env.Runtime.Stdin = lr
			return nil
		}
		env.Runtime.Stdin = NewLineReader(r)
		return nil
	}
}

// WithLineReader returns a Config that makes readn and reads consume lines
// from r.
func WithLineReader(r LineReader) Config {
	return func(env *LEnv) error {
		env.Runtime.Stdin = r
		return nil
	}
}

// WithLogger returns a Config that sends runtime logs to l.
func WithLogger(l slog.Logger) Config {
	return func(env *LEnv) error {
		env.Runtime.Logger = l
		return nil
	}
}
