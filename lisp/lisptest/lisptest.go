// Package lisptest runs lispy programs against in-memory streams for use in
// tests.
package lisptest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jcgregorio/logger"

	"github.com/luthersystems/lispy/diag"
	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/parser"
)

// TestSequence is a sequence of lisp programs which are evaluated
// sequentially by a lisp.LEnv.
type TestSequence []struct {
	Expr   string // one or more top-level forms
	Result string // the value of the last form, or the error
	Output string // text written to stdout
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// NewEnv returns an environment that reads stdin and writes to stdout.  Logs
// are discarded.  Any additional config is applied last.
func NewEnv(stdin string, stdout *bytes.Buffer, config ...lisp.Config) (*lisp.LEnv, error) {
	base := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdin(strings.NewReader(stdin)),
		lisp.WithStdout(stdout),
		lisp.WithStderr(&bytes.Buffer{}),
		lisp.WithLogger(logger.NewNopLogger()),
	}
	return lisp.NewEnv(append(base, config...)...)
}

// Run evaluates src with the given stdin and returns everything written to
// stdout, including output produced before an error.
func Run(src, stdin string, config ...lisp.Config) (string, error) {
	var stdout bytes.Buffer
	env, err := NewEnv(stdin, &stdout, config...)
	if err != nil {
		return "", err
	}
	_, err = env.LoadString("test", src)
	return stdout.String(), err
}

// Result formats the outcome of an evaluation the way TestSequence results
// are written.  Errors are rendered as "kind: message" without a span.
func Result(v *lisp.LVal, err error) string {
	if err == nil {
		return v.String()
	}
	if lerr, ok := diag.As(err); ok {
		return lerr.Kind.String() + ": " + lerr.Msg
	}
	return err.Error()
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.LEnvs.  The
// config is applied to every environment.
func RunTestSuite(t *testing.T, tests TestSuite, config ...lisp.Config) {
	for i, test := range tests {
		var stdout bytes.Buffer
		env, err := NewEnv("", &stdout, config...)
		if err != nil {
			t.Errorf("test %d %q: %v", i, test.Name, err)
			continue
		}
		for j, expr := range test.TestSequence {
			stdout.Reset()
			result := Result(env.LoadString("test", expr.Expr))
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
			if stdout.String() != expr.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, stdout.String())
			}
		}
	}
}
