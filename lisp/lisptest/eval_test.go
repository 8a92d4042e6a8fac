package lisptest

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luthersystems/lispy/diag"
	"github.com/luthersystems/lispy/lisp"
)

func TestEval_simple(t *testing.T) {
	tests := TestSuite{
		{"scenarios", TestSequence{
			{"(print (+ 1 2))", "_void", "→ 3\n"},
			{"(print (- 10 3 2))", "_void", "→ 5\n"},
			{"(print (if (< 3 4) (23) (0)))", "_void", "→ 23\n"},
			{"(define x (7)) (print (+ x 1))", "_void", "→ 8\n"},
			{"(define f (lambda (a b) (+ a b))) (print ('f (4 6)))", "_void", "→ 10\n"},
			{`(print ("hello"))`, "_void", "→ hello\n"},
		}},
		{"literals", TestSequence{
			{"(42)", "42", ""},
			{"(((42)))", "42", ""},
			{`("a b")`, "a b", ""},
			{`("")`, "", ""},
			{"(true)", "true", ""},
			{"(false)", "false", ""},
			{"(lambda (a) (a))", "lambda-function", ""},
			{"", "_void", ""},
		}},
		{"arithmetic", TestSequence{
			{"(+ 1 2 3)", "6", ""},
			{"(+ 5)", "5", ""},
			{"(- 5)", "-5", ""},
			{"(- 10 3 2)", "5", ""},
			{"(- 1 2)", "-1", ""},
			{"(+ 1 (- 4 (+ 1 1)))", "3", ""},
			{"(+ 9223372036854775807 1)", "-9223372036854775808", ""},
			{"(- (- 9223372036854775807) 2)", "9223372036854775807", ""},
			{`(+ 1 ("a"))`, "type error: + argument 2 is not a number: string", ""},
			{"(- (true))", "type error: - argument 1 is not a number: boolean", ""},
		}},
		{"comparison", TestSequence{
			{"(< 3 4)", "true", ""},
			{"(< 4 4)", "false", ""},
			{"(> 3 4)", "false", ""},
			{"(> (- 3) (- 4))", "true", ""},
			{"(= 4 4)", "true", ""},
			{"(= 4 (+ 2 2))", "true", ""},
			{`(= "a" "a")`, "type error: = argument 1 is not a number: string", ""},
			{"(< 1 (false))", "type error: < argument 2 is not a number: boolean", ""},
		}},
		{"if", TestSequence{
			{"(if (true) (1) (2))", "1", ""},
			{"(if (false) (1) (2))", "2", ""},
			{"(if (true) (1) (nothing))", "1", ""},
			{"(if (false) (print (1)) (2))", "2", ""},
			{"(if (true) (print (1)) (print (2)))", "_void", "→ 1\n"},
			{"(if (1) (2) (3))", "type error: if condition is not a boolean: number", ""},
			{`(if ("true") (2) (3))`, "type error: if condition is not a boolean: string", ""},
		}},
		{"define", TestSequence{
			{"(define x (42))", "_void", ""},
			{"(x)", "42", ""},
			{"(define x (+ x 1))", "_void", ""},
			{"(x)", "43", ""},
			{"(define y (x)) (define x (0)) (y)", "43", ""},
			{"(z)", "unbound name: undefined variable: z", ""},
		}},
		{"print", TestSequence{
			{"(print (true))", "_void", "→ true\n"},
			{"(print (- 3))", "_void", "→ -3\n"},
			{`(print (""))`, "_void", "→ \n"},
			{"(print (lambda () (1)))", "_void", "→ lambda-function\n"},
			{"(print ((define v (1))))", "_void", "→ _void\n"},
			{"(print (print (1)))", "_void", "→ 1\n→ _void\n"},
		}},
		{"functions", TestSequence{
			{"(define f (lambda (a b) (+ a b)))", "_void", ""},
			{"('f (4 6))", "10", ""},
			{"('f (('f (1 2)) 3))", "6", ""},
			{"('f (1))", "arity error: f expects 2 arguments, received 1", ""},
			{"('f (1 2 3))", "arity error: f expects 2 arguments, received 3", ""},
			{"('g ())", "unbound name: undefined function: g", ""},
			{"(define n (1)) ('n ())", "type error: n is not a function: number", ""},
			{"(define k (lambda () (7))) ('k ())", "7", ""},
			{"('f ((print (1)) (print (2))))", "type error: + argument 1 is not a number: void", "→ 1\n→ 2\n"},
		}},
		{"errors stop evaluation", TestSequence{
			{"(print (1)) (y) (print (2))", "unbound name: undefined variable: y", "→ 1\n"},
			{"(print (1)) (print (", "parse error: unexpected end of input, expected an expression", ""},
			{"(print (1)) (print ($))", `lex error: unexpected character "$"`, ""},
		}},
	}
	RunTestSuite(t, tests)
}

var scopeSource = map[string]string{
	"dynamic lookup": `
		(define y (1))
		(define g (lambda () (y)))
		(define h (lambda (y) ('g ())))
		('h (5))`,
	"body defines discarded": `
		(define k (lambda () (define inner (3))))
		('k ())
		(inner)`,
	"params restored": `
		(define x (10))
		(define f (lambda (x) (x)))
		('f (3))
		(x)`,
	"mutual recursion": `
		(define even (lambda (n) (if (= n 0) (true) ('odd ((- n 1))))))
		(define odd (lambda (n) (if (= n 0) (false) ('even ((- n 1))))))
		('even (10))`,
	"closure": `
		(define adder (lambda (n) (lambda (m) (+ n m))))
		(define add5 ('adder (5)))
		('add5 (1))`,
	"recursion": `
		(define sum (lambda (n) (if (= n 0) (0) (+ n ('sum ((- n 1)))))))
		('sum (100))`,
}

func TestScope(t *testing.T) {
	tests := []struct {
		name    string
		dynamic string
		lexical string
	}{
		{"dynamic lookup", "5", "1"},
		{"body defines discarded", "unbound name: undefined variable: inner", "unbound name: undefined variable: inner"},
		{"params restored", "10", "10"},
		{"mutual recursion", "true", "true"},
		{"closure", "unbound name: undefined variable: n", "6"},
		{"recursion", "5050", "5050"},
	}
	for _, test := range tests {
		src := scopeSource[test.name]
		var stdout bytes.Buffer
		env, err := NewEnv("", &stdout)
		require.NoError(t, err)
		assert.Equal(t, test.dynamic, Result(env.LoadString("dynamic", src)), test.name)

		env, err = NewEnv("", &stdout, lisp.WithScope(lisp.ScopeLexical))
		require.NoError(t, err)
		assert.Equal(t, test.lexical, Result(env.LoadString("lexical", src)), test.name)
	}
}

func TestInput(t *testing.T) {
	tests := []struct {
		src    string
		stdin  string
		output string
		err    string
	}{
		{"(print (+ readn 1))", "42\n", "→ 43\n", ""},
		{"(print (+ readn 1))", " 7 \r\n", "→ 8\n", ""},
		{"(print (- readn readn))", "1\n2\n", "→ -1\n", ""},
		{"(print (reads))", "hello world\r\n", "→ hello world\n", ""},
		{"(print (reads))", "no newline", "→ no newline\n", ""},
		{"(print (reads)) (print (reads))", "a\n\n", "→ a\n→ \n", ""},
		{"(define name (reads)) (print (name))", "lisp\n", "→ lisp\n", ""},
		{"(print (readn))", "abc\n", "", `io error: Invalid number: "abc"`},
		{"(print (readn))", "99999999999999999999\n", "", `io error: Invalid number: "99999999999999999999"`},
		{"(print (reads))", "", "", "io error: reads: unexpected end of input"},
		{"(print (reads)) (print (readn))", "x\n", "→ x\n", "io error: readn: unexpected end of input"},
		{"(if (false) (readn) (1))", "", "", ""},
	}
	for _, test := range tests {
		out, err := Run(test.src, test.stdin)
		assert.Equal(t, test.output, out, "%q", test.src)
		if test.err == "" {
			assert.NoError(t, err, "%q", test.src)
			continue
		}
		assert.Equal(t, test.err, Result(nil, err), "%q", test.src)
	}
}

func TestAdditionCommutes(t *testing.T) {
	values := []int64{0, 1, -1, 42, -9000, 9223372036854775807}
	for _, a := range values {
		for _, b := range values {
			ab, err := Run(fmt.Sprintf("(print (+ (%d) (%d)))", a, b), "")
			require.NoError(t, err)
			ba, err := Run(fmt.Sprintf("(print (+ (%d) (%d)))", b, a), "")
			require.NoError(t, err)
			assert.Equal(t, ab, ba)
		}
		out, err := Run(fmt.Sprintf("(print (+ (%d)))", a), "")
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("→ %d\n", a), out)
	}
}

func TestDefineThenLookup(t *testing.T) {
	out, err := Run("(define x (42)) (print (x))", "")
	require.NoError(t, err)
	assert.Equal(t, "→ 42\n", out)
}

func TestIfIsLazy(t *testing.T) {
	// The untaken branch would fail at runtime if evaluated.
	out, err := Run(`(print (if (< 1 2) ("yes") ('missing ()))) (print (if (> 1 2) (undefined) ("no")))`, "")
	require.NoError(t, err)
	assert.Equal(t, "→ yes\n→ no\n", out)
}

func TestMaxDepth(t *testing.T) {
	src := "(define loop (lambda (n) ('loop ((+ n 1))))) ('loop (0))"
	_, err := Run(src, "", lisp.WithMaxDepth(50))
	require.Error(t, err)
	assert.Equal(t, "runtime error: maximum call depth exceeded (50)", Result(nil, err))

	lerr, ok := diag.As(err)
	require.True(t, ok)
	require.NotNil(t, lerr.Stack)
	var buf bytes.Buffer
	_, err = lerr.Stack.DebugPrint(&buf)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "Stack Trace [50 frames -- entrypoint last]:\n"), buf.String())
	assert.Contains(t, buf.String(), "height 0: loop")
}

func TestDefaultMaxDepth(t *testing.T) {
	src := "(define count (lambda (n) (if (= n 0) (0) (+ 1 ('count ((- n 1))))))) (print ('count (5000)))"
	out, err := Run(src, "")
	require.NoError(t, err)
	assert.Equal(t, "→ 5000\n", out)

	src = "(define loop (lambda () ('loop ()))) ('loop ())"
	_, err = Run(src, "")
	assert.True(t, diag.IsKind(err, diag.RuntimeError), "%v", err)
}

func TestErrorStack(t *testing.T) {
	src := `
(define inner (lambda (x) (+ x (true))))
(define outer (lambda () ('inner (1))))
('outer ())`
	_, err := Run(src, "")
	lerr, ok := diag.As(err)
	require.True(t, ok)
	assert.Equal(t, diag.RuntimeTypeError, lerr.Kind)
	require.NotNil(t, lerr.Stack)
	var buf bytes.Buffer
	lerr.Stack.DebugPrint(&buf)
	assert.Contains(t, buf.String(), "Stack Trace [2 frames -- entrypoint last]:")
	assert.Contains(t, buf.String(), "height 1: inner")
	assert.Contains(t, buf.String(), "height 0: outer")

	_, err = Run("(+ 1 (true))", "")
	lerr, ok = diag.As(err)
	require.True(t, ok)
	assert.Nil(t, lerr.Stack)
}
