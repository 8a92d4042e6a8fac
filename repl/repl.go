// Package repl implements the interactive read-eval-print loop.
package repl

import (
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/luthersystems/lispy/diag"
	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/parser"
)

// DefaultPrompt is the prompt shown before each new form.
const DefaultPrompt = "→ "

// SourceName identifies REPL input in diagnostics.
const SourceName = "<stdin>"

// LineSource supplies lines of input to the loop.  A *readline.Instance is a
// LineSource.
type LineSource interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

// Option configures RunRepl.
type Option func(*config)

type config struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	source LineSource
	trace  bool
	env    []lisp.Config
}

// WithStdin reads input from r instead of os.Stdin.
func WithStdin(r io.Reader) Option {
	return func(c *config) { c.stdin = r }
}

// WithStdout writes prompts and program output to w instead of os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(c *config) { c.stdout = w }
}

// WithStderr writes diagnostics to w instead of os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(c *config) { c.stderr = w }
}

// WithLineSource reads lines from src, ignoring WithStdin.
func WithLineSource(src LineSource) Option {
	return func(c *config) { c.source = src }
}

// WithTrace prints the call stack attached to runtime errors.
func WithTrace(trace bool) Option {
	return func(c *config) { c.trace = trace }
}

// WithEnvConfig applies cfg to the environment that evaluates input.
func WithEnvConfig(cfg ...lisp.Config) Option {
	return func(c *config) { c.env = append(c.env, cfg...) }
}

// RunRepl runs a read-eval-print loop until its input is exhausted.  Errors
// in the evaluated program are reported and the loop continues.  The
// returned error is non-nil only when input cannot be read.  Prompts are
// shown only when stdin is a terminal; redirected input is read silently.
func RunRepl(prompt string, opts ...Option) error {
	c := &config{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}

	rl := c.source
	if rl == nil {
		var err error
		rl, err = newLineSource(prompt, c)
		if err != nil {
			return err
		}
	}
	defer rl.Close()
	rl.SetPrompt(prompt)

	envConfig := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(c.stdout),
		lisp.WithStderr(c.stderr),
		lisp.WithLineReader(&inputReader{rl: rl, prompt: prompt}),
	}
	env, err := lisp.NewEnv(append(envConfig, c.env...)...)
	if err != nil {
		return err
	}

	contPrompt := strings.Repeat(" ", utf8.RuneCountInString(prompt))

	var buf []string
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			buf = nil
			rl.SetPrompt(prompt)
			continue
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "read input")
		}
		buf = append(buf, line)
		text := strings.Join(buf, "\n")
		if !parser.Complete([]byte(text)) {
			rl.SetPrompt(contPrompt)
			continue
		}
		buf = nil
		rl.SetPrompt(prompt)
		eval(env, text, c)
	}
	if len(buf) != 0 {
		// report the unclosed form
		eval(env, strings.Join(buf, "\n"), c)
	}
	return nil
}

func eval(env *lisp.LEnv, text string, c *config) {
	if strings.TrimSpace(text) == "" {
		return
	}
	_, err := env.LoadString(SourceName, text)
	if err != nil {
		r := &diag.Renderer{File: SourceName, Source: text, Trace: c.trace}
		r.Render(c.stderr, err)
	}
}

// newLineSource uses readline when stdin is a terminal.  Otherwise lines are
// read without prompting.
func newLineSource(prompt string, c *config) (LineSource, error) {
	if f, ok := c.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		rl, err := readline.NewEx(&readline.Config{
			Prompt: prompt,
			Stdin:  f,
			Stdout: c.stdout,
			Stderr: c.stderr,
		})
		if err != nil {
			return nil, errors.Wrap(err, "readline")
		}
		return rl, nil
	}
	return &plainSource{r: lisp.NewLineReader(c.stdin)}, nil
}

type plainSource struct {
	r lisp.LineReader
}

func (s *plainSource) Readline() (string, error) { return s.r.ReadLine() }
func (s *plainSource) SetPrompt(string)          {}
func (s *plainSource) Close() error              { return nil }

// inputReader serves readn and reads from the REPL's own line source so that
// program input and forms interleave on one stream.
type inputReader struct {
	rl     LineSource
	prompt string
}

func (r *inputReader) ReadLine() (string, error) {
	r.rl.SetPrompt("")
	defer r.rl.SetPrompt(r.prompt)
	line, err := r.rl.Readline()
	if err == readline.ErrInterrupt {
		return "", io.EOF
	}
	return line, err
}
