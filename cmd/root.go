package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/jcgregorio/logger"
	"github.com/jcgregorio/slog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/luthersystems/lispy/diag"
	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/parser"
	"github.com/luthersystems/lispy/parser/lexer"
	"github.com/luthersystems/lispy/repl"
)

// errFailed is returned by commands which have already written diagnostics.
var errFailed = errors.New("failed")

type rootOptions struct {
	lexical  bool
	maxDepth int
	trace    bool
	verbose  bool
}

// NewRootCmd returns the lispy command tree.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "lispy [FILE]",
		Short: "A small lisp interpreter",
		Long: `Lispy interprets programs written in a small lisp.  With a FILE argument
the program in FILE is run.  Without arguments an interactive REPL is started.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			color.NoColor = !isTerminal(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runRepl(cmd, o)
			}
			return runFiles(cmd, o, args)
		},
	}
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&o.lexical, "lexical", false,
		"Functions capture their defining environment instead of using dynamic scope")
	flags.IntVar(&o.maxDepth, "max-depth", lisp.DefaultMaxHeight,
		"Maximum function call depth (0 for no limit)")
	flags.BoolVar(&o.trace, "trace", false,
		"Print the call stack when a runtime error occurs")
	flags.BoolVarP(&o.verbose, "verbose", "v", false,
		"Log debugging information to stderr")

	rootCmd.AddCommand(
		newRunCmd(o),
		newReplCmd(o),
		newTokensCmd(o),
		newASTCmd(o),
	)
	return rootCmd
}

// Execute runs the lispy command and exits the process with a non-zero
// status on failure.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if err != errFailed {
			fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		}
		os.Exit(1)
	}
}

// evalConfig returns the lisp.Config implied by the persistent flags.
func (o *rootOptions) evalConfig(cmd *cobra.Command) []lisp.Config {
	config := []lisp.Config{
		lisp.WithLogger(o.logger(cmd)),
		lisp.WithMaxDepth(o.maxDepth),
	}
	if o.lexical {
		config = append(config, lisp.WithScope(lisp.ScopeLexical))
	}
	return config
}

// envConfig returns the complete lisp.Config for running programs with the
// command's standard streams.
func (o *rootOptions) envConfig(cmd *cobra.Command) []lisp.Config {
	config := []lisp.Config{
		lisp.WithReader(parser.NewReader(o.lexerOptions(cmd)...)),
		lisp.WithStdin(cmd.InOrStdin()),
		lisp.WithStdout(cmd.OutOrStdout()),
		lisp.WithStderr(cmd.ErrOrStderr()),
	}
	return append(config, o.evalConfig(cmd)...)
}

func (o *rootOptions) lexerOptions(cmd *cobra.Command) []lexer.Option {
	return []lexer.Option{lexer.WithLogger(o.logger(cmd))}
}

func (o *rootOptions) logger(cmd *cobra.Command) slog.Logger {
	return logger.NewFromOptions(&logger.Options{
		SyncWriter:   syncWriter{cmd.ErrOrStderr()},
		IncludeDebug: o.verbose,
	})
}

func (o *rootOptions) render(cmd *cobra.Command, src source, err error) error {
	r := &diag.Renderer{File: src.name, Source: src.text, Trace: o.trace}
	r.Render(cmd.ErrOrStderr(), err)
	return errFailed
}

func runRepl(cmd *cobra.Command, o *rootOptions) error {
	return repl.RunRepl(repl.DefaultPrompt,
		repl.WithStdin(cmd.InOrStdin()),
		repl.WithStdout(cmd.OutOrStdout()),
		repl.WithStderr(cmd.ErrOrStderr()),
		repl.WithTrace(o.trace),
		repl.WithEnvConfig(lisp.WithReader(parser.NewReader(o.lexerOptions(cmd)...))),
		repl.WithEnvConfig(o.evalConfig(cmd)...),
	)
}

type syncWriter struct {
	io.Writer
}

func (w syncWriter) Sync() error {
	if s, ok := w.Writer.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
