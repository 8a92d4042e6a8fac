package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/luthersystems/lispy/diag"
	"github.com/luthersystems/lispy/lisp"
)

// source is a named program text.
type source struct {
	name string
	text string
}

func newRunCmd(o *rootOptions) *cobra.Command {
	var runExpression bool
	runCmd := &cobra.Command{
		Use:   "run [flags] FILE...",
		Short: "Run lisp code",
		Long: `Run lisp code provided supplied via the command line or a file.  All
programs are evaluated in order by a single environment.  A FILE of "-" is read
from stdin.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if runExpression {
				return runSources(cmd, o, expressionSources(args))
			}
			return runFiles(cmd, o, args)
		},
	}
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	return runCmd
}

func runFiles(cmd *cobra.Command, o *rootOptions, paths []string) error {
	srcs := make([]source, len(paths))
	for i, path := range paths {
		src, err := readSource(cmd, path)
		if err != nil {
			return o.render(cmd, source{name: path}, err)
		}
		srcs[i] = src
	}
	return runSources(cmd, o, srcs)
}

func runSources(cmd *cobra.Command, o *rootOptions, srcs []source) error {
	env, err := lisp.NewEnv(o.envConfig(cmd)...)
	if err != nil {
		return err
	}
	for _, src := range srcs {
		_, err := env.LoadString(src.name, src.text)
		if err != nil {
			return o.render(cmd, src, err)
		}
	}
	return nil
}

func expressionSources(args []string) []source {
	srcs := make([]source, len(args))
	for i, arg := range args {
		srcs[i] = source{name: fmt.Sprintf("<expr%d>", i+1), text: arg}
	}
	return srcs
}

// readSource reads the file at path, or stdin when path is "-".
func readSource(cmd *cobra.Command, path string) (source, error) {
	var b []byte
	var err error
	if path == "-" {
		path = "<stdin>"
		b, err = io.ReadAll(cmd.InOrStdin())
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return source{}, diag.Newf(diag.IOError, "%v", errors.Wrapf(err, "read %s", path))
	}
	return source{name: path, text: string(b)}, nil
}
