package cmd

import (
	"github.com/spf13/cobra"
)

func newReplCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive lisp session",
		Long: `Start an interactive read-eval-print loop.  Forms may span several lines.
Press Ctrl-C to discard a partial form and Ctrl-D to exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd, o)
		},
	}
}
