package cmd

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/luthersystems/lispy/ast"
	"github.com/luthersystems/lispy/parser"
)

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

func newASTCmd(o *rootOptions) *cobra.Command {
	var (
		expression bool
		dump       bool
	)
	astCmd := &cobra.Command{
		Use:   "ast [flags] FILE",
		Short: "Print the syntax tree of a program",
		Long: `Parse a program and print it back in canonical form, one top-level form
per line.  With --spew the Go data structures are dumped instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := commandSource(cmd, args[0], expression)
			if err != nil {
				return o.render(cmd, source{name: args[0]}, err)
			}
			exprs, err := parser.ParseString(src.text, o.lexerOptions(cmd)...)
			if err != nil {
				return o.render(cmd, src, err)
			}
			if dump {
				spewConfig.Fdump(cmd.OutOrStdout(), exprs)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), ast.Program(exprs))
			return nil
		},
	}
	astCmd.Flags().BoolVarP(&expression, "expression", "e", false,
		"Interpret the argument as lisp source")
	astCmd.Flags().BoolVar(&dump, "spew", false,
		"Dump the parsed Go structures")
	return astCmd
}
