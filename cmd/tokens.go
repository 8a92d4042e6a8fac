package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/luthersystems/lispy/parser/lexer"
)

func newTokensCmd(o *rootOptions) *cobra.Command {
	var expression bool
	tokensCmd := &cobra.Command{
		Use:   "tokens [flags] FILE",
		Short: "Print the tokens of a program",
		Long: `Print one line per token with the token kind, its inclusive byte span and
its text.  Every lexical error is reported and the command fails if there are
any.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := commandSource(cmd, args[0], expression)
			if err != nil {
				return o.render(cmd, source{name: args[0]}, err)
			}
			toks := lexer.Tokenize(src.text, o.lexerOptions(cmd)...)
			out := cmd.OutOrStdout()
			for _, tok := range toks {
				text := strings.ReplaceAll(tok.Text(src.text), "\n", `\n`)
				fmt.Fprintf(out, "%v %v %s\n", tok.Type, tok.Span, text)
			}
			if err := lexer.Errors(src.text, toks); err != nil {
				return o.render(cmd, src, err)
			}
			return nil
		},
	}
	tokensCmd.Flags().BoolVarP(&expression, "expression", "e", false,
		"Interpret the argument as lisp source")
	return tokensCmd
}

// commandSource returns the program named by arg.
func commandSource(cmd *cobra.Command, arg string, expression bool) (source, error) {
	if expression {
		return source{name: "<expr>", text: arg}, nil
	}
	return readSource(cmd, arg)
}
