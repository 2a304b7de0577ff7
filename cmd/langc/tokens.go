package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/lang/internal/compiler"
)

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args[0])
			if err != nil {
				return err
			}

			ctx := a.newSession(src)
			toks := compiler.Lex(ctx)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-20s %-12s %s\n", "POSITION", "TOKEN", "LEXEME")
			fmt.Fprintf(out, "%-20s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 20))
			for _, tok := range toks.Tokens() {
				fmt.Fprintf(out, "%-20s %-12s %q\n", tok.Pos, tok.Kind, tok.Lexeme)
			}

			if ctx.Diags.HasDiagnostics() {
				return a.fail(cmd, src, ctx.Diags.TakeDiagnostics())
			}
			return nil
		},
	}
}
