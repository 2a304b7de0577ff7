package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/lang/internal/ast"
	"github.com/you-not-fish/lang/internal/compiler"
)

func newBuildCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "build <file>",
		Short: "Check a source file and report diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args[0])
			if err != nil {
				return err
			}

			ctx := a.newSession(src)
			root, diags := compiler.Compile(ctx)
			if len(diags) > 0 {
				return a.fail(cmd, src, diags)
			}

			a.logger.Info("build ok",
				"file", src.Name(),
				"stmts", len(root.Stmts),
				"elapsed", ctx.Elapsed(),
			)
			return nil
		},
	}
}

// Output formats for the ast command.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func newASTCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "ast <file>",
		Short: "Print the syntax tree of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.Output.ASTFormat
			}
			format = strings.ToLower(format)

			src, err := readSource(args[0])
			if err != nil {
				return err
			}
			root, diags := compiler.Compile(a.newSession(src))
			if len(diags) > 0 {
				return a.fail(cmd, src, diags)
			}

			out := cmd.OutOrStdout()
			switch format {
			case formatJSON:
				return ast.FprintJSON(out, root)
			case formatYAML:
				return ast.FprintYAML(out, root)
			case formatText:
				ast.Fprint(out, root)
				return nil
			default:
				return fmt.Errorf("unknown ast format %q (want text, json or yaml)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text, json or yaml (default from config)")
	return cmd
}
