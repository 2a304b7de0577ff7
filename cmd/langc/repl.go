package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/you-not-fish/lang/internal/ast"
	"github.com/you-not-fish/lang/internal/compiler"
	"github.com/you-not-fish/lang/internal/syntax"
)

const (
	promptMain  = "lang> "
	historyFile = ".langc_history"
)

const replHelp = `Enter statements to parse them. Bindings persist between inputs.
  :symbols  show the variables in scope
  :help     show this message
  :quit     leave the repl`

// lineReader is the part of liner.State the repl loop uses.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read statements interactively, keeping bindings between inputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ln := liner.NewLiner()
			defer ln.Close()
			ln.SetCtrlCAborts(true)

			histPath := historyPath()
			if histPath != "" {
				if f, err := os.Open(histPath); err == nil {
					_, _ = ln.ReadHistory(f)
					_ = f.Close()
				}
				defer func() {
					if f, err := os.Create(histPath); err == nil {
						_, _ = ln.WriteHistory(f)
						_ = f.Close()
					}
				}()
			}

			r := &repl{app: a, in: ln, out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
			return r.run()
		},
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}

type repl struct {
	app    *app
	in     lineReader
	out    io.Writer
	errOut io.Writer
}

// run reads inputs until EOF, an abort, or :quit. Each input is compiled
// in one long-lived session, so declarations stay visible to later inputs.
func (r *repl) run() error {
	ctx := r.app.newSession(syntax.NewSource("<repl>", ""))
	printer := r.app.printer(r.errOut)

	for n := 1; ; n++ {
		line, err := r.in.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out)
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		r.in.AppendHistory(line)

		if strings.HasPrefix(input, ":") {
			if r.command(ctx.Symbols.String(), input) {
				return nil
			}
			continue
		}

		ctx.Reset(syntax.NewSource(fmt.Sprintf("<repl:%d>", n), line))
		root, diags := compiler.Compile(ctx)
		if len(diags) > 0 {
			if _, err := printer.Print(diags, ctx.Source); err != nil {
				return fmt.Errorf("write diagnostics: %w", err)
			}
			continue
		}
		for _, s := range root.Stmts {
			ast.FprintNode(r.out, s)
		}
	}
}

// command runs a colon command and reports whether the repl should exit.
func (r *repl) command(symbols, input string) bool {
	switch strings.ToLower(input) {
	case ":quit", ":q":
		return true
	case ":help", ":h":
		fmt.Fprintln(r.out, replHelp)
	case ":symbols":
		fmt.Fprint(r.out, symbols)
	default:
		fmt.Fprintf(r.out, "unknown command %q. Type :help for a list.\n", input)
	}
	return false
}
