package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/lang/internal/config"
	"github.com/you-not-fish/lang/internal/logging"
	"github.com/you-not-fish/lang/internal/report"
	"github.com/you-not-fish/lang/internal/session"
	"github.com/you-not-fish/lang/internal/syntax"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	cfgFile string
	verbose bool
	color   string
	context int

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "langc",
		Short: "Front end for the lang language",
		Long: `langc scans and parses lang source files, resolves names as it goes,
and reports the first syntax or binding error it finds.

Commands:
  build   Check a source file
  tokens  Print the token stream of a file
  ast     Print the syntax tree of a file
  repl    Read statements interactively
  version Print version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $"+config.EnvVar+" or ./langc.toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log compiler phases")
	root.PersistentFlags().StringVar(&a.color, "color", "", "color diagnostics: auto, always or never")
	root.PersistentFlags().IntVar(&a.context, "context", 1, "source lines shown before each diagnostic's line")

	root.AddCommand(
		newBuildCmd(a),
		newTokensCmd(a),
		newASTCmd(a),
		newReplCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration and builds the logger. Flags override
// the file.
func (a *app) setup(cmd *cobra.Command) error {
	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.Load(a.cfgFile)
	} else {
		a.cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	if a.color != "" {
		a.cfg.Output.Color = a.color
		if err := a.cfg.Validate(); err != nil {
			return fmt.Errorf("--color: %w", err)
		}
	}

	lc := logging.DefaultLoggerConfig()
	lc.Level = a.cfg.Log.Level
	lc.Format = a.cfg.Log.Format
	lc.Output = cmd.ErrOrStderr()
	if a.verbose {
		lc.Level = "debug"
	}
	a.logger = logging.NewLogger(lc)
	return nil
}

func (a *app) newSession(src *syntax.Source) *session.Context {
	return session.New(src,
		session.WithLogger(a.logger),
		session.WithMaxDepth(a.cfg.MaxDepth()),
	)
}

func (a *app) printer(w io.Writer) *report.Printer {
	p := report.NewPrinter(w, a.cfg.Output.Color)
	p.SetContext(a.context)
	return p
}

// fail prints diags to the command's error stream and returns the error
// that ends the command.
func (a *app) fail(cmd *cobra.Command, src *syntax.Source, diags []*syntax.Diagnostic) error {
	if _, err := a.printer(cmd.ErrOrStderr()).Print(diags, src); err != nil {
		return fmt.Errorf("write diagnostics: %w", err)
	}
	return &compileError{file: src.Name(), count: len(diags)}
}

// compileError ends a command whose diagnostics were already printed.
type compileError struct {
	file  string
	count int
}

func (e *compileError) Error() string {
	return fmt.Sprintf("%s: %s", e.file, report.Summary(e.count))
}

func readSource(filename string) (*syntax.Source, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := syntax.ReadSource(filename, f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	return src, nil
}
