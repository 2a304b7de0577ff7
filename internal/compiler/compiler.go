// Package compiler runs the front-end phases over one session.
package compiler

import (
	"log/slog"
	"time"

	"github.com/you-not-fish/lang/internal/ast"
	"github.com/you-not-fish/lang/internal/parser"
	"github.com/you-not-fish/lang/internal/session"
	"github.com/you-not-fish/lang/internal/syntax"
)

// Lex scans the session's source. Every invalid character is reported to
// the session's sink; scanning continues past them.
func Lex(ctx *session.Context) *syntax.TokenStream {
	start := time.Now()
	toks := syntax.Tokenize(ctx.Source, func(pos syntax.Pos, lexeme string) {
		ctx.Diags.Report(syntax.NewDiagnostic(pos.Line(), &syntax.InvalidToken{Lexeme: lexeme}))
	})
	ctx.Logger.Debug("lex done",
		slog.String("file", ctx.Source.Name()),
		slog.Int("tokens", toks.Len()),
		slog.Int("errors", ctx.Diags.Len()),
		slog.Duration("duration", time.Since(start)),
	)
	return toks
}

// Compile lexes and parses the session's source. Phases run in order and
// each halts the pipeline if it reported anything. On success it returns
// the tree and no diagnostics; on failure it returns a nil tree and every
// diagnostic recorded, draining the sink.
func Compile(ctx *session.Context) (*ast.Root, []*syntax.Diagnostic) {
	toks := Lex(ctx)
	if ctx.Diags.HasDiagnostics() {
		return fail(ctx, "lex")
	}

	start := time.Now()
	root := parser.New(ctx, toks).Parse()
	if ctx.Diags.HasDiagnostics() {
		return fail(ctx, "parse")
	}

	ctx.Logger.Debug("parse done",
		slog.Int("stmts", len(root.Stmts)),
		slog.Int("nodes", ast.Count(root)),
		slog.Int("symbols", ctx.Symbols.Len()),
		slog.Duration("duration", time.Since(start)),
	)
	return root, nil
}

func fail(ctx *session.Context, phase string) (*ast.Root, []*syntax.Diagnostic) {
	diags := ctx.Diags.TakeDiagnostics()
	ctx.Logger.Debug("phase failed",
		slog.String("phase", phase),
		slog.Int("diagnostics", len(diags)),
	)
	return nil, diags
}

// CompileSource compiles src in a fresh session.
func CompileSource(src *syntax.Source, opts ...session.Option) (*ast.Root, []*syntax.Diagnostic) {
	return Compile(session.New(src, opts...))
}
