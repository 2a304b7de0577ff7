// Package session holds the state shared by the phases of one compilation.
package session

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/you-not-fish/lang/internal/logging"
	"github.com/you-not-fish/lang/internal/syntax"
	"github.com/you-not-fish/lang/internal/types"
)

// DefaultMaxDepth bounds nesting of blocks, parentheses and unary operands
// when no limit is configured.
const DefaultMaxDepth = 256

// Context is the compile state threaded through every phase: the source
// being compiled, the symbol table, and the diagnostic sink. A Context is
// used by one goroutine at a time; independent Contexts share nothing.
type Context struct {
	ID        string
	Source    *syntax.Source
	Symbols   *types.Table
	Diags     *syntax.Diagnostics
	Logger    *slog.Logger
	MaxDepth  int
	StartTime time.Time
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger. Log records carry the session ID.
func WithLogger(l *slog.Logger) Option {
	return func(c *Context) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithMaxDepth sets the nesting limit. Zero or negative disables it.
func WithMaxDepth(n int) Option {
	return func(c *Context) {
		c.MaxDepth = n
	}
}

// WithID sets the session ID instead of generating one.
func WithID(id string) Option {
	return func(c *Context) {
		if id != "" {
			c.ID = id
		}
	}
}

// New creates a Context for compiling src. The symbol table starts with one
// open top-level scope, which stays open for the life of the session so
// that bindings persist across successive inputs.
func New(src *syntax.Source, opts ...Option) *Context {
	c := &Context{
		ID:        uuid.New().String(),
		Source:    src,
		Symbols:   types.NewTable(),
		Diags:     &syntax.Diagnostics{},
		Logger:    logging.Discard(),
		MaxDepth:  DefaultMaxDepth,
		StartTime: time.Now(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Logger = c.Logger.With(slog.String("session", c.ID))
	c.Symbols.PushScope()
	return c
}

// Reset replaces the source for the next input while keeping the symbol
// table. Pending diagnostics are discarded.
func (c *Context) Reset(src *syntax.Source) {
	c.Source = src
	c.Diags.TakeDiagnostics()
}

// Elapsed returns the time since the session was created.
func (c *Context) Elapsed() time.Duration {
	return time.Since(c.StartTime)
}
