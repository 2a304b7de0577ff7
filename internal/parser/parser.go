// Package parser builds a resolved AST from a token stream.
//
// Parsing and name resolution happen in a single pass: declarations are
// entered into the session's symbol table as they are parsed and every
// variable reference is bound to a SymbolID on the spot. The parser stops
// at the first diagnostic.
package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/you-not-fish/lang/internal/ast"
	"github.com/you-not-fish/lang/internal/session"
	"github.com/you-not-fish/lang/internal/syntax"
	"github.com/you-not-fish/lang/internal/types"
)

// Parser performs syntax analysis and name resolution.
type Parser struct {
	toks  *syntax.TokenStream
	syms  *types.Table
	diags *syntax.Diagnostics

	// Nesting tracking
	depth    int
	maxDepth int // <= 0 means unlimited
}

// New creates a Parser reading toks and resolving names in ctx.
func New(ctx *session.Context, toks *syntax.TokenStream) *Parser {
	return &Parser{
		toks:     toks,
		syms:     ctx.Symbols,
		diags:    ctx.Diags,
		maxDepth: ctx.MaxDepth,
	}
}

// ----------------------------------------------------------------------------
// Parsing entry point

// Parse parses statements until the end of the stream. On the first error
// the diagnostic is reported to the sink and parsing stops; the statements
// completed so far are returned and must not be used by later phases.
// A failed parse withdraws every declaration it made, so the input is
// rejected as a whole.
func (p *Parser) Parse() *ast.Root {
	root := &ast.Root{}

	if p.syms.Depth() == 0 {
		p.syms.PushScope()
		defer p.syms.PopScope()
	}
	mark := p.syms.Mark()

	for p.toks.Any() {
		s, err := p.stmt()
		if err != nil {
			p.report(err)
			p.syms.Rollback(mark)
			break
		}
		root.Stmts = append(root.Stmts, s)
	}
	return root
}

// report records err in the sink. Parser routines only fail with
// diagnostics; anything else is a bug.
func (p *Parser) report(err error) {
	var d *syntax.Diagnostic
	if !errors.As(err, &d) {
		panic(fmt.Sprintf("parser: unexpected error %v", err))
	}
	p.diags.Report(d)
}

// enter records one more level of nesting at tok.
func (p *Parser) enter(tok syntax.Token) error {
	if p.maxDepth > 0 && p.depth >= p.maxDepth {
		return syntax.NewDiagnostic(tok.Line(), &syntax.NestingTooDeep{Limit: p.maxDepth})
	}
	p.depth++
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// ----------------------------------------------------------------------------
// Statements

// stmt parses a single statement.
func (p *Parser) stmt() (ast.Stmt, error) {
	switch p.toks.Peek().Kind {
	case syntax.Lbrace:
		return p.blockStmt()

	case syntax.If:
		return p.ifStmt()

	case syntax.While:
		return p.whileStmt()

	case syntax.Let:
		return p.letStmt()

	case syntax.Return:
		return p.returnStmt()

	case syntax.Break:
		tok := p.toks.Advance()
		if _, err := p.toks.Expect(syntax.Semi); err != nil {
			return nil, err
		}
		return ast.NewBreakStmt(tok), nil

	case syntax.Continue:
		tok := p.toks.Advance()
		if _, err := p.toks.Expect(syntax.Semi); err != nil {
			return nil, err
		}
		return ast.NewContinueStmt(tok), nil

	case syntax.Semi:
		return ast.NewEmptyStmt(p.toks.Advance()), nil

	default:
		return p.exprStmt()
	}
}

// blockStmt parses { stmts... } in a fresh scope.
func (p *Parser) blockStmt() (ast.Stmt, error) {
	lbrace := p.toks.Advance()
	if err := p.enter(lbrace); err != nil {
		return nil, err
	}
	defer p.leave()

	p.syms.PushScope()
	defer p.syms.PopScope()

	var stmts []ast.Stmt
	for {
		if _, ok := p.toks.MatchKind(syntax.Rbrace); ok {
			break
		}
		if !p.toks.Any() {
			_, err := p.toks.Expect(syntax.Rbrace)
			return nil, err
		}
		s, err := p.stmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return ast.NewBlockStmt(lbrace, stmts), nil
}

// ifStmt parses: if cond then [else els]
func (p *Parser) ifStmt() (ast.Stmt, error) {
	tok := p.toks.Advance()
	if err := p.enter(tok); err != nil {
		return nil, err
	}
	defer p.leave()

	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	then, err := p.stmt()
	if err != nil {
		return nil, err
	}

	var els ast.Stmt
	if _, ok := p.toks.MatchKind(syntax.Else); ok {
		if els, err = p.stmt(); err != nil {
			return nil, err
		}
	}
	return ast.NewIfStmt(tok, cond, then, els), nil
}

// whileStmt parses: while cond body
func (p *Parser) whileStmt() (ast.Stmt, error) {
	tok := p.toks.Advance()
	if err := p.enter(tok); err != nil {
		return nil, err
	}
	defer p.leave()

	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	body, err := p.stmt()
	if err != nil {
		return nil, err
	}
	return ast.NewWhileStmt(tok, cond, body), nil
}

// letStmt parses: let name: type [= init];
//
// The name is bound before the initializer is parsed. With an initializer
// the result is the assignment name = init wrapped in an ExprStmt; without
// one it is an EmptyStmt.
func (p *Parser) letStmt() (ast.Stmt, error) {
	let := p.toks.Advance()

	name, err := p.toks.Expect(syntax.Name)
	if err != nil {
		return nil, err
	}
	if _, err := p.toks.Expect(syntax.Colon); err != nil {
		return nil, err
	}
	typ, err := p.toks.Expect(syntax.Name)
	if err != nil {
		return nil, err
	}
	id, err := p.syms.AddLocalVar(name, typ)
	if err != nil {
		return nil, err
	}

	assign, ok := p.toks.MatchKind(syntax.Assign)
	if !ok {
		if _, err := p.toks.Expect(syntax.Semi); err != nil {
			return nil, err
		}
		return ast.NewEmptyStmt(let), nil
	}

	value, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.toks.Expect(syntax.Semi); err != nil {
		return nil, err
	}
	x := ast.NewBinary(assign, ast.Assign, ast.NewVar(name, id), value)
	return ast.NewExprStmt(let, x), nil
}

// returnStmt parses: return expr;
func (p *Parser) returnStmt() (ast.Stmt, error) {
	tok := p.toks.Advance()

	x, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.toks.Expect(syntax.Semi); err != nil {
		return nil, err
	}
	return ast.NewReturnStmt(tok, x), nil
}

// exprStmt parses: expr;
func (p *Parser) exprStmt() (ast.Stmt, error) {
	tok := p.toks.Peek()

	x, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.toks.Expect(syntax.Semi); err != nil {
		return nil, err
	}
	return ast.NewExprStmt(tok, x), nil
}

// ----------------------------------------------------------------------------
// Expressions

type assoc uint8

const (
	left assoc = iota
	right
	none
)

type opInfo struct {
	prec  int
	assoc assoc
}

// Binary operator precedence; lower binds tighter.
var binaryOps = map[syntax.TokenKind]opInfo{
	syntax.Mul:    {1, left},
	syntax.Div:    {1, left},
	syntax.Add:    {2, left},
	syntax.Sub:    {2, left},
	syntax.Eql:    {3, none},
	syntax.Neq:    {3, none},
	syntax.Lss:    {3, none},
	syntax.Leq:    {3, none},
	syntax.Gtr:    {3, none},
	syntax.Geq:    {3, none},
	syntax.Assign: {4, right},
}

const maxPrec = 4

// expr parses an expression.
func (p *Parser) expr() (ast.Expr, error) {
	return p.binaryExpr(nil, maxPrec)
}

// binaryExpr parses operators of precedence prec and tighter. lhs, if not
// nil, is an already parsed left operand.
//
// Each level first parses an operand one level tighter, then accepts
// operators of exactly its own level. Left-associative levels keep folding
// into the left operand; right-associative levels parse their right operand
// at the same level, one nesting level deeper. Non-associative levels stop
// after one operator, so a < b < c leaves the second < unconsumed.
func (p *Parser) binaryExpr(lhs ast.Expr, prec int) (ast.Expr, error) {
	if prec == 0 {
		if lhs != nil {
			return lhs, nil
		}
		return p.term()
	}

	x, err := p.binaryExpr(lhs, prec-1)
	if err != nil {
		return nil, err
	}

	for {
		tok := p.toks.Peek()
		info, ok := binaryOps[tok.Kind]
		if !ok || info.prec != prec {
			return x, nil
		}
		p.toks.Advance()
		op, _ := ast.BinaryOpOf(tok.Kind)

		if info.assoc == right {
			if err := p.enter(tok); err != nil {
				return nil, err
			}
			defer p.leave()

			y, err := p.binaryExpr(nil, prec)
			if err != nil {
				return nil, err
			}
			return ast.NewBinary(tok, op, x, y), nil
		}

		y, err := p.binaryExpr(nil, prec-1)
		if err != nil {
			return nil, err
		}
		x = ast.NewBinary(tok, op, x, y)
		if info.assoc == none {
			return x, nil
		}
	}
}

// term parses a variable, a literal, a parenthesized expression, or a
// unary operation. The operand of a unary operator is a full expression,
// so !a == b parses as !(a == b).
func (p *Parser) term() (ast.Expr, error) {
	tok := p.toks.Advance()

	switch tok.Kind {
	case syntax.Name:
		id, err := p.syms.LookupVar(tok)
		if err != nil {
			return nil, err
		}
		return ast.NewVar(tok, id), nil

	case syntax.Literal:
		v, err := strconv.ParseInt(tok.Lexeme, 10, 32)
		if err != nil {
			return nil, syntax.NewDiagnostic(tok.Line(), &syntax.NumLiteralTooLarge{Lexeme: tok.Lexeme})
		}
		return ast.NewLiteral(tok, int32(v)), nil

	case syntax.Lparen:
		if err := p.enter(tok); err != nil {
			return nil, err
		}
		defer p.leave()

		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.toks.Expect(syntax.Rparen); err != nil {
			return nil, err
		}
		return x, nil

	case syntax.Not, syntax.Sub:
		if err := p.enter(tok); err != nil {
			return nil, err
		}
		defer p.leave()

		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		op, _ := ast.UnaryOpOf(tok.Kind)
		return ast.NewUnary(tok, op, x), nil
	}

	return nil, syntax.NewDiagnostic(tok.Line(), &syntax.ExpectedExpression{Found: tok.Kind})
}
