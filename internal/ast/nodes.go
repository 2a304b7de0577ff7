// Package ast defines the resolved syntax tree produced by the parser.
//
// Names are resolved while the tree is built, so variable references carry
// the SymbolID they bind to rather than an identifier string.
package ast

import (
	"github.com/you-not-fish/lang/internal/syntax"
	"github.com/you-not-fish/lang/internal/types"
)

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 2 classes of nodes: Expressions and Statements. Every node owns
// exactly one token, the one that introduced it.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Token() syntax.Token // token that introduced the node
	Pos() syntax.Pos     // position of that token
	Line() int           // line of that token
	aNode()              // marker method to restrict implementations to this package
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// ----------------------------------------------------------------------------
// Base node types

type node struct {
	tok syntax.Token
}

func (n *node) Token() syntax.Token { return n.tok }
func (n *node) Pos() syntax.Pos     { return n.tok.Pos }
func (n *node) Line() int           { return n.tok.Line() }
func (n *node) aNode()              {}

type expr struct{ node }

func (*expr) aExpr() {}

type stmt struct{ node }

func (*stmt) aStmt() {}

// Root is the result of parsing a token stream: the top-level statements in
// source order.
type Root struct {
	Stmts []Stmt
}

// ----------------------------------------------------------------------------
// Operators

// BinaryOp is the operator of a Binary expression.
type BinaryOp uint8

const (
	Assign BinaryOp = iota
	Add
	Sub
	Mult
	Div
	Eql
	Neq
	Lss
	Leq
	Gtr
	Geq
)

var binaryOps = [...]string{
	Assign: "=",
	Add:    "+",
	Sub:    "-",
	Mult:   "*",
	Div:    "/",
	Eql:    "==",
	Neq:    "!=",
	Lss:    "<",
	Leq:    "<=",
	Gtr:    ">",
	Geq:    ">=",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOps) {
		return binaryOps[op]
	}
	return "?"
}

// BinaryOpOf maps an operator token kind to its BinaryOp.
func BinaryOpOf(k syntax.TokenKind) (BinaryOp, bool) {
	switch k {
	case syntax.Assign:
		return Assign, true
	case syntax.Add:
		return Add, true
	case syntax.Sub:
		return Sub, true
	case syntax.Mul:
		return Mult, true
	case syntax.Div:
		return Div, true
	case syntax.Eql:
		return Eql, true
	case syntax.Neq:
		return Neq, true
	case syntax.Lss:
		return Lss, true
	case syntax.Leq:
		return Leq, true
	case syntax.Gtr:
		return Gtr, true
	case syntax.Geq:
		return Geq, true
	}
	return 0, false
}

// UnaryOp is the operator of a Unary expression.
type UnaryOp uint8

const (
	Not UnaryOp = iota
	Neg
)

func (op UnaryOp) String() string {
	switch op {
	case Not:
		return "!"
	case Neg:
		return "-"
	}
	return "?"
}

// UnaryOpOf maps a prefix operator token kind to its UnaryOp.
func UnaryOpOf(k syntax.TokenKind) (UnaryOp, bool) {
	switch k {
	case syntax.Not:
		return Not, true
	case syntax.Sub:
		return Neg, true
	}
	return 0, false
}

// ----------------------------------------------------------------------------
// Expressions

// Binary represents X Op Y. Its token is the operator.
type Binary struct {
	expr
	Op BinaryOp
	X  Expr
	Y  Expr
}

// Unary represents Op X. Its token is the operator.
type Unary struct {
	expr
	Op UnaryOp
	X  Expr
}

// Var is a reference to a resolved variable. Its token is the identifier.
type Var struct {
	expr
	Symbol types.SymbolID
}

// Name returns the identifier as written in the source.
func (v *Var) Name() string { return v.tok.Lexeme }

// Literal is an integer constant. Its token is the literal.
type Literal struct {
	expr
	Value int32
}

// ----------------------------------------------------------------------------
// Statements

// IfStmt represents: if Cond Then [else Else]
type IfStmt struct {
	stmt
	Cond Expr
	Then Stmt
	Else Stmt // nil if absent
}

// WhileStmt represents: while Cond Body
type WhileStmt struct {
	stmt
	Cond Expr
	Body Stmt
}

// ExprStmt is an expression followed by a semicolon. A declaration with an
// initializer is also an ExprStmt whose token is the 'let' keyword.
type ExprStmt struct {
	stmt
	X Expr
}

// BlockStmt represents { Stmts }. Its token is the opening brace.
type BlockStmt struct {
	stmt
	Stmts []Stmt
}

// ReturnStmt represents: return Result;
type ReturnStmt struct {
	stmt
	Result Expr
}

// BreakStmt represents: break;
type BreakStmt struct {
	stmt
}

// ContinueStmt represents: continue;
type ContinueStmt struct {
	stmt
}

// EmptyStmt is a lone semicolon, or a declaration without an initializer.
type EmptyStmt struct {
	stmt
}

// ----------------------------------------------------------------------------
// Constructors

// NewBinary returns the binary operation x op y, owned by the operator token.
func NewBinary(tok syntax.Token, op BinaryOp, x, y Expr) *Binary {
	n := &Binary{Op: op, X: x, Y: y}
	n.tok = tok
	return n
}

// NewUnary returns the unary operation op x, owned by the operator token.
func NewUnary(tok syntax.Token, op UnaryOp, x Expr) *Unary {
	n := &Unary{Op: op, X: x}
	n.tok = tok
	return n
}

// NewVar returns a reference to the variable sym, owned by its name token.
func NewVar(tok syntax.Token, sym types.SymbolID) *Var {
	n := &Var{Symbol: sym}
	n.tok = tok
	return n
}

// NewLiteral returns an integer literal with the given value.
func NewLiteral(tok syntax.Token, value int32) *Literal {
	n := &Literal{Value: value}
	n.tok = tok
	return n
}

// NewIfStmt returns an if statement. els is nil when there is no else branch.
func NewIfStmt(tok syntax.Token, cond Expr, then, els Stmt) *IfStmt {
	n := &IfStmt{Cond: cond, Then: then, Else: els}
	n.tok = tok
	return n
}

// NewWhileStmt returns a while loop.
func NewWhileStmt(tok syntax.Token, cond Expr, body Stmt) *WhileStmt {
	n := &WhileStmt{Cond: cond, Body: body}
	n.tok = tok
	return n
}

// NewExprStmt returns x used as a statement; tok is its first token.
func NewExprStmt(tok syntax.Token, x Expr) *ExprStmt {
	n := &ExprStmt{X: x}
	n.tok = tok
	return n
}

// NewBlockStmt returns a block owned by its opening brace.
func NewBlockStmt(tok syntax.Token, stmts []Stmt) *BlockStmt {
	n := &BlockStmt{Stmts: stmts}
	n.tok = tok
	return n
}

// NewReturnStmt returns a return statement.
func NewReturnStmt(tok syntax.Token, result Expr) *ReturnStmt {
	n := &ReturnStmt{Result: result}
	n.tok = tok
	return n
}

// NewBreakStmt returns a break statement.
func NewBreakStmt(tok syntax.Token) *BreakStmt {
	n := &BreakStmt{}
	n.tok = tok
	return n
}

// NewContinueStmt returns a continue statement.
func NewContinueStmt(tok syntax.Token) *ContinueStmt {
	n := &ContinueStmt{}
	n.tok = tok
	return n
}

// NewEmptyStmt returns an empty statement owned by tok.
func NewEmptyStmt(tok syntax.Token) *EmptyStmt {
	n := &EmptyStmt{}
	n.tok = tok
	return n
}
