package ast

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the tree rooted at root to w.
func Fprint(w io.Writer, root *Root) {
	p := &printer{w: w}
	p.printf("Root\n")
	p.indent++
	for _, s := range root.Stmts {
		p.print(s)
	}
}

// FprintNode writes a textual representation of a single subtree to w.
func FprintNode(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// child prints node one level deeper, preceded by a label line.
func (p *printer) child(label string, node Node) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(node)
	p.indent--
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *BlockStmt:
		p.printf("BlockStmt %s\n", n.Pos())
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *IfStmt:
		p.printf("IfStmt %s\n", n.Pos())
		p.indent++
		p.child("Cond", n.Cond)
		p.child("Then", n.Then)
		if n.Else != nil {
			p.child("Else", n.Else)
		}
		p.indent--

	case *WhileStmt:
		p.printf("WhileStmt %s\n", n.Pos())
		p.indent++
		p.child("Cond", n.Cond)
		p.child("Body", n.Body)
		p.indent--

	case *ReturnStmt:
		p.printf("ReturnStmt %s\n", n.Pos())
		p.indent++
		p.print(n.Result)
		p.indent--

	case *BreakStmt:
		p.printf("BreakStmt %s\n", n.Pos())

	case *ContinueStmt:
		p.printf("ContinueStmt %s\n", n.Pos())

	case *ExprStmt:
		p.printf("ExprStmt %s\n", n.Pos())
		p.indent++
		p.print(n.X)
		p.indent--

	case *EmptyStmt:
		p.printf("EmptyStmt %s\n", n.Pos())

	case *Binary:
		p.printf("Binary %s %s\n", n.Pos(), n.Op)
		p.indent++
		p.child("X", n.X)
		p.child("Y", n.Y)
		p.indent--

	case *Unary:
		p.printf("Unary %s %s\n", n.Pos(), n.Op)
		p.indent++
		p.print(n.X)
		p.indent--

	case *Var:
		p.printf("Var %s %q %s\n", n.Pos(), n.Name(), n.Symbol)

	case *Literal:
		p.printf("Literal %s %d\n", n.Pos(), n.Value)

	default:
		p.printf("<%T>\n", node)
	}
}

// ExprString returns a compact, fully parenthesized rendering of e, for
// example "(x = (1 + (2 * 3)))". Variables print as their source name.
func ExprString(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

func writeExpr(b *strings.Builder, e Expr) {
	switch x := e.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Binary:
		b.WriteByte('(')
		writeExpr(b, x.X)
		fmt.Fprintf(b, " %s ", x.Op)
		writeExpr(b, x.Y)
		b.WriteByte(')')
	case *Unary:
		b.WriteByte('(')
		b.WriteString(x.Op.String())
		writeExpr(b, x.X)
		b.WriteByte(')')
	case *Var:
		b.WriteString(x.Name())
	case *Literal:
		fmt.Fprintf(b, "%d", x.Value)
	default:
		fmt.Fprintf(b, "<%T>", e)
	}
}
