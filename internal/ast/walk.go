package ast

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *BlockStmt:
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *IfStmt:
		Walk(n.Cond, v)
		Walk(n.Then, v)
		if n.Else != nil {
			Walk(n.Else, v)
		}

	case *WhileStmt:
		Walk(n.Cond, v)
		Walk(n.Body, v)

	case *ReturnStmt:
		Walk(n.Result, v)

	case *ExprStmt:
		Walk(n.X, v)

	case *Binary:
		Walk(n.X, v)
		Walk(n.Y, v)

	case *Unary:
		Walk(n.X, v)

	// Leaf nodes: Var, Literal, EmptyStmt, BreakStmt, ContinueStmt
	// No children to visit
	}
}

// Inspect calls f for every node of every top-level statement in root.
func Inspect(root *Root, f func(Node) bool) {
	for _, s := range root.Stmts {
		Walk(s, Visitor(f))
	}
}

// Count returns the number of nodes in the tree rooted at root.
func Count(root *Root) int {
	n := 0
	Inspect(root, func(Node) bool {
		n++
		return true
	})
	return n
}
