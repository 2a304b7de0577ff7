package ast

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// FprintJSON writes a JSON representation of the tree rooted at root to w.
func FprintJSON(w io.Writer, root *Root) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rootTree(root))
}

// FprintYAML writes a YAML representation of the tree rooted at root to w.
// The document has the same shape as the JSON output.
func FprintYAML(w io.Writer, root *Root) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rootTree(root)); err != nil {
		return fmt.Errorf("encode ast: %w", err)
	}
	return enc.Close()
}

func rootTree(root *Root) map[string]interface{} {
	return map[string]interface{}{
		"type":  "Root",
		"stmts": mapSlice(root.Stmts, toTree),
	}
}

func toTree(node Node) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *BlockStmt:
		return map[string]interface{}{
			"type":  "BlockStmt",
			"pos":   n.Pos().String(),
			"stmts": mapSlice(n.Stmts, toTree),
		}

	case *IfStmt:
		m := map[string]interface{}{
			"type": "IfStmt",
			"pos":  n.Pos().String(),
			"cond": toTree(n.Cond),
			"then": toTree(n.Then),
		}
		if n.Else != nil {
			m["else"] = toTree(n.Else)
		}
		return m

	case *WhileStmt:
		return map[string]interface{}{
			"type": "WhileStmt",
			"pos":  n.Pos().String(),
			"cond": toTree(n.Cond),
			"body": toTree(n.Body),
		}

	case *ReturnStmt:
		return map[string]interface{}{
			"type":   "ReturnStmt",
			"pos":    n.Pos().String(),
			"result": toTree(n.Result),
		}

	case *BreakStmt:
		return leaf("BreakStmt", n)

	case *ContinueStmt:
		return leaf("ContinueStmt", n)

	case *EmptyStmt:
		return leaf("EmptyStmt", n)

	case *ExprStmt:
		return map[string]interface{}{
			"type": "ExprStmt",
			"pos":  n.Pos().String(),
			"x":    toTree(n.X),
		}

	case *Binary:
		return map[string]interface{}{
			"type": "Binary",
			"pos":  n.Pos().String(),
			"op":   n.Op.String(),
			"x":    toTree(n.X),
			"y":    toTree(n.Y),
		}

	case *Unary:
		return map[string]interface{}{
			"type": "Unary",
			"pos":  n.Pos().String(),
			"op":   n.Op.String(),
			"x":    toTree(n.X),
		}

	case *Var:
		return map[string]interface{}{
			"type":   "Var",
			"pos":    n.Pos().String(),
			"name":   n.Name(),
			"symbol": int(n.Symbol),
		}

	case *Literal:
		return map[string]interface{}{
			"type":  "Literal",
			"pos":   n.Pos().String(),
			"value": n.Value,
		}

	default:
		return map[string]interface{}{
			"type": "Unknown",
		}
	}
}

func leaf(typ string, n Node) map[string]interface{} {
	return map[string]interface{}{
		"type": typ,
		"pos":  n.Pos().String(),
	}
}

func mapSlice[T Node](s []T, f func(Node) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
