package parser

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/you-not-fish/lang/internal/ast"
	"github.com/you-not-fish/lang/internal/session"
	"github.com/you-not-fish/lang/internal/syntax"
	"github.com/you-not-fish/lang/internal/types"
)

// ----------------------------------------------------------------------------
// Test helpers

func parseIn(t *testing.T, ctx *session.Context, src string) (*ast.Root, []*syntax.Diagnostic) {
	t.Helper()
	ctx.Reset(syntax.NewSource("test", src))
	toks := syntax.Tokenize(ctx.Source, func(pos syntax.Pos, lexeme string) {
		t.Fatalf("%s: invalid token %q in test input", pos, lexeme)
	})
	root := New(ctx, toks).Parse()
	if root == nil {
		t.Fatal("Parse returned nil")
	}
	return root, ctx.Diags.TakeDiagnostics()
}

func parse(t *testing.T, src string) (*ast.Root, []*syntax.Diagnostic, *session.Context) {
	t.Helper()
	ctx := session.New(nil)
	root, diags := parseIn(t, ctx, src)
	return root, diags, ctx
}

func parseOK(t *testing.T, src string) (*ast.Root, *session.Context) {
	t.Helper()
	root, diags, ctx := parse(t, src)
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics for %q: %v", src, diags)
	}
	return root, ctx
}

// parseErr parses src and requires exactly one diagnostic.
func parseErr(t *testing.T, src string) (*ast.Root, *syntax.Diagnostic) {
	t.Helper()
	root, diags, _ := parse(t, src)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics for %q, want 1: %v", len(diags), src, diags)
	}
	return root, diags[0]
}

func lastExpr(t *testing.T, root *ast.Root) ast.Expr {
	t.Helper()
	if len(root.Stmts) == 0 {
		t.Fatal("no statements")
	}
	s, ok := root.Stmts[len(root.Stmts)-1].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("last statement is %T, want *ast.ExprStmt", root.Stmts[len(root.Stmts)-1])
	}
	return s.X
}

func stmtKinds(stmts []ast.Stmt) string {
	var kinds []string
	for _, s := range stmts {
		kinds = append(kinds, strings.TrimPrefix(fmt.Sprintf("%T", s), "*ast."))
	}
	return strings.Join(kinds, " ")
}

// ----------------------------------------------------------------------------
// Expressions

func TestPrecedence(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"mul_before_add", "let x: int = 1 + 2 * 3;", "(x = (1 + (2 * 3)))"},
		{"mul_first", "let x: int = 1 * 2 + 3;", "(x = ((1 * 2) + 3))"},
		{"sub_left", "let x: int = 1 - 2 - 3;", "(x = ((1 - 2) - 3))"},
		{"div_left", "let x: int = 8 / 4 / 2;", "(x = ((8 / 4) / 2))"},
		{"mixed_chain", "let x: int = 1 * 2 + 3 * 4 - 5;", "(x = (((1 * 2) + (3 * 4)) - 5))"},
		{"assign_right", "let a: int; let b: int; a = b = 1;", "(a = (b = 1))"},
		{"cmp_below_add", "let a: int; let b: int; a = b < 1 + 2;", "(a = (b < (1 + 2)))"},
		{"cmp_rhs_arith", "let a: int; a >= 1 + 2 * a;", "(a >= (1 + (2 * a)))"},
		{"parens", "let a: int; a = (1 + 2) * 3;", "(a = ((1 + 2) * 3))"},
		{"paren_cmp", "let a: int; let b: int; let c: int; (a < b) < c;", "((a < b) < c)"},
		{"not_loose", "let a: int; let b: int; !a == b;", "(!(a == b))"},
		{"neg_loose", "let a: int; -a + 1;", "(-(a + 1))"},
		{"neg_paren", "let a: int; (-a) + 1;", "((-a) + 1)"},
		{"nested_unary", "let a: int; !-a;", "(!(-a))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, _ := parseOK(t, tt.src)
			if got := ast.ExprString(lastExpr(t, root)); got != tt.want {
				t.Errorf("%s\n got  %s\n want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestLetInitializerTree(t *testing.T) {
	root, ctx := parseOK(t, "let x: int = 1 + 2 * 3;")
	if len(root.Stmts) != 1 {
		t.Fatalf("got %d statements", len(root.Stmts))
	}

	stmt := root.Stmts[0].(*ast.ExprStmt)
	if stmt.Token().Kind != syntax.Let {
		t.Errorf("statement token = %s, want let", stmt.Token())
	}
	assign, ok := stmt.X.(*ast.Binary)
	if !ok || assign.Op != ast.Assign || assign.Token().Kind != syntax.Assign {
		t.Fatalf("X = %#v, want Assign", stmt.X)
	}

	v := assign.X.(*ast.Var)
	info := ctx.Symbols.Info(v.Symbol)
	if info.Name != "x" || !info.IsVar() || info.Type() != types.Typ[types.Int] {
		t.Errorf("target symbol = %+v", info)
	}
	if v.Token().Kind != syntax.Name || v.Pos().Col() != 5 {
		t.Errorf("Var token = %s at %s", v.Token(), v.Pos())
	}

	add := assign.Y.(*ast.Binary)
	mul := add.Y.(*ast.Binary)
	if add.Op != ast.Add || mul.Op != ast.Mult {
		t.Fatalf("ops = %v %v", add.Op, mul.Op)
	}
	lits := []int32{add.X.(*ast.Literal).Value, mul.X.(*ast.Literal).Value, mul.Y.(*ast.Literal).Value}
	if lits[0] != 1 || lits[1] != 2 || lits[2] != 3 {
		t.Errorf("literals = %v", lits)
	}
}

func TestChainedComparisonFails(t *testing.T) {
	root, d := parseErr(t, "let a: int; let b: int; let c: int;\na < b < c;")

	k, ok := d.Kind.(*syntax.UnexpectedToken)
	if !ok || k.Expected != syntax.Semi || k.Found != syntax.Lss {
		t.Fatalf("diagnostic = %v", d)
	}
	if d.Line != 2 {
		t.Errorf("line = %d, want 2", d.Line)
	}
	if got := stmtKinds(root.Stmts); got != "EmptyStmt EmptyStmt EmptyStmt" {
		t.Errorf("partial root = %s", got)
	}
}

func TestLiterals(t *testing.T) {
	root, _ := parseOK(t, "2147483647; 0; 007;")
	want := []int32{2147483647, 0, 7}
	for i, s := range root.Stmts {
		if got := s.(*ast.ExprStmt).X.(*ast.Literal).Value; got != want[i] {
			t.Errorf("literal %d = %d, want %d", i, got, want[i])
		}
	}

	for _, src := range []string{"2147483648;", "99999999999999999999;"} {
		_, d := parseErr(t, src)
		k, ok := d.Kind.(*syntax.NumLiteralTooLarge)
		if !ok || k.Lexeme != strings.TrimSuffix(src, ";") {
			t.Errorf("%s: diagnostic = %v", src, d)
		}
	}
}

// ----------------------------------------------------------------------------
// Statements

func TestStatementForms(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"empty", ";", "EmptyStmt"},
		{"let_no_init", "let x: int;", "EmptyStmt"},
		{"let_init", "let x: int = 0;", "ExprStmt"},
		{"block", "{ ; }", "BlockStmt"},
		{"if_else", "let c: int; if (c) { } else { }", "EmptyStmt IfStmt"},
		{"if_bare", "let c: int; if c c = 1;", "EmptyStmt IfStmt"},
		{"while", "let c: int; while (c) { break; continue; }", "EmptyStmt WhileStmt"},
		{"return", "return 1;", "ReturnStmt"},
		{"break_continue", "break; continue;", "BreakStmt ContinueStmt"},
		{"comments", "// nothing\n; // trailing\n", "EmptyStmt"},
		{"nothing", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, _ := parseOK(t, tt.src)
			if got := stmtKinds(root.Stmts); got != tt.want {
				t.Errorf("statements = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIfElseStructure(t *testing.T) {
	root, _ := parseOK(t, "let c: int;\nif (c == 1) { c = 2; } else if c { } else c = 3;")
	s := root.Stmts[1].(*ast.IfStmt)
	if s.Line() != 2 || ast.ExprString(s.Cond) != "(c == 1)" {
		t.Errorf("if at line %d, cond %s", s.Line(), ast.ExprString(s.Cond))
	}
	then := s.Then.(*ast.BlockStmt)
	if len(then.Stmts) != 1 {
		t.Errorf("then has %d statements", len(then.Stmts))
	}
	inner, ok := s.Else.(*ast.IfStmt)
	if !ok {
		t.Fatalf("else = %T, want *ast.IfStmt", s.Else)
	}
	if _, ok := inner.Else.(*ast.ExprStmt); !ok {
		t.Errorf("inner else = %T", inner.Else)
	}

	root, _ = parseOK(t, "let c: int; if (c) ;")
	if root.Stmts[1].(*ast.IfStmt).Else != nil {
		t.Error("else present without 'else'")
	}
}

func TestWhileStructure(t *testing.T) {
	root, _ := parseOK(t, "let i: int = 0;\nwhile (i < 10) {\n  i = i + 1;\n}")
	w := root.Stmts[1].(*ast.WhileStmt)
	if ast.ExprString(w.Cond) != "(i < 10)" {
		t.Errorf("cond = %s", ast.ExprString(w.Cond))
	}
	body := w.Body.(*ast.BlockStmt)
	if body.Line() != 2 || len(body.Stmts) != 1 {
		t.Errorf("body at line %d with %d statements", body.Line(), len(body.Stmts))
	}
	if got := ast.ExprString(body.Stmts[0].(*ast.ExprStmt).X); got != "(i = (i + 1))" {
		t.Errorf("body = %s", got)
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"let_missing_colon", "let x int;", "ERROR (line 1): Expected token ':', found 'identifier'"},
		{"let_literal_name", "let 1: int;", "ERROR (line 1): Expected token 'identifier', found 'literal'"},
		{"let_unknown_type", "let x: float;", "ERROR (line 1): Unknown type 'float'"},
		{"let_missing_semi", "let x: int = 1\nx;", "ERROR (line 2): Expected token ';', found 'identifier'"},
		{"missing_operand", "1 + ;", "ERROR (line 1): Expected expression, found ';'"},
		{"return_bare", "return;", "ERROR (line 1): Expected expression, found ';'"},
		{"stray_rbrace", "}", "ERROR (line 1): Expected expression, found '}'"},
		{"break_eof", "break", "ERROR (line 1): Expected token ';', found 'EOF'"},
		{"continue_no_semi", "continue }", "ERROR (line 1): Expected token ';', found '}'"},
		{"unclosed_block", "{\n1;", "ERROR (line 2): Expected token '}', found 'EOF'"},
		{"unclosed_paren", "(1;", "ERROR (line 1): Expected token ')', found ';'"},
		{"two_operands", "let x: int; x x;", "ERROR (line 1): Expected token ';', found 'identifier'"},
		{"keyword_operand", "1 + while;", "ERROR (line 1): Expected expression, found 'while'"},
		{"func_unsupported", "func;", "ERROR (line 1): Expected expression, found 'func'"},
		{"mixed_comparisons", "let a: int; a >= 1 != 0;", "ERROR (line 1): Expected token ';', found '!='"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, d := parseErr(t, tt.src)
			if got := d.Error(); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Name resolution

func TestRedeclaration(t *testing.T) {
	root, d := parseErr(t, "let x: int;\n{\n}\nlet x: int = 2;")

	k, ok := d.Kind.(*syntax.VarRedeclared)
	if !ok {
		t.Fatalf("kind = %T, want *syntax.VarRedeclared", d.Kind)
	}
	if k.Name != "x" || k.OriginalLine != 1 || d.Line != 4 {
		t.Errorf("diagnostic = %v", d)
	}
	if want := "ERROR (line 4): Variable 'x' redeclared. (Originally declared on line 1)"; d.Error() != want {
		t.Errorf("Error() = %q", d.Error())
	}
	if got := stmtKinds(root.Stmts); got != "EmptyStmt BlockStmt" {
		t.Errorf("partial root = %s", got)
	}
}

func TestRedeclarationInBlock(t *testing.T) {
	_, d := parseErr(t, "{\n  let y: int;\n  let y: int;\n}")
	k, ok := d.Kind.(*syntax.VarRedeclared)
	if !ok || k.OriginalLine != 2 || d.Line != 3 {
		t.Errorf("diagnostic = %v", d)
	}
}

func TestShadowing(t *testing.T) {
	src := "let x: int = 1;\n{\n  let x: int = 2;\n  x = 3;\n}\nx = 4;"
	root, ctx := parseOK(t, src)

	outerDecl := root.Stmts[0].(*ast.ExprStmt).X.(*ast.Binary).X.(*ast.Var)
	block := root.Stmts[1].(*ast.BlockStmt)
	innerDecl := block.Stmts[0].(*ast.ExprStmt).X.(*ast.Binary).X.(*ast.Var)
	innerUse := block.Stmts[1].(*ast.ExprStmt).X.(*ast.Binary).X.(*ast.Var)
	outerUse := root.Stmts[2].(*ast.ExprStmt).X.(*ast.Binary).X.(*ast.Var)

	if outerDecl.Symbol == innerDecl.Symbol {
		t.Fatal("inner declaration reused the outer symbol")
	}
	if innerUse.Symbol != innerDecl.Symbol {
		t.Errorf("inner reference -> %v, want inner %v", innerUse.Symbol, innerDecl.Symbol)
	}
	if outerUse.Symbol != outerDecl.Symbol {
		t.Errorf("outer reference -> %v, want outer %v", outerUse.Symbol, outerDecl.Symbol)
	}
	if ctx.Symbols.Info(innerDecl.Symbol).Line != 3 {
		t.Errorf("inner x declared on line %d", ctx.Symbols.Info(innerDecl.Symbol).Line)
	}
}

func TestVarUnknownHalts(t *testing.T) {
	root, d := parseErr(t, "let a: int;\nb = 1;\na = 2;\nc = 3;")

	k, ok := d.Kind.(*syntax.VarUnknown)
	if !ok || k.Name != "b" || d.Line != 2 {
		t.Fatalf("diagnostic = %v", d)
	}
	if len(root.Stmts) != 1 {
		t.Errorf("parsing continued after the error: %s", stmtKinds(root.Stmts))
	}
}

func TestBlockScopeEnds(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"block", "{ let t: int; }\nt;"},
		{"then_not_in_else", "if (1) { let q: int; } else { q; }"},
		{"while_body", "while (1) { let w: int; }\nw = 1;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, d := parseErr(t, tt.src)
			if _, ok := d.Kind.(*syntax.VarUnknown); !ok {
				t.Errorf("diagnostic = %v, want VarUnknown", d)
			}
		})
	}
}

func TestSelfReferenceInInitializer(t *testing.T) {
	root, _ := parseOK(t, "let x: int = x + 1;")
	b := lastExpr(t, root).(*ast.Binary)
	if b.X.(*ast.Var).Symbol != b.Y.(*ast.Binary).X.(*ast.Var).Symbol {
		t.Error("initializer does not refer to the variable being declared")
	}
}

func TestTypeNameIsNotVariable(t *testing.T) {
	_, d := parseErr(t, "int = 1;")
	if k, ok := d.Kind.(*syntax.VarUnknown); !ok || k.Name != "int" {
		t.Errorf("diagnostic = %v", d)
	}
}

// ----------------------------------------------------------------------------
// Scope balance and limits

func TestScopeBalance(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"ok", "{ let x: int; { let y: int; } }"},
		{"if_else_ok", "if (1) { let a: int; } else { let a: int; }"},
		{"while_ok", "while (1) { { } }"},
		{"error_in_nested_block", "{ let x: int; { y; } }"},
		{"error_in_else", "if (1) { } else { let z: int; let z: int; }"},
		{"unclosed", "while (1) { {"},
		{"error_in_cond", "while (u) { }"},
		{"too_large_in_block", "{ { 4294967296; } }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := session.New(nil)
			before := ctx.Symbols.Depth()
			parseIn(t, ctx, tt.src)
			if after := ctx.Symbols.Depth(); after != before {
				t.Errorf("scope depth %d after parse, want %d", after, before)
			}
		})
	}
}

func TestParseOpensScopeWhenNoneOpen(t *testing.T) {
	ctx := session.New(nil)
	ctx.Symbols.PopScope()

	_, diags := parseIn(t, ctx, "let x: int = 1;")
	if len(diags) != 0 {
		t.Fatalf("diagnostics: %v", diags)
	}
	if ctx.Symbols.Depth() != 0 {
		t.Errorf("Depth = %d, want 0", ctx.Symbols.Depth())
	}
}

func TestNestingLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		src   string
		fail  bool
	}{
		{"parens_at_limit", 3, "(((1)));", false},
		{"parens_over", 3, "((((1))));", true},
		{"blocks_at_limit", 3, "{{{}}}", false},
		{"blocks_over", 3, "{{{{}}}}", true},
		{"unary_over", 2, "--!1;", true},
		{"mixed_over", 2, "{ (-1); }", true},
		{"sequential_ok", 2, "((1)); ((2)); {{}} {{}}", false},
		{"unlimited", 0, strings.Repeat("(", 500) + "1" + strings.Repeat(")", 500) + ";", false},
		{"if_at_limit", 2, "if 1 if 1 ;", false},
		{"if_over", 2, strings.Repeat("if 1 ", 10) + ";", true},
		{"else_chain_over", 2, "if 1 ; else if 1 ; else if 1 ;", true},
		{"if_body_over", 2, "if 1 { (1); }", true},
		{"while_at_limit", 2, "while 1 while 1 ;", false},
		{"while_over", 2, strings.Repeat("while 1 ", 10) + ";", true},
		{"assign_at_limit", 2, "let a: int; a = a = 1;", false},
		{"assign_chain_over", 2, "let a: int; " + strings.Repeat("a = ", 10) + "1;", true},
		{"left_chain_flat", 2, "1" + strings.Repeat(" + 1", 10000) + ";", false},
		{"default_limit_long_if_chain", session.DefaultMaxDepth, strings.Repeat("if 1 ", 100000) + ";", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := session.New(nil, session.WithMaxDepth(tt.limit))
			_, diags := parseIn(t, ctx, tt.src)
			if !tt.fail {
				if len(diags) != 0 {
					t.Fatalf("diagnostics: %v", diags)
				}
				return
			}
			if len(diags) != 1 {
				t.Fatalf("got %d diagnostics, want 1", len(diags))
			}
			k, ok := diags[0].Kind.(*syntax.NestingTooDeep)
			if !ok || k.Limit != tt.limit {
				t.Errorf("diagnostic = %v", diags[0])
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Sessions

func TestBindingsPersistAcrossInputs(t *testing.T) {
	ctx := session.New(nil)
	if _, diags := parseIn(t, ctx, "let x: int = 1;"); len(diags) != 0 {
		t.Fatal(diags)
	}
	root, diags := parseIn(t, ctx, "x = x + 1;")
	if len(diags) != 0 {
		t.Fatalf("x not visible in second input: %v", diags)
	}
	if got := ast.ExprString(lastExpr(t, root)); got != "(x = (x + 1))" {
		t.Errorf("expr = %s", got)
	}

	_, diags = parseIn(t, ctx, "let x: int;")
	if len(diags) != 1 {
		t.Fatalf("redeclaration across inputs: %v", diags)
	}
	if _, ok := diags[0].Kind.(*syntax.VarRedeclared); !ok {
		t.Errorf("diagnostic = %v", diags[0])
	}
}

func TestRejectedInputLeavesNoBindings(t *testing.T) {
	ctx := session.New(nil)
	if _, diags := parseIn(t, ctx, "let x: int = oops;"); len(diags) != 1 {
		t.Fatalf("diagnostics: %v", diags)
	}
	if _, diags := parseIn(t, ctx, "let x: int = 1;"); len(diags) != 0 {
		t.Fatalf("corrected declaration rejected: %v", diags)
	}

	if _, diags := parseIn(t, ctx, "let y: int = 2;\nlet z: int = nope;"); len(diags) != 1 {
		t.Fatalf("diagnostics: %v", diags)
	}
	_, diags := parseIn(t, ctx, "y;")
	if len(diags) != 1 {
		t.Fatalf("y from a rejected input is still bound")
	}
	if _, ok := diags[0].Kind.(*syntax.VarUnknown); !ok {
		t.Errorf("diagnostic = %v", diags[0])
	}
	if _, diags := parseIn(t, ctx, "x = 2;"); len(diags) != 0 {
		t.Errorf("earlier binding lost: %v", diags)
	}
}

func TestIndependentSessions(t *testing.T) {
	var wg sync.WaitGroup
	errs := make([]string, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx := session.New(syntax.NewSource("p", fmt.Sprintf("let v%d: int = %d;\nv%d = v%d * 2;", i, i, i, i)))
			root := New(ctx, syntax.Tokenize(ctx.Source, nil)).Parse()
			if ctx.Diags.HasDiagnostics() || len(root.Stmts) != 2 {
				errs[i] = fmt.Sprintf("session %d: %v", i, ctx.Diags.TakeDiagnostics())
			}
		}(i)
	}
	wg.Wait()
	for _, e := range errs {
		if e != "" {
			t.Error(e)
		}
	}
}
