package types

import (
	"strings"

	"github.com/you-not-fish/lang/internal/syntax"
)

// Table resolves names to symbols. It owns a flat store of every symbol
// declared during one compilation and a stack of scopes mapping names to
// indexes into that store. The bottom of the stack is the universe scope
// holding the predeclared types; it is never popped.
type Table struct {
	scopes  []*Scope
	symbols []SymbolInfo
}

// NewTable returns a table whose only scope is a fresh universe.
func NewTable() *Table {
	t := &Table{}
	universe := NewScope("universe")
	t.scopes = append(t.scopes, universe)
	for _, b := range Typ {
		if b == nil {
			continue
		}
		universe.Insert(b.name, t.newSymbol(SymbolInfo{Name: b.name, Kind: &TypeKind{Def: b}}))
	}
	return t
}

func (t *Table) newSymbol(info SymbolInfo) SymbolID {
	id := SymbolID(len(t.symbols))
	t.symbols = append(t.symbols, info)
	return id
}

// PushScope opens a new innermost scope.
func (t *Table) PushScope() {
	t.scopes = append(t.scopes, NewScope("block"))
}

// PopScope closes the innermost scope. Every PopScope must pair with a
// PushScope; popping the universe is a bug in the caller and panics.
func (t *Table) PopScope() {
	if len(t.scopes) <= 1 {
		panic("types: PopScope without matching PushScope")
	}
	t.scopes[len(t.scopes)-1] = nil
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// Mark is a point in a table's history, taken with Table.Mark.
type Mark struct {
	depth   int
	symbols int
}

// Mark returns the current state of the table for a later Rollback.
func (t *Table) Mark() Mark {
	return Mark{depth: t.Depth(), symbols: len(t.symbols)}
}

// Rollback unbinds every name declared since m. The symbols stay in the
// store, so IDs already handed out remain valid and are never reissued.
// The scopes open now must be the ones that were open at m.
func (t *Table) Rollback(m Mark) {
	if t.Depth() != m.depth {
		panic("types: Rollback across a scope change")
	}
	for _, s := range t.scopes[1:] {
		s.removeFrom(SymbolID(m.symbols))
	}
}

// Depth returns the number of open scopes above the universe.
func (t *Table) Depth() int {
	return len(t.scopes) - 1
}

// current returns the innermost user scope.
func (t *Table) current() *Scope {
	if len(t.scopes) <= 1 {
		panic("types: variable declared outside any scope")
	}
	return t.scopes[len(t.scopes)-1]
}

// lookup searches the scopes from innermost to outermost.
func (t *Table) lookup(name string) (SymbolID, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if id, ok := t.scopes[i].Lookup(name); ok {
			return id, true
		}
	}
	return NoSymbol, false
}

// AddLocalVar declares the variable name with the type named by typ in the
// innermost scope. A name already bound in that same scope yields a
// VarRedeclared diagnostic citing the first declaration; bindings in outer
// scopes are shadowed. An unknown type yields TypeUnknown and binds nothing.
func (t *Table) AddLocalVar(name, typ syntax.Token) (SymbolID, error) {
	scope := t.current()
	if prev, ok := scope.Lookup(name.Lexeme); ok {
		return NoSymbol, syntax.NewDiagnostic(name.Line(), &syntax.VarRedeclared{
			OriginalLine: t.symbols[prev].Line,
			Name:         name.Lexeme,
		})
	}

	def, err := t.LookupType(typ)
	if err != nil {
		return NoSymbol, err
	}

	id := t.newSymbol(SymbolInfo{
		Name: name.Lexeme,
		Line: name.Line(),
		Kind: &VarKind{Type: def},
	})
	scope.Insert(name.Lexeme, id)
	return id, nil
}

// LookupVar resolves name to the innermost visible variable. If no scope
// binds the name, or the binding is not a variable, the error is a
// VarUnknown diagnostic.
func (t *Table) LookupVar(name syntax.Token) (SymbolID, error) {
	id, ok := t.lookup(name.Lexeme)
	if !ok || !t.symbols[id].IsVar() {
		return NoSymbol, syntax.NewDiagnostic(name.Line(), &syntax.VarUnknown{Name: name.Lexeme})
	}
	return id, nil
}

// LookupType resolves name to the type it denotes, or a TypeUnknown
// diagnostic.
func (t *Table) LookupType(name syntax.Token) (Type, error) {
	id, ok := t.lookup(name.Lexeme)
	if ok {
		if k, isType := t.symbols[id].Kind.(*TypeKind); isType {
			return k.Def, nil
		}
	}
	return nil, syntax.NewDiagnostic(name.Line(), &syntax.TypeUnknown{Name: name.Lexeme})
}

// Info returns the symbol with the given id. It panics if id was not
// issued by this table.
func (t *Table) Info(id SymbolID) *SymbolInfo {
	return &t.symbols[id]
}

// Len returns the number of symbols issued, predeclared ones included.
func (t *Table) Len() int {
	return len(t.symbols)
}

// String returns the open scopes, outermost first, for debugging.
func (t *Table) String() string {
	var buf strings.Builder
	for i, s := range t.scopes {
		buf.WriteString(strings.Repeat("  ", i))
		buf.WriteString(strings.ReplaceAll(strings.TrimSuffix(s.String(), "\n"), "\n", "\n"+strings.Repeat("  ", i)))
		buf.WriteString("\n")
	}
	return buf.String()
}
