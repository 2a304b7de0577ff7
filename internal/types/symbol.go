package types

import "fmt"

// SymbolID identifies a declared symbol. IDs are dense indexes into the
// Table's symbol store, assigned in declaration order and never reused.
type SymbolID int

// NoSymbol is the zero value returned alongside errors.
const NoSymbol SymbolID = -1

func (id SymbolID) String() string {
	return fmt.Sprintf("#%d", int(id))
}

// SymbolKind is what a symbol denotes: a *VarKind or a *TypeKind.
type SymbolKind interface {
	aSymbolKind()
}

// VarKind is a variable of type Type.
type VarKind struct {
	Type Type
}

// TypeKind is a type name bound to Def.
type TypeKind struct {
	Def Type
}

func (*VarKind) aSymbolKind()  {}
func (*TypeKind) aSymbolKind() {}

// SymbolInfo describes one declared symbol.
type SymbolInfo struct {
	Name string
	Line int // declaration line; 0 for predeclared symbols
	Kind SymbolKind
}

// IsVar reports whether the symbol is a variable.
func (s *SymbolInfo) IsVar() bool {
	_, ok := s.Kind.(*VarKind)
	return ok
}

// Type returns the type of a variable or the definition of a type name.
func (s *SymbolInfo) Type() Type {
	switch k := s.Kind.(type) {
	case *VarKind:
		return k.Type
	case *TypeKind:
		return k.Def
	}
	return nil
}
