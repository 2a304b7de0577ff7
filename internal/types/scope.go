package types

import (
	"fmt"
	"sort"
	"strings"
)

// Scope maps the names declared in one lexical region to their symbols.
type Scope struct {
	elems   map[string]SymbolID
	comment string // debugging comment (e.g., "universe", "block")
}

// NewScope returns an empty scope.
func NewScope(comment string) *Scope {
	return &Scope{elems: make(map[string]SymbolID), comment: comment}
}

// Comment returns the scope's comment (for debugging).
func (s *Scope) Comment() string {
	return s.comment
}

// Lookup returns the symbol bound to name in this scope only.
func (s *Scope) Lookup(name string) (SymbolID, bool) {
	id, ok := s.elems[name]
	return id, ok
}

// Insert binds name to id. If name is already bound in this scope the
// existing binding is kept and returned with ok == false.
func (s *Scope) Insert(name string, id SymbolID) (existing SymbolID, ok bool) {
	if prev, found := s.elems[name]; found {
		return prev, false
	}
	s.elems[name] = id
	return id, true
}

// removeFrom unbinds every name bound to a symbol with ID id or later.
func (s *Scope) removeFrom(id SymbolID) {
	for name, bound := range s.elems {
		if bound >= id {
			delete(s.elems, name)
		}
	}
}

// Names returns the names bound in the scope, sorted.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.elems))
	for name := range s.elems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of names bound in the scope.
func (s *Scope) Len() int {
	return len(s.elems)
}

// String returns a string representation of the scope for debugging.
func (s *Scope) String() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "scope %s {\n", s.comment)
	for _, name := range s.Names() {
		fmt.Fprintf(&buf, "  %s: %s\n", name, s.elems[name])
	}
	buf.WriteString("}\n")
	return buf.String()
}
