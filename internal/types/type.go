// Package types implements symbol resolution: the primitive types, the
// symbol store and the stack of lexical scopes.
package types

// Type is the interface implemented by all types.
type Type interface {
	// String returns the name of the type as written in source.
	String() string

	// Size returns the size of a value of the type in bytes.
	Size() int64

	aType()
}

// typ is embedded in all type implementations.
type typ struct{}

func (typ) aType() {}
