package types

// BasicKind describes the kind of a primitive type.
type BasicKind int

const (
	Invalid BasicKind = iota

	Int // 32-bit signed integer
)

// Basic represents a primitive type.
type Basic struct {
	typ
	kind BasicKind
	name string
	size int64
}

// Kind returns the kind of the basic type.
func (b *Basic) Kind() BasicKind {
	return b.kind
}

// Name returns the source name of the basic type.
func (b *Basic) Name() string {
	return b.name
}

// Size implements Type.
func (b *Basic) Size() int64 {
	return b.size
}

// String implements Type.
func (b *Basic) String() string {
	return b.name
}

// Typ holds the primitive types, indexed by BasicKind.
// Typ[Invalid] is nil.
var Typ = []*Basic{
	Invalid: nil,
	Int:     {kind: Int, name: "int", size: 4},
}
