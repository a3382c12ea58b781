// Package types holds the vocabulary shared by the dispatch engine: types as
// opaque handles supplied by a host type system, signatures over them, and the
// Oracle that answers subtype queries about them.
package types

// Type is a handle from the host type system.
//
// Implementations must be comparable: two handles denote the same type iff they
// are ==. reflect.Type satisfies Type, and so does *lattice.Named.
//
// A nil Type is the type of an untyped nil argument.
type Type interface {
	String() string
}

// Oracle is the host type system as seen by the dispatch engine.
// The engine never computes subtyping itself, it only asks.
type Oracle interface {
	// IsSubtype reports whether sub is a subtype of, or equal to, super
	IsSubtype(sub, super Type) bool

	// Overlaps reports whether some type exists that is a subtype-or-equal
	// of both a and b. It is true whenever IsSubtype holds in either direction.
	Overlaps(a, b Type) bool

	// Join returns the least upper bound of a and b: the most specific type
	// both are subtypes of.
	Join(a, b Type) Type

	// TypeOf returns the exact runtime type of v, as opposed to any static type
	// the caller may have had in mind.
	TypeOf(v any) Type
}

// Name renders t, including the nil type
func Name(t Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}
