package lattice

import "fmt"

// Tagged values carry their lattice type with them
type Tagged interface {
	LatticeType() *Named
}

// Value pairs an arbitrary Go value with a lattice type
type Value struct {
	Type *Named
	V    any
}

// Tag returns v tagged as t
func Tag(t *Named, v any) Value {
	return Value{Type: t, V: v}
}

func (v Value) LatticeType() *Named {
	return v.Type
}

func (v Value) String() string {
	return fmt.Sprintf("%v:%v", v.V, v.Type)
}
