// Package goreflect implements a types.Oracle over Go's own types.
//
// A type is a subtype of another if they are identical, or if the other is an
// interface the first implements. Concrete types are therefore only ever
// related to themselves and to interfaces.
package goreflect

import (
	"reflect"

	"github.com/cottand/mdispatch/types"
	"github.com/hashicorp/go-set/v3"
)

// Any is the top of the Go type hierarchy as seen by this Oracle
var Any = reflect.TypeFor[any]()

var _ types.Oracle = &Oracle{}

// Oracle answers subtype queries with reflection. The zero value is ready to use.
type Oracle struct {
	// known holds the interfaces Join may answer with, besides Any
	known *set.Set[reflect.Type]
	// order keeps known in insertion order so Join is deterministic
	order []reflect.Type
}

type Option func(*Oracle)

// WithInterfaces lets Join return any of ifaces, when both types implement it,
// instead of widening straight to Any. Non-interface types are ignored.
func WithInterfaces(ifaces ...reflect.Type) Option {
	return func(o *Oracle) {
		if o.known == nil {
			o.known = set.New[reflect.Type](len(ifaces))
		}
		for _, iface := range ifaces {
			if iface == nil || iface.Kind() != reflect.Interface {
				continue
			}
			if o.known.Insert(iface) {
				o.order = append(o.order, iface)
			}
		}
	}
}

func New(opts ...Option) *Oracle {
	o := &Oracle{known: set.New[reflect.Type](0)}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Of returns the types.Type for T
func Of[T any]() types.Type {
	return reflect.TypeFor[T]()
}

func (o *Oracle) TypeOf(v any) types.Type {
	t := reflect.TypeOf(v)
	if t == nil {
		return nil
	}
	return t
}

func (o *Oracle) IsSubtype(sub, super types.Type) bool {
	if sub == super {
		return true
	}
	b, ok := super.(reflect.Type)
	if !ok {
		return false
	}
	if sub == nil {
		return nillable(b)
	}
	a, ok := sub.(reflect.Type)
	if !ok {
		return false
	}
	return b.Kind() == reflect.Interface && a.Implements(b)
}

// Overlaps is true for related types, and for two nillable types, since an
// untyped nil is a subtype of both. Concrete types share no other subtypes.
func (o *Oracle) Overlaps(a, b types.Type) bool {
	if o.IsSubtype(a, b) || o.IsSubtype(b, a) {
		return true
	}
	ta, okA := a.(reflect.Type)
	tb, okB := b.(reflect.Type)
	return okA && okB && nillable(ta) && nillable(tb)
}

// Join widens to the first most specific known interface that both a and b
// implement, or to Any.
func (o *Oracle) Join(a, b types.Type) types.Type {
	if o.IsSubtype(a, b) {
		return b
	}
	if o.IsSubtype(b, a) {
		return a
	}
	var best reflect.Type
	for _, iface := range o.order {
		if !o.IsSubtype(a, iface) || !o.IsSubtype(b, iface) {
			continue
		}
		if best == nil || (iface.Implements(best) && iface != best) {
			best = iface
		}
	}
	if best == nil {
		return Any
	}
	return best
}

// nillable reports whether an untyped nil can take type t
func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}
