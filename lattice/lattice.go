// Package lattice implements a types.Oracle over a hierarchy declared by hand,
// rather than one derived from Go's own type system.
//
// Types may have several parents. Every type descends from the root type
// Object, so any two types have a join.
package lattice

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/cottand/mdispatch/types"
	"github.com/xtgo/set"
)

// TopName is the name of the root of every Lattice
const TopName = "Object"

var (
	ErrDuplicateType = errors.New("type already declared")
	ErrUnknownType   = errors.New("unknown type")
)

// Named is a type declared in a Lattice
type Named struct {
	name    string
	id      int
	owner   *Lattice
	parents []*Named
	// ancestors holds the ids of every supertype, this type included, sorted.
	// Ids grow with declaration order, so a type's own id is always last.
	ancestors []int
}

func (n *Named) String() string {
	return n.name
}

func (n *Named) Parents() []*Named {
	return n.parents
}

// depth grows strictly along the subtype relation
func (n *Named) depth() int {
	return len(n.ancestors)
}

func (n *Named) hasAncestor(id int) bool {
	i := sort.SearchInts(n.ancestors, id)
	return i < len(n.ancestors) && n.ancestors[i] == id
}

var _ types.Oracle = &Lattice{}

// Lattice is a set of declared types and the subtype relation between them.
// It is safe for concurrent use.
type Lattice struct {
	mu      sync.RWMutex
	nodes   []*Named
	byName  map[string]*Named
	goTypes map[reflect.Type]*Named
}

func New() *Lattice {
	l := &Lattice{
		byName:  make(map[string]*Named),
		goTypes: make(map[reflect.Type]*Named),
	}
	top := &Named{name: TopName, id: 0, owner: l, ancestors: []int{0}}
	l.nodes = append(l.nodes, top)
	l.byName[TopName] = top
	return l
}

// Top returns the root type every other type descends from
func (l *Lattice) Top() *Named {
	return l.nodes[0]
}

// Declare adds a new type with the given parents, or with Object as its only
// parent if none are given.
func (l *Lattice) Declare(name string, parents ...*Named) (*Named, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.byName[name]; ok {
		return nil, fmt.Errorf("declaring %s: %w", name, ErrDuplicateType)
	}
	if len(parents) == 0 {
		parents = []*Named{l.nodes[0]}
	}
	n := &Named{name: name, id: len(l.nodes), owner: l}
	for _, p := range parents {
		if p == nil || p.owner != l {
			return nil, fmt.Errorf("declaring %s: parent %v: %w", name, p, ErrUnknownType)
		}
		n.ancestors = union(n.ancestors, p.ancestors)
	}
	n.parents = parents
	n.ancestors = append(n.ancestors, n.id)

	l.nodes = append(l.nodes, n)
	l.byName[name] = n
	return n, nil
}

// DeclareNamed is Declare with parents looked up by name
func (l *Lattice) DeclareNamed(name string, parentNames ...string) (*Named, error) {
	parents := make([]*Named, 0, len(parentNames))
	for _, pName := range parentNames {
		p, ok := l.Lookup(pName)
		if !ok {
			return nil, fmt.Errorf("declaring %s: parent %s: %w", name, pName, ErrUnknownType)
		}
		parents = append(parents, p)
	}
	return l.Declare(name, parents...)
}

// MustDeclare is Declare but panics on error, for hierarchies known up-front
func (l *Lattice) MustDeclare(name string, parents ...*Named) *Named {
	n, err := l.Declare(name, parents...)
	if err != nil {
		panic(err)
	}
	return n
}

func (l *Lattice) Lookup(name string) (*Named, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n, ok := l.byName[name]
	return n, ok
}

// Types returns every declared type in declaration order, Object first
func (l *Lattice) Types() []*Named {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*Named, len(l.nodes))
	copy(out, l.nodes)
	return out
}

// Bind makes TypeOf report t for every Go value whose dynamic type is goType
func (l *Lattice) Bind(goType reflect.Type, t *Named) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.goTypes[goType] = t
}

func (l *Lattice) IsSubtype(sub, super types.Type) bool {
	if sub == super {
		return true
	}
	a, okA := sub.(*Named)
	b, okB := super.(*Named)
	if !okA || !okB || a.owner != l || b.owner != l {
		return false
	}
	return a.hasAncestor(b.id)
}

// Overlaps reports whether a and b have a common descendant, themselves included
func (l *Lattice) Overlaps(a, b types.Type) bool {
	if l.IsSubtype(a, b) || l.IsSubtype(b, a) {
		return true
	}
	na, okA := a.(*Named)
	nb, okB := b.(*Named)
	if !okA || !okB || na.owner != l || nb.owner != l {
		return false
	}
	return len(intersect(l.descendants(na), l.descendants(nb))) > 0
}

// Join returns the deepest common ancestor of a and b. When several common
// ancestors are equally deep, the one declared first wins.
func (l *Lattice) Join(a, b types.Type) types.Type {
	if l.IsSubtype(a, b) {
		return b
	}
	if l.IsSubtype(b, a) {
		return a
	}
	na, okA := a.(*Named)
	nb, okB := b.(*Named)
	if !okA || !okB || na.owner != l || nb.owner != l {
		return l.Top()
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	best := l.nodes[0]
	for _, id := range intersect(na.ancestors, nb.ancestors) {
		if c := l.nodes[id]; c.depth() > best.depth() {
			best = c
		}
	}
	return best
}

// TypeOf reports the type of a Tagged value, or the type bound to v's Go
// type. Values of unbound Go types have no lattice type and yield nil.
func (l *Lattice) TypeOf(v any) types.Type {
	if tagged, ok := v.(Tagged); ok {
		return tagged.LatticeType()
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if n, ok := l.goTypes[reflect.TypeOf(v)]; ok {
		return n
	}
	return nil
}

func (l *Lattice) descendants(n *Named) []int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []int
	for _, c := range l.nodes[n.id:] {
		if c.hasAncestor(n.id) {
			out = append(out, c.id)
		}
	}
	return out
}

// union and intersect take sorted, duplicate-free slices
func union(a, b []int) []int {
	data := make(sort.IntSlice, 0, len(a)+len(b))
	data = append(data, a...)
	data = append(data, b...)
	return data[:set.Union(data, len(a))]
}

func intersect(a, b []int) []int {
	data := make(sort.IntSlice, 0, len(a)+len(b))
	data = append(data, a...)
	data = append(data, b...)
	return data[:set.Inter(data, len(a))]
}
