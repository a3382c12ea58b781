package lattice

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// numeric tower plus a diamond:
//
//	        Object
//	      /   |    \
//	 Number  Text  Shape
//	   |       \   /
//	Integer   Label
//	   |
//	Natural
func newTestLattice(t *testing.T) *Lattice {
	t.Helper()
	l := New()
	number := l.MustDeclare("Number")
	integer := l.MustDeclare("Integer", number)
	l.MustDeclare("Natural", integer)
	text := l.MustDeclare("Text")
	shape := l.MustDeclare("Shape")
	l.MustDeclare("Label", text, shape)
	return l
}

func get(t *testing.T, l *Lattice, name string) *Named {
	t.Helper()
	n, ok := l.Lookup(name)
	require.True(t, ok, "type %s not declared", name)
	return n
}

func TestIsSubtype(t *testing.T) {
	l := newTestLattice(t)
	testCases := []struct {
		sub, super string
		expected   bool
	}{
		{"Integer", "Number", true},
		{"Natural", "Number", true},
		{"Natural", "Object", true},
		{"Number", "Number", true},
		{"Number", "Integer", false},
		{"Label", "Text", true},
		{"Label", "Shape", true},
		{"Text", "Shape", false},
		{"Integer", "Text", false},
	}
	for _, tc := range testCases {
		t.Run(tc.sub+" <: "+tc.super, func(t *testing.T) {
			assert.Equal(t, tc.expected, l.IsSubtype(get(t, l, tc.sub), get(t, l, tc.super)))
		})
	}
}

func TestOverlaps(t *testing.T) {
	l := newTestLattice(t)
	testCases := []struct {
		a, b     string
		expected bool
	}{
		{"Integer", "Number", true},
		{"Number", "Integer", true},
		{"Text", "Shape", true}, // Label
		{"Integer", "Text", false},
		{"Natural", "Label", false},
		{"Object", "Label", true},
	}
	for _, tc := range testCases {
		t.Run(tc.a+" & "+tc.b, func(t *testing.T) {
			assert.Equal(t, tc.expected, l.Overlaps(get(t, l, tc.a), get(t, l, tc.b)))
		})
	}
}

func TestJoin(t *testing.T) {
	l := newTestLattice(t)
	testCases := []struct {
		a, b     string
		expected string
	}{
		{"Integer", "Number", "Number"},
		{"Natural", "Integer", "Integer"},
		{"Integer", "Text", "Object"},
		{"Label", "Text", "Text"},
		{"Label", "Natural", "Object"},
		{"Natural", "Natural", "Natural"},
	}
	for _, tc := range testCases {
		t.Run(tc.a+" | "+tc.b, func(t *testing.T) {
			assert.Equal(t, tc.expected, l.Join(get(t, l, tc.a), get(t, l, tc.b)).String())
		})
	}
}

func TestJoinPrefersDeepestAncestor(t *testing.T) {
	l := New()
	a := l.MustDeclare("A")
	b := l.MustDeclare("B", a)
	c := l.MustDeclare("C")
	x := l.MustDeclare("X", b, c)
	y := l.MustDeclare("Y", b, c)

	// B and C are both minimal common ancestors, B is deeper
	assert.Equal(t, b, l.Join(x, y))
}

func TestDeclareErrors(t *testing.T) {
	l := New()
	_, err := l.Declare("Number")
	require.NoError(t, err)

	_, err = l.Declare("Number")
	assert.ErrorIs(t, err, ErrDuplicateType)

	_, err = l.Declare(TopName)
	assert.ErrorIs(t, err, ErrDuplicateType)

	foreign := New().MustDeclare("Foreign")
	_, err = l.Declare("Child", foreign)
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = l.DeclareNamed("Child", "Missing")
	assert.ErrorIs(t, err, ErrUnknownType)

	child, err := l.DeclareNamed("Child", "Number")
	require.NoError(t, err)
	assert.Equal(t, []*Named{get(t, l, "Number")}, child.Parents())
}

func TestTypeOf(t *testing.T) {
	l := newTestLattice(t)
	integer := get(t, l, "Integer")
	text := get(t, l, "Text")
	l.Bind(reflect.TypeFor[int](), integer)

	assert.Equal(t, integer, l.TypeOf(3))
	assert.Equal(t, text, l.TypeOf(Tag(text, 3)))
	assert.Nil(t, l.TypeOf("unbound"))
}

func TestTypesInDeclarationOrder(t *testing.T) {
	l := newTestLattice(t)
	var names []string
	for _, n := range l.Types() {
		names = append(names, n.String())
	}
	assert.Equal(t, []string{"Object", "Number", "Integer", "Natural", "Text", "Shape", "Label"}, names)
}
