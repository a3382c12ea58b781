package dispatch

import (
	"testing"

	"github.com/cottand/mdispatch/goreflect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespaceAccumulates(t *testing.T) {
	ns := NewNamespace(goreflect.New(), quiet())

	inc := ns.Register("step", intT)(func(args ...any) (any, error) {
		return args[0].(int) + 1, nil
	})
	dec := ns.Register("step", floatT)(func(args ...any) (any, error) {
		return args[0].(float64) - 1, nil
	})
	ns.Register("other", stringT)(func(args ...any) (any, error) {
		return args[0], nil
	})

	assert.Same(t, inc, dec)
	assert.Equal(t, 2, inc.Len())
	assert.Equal(t, []string{"other", "step"}, ns.Names())

	res, err := ns.Get("step").Call(1.5)
	require.NoError(t, err)
	assert.Equal(t, 0.5, res)
}

func TestNamespaceLookup(t *testing.T) {
	ns := NewNamespace(goreflect.New())
	_, ok := ns.Lookup("missing")
	assert.False(t, ok)

	created := ns.Get("made")
	found, ok := ns.Lookup("made")
	assert.True(t, ok)
	assert.Same(t, created, found)
	assert.Equal(t, "made", found.Name())
}

func TestNamespacesAreIsolated(t *testing.T) {
	a := NewNamespace(goreflect.New(), quiet())
	b := NewNamespace(goreflect.New(), quiet())
	a.Register("f", intT)(func(args ...any) (any, error) { return "a", nil })

	_, err := b.Get("f").Call(1)
	assert.ErrorIs(t, err, ErrNoMatch)
}
