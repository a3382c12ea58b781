package goeval

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestType(t *testing.T) {
	env, err := New("fmt")
	require.NoError(t, err)

	testCases := []struct {
		expr     string
		expected reflect.Type
	}{
		{"int", reflect.TypeFor[int]()},
		{"float64", reflect.TypeFor[float64]()},
		{"[]string", reflect.TypeFor[[]string]()},
		{"fmt.Stringer", reflect.TypeFor[fmt.Stringer]()},
		{"error", reflect.TypeFor[error]()},
	}
	for _, tc := range testCases {
		t.Run(tc.expr, func(t *testing.T) {
			typ, err := env.Type(tc.expr)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, typ)
		})
	}

	_, err = env.Type("notAType")
	assert.Error(t, err)
}

func TestFunc(t *testing.T) {
	env, err := New()
	require.NoError(t, err)

	fn, err := env.Func("func(x int) int { return x + 1 }")
	require.NoError(t, err)
	inc, ok := fn.(func(int) int)
	require.True(t, ok, "got %T", fn)
	assert.Equal(t, 4, inc(3))

	fn, err = env.Func("func(x float64) float64 { return x - 1 }")
	require.NoError(t, err)
	dec, ok := fn.(func(float64) float64)
	require.True(t, ok, "got %T", fn)
	assert.Equal(t, 2.0, dec(3.0))
	assert.Equal(t, 4, inc(3), "a later literal does not replace an earlier one")

	_, err = env.Func("42")
	assert.Error(t, err)
}

func TestValue(t *testing.T) {
	env, err := New()
	require.NoError(t, err)

	testCases := []struct {
		expr     string
		expected any
	}{
		{"3", 3},
		{"3.0", 3.0},
		{`"s"`, "s"},
		{"true", true},
	}
	for _, tc := range testCases {
		t.Run(tc.expr, func(t *testing.T) {
			v, err := env.Value(tc.expr)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, v)
		})
	}
}
