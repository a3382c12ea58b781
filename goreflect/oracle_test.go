package goreflect

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"testing"

	"github.com/cottand/mdispatch/types"
	"github.com/stretchr/testify/assert"
)

type celsius float64

func (c celsius) String() string { return fmt.Sprintf("%.1fC", float64(c)) }

type failure struct{}

func (failure) Error() string  { return "failure" }
func (failure) String() string { return "failure" }

// conflicts with fmt.Stringer on the String method
type badStringer interface {
	String() int
}

var (
	intT       = Of[int]()
	floatT     = Of[float64]()
	celsiusT   = Of[celsius]()
	failureT   = Of[failure]()
	stringerT  = Of[fmt.Stringer]()
	errorT     = Of[error]()
	readerT    = Of[io.Reader]()
	rcT        = Of[io.ReadCloser]()
	badT       = Of[badStringer]()
	intSliceT  = Of[[]int]()
	intPointer = Of[*int]()
)

func TestIsSubtype(t *testing.T) {
	o := New()
	testCases := []struct {
		name       string
		sub, super types.Type
		expected   bool
	}{
		{"identical", intT, intT, true},
		{"distinct concrete", intT, floatT, false},
		{"named over underlying", celsiusT, floatT, false},
		{"implements", celsiusT, stringerT, true},
		{"does not implement", intT, stringerT, false},
		{"everything is any", intT, Any, true},
		{"interface embedding", rcT, readerT, true},
		{"interface widening is not narrowing", readerT, rcT, false},
		{"nil into interface", nil, errorT, true},
		{"nil into slice", nil, intSliceT, true},
		{"nil into pointer", nil, intPointer, true},
		{"nil into int", nil, intT, false},
		{"int into nil", intT, nil, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, o.IsSubtype(tc.sub, tc.super))
		})
	}
}

func TestOverlaps(t *testing.T) {
	o := New()
	testCases := []struct {
		name     string
		a, b     types.Type
		expected bool
	}{
		{"related", celsiusT, stringerT, true},
		{"unrelated concrete", intT, floatT, false},
		{"concrete not implementing", intT, stringerT, false},
		{"two interfaces", stringerT, errorT, true},
		{"conflicting methods still share nil", stringerT, badT, true},
		{"two pointers share nil", intPointer, Of[*string](), true},
		{"slice and map share nil", intSliceT, Of[map[string]int](), true},
		{"pointer and interface share nil", intPointer, stringerT, true},
		{"pointer and int", intPointer, intT, false},
		{"nil and interface", nil, stringerT, true},
		{"nil and int", nil, intT, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, o.Overlaps(tc.a, tc.b))
			assert.Equal(t, tc.expected, o.Overlaps(tc.b, tc.a))
		})
	}
}

func TestJoin(t *testing.T) {
	t.Run("related types join to the wider", func(t *testing.T) {
		o := New()
		assert.Equal(t, stringerT, o.Join(celsiusT, stringerT))
		assert.Equal(t, readerT, o.Join(readerT, rcT))
	})
	t.Run("unrelated types widen to any", func(t *testing.T) {
		o := New()
		assert.Equal(t, Any, o.Join(intT, floatT))
		assert.Equal(t, Any, o.Join(celsiusT, failureT))
	})
	t.Run("known interfaces narrow the join", func(t *testing.T) {
		o := New(WithInterfaces(reflect.TypeFor[any](), stringerT.(reflect.Type), intT.(reflect.Type)))
		assert.Equal(t, stringerT, o.Join(celsiusT, failureT))
		assert.Equal(t, Any, o.Join(intT, floatT))
	})
}

func TestTypeOf(t *testing.T) {
	o := New()
	assert.Equal(t, intT, o.TypeOf(3))
	assert.Equal(t, celsiusT, o.TypeOf(celsius(3)))
	assert.Nil(t, o.TypeOf(nil))

	var err error = failure{}
	assert.Equal(t, failureT, o.TypeOf(err), "dynamic, not static, type")
	assert.NotEqual(t, errorT, o.TypeOf(errors.New("x")))
}

func TestZeroValueOracle(t *testing.T) {
	o := &Oracle{}
	assert.Equal(t, Any, o.Join(celsiusT, failureT))

	WithInterfaces(stringerT.(reflect.Type))(o)
	assert.Equal(t, stringerT, o.Join(celsiusT, failureT))
}
