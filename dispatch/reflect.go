package dispatch

import (
	"fmt"
	"reflect"

	"github.com/cottand/mdispatch/types"
)

var errorType = reflect.TypeFor[error]()

// Reflect adapts fn, which must be a non-variadic func, into a Func, and
// returns the signature made of fn's parameter types. The types are
// reflect.Type, so the signature suits a goreflect.Oracle.
//
// fn may return nothing, a value, an error, or a value and an error.
// Untyped nil arguments are passed as the zero value of the parameter.
//
// Reflect panics if fn does not have one of these shapes.
func Reflect(fn any) (types.Signature, Func) {
	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func || t.IsVariadic() {
		panic(fmt.Sprintf("dispatch: cannot register %v, expected a non-variadic func", t))
	}
	switch {
	case t.NumOut() > 2:
		panic(fmt.Sprintf("dispatch: cannot register %v, too many results", t))
	case t.NumOut() == 2 && t.Out(1) != errorType:
		panic(fmt.Sprintf("dispatch: cannot register %v, second result must be error", t))
	}

	sig := make(types.Signature, t.NumIn())
	for i := range sig {
		sig[i] = t.In(i)
	}

	f := func(args ...any) (any, error) {
		in := make([]reflect.Value, len(args))
		for i, arg := range args {
			if arg == nil {
				in[i] = reflect.Zero(t.In(i))
			} else {
				in[i] = reflect.ValueOf(arg)
			}
		}
		out := v.Call(in)
		switch {
		case len(out) == 0:
			return nil, nil
		case len(out) == 1 && t.Out(0) == errorType:
			return nil, asError(out[0])
		case len(out) == 1:
			return out[0].Interface(), nil
		default:
			return out[0].Interface(), asError(out[1])
		}
	}
	return sig, f
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	return v.Interface().(error)
}
