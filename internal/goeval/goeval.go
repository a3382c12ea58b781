// Package goeval evaluates snippets of Go source with yaegi: type expressions
// into reflect.Type, func literals into callable funcs, and literals into values.
package goeval

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/pkg/errors"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// Env is an interpreter with the standard library available.
// It is not safe for concurrent use.
type Env struct {
	interp *interp.Interpreter
	// funcs counts the func literals bound so far, to name the next one
	funcs int
}

// New returns an Env where the given standard library packages, and reflect,
// are imported
func New(imports ...string) (*Env, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, errors.Wrap(err, "could not load Go interpreter")
	}
	e := &Env{interp: i}
	for _, pkg := range append([]string{"reflect"}, imports...) {
		if err := e.Import(pkg); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *Env) Import(pkg string) error {
	if _, err := e.interp.Eval("import " + strconv.Quote(pkg)); err != nil {
		return errors.Wrapf(err, "could not import %s", pkg)
	}
	return nil
}

// Type evaluates a Go type expression such as `int` or `fmt.Stringer`
func (e *Env) Type(expr string) (reflect.Type, error) {
	v, err := e.interp.Eval(fmt.Sprintf("reflect.TypeOf((*%s)(nil)).Elem()", expr))
	if err != nil {
		return nil, errors.Wrapf(err, "could not evaluate type %s", expr)
	}
	t, ok := v.Interface().(reflect.Type)
	if !ok {
		return nil, errors.Errorf("%s did not evaluate to a type", expr)
	}
	return t, nil
}

// Func evaluates a func literal and returns it as a Go func value.
// The literal is bound to a fresh variable first: evaluating a bare literal
// yields a pointer to the interpreter's closure rather than a func.
func (e *Env) Func(src string) (any, error) {
	name := fmt.Sprintf("mdispatchFunc%d", e.funcs)
	e.funcs++
	if _, err := e.interp.Eval(fmt.Sprintf("var %s = %s", name, src)); err != nil {
		return nil, errors.Wrap(err, "could not evaluate func body")
	}
	v, err := e.interp.Eval(name)
	if err != nil {
		return nil, errors.Wrap(err, "could not evaluate func body")
	}
	if v.Kind() == reflect.Pointer && v.Elem().Kind() == reflect.Func {
		v = v.Elem()
	}
	if v.Kind() != reflect.Func {
		return nil, errors.Errorf("body evaluated to a %s, not a func", v.Kind())
	}
	return v.Interface(), nil
}

// Value evaluates a Go expression, such as an argument given on the command line
func (e *Env) Value(expr string) (any, error) {
	v, err := e.interp.Eval(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "could not evaluate %s", expr)
	}
	if !v.IsValid() {
		return nil, nil
	}
	return v.Interface(), nil
}
