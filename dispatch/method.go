package dispatch

import (
	"github.com/cottand/mdispatch/types"
)

// MethodFunc is an implementation of a method: it receives its receiver
// separately from the arguments dispatch happens on.
type MethodFunc[R any] func(recv R, args ...any) (any, error)

// MethodDispatcher dispatches on every argument but the receiver
type MethodDispatcher[R any] struct {
	*Registry[MethodFunc[R]]
}

func NewMethod[R any](name string, oracle types.Oracle, opts ...Option) *MethodDispatcher[R] {
	return &MethodDispatcher[R]{Registry: New[MethodFunc[R]](name, oracle, opts...)}
}

// Register is Dispatcher.Register for methods
func (m *MethodDispatcher[R]) Register(ts ...types.Type) func(MethodFunc[R]) *MethodDispatcher[R] {
	sigs := types.Expand(ts)
	return func(f MethodFunc[R]) *MethodDispatcher[R] {
		for _, sig := range sigs {
			m.Add(sig, f)
		}
		return m
	}
}

// Invoke resolves over the types of args alone and calls the chosen
// implementation with recv prepended
func (m *MethodDispatcher[R]) Invoke(recv R, args ...any) (any, error) {
	impl, err := m.ResolveSignature(typesOf(m.Oracle(), args))
	if err != nil {
		return nil, err
	}
	return impl(recv, args...)
}

// Bind captures recv, so the result can be called like a Dispatcher
func (m *MethodDispatcher[R]) Bind(recv R) *Bound[R] {
	return &Bound[R]{
		method: m,
		recv:   recv,
		owner:  m.Oracle().TypeOf(recv),
	}
}

func (m *MethodDispatcher[R]) String() string {
	return "<dispatched method " + m.Name() + ">"
}

// Bound is a MethodDispatcher with its receiver filled in
type Bound[R any] struct {
	method *MethodDispatcher[R]
	recv   R
	owner  types.Type
}

func (b *Bound[R]) Receiver() R {
	return b.recv
}

// Owner is the runtime type of the receiver at the time it was bound
func (b *Bound[R]) Owner() types.Type {
	return b.owner
}

func (b *Bound[R]) Call(args ...any) (any, error) {
	return b.method.Invoke(b.recv, args...)
}
