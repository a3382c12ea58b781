package dispatch

import (
	"github.com/cottand/mdispatch/types"
)

// Func is an implementation callable through a Dispatcher
type Func func(args ...any) (any, error)

// Dispatcher is a dispatchable function: calling it runs whichever of its
// registered implementations best matches the runtime types of the arguments.
type Dispatcher struct {
	*Registry[Func]
}

func NewDispatcher(name string, oracle types.Oracle, opts ...Option) *Dispatcher {
	return &Dispatcher{Registry: New[Func](name, oracle, opts...)}
}

// Register returns a function that adds its argument under the signature ts,
// or under every signature ts abbreviates if it contains unions.
// It returns d, so that registrations chain:
//
//	d.Register(intT)(inc).Register(floatT)(dec)
func (d *Dispatcher) Register(ts ...types.Type) func(Func) *Dispatcher {
	sigs := types.Expand(ts)
	return func(f Func) *Dispatcher {
		for _, sig := range sigs {
			d.Add(sig, f)
		}
		return d
	}
}

// AddFunc registers a plain Go function, under the signature made of its
// parameter types. See Reflect.
func (d *Dispatcher) AddFunc(fn any) *Dispatcher {
	sig, f := Reflect(fn)
	d.Add(sig, f)
	return d
}

// Call resolves over the runtime types of args and forwards args to the
// chosen implementation, returning whatever it returns.
func (d *Dispatcher) Call(args ...any) (any, error) {
	impl, err := d.ResolveSignature(typesOf(d.Oracle(), args))
	if err != nil {
		return nil, err
	}
	return impl(args...)
}

func (d *Dispatcher) String() string {
	return "<dispatched " + d.Name() + ">"
}

func typesOf(oracle types.Oracle, args []any) types.Signature {
	sig := make(types.Signature, len(args))
	for i, arg := range args {
		sig[i] = oracle.TypeOf(arg)
	}
	return sig
}
