package manifest

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/cottand/mdispatch/dispatch"
	"github.com/cottand/mdispatch/goreflect"
	"github.com/cottand/mdispatch/internal/goeval"
	"github.com/cottand/mdispatch/internal/log"
	"github.com/cottand/mdispatch/lattice"
	"github.com/cottand/mdispatch/types"
	"github.com/pkg/errors"
)

var logger = log.DefaultLogger.With("section", "manifest")

// ErrNeedsGoOracle is returned when evaluating Go values for a manifest
// whose types are not Go types
var ErrNeedsGoOracle = errors.New("only manifests using the go oracle can evaluate Go values")

// Program is a built manifest: its oracle and a namespace holding one
// dispatcher per dispatch declaration
type Program struct {
	Oracle    types.Oracle
	Namespace *dispatch.Namespace
	// Lattice is nil unless the manifest uses the lattice oracle
	Lattice *lattice.Lattice

	typeOf func(name string) (types.Type, error)
	// env is nil unless the manifest uses the go oracle
	env *goeval.Env
}

// Build declares f's types and registers its implementations.
// opts apply to every dispatcher, so a dispatch.WithSink here sees the
// ambiguity warnings the manifest triggers while it is being built.
func Build(f *File, opts ...dispatch.Option) (*Program, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	p := &Program{}
	var err error
	if f.Oracle == OracleGo {
		err = p.initGo(f)
	} else {
		err = p.initLattice(f)
	}
	if err != nil {
		return nil, err
	}
	p.Namespace = dispatch.NewNamespace(p.Oracle, opts...)

	for _, decl := range f.Dispatch {
		d := p.Namespace.Get(decl.Name)
		for i, impl := range decl.Impls {
			sig, err := p.Signature(impl.Signature)
			if err != nil {
				return nil, errors.Wrapf(err, "dispatch %s impl %d", decl.Name, i)
			}
			fn, err := p.implementation(decl.Name, sig, impl.Body)
			if err != nil {
				return nil, errors.Wrapf(err, "dispatch %s impl %d", decl.Name, i)
			}
			d.Add(sig, fn)
		}
		logger.Debug("built dispatcher", "dispatcher", decl.Name, "signatures", d.Len())
	}
	return p, nil
}

func (p *Program) initLattice(f *File) error {
	l := lattice.New()
	for _, decl := range f.Types {
		if _, err := l.DeclareNamed(decl.Name, decl.Parents...); err != nil {
			return err
		}
	}
	p.Lattice = l
	p.Oracle = l
	p.typeOf = func(name string) (types.Type, error) {
		t, ok := l.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("type %s: %w", name, lattice.ErrUnknownType)
		}
		return t, nil
	}
	return nil
}

func (p *Program) initGo(f *File) error {
	env, err := goeval.New(f.Imports...)
	if err != nil {
		return err
	}
	known := make([]reflect.Type, 0, len(f.Interfaces))
	for _, expr := range f.Interfaces {
		t, err := env.Type(expr)
		if err != nil {
			return err
		}
		known = append(known, t)
	}
	p.env = env
	p.Oracle = goreflect.New(goreflect.WithInterfaces(known...))
	p.typeOf = func(name string) (types.Type, error) {
		switch name {
		case "nil":
			return nil, nil
		case "any", "interface{}":
			return goreflect.Any, nil
		}
		return env.Type(name)
	}
	return nil
}

// Type looks a type up by its name in the manifest
func (p *Program) Type(name string) (types.Type, error) {
	return p.typeOf(strings.TrimSpace(name))
}

func (p *Program) Signature(names []string) (types.Signature, error) {
	sig := make(types.Signature, len(names))
	for i, name := range names {
		t, err := p.Type(name)
		if err != nil {
			return nil, err
		}
		sig[i] = t
	}
	return sig, nil
}

// Value evaluates a Go expression into an argument for a call
func (p *Program) Value(expr string) (any, error) {
	if p.env == nil {
		return nil, ErrNeedsGoOracle
	}
	return p.env.Value(expr)
}

func (p *Program) implementation(name string, sig types.Signature, body string) (dispatch.Func, error) {
	if body == "" {
		description := fmt.Sprintf("%s(%s)", name, sig)
		return func(args ...any) (any, error) {
			return description, nil
		}, nil
	}
	fn, err := p.env.Func(body)
	if err != nil {
		return nil, err
	}
	if got := reflect.TypeOf(fn).NumIn(); got != len(sig) {
		return nil, errors.Errorf("body takes %d parameters, signature has %d", got, len(sig))
	}
	_, impl := dispatch.Reflect(fn)
	return impl, nil
}
