package dispatch

import (
	"maps"
	"slices"
	"sync"

	"github.com/cottand/mdispatch/types"
)

// Namespace groups dispatchers by name, so that registrations made in
// different places under the same name accumulate on one Dispatcher.
// All its dispatchers share one oracle and one set of options.
type Namespace struct {
	oracle types.Oracle
	opts   []Option

	mu          sync.Mutex
	dispatchers map[string]*Dispatcher
}

func NewNamespace(oracle types.Oracle, opts ...Option) *Namespace {
	return &Namespace{
		oracle:      oracle,
		opts:        opts,
		dispatchers: make(map[string]*Dispatcher),
	}
}

// Get returns the dispatcher called name, creating it if needed
func (ns *Namespace) Get(name string) *Dispatcher {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	d, ok := ns.dispatchers[name]
	if !ok {
		d = NewDispatcher(name, ns.oracle, ns.opts...)
		ns.dispatchers[name] = d
	}
	return d
}

// Lookup returns the dispatcher called name, if anything was registered under it
func (ns *Namespace) Lookup(name string) (*Dispatcher, bool) {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	d, ok := ns.dispatchers[name]
	return d, ok
}

// Register is Dispatcher.Register on the dispatcher called name
func (ns *Namespace) Register(name string, ts ...types.Type) func(Func) *Dispatcher {
	return ns.Get(name).Register(ts...)
}

// Names returns the names of the namespace's dispatchers, sorted
func (ns *Namespace) Names() []string {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	return slices.Sorted(maps.Keys(ns.dispatchers))
}
