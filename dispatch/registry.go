// Package dispatch selects, among implementations registered under different
// argument-type signatures, the one that best matches the runtime types of
// all the arguments of a call.
//
// Registrations are expected at setup time and resolutions on the hot path:
// a Registry resolves without locking, and caches what it resolved for each
// exact tuple of argument types until the next registration.
package dispatch

import (
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/benbjohnson/immutable"
	"github.com/cottand/mdispatch/internal/log"
	"github.com/cottand/mdispatch/specificity"
	"github.com/cottand/mdispatch/types"
)

type options struct {
	logger *slog.Logger
	sink   Sink
}

type Option func(*options)

// WithLogger sets the logger used for debug output and, unless WithSink is
// also given, for ambiguity warnings
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSink sends ambiguity warnings to sink instead of logging them
func WithSink(sink Sink) Option {
	return func(o *options) {
		o.sink = sink
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: log.DefaultLogger}
	for _, opt := range opts {
		opt(&o)
	}
	if o.sink == nil {
		o.sink = LogSink(o.logger.With("section", "dispatch"))
	}
	return o
}

// Stats counts resolutions since a Registry was created
type Stats struct {
	// Hits were answered from the cache
	Hits uint64
	// Misses were not, and either matched a signature exactly, needed a Scan,
	// or failed
	Misses uint64
	// Scans walked the specificity ordering
	Scans uint64
}

// Registry maps signatures to implementations of type F.
//
// It is safe for concurrent use. Add is serialised, and publishes a new
// snapshot of the registry once it is complete; resolutions read whichever
// snapshot is current, so they never see a half-done registration.
type Registry[F any] struct {
	name   string
	oracle types.Oracle
	logger *slog.Logger
	sink   Sink

	mu   sync.Mutex
	snap atomic.Pointer[snapshot[F]]

	hits, misses, scans atomic.Uint64
}

// snapshot is immutable once published, except for its cache
type snapshot[F any] struct {
	funcs *immutable.Map[types.Signature, F]
	// sigs holds the registered signatures in registration order
	sigs        []types.Signature
	order       []types.Signature
	ambiguities []specificity.Ambiguity

	// cache only ever holds resolutions computed against this snapshot.
	// Keys are argument types as observed in calls, which need not be registered signatures.
	cache atomic.Pointer[immutable.Map[types.Signature, F]]
}

func newSnapshot[F any]() *snapshot[F] {
	s := &snapshot[F]{funcs: types.NewSignatureMap[F]()}
	s.cache.Store(types.NewSignatureMap[F]())
	return s
}

func (s *snapshot[F]) remember(sig types.Signature, impl F) {
	for {
		current := s.cache.Load()
		if s.cache.CompareAndSwap(current, current.Set(sig, impl)) {
			return
		}
	}
}

// New returns an empty Registry named name, whose subtype queries go to oracle
func New[F any](name string, oracle types.Oracle, opts ...Option) *Registry[F] {
	o := buildOptions(opts)
	r := &Registry[F]{
		name:   name,
		oracle: oracle,
		logger: o.logger.With("section", "dispatch", "dispatcher", name),
		sink:   o.sink,
	}
	r.snap.Store(newSnapshot[F]())
	return r
}

func (r *Registry[F]) Name() string {
	return r.name
}

func (r *Registry[F]) Oracle() types.Oracle {
	return r.oracle
}

// Add registers impl under sig, replacing any implementation registered under
// an equal signature. A replaced signature keeps its original registration
// position.
//
// If the registration leaves ambiguous signature pairs behind, the registry's
// Sink is told about all of them once Add has completed.
func (r *Registry[F]) Add(sig types.Signature, impl F) {
	sig = types.Of(sig...)

	r.mu.Lock()
	current := r.snap.Load()
	sigs := current.sigs
	if _, replacing := current.funcs.Get(sig); !replacing {
		sigs = append(slices.Clip(sigs), sig)
	}
	next := newSnapshot[F]()
	next.funcs = current.funcs.Set(sig, impl)
	next.sigs = sigs
	next.order = specificity.Ordering(r.oracle, sigs)
	next.ambiguities = specificity.Ambiguities(r.oracle, sigs)
	r.snap.Store(next)
	r.mu.Unlock()

	r.logger.Debug("registered signature", "signature", sig.String(), "registered", len(sigs))
	if len(next.ambiguities) > 0 {
		r.sink(&AmbiguityWarning{Name: r.name, Ambiguities: slices.Clone(next.ambiguities)})
	}
}

// Resolve returns the implementation for a call whose arguments have exactly
// the types ts
func (r *Registry[F]) Resolve(ts ...types.Type) (F, error) {
	return r.ResolveSignature(ts)
}

// ResolveSignature is Resolve with the argument types already in a Signature.
//
// A cached resolution for the exact tuple wins, then an exactly equal
// registered signature, then the first signature of the same length in the
// specificity ordering that dominates every argument type. Failing all three,
// it returns a *NoMatchError.
func (r *Registry[F]) ResolveSignature(argTypes types.Signature) (F, error) {
	s := r.snap.Load()
	if impl, ok := s.cache.Load().Get(argTypes); ok {
		r.hits.Add(1)
		return impl, nil
	}
	r.misses.Add(1)

	sig, ok := r.match(s, argTypes)
	if !ok {
		var zero F
		return zero, &NoMatchError{Name: r.name, Types: types.Of(argTypes...)}
	}
	impl, _ := s.funcs.Get(sig)
	s.remember(types.Of(argTypes...), impl)
	return impl, nil
}

// Match returns the registered signature ResolveSignature would pick for
// argTypes. It neither reads nor fills the resolution cache.
func (r *Registry[F]) Match(argTypes types.Signature) (types.Signature, error) {
	sig, ok := r.match(r.snap.Load(), argTypes)
	if !ok {
		return nil, &NoMatchError{Name: r.name, Types: types.Of(argTypes...)}
	}
	return types.Of(sig...), nil
}

func (r *Registry[F]) match(s *snapshot[F], argTypes types.Signature) (types.Signature, bool) {
	if _, ok := s.funcs.Get(argTypes); ok {
		return argTypes, true
	}
	r.scans.Add(1)
	for _, sig := range s.order {
		if len(sig) == len(argTypes) && specificity.Supersedes(r.oracle, argTypes, sig) {
			return sig, true
		}
	}
	return nil, false
}

// Signatures returns the registered signatures in registration order
func (r *Registry[F]) Signatures() []types.Signature {
	return slices.Clone(r.snap.Load().sigs)
}

// Ordering returns the registered signatures in the order resolution tries them
func (r *Registry[F]) Ordering() []types.Signature {
	return slices.Clone(r.snap.Load().order)
}

// Ambiguities returns the ambiguous pairs among the registered signatures
func (r *Registry[F]) Ambiguities() []specificity.Ambiguity {
	return slices.Clone(r.snap.Load().ambiguities)
}

// Lookup returns the implementation registered under exactly sig, without resolving
func (r *Registry[F]) Lookup(sig types.Signature) (F, bool) {
	return r.snap.Load().funcs.Get(sig)
}

func (r *Registry[F]) Len() int {
	return len(r.snap.Load().sigs)
}

func (r *Registry[F]) Stats() Stats {
	return Stats{
		Hits:   r.hits.Load(),
		Misses: r.misses.Load(),
		Scans:  r.scans.Load(),
	}
}
