package types

import (
	"hash/maphash"
	"slices"
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/cottand/mdispatch/util"
)

// Signature is the ordered list of types an implementation expects, one per
// formal parameter. Signatures of different lengths are never compared.
type Signature []Type

// Of builds a Signature, copying ts
func Of(ts ...Type) Signature {
	sig := make(Signature, len(ts))
	copy(sig, ts)
	return sig
}

func (s Signature) Len() int {
	return len(s)
}

// Equal reports whether s and other have the same length and pointwise equal types
func (s Signature) Equal(other Signature) bool {
	return slices.Equal(s, other)
}

func (s Signature) String() string {
	return strings.Join(slices.Collect(util.MapIter(slices.Values(s), Name)), ", ")
}

var seed = maphash.MakeSeed()

// Hash is consistent with Equal. It panics if an element is not comparable,
// which breaks the contract of Type.
func (s Signature) Hash() uint32 {
	var h maphash.Hash
	h.SetSeed(seed)
	for _, t := range s {
		if t == nil {
			_ = h.WriteByte(0)
			continue
		}
		_ = h.WriteByte(1)
		maphash.WriteComparable(&h, t)
	}
	sum := h.Sum64()
	return uint32(sum ^ sum>>32)
}

var _ immutable.Hasher[Signature] = SignatureHasher{}

// SignatureHasher lets signatures key immutable maps
type SignatureHasher struct{}

func (SignatureHasher) Hash(key Signature) uint32 {
	return key.Hash()
}

func (SignatureHasher) Equal(a, b Signature) bool {
	return a.Equal(b)
}

// NewSignatureMap returns an empty immutable map keyed by Signature
func NewSignatureMap[V any]() *immutable.Map[Signature, V] {
	return immutable.NewMap[Signature, V](SignatureHasher{})
}
