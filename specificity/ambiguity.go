package specificity

import (
	"github.com/cottand/mdispatch/types"
	"github.com/cottand/mdispatch/util"
)

// Ambiguity is a pair of signatures some call could match both of, with
// neither more specific than the other.
type Ambiguity struct {
	// Pair holds the earlier registered signature first
	Pair util.Pair[types.Signature, types.Signature]
	// Super is the signature suggested to make the overlap unambiguous
	Super types.Signature
}

// Consistent reports whether a and b have equal length and, at every
// position, some type could satisfy both.
func Consistent(o types.Oracle, a, b types.Signature) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !o.Overlaps(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Ambiguous reports whether a and b are consistent yet incomparable
func Ambiguous(o types.Oracle, a, b types.Signature) bool {
	return Consistent(o, a, b) && !Supersedes(o, a, b) && !Supersedes(o, b, a)
}

// SuperSignature joins a and b pointwise
func SuperSignature(o types.Oracle, a, b types.Signature) types.Signature {
	super := make(types.Signature, len(a))
	for i := range a {
		super[i] = o.Join(a[i], b[i])
	}
	return super
}

// Ambiguities returns the ambiguous pairs in sigs, in registration order.
//
// A pair is left out when some other signature in sigs supersedes both of its
// members, because that signature then wins every call the two could share.
func Ambiguities(o types.Oracle, sigs []types.Signature) []Ambiguity {
	var out []Ambiguity
	for i, a := range sigs {
		for _, b := range sigs[i+1:] {
			if !Ambiguous(o, a, b) || covered(o, sigs, a, b) {
				continue
			}
			out = append(out, Ambiguity{
				Pair:  util.NewPair(a, b),
				Super: SuperSignature(o, a, b),
			})
		}
	}
	if len(out) > 0 {
		logger.Debug("found ambiguities", "count", len(out))
	}
	return out
}

func covered(o types.Oracle, sigs []types.Signature, a, b types.Signature) bool {
	for _, c := range sigs {
		if c.Equal(a) || c.Equal(b) {
			continue
		}
		if Supersedes(o, c, a) && Supersedes(o, c, b) {
			return true
		}
	}
	return false
}
