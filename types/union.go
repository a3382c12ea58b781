package types

import "strings"

// Union stands for any one of its alternatives at a single signature position.
// It only exists before registration: Expand turns a signature containing
// unions into the plain signatures it abbreviates.
type Union struct {
	alts []Type
}

// OneOf returns a Union of alts. Nested unions are flattened.
func OneOf(alts ...Type) *Union {
	u := &Union{}
	for _, alt := range alts {
		if nested, ok := alt.(*Union); ok {
			u.alts = append(u.alts, nested.alts...)
			continue
		}
		u.alts = append(u.alts, alt)
	}
	return u
}

func (u *Union) Alternatives() []Type {
	return u.alts
}

func (u *Union) String() string {
	names := make([]string, 0, len(u.alts))
	for _, alt := range u.alts {
		names = append(names, Name(alt))
	}
	return strings.Join(names, " | ")
}

// Expand returns every signature ts abbreviates, in lexicographic order of the
// alternatives (the leftmost position varies slowest).
//
//	Expand([int, OneOf(float64, string)]) == [[int, float64], [int, string]]
//
// An empty union makes the whole signature unsatisfiable, so nothing is returned.
func Expand(ts []Type) []Signature {
	out := []Signature{{}}
	for _, t := range ts {
		alts := []Type{t}
		if u, ok := t.(*Union); ok {
			alts = u.alts
		}
		next := make([]Signature, 0, len(out)*len(alts))
		for _, prefix := range out {
			for _, alt := range alts {
				sig := make(Signature, len(prefix), len(prefix)+1)
				copy(sig, prefix)
				next = append(next, append(sig, alt))
			}
		}
		out = next
	}
	return out
}
