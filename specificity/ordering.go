// Package specificity orders signatures from most to least specific and finds
// pairs of signatures that no call can choose between.
//
// For signatures a and b of equal length, a supersedes b when every a[i] is a
// subtype-or-equal of b[i]. This is the product of the per-position subtype
// relations, so it is only a partial order: an ordering is one linearization of
// it, with registration order breaking ties.
package specificity

import (
	"log/slog"

	"github.com/cottand/mdispatch/internal/log"
	"github.com/cottand/mdispatch/types"
)

var logger = log.DefaultLogger.With("section", "specificity")

// Supersedes reports whether a is at least as specific as b
func Supersedes(o types.Oracle, a, b types.Signature) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !o.IsSubtype(a[i], b[i]) {
			return false
		}
	}
	return true
}

// edge reports whether a must be tried before b.
// Only an inconsistent oracle makes two distinct signatures supersede each
// other, in which case the earlier registered one goes first.
func edge(o types.Oracle, a, b types.Signature, aIndex, bIndex int) bool {
	return Supersedes(o, a, b) && (!Supersedes(o, b, a) || aIndex < bIndex)
}

// Ordering returns sigs sorted so that every signature comes before all the
// signatures it supersedes. Among signatures the partial order does not
// separate, the one earlier in sigs comes first.
//
// sigs must not contain duplicates.
func Ordering(o types.Oracle, sigs []types.Signature) []types.Signature {
	n := len(sigs)
	// successors[i] holds the signatures that must come after sigs[i]
	successors := make([][]int, n)
	inDegree := make([]int, n)
	for i := range sigs {
		for j := range sigs {
			if i == j || len(sigs[i]) != len(sigs[j]) {
				continue
			}
			if edge(o, sigs[i], sigs[j], i, j) {
				successors[i] = append(successors[i], j)
				inDegree[j]++
			}
		}
	}

	// Kahn's algorithm, always taking the ready signature registered earliest
	ordered := make([]types.Signature, 0, n)
	done := make([]bool, n)
	for len(ordered) < n {
		next := -1
		for i := range sigs {
			if !done[i] && inDegree[i] == 0 {
				next = i
				break
			}
		}
		if next == -1 {
			break
		}
		done[next] = true
		ordered = append(ordered, sigs[next])
		for _, j := range successors[next] {
			inDegree[j]--
		}
	}

	if len(ordered) < n {
		// only reachable with an oracle whose subtype relation is not transitive
		logger.Warn("cycle in specificity graph, falling back to registration order",
			slog.Int("ordered", len(ordered)), slog.Int("total", n))
		for i := range sigs {
			if !done[i] {
				ordered = append(ordered, sigs[i])
			}
		}
	}
	return ordered
}
