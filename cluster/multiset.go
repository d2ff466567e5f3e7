package cluster

import "github.com/sidblab/gss/sidb"

// Multiset is a cluster charge state: an unordered count tuple (n-, n0, n+)
// with n- + n0 + n+ = |sites| (spec.md section 3). It is a plain value type
// so it can be used directly as a map key; Encode/Decode additionally
// provide the base-(size+1) packed uint64 representation spec.md section 3
// calls for, for callers that need a compact single-word identifier (e.g.
// a composition's key in a log line, or interop with the encoded form the
// original implementation used).
type Multiset struct {
	Neg, Neut, Pos int
}

// Size returns n- + n0 + n+.
func (m Multiset) Size() int {
	return m.Neg + m.Neut + m.Pos
}

// Count returns the number of sites m assigns to cs.
func (m Multiset) Count(cs sidb.ChargeState) int {
	switch cs {
	case sidb.Negative:
		return m.Neg
	case sidb.Positive:
		return m.Pos
	default:
		return m.Neut
	}
}

// Sum returns m + other, summing componentwise. It is the operation used to
// form a parent's candidate multiset from one child multiset per child.
func (m Multiset) Sum(other Multiset) Multiset {
	return Multiset{Neg: m.Neg + other.Neg, Neut: m.Neut + other.Neut, Pos: m.Pos + other.Pos}
}

// singleton returns the Multiset for a single site held at cs.
func singleton(cs sidb.ChargeState) Multiset {
	m := Multiset{}
	switch cs {
	case sidb.Negative:
		m.Neg = 1
	case sidb.Positive:
		m.Pos = 1
	default:
		m.Neut = 1
	}
	return m
}

// Encode packs m into a uint64 using base-(size+1) positional encoding,
// where size is the number of sites the multiset is defined over. Decode
// reverses it.
func (m Multiset) Encode(size int) uint64 {
	base := uint64(size + 1)
	return uint64(m.Neg) + base*(uint64(m.Neut)+base*uint64(m.Pos))
}

// Decode reconstructs the Multiset packed by Encode for a cluster of the
// given size.
func Decode(code uint64, size int) Multiset {
	base := uint64(size + 1)
	neg := code % base
	code /= base
	neut := code % base
	code /= base
	pos := code
	return Multiset{Neg: int(neg), Neut: int(neut), Pos: int(pos)}
}

// MaximumTopLevelMultisets returns the number of distinct size-N multisets
// over base's charge-state alphabet (spec.md section 27, "all counts and
// bounds are base-aware"; P4 states the base-3 case). Under Base3 this is
// the trivariate count (N+1)(N+2)/2; under Base2, with Positive unavailable,
// it collapses to the bivariate count N+1.
func MaximumTopLevelMultisets(numberOfSites int, base sidb.Base) uint64 {
	n := uint64(numberOfSites)
	if base == sidb.Base2 {
		return n + 1
	}
	return ((n + 1) * (n + 2)) / 2
}
