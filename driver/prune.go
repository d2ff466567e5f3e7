package driver

import (
	"sort"

	"github.com/sidblab/gss/cluster"
	"github.com/sidblab/gss/kernel"
	"github.com/sidblab/gss/projection"
	"github.com/sidblab/gss/sidb"
)

// receivedPotentialBounds returns the aggregate received-potential bounds a
// cluster's site would see were its cluster assigned multiset m, per
// spec.md section 4.3: the site's own projection entry tagged m (the
// composition-internal "meet" projection for a composite, zero for a leaf)
// plus the site's external received bounds. When internal is non-nil
// (composition verification, spec.md section 4.6.2) the self term comes
// from internal instead of from c's own projection store.
func receivedPotentialBounds(c *cluster.Cluster, site sidb.Site, m cluster.Multiset, internal map[sidb.Site]cluster.Bounds) cluster.Bounds {
	ext := c.RecvExtBounds[site]
	if internal != nil {
		b := internal[site]
		return cluster.Bounds{Lower: b.Lower + ext.Lower, Upper: b.Upper + ext.Upper}
	}
	store := c.ProjectionFor(site)
	lower := ext.Lower
	if p, ok := store.ForTag(m, projection.Lower); ok {
		lower += p.V
	}
	upper := ext.Upper
	if p, ok := store.ForTag(m, projection.Upper); ok {
		upper += p.V
	}
	return cluster.Bounds{Lower: lower, Upper: upper}
}

// wpState is the witness-partitioning state of spec.md section 4.6.1: for
// a candidate multiset m, the sets of sites that could individually serve
// as a negative, positive, or neutral witness, and the number of each
// still required. A site may sit in more than one set at once.
type wpState struct {
	neg, pos, neut     map[sidb.Site]bool
	reqNeg, reqPos, reqNeut int
}

func newWPState(m cluster.Multiset) *wpState {
	return &wpState{
		neg: make(map[sidb.Site]bool), pos: make(map[sidb.Site]bool), neut: make(map[sidb.Site]bool),
		reqNeg: m.Neg, reqPos: m.Pos, reqNeut: m.Neut,
	}
}

func (w *wpState) sortedRole(role map[sidb.Site]bool) []sidb.Site {
	out := make([]sidb.Site, 0, len(role))
	for s := range role {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// omitFreeWitnesses drops, from each role's set, every site that does not
// also appear in either of the other two roles: such a "free" witness has
// no competing use, so it can be credited toward its role's requirement
// immediately and removed from further backtracking search (spec.md
// section 4.6.1, mirroring the original's omit_free_witnesses).
func (w *wpState) omitFreeWitnesses() {
	type roleSpec struct {
		set        map[sidb.Site]bool
		required   *int
		competingA map[sidb.Site]bool
		competingB map[sidb.Site]bool
	}
	roles := []roleSpec{
		{w.neg, &w.reqNeg, w.pos, w.neut},
		{w.pos, &w.reqPos, w.neg, w.neut},
		{w.neut, &w.reqNeut, w.neg, w.pos},
	}
	for _, r := range roles {
		for _, s := range w.sortedRole(r.set) {
			if r.competingA[s] || r.competingB[s] {
				continue
			}
			delete(r.set, s)
			*r.required--
		}
	}
}

// cardinalitySatisfied is the cheap test of spec.md section 4.6.1: each
// role's set must be at least as large as what it still needs.
func (w *wpState) cardinalitySatisfied() bool {
	return len(w.neg) >= w.reqNeg && len(w.pos) >= w.reqPos && len(w.neut) >= w.reqNeut
}

func (w *wpState) remove(s sidb.Site) (hadNeg, hadPos, hadNeut bool) {
	hadNeg, hadPos, hadNeut = w.neg[s], w.pos[s], w.neut[s]
	delete(w.neg, s)
	delete(w.pos, s)
	delete(w.neut, s)
	return
}

func (w *wpState) restore(s sidb.Site, hadNeg, hadPos, hadNeut bool) {
	if hadNeg {
		w.neg[s] = true
	}
	if hadPos {
		w.pos[s] = true
	}
	if hadNeut {
		w.neut[s] = true
	}
}

// findValidPartitioning performs the backtracking search of spec.md section
// 4.6.1, ordered negative before positive before neutral: it tries to
// assign each required witness a distinct site drawn from its role's set,
// a site used for one role no longer being available to another.
func (w *wpState) findValidPartitioning() bool {
	return w.assign(w.neg, w.reqNeg, w.assignPositive)
}

func (w *wpState) assignPositive() bool {
	return w.assign(w.pos, w.reqPos, w.assignNeutral)
}

func (w *wpState) assignNeutral() bool {
	return w.assign(w.neut, w.reqNeut, func() bool { return true })
}

func (w *wpState) assign(role map[sidb.Site]bool, remaining int, next func() bool) bool {
	if remaining == 0 {
		return next()
	}
	for _, s := range w.sortedRole(role) {
		hadNeg, hadPos, hadNeut := w.remove(s)
		if w.assign(role, remaining-1, next) {
			return true
		}
		w.restore(s, hadNeg, hadPos, hadNeut)
	}
	return false
}

// multisetBoundAnalysis is spec.md section 4.6.1: the cardinality test, the
// size-cutoff shortcut, and (below the cutoff) the full partition test.
// internal selects ANALYZE_COMPOSITION mode (section 4.6.2) when non-nil.
func multisetBoundAnalysis(c *cluster.Cluster, m cluster.Multiset, env kernel.StabilityEnvelope, threshold int, internal map[sidb.Site]cluster.Bounds) bool {
	w := newWPState(m)
	for _, site := range c.Sites {
		b := receivedPotentialBounds(c, site, m, internal)
		if m.Neg > 0 && !env.FailsNegative(b.Lower) {
			w.neg[site] = true
		}
		if m.Pos > 0 && !env.FailsPositive(b.Upper) {
			w.pos[site] = true
		}
		if m.Neut > 0 && !env.UpperBoundFailsNeutral(b.Upper) && !env.LowerBoundFailsNeutral(b.Lower) {
			w.neut[site] = true
		}
	}
	if !w.cardinalitySatisfied() {
		return false
	}
	if len(c.Sites) > threshold {
		return true
	}
	w.omitFreeWitnesses()
	return w.findValidPartitioning()
}

// pruneClusterOnce runs multisetBoundAnalysis over every multiset currently
// in c's charge space and returns those that fail it, including the last
// remaining one: an empty charge space is a legal outcome of pruning
// (spec.md section 4.6, "the engine may legally return a root whose charge
// space is empty after pruning"), not a state to protect against.
func pruneClusterOnce(c *cluster.Cluster, env kernel.StabilityEnvelope, threshold int) []cluster.Multiset {
	var removed []cluster.Multiset
	for _, m := range c.ChargeSpace().All() {
		if !multisetBoundAnalysis(c, m, env, threshold, nil) {
			removed = append(removed, m)
		}
	}
	return removed
}

// removalPropagation is spec.md section 4.7: once m is dropped from c's
// charge space, every other frontier cluster's received bound that relied
// on c's projection of m must be corrected, and c's own record of that
// projection discarded.
func removalPropagation(c *cluster.Cluster, fr *frontier, m cluster.Multiset) {
	for _, other := range fr.List() {
		if other.UID == c.UID {
			continue
		}
		for _, site := range other.Sites {
			store := c.ProjectionFor(site)
			for _, dir := range directions {
				cur, ok := store.Extremal(dir)
				if !ok || cur.Tag != m {
					continue
				}
				diff := -cur.V
				if next, ok := store.NextExtremal(dir); ok {
					diff = next - cur.V
				}
				addToRecvBound(other, site, dir, diff)
			}
			store.RemoveAll(m)
		}
	}
}

// pruneToFixpoint repeatedly runs a pruning pass over every frontier
// cluster except skip (the cluster just produced by a merge-up, exempted
// for its one optional pass per spec.md section 4.5 step 5) until no
// multiset is removed anywhere in a full pass. It returns the number of
// passes and the number of multisets removed in total.
func pruneToFixpoint(fr *frontier, env kernel.StabilityEnvelope, threshold int, skip *cluster.Cluster) (passes, removedTotal int) {
	for {
		passes++
		fixpoint := true
		for _, c := range fr.List() {
			if skip != nil && c.UID == skip.UID {
				continue
			}
			removed := pruneClusterOnce(c, env, threshold)
			if len(removed) == 0 {
				continue
			}
			fixpoint = false
			for _, m := range removed {
				removalPropagation(c, fr, m)
				c.ChargeSpace().Remove(m)
				removedTotal++
			}
		}
		if fixpoint {
			return passes, removedTotal
		}
	}
}
