package driver

import (
	"math"

	"github.com/sidblab/gss/cluster"
	"github.com/sidblab/gss/kernel"
	"github.com/sidblab/gss/projection"
	"github.com/sidblab/gss/sidb"
)

// selectMergeTarget picks the frontier cluster whose parent has the fewest
// sites, tie-broken by ascending parent uid, so a given frontier state
// always picks the same merge (spec.md section 4.5 step 0 and P6).
func selectMergeTarget(h *cluster.Hierarchy, fr *frontier) (*cluster.Cluster, bool) {
	var best *cluster.Cluster
	for _, c := range fr.List() {
		p, ok := h.ParentOf(c)
		if !ok {
			continue
		}
		if best == nil || p.Size() < best.Size() || (p.Size() == best.Size() && p.UID < best.UID) {
			best = p
		}
	}
	return best, best != nil
}

// deriveChildrenRecvBoundsWithoutSiblings is spec.md section 4.5 step 1:
// each child's received bound at its own sites is adjusted to exclude the
// contribution its sibling was making, since after the merge the sibling's
// contribution becomes internal to the parent rather than external to the
// child. The result is copied onto the parent's own received bounds too.
func deriveChildrenRecvBoundsWithoutSiblings(parent *cluster.Cluster) {
	left, right := parent.Children[0], parent.Children[1]
	for _, pair := range [2]*cluster.Cluster{left, right} {
		sibling := right
		if pair == right {
			sibling = left
		}
		for _, site := range pair.Sites {
			for _, dir := range directions {
				b := pair.RecvExtBounds[site]
				v := boundValue(b, dir)
				if ext, ok := sibling.ProjectionFor(site).Extremal(dir); ok {
					v -= ext.V
				}
				pair.RecvExtBounds[site] = withBoundValue(b, dir, v)
				parent.RecvExtBounds[site] = withBoundValue(parent.RecvExtBounds[site], dir, v)
			}
		}
	}
}

// verifyComposition is spec.md section 4.6.2: for each realization in comp,
// the intra-composition received bounds at its cluster's own sites are the
// sum, over every other realization, of that realization's projection onto
// the site tagged with its own assigned multiset. Each realization's
// multiset must then pass multisetBoundAnalysis under those bounds. The
// computed bounds are recorded on each realization for later reuse by
// computeMeetsForInternalBounds.
func verifyComposition(comp cluster.Composition, env kernel.StabilityEnvelope, threshold int) bool {
	for idx := range comp {
		child := comp[idx].Child
		bounds := make(map[sidb.Site]cluster.Bounds, len(child.Sites))
		for _, site := range child.Sites {
			var lower, upper float64
			for otherIdx, other := range comp {
				if otherIdx == idx {
					continue
				}
				store := other.Child.ProjectionFor(site)
				if p, ok := store.ForTag(other.M, projection.Lower); ok {
					lower += p.V
				}
				if p, ok := store.ForTag(other.M, projection.Upper); ok {
					upper += p.V
				}
			}
			bounds[site] = cluster.Bounds{Lower: lower, Upper: upper}
		}
		comp[idx].InternalBounds = bounds
		if !multisetBoundAnalysis(child, comp[idx].M, env, threshold, bounds) {
			return false
		}
	}
	return true
}

// constructMergedChargeSpace is spec.md section 4.5 step 2: every pairing of
// a left-child multiset with a right-child multiset is a candidate for the
// parent, kept only if its composition verifies.
func constructMergedChargeSpace(parent *cluster.Cluster, env kernel.StabilityEnvelope, threshold int) {
	left, right := parent.Children[0], parent.Children[1]
	for _, ml := range left.ChargeSpace().All() {
		for _, mr := range right.ChargeSpace().All() {
			comp := cluster.Composition{{Child: left, M: ml}, {Child: right, M: mr}}
			if !verifyComposition(comp, env, threshold) {
				continue
			}
			parent.ChargeSpace().InsertComposition(ml.Sum(mr), comp)
		}
	}
}

// mergePotProjBounds is spec.md section 4.5 step 3: parent's projection onto
// site (owned by some other frontier cluster) is populated with, for each of
// parent's multisets and each composition realizing it, the sum of the
// children's own per-multiset projections onto site; other's received bound
// at site is then corrected by the difference between parent's new combined
// extremal there and the children's old combined extremal.
func mergePotProjBounds(parent, other *cluster.Cluster, site sidb.Site) {
	for _, m := range parent.ChargeSpace().All() {
		for _, comp := range parent.ChargeSpace().Compositions(m) {
			for _, dir := range directions {
				sum := 0.0
				for _, real := range comp {
					if p, ok := real.Child.ProjectionFor(site).ForTag(real.M, dir); ok {
						sum += p.V
					}
				}
				parent.ProjectionFor(site).Add(projection.Projection[cluster.Multiset]{V: sum, Tag: m})
			}
		}
	}
	for _, dir := range directions {
		newExt, ok := parent.ProjectionFor(site).Extremal(dir)
		if !ok {
			continue
		}
		childrenSum := 0.0
		for _, child := range parent.Children {
			if ext, ok := child.ProjectionFor(site).Extremal(dir); ok {
				childrenSum += ext.V
			}
		}
		addToRecvBound(other, site, dir, newExt.V-childrenSum)
	}
}

// constructMergedPotentialProjections runs mergePotProjBounds over every
// site of every other frontier cluster (the children already removed from
// fr, parent not yet added).
func constructMergedPotentialProjections(parent *cluster.Cluster, others []*cluster.Cluster) {
	for _, other := range others {
		for _, site := range other.Sites {
			mergePotProjBounds(parent, other, site)
		}
	}
}

// computeMeetsForInternalBounds is spec.md section 4.5 step 4: for each of
// parent's multisets and each of parent's own sites, the intra-composition
// bound recorded by verifyComposition on whichever realization owns that
// site is combined across every composition realizing the multiset by the
// conservative extremum (min for the lower bound, max for the upper),
// resolving the open question of how multiple realizations of the same
// multiset should be reconciled into one self-projection.
func computeMeetsForInternalBounds(parent *cluster.Cluster) {
	for _, m := range parent.ChargeSpace().All() {
		for _, site := range parent.Sites {
			lower := math.Inf(1)
			upper := math.Inf(-1)
			found := false
			for _, comp := range parent.ChargeSpace().Compositions(m) {
				for _, real := range comp {
					b, ok := real.InternalBounds[site]
					if !ok {
						continue
					}
					if b.Lower < lower {
						lower = b.Lower
					}
					if b.Upper > upper {
						upper = b.Upper
					}
					found = true
				}
			}
			if !found {
				continue
			}
			parent.ProjectionFor(site).Add(projection.Projection[cluster.Multiset]{V: lower, Tag: m})
			parent.ProjectionFor(site).Add(projection.Projection[cluster.Multiset]{V: upper, Tag: m})
		}
	}
}

// mergeUp performs one full merge-up step (spec.md section 4.5): it removes
// the selected parent's two children from the frontier, derives their
// sibling-free received bounds, builds the parent's charge space and
// potential projections, and installs the parent in their place. It
// returns the merged cluster, or false if the frontier has already
// converged to a single cluster.
func mergeUp(h *cluster.Hierarchy, fr *frontier, env kernel.StabilityEnvelope, threshold int) (*cluster.Cluster, bool) {
	if fr.Len() <= 1 {
		return nil, false
	}
	parent, ok := selectMergeTarget(h, fr)
	if !ok {
		return nil, false
	}
	fr.Remove(parent.Children[0].UID)
	fr.Remove(parent.Children[1].UID)

	deriveChildrenRecvBoundsWithoutSiblings(parent)
	constructMergedChargeSpace(parent, env, threshold)
	constructMergedPotentialProjections(parent, fr.List())
	computeMeetsForInternalBounds(parent)

	fr.Add(parent)
	return parent, true
}
