package clusterstate

import (
	"github.com/sidblab/gss/cluster"
	"github.com/sidblab/gss/kernel"
	"github.com/sidblab/gss/projection"
	"github.com/sidblab/gss/sidb"
)

// InitialChargeSpace performs spec.md section 4.4: it computes the two
// extremal received-potential bounds at every site, seeds each leaf's
// charge space with the subset of {negative, neutral, positive} consistent
// with those extremes, and pre-populates each leaf's projection onto every
// other site with the projection corresponding to its own surviving charge
// states.
func InitialChargeSpace(h *cluster.Hierarchy, lyt sidb.Layout) {
	sites := lyt.Sites()
	if len(sites) == 0 {
		return
	}

	params := lyt.Parameters()
	env := kernel.NewStabilityEnvelope(params)
	base := sidb.Base(params.Base)

	distances := make(map[[2]sidb.Site]float64, len(sites)*len(sites))
	for _, i := range sites {
		for _, j := range sites {
			if i == j {
				continue
			}
			distances[[2]sidb.Site{i, j}] = sidb.DistanceNM(lyt, i, j)
		}
	}

	// rawLocalPotential sums q*V(d) over every site other than i, assuming
	// every other site holds charge state assumed.
	rawLocalPotential := func(i sidb.Site, assumed sidb.ChargeState) float64 {
		sum := 0.0
		for _, j := range sites {
			if j == i {
				continue
			}
			d := distances[[2]sidb.Site{i, j}]
			sum += float64(assumed.Int()) * kernel.CoulombPotential(d, params)
		}
		return sum
	}

	vMin := make(map[sidb.Site]float64, len(sites)) // most pro-negative bound
	vMax := make(map[sidb.Site]float64, len(sites)) // most pro-positive bound
	for _, i := range sites {
		vMin[i] = -rawLocalPotential(i, sidb.Positive) + params.GlobalPotentialEV
		vMax[i] = -rawLocalPotential(i, sidb.Negative) + params.GlobalPotentialEV
	}

	for _, leaf := range h.Leaves() {
		i := leaf.Sites[0]
		leaf.RecvExtBounds[i] = cluster.Bounds{Lower: vMin[i], Upper: vMax[i]}

		var surviving []sidb.ChargeState
		for _, cs := range base.States() {
			switch cs {
			case sidb.Negative:
				if !env.FailsNegative(vMin[i]) {
					surviving = append(surviving, cs)
				}
			case sidb.Positive:
				if !env.FailsPositive(vMax[i]) {
					surviving = append(surviving, cs)
				}
			case sidb.Neutral:
				if !env.UpperBoundFailsNeutral(vMax[i]) && !env.LowerBoundFailsNeutral(vMin[i]) {
					surviving = append(surviving, cs)
				}
			}
		}

		for _, cs := range surviving {
			leaf.ChargeSpace().Insert(singletonMultiset(cs))
		}

		for _, j := range sites {
			if j == i {
				continue
			}
			store := leaf.ProjectionFor(j)
			d := distances[[2]sidb.Site{i, j}]
			for _, cs := range surviving {
				store.Add(projection.Projection[cluster.Multiset]{
					V:   float64(cs.Int()) * kernel.CoulombPotential(d, params),
					Tag: singletonMultiset(cs),
				})
			}
		}
	}
}

func singletonMultiset(cs sidb.ChargeState) cluster.Multiset {
	switch cs {
	case sidb.Negative:
		return cluster.Multiset{Neg: 1}
	case sidb.Positive:
		return cluster.Multiset{Pos: 1}
	default:
		return cluster.Multiset{Neut: 1}
	}
}
