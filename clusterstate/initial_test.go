package clusterstate

import (
	"testing"

	"github.com/sidblab/gss/cluster"
	"github.com/sidblab/gss/kernel"
	"github.com/sidblab/gss/sidb"
)

type pairLayout struct {
	spacingNM float64
	params    kernel.PhysicalParameters
}

func (p *pairLayout) NumSites() int      { return 2 }
func (p *pairLayout) Sites() []sidb.Site { return []sidb.Site{0, 1} }
func (p *pairLayout) PositionNM(s sidb.Site) (float64, float64) {
	if s == 0 {
		return 0, 0
	}
	return p.spacingNM, 0
}
func (p *pairLayout) Parameters() kernel.PhysicalParameters { return p.params }

func TestInitialChargeSpaceSeedsLeaves(t *testing.T) {
	lyt := &pairLayout{spacingNM: 0.5, params: kernel.PhysicalParameters{
		EpsilonR: 5.6, LambdaTFNm: 5.0, MuMinusEV: -0.32, U: 0.59, Base: int(sidb.Base3),
	}}
	h := cluster.BuildHierarchy(lyt)
	InitialChargeSpace(h, lyt)

	for _, leaf := range h.Leaves() {
		if leaf.ChargeSpace().Len() == 0 {
			t.Fatalf("leaf at site %d has no surviving charge state", leaf.Sites[0])
		}
		if _, ok := leaf.RecvExtBounds[leaf.Sites[0]]; !ok {
			t.Fatalf("leaf at site %d has no received-bound entry for its own site", leaf.Sites[0])
		}
	}
}

func TestInitialChargeSpaceEmptyLayoutIsNoop(t *testing.T) {
	h := cluster.BuildHierarchy(&emptyLayout{})
	InitialChargeSpace(h, &emptyLayout{})
	if h.Root.ChargeSpace().Len() != 1 {
		t.Fatalf("N=0 charge space should remain the singleton empty multiset, got %d entries", h.Root.ChargeSpace().Len())
	}
}

type emptyLayout struct{}

func (emptyLayout) NumSites() int                          { return 0 }
func (emptyLayout) Sites() []sidb.Site                      { return nil }
func (emptyLayout) PositionNM(sidb.Site) (float64, float64) { return 0, 0 }
func (emptyLayout) Parameters() kernel.PhysicalParameters   { return kernel.PhysicalParameters{} }
