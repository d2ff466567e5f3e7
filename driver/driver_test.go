package driver

import (
	"context"
	"fmt"
	"testing"

	"github.com/sidblab/gss/cluster"
	"github.com/sidblab/gss/kernel"
	"github.com/sidblab/gss/sidb"
)

// testLayout is a minimal sidb.Layout backed by a fixed position table, used
// throughout this file so each test can describe a small concrete layout
// without pulling in package layout's YAML loading.
type testLayout struct {
	sites  []sidb.Site
	posNM  map[sidb.Site][2]float64
	params kernel.PhysicalParameters
}

func (l *testLayout) NumSites() int      { return len(l.sites) }
func (l *testLayout) Sites() []sidb.Site { return l.sites }
func (l *testLayout) PositionNM(s sidb.Site) (float64, float64) {
	p := l.posNM[s]
	return p[0], p[1]
}
func (l *testLayout) Parameters() kernel.PhysicalParameters { return l.params }

func defaultParams() kernel.PhysicalParameters {
	return kernel.PhysicalParameters{
		EpsilonR:          5.6,
		LambdaTFNm:        5.0,
		MuMinusEV:         -0.32,
		U:                 0.59,
		GlobalPotentialEV: 0,
		Base:              int(sidb.Base2),
	}
}

func lineLayout(n int, spacingNM float64) *testLayout {
	l := &testLayout{posNM: make(map[sidb.Site][2]float64), params: defaultParams()}
	for i := 0; i < n; i++ {
		s := sidb.Site(i)
		l.sites = append(l.sites, s)
		l.posNM[s] = [2]float64{float64(i) * spacingNM, 0}
	}
	return l
}

func TestRunEmptyLayout(t *testing.T) {
	res, err := Run(context.Background(), lineLayout(0, 1), Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.TopCluster.ChargeSpace().Len() != 1 {
		t.Fatalf("expected exactly one surviving multiset for an empty layout, got %d", res.TopCluster.ChargeSpace().Len())
	}
	if res.MaximumTopLevelMultisets != 1 {
		t.Fatalf("expected maximum of 1 for N=0, got %d", res.MaximumTopLevelMultisets)
	}
}

func TestRunSingleSite(t *testing.T) {
	res, err := Run(context.Background(), lineLayout(1, 1), Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.TopCluster.ChargeSpace().Len() == 0 {
		t.Fatal("P1 violated: no multiset survived for a single site")
	}
	// defaultParams fixes Base2 (no Positive), so a single site has only
	// {Negative} or {Neutral} to choose from: N+1 = 2, not the base-3 (N+1)(N+2)/2 = 3.
	if got, want := res.MaximumTopLevelMultisets, uint64(2); got != want {
		t.Fatalf("MaximumTopLevelMultisets = %d, want %d", got, want)
	}
}

// TestRunConverges exercises the full outer loop (several merge-ups) over a
// small multi-site layout and checks the P1/P2/P4 invariants spec.md
// section 8 names: at least one surviving multiset, every surviving
// multiset's size equal to the number of sites, and the survivor count
// never exceeding the maximum.
func TestRunConverges(t *testing.T) {
	lyt := lineLayout(5, 0.5)
	res, err := Run(context.Background(), lyt, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	top := res.TopCluster
	if top.Size() != lyt.NumSites() {
		t.Fatalf("top cluster covers %d sites, want %d", top.Size(), lyt.NumSites())
	}
	if top.ChargeSpace().Len() == 0 {
		t.Fatal("P1 violated: no multiset survived at the root")
	}
	maxTop := res.MaximumTopLevelMultisets
	if uint64(top.ChargeSpace().Len()) > maxTop {
		t.Fatalf("P4 violated: %d survivors exceeds maximum %d", top.ChargeSpace().Len(), maxTop)
	}
	for _, m := range top.ChargeSpace().All() {
		if m.Size() != lyt.NumSites() {
			t.Fatalf("P2 violated: multiset %+v has size %d, want %d", m, m.Size(), lyt.NumSites())
		}
	}
	if res.Stats.NbMergeUps != lyt.NumSites()-1 {
		t.Fatalf("expected %d merge-ups for %d sites, got %d", lyt.NumSites()-1, lyt.NumSites(), res.Stats.NbMergeUps)
	}
}

func TestRunParallelMatchesRun(t *testing.T) {
	lyt := lineLayout(4, 0.5)
	seq, err := Run(context.Background(), lyt, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	par, err := RunParallel(context.Background(), lyt, Options{})
	if err != nil {
		t.Fatalf("RunParallel: %v", err)
	}
	if seq.TopCluster.ChargeSpace().Len() != par.TopCluster.ChargeSpace().Len() {
		t.Fatalf("sequential and parallel runs disagree on survivor count: %d vs %d",
			seq.TopCluster.ChargeSpace().Len(), par.TopCluster.ChargeSpace().Len())
	}
	seqMs := make(map[string]bool)
	for _, m := range seq.TopCluster.ChargeSpace().All() {
		seqMs[multisetKey(m)] = true
	}
	for _, m := range par.TopCluster.ChargeSpace().All() {
		if !seqMs[multisetKey(m)] {
			t.Fatalf("parallel run surfaced a multiset %+v the sequential run did not", m)
		}
	}
}

func multisetKey(m cluster.Multiset) string {
	return fmt.Sprintf("%d,%d,%d", m.Neg, m.Neut, m.Pos)
}

func TestWitnessPartitioningOmitsFreeWitnesses(t *testing.T) {
	w := newWPState(cluster.Multiset{Neg: 1})
	w.neg[sidb.Site(0)] = true
	w.neg[sidb.Site(1)] = true
	w.pos[sidb.Site(1)] = true

	w.omitFreeWitnesses()

	if w.neg[sidb.Site(0)] {
		t.Fatal("free witness at site 0 should have been omitted")
	}
	if w.reqNeg != 0 {
		t.Fatalf("omitting a free witness should credit the requirement, got reqNeg=%d", w.reqNeg)
	}
	if !w.neg[sidb.Site(1)] {
		t.Fatal("contested witness at site 1 should remain, it also competes for positive")
	}
}

func TestWitnessPartitioningFindsDisjointAssignment(t *testing.T) {
	w := newWPState(cluster.Multiset{Neg: 1, Pos: 1})
	w.neg[sidb.Site(0)] = true
	w.neg[sidb.Site(1)] = true
	w.pos[sidb.Site(1)] = true

	if !w.findValidPartitioning() {
		t.Fatal("expected a valid disjoint assignment (site 0 -> negative, site 1 -> positive)")
	}
}

func TestWitnessPartitioningFailsWhenOversubscribed(t *testing.T) {
	w := newWPState(cluster.Multiset{Neg: 1, Pos: 1})
	w.neg[sidb.Site(0)] = true
	w.pos[sidb.Site(0)] = true

	if w.findValidPartitioning() {
		t.Fatal("a single site cannot simultaneously serve as both required witnesses")
	}
}
