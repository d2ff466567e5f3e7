package invariants_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sidblab/gss/cluster"
	"github.com/sidblab/gss/driver"
	"github.com/sidblab/gss/kernel"
	"github.com/sidblab/gss/sidb"
)

// chainLayout is a deterministic fixture shared by every spec in this file:
// N sites spaced evenly along a line, a physically ordinary parameter set.
type chainLayout struct {
	sites     []sidb.Site
	spacingNM float64
	params    kernel.PhysicalParameters
}

func newChainLayout(n int, spacingNM float64) *chainLayout {
	l := &chainLayout{spacingNM: spacingNM, params: kernel.PhysicalParameters{
		EpsilonR: 5.6, LambdaTFNm: 5.0, MuMinusEV: -0.32, U: 0.59, Base: int(sidb.Base3),
	}}
	for i := 0; i < n; i++ {
		l.sites = append(l.sites, sidb.Site(i))
	}
	return l
}

func (l *chainLayout) NumSites() int      { return len(l.sites) }
func (l *chainLayout) Sites() []sidb.Site { return l.sites }
func (l *chainLayout) PositionNM(s sidb.Site) (float64, float64) {
	return float64(s) * l.spacingNM, 0
}
func (l *chainLayout) Parameters() kernel.PhysicalParameters { return l.params }

var _ = Describe("the fixpoint driver", func() {
	var lyt *chainLayout

	BeforeEach(func() {
		lyt = newChainLayout(5, 0.5)
	})

	Describe("P4: top count", func() {
		It("matches (N+1)(N+2)/2 for base 3", func() {
			for n := 0; n <= 6; n++ {
				Expect(cluster.MaximumTopLevelMultisets(n, sidb.Base3)).To(Equal(uint64((n + 1) * (n + 2) / 2)))
			}
		})

		It("matches N+1 for base 2, where Positive is unavailable", func() {
			for n := 0; n <= 6; n++ {
				Expect(cluster.MaximumTopLevelMultisets(n, sidb.Base2)).To(Equal(uint64(n + 1)))
			}
		})
	})

	Describe("P1: soundness", func() {
		It("keeps the multiset a locally stable configuration maps to, and drops one no site can satisfy", func() {
			// Sites spaced far enough apart that the screened Coulomb
			// potential between any two is negligible relative to the
			// stability bands, so each site's (in)stability is governed by
			// the band edges alone. U is set sharply negative, pushing
			// mu+ far below every realistic received potential, so
			// FailsPositive is true everywhere and no site can ever serve
			// as a positive witness.
			far := newChainLayout(3, 200)
			far.params.MuMinusEV = -0.32
			far.params.U = -10

			res, err := driver.Run(context.Background(), far, driver.Options{})
			Expect(err).NotTo(HaveOccurred())

			top := res.TopCluster
			allNegative := cluster.Multiset{Neg: far.NumSites()}
			Expect(top.ChargeSpace().Contains(allNegative)).To(BeTrue(),
				"the all-negative multiset is a locally stable configuration here and must survive")

			for _, m := range top.ChargeSpace().All() {
				Expect(m.Pos).To(Equal(0),
					"multiset %+v names a positive site, but no site can satisfy positivity under these parameters", m)
			}
		})
	})

	Describe("P3: composition closure", func() {
		It("gives every surviving root multiset at least one composition whose child multisets are still on file", func() {
			res, err := driver.Run(context.Background(), lyt, driver.Options{})
			Expect(err).NotTo(HaveOccurred())

			top := res.TopCluster
			Expect(top.IsLeaf()).To(BeFalse(), "a 5-site layout's root should be composite")

			for _, m := range top.ChargeSpace().All() {
				comps := top.ChargeSpace().Compositions(m)
				Expect(comps).NotTo(BeEmpty(), "multiset %+v has no composition on file", m)
				for _, comp := range comps {
					for _, real := range comp {
						Expect(real.Child.ChargeSpace().Contains(real.M)).To(BeTrue(),
							"composition of %+v names a child multiset %+v no longer on file", m, real.M)
					}
				}
			}
		})
	})

	Describe("P6: monotone progress proxy", func() {
		It("performs exactly N-1 merge-ups for N sites", func() {
			res, err := driver.Run(context.Background(), lyt, driver.Options{})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Stats.NbMergeUps).To(Equal(lyt.NumSites() - 1))
		})
	})

	Describe("P5: idempotence", func() {
		It("produces the same survivor count across repeated runs of the same layout", func() {
			res1, err := driver.Run(context.Background(), lyt, driver.Options{})
			Expect(err).NotTo(HaveOccurred())
			res2, err := driver.Run(context.Background(), lyt, driver.Options{})
			Expect(err).NotTo(HaveOccurred())
			Expect(res1.TopCluster.ChargeSpace().Len()).To(Equal(res2.TopCluster.ChargeSpace().Len()))
			Expect(res1.Stats.NbMergeUps).To(Equal(res2.Stats.NbMergeUps))
		})
	})

	Describe("N=0 and N=1 edge cases", func() {
		It("handles an empty layout", func() {
			res, err := driver.Run(context.Background(), newChainLayout(0, 1), driver.Options{})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.MaximumTopLevelMultisets).To(Equal(uint64(1)))
			Expect(res.TopCluster.ChargeSpace().Len()).To(Equal(1))
		})

		It("handles a single site", func() {
			res, err := driver.Run(context.Background(), newChainLayout(1, 1), driver.Options{})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.MaximumTopLevelMultisets).To(Equal(uint64(3)))
			Expect(res.TopCluster.ChargeSpace().Len()).To(BeNumerically("<=", 3))
		})
	})
})
