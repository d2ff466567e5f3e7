package layout

import (
	"sort"

	"github.com/sidblab/gss/kernel"
	"github.com/sidblab/gss/sidb"
)

type concreteLayout struct {
	sites  []sidb.Site
	posNM  map[sidb.Site][2]float64
	params kernel.PhysicalParameters
}

func (l *concreteLayout) NumSites() int      { return len(l.sites) }
func (l *concreteLayout) Sites() []sidb.Site { return l.sites }
func (l *concreteLayout) PositionNM(s sidb.Site) (xNM, yNM float64) {
	p := l.posNM[s]
	return p[0], p[1]
}
func (l *concreteLayout) Parameters() kernel.PhysicalParameters { return l.params }

func (d *Document) orientation() sidb.LatticeOrientation {
	if d.Lattice == "111" {
		return sidb.Lattice111
	}
	return sidb.Lattice100
}

func (d *Document) base() sidb.Base {
	if d.Physical.Base == "2" {
		return sidb.Base2
	}
	return sidb.Base3
}

// ToLayout builds the sidb.Layout the engine consumes. Callers should call
// Validate first; ToLayout does not re-check constraints.
func (d *Document) ToLayout() sidb.Layout {
	orient := d.orientation()
	l := &concreteLayout{
		posNM: make(map[sidb.Site][2]float64, len(d.Sites)),
		params: kernel.PhysicalParameters{
			EpsilonR:          d.Physical.EpsilonR,
			LambdaTFNm:        d.Physical.LambdaTFNm,
			MuMinusEV:         d.Physical.MuMinusEV,
			U:                 d.Physical.U,
			GlobalPotentialEV: d.Physical.GlobalPotentialEV,
			Base:              int(d.base()),
		},
	}
	for i, spec := range d.Sites {
		s := sidb.Site(i)
		l.sites = append(l.sites, s)
		x, y := orient.NMPosition(sidb.Cell{X: spec.X, Y: spec.Y, Z: spec.Z})
		l.posNM[s] = [2]float64{x, y}
	}
	sort.Slice(l.sites, func(i, j int) bool { return l.sites[i] < l.sites[j] })
	return l
}
