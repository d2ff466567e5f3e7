package sidb

import (
	"math"

	"github.com/sidblab/gss/kernel"
)

// Layout is the read-only input contract of the engine (spec.md section
// 6): a fixed number of sites, their positions in nanometers, and the
// physical parameters that govern stability. Implementations must be safe
// for the engine to read concurrently for the duration of a single run;
// the engine never mutates a Layout.
type Layout interface {
	// NumSites returns N, the number of dopant sites.
	NumSites() int
	// Sites returns every site index, in ascending order.
	Sites() []Site
	// PositionNM returns the (x, y) position of s in nanometers.
	PositionNM(s Site) (xNM, yNM float64)
	// Parameters returns the physical parameters for this layout.
	Parameters() kernel.PhysicalParameters
}

// DistanceNM returns the Euclidean distance, in nanometers, between a and b
// under lyt.
func DistanceNM(lyt Layout, a, b Site) float64 {
	ax, ay := lyt.PositionNM(a)
	bx, by := lyt.PositionNM(b)
	dx, dy := ax-bx, ay-by
	return math.Sqrt(dx*dx + dy*dy)
}
