package sidb

// Cell is a SiQAD coordinate: (x, y) dimer location plus a sub-dimer z in
// {0, 1}, the convention the original layout format uses.
type Cell struct {
	X, Y, Z int
}

// LatticeOrientation supplies the 2D -> 3D nanometer mapping function for a
// given crystal-lattice orientation. The engine body never inspects
// orientation directly; it is a capability parameter threaded through at
// layout-construction time only (Design Notes item 1).
type LatticeOrientation interface {
	// NMPosition returns the (x, y) position of c in nanometers from the
	// layout origin.
	NMPosition(c Cell) (xNM, yNM float64)
}

// lattice100 and lattice111 are the two crystal-lattice orientations the
// original implementation generates parallel versions for. The constants
// below are the inter-dimer spacings in angstrom, converted to nanometers.
type lattice100 struct{}

// Lattice100 is the (100) surface orientation.
var Lattice100 LatticeOrientation = lattice100{}

const (
	lat100A = 3.84 // dimer column pitch, angstrom
	lat100B = 7.68 // dimer row pitch, angstrom
)

func (lattice100) NMPosition(c Cell) (xNM, yNM float64) {
	latC := 2.25 // angstrom, sub-dimer horizontal offset
	xNM = (float64(c.X)*lat100A + float64(c.Z)*latC) * 0.1
	yNM = float64(c.Y) * lat100B * 0.1
	return xNM, yNM
}

type lattice111 struct{}

// Lattice111 is the (111) surface orientation.
var Lattice111 LatticeOrientation = lattice111{}

const (
	lat111A = 6.65 // angstrom
	lat111B = 3.84 // angstrom
)

func (lattice111) NMPosition(c Cell) (xNM, yNM float64) {
	latCx, latCy := 3.32, 1.92 // angstrom, sub-dimer offset on both axes
	xNM = (float64(c.X)*lat111A + float64(c.Z)*latCx) * 0.1
	yNM = (float64(c.Y)*lat111B + float64(c.Z)*latCy) * 0.1
	return xNM, yNM
}
