package driver

import (
	"github.com/sidblab/gss/cluster"
	"github.com/sidblab/gss/projection"
	"github.com/sidblab/gss/sidb"
)

func boundValue(b cluster.Bounds, dir projection.Direction) float64 {
	if dir == projection.Lower {
		return b.Lower
	}
	return b.Upper
}

func withBoundValue(b cluster.Bounds, dir projection.Direction, v float64) cluster.Bounds {
	if dir == projection.Lower {
		b.Lower = v
	} else {
		b.Upper = v
	}
	return b
}

// addToRecvBound adds diff to c's received external potential bound at site
// in direction dir, the additive update pattern used throughout sections 4.5
// and 4.7 ("update recv_ext_bounds[j] by next - current").
func addToRecvBound(c *cluster.Cluster, site sidb.Site, dir projection.Direction, diff float64) {
	b := c.RecvExtBounds[site]
	c.RecvExtBounds[site] = withBoundValue(b, dir, boundValue(b, dir)+diff)
}

var directions = [2]projection.Direction{projection.Lower, projection.Upper}
