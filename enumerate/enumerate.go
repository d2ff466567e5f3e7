package enumerate

import (
	"github.com/pkg/errors"

	"github.com/sidblab/gss/cluster"
	"github.com/sidblab/gss/sidb"
)

// Configuration is one concrete assignment of a charge state to every site.
type Configuration map[sidb.Site]sidb.ChargeState

// Enumerate performs a depth-first walk of top's charge space, expanding
// every surviving multiset through its compositions down to the leaves,
// and returns one Configuration per distinct concrete assignment. It
// mirrors explain/mus.go's iterative descent through a problem's structure,
// generalized here to a binary composition tree instead of a clause list.
func Enumerate(top *cluster.Cluster) ([]Configuration, error) {
	if top.ChargeSpace().Len() == 0 {
		return nil, errors.New("enumerate: empty charge space, nothing to enumerate")
	}
	var out []Configuration
	for _, m := range top.ChargeSpace().All() {
		out = append(out, expand(top, m)...)
	}
	return out, nil
}

func expand(c *cluster.Cluster, m cluster.Multiset) []Configuration {
	if c.IsLeaf() {
		return []Configuration{{c.Sites[0]: singletonChargeState(m)}}
	}
	var out []Configuration
	for _, comp := range c.ChargeSpace().Compositions(m) {
		left := expand(comp[0].Child, comp[0].M)
		right := expand(comp[1].Child, comp[1].M)
		for _, l := range left {
			for _, r := range right {
				out = append(out, mergeConfigurations(l, r))
			}
		}
	}
	return out
}

func singletonChargeState(m cluster.Multiset) sidb.ChargeState {
	switch {
	case m.Neg == 1:
		return sidb.Negative
	case m.Pos == 1:
		return sidb.Positive
	default:
		return sidb.Neutral
	}
}

func mergeConfigurations(a, b Configuration) Configuration {
	out := make(Configuration, len(a)+len(b))
	for site, cs := range a {
		out[site] = cs
	}
	for site, cs := range b {
		out[site] = cs
	}
	return out
}
