package driver

import (
	"sort"

	"github.com/sidblab/gss/cluster"
)

// frontier is the current clustering of spec.md section 3: a set of
// clusters whose Sites partition the whole site set. It starts as the
// hierarchy's leaves and shrinks by two, grows by one, at each merge-up.
type frontier struct {
	members map[uint64]*cluster.Cluster
}

func newFrontier(leaves []*cluster.Cluster) *frontier {
	f := &frontier{members: make(map[uint64]*cluster.Cluster, len(leaves))}
	for _, c := range leaves {
		f.members[c.UID] = c
	}
	return f
}

func (f *frontier) Add(c *cluster.Cluster) { f.members[c.UID] = c }

func (f *frontier) Remove(uid uint64) { delete(f.members, uid) }

func (f *frontier) Len() int { return len(f.members) }

// List returns the frontier's members in ascending uid order, so that two
// runs over the same state visit clusters in the same order.
func (f *frontier) List() []*cluster.Cluster {
	out := make([]*cluster.Cluster, 0, len(f.members))
	for _, c := range f.members {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out
}
