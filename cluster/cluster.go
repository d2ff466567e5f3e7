package cluster

import (
	"github.com/sidblab/gss/projection"
	"github.com/sidblab/gss/sidb"
)

// noParent marks the root: it has no parent to resolve.
const noParent = ^uint64(0)

// Bounds is a pair (lower, upper) of aggregate external potentials received
// at a site (spec.md section 3, recv_ext_bounds).
type Bounds struct {
	Lower, Upper float64
}

// Entry is one multiset in a cluster's charge space, together with every
// composition currently known to materialize it. A leaf's Entry always has
// a nil Compositions; a composite's Entry has at least one once its parent
// has been merged (spec.md P3).
type Entry struct {
	M            Multiset
	Compositions []Composition
}

// Realization is one child's contribution to a composition: the child
// cluster, the multiset it was assigned, and the intra-composition received
// potential bounds computed for it during composition verification (spec.md
// section 4.6.2), keyed by the child's own internal sites. InternalBounds is
// nil until verification runs.
type Realization struct {
	Child          *Cluster
	M              Multiset
	InternalBounds map[sidb.Site]Bounds
}

// Composition is a specific choice of one multiset per child of a
// composite cluster that sums to the parent's multiset.
type Composition []Realization

// Cluster is a node of the binary hierarchy (spec.md section 3). Clusters
// are allocated once by BuildHierarchy and live for the whole run; the
// parent link is a weak back-reference (a uid resolved through the owning
// Hierarchy), never a strong pointer, so the tree carries no reference
// cycles.
type Cluster struct {
	UID    uint64
	Sites  []sidb.Site // sorted ascending; singleton for a leaf
	Parent uint64      // resolved via Hierarchy.ParentOf; noParent for the root

	// Children is empty for a leaf, exactly two entries for a composite.
	Children []*Cluster

	charges *ChargeSpace

	// RecvExtBounds holds, for each internal site, the aggregate external
	// potential bounds received there (spec.md I3).
	RecvExtBounds map[sidb.Site]Bounds

	// Projections holds, for each external site, the ordered multiset of
	// potential projections this cluster contributes (spec.md section 4.3).
	Projections map[sidb.Site]*projection.Store[Multiset]
}

func newCluster(uid uint64, sites []sidb.Site) *Cluster {
	return &Cluster{
		UID:           uid,
		Sites:         sites,
		Parent:        noParent,
		charges:       newChargeSpace(),
		RecvExtBounds: make(map[sidb.Site]Bounds, len(sites)),
		Projections:   make(map[sidb.Site]*projection.Store[Multiset]),
	}
}

// IsLeaf is true iff c has no children.
func (c *Cluster) IsLeaf() bool {
	return len(c.Children) == 0
}

// Size returns |sites|.
func (c *Cluster) Size() int {
	return len(c.Sites)
}

// ChargeSpace returns c's charge space.
func (c *Cluster) ChargeSpace() *ChargeSpace {
	return c.charges
}

// HasSite is true iff s is one of c's internal sites.
func (c *Cluster) HasSite(s sidb.Site) bool {
	for _, x := range c.Sites {
		if x == s {
			return true
		}
	}
	return false
}

// ProjectionFor returns the projection store c maintains for external site
// j, creating an empty one on first access.
func (c *Cluster) ProjectionFor(j sidb.Site) *projection.Store[Multiset] {
	st, ok := c.Projections[j]
	if !ok {
		st = projection.NewStore[Multiset]()
		c.Projections[j] = st
	}
	return st
}
