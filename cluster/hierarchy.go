package cluster

import (
	"math"
	"sort"

	"github.com/sidblab/gss/sidb"
)

// Hierarchy is the binary tree over site indices produced by agglomerative
// clustering (spec.md section 4.2). It owns every Cluster for the whole
// run; Cluster.Parent is a uid resolved through ParentOf, never a strong
// pointer (Design Notes item 3).
type Hierarchy struct {
	Root  *Cluster
	byUID map[uint64]*Cluster
}

// Lookup resolves uid to its Cluster.
func (h *Hierarchy) Lookup(uid uint64) (*Cluster, bool) {
	c, ok := h.byUID[uid]
	return c, ok
}

// ParentOf resolves c's weak parent link.
func (h *Hierarchy) ParentOf(c *Cluster) (*Cluster, bool) {
	if c.Parent == noParent {
		return nil, false
	}
	return h.Lookup(c.Parent)
}

// Leaves returns every leaf cluster, in ascending site-index order.
func (h *Hierarchy) Leaves() []*Cluster {
	var leaves []*Cluster
	for _, c := range h.byUID {
		if c.IsLeaf() {
			leaves = append(leaves, c)
		}
	}
	sort.Slice(leaves, func(i, j int) bool { return leaves[i].Sites[0] < leaves[j].Sites[0] })
	return leaves
}

type agglomNode struct {
	c      *Cluster
	cx, cy float64
}

// BuildHierarchy performs agglomerative clustering over lyt's sites: at
// each step, the two active clusters with the minimum centroid distance
// are merged, with ties broken deterministically by ascending uid pair
// (spec.md section 4.2 requires determinism for a given layout but leaves
// the specific linkage a design choice; this engine uses centroid linkage).
func BuildHierarchy(lyt sidb.Layout) *Hierarchy {
	sites := lyt.Sites()
	byUID := make(map[uint64]*Cluster)

	if len(sites) == 0 {
		root := newCluster(0, nil)
		root.charges.Insert(Multiset{})
		byUID[0] = root
		return &Hierarchy{Root: root, byUID: byUID}
	}

	var nextUID uint64
	nodes := make([]*agglomNode, len(sites))
	for i, s := range sites {
		c := newCluster(nextUID, []sidb.Site{s})
		byUID[nextUID] = c
		x, y := lyt.PositionNM(s)
		nodes[i] = &agglomNode{c: c, cx: x, cy: y}
		nextUID++
	}

	for len(nodes) > 1 {
		bi, bj := 0, 1
		best := math.Inf(1)
		for i := 0; i < len(nodes); i++ {
			for j := i + 1; j < len(nodes); j++ {
				dx := nodes[i].cx - nodes[j].cx
				dy := nodes[i].cy - nodes[j].cy
				d := dx*dx + dy*dy
				if d < best || (d == best && lessPair(nodes[i].c, nodes[j].c, nodes[bi].c, nodes[bj].c)) {
					best, bi, bj = d, i, j
				}
			}
		}

		left, right := nodes[bi], nodes[bj]
		mergedSites := make([]sidb.Site, 0, len(left.c.Sites)+len(right.c.Sites))
		mergedSites = append(mergedSites, left.c.Sites...)
		mergedSites = append(mergedSites, right.c.Sites...)
		sort.Slice(mergedSites, func(i, j int) bool { return mergedSites[i] < mergedSites[j] })

		parent := newCluster(nextUID, mergedSites)
		nextUID++
		parent.Children = []*Cluster{left.c, right.c}
		left.c.Parent = parent.UID
		right.c.Parent = parent.UID
		byUID[parent.UID] = parent

		nl, nr := float64(len(left.c.Sites)), float64(len(right.c.Sites))
		ncx := (left.cx*nl + right.cx*nr) / (nl + nr)
		ncy := (left.cy*nl + right.cy*nr) / (nl + nr)

		// bj > bi always, remove the higher index first.
		nodes = append(nodes[:bj], nodes[bj+1:]...)
		nodes = append(nodes[:bi], nodes[bi+1:]...)
		nodes = append(nodes, &agglomNode{c: parent, cx: ncx, cy: ncy})
	}

	return &Hierarchy{Root: nodes[0].c, byUID: byUID}
}

// lessPair breaks a centroid-distance tie deterministically: the pair with
// the lexicographically smaller (min uid, max uid) wins.
func lessPair(a1, a2, b1, b2 *Cluster) bool {
	aLo, aHi := a1.UID, a2.UID
	if aHi < aLo {
		aLo, aHi = aHi, aLo
	}
	bLo, bHi := b1.UID, b2.UID
	if bHi < bLo {
		bLo, bHi = bHi, bLo
	}
	if aLo != bLo {
		return aLo < bLo
	}
	return aHi < bHi
}
