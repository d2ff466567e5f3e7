/*
Package cluster implements the binary cluster hierarchy and the per-cluster
charge space of spec.md section 3/4.2: agglomerative clustering over site
positions, the packed (n-, n0, n+) multiset representation, and the
composition bookkeeping a composite cluster's charge space carries.

Clusters are created once by BuildHierarchy and live for the whole run
(spec.md section 3, Lifecycle). Parent links are weak: a child stores its
parent's uid and resolves it through the owning Hierarchy's uid index,
never a strong pointer, so the tree has no reference cycles (Design Notes
item 3).
*/
package cluster
