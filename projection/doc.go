/*
Package projection implements the projection store of spec.md section 4.3:
for a cluster and one of its external sites, an ordered multiset of
potential projections, each tagged with the source cluster's multiset
configuration, supporting extremal and per-tag extremal queries plus mass
removal by tag.

Store is generic over the tag type so this package never needs to import
the cluster package: a Store[cluster.Multiset] is just one instantiation.
The implementation generalizes solver/watcher.go's per-literal slice-of-
clauses layout from a two-valued tag (a literal's polarity) to an arbitrary
comparable tag.
*/
package projection
