/*
Package clusterstate seeds the initial per-cluster state described in
spec.md section 4.4: the two extremal received-potential bounds at every
site, each leaf's initial charge space, and each leaf's initial
self-projection onto every other site.

It is the one place kernel, cluster, and sidb meet before the fixpoint
driver takes over.
*/
package clusterstate
