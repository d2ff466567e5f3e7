/*
Package enumerate turns a fully pruned cluster hierarchy back into concrete
per-site charge assignments (spec.md section 6's downstream contract): it
walks the root's surviving multisets down through their compositions,
depth-first, the way explain/mus.go once walked a reduced problem's
clauses, and independently re-derives each resulting configuration against
the same composition records to confirm it is actually reachable.
*/
package enumerate
