/*
Package driver implements the fixpoint driver of spec.md section 4.5: the
outer loop alternating a pruning pass to fixpoint with one merge-up step,
the bound-analysis tests of section 4.6, and the removal-propagation
bookkeeping of section 4.7.

The engine is single-threaded and cooperative (spec.md section 5): Run
drives the whole computation on the calling goroutine. RunParallel offers
the optional parallel pruning pass section 5 explicitly permits, fanning
the per-cluster check out over an errgroup while serializing writes to
RecvExtBounds per receiver site.
*/
package driver
