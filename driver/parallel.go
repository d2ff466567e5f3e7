package driver

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/sidblab/gss/cluster"
	"github.com/sidblab/gss/clusterstate"
	"github.com/sidblab/gss/kernel"
	"github.com/sidblab/gss/sidb"
)

// pruneToFixpointParallel is pruneToFixpoint's concurrent variant, the
// optional parallel pruning pass spec.md section 5 permits. Each cluster's
// multisetBoundAnalysis pass only reads that cluster's own sites,
// projections, and received bounds, so the analysis half of a pass is
// data-parallel across the frontier with no locking; only the apply half
// (removalPropagation, which writes other clusters' received bounds) runs
// back on the calling goroutine, once the whole analysis half has
// completed.
func pruneToFixpointParallel(ctx context.Context, fr *frontier, env kernel.StabilityEnvelope, threshold int, skip *cluster.Cluster) (passes, removedTotal int, err error) {
	for {
		passes++
		members := fr.List()
		removedByCluster := make([][]cluster.Multiset, len(members))

		g, gctx := errgroup.WithContext(ctx)
		for i, c := range members {
			if skip != nil && c.UID == skip.UID {
				continue
			}
			i, c := i, c
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				removedByCluster[i] = pruneClusterOnce(c, env, threshold)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return passes, removedTotal, err
		}

		fixpoint := true
		for i, c := range members {
			removed := removedByCluster[i]
			if len(removed) == 0 {
				continue
			}
			fixpoint = false
			for _, m := range removed {
				removalPropagation(c, fr, m)
				c.ChargeSpace().Remove(m)
				removedTotal++
			}
		}
		if fixpoint {
			return passes, removedTotal, nil
		}
	}
}

// RunParallel is Run with the pruning passes parallelized across the
// current frontier. The outer loop, the merge-up step, and the apply half
// of each pruning pass remain sequential (spec.md section 5: merge-up
// mutates shared structure and so stays single-threaded).
func RunParallel(ctx context.Context, lyt sidb.Layout, opts Options) (Result, error) {
	start := time.Now()
	log := opts.logger()
	runID := uuid.New()
	threshold := opts.witnessThreshold()

	h := cluster.BuildHierarchy(lyt)
	clusterstate.InitialChargeSpace(h, lyt)
	env := kernel.NewStabilityEnvelope(lyt.Parameters())

	fr := newFrontier(h.Leaves())
	var stats Stats

	log.WithFields(logrus.Fields{"run_id": runID, "num_sites": lyt.NumSites()}).Debug("gss: starting parallel fixpoint drive")

	for {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		stats.NbOuterIterations++
		opts.Recorder.IncOuterIteration()

		passes, removed, err := pruneToFixpointParallel(ctx, fr, env, threshold, nil)
		stats.NbPruningPasses += passes
		stats.NbMultisetsPruned += removed
		opts.Recorder.AddPruningPasses(passes)
		opts.Recorder.AddMultisetsPruned(removed)
		if err != nil {
			return Result{}, err
		}

		parent, merged := mergeUp(h, fr, env, threshold)
		if !merged {
			break
		}
		stats.NbMergeUps++
		opts.Recorder.IncMergeUp()

		passes, removed, err = pruneToFixpointParallel(ctx, fr, env, threshold, parent)
		stats.NbPruningPasses += passes
		stats.NbMultisetsPruned += removed
		opts.Recorder.AddPruningPasses(passes)
		opts.Recorder.AddMultisetsPruned(removed)
		if err != nil {
			return Result{}, err
		}
	}

	top := fr.List()[0]
	maxTop := cluster.MaximumTopLevelMultisets(lyt.NumSites(), sidb.Base(lyt.Parameters().Base))
	pruned := maxTop - uint64(top.ChargeSpace().Len())

	opts.Recorder.SetTopLevelSize(top.ChargeSpace().Len())
	opts.Recorder.ObserveRuntimeSeconds(time.Since(start).Seconds())

	return Result{
		TopCluster:               top,
		Runtime:                  time.Since(start),
		PrunedTopLevelMultisets:  pruned,
		MaximumTopLevelMultisets: maxTop,
		RunID:                    runID,
		Stats:                    stats,
	}, nil
}
