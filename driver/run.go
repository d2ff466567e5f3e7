package driver

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sidblab/gss/cluster"
	"github.com/sidblab/gss/clusterstate"
	"github.com/sidblab/gss/kernel"
	"github.com/sidblab/gss/sidb"
)

// Run performs the whole fixpoint drive of spec.md section 4.5 over lyt: it
// builds the cluster hierarchy, seeds the initial charge spaces, then
// alternates pruning the current frontier to fixpoint with one merge-up
// step until a single cluster remains. It returns once ctx is done, on a
// best-effort basis: the loop only checks between outer iterations, never
// mid-pruning-pass, since a partially pruned frontier would violate P1.
func Run(ctx context.Context, lyt sidb.Layout, opts Options) (Result, error) {
	start := time.Now()
	log := opts.logger()
	runID := uuid.New()
	threshold := opts.witnessThreshold()

	h := cluster.BuildHierarchy(lyt)
	clusterstate.InitialChargeSpace(h, lyt)
	env := kernel.NewStabilityEnvelope(lyt.Parameters())

	fr := newFrontier(h.Leaves())
	var stats Stats

	log.WithFields(logrus.Fields{
		"run_id":    runID,
		"num_sites": lyt.NumSites(),
	}).Debug("gss: starting fixpoint drive")

	for {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		stats.NbOuterIterations++
		opts.Recorder.IncOuterIteration()

		passes, removed := pruneToFixpoint(fr, env, threshold, nil)
		stats.NbPruningPasses += passes
		stats.NbMultisetsPruned += removed
		opts.Recorder.AddPruningPasses(passes)
		opts.Recorder.AddMultisetsPruned(removed)

		parent, merged := mergeUp(h, fr, env, threshold)
		if !merged {
			break
		}
		stats.NbMergeUps++
		opts.Recorder.IncMergeUp()

		passes, removed = pruneToFixpoint(fr, env, threshold, parent)
		stats.NbPruningPasses += passes
		stats.NbMultisetsPruned += removed
		opts.Recorder.AddPruningPasses(passes)
		opts.Recorder.AddMultisetsPruned(removed)

		log.WithFields(logrus.Fields{
			"run_id":            runID,
			"outer_iteration":   stats.NbOuterIterations,
			"frontier_size":     fr.Len(),
			"multisets_pruned":  stats.NbMultisetsPruned,
		}).Trace("gss: merge-up complete")
	}

	top := fr.List()[0]
	maxTop := cluster.MaximumTopLevelMultisets(lyt.NumSites(), sidb.Base(lyt.Parameters().Base))
	pruned := maxTop - uint64(top.ChargeSpace().Len())

	opts.Recorder.SetTopLevelSize(top.ChargeSpace().Len())
	opts.Recorder.ObserveRuntimeSeconds(time.Since(start).Seconds())

	log.WithFields(logrus.Fields{
		"run_id":              runID,
		"top_level_survivors": top.ChargeSpace().Len(),
		"top_level_maximum":   maxTop,
	}).Debug("gss: fixpoint drive converged")

	return Result{
		TopCluster:               top,
		Runtime:                  time.Since(start),
		PrunedTopLevelMultisets:  pruned,
		MaximumTopLevelMultisets: maxTop,
		RunID:                    runID,
		Stats:                    stats,
	}, nil
}
