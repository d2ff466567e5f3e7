package driver

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sidblab/gss/cluster"
	"github.com/sidblab/gss/metrics"
)

// defaultMaxClusterSizeForWitnessPartitioning is T in spec.md section
// 4.6.1: above this cluster size, the partition test is skipped and a
// multiset is accepted on the cardinality test alone.
const defaultMaxClusterSizeForWitnessPartitioning = 6

// Options configures a Run. The zero value is usable: it picks the default
// witness-partitioning threshold, logs nothing, and records no metrics.
type Options struct {
	// MaxClusterSizeForWitnessPartitioning is T (spec.md section 4.6.1).
	// Zero means "use the default of 6".
	MaxClusterSizeForWitnessPartitioning int
	// Recorder, if non-nil, receives metrics about the run (package
	// metrics). A nil Recorder records nothing.
	Recorder *metrics.Recorder
	// Logger, if non-nil, receives diagnostic log lines about the run. A
	// nil Logger logs nothing.
	Logger *logrus.Logger
}

func (o Options) witnessThreshold() int {
	if o.MaxClusterSizeForWitnessPartitioning <= 0 {
		return defaultMaxClusterSizeForWitnessPartitioning
	}
	return o.MaxClusterSizeForWitnessPartitioning
}

func (o Options) logger() *logrus.Logger {
	if o.Logger == nil {
		return silentLogger
	}
	return o.Logger
}

var silentLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// Stats are run-time counters about the resolution of the problem,
// provided for diagnostic purposes only (spec.md section 7: all diagnostic
// information is carried in the result, never via side channels).
type Stats struct {
	NbOuterIterations int
	NbPruningPasses   int
	NbMultisetsPruned int
	NbMergeUps        int
}

// Result is the §6 output contract.
type Result struct {
	// TopCluster owns the root of the pruned hierarchy.
	TopCluster *cluster.Cluster
	// Runtime is the elapsed wall time of the call.
	Runtime time.Duration
	// PrunedTopLevelMultisets is (maximum - realized) count of root
	// multisets.
	PrunedTopLevelMultisets uint64
	// MaximumTopLevelMultisets is (N+1)(N+2)/2 under Base3, or N+1 under
	// Base2 (cluster.MaximumTopLevelMultisets).
	MaximumTopLevelMultisets uint64
	// RunID correlates this run's log lines and metrics.
	RunID uuid.UUID
	// Stats carries the diagnostic counters accumulated during the run.
	Stats Stats
}
