package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder accumulates run-time counters about a driver.Run call as
// Prometheus collectors so a long-lived process can expose them on its own
// /metrics endpoint. A nil *Recorder is valid and every method on it is a
// no-op, so callers that don't want metrics can simply leave the field
// unset (spec.md section 7: diagnostics never block correctness).
type Recorder struct {
	outerIterations prometheus.Counter
	mergeUps        prometheus.Counter
	pruningPasses   prometheus.Counter
	multisetsPruned prometheus.Counter
	runtime         prometheus.Histogram
	topLevelSize    prometheus.Gauge
}

// NewRecorder builds a Recorder and registers its collectors with reg. A
// nil reg is fine: the collectors are still usable, just unregistered.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		outerIterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gss", Name: "outer_iterations_total",
			Help: "Number of prune/merge-up cycles run by the fixpoint driver.",
		}),
		mergeUps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gss", Name: "merge_ups_total",
			Help: "Number of cluster merge-up steps performed.",
		}),
		pruningPasses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gss", Name: "pruning_passes_total",
			Help: "Number of full frontier pruning passes run.",
		}),
		multisetsPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gss", Name: "multisets_pruned_total",
			Help: "Number of multisets removed from any cluster's charge space.",
		}),
		runtime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gss", Name: "run_duration_seconds",
			Help:    "Wall-clock duration of a driver.Run call.",
			Buckets: prometheus.DefBuckets,
		}),
		topLevelSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gss", Name: "top_level_charge_space_size",
			Help: "Size of the root cluster's charge space after the last run.",
		}),
	}
	if reg != nil {
		reg.MustRegister(r.outerIterations, r.mergeUps, r.pruningPasses, r.multisetsPruned, r.runtime, r.topLevelSize)
	}
	return r
}

func (r *Recorder) IncOuterIteration() {
	if r == nil {
		return
	}
	r.outerIterations.Inc()
}

func (r *Recorder) IncMergeUp() {
	if r == nil {
		return
	}
	r.mergeUps.Inc()
}

func (r *Recorder) AddPruningPasses(n int) {
	if r == nil || n == 0 {
		return
	}
	r.pruningPasses.Add(float64(n))
}

func (r *Recorder) AddMultisetsPruned(n int) {
	if r == nil || n == 0 {
		return
	}
	r.multisetsPruned.Add(float64(n))
}

func (r *Recorder) ObserveRuntimeSeconds(s float64) {
	if r == nil {
		return
	}
	r.runtime.Observe(s)
}

func (r *Recorder) SetTopLevelSize(n int) {
	if r == nil {
		return
	}
	r.topLevelSize.Set(float64(n))
}
