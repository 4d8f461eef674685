// Package metrics records run statistics in a Prometheus registry so batch
// runs can hand them to the node_exporter textfile collector.
package metrics

import (
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"gbmsim/internal/sim"
)

const namespace = "gbmsim"

type Recorder struct {
	registry *prometheus.Registry

	pathsTotal  prometheus.Counter
	runDuration prometheus.Gauge
	lastRun     prometheus.Gauge
	meanReturn  prometheus.Gauge
	stdReturn   prometheus.Gauge
	valueAtRisk prometheus.Gauge
	shortfall   prometheus.Gauge
	nonFinite   prometheus.Gauge
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		pathsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "paths_simulated_total",
			Help:      "Number of simulated price paths.",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last simulation run.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
		meanReturn: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mean_return",
			Help:      "Mean simulated terminal return.",
		}),
		stdReturn: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "return_volatility",
			Help:      "Population standard deviation of terminal returns.",
		}),
		valueAtRisk: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "value_at_risk",
			Help:      "Terminal return at the VaR percentile.",
		}),
		shortfall: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "expected_shortfall",
			Help:      "Mean terminal return at or below the VaR.",
		}),
		nonFinite: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "non_finite_returns",
			Help:      "Paths whose terminal return is NaN or infinite.",
		}),
	}
	r.registry.MustRegister(
		r.pathsTotal, r.runDuration, r.lastRun,
		r.meanReturn, r.stdReturn, r.valueAtRisk, r.shortfall, r.nonFinite,
	)
	return r
}

// Observe records one finished run.
func (r *Recorder) Observe(res *sim.Result) {
	r.pathsTotal.Add(float64(len(res.Returns)))
	r.runDuration.Set(res.Elapsed.Seconds())
	r.lastRun.Set(float64(time.Now().Unix()))
	r.meanReturn.Set(res.Summary.MeanReturn)
	r.stdReturn.Set(res.Summary.StdReturn)
	r.valueAtRisk.Set(res.Summary.VaR)
	r.shortfall.Set(res.Summary.CVaR)
	r.nonFinite.Set(float64(CountNonFinite(res.Returns)))
}

// WriteTextfile writes every metric to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

// CountNonFinite counts NaN and ±Inf entries.
func CountNonFinite(x []float64) int {
	n := 0
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			n++
		}
	}
	return n
}
