package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	scoresComputed   *prometheus.CounterVec
	backtestsTotal   *prometheus.CounterVec
	backtestDuration prometheus.Histogram
	fetchErrors      *prometheus.CounterVec
	rebalancesTotal  prometheus.Counter
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{Registry: reg}

	r.scoresComputed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alphabench_scores_computed_total",
			Help: "Total number of symbol scores computed",
		},
		[]string{"recommendation"},
	)
	r.backtestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alphabench_backtests_total",
			Help: "Total number of backtest runs",
		},
		[]string{"status"},
	)
	r.backtestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "alphabench_backtest_duration_seconds",
			Help:    "Backtest run duration in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)
	r.fetchErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alphabench_fetch_errors_total",
			Help: "Total number of failed history fetches",
		},
		[]string{"symbol"},
	)
	r.rebalancesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "alphabench_rebalances_total",
			Help: "Total number of rebalance dates processed",
		},
	)

	reg.MustRegister(r.scoresComputed)
	reg.MustRegister(r.backtestsTotal)
	reg.MustRegister(r.backtestDuration)
	reg.MustRegister(r.fetchErrors)
	reg.MustRegister(r.rebalancesTotal)

	return r
}

// ScoreComputed records one computed score by recommendation tier.
func (r *Registry) ScoreComputed(recommendation string) {
	r.scoresComputed.WithLabelValues(recommendation).Inc()
}

// BacktestCompleted records a finished run and its duration.
func (r *Registry) BacktestCompleted(status string, elapsed time.Duration) {
	r.backtestsTotal.WithLabelValues(status).Inc()
	r.backtestDuration.Observe(elapsed.Seconds())
}

// FetchError records a failed history fetch for a symbol.
func (r *Registry) FetchError(symbol string) {
	r.fetchErrors.WithLabelValues(symbol).Inc()
}

// RebalanceProcessed records one processed rebalance date.
func (r *Registry) RebalanceProcessed() {
	r.rebalancesTotal.Inc()
}

// Handler returns an HTTP handler exposing the registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.Registry, promhttp.HandlerOpts{})
}
