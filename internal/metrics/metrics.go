// Package metrics provides the centralized Prometheus metrics registry for the scoring engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	ScoresComputedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "turf_oracle",
		Name:      "scores_computed_total",
		Help:      "Total number of entry scores computed",
	})
	BacktestRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "turf_oracle",
		Name:      "backtest_runs_total",
		Help:      "Total number of backtest runs executed",
	})
	RacesEvaluatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "turf_oracle",
		Name:      "races_evaluated_total",
		Help:      "Total number of races evaluated during backtests",
	})
	CalibrationRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "turf_oracle",
		Name:      "calibration_runs_total",
		Help:      "Total number of weight calibration runs",
	})
	DataFetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "turf_oracle",
		Name:      "data_fetches_total",
		Help:      "Total number of upstream data fetches by resource and status",
	}, []string{"resource", "status"})
	PredictionRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "turf_oracle",
		Name:      "prediction_requests_total",
		Help:      "Total number of requests sent to the classifier service",
	})
	PredictionCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "turf_oracle",
		Name:      "prediction_cache_hits_total",
		Help:      "Total number of classifier responses served from cache",
	})
)

// Gauge metrics
var (
	CalibrationImprovement = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "turf_oracle",
		Name:      "calibration_improvement_percent",
		Help:      "Training error improvement of the most recent calibration run",
	})
	ActiveScheduledJobs = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "turf_oracle",
		Name:      "active_scheduled_jobs",
		Help:      "Number of jobs registered with the scheduler",
	})
)

// Histogram metrics
var (
	ScoringLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "turf_oracle",
		Name:      "scoring_latency_seconds",
		Help:      "Latency of scoring a full race card in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	BacktestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "turf_oracle",
		Name:      "backtest_duration_seconds",
		Help:      "Duration of backtest runs in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600, 1800},
	})
	PredictionLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "turf_oracle",
		Name:      "prediction_latency_seconds",
		Help:      "Latency of classifier service calls in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(ScoresComputedTotal)
		registry.MustRegister(BacktestRunsTotal)
		registry.MustRegister(RacesEvaluatedTotal)
		registry.MustRegister(CalibrationRunsTotal)
		registry.MustRegister(DataFetchesTotal)
		registry.MustRegister(PredictionRequestsTotal)
		registry.MustRegister(PredictionCacheHitsTotal)

		registry.MustRegister(CalibrationImprovement)
		registry.MustRegister(ActiveScheduledJobs)

		registry.MustRegister(ScoringLatency)
		registry.MustRegister(BacktestDuration)
		registry.MustRegister(PredictionLatency)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordDataFetch records the outcome of an upstream data fetch.
func RecordDataFetch(resource, status string) {
	DataFetchesTotal.WithLabelValues(resource, status).Inc()
}

// RecordPrediction records a classifier call and its latency.
func RecordPrediction(durationSeconds float64) {
	PredictionRequestsTotal.Inc()
	PredictionLatency.Observe(durationSeconds)
}
