package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "payroll"

// PayrollMetrics collects payment, sweep and HTTP metrics on its own registry
type PayrollMetrics struct {
	registry        *prometheus.Registry
	paymentAttempts *prometheus.CounterVec
	manualReview    *prometheus.CounterVec
	sweepRuns       *prometheus.CounterVec
	sweepWorkers    *prometheus.CounterVec
	sweepDuration   prometheus.Histogram
	stalePending    prometheus.Gauge
	httpRequests    *prometheus.CounterVec
	httpDurations   *prometheus.HistogramVec
}

// New creates and registers the payroll collectors
func New() *PayrollMetrics {
	m := &PayrollMetrics{
		registry: prometheus.NewRegistry(),
		paymentAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_attempts_total",
			Help:      "Finished payment attempts by category and final status.",
		}, []string{"category", "status"}),
		manualReview: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "manual_review_total",
			Help:      "Payments whose record could not be finalized after the chain outcome was known.",
		}, []string{"category"}),
		sweepRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_runs_total",
			Help:      "Scheduled payroll sweeps by result.",
		}, []string{"result"}),
		sweepWorkers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_workers_total",
			Help:      "Workers processed by the scheduled sweep by result.",
		}, []string{"result"}),
		sweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sweep_duration_seconds",
			Help:      "Duration of scheduled payroll sweeps in seconds.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900},
		}),
		stalePending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stale_pending_payments",
			Help:      "Pending payment records older than the approval window.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	m.registry.MustRegister(
		m.paymentAttempts,
		m.manualReview,
		m.sweepRuns,
		m.sweepWorkers,
		m.sweepDuration,
		m.stalePending,
		m.httpRequests,
		m.httpDurations,
	)
	return m
}

// Registry exposes the underlying registry for tests and handlers
func (m *PayrollMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *PayrollMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *PayrollMetrics) ObservePaymentAttempt(category, status string, manualReview bool) {
	if m == nil {
		return
	}
	if status == "" {
		status = "unknown"
	}
	m.paymentAttempts.WithLabelValues(category, status).Inc()
	if manualReview {
		m.manualReview.WithLabelValues(category).Inc()
	}
}

func (m *PayrollMetrics) ObserveSweep(result string, paid, failed int, took time.Duration) {
	if m == nil {
		return
	}
	m.sweepRuns.WithLabelValues(result).Inc()
	m.sweepWorkers.WithLabelValues("paid").Add(float64(paid))
	m.sweepWorkers.WithLabelValues("failed").Add(float64(failed))
	m.sweepDuration.Observe(took.Seconds())
}

func (m *PayrollMetrics) SetStalePending(count int) {
	if m == nil {
		return
	}
	m.stalePending.Set(float64(count))
}

func (m *PayrollMetrics) ObserveHTTPRequest(route, method string, status int, took time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDurations.WithLabelValues(route, method).Observe(took.Seconds())
}
