// Package metrics exposes prometheus instrumentation for the dashboard
// core: gateway operation outcomes, refresh latency and poller activity.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	LabelService   = "service"
	LabelOperation = "operation"
	LabelStatus    = "status"
	LabelSeverity  = "severity"

	StatusSuccess = "success"
	StatusError   = "error"

	serviceName = "dashboard"
)

// DashboardMetrics instruments the job store, poller and toast queue.
// A nil *DashboardMetrics is safe to record against.
type DashboardMetrics struct {
	GatewayOperationsTotal   *prometheus.CounterVec
	GatewayOperationDuration *prometheus.HistogramVec
	RefreshTotal             *prometheus.CounterVec
	ActiveJobs               prometheus.Gauge
	PollerActive             prometheus.Gauge
	ToastsTotal              *prometheus.CounterVec
}

// New creates the dashboard metrics set.
func New() *DashboardMetrics {
	return &DashboardMetrics{
		GatewayOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "gateway_operations_total",
				Help:        "Total number of remote job gateway calls",
				ConstLabels: prometheus.Labels{LabelService: serviceName},
			},
			[]string{LabelOperation, LabelStatus},
		),

		GatewayOperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "gateway_operation_duration_seconds",
				Help:        "Remote job gateway call duration in seconds",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: prometheus.Labels{LabelService: serviceName},
			},
			[]string{LabelOperation},
		),

		RefreshTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "collection_refreshes_total",
				Help:        "Total number of job collection refreshes",
				ConstLabels: prometheus.Labels{LabelService: serviceName},
			},
			[]string{LabelStatus},
		),

		ActiveJobs: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name:        "active_jobs",
				Help:        "Number of jobs currently queued or running",
				ConstLabels: prometheus.Labels{LabelService: serviceName},
			},
		),

		PollerActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name:        "poller_active",
				Help:        "Whether the polling scheduler is active (1) or idle (0)",
				ConstLabels: prometheus.Labels{LabelService: serviceName},
			},
		),

		ToastsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "toasts_total",
				Help:        "Total number of toast notifications enqueued",
				ConstLabels: prometheus.Labels{LabelService: serviceName},
			},
			[]string{LabelSeverity},
		),
	}
}

// MustRegister registers all collectors with the default registry.
func (m *DashboardMetrics) MustRegister() {
	prometheus.MustRegister(
		m.GatewayOperationsTotal,
		m.GatewayOperationDuration,
		m.RefreshTotal,
		m.ActiveJobs,
		m.PollerActive,
		m.ToastsTotal,
	)
}

// RecordGatewayOperation records the outcome and duration of one
// gateway call.
func (m *DashboardMetrics) RecordGatewayOperation(operation string, success bool, duration time.Duration) {
	if m == nil {
		return
	}
	status := StatusSuccess
	if !success {
		status = StatusError
	}
	m.GatewayOperationsTotal.WithLabelValues(operation, status).Inc()
	m.GatewayOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordRefresh records one collection refresh outcome.
func (m *DashboardMetrics) RecordRefresh(success bool) {
	if m == nil {
		return
	}
	status := StatusSuccess
	if !success {
		status = StatusError
	}
	m.RefreshTotal.WithLabelValues(status).Inc()
}

// SetActiveJobs updates the active-job gauge.
func (m *DashboardMetrics) SetActiveJobs(n int) {
	if m == nil {
		return
	}
	m.ActiveJobs.Set(float64(n))
}

// SetPollerActive updates the poller gauge.
func (m *DashboardMetrics) SetPollerActive(active bool) {
	if m == nil {
		return
	}
	if active {
		m.PollerActive.Set(1)
	} else {
		m.PollerActive.Set(0)
	}
}

// RecordToast records one enqueued notification.
func (m *DashboardMetrics) RecordToast(severity string) {
	if m == nil {
		return
	}
	m.ToastsTotal.WithLabelValues(severity).Inc()
}

// StartMetricsServer serves /metrics on the given port and returns the
// server so the caller can shut it down.
func (m *DashboardMetrics) StartMetricsServer(port string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		_ = srv.ListenAndServe()
	}()

	return srv
}
