package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all application metrics
type Metrics struct {
	// Check metrics
	ChecksRun      *prometheus.CounterVec
	ChecksSkipped  *prometheus.CounterVec
	CheckDuration  *prometheus.HistogramVec
	TicketVerdicts *prometheus.CounterVec

	// Notification metrics
	NotificationsSent   *prometheus.CounterVec
	NotificationsFailed *prometheus.CounterVec

	// Enrichment metrics
	ItemsEnriched *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Outbound client metrics
	ClientRequestDuration *prometheus.HistogramVec
	ClientRequestErrors   *prometheus.CounterVec

	// Circuit breaker metrics
	CircuitBreakerState *prometheus.GaugeVec
}

// NewMetrics creates and registers all metrics against the given registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := prometheus.WrapRegistererWith(nil, reg)

	m := &Metrics{
		ChecksRun: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "checks_run_total",
				Help:      "Total number of check strategy executions by strategy and outcome",
			},
			[]string{"strategy", "outcome"},
		),
		ChecksSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "checks_skipped_total",
				Help:      "Total number of check strategies skipped as not applicable",
			},
			[]string{"strategy"},
		),
		CheckDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "check_duration_seconds",
				Help:      "Check strategy evaluation duration in seconds",
				Buckets:   []float64{0.005, 0.05, 0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"strategy"},
		),
		TicketVerdicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ticket_verdicts_total",
				Help:      "Total number of overall transaction verdicts",
			},
			[]string{"verdict"},
		),
		NotificationsSent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "notifications_sent_total",
				Help:      "Total number of group messages sent",
			},
			[]string{"source"},
		),
		NotificationsFailed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "notifications_failed_total",
				Help:      "Total number of group messages that failed to send",
			},
			[]string{"source"},
		),
		ItemsEnriched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "items_enriched_total",
				Help:      "Total number of item enrichment attempts by result",
			},
			[]string{"result"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		ClientRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "client_request_duration_seconds",
				Help:      "Outbound API request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"client", "operation"},
		),
		ClientRequestErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "client_request_errors_total",
				Help:      "Total number of failed outbound API requests",
			},
			[]string{"client", "operation"},
		),
		CircuitBreakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "circuit_breaker_state",
				Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
			},
			[]string{"name"},
		),
	}

	// Register all collectors
	factory.MustRegister(
		m.ChecksRun,
		m.ChecksSkipped,
		m.CheckDuration,
		m.TicketVerdicts,
		m.NotificationsSent,
		m.NotificationsFailed,
		m.ItemsEnriched,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ClientRequestDuration,
		m.ClientRequestErrors,
		m.CircuitBreakerState,
	)

	return m
}
