package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	KindCompleted = "completed"
	KindAbandoned = "abandoned"

	OutcomeCreated  = "created"
	OutcomeUpgraded = "upgraded"
	OutcomeUpdated  = "updated"
	OutcomeNoop     = "noop"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"
	OutcomeSent     = "sent"
	OutcomeQueued   = "queued"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_submissions_total",
			Help: "Lead submissions by kind (completed, abandoned) and outcome",
		},
		[]string{"kind", "outcome"},
	)

	conversionEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversion_events_total",
			Help: "Conversion API events by outcome",
		},
		[]string{"outcome"},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
	)

	leadsStored = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "leads_stored",
			Help: "Leads currently stored, split by abandoned flag",
		},
		[]string{"abandoned"},
	)

	rateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Requests rejected by the per-IP rate limiter",
		},
	)
)

func RecordLeadSubmission(kind, outcome string) {
	leadSubmissions.WithLabelValues(kind, outcome).Inc()
}

func RecordConversionEvent(outcome string) {
	conversionEvents.WithLabelValues(outcome).Inc()
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}

func SetLeadsStored(total, abandoned int) {
	leadsStored.WithLabelValues("true").Set(float64(abandoned))
	leadsStored.WithLabelValues("false").Set(float64(total - abandoned))
}

func RecordRateLimited() {
	rateLimited.Inc()
}
