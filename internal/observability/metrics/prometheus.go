// Package metrics provides Prometheus metrics for the admin platform.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all application metrics.
type Metrics struct {
	// StatusTransitions counts committed workflow transitions by entity
	// kind and target status.
	StatusTransitions *prometheus.CounterVec
	// TransitionRejected counts transitions rejected by the guard tables.
	TransitionRejected *prometheus.CounterVec
	// ReviewsCompleted counts prescription reviews by outcome.
	ReviewsCompleted *prometheus.CounterVec
	// RequestDuration observes HTTP handler latency.
	RequestDuration *prometheus.HistogramVec
	// NotificationsDelivered counts webhook notifications by result.
	NotificationsDelivered *prometheus.CounterVec
	// OutboxPending tracks the outbox backlog.
	OutboxPending prometheus.Gauge
	// KafkaMessagesProduced counts events published to Redpanda.
	KafkaMessagesProduced prometheus.Counter
	// KafkaMessagesConsumed counts events read from Redpanda.
	KafkaMessagesConsumed prometheus.Counter
	// CircuitBreakerState exposes breaker state per webhook endpoint
	// (0=closed, 1=open, 2=half-open).
	CircuitBreakerState *prometheus.GaugeVec
}

// New creates and registers all metrics.
func New() *Metrics {
	m := &Metrics{
		StatusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "workflow_transitions_total",
			Help: "Committed workflow status transitions",
		}, []string{"kind", "to"}),
		TransitionRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "workflow_transitions_rejected_total",
			Help: "Transitions rejected by the guard tables",
		}, []string{"kind"}),
		ReviewsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prescription_reviews_total",
			Help: "Prescription reviews by outcome",
		}, []string{"outcome"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP handler latency",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"method", "route", "status"}),
		NotificationsDelivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notifications_delivered_total",
			Help: "Webhook notifications by result",
		}, []string{"result"}),
		OutboxPending: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "outbox_pending_entries",
			Help: "Pending outbox entries",
		}),
		KafkaMessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kafka_messages_produced_total",
			Help: "Total Kafka messages produced",
		}),
		KafkaMessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Total Kafka messages consumed",
		}),
		CircuitBreakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		}, []string{"name"}),
	}

	prometheus.MustRegister(
		m.StatusTransitions,
		m.TransitionRejected,
		m.ReviewsCompleted,
		m.RequestDuration,
		m.NotificationsDelivered,
		m.OutboxPending,
		m.KafkaMessagesProduced,
		m.KafkaMessagesConsumed,
		m.CircuitBreakerState,
	)

	return m
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
