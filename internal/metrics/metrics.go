// Package metrics defines the Prometheus metrics of the interaction service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
)

// Dispatch outcomes.
const (
	OutcomeSuccess     = "success"
	OutcomeError       = "error"
	OutcomePanic       = "panic"
	OutcomeTimeout     = "timeout"
	OutcomeCheckFailed = "check_failed"
	OutcomeNotFound    = "not_found"
	OutcomeIgnored     = "ignored"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Dispatch metrics
	InteractionsTotal *prometheus.CounterVec
	DispatchDuration  *prometheus.HistogramVec

	// Transport metrics
	AMQPMessagesTotal *prometheus.CounterVec

	// Registration metrics
	CommandRegistrations *prometheus.CounterVec

	// Data service metrics
	GuildConfigCacheTotal *prometheus.CounterVec
}

// Module provides the metrics registry and Metrics.
var Module = fx.Module("metrics",
	fx.Provide(
		NewRegistry,
		New,
	),
)

// NewRegistry creates a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return registry
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	return &Metrics{
		InteractionsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sushii_interactions_total",
				Help: "Total number of dispatched interactions by kind and outcome",
			},
			[]string{"kind", "outcome"}, // kind: command, button, modal, other
		),

		DispatchDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sushii_dispatch_duration_seconds",
				Help:    "Interaction dispatch duration in seconds by kind",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5}, // interaction tokens must be answered within 3s
			},
			[]string{"kind"},
		),

		AMQPMessagesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sushii_amqp_messages_total",
				Help: "Total number of AMQP messages received by result",
			},
			[]string{"result"}, // result: dispatched, ignored, malformed, dropped
		),

		CommandRegistrations: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sushii_command_registrations_total",
				Help: "Total number of bulk command registrations by scope and status",
			},
			[]string{"scope", "status"}, // scope: global, guild
		),

		GuildConfigCacheTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sushii_guild_config_cache_total",
				Help: "Guild config lookups by cache result",
			},
			[]string{"result"}, // result: hit, miss, shared
		),
	}
}

// RecordDispatch records a finished dispatch.
func (m *Metrics) RecordDispatch(kind, outcome string, seconds float64) {
	m.InteractionsTotal.WithLabelValues(kind, outcome).Inc()
	m.DispatchDuration.WithLabelValues(kind).Observe(seconds)
}

// RecordAMQPMessage records a consumed AMQP message.
func (m *Metrics) RecordAMQPMessage(result string) {
	m.AMQPMessagesTotal.WithLabelValues(result).Inc()
}

// RecordRegistration records a bulk command registration.
func (m *Metrics) RecordRegistration(scope, status string) {
	m.CommandRegistrations.WithLabelValues(scope, status).Inc()
}

// RecordGuildConfigLookup records a guild config cache lookup.
func (m *Metrics) RecordGuildConfigLookup(result string) {
	m.GuildConfigCacheTotal.WithLabelValues(result).Inc()
}
