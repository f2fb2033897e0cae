// Package metrics holds the Prometheus collectors for the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pocket_morties"

// Metrics groups the collectors. Use New with a dedicated registry in tests.
type Metrics struct {
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	ChatIntents     *prometheus.CounterVec
	DatasetFetches  *prometheus.CounterVec
	CompletionCalls *prometheus.CounterVec
	registry        *prometheus.Registry
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ChatIntents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_intents_total",
			Help:      "Classified chat messages by intent.",
		}, []string{"intent"}),
		DatasetFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_fetches_total",
			Help:      "Upstream dataset fetches by source and result.",
		}, []string{"source", "result"}),
		CompletionCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completion_calls_total",
			Help:      "External completion calls by provider and result.",
		}, []string{"provider", "result"}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.ChatIntents,
		m.DatasetFetches,
		m.CompletionCalls,
	)
	return m
}

// Registry returns the registry holding every collector.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveFetch records a dataset fetch outcome. Safe on a nil receiver.
func (m *Metrics) ObserveFetch(source string, err error) {
	if m == nil {
		return
	}
	m.DatasetFetches.WithLabelValues(source, result(err)).Inc()
}

// ObserveIntent counts a classified chat message. Safe on a nil receiver.
func (m *Metrics) ObserveIntent(intent string) {
	if m == nil {
		return
	}
	m.ChatIntents.WithLabelValues(intent).Inc()
}

// ObserveCompletion records a completion call outcome. Safe on a nil receiver.
func (m *Metrics) ObserveCompletion(provider string, err error) {
	if m == nil {
		return
	}
	m.CompletionCalls.WithLabelValues(provider, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
