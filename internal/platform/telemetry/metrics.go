// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package telemetry exposes Prometheus metrics for the HTTP surface and the
catalogue, reader and library domains.

Every metric lives on a private registry owned by [Metrics], so several
instances (one per test) never collide on registration. All recording methods
are safe to call on a nil *Metrics, which keeps core services usable without
instrumentation.
*/
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "yomira"

// Metrics groups the collectors recorded by the service.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	searches       *prometheus.CounterVec
	searchResults  prometheus.Histogram
	readerEvents   *prometheus.CounterVec
	readerSessions prometheus.Gauge
	progressWrites *prometheus.CounterVec
}

// New creates and registers the service metrics, plus the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),

		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "catalog", Name: "search_total",
			Help: "Catalogue searches by sort key and outcome.",
		}, []string{"sort", "result"}),

		searchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "catalog", Name: "search_results",
			Help:    "Number of titles matching a search before pagination.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),

		readerEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "reader", Name: "events_total",
			Help: "Reader session events by type.",
		}, []string{"type"}),

		readerSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "reader", Name: "sessions_active",
			Help: "Reader sessions currently held in memory.",
		}),

		progressWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "library", Name: "progress_writes_total",
			Help: "Progress record upserts by result.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpDuration,
		m.searches, m.searchResults,
		m.readerEvents, m.readerSessions,
		m.progressWrites,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// # Domain recorders

// ObserveSearch records one catalogue search.
func (m *Metrics) ObserveSearch(sort string, matched int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.searches.WithLabelValues(sort, "error").Inc()
		return
	}
	m.searches.WithLabelValues(sort, "ok").Inc()
	m.searchResults.Observe(float64(matched))
}

// ReaderEvent counts one applied reader event.
func (m *Metrics) ReaderEvent(eventType string) {
	if m == nil {
		return
	}
	m.readerEvents.WithLabelValues(eventType).Inc()
}

// SessionsActive sets the number of live reader sessions.
func (m *Metrics) SessionsActive(n int) {
	if m == nil {
		return
	}
	m.readerSessions.Set(float64(n))
}

// ProgressWrite counts one progress upsert attempt.
func (m *Metrics) ProgressWrite(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.progressWrites.WithLabelValues(result).Inc()
}
