// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Karmaloom Contributors

package engine

import "github.com/prometheus/client_golang/prometheus"

// EventsRecorded counts recorded karma events.
// Use RegisterMetrics to register this with a Prometheus registry.
var EventsRecorded = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "karmaloom_events_recorded_total",
		Help: "Total number of karma events recorded",
	},
	[]string{"action", "polarity"},
)

// RipplesCreated counts ripples produced by propagation.
var RipplesCreated = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "karmaloom_ripples_created_total",
		Help: "Total number of karma ripples created",
	},
)

// RipplesExpired counts ripples garbage-collected by decay.
var RipplesExpired = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "karmaloom_ripples_expired_total",
		Help: "Total number of karma ripples expired by decay",
	},
)

// FeudsStarted counts blood feuds created.
var FeudsStarted = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "karmaloom_feuds_started_total",
		Help: "Total number of blood feuds started",
	},
)

// DebtsCreated counts face debts created.
var DebtsCreated = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "karmaloom_debts_created_total",
		Help: "Total number of face debts created",
	},
)

// RecordDuration observes the RecordKarmaEvent pipeline latency.
var RecordDuration = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "karmaloom_record_duration_seconds",
		Help:    "RecordKarmaEvent pipeline duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
)

// RegisterMetrics registers engine metrics with the given Prometheus
// registry. Call once at startup; panics on duplicate registration
// (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(EventsRecorded)
	reg.MustRegister(RipplesCreated)
	reg.MustRegister(RipplesExpired)
	reg.MustRegister(FeudsStarted)
	reg.MustRegister(DebtsCreated)
	reg.MustRegister(RecordDuration)
}
