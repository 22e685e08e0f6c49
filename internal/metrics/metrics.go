// Package metrics registers the Prometheus collectors shared by the
// ingestion job and the query API. Collectors are package-level and
// registered on the default registry; the API exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// IngestBatchesTotal counts processed batches per queue and outcome
	// (accepted, requeued).
	IngestBatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_batches_total",
		Help: "Number of processed message batches by queue and outcome.",
	}, []string{"queue", "outcome"})

	// IngestItemsTotal counts individual messages per queue and outcome
	// (accepted, requeued, poison).
	IngestItemsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_items_total",
		Help: "Number of consumed messages by queue and outcome.",
	}, []string{"queue", "outcome"})

	// IngestBufferDepth tracks items buffered between intake and flush.
	IngestBufferDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ingest_buffer_depth",
		Help: "Messages currently buffered awaiting a store flush.",
	}, []string{"queue"})

	// IngestBatchDuration observes store flush latency per queue.
	IngestBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ingest_batch_duration_seconds",
		Help:    "Latency of one batch projection into the store.",
		Buckets: prometheus.DefBuckets,
	}, []string{"queue"})

	// QueueReconnectsTotal counts broker session restarts.
	QueueReconnectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "queue_reconnects_total",
		Help: "Number of message bus reconnect attempts by queue.",
	}, []string{"queue"})

	// HTTPRequestsTotal counts API requests by route and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Number of HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration observes API request latency by route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latency of HTTP requests by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// Outcome label values.
const (
	OutcomeAccepted = "accepted"
	OutcomeRequeued = "requeued"
	OutcomePoison   = "poison"
)
