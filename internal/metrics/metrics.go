package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Migration Metrics
var (
	MigrationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMigrationRuns,
			Help: HelpTextMigrationRuns,
		},
		[]string{LabelOutcome},
	)

	MigrationRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameMigrationRunDuration,
			Help:    HelpTextMigrationRunDuration,
			Buckets: MigrationLatencyBuckets,
		},
	)

	MigrationPayloadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameMigrationPayloadBytes,
			Help:    HelpTextMigrationPayloadBytes,
			Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
		},
	)

	AttachmentsEncoded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAttachmentsEncoded,
			Help: HelpTextAttachmentsEncoded,
		},
		[]string{LabelKind},
	)

	AttachmentsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAttachmentsDropped,
			Help: HelpTextAttachmentsDropped,
		},
		[]string{LabelKind},
	)
)

// Reminder Metrics
var (
	RemindersSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRemindersSent,
			Help: HelpTextRemindersSent,
		},
		[]string{LabelKind},
	)

	ReminderChecksFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameReminderChecksFailed,
			Help: HelpTextReminderChecksFailed,
		},
	)
)
