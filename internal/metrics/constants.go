package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Migration metric names
const (
	MetricNameMigrationRuns         = "migration_runs_total"
	MetricNameMigrationRunDuration  = "migration_run_duration_seconds"
	MetricNameMigrationPayloadBytes = "migration_payload_bytes"
	MetricNameAttachmentsEncoded    = "migration_attachments_encoded_total"
	MetricNameAttachmentsDropped    = "migration_attachments_dropped_total"
)

// Reminder metric names
const (
	MetricNameRemindersSent        = "reminders_sent_total"
	MetricNameReminderChecksFailed = "reminder_checks_failed_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextMigrationRuns         = "Migration run attempts by outcome"
	HelpTextMigrationRunDuration  = "Wall time of migration runs in seconds"
	HelpTextMigrationPayloadBytes = "Size of the JSON payload sent to the import endpoint"
	HelpTextAttachmentsEncoded    = "Attachments read from disk and base64-encoded"
	HelpTextAttachmentsDropped    = "Attachments excluded because their file could not be read"

	HelpTextRemindersSent        = "Reminders delivered by kind"
	HelpTextReminderChecksFailed = "Reminder checks that failed to read the local store"
)

// ============================================================================
// Labels
// ============================================================================

const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelOutcome = "outcome"
	LabelKind    = "kind"
)

// Migration outcomes
const (
	OutcomeSuccess         = "success"
	OutcomeFailed          = "failed"
	OutcomeAlreadyDone     = "already_done"
	OutcomeNothingToImport = "nothing_to_import"
	OutcomeRejected        = "rejected_in_progress"
	OutcomeSkipped         = "skipped"
)

// ============================================================================
// Buckets
// ============================================================================

var (
	HTTPLatencyBuckets      = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	MigrationLatencyBuckets = []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120, 300}
)
