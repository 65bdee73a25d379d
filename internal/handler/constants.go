package handler

// User-facing error messages
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgUnavailable           = "Service is not ready"
)

// Request limits
const (
	// maxRequestBodyBytes bounds JSON bodies; run requests only carry a URL and a token
	maxRequestBodyBytes = 64 << 10
)

// defaultVersion is reported when no version is configured
const defaultVersion = "dev"


// Log messages
const (
	LogMsgDecodeFailed       = "Failed to decode request"
	LogMsgValidationFailed   = "Request validation failed"
	LogMsgMigrationStatus    = "Migration status requested"
	LogMsgMigrationRunResult = "Migration run finished"
	LogMsgMigrationSkipped   = "Migration skip finished"
	LogMsgReminderTriggered  = "Reminder check triggered"
	LogMsgReminderFailed     = "Reminder check failed"
	LogMsgReadinessFailed    = "Readiness check failed"
	LogMsgEncodeFailed       = "Failed to encode JSON response"
	LogMsgWriteFailed        = "Failed to write response buffer"
)
