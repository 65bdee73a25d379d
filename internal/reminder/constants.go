package reminder

import "time"

const (
	// dedupCapacity bounds the set of reminders already sent
	dedupCapacity = 4096
	// dedupTTL outlives a calendar day; keys carry the day so older entries never match
	dedupTTL = 48 * time.Hour

	webhookTimeout = 10 * time.Second
	webhookEvent   = "inventory_reminders"
)

// Log messages
const (
	LogMsgSchedulerStarted  = "Reminder scheduler started"
	LogMsgSchedulerStopped  = "Reminder scheduler stopped"
	LogMsgSchedulerDisabled = "Reminder interval is zero, scheduler disabled"
	LogMsgIdleMigrated      = "Local store migrated, reminders idle"
	LogMsgIdleNoStore       = "No local database, reminders idle"
	LogMsgCheckFailed       = "Reminder check failed"
	LogMsgReminder          = "Reminder"
	LogMsgCheckCompleted    = "Reminder check completed"
	LogMsgWebhookSent       = "Sent reminder webhook"
	LogMsgWebhookFailed     = "Failed to send reminder webhook"
	LogMsgCloseFailed       = "Failed to close local database"
)
