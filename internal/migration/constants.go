package migration

// Lock key shared by Run and Skip
const runLockKey = "migration:run"

// Result messages
const (
	MsgMarkerWriteFailed = "data imported, but the completion marker could not be written"
	MsgInternalError     = "internal error during migration"
)

// Log messages
const (
	LogMsgStatusCountFailed   = "Failed to count local rows, reporting nothing to migrate"
	LogMsgStatusCheckFailed   = "Failed to check migration status"
	LogMsgRunRejected         = "Migration run rejected, another run is in progress"
	LogMsgRunAlreadyDone      = "Migration already completed, nothing sent"
	LogMsgRunNothingToMigrate = "No local database found, nothing to migrate"
	LogMsgRunStarted          = "Migration run started"
	LogMsgSnapshotReadFailed  = "Failed to read local snapshot"
	LogMsgSnapshotInvalid     = "Local snapshot failed payload validation"
	LogMsgImportFailed        = "Remote import failed"
	LogMsgRunSucceeded        = "Migration run succeeded"
	LogMsgMarkerWriteFailed   = "Import succeeded but completion marker write failed"
	LogMsgRunPanicked         = "Migration run panicked"
	LogMsgSkipWritten         = "Migration skipped by user"
	LogMsgSkipFailed          = "Failed to record migration skip"
	LogMsgCloseFailed         = "Failed to close local database"
)
