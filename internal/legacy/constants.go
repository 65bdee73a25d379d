package legacy

// Error Messages
const (
	ErrMsgFailedToStatDatabase = "failed to stat legacy database"
	ErrMsgFailedToOpenDatabase = "failed to open legacy database"
	ErrMsgFailedToCountRows    = "failed to count rows in"
	ErrMsgFailedToQuery        = "failed to query"
	ErrMsgFailedToScan         = "failed to scan row from"
	ErrMsgFailedToInspect      = "failed to inspect columns of"
)

// Log Messages
const (
	LogMsgOrphanRowSkipped   = "Skipping legacy row without parent"
	LogMsgAttachmentExcluded = "Excluding attachment with unreadable file"
	LogMsgSnapshotRead       = "Legacy snapshot read"
)

// tagsJSONPrefix marks a tags column holding a JSON array
const tagsJSONPrefix = "["
