package importer

// Log Messages
const (
	LogMsgSendingImport          = "Sending snapshot to import endpoint"
	LogMsgImportAccepted         = "Import accepted"
	LogMsgImportRejected         = "Import rejected"
	LogMsgUnparseableSuccessBody = "Import succeeded but response body was not JSON"
)
