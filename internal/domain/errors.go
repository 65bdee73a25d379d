package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Legacy store errors
	ErrMsgLegacyStoreNotFound = "local database not found"
	ErrMsgMalformedRow        = "malformed row"
	ErrMsgInvalidPayload      = "snapshot failed schema validation"

	// Migration lifecycle errors
	ErrMsgAlreadyMigrated     = "migration already completed"
	ErrMsgMigrationInProgress = "migration already in progress"
	ErrMsgNothingToMigrate    = "nothing to migrate"

	// Remote import errors
	ErrMsgImportRejected = "import rejected"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrLegacyStoreNotFound = errors.New(ErrMsgLegacyStoreNotFound)
	ErrMalformedRow        = errors.New(ErrMsgMalformedRow)
	ErrInvalidPayload      = errors.New(ErrMsgInvalidPayload)

	ErrAlreadyMigrated     = errors.New(ErrMsgAlreadyMigrated)
	ErrMigrationInProgress = errors.New(ErrMsgMigrationInProgress)

	ErrImportRejected = errors.New(ErrMsgImportRejected)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
