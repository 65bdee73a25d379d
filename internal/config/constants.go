package config

import "time"

// Environment variable names
const (
	EnvEnvironment         = "ENVIRONMENT"
	EnvLogLevel            = "LOG_LEVEL"
	EnvLogFormat           = "LOG_FORMAT"
	EnvLogDir              = "LOG_DIR"
	EnvServiceName         = "SERVICE_NAME"
	EnvVersion             = "VERSION"
	EnvUserDataDir         = "USER_DATA_DIR"
	EnvLegacyDBFile        = "LEGACY_DB_FILE"
	EnvMarkerFile          = "MIGRATION_MARKER_FILE"
	EnvTemplateFilesDir    = "TEMPLATE_FILES_DIR"
	EnvInstructionFilesDir = "INSTRUCTION_FILES_DIR"
	EnvAPIBaseURL          = "API_BASE_URL"
	EnvAPIAccessToken      = "API_ACCESS_TOKEN"
	EnvImportTimeout       = "IMPORT_TIMEOUT"
	EnvListenHost          = "LISTEN_HOST"
	EnvPort                = "PORT"
	EnvAPIKey              = "API_KEY"
	EnvReminderInterval    = "REMINDER_INTERVAL"
	EnvReminderLeadDays    = "REMINDER_LEAD_DAYS"
	EnvReminderWebhookURL  = "REMINDER_WEBHOOK_URL"
)

// Defaults
const (
	DefaultEnvironment         = "dev"
	DefaultLogLevel            = "info"
	DefaultLogFormat           = "text"
	DefaultServiceName         = "inventory-migrator"
	DefaultVersion             = "dev"
	DefaultAppDirName          = "inventory-desk"
	DefaultLegacyDBFile        = "inventory.db"
	DefaultMarkerFile          = ".migration-completed"
	DefaultTemplateFilesDir    = "template_files"
	DefaultInstructionFilesDir = "instruction_files"
	DefaultListenHost          = "127.0.0.1"
	DefaultPort                = 8765
	DefaultReminderLeadDays    = 1

	DefaultImportTimeout    = 5 * time.Minute
	DefaultReminderInterval = 30 * time.Minute
)
