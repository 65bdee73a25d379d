package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Environment string `validate:"required,oneof=dev prod test"`
	LogLevel    string `validate:"required,oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	LogFormat   string `validate:"required,oneof=text json"`
	LogDir      string
	ServiceName string `validate:"required"`
	Version     string

	// Local files written by the desktop application
	UserDataDir         string `validate:"required"`
	LegacyDBFile        string `validate:"required,excludesall=/\\"`
	MarkerFile          string `validate:"required,excludesall=/\\"`
	TemplateFilesDir    string `validate:"required"`
	InstructionFilesDir string `validate:"required"`

	// Remote import target (used by the CLI run command)
	APIBaseURL     string        `validate:"omitempty,url"`
	APIAccessToken string
	ImportTimeout  time.Duration `validate:"min=0"`

	// Local HTTP surface
	ListenHost string `validate:"required"`
	Port       int    `validate:"min=1,max=65535"`
	APIKey     string // optional X-API-Key for the local surface

	// Reminder scheduler
	ReminderInterval   time.Duration `validate:"min=0"`
	ReminderLeadDays   int           `validate:"min=0,max=365"`
	ReminderWebhookURL string        `validate:"omitempty,url"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	userDataDir := getEnv(EnvUserDataDir, "")
	if userDataDir == "" {
		userDataDir = defaultUserDataDir()
	}

	cfg := &Config{
		Environment:         getEnv(EnvEnvironment, DefaultEnvironment),
		LogLevel:            getEnv(EnvLogLevel, DefaultLogLevel),
		LogFormat:           getEnv(EnvLogFormat, DefaultLogFormat),
		LogDir:              getEnv(EnvLogDir, ""),
		ServiceName:         getEnv(EnvServiceName, DefaultServiceName),
		Version:             getEnv(EnvVersion, DefaultVersion),
		UserDataDir:         userDataDir,
		LegacyDBFile:        getEnv(EnvLegacyDBFile, DefaultLegacyDBFile),
		MarkerFile:          getEnv(EnvMarkerFile, DefaultMarkerFile),
		TemplateFilesDir:    getEnv(EnvTemplateFilesDir, filepath.Join(userDataDir, DefaultTemplateFilesDir)),
		InstructionFilesDir: getEnv(EnvInstructionFilesDir, filepath.Join(userDataDir, DefaultInstructionFilesDir)),
		APIBaseURL:          getEnv(EnvAPIBaseURL, ""),
		APIAccessToken:      getEnv(EnvAPIAccessToken, ""),
		ListenHost:          getEnv(EnvListenHost, DefaultListenHost),
		APIKey:              getEnv(EnvAPIKey, ""),
		ReminderWebhookURL:  getEnv(EnvReminderWebhookURL, ""),
		ReminderLeadDays:    getEnvAsInt(EnvReminderLeadDays, DefaultReminderLeadDays),
		ImportTimeout:       getEnvAsDuration(EnvImportTimeout, DefaultImportTimeout),
		ReminderInterval:    getEnvAsDuration(EnvReminderInterval, DefaultReminderInterval),
	}

	portStr := getEnv(EnvPort, strconv.Itoa(DefaultPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %w", EnvPort, err)
	}
	cfg.Port = port

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LegacyDBPath returns the absolute location of the legacy database file
func (c *Config) LegacyDBPath() string {
	return filepath.Join(c.UserDataDir, c.LegacyDBFile)
}

// MarkerPath returns the location of the migration completion marker
func (c *Config) MarkerPath() string {
	return filepath.Join(c.UserDataDir, c.MarkerFile)
}

// ListenAddr returns host:port for the local HTTP surface
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.ListenHost, c.Port)
}

// defaultUserDataDir mirrors where the desktop shell keeps its user data.
func defaultUserDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return DefaultAppDirName
	}
	return filepath.Join(base, DefaultAppDirName)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default when unset or invalid
func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvAsDuration parses a Go duration ("90s", "1h"), falling back to the default when unset or invalid
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
