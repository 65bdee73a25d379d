package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allEnvVars = []string{
	EnvEnvironment, EnvLogLevel, EnvLogFormat, EnvLogDir, EnvServiceName, EnvVersion,
	EnvUserDataDir, EnvLegacyDBFile, EnvMarkerFile, EnvTemplateFilesDir, EnvInstructionFilesDir,
	EnvAPIBaseURL, EnvAPIAccessToken, EnvImportTimeout, EnvListenHost, EnvPort, EnvAPIKey,
	EnvReminderInterval, EnvReminderLeadDays, EnvReminderWebhookURL,
}

// clearEnvVars unsets every variable Load reads and restores them afterwards
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range allEnvVars {
		if prev, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, prev) })
		}
		os.Unsetenv(key)
	}
}

// TestLoad tests configuration loading from environment
func TestLoad(t *testing.T) {
	t.Run("loads config with defaults when no env vars set", func(t *testing.T) {
		clearEnvVars(t)
		dir := t.TempDir()
		t.Setenv(EnvUserDataDir, dir)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, DefaultPort, cfg.Port)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, filepath.Join(dir, DefaultLegacyDBFile), cfg.LegacyDBPath())
		assert.Equal(t, filepath.Join(dir, DefaultMarkerFile), cfg.MarkerPath())
		assert.Equal(t, filepath.Join(dir, DefaultTemplateFilesDir), cfg.TemplateFilesDir)
		assert.Equal(t, filepath.Join(dir, DefaultInstructionFilesDir), cfg.InstructionFilesDir)
		assert.Equal(t, DefaultImportTimeout, cfg.ImportTimeout)
		assert.Equal(t, "127.0.0.1:8765", cfg.ListenAddr())
	})

	t.Run("loads config from environment variables", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvUserDataDir, "/data/desk")
		t.Setenv(EnvLegacyDBFile, "legacy.sqlite")
		t.Setenv(EnvMarkerFile, "done.flag")
		t.Setenv(EnvTemplateFilesDir, "/srv/templates")
		t.Setenv(EnvPort, "9000")
		t.Setenv(EnvLogLevel, "debug")
		t.Setenv(EnvLogFormat, "json")
		t.Setenv(EnvEnvironment, "prod")
		t.Setenv(EnvAPIBaseURL, "https://inventory.example.com")
		t.Setenv(EnvImportTimeout, "90s")
		t.Setenv(EnvReminderInterval, "1h")
		t.Setenv(EnvReminderLeadDays, "3")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 9000, cfg.Port)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "prod", cfg.Environment)
		assert.Equal(t, "/data/desk/legacy.sqlite", cfg.LegacyDBPath())
		assert.Equal(t, "/data/desk/done.flag", cfg.MarkerPath())
		assert.Equal(t, "/srv/templates", cfg.TemplateFilesDir)
		assert.Equal(t, "/data/desk/instruction_files", cfg.InstructionFilesDir)
		assert.Equal(t, 90*time.Second, cfg.ImportTimeout)
		assert.Equal(t, time.Hour, cfg.ReminderInterval)
		assert.Equal(t, 3, cfg.ReminderLeadDays)
	})

	t.Run("returns error for invalid PORT", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvUserDataDir, t.TempDir())
		t.Setenv(EnvPort, "not-a-number")

		cfg, err := Load()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "invalid PORT")
	})

	t.Run("rejects out of range port", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvUserDataDir, t.TempDir())
		t.Setenv(EnvPort, "70000")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Port")
	})

	t.Run("rejects marker file name with path separator", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvUserDataDir, t.TempDir())
		t.Setenv(EnvMarkerFile, "../escape")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "MarkerFile")
	})

	t.Run("rejects unknown log format", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvUserDataDir, t.TempDir())
		t.Setenv(EnvLogFormat, "xml")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "LogFormat")
	})
}

func TestGetEnvHelpers(t *testing.T) {
	t.Run("int falls back on invalid value", func(t *testing.T) {
		t.Setenv("TEST_INT_VAR", "nope")
		assert.Equal(t, 42, getEnvAsInt("TEST_INT_VAR", 42))
	})

	t.Run("int parses value", func(t *testing.T) {
		t.Setenv("TEST_INT_VAR", "-10")
		assert.Equal(t, -10, getEnvAsInt("TEST_INT_VAR", 42))
	})

	t.Run("duration falls back on invalid value", func(t *testing.T) {
		t.Setenv("TEST_DURATION_VAR", "ten minutes")
		assert.Equal(t, time.Minute, getEnvAsDuration("TEST_DURATION_VAR", time.Minute))
	})

	t.Run("duration zero is kept", func(t *testing.T) {
		t.Setenv("TEST_DURATION_VAR", "0s")
		assert.Equal(t, time.Duration(0), getEnvAsDuration("TEST_DURATION_VAR", time.Minute))
	})
}

func TestWarnings(t *testing.T) {
	cfg := &Config{
		ListenHost:     "0.0.0.0",
		APIAccessToken: "token",
		ImportTimeout:  0,
	}

	warnings := cfg.Warnings()

	assert.Len(t, warnings, 3)
	assert.Contains(t, warnings[0], "API_KEY")

	cfg = &Config{ListenHost: DefaultListenHost, ImportTimeout: time.Minute}
	assert.Empty(t, cfg.Warnings())
}
