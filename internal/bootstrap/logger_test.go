package bootstrap

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/inventory-migrator/internal/config"
)

func testConfig(logDir string) *config.Config {
	return &config.Config{
		Environment: "test",
		LogLevel:    "info",
		LogFormat:   "text",
		LogDir:      logDir,
		ServiceName: "inventory-migrator",
		UserDataDir: "/tmp/inventory-desk",
		ListenHost:  "127.0.0.1",
		Port:        8765,
	}
}

func TestSetupLogger_ConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	closer, err := setupLogger(testConfig(""), &console, time.Now())
	require.NoError(t, err)
	defer closer.Close()

	assert.Contains(t, console.String(), LogMsgLoggingInitialized)
	assert.Contains(t, console.String(), "service=inventory-migrator")
}

func TestSetupLogger_WritesSessionFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	now := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)

	var console bytes.Buffer
	closer, err := setupLogger(testConfig(dir), &console, now)
	require.NoError(t, err)
	require.NoError(t, closer.Close())

	content, err := os.ReadFile(filepath.Join(dir, "session_2025-02-03_04-05-06.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), LogMsgLoggingInitialized)
	assert.Contains(t, console.String(), LogMsgLoggingInitialized)
}

func TestCleanupLogs(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 12; i++ {
		name := fmt.Sprintf("session_2025-01-%02d_00-00-00.log", i)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))

	cleanupLogs(dir, LogFileRetentionCount)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var logs []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == LogFileExtension {
			logs = append(logs, e.Name())
		}
	}
	assert.Len(t, logs, LogFileRetentionCount)
	assert.NotContains(t, logs, "session_2025-01-01_00-00-00.log")
	assert.Contains(t, logs, "session_2025-01-12_00-00-00.log")
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}
