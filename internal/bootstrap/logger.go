package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/osse101/inventory-migrator/internal/config"
	"github.com/osse101/inventory-migrator/internal/logger"
)

// SetupLogger installs the default logger. With a LogDir set, output goes to
// stderr and to a new session file; older session files beyond the retention
// count are removed. The returned closer must be closed on exit.
func SetupLogger(cfg *config.Config) (io.Closer, error) {
	return setupLogger(cfg, os.Stderr, time.Now())
}

func setupLogger(cfg *config.Config, console io.Writer, now time.Time) (io.Closer, error) {
	logCfg := logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment, false)

	if cfg.LogDir == "" {
		logger.InitLoggerWithWriter(logCfg, console)
		logStartup(cfg)
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateLogsDir, err)
	}

	cleanupLogs(cfg.LogDir, LogFileRetentionCount)

	logFileName := filepath.Join(cfg.LogDir, fmt.Sprintf(LogFileNamePattern, now.Format(LogFileTimestampFormat)))
	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenLogFile, err)
	}

	logger.InitLoggerWithWriter(logCfg, io.MultiWriter(console, logFile))
	logStartup(cfg)
	return logFile, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func logStartup(cfg *config.Config) {
	slog.Info(LogMsgLoggingInitialized, "level", cfg.LogLevel, "format", cfg.LogFormat, "log_dir", cfg.LogDir)
	slog.Info(LogMsgStarting, "version", cfg.Version, "environment", cfg.Environment)
	slog.Debug(LogMsgConfigurationLoaded,
		"environment", cfg.Environment,
		"user_data_dir", cfg.UserDataDir,
		"legacy_db", cfg.LegacyDBPath(),
		"marker", cfg.MarkerPath(),
		"listen", cfg.ListenAddr())
	for _, w := range cfg.Warnings() {
		slog.Warn(LogMsgConfigWarning, "warning", w)
	}
}

// cleanupLogs removes the oldest session logs so that at most keep remain.
// Names embed a sortable timestamp, so lexical order is age order.
func cleanupLogs(logDir string, keep int) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var logFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			logFiles = append(logFiles, entry.Name())
		}
	}
	sort.Strings(logFiles)

	for len(logFiles) > keep {
		if err := os.Remove(filepath.Join(logDir, logFiles[0])); err != nil {
			slog.Warn(LogMsgFailedDeleteOldLog, "file", logFiles[0], "error", err)
		}
		logFiles = logFiles[1:]
	}
}
