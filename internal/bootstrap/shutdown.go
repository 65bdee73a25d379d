package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/inventory-migrator/internal/reminder"
	"github.com/osse101/inventory-migrator/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server    *server.Server
	Reminders *reminder.Scheduler
}

// GracefulShutdown stops the HTTP server first so no new run can start, then
// the reminder scheduler. Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	if components.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedStop, "error", err)
		}
	}

	if components.Reminders != nil {
		slog.Info(LogMsgStoppingReminders)
		components.Reminders.Stop()
	}

	slog.Info(LogMsgServerStopped)
}
