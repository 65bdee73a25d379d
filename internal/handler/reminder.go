package handler

import (
	"context"
	"net/http"

	"github.com/osse101/inventory-migrator/internal/domain"
	"github.com/osse101/inventory-migrator/internal/logger"
)

// ReminderTrigger runs one reminder check on demand
type ReminderTrigger interface {
	Trigger(ctx context.Context) (domain.ReminderCheck, error)
}

// HandleTriggerReminders runs a reminder check and returns what was sent
func HandleTriggerReminders(trigger ReminderTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		result, err := trigger.Trigger(r.Context())
		if err != nil {
			log.Error(LogMsgReminderFailed, "error", err)
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}

		log.Info(LogMsgReminderTriggered, "sent", len(result.Sent), "suppressed", result.Suppressed, "idle", result.Idle)
		respondJSON(w, http.StatusOK, result)
	}
}
