package handler

import (
	"net/http"

	"github.com/osse101/inventory-migrator/internal/domain"
	"github.com/osse101/inventory-migrator/internal/logger"
	"github.com/osse101/inventory-migrator/internal/migration"
)

// HandleMigrationStatus reports whether a migration is needed.
// Always 200; failures surface as needed=false.
func HandleMigrationStatus(svc migration.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := svc.Status(r.Context())
		logger.FromContext(r.Context()).Debug(LogMsgMigrationStatus,
			"needed", status.Needed, "done", status.Done, "db_exists", status.DBExists)
		respondJSON(w, http.StatusOK, status)
	}
}

// HandleMigrationRun runs the migration against the API named in the body.
// A well-formed request always gets 200 with the structured result.
func HandleMigrationRun(svc migration.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.RunRequest
		if err := DecodeAndValidateRequest(r, w, &req); err != nil {
			return
		}

		result := svc.Run(r.Context(), req)
		logger.FromContext(r.Context()).Info(LogMsgMigrationRunResult,
			"success", result.Success, "message", result.Message, "error", result.Error)
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleMigrationSkip records that the user declined the migration
func HandleMigrationSkip(svc migration.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result := svc.Skip(r.Context())
		logger.FromContext(r.Context()).Info(LogMsgMigrationSkipped, "success", result.Success, "error", result.Error)
		respondJSON(w, http.StatusOK, result)
	}
}
