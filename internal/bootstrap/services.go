package bootstrap

import (
	"github.com/osse101/inventory-migrator/internal/attachment"
	"github.com/osse101/inventory-migrator/internal/concurrency"
	"github.com/osse101/inventory-migrator/internal/config"
	"github.com/osse101/inventory-migrator/internal/importer"
	"github.com/osse101/inventory-migrator/internal/marker"
	"github.com/osse101/inventory-migrator/internal/migration"
	"github.com/osse101/inventory-migrator/internal/reminder"
)

// Services are the long-lived components built from the configuration
type Services struct {
	Marker    *marker.Marker
	Migration migration.Service
	Reminders *reminder.Scheduler
}

// BuildServices wires the migration pipeline and the reminder scheduler.
// Both share one marker so a completed migration idles the reminders.
func BuildServices(cfg *config.Config) *Services {
	mk := marker.New(cfg.MarkerPath())
	encoder := attachment.NewEncoder(cfg.TemplateFilesDir, cfg.InstructionFilesDir)
	client := importer.NewClient(cfg.ImportTimeout)

	return &Services{
		Marker:    mk,
		Migration: migration.NewService(cfg.LegacyDBPath(), mk, encoder, client, concurrency.NewLockManager()),
		Reminders: reminder.NewScheduler(reminder.Config{
			DBPath:   cfg.LegacyDBPath(),
			Interval: cfg.ReminderInterval,
			LeadDays: cfg.ReminderLeadDays,
		}, mk, reminder.NewNotifier(cfg.ReminderWebhookURL)),
	}
}
