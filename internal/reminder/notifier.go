package reminder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/osse101/inventory-migrator/internal/domain"
	"github.com/osse101/inventory-migrator/internal/logger"
)

// Notifier delivers reminders
type Notifier interface {
	Notify(ctx context.Context, reminders []domain.Reminder) error
}

// WebhookNotifier logs every reminder and, when a URL is set, posts them as
// one JSON message to the webhook.
type WebhookNotifier struct {
	webhookURL string
	httpClient *http.Client
}

// NewNotifier creates a notifier. An empty webhookURL means log only.
func NewNotifier(webhookURL string) *WebhookNotifier {
	return &WebhookNotifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: webhookTimeout},
	}
}

type webhookPayload struct {
	Event     string            `json:"event"`
	Reminders []domain.Reminder `json:"reminders"`
}

// Notify logs the reminders and forwards them to the webhook
func (n *WebhookNotifier) Notify(ctx context.Context, reminders []domain.Reminder) error {
	log := logger.FromContext(ctx)
	for _, r := range reminders {
		log.Info(LogMsgReminder,
			"kind", r.Kind,
			"record_id", r.RecordID,
			"employee", r.EmployeeName,
			"login", r.Login,
			"due_date", r.DueDate,
			"overdue", r.Overdue)
	}

	if n.webhookURL == "" || len(reminders) == 0 {
		return nil
	}
	if err := n.post(ctx, reminders); err != nil {
		log.Error(LogMsgWebhookFailed, "error", err)
		return err
	}
	log.Info(LogMsgWebhookSent, "count", len(reminders))
	return nil
}

func (n *WebhookNotifier) post(ctx context.Context, reminders []domain.Reminder) error {
	jsonData, err := json.Marshal(webhookPayload{Event: webhookEvent, Reminders: reminders})
	if err != nil {
		return fmt.Errorf("failed to marshal reminder payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("reminder webhook returned status: %d", resp.StatusCode)
	}
	return nil
}
