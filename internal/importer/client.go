// Package importer submits a legacy snapshot to the remote inventory API.
package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/osse101/inventory-migrator/internal/domain"
	"github.com/osse101/inventory-migrator/internal/logger"
	"github.com/osse101/inventory-migrator/internal/metrics"
)

// ImportPath is appended to the API base URL
const ImportPath = "/api/v1/migrate/import"

// maxResponseBytes bounds how much of a response body is read
const maxResponseBytes = 1 << 20

// APIError is a non-2xx answer from the import endpoint
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", domain.ErrMsgImportRejected, e.Message)
}

// Unwrap lets callers match domain.ErrImportRejected
func (e *APIError) Unwrap() error {
	return domain.ErrImportRejected
}

// Client handles communication with the remote import endpoint
type Client struct {
	httpClient *http.Client
}

// NewClient creates a client. A zero timeout leaves the request bounded only
// by the caller's context.
func NewClient(timeout time.Duration) *Client {
	return NewClientWithHTTP(&http.Client{Timeout: timeout})
}

// NewClientWithHTTP uses a caller-provided http.Client, e.g. one trusting a
// private CA. nil falls back to http.DefaultClient.
func NewClientWithHTTP(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient}
}

type importResponse struct {
	Success  bool                  `json:"success"`
	Imported *domain.ImportSummary `json:"imported"`
}

// Import posts the snapshot once. There is no retry: a failed import leaves
// nothing recorded locally and the user may simply run again.
func (c *Client) Import(ctx context.Context, baseURL, accessToken string, snapshot *domain.Snapshot) (*domain.ImportSummary, error) {
	log := logger.FromContext(ctx)

	body, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	metrics.MigrationPayloadBytes.Observe(float64(len(body)))

	url := strings.TrimRight(baseURL, "/") + ImportPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create import request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	log.Info(LogMsgSendingImport, "url", url, "payload_bytes", len(body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send import request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read import response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: errorMessage(respBody, resp.StatusCode)}
		log.Warn(LogMsgImportRejected, "status", resp.StatusCode, "message", apiErr.Message)
		return nil, apiErr
	}

	summary := &domain.ImportSummary{}
	var parsed importResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		log.Warn(LogMsgUnparseableSuccessBody, "status", resp.StatusCode, "error", err)
		return summary, nil
	}
	if parsed.Imported != nil {
		summary = parsed.Imported
	}

	log.Info(LogMsgImportAccepted, "status", resp.StatusCode, "imported", summary)
	return summary, nil
}

// errorMessage extracts a human message from an error body. Accepted shapes:
// {"error":{"message":"..."}}, {"error":"..."} and {"message":"..."}.
func errorMessage(body []byte, status int) string {
	fallback := fmt.Sprintf("HTTP %d", status)

	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fallback
	}

	if len(envelope.Error) > 0 {
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(envelope.Error, &nested); err == nil && nested.Message != "" {
			return nested.Message
		}
		var plain string
		if err := json.Unmarshal(envelope.Error, &plain); err == nil && plain != "" {
			return plain
		}
	}

	if envelope.Message != "" {
		return envelope.Message
	}
	return fallback
}
