package importer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/inventory-migrator/internal/domain"
)

func sampleSnapshot() *domain.Snapshot {
	s := domain.NewSnapshot()
	s.Requests = append(s.Requests, domain.Request{ID: 1, EmployeeName: "Anna", Login: "anna", EquipmentItems: []domain.EquipmentItem{}})
	return s
}

func TestImport_Success(t *testing.T) {
	var (
		gotPath   string
		gotAuth   string
		gotCT     string
		gotMethod string
		gotBody   map[string]interface{}
		calls     int
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		gotCT = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"imported":{"requests":1,"employee_exits":0,"templates":0,"template_files":0,"instructions":0,"instruction_attachments":0}}`))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	summary, err := client.Import(context.Background(), srv.URL+"/", "tok-123", sampleSnapshot())

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, ImportPath, gotPath, "trailing slash on base URL is trimmed")
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "application/json", gotCT)
	assert.Len(t, gotBody["requests"], 1)
	assert.Equal(t, &domain.ImportSummary{Requests: 1}, summary)
}

func TestImport_SuccessWithoutJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	summary, err := NewClient(0).Import(context.Background(), srv.URL, "t", sampleSnapshot())

	require.NoError(t, err)
	assert.Equal(t, &domain.ImportSummary{}, summary)
}

func TestImport_ErrorResponses(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{"nested error message", http.StatusInternalServerError, `{"error":{"message":"db down"}}`, "db down"},
		{"plain error string", http.StatusBadRequest, `{"error":"bad payload"}`, "bad payload"},
		{"top-level message", http.StatusForbidden, `{"message":"token expired"}`, "token expired"},
		{"error without message", http.StatusConflict, `{"error":{"code":42}}`, "HTTP 409"},
		{"not json", http.StatusBadGateway, `<html>gateway</html>`, "HTTP 502"},
		{"empty body", http.StatusUnauthorized, ``, "HTTP 401"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			summary, err := NewClient(time.Second).Import(context.Background(), srv.URL, "t", sampleSnapshot())

			require.Error(t, err)
			assert.Nil(t, summary)
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.ErrorIs(t, err, domain.ErrImportRejected)
		})
	}
}

func TestImport_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(time.Second).Import(context.Background(), url, "t", sampleSnapshot())

	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Contains(t, err.Error(), "failed to send import request")
}

func TestImport_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewClient(0).Import(ctx, srv.URL, "t", sampleSnapshot())

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestImport_CustomHTTPClient(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"imported":{"templates":2}}`))
	}))
	defer srv.Close()

	// the default client does not trust the test certificate
	_, err := NewClient(time.Second).Import(context.Background(), srv.URL, "tok", sampleSnapshot())
	require.Error(t, err)

	summary, err := NewClientWithHTTP(srv.Client()).Import(context.Background(), srv.URL, "tok", sampleSnapshot())
	require.NoError(t, err)
	assert.Equal(t, &domain.ImportSummary{Templates: 2}, summary)
}

func TestNewClientWithHTTP_NilUsesDefault(t *testing.T) {
	assert.Same(t, http.DefaultClient, NewClientWithHTTP(nil).httpClient)
}
