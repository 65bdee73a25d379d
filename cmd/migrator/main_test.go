package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/inventory-migrator/internal/config"
	"github.com/osse101/inventory-migrator/internal/domain"
	"github.com/osse101/inventory-migrator/internal/importer"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Environment:         "test",
		LogLevel:            "error",
		LogFormat:           "text",
		ServiceName:         "migrator-test",
		Version:             "test",
		UserDataDir:         dir,
		LegacyDBFile:        "inventory.db",
		MarkerFile:          ".migrated",
		TemplateFilesDir:    filepath.Join(dir, "templates"),
		InstructionFilesDir: filepath.Join(dir, "instructions"),
		ImportTimeout:       5 * time.Second,
		ListenHost:          "127.0.0.1",
		Port:                8090,
		ReminderLeadDays:    3,
	}
}

func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return newApp(context.Background(), testConfig(t), &buf, false), &buf
}

func TestRegistry(t *testing.T) {
	a, _ := newTestApp(t)
	r := newRegistry(a)

	names := make([]string, 0)
	for _, cmd := range r.List() {
		names = append(names, cmd.Name())
	}
	assert.Equal(t, []string{"remind", "run", "seed", "serve", "skip", "status"}, names)

	_, ok := r.Get("status")
	assert.True(t, ok)
	_, ok = r.Get("nope")
	assert.False(t, ok)

	var help bytes.Buffer
	r.PrintHelp(&help)
	assert.Contains(t, help.String(), "Usage: migrator <command>")
	assert.Contains(t, help.String(), "  skip    Mark the migration as done")
}

func TestStatusCommand_NoDatabase(t *testing.T) {
	a, buf := newTestApp(t)

	require.NoError(t, (&StatusCommand{app: a}).Run(nil))
	assert.Contains(t, buf.String(), "nothing to migrate")
}

func TestSeedThenStatus(t *testing.T) {
	a, buf := newTestApp(t)

	require.NoError(t, (&SeedCommand{app: a}).Run(nil))
	assert.Contains(t, buf.String(), "3 requests, 2 employee exits, 1 templates, 3 instructions")
	assert.FileExists(t, filepath.Join(a.cfg.TemplateFilesDir, sampleTemplateFile))

	buf.Reset()
	require.NoError(t, (&StatusCommand{app: a}).Run([]string{"--json"}))

	var status domain.MigrationStatus
	require.NoError(t, json.Unmarshal(buf.Bytes(), &status))
	assert.True(t, status.Needed)
	assert.True(t, status.DBExists)
	require.NotNil(t, status.Counts)
	assert.Equal(t, domain.TableCounts{Requests: 3, EmployeeExits: 2, Templates: 1, Instructions: 3}, *status.Counts)
}

func TestSeed_ResetKeepsCountsStable(t *testing.T) {
	a, buf := newTestApp(t)

	require.NoError(t, (&SeedCommand{app: a}).Run([]string{"--files=false"}))
	buf.Reset()
	require.NoError(t, (&SeedCommand{app: a}).Run([]string{"--reset", "--files=false"}))

	assert.Contains(t, buf.String(), "Cleared existing rows")
	assert.Contains(t, buf.String(), "3 requests")
	assert.NoFileExists(t, filepath.Join(a.cfg.TemplateFilesDir, sampleTemplateFile))
}

func TestRunCommand_ImportsSeededData(t *testing.T) {
	a, buf := newTestApp(t)
	require.NoError(t, (&SeedCommand{app: a}).Run(nil))
	buf.Reset()

	var payload domain.Snapshot
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, importer.ImportPath, r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		raw, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(raw, &payload))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"imported":{"requests":3,"employee_exits":2,"templates":1,"template_files":1,"instructions":3,"instruction_attachments":1}}`))
	}))
	defer srv.Close()

	err := (&RunCommand{app: a}).Run([]string{"--api-base-url", srv.URL, "--access-token", "secret"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Imported 3 requests")

	require.Len(t, payload.Templates, 1)
	// the missing attachment is dropped, the one on disk is kept
	assert.Len(t, payload.Templates[0].Files, 1)
	assert.Equal(t, "checklist.txt", payload.Templates[0].Files[0].OriginalName)
	for _, ins := range payload.Instructions {
		if ins.Title == "Wi-Fi" {
			assert.Empty(t, ins.Tags)
		}
		if ins.Title == "VPN setup" {
			assert.Equal(t, []string{"vpn", "remote"}, ins.Tags)
		}
	}

	_, err = os.Stat(a.cfg.MarkerPath())
	assert.NoError(t, err)

	buf.Reset()
	require.NoError(t, (&RunCommand{app: a}).Run([]string{"--api-base-url", srv.URL, "--access-token", "secret"}))
	assert.Contains(t, buf.String(), domain.ErrMsgAlreadyMigrated)
}

func TestRunCommand_MissingToken(t *testing.T) {
	a, _ := newTestApp(t)
	require.NoError(t, (&SeedCommand{app: a}).Run([]string{"--files=false"}))

	err := (&RunCommand{app: a}).Run([]string{"--api-base-url", "http://127.0.0.1:1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrMsgInvalidInput)
	assert.NoFileExists(t, a.cfg.MarkerPath())
}

func TestSkipCommand(t *testing.T) {
	a, buf := newTestApp(t)
	require.NoError(t, (&SeedCommand{app: a}).Run([]string{"--files=false"}))

	require.NoError(t, (&SkipCommand{app: a}).Run(nil))
	assert.Contains(t, buf.String(), "Migration skipped")
	assert.FileExists(t, a.cfg.MarkerPath())

	buf.Reset()
	require.NoError(t, (&StatusCommand{app: a}).Run(nil))
	assert.Contains(t, buf.String(), "Migration already completed")
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := printer{w: &buf}
	p.Warning("disk %d%% full", 90)
	assert.Equal(t, "⚠ disk 90% full\n", buf.String())

	buf.Reset()
	p.color = true
	p.Error("boom")
	assert.Equal(t, colorRed+"✗ boom"+colorReset+"\n", buf.String())
}
