package migration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/inventory-migrator/internal/attachment"
	"github.com/osse101/inventory-migrator/internal/concurrency"
	"github.com/osse101/inventory-migrator/internal/domain"
	"github.com/osse101/inventory-migrator/internal/legacy"
	"github.com/osse101/inventory-migrator/internal/marker"
)

// MockImporter is a testify mock of the remote client
type MockImporter struct {
	mock.Mock
}

func (m *MockImporter) Import(ctx context.Context, baseURL, accessToken string, snapshot *domain.Snapshot) (*domain.ImportSummary, error) {
	args := m.Called(ctx, baseURL, accessToken, snapshot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportSummary), args.Error(1)
}

// failingMarker reports a configurable error from Write
type failingMarker struct {
	exists   bool
	writeErr error
	writes   int
}

func (f *failingMarker) Exists() (bool, error) { return f.exists, nil }
func (f *failingMarker) Write() error {
	f.writes++
	return f.writeErr
}

var errCountFailed = errors.New("no such table: requests")

// brokenStore fails every read
type brokenStore struct{}

func (brokenStore) Counts(context.Context) (domain.TableCounts, error) {
	return domain.TableCounts{}, errCountFailed
}
func (brokenStore) ReadSnapshot(context.Context, legacy.FileEncoder) (*domain.Snapshot, error) {
	return nil, errCountFailed
}
func (brokenStore) Close() error { return nil }

type fixture struct {
	dir            string
	dbPath         string
	markerPath     string
	templateDir    string
	instructionDir string
	marker         *marker.Marker
	encoder        *attachment.Encoder
	locks          *concurrency.LockManager
}

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		dir:            dir,
		dbPath:         filepath.Join(dir, "inventory.db"),
		markerPath:     filepath.Join(dir, ".migration-completed"),
		templateDir:    filepath.Join(dir, "template_files"),
		instructionDir: filepath.Join(dir, "instruction_files"),
		locks:          concurrency.NewLockManager(),
	}
	require.NoError(t, os.MkdirAll(f.templateDir, 0o755))
	require.NoError(t, os.MkdirAll(f.instructionDir, 0o755))
	f.marker = marker.New(f.markerPath).WithClock(func() time.Time { return fixedNow })
	f.encoder = attachment.NewEncoder(f.templateDir, f.instructionDir)
	return f
}

func (f *fixture) service(imp Importer, opts ...Option) Service {
	return NewService(f.dbPath, f.marker, f.encoder, imp, f.locks, opts...)
}

// seed writes two requests, one exit and one template with a file on disk
func (f *fixture) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	store, err := legacy.OpenWritable(ctx, f.dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.InsertRequest(ctx, domain.Request{
		EmployeeName: "Anna Smirnova",
		Login:        "asmirnova",
		SDNumber:     null.StringFrom("SD-1"),
		EquipmentItems: []domain.EquipmentItem{
			{EquipmentName: "Laptop", SerialNumber: null.StringFrom("SN-1"), Quantity: 1},
			{EquipmentName: "Mouse", Quantity: 2},
		},
	})
	require.NoError(t, err)
	_, err = store.InsertRequest(ctx, domain.Request{EmployeeName: "Boris Orlov", Login: "borlov"})
	require.NoError(t, err)
	_, err = store.InsertEmployeeExit(ctx, domain.EmployeeExit{EmployeeName: "Vera Lis", Login: "vlis", ExitDate: "2025-04-01"})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(f.templateDir, "stored-1.pdf"), []byte("%PDF-1.4"), 0o644))
	_, err = store.InsertTemplate(ctx, domain.Template{Title: "Welcome", Content: "Hello"}, []legacy.StoredFile{
		{OriginalName: "guide.pdf", MimeType: null.StringFrom("application/pdf"), StoredName: "stored-1.pdf"},
	})
	require.NoError(t, err)
}

func validRequest(baseURL string) domain.RunRequest {
	return domain.RunRequest{APIBaseURL: baseURL, AccessToken: "token-abc"}
}
