package legacy

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/require"

	"github.com/osse101/inventory-migrator/internal/domain"
	"github.com/osse101/inventory-migrator/internal/legacy/schema"
)

// fakeEncoder reports files present in its map and drops everything else
type fakeEncoder struct {
	files map[string]string
	calls []string
}

func (f *fakeEncoder) Encode(kind, storedName string) (string, bool) {
	f.calls = append(f.calls, kind+"/"+storedName)
	data, ok := f.files[kind+"/"+storedName]
	return data, ok
}

// newFixtureStore creates a fresh legacy database file and returns its path
// together with a writable handle closed at test end.
func newFixtureStore(t *testing.T) (string, *Store) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory.db")

	store, err := OpenWritable(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return path, store
}

// openReadOnly opens path read-only and closes it at test end
func openReadOnly(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRequest(name string, items ...domain.EquipmentItem) domain.Request {
	return domain.Request{
		EmployeeName:   name,
		Login:          "login_" + name,
		SDNumber:       null.StringFrom("SD-100"),
		EquipmentItems: items,
	}
}

func sampleItem(name, serial string, qty int) domain.EquipmentItem {
	return domain.EquipmentItem{
		EquipmentName: name,
		SerialNumber:  null.StringFrom(serial),
		Quantity:      qty,
		Status:        null.StringFrom("issued"),
	}
}

// newPreReturnsFixture writes a database at the first schema version, before
// requests gained return tracking, holding one request with one item.
func newPreReturnsFixture(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "inventory.db")

	db, err := sql.Open(driverName, path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, schema.ApplyTo(ctx, db, 1))
	_, err = db.ExecContext(ctx,
		`INSERT INTO requests (employee_name, login, sd_number, is_issued) VALUES ('Old Timer', 'otimer', 'SD-7', 1)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		`INSERT INTO equipment_items (request_id, equipment_name, quantity) VALUES (1, 'Monitor', 2)`)
	require.NoError(t, err)

	return path
}
