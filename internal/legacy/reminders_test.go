package legacy

import (
	"context"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/inventory-migrator/internal/domain"
)

func TestDueReturns(t *testing.T) {
	ctx := context.Background()
	path, store := newFixtureStore(t)

	insert := func(name string, required, completed bool, due null.String) {
		_, err := store.InsertRequest(ctx, domain.Request{
			EmployeeName: name, Login: name,
			ReturnRequired: required, ReturnCompleted: completed, ReturnDueDate: due,
		})
		require.NoError(t, err)
	}
	insert("overdue", true, false, null.StringFrom("2024-05-01"))
	insert("due_today", true, false, null.StringFrom("2024-05-10"))
	insert("future", true, false, null.StringFrom("2024-06-01"))
	insert("returned", true, true, null.StringFrom("2024-05-01"))
	insert("not_required", false, false, null.StringFrom("2024-05-01"))
	insert("no_date", true, false, null.String{})

	due, err := openReadOnly(t, path).DueReturns(ctx, "2024-05-10")

	require.NoError(t, err)
	names := []string{}
	for _, r := range due {
		names = append(names, r.EmployeeName)
	}
	assert.Equal(t, []string{"overdue", "due_today"}, names)
}

func TestPendingExits(t *testing.T) {
	ctx := context.Background()
	path, store := newFixtureStore(t)

	for _, e := range []domain.EmployeeExit{
		{EmployeeName: "past", Login: "past", ExitDate: "2024-05-01"},
		{EmployeeName: "done", Login: "done", ExitDate: "2024-05-01", IsCompleted: true},
		{EmployeeName: "later", Login: "later", ExitDate: "2024-07-01"},
	} {
		_, err := store.InsertEmployeeExit(ctx, e)
		require.NoError(t, err)
	}

	exits, err := openReadOnly(t, path).PendingExits(ctx, "2024-05-02")

	require.NoError(t, err)
	require.Len(t, exits, 1)
	assert.Equal(t, "past", exits[0].EmployeeName)
}

func TestDueReturns_FileWithoutReturnColumns(t *testing.T) {
	store := openReadOnly(t, newPreReturnsFixture(t))

	due, err := store.DueReturns(context.Background(), "2030-01-01")

	require.NoError(t, err)
	assert.NotNil(t, due)
	assert.Empty(t, due)
}
