package validation

import (
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/inventory-migrator/internal/domain"
)

func validSnapshot() *domain.Snapshot {
	s := domain.NewSnapshot()
	s.Requests = append(s.Requests, domain.Request{
		ID:           1,
		EmployeeName: "Ivanov",
		Login:        "ivanov",
		CreatedAt:    "2024-01-10 09:00:00",
		EquipmentItems: []domain.EquipmentItem{
			{ID: 1, RequestID: 1, EquipmentName: "Laptop", Quantity: 1},
		},
	})
	s.EmployeeExits = append(s.EmployeeExits, domain.EmployeeExit{
		ID: 1, EmployeeName: "Petrov", Login: "petrov", ExitDate: "2024-02-01", CreatedAt: "2024-01-15",
	})
	s.Templates = append(s.Templates, domain.Template{
		ID: 1, Title: "Welcome", Content: "Hello", CreatedAt: "2024-01-01",
		Files: []domain.TemplateFile{{ID: 1, TemplateID: 1, OriginalName: "a.txt", Base64Data: "aGVsbG8="}},
	})
	s.Instructions = append(s.Instructions, domain.Instruction{
		ID: 2, ParentID: null.Int64From(1), Title: "VPN", Tags: []string{"net"}, CreatedAt: "2024-01-01",
		Files: []domain.InstructionAttachment{},
	})
	return s
}

func TestSchemaValidator_ValidateSnapshot(t *testing.T) {
	v := NewSchemaValidator()

	t.Run("valid snapshot", func(t *testing.T) {
		assert.NoError(t, v.ValidateSnapshot(validSnapshot()))
	})

	t.Run("empty snapshot", func(t *testing.T) {
		assert.NoError(t, v.ValidateSnapshot(domain.NewSnapshot()))
	})

	t.Run("blank login", func(t *testing.T) {
		s := validSnapshot()
		s.Requests[0].Login = ""
		err := v.ValidateSnapshot(s)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidPayload)
		assert.Contains(t, err.Error(), "/requests/0/login")
	})

	t.Run("empty attachment data", func(t *testing.T) {
		s := validSnapshot()
		s.Templates[0].Files[0].Base64Data = ""
		err := v.ValidateSnapshot(s)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "/templates/0/files/0/base64_data")
	})

	t.Run("nil lists", func(t *testing.T) {
		s := validSnapshot()
		s.Instructions[0].Tags = nil
		err := v.ValidateSnapshot(s)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "/instructions/0/tags")
	})
}

func TestSchemaValidator_ValidateBytes(t *testing.T) {
	v := NewSchemaValidator()

	tests := []struct {
		name      string
		data      string
		wantError bool
		errorMsg  string
	}{
		{
			name: "all lists present",
			data: `{"requests":[],"employee_exits":[],"templates":[],"instructions":[]}`,
		},
		{
			name:      "missing list",
			data:      `{"requests":[],"employee_exits":[],"templates":[]}`,
			wantError: true,
			errorMsg:  "required",
		},
		{
			name:      "invalid JSON",
			data:      `{"requests":`,
			wantError: true,
			errorMsg:  "failed to parse JSON data",
		},
		{
			name:      "zero id",
			data:      `{"requests":[],"employee_exits":[{"id":0,"employee_name":"a","login":"a","exit_date":"x","is_completed":false,"created_at":"x"}],"templates":[],"instructions":[]}`,
			wantError: true,
			errorMsg:  "/employee_exits/0/id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), ImportPayloadSchema)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestSchemaValidator_UnknownSchema(t *testing.T) {
	v := NewSchemaValidator()
	err := v.ValidateBytes([]byte(`{}`), "missing.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schema")
}
