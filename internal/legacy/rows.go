package legacy

import (
	"fmt"
	"strings"

	"github.com/aarondl/null/v8"

	"github.com/osse101/inventory-migrator/internal/domain"
)

// Raw row shapes as stored. Every column that SQLite could hand back as NULL
// is scanned into a null type; conversion to domain entities validates and
// coerces at this boundary.

type requestRow struct {
	ID                int64
	EmployeeName      null.String
	Login             null.String
	SDNumber          null.String
	CreatedAt         null.String
	IsIssued          null.Int64
	IssuedAt          null.String
	Notes             null.String
	ReturnRequired    null.Int64
	ReturnDueDate     null.String
	ReturnEquipment   null.String
	ReturnCompleted   null.Int64
	ReturnCompletedAt null.String
	ReturnScheduledAt null.String
}

var requestColumns = []string{
	"id", "employee_name", "login", "sd_number", "created_at", "is_issued", "issued_at", "notes",
	"return_required", "return_due_date", "return_equipment", "return_completed",
	"return_completed_at", "return_scheduled_at",
}

// returnColumns were added to requests by a later desktop release; files
// written before it lack them.
var returnColumns = map[string]bool{
	"return_required":     true,
	"return_due_date":     true,
	"return_equipment":    true,
	"return_completed":    true,
	"return_completed_at": true,
	"return_scheduled_at": true,
}

func (r *requestRow) dest() []interface{} {
	return []interface{}{
		&r.ID, &r.EmployeeName, &r.Login, &r.SDNumber, &r.CreatedAt, &r.IsIssued, &r.IssuedAt, &r.Notes,
		&r.ReturnRequired, &r.ReturnDueDate, &r.ReturnEquipment, &r.ReturnCompleted,
		&r.ReturnCompletedAt, &r.ReturnScheduledAt,
	}
}

func (r *requestRow) toDomain() (domain.Request, error) {
	if err := requireFields(domain.TableRequests, r.ID, map[string]null.String{
		"employee_name": r.EmployeeName,
		"login":         r.Login,
	}); err != nil {
		return domain.Request{}, err
	}

	return domain.Request{
		ID:                r.ID,
		EmployeeName:      r.EmployeeName.String,
		Login:             r.Login.String,
		SDNumber:          optional(r.SDNumber),
		CreatedAt:         r.CreatedAt.String,
		IsIssued:          flag(r.IsIssued),
		IssuedAt:          optional(r.IssuedAt),
		Notes:             optional(r.Notes),
		ReturnRequired:    flag(r.ReturnRequired),
		ReturnDueDate:     optional(r.ReturnDueDate),
		ReturnEquipment:   optional(r.ReturnEquipment),
		ReturnCompleted:   flag(r.ReturnCompleted),
		ReturnCompletedAt: optional(r.ReturnCompletedAt),
		ReturnScheduledAt: optional(r.ReturnScheduledAt),
		EquipmentItems:    []domain.EquipmentItem{},
	}, nil
}

type equipmentItemRow struct {
	ID            int64
	RequestID     int64
	EquipmentName null.String
	SerialNumber  null.String
	Quantity      null.Int64
	Status        null.String
}

var equipmentItemColumns = []string{"id", "request_id", "equipment_name", "serial_number", "quantity", "status"}

func (r *equipmentItemRow) dest() []interface{} {
	return []interface{}{&r.ID, &r.RequestID, &r.EquipmentName, &r.SerialNumber, &r.Quantity, &r.Status}
}

func (r *equipmentItemRow) toDomain() (domain.EquipmentItem, error) {
	if err := requireFields(domain.TableEquipmentItems, r.ID, map[string]null.String{
		"equipment_name": r.EquipmentName,
	}); err != nil {
		return domain.EquipmentItem{}, err
	}

	quantity := int(r.Quantity.Int64)
	if !r.Quantity.Valid || quantity <= 0 {
		quantity = domain.DefaultEquipmentQuantity
	}

	return domain.EquipmentItem{
		ID:            r.ID,
		RequestID:     r.RequestID,
		EquipmentName: r.EquipmentName.String,
		SerialNumber:  optional(r.SerialNumber),
		Quantity:      quantity,
		Status:        optional(r.Status),
	}, nil
}

type employeeExitRow struct {
	ID            int64
	EmployeeName  null.String
	Login         null.String
	SDNumber      null.String
	ExitDate      null.String
	EquipmentList null.String
	IsCompleted   null.Int64
	CreatedAt     null.String
}

var employeeExitColumns = []string{
	"id", "employee_name", "login", "sd_number", "exit_date", "equipment_list", "is_completed", "created_at",
}

func (r *employeeExitRow) dest() []interface{} {
	return []interface{}{&r.ID, &r.EmployeeName, &r.Login, &r.SDNumber, &r.ExitDate, &r.EquipmentList, &r.IsCompleted, &r.CreatedAt}
}

func (r *employeeExitRow) toDomain() (domain.EmployeeExit, error) {
	if err := requireFields(domain.TableEmployeeExits, r.ID, map[string]null.String{
		"employee_name": r.EmployeeName,
		"login":         r.Login,
	}); err != nil {
		return domain.EmployeeExit{}, err
	}

	return domain.EmployeeExit{
		ID:            r.ID,
		EmployeeName:  r.EmployeeName.String,
		Login:         r.Login.String,
		SDNumber:      optional(r.SDNumber),
		ExitDate:      r.ExitDate.String,
		EquipmentList: optional(r.EquipmentList),
		IsCompleted:   flag(r.IsCompleted),
		CreatedAt:     r.CreatedAt.String,
	}, nil
}

type templateRow struct {
	ID        int64
	Title     null.String
	Content   null.String
	SortOrder null.Int64
	CreatedAt null.String
}

var templateColumns = []string{"id", "title", "content", "sort_order", "created_at"}

func (r *templateRow) dest() []interface{} {
	return []interface{}{&r.ID, &r.Title, &r.Content, &r.SortOrder, &r.CreatedAt}
}

func (r *templateRow) toDomain() (domain.Template, error) {
	if err := requireFields(domain.TableTemplates, r.ID, map[string]null.String{
		"title": r.Title,
	}); err != nil {
		return domain.Template{}, err
	}

	return domain.Template{
		ID:        r.ID,
		Title:     r.Title.String,
		Content:   r.Content.String,
		SortOrder: int(r.SortOrder.Int64),
		CreatedAt: r.CreatedAt.String,
		Files:     []domain.TemplateFile{},
	}, nil
}

type instructionRow struct {
	ID         int64
	ParentID   null.Int64
	Title      null.String
	Content    null.String
	IsFolder   null.Int64
	IsFavorite null.Int64
	Tags       null.String
	SortOrder  null.Int64
	CreatedAt  null.String
}

var instructionColumns = []string{
	"id", "parent_id", "title", "content", "is_folder", "is_favorite", "tags", "sort_order", "created_at",
}

func (r *instructionRow) dest() []interface{} {
	return []interface{}{&r.ID, &r.ParentID, &r.Title, &r.Content, &r.IsFolder, &r.IsFavorite, &r.Tags, &r.SortOrder, &r.CreatedAt}
}

func (r *instructionRow) toDomain() (domain.Instruction, error) {
	if err := requireFields(domain.TableInstructions, r.ID, map[string]null.String{
		"title": r.Title,
	}); err != nil {
		return domain.Instruction{}, err
	}

	parent := r.ParentID
	if parent.Valid && parent.Int64 <= 0 {
		parent = null.Int64{}
	}

	return domain.Instruction{
		ID:         r.ID,
		ParentID:   parent,
		Title:      r.Title.String,
		Content:    optional(r.Content),
		IsFolder:   flag(r.IsFolder),
		IsFavorite: flag(r.IsFavorite),
		Tags:       ParseTags(r.Tags),
		SortOrder:  int(r.SortOrder.Int64),
		CreatedAt:  r.CreatedAt.String,
		Files:      []domain.InstructionAttachment{},
	}, nil
}

// attachmentRow covers template_files and instruction_attachments, which
// share their layout apart from the owner column.
type attachmentRow struct {
	ID           int64
	OwnerID      int64
	OriginalName null.String
	MimeType     null.String
	StoredName   null.String
}

func attachmentColumns(ownerColumn string) []string {
	return []string{"f.id", "f." + ownerColumn, "f.original_name", "f.mime_type", "f.stored_name"}
}

func (r *attachmentRow) dest() []interface{} {
	return []interface{}{&r.ID, &r.OwnerID, &r.OriginalName, &r.MimeType, &r.StoredName}
}

// name falls back to the stored name when the original name was never recorded
func (r *attachmentRow) name() string {
	if r.OriginalName.Valid && strings.TrimSpace(r.OriginalName.String) != "" {
		return r.OriginalName.String
	}
	return r.StoredName.String
}

func requireFields(table string, id int64, fields map[string]null.String) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s: non-positive id %d", domain.ErrMalformedRow, table, id)
	}
	for column, value := range fields {
		if !value.Valid || strings.TrimSpace(value.String) == "" {
			return fmt.Errorf("%w: %s id=%d: missing %s", domain.ErrMalformedRow, table, id, column)
		}
	}
	return nil
}

// flag coerces an integer 0/1 column to a boolean
func flag(v null.Int64) bool {
	return v.Valid && v.Int64 != 0
}

// optional normalises empty strings to NULL so absent text encodes as null
func optional(v null.String) null.String {
	if !v.Valid || v.String == "" {
		return null.String{}
	}
	return v
}
