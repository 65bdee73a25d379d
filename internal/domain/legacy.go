package domain

import "github.com/aarondl/null/v8"

// Request is an equipment issuance request created by the desktop application.
// Optional text columns are null.String so they serialize as JSON null.
type Request struct {
	ID                int64           `json:"id"`
	EmployeeName      string          `json:"employee_name"`
	Login             string          `json:"login"`
	SDNumber          null.String     `json:"sd_number"`
	CreatedAt         string          `json:"created_at"`
	IsIssued          bool            `json:"is_issued"`
	IssuedAt          null.String     `json:"issued_at"`
	Notes             null.String     `json:"notes"`
	ReturnRequired    bool            `json:"return_required"`
	ReturnDueDate     null.String     `json:"return_due_date"`
	ReturnEquipment   null.String     `json:"return_equipment"`
	ReturnCompleted   bool            `json:"return_completed"`
	ReturnCompletedAt null.String     `json:"return_completed_at"`
	ReturnScheduledAt null.String     `json:"return_scheduled_at"`
	EquipmentItems    []EquipmentItem `json:"equipment_items"`
}

// EquipmentItem is a single line of equipment handed out under a Request.
type EquipmentItem struct {
	ID            int64       `json:"id"`
	RequestID     int64       `json:"request_id"`
	EquipmentName string      `json:"equipment_name"`
	SerialNumber  null.String `json:"serial_number"`
	Quantity      int         `json:"quantity"`
	Status        null.String `json:"status"`
}

// EmployeeExit tracks the equipment checklist of a departing employee.
type EmployeeExit struct {
	ID            int64       `json:"id"`
	EmployeeName  string      `json:"employee_name"`
	Login         string      `json:"login"`
	SDNumber      null.String `json:"sd_number"`
	ExitDate      string      `json:"exit_date"`
	EquipmentList null.String `json:"equipment_list"`
	IsCompleted   bool        `json:"is_completed"`
	CreatedAt     string      `json:"created_at"`
}

// Template is a reusable help-desk text with attached files.
type Template struct {
	ID        int64          `json:"id"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	SortOrder int            `json:"sort_order"`
	CreatedAt string         `json:"created_at"`
	Files     []TemplateFile `json:"files"`
}

// TemplateFile is a file attached to a Template, carried inline as base64.
type TemplateFile struct {
	ID           int64       `json:"id"`
	TemplateID   int64       `json:"template_id"`
	OriginalName string      `json:"original_name"`
	MimeType     null.String `json:"mime_type"`
	Base64Data   string      `json:"base64_data"`
}

// Instruction is a node of the instruction tree. Folders and documents share
// the table; ParentID is kept as a foreign key value, not resolved.
type Instruction struct {
	ID         int64                   `json:"id"`
	ParentID   null.Int64              `json:"parent_id"`
	Title      string                  `json:"title"`
	Content    null.String             `json:"content"`
	IsFolder   bool                    `json:"is_folder"`
	IsFavorite bool                    `json:"is_favorite"`
	Tags       []string                `json:"tags"`
	SortOrder  int                     `json:"sort_order"`
	CreatedAt  string                  `json:"created_at"`
	Files      []InstructionAttachment `json:"files"`
}

// InstructionAttachment is a file attached to an Instruction.
type InstructionAttachment struct {
	ID            int64       `json:"id"`
	InstructionID int64       `json:"instruction_id"`
	OriginalName  string      `json:"original_name"`
	MimeType      null.String `json:"mime_type"`
	Base64Data    string      `json:"base64_data"`
}

// Snapshot is the complete nested content of the legacy store, built once per
// migration run and sent wholesale to the import endpoint.
type Snapshot struct {
	Requests      []Request      `json:"requests"`
	EmployeeExits []EmployeeExit `json:"employee_exits"`
	Templates     []Template     `json:"templates"`
	Instructions  []Instruction  `json:"instructions"`
}

// NewSnapshot returns a snapshot whose lists encode as [] rather than null.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Requests:      []Request{},
		EmployeeExits: []EmployeeExit{},
		Templates:     []Template{},
		Instructions:  []Instruction{},
	}
}

// TemplateFileCount returns the number of template files kept in the snapshot.
func (s *Snapshot) TemplateFileCount() int {
	n := 0
	for _, t := range s.Templates {
		n += len(t.Files)
	}
	return n
}

// InstructionAttachmentCount returns the number of instruction attachments kept in the snapshot.
func (s *Snapshot) InstructionAttachmentCount() int {
	n := 0
	for _, i := range s.Instructions {
		n += len(i.Files)
	}
	return n
}
