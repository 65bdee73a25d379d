package domain

// Legacy table names
const (
	TableRequests               = "requests"
	TableEquipmentItems         = "equipment_items"
	TableEmployeeExits          = "employee_exits"
	TableTemplates              = "templates"
	TableTemplateFiles          = "template_files"
	TableInstructions           = "instructions"
	TableInstructionAttachments = "instruction_attachments"
)

// Attachment owner kinds. Each kind resolves stored file names against its own
// legacy directory.
const (
	AttachmentKindTemplate    = "template"
	AttachmentKindInstruction = "instruction"
)

// Reminder kinds
const (
	ReminderKindReturnDue   = "return_due"
	ReminderKindExitPending = "exit_pending"
)

// LegacyDateLayout is the date-only layout the desktop application stores.
const LegacyDateLayout = "2006-01-02"

// DefaultEquipmentQuantity replaces non-positive quantities read from legacy rows.
const DefaultEquipmentQuantity = 1
