package domain

// ImportSummary is the per-table count the import endpoint reports back.
type ImportSummary struct {
	Requests               int `json:"requests"`
	EmployeeExits          int `json:"employee_exits"`
	Templates              int `json:"templates"`
	TemplateFiles          int `json:"template_files"`
	Instructions           int `json:"instructions"`
	InstructionAttachments int `json:"instruction_attachments"`
}

// TableCounts holds row counts of the four top-level legacy tables.
type TableCounts struct {
	Requests      int `json:"requests"`
	EmployeeExits int `json:"employee_exits"`
	Templates     int `json:"templates"`
	Instructions  int `json:"instructions"`
}

// Total sums all counts.
func (c TableCounts) Total() int {
	return c.Requests + c.EmployeeExits + c.Templates + c.Instructions
}

// MigrationState names the lifecycle position of the one-time migration.
type MigrationState string

const (
	MigrationStateNotStarted MigrationState = "not_started"
	MigrationStateReady      MigrationState = "ready_to_run"
	MigrationStateRunning    MigrationState = "running"
	MigrationStateSucceeded  MigrationState = "success"
	MigrationStateFailed     MigrationState = "failed"
	MigrationStateSkipped    MigrationState = "skipped"
)

// MigrationStatus is the answer to a status query.
type MigrationStatus struct {
	Needed   bool         `json:"needed"`
	Done     bool         `json:"done"`
	DBExists bool         `json:"db_exists"`
	Counts   *TableCounts `json:"counts,omitempty"`
}

// RunRequest carries the remote target of a migration run.
type RunRequest struct {
	APIBaseURL  string `json:"api_base_url" validate:"required,url,startswith=http"`
	AccessToken string `json:"access_token" validate:"required,max=8192"`
}

// RunResult is the structured outcome of a run. It never carries a Go error.
type RunResult struct {
	Success  bool           `json:"success"`
	Imported *ImportSummary `json:"imported,omitempty"`
	Message  string         `json:"message,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// SkipResult acknowledges an explicit opt-out.
type SkipResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
