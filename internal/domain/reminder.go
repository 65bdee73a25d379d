package domain

import "time"

// Reminder is a notice that a return is due or an exit is pending.
type Reminder struct {
	Kind         string    `json:"kind"`
	RecordID     int64     `json:"record_id"`
	EmployeeName string    `json:"employee_name"`
	Login        string    `json:"login"`
	DueDate      string    `json:"due_date"`
	Overdue      bool      `json:"overdue"`
	Detail       string    `json:"detail,omitempty"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// ReminderCheck is the outcome of one reminder pass over the local store.
type ReminderCheck struct {
	Idle       bool       `json:"idle"`
	Sent       []Reminder `json:"sent"`
	Suppressed int        `json:"suppressed"`
	CheckedAt  time.Time  `json:"checked_at"`
}
