package events

import "time"

const (
	EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"

	EmployeeCreatedEventType = "employee_created"
)

// EmployeeCreatedEvent is queued in the same transaction that inserts the
// employee and its salary ledger.
type EmployeeCreatedEvent struct {
	EventType        string    `json:"event_type"`
	RequestID        string    `json:"request_id,omitempty"`
	EmployeeID       string    `json:"employee_id"`
	EmployeeCode     string    `json:"employeeid"`
	EmployeeSalaryID int64     `json:"employee_salary_id"`
	OccurredAt       time.Time `json:"occurred_at"`
}
