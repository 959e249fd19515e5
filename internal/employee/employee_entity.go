package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusOnLeave  = "on_leave"
)

type Employee struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeCode     string          `gorm:"column:employee_code"`
	FullName         string          `gorm:"column:full_name"`
	Contact          string
	Address          string
	Status           string
	EmploymentTypeID uuid.UUID       `gorm:"type:uuid;column:employment_type_id"`
	CurrentSalary    decimal.Decimal `gorm:"type:numeric(14,2);column:current_salary"`
	Image            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Employee) TableName() string {
	return "employees"
}

// ImageKey returns the stored asset key, or "" when the employee has none.
func (e Employee) ImageKey() string {
	if e.Image == nil {
		return ""
	}
	return *e.Image
}
