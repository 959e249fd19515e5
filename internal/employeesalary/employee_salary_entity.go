package employeesalary

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeSalary is the running balance row of one employee. The numeric
// EmployeeSalaryID is assigned once from the employee_salary_id sequence.
type EmployeeSalary struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeSalaryID int64           `gorm:"column:employee_salary_id"`
	EmployeeID       uuid.UUID       `gorm:"type:uuid"`
	AmountIn         decimal.Decimal `gorm:"type:numeric(14,2)"`
	AmountOut        decimal.Decimal `gorm:"type:numeric(14,2)"`
	AmountRemaining  decimal.Decimal `gorm:"type:numeric(14,2)"`
	EmployeeName     string          `gorm:"->;-:migration"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (EmployeeSalary) TableName() string {
	return "employee_salaries"
}
