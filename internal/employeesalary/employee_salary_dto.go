package employeesalary

import "github.com/shopspring/decimal"

type EmployeeSalaryResponse struct {
	ID               string          `json:"id"`
	EmployeeSalaryID int64           `json:"employee_salary_id"`
	EmployeeID       string          `json:"employee_id"`
	EmployeeName     string          `json:"employee_name,omitempty"`
	AmountIn         decimal.Decimal `json:"amount_in"`
	AmountOut        decimal.Decimal `json:"amount_out"`
	AmountRemaining  decimal.Decimal `json:"amount_remaining"`
	CreatedAt        string          `json:"createdAt"`
	UpdatedAt        string          `json:"updatedAt"`
}
