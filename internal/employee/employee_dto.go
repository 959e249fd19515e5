package employee

import (
	"bytes"
	"encoding/json"

	"go-empledger/internal/employeesalary"

	"github.com/shopspring/decimal"
)

// Amount accepts a JSON number or string so bad input reaches validation
// instead of failing at decode time.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	*a = Amount(data)
	return nil
}

type CreateEmployeeRequest struct {
	EmployeeID    string `form:"employeeid" json:"employeeid" validate:"omitempty,max=64"`
	FullName      string `form:"fullname" json:"fullname" validate:"required,max=200"`
	Contact       string `form:"contact" json:"contact" validate:"required,max=100"`
	Address       string `form:"address" json:"address" validate:"required,max=500"`
	Status        string `form:"status" json:"status" validate:"required,oneof=active inactive on_leave"`
	EmployeeType  string `form:"employeeType" json:"employeeType" validate:"required,uuid"`
	CurrentSalary Amount `form:"currentsalary" json:"currentsalary" validate:"required,amount"`
}

// UpdateEmployeeRequest replaces every mutable field. An empty EmployeeID
// keeps the current one.
type UpdateEmployeeRequest CreateEmployeeRequest

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive on_leave"`
}

type EmployeeResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employeeid"`
	FullName      string          `json:"fullname"`
	Contact       string          `json:"contact"`
	Address       string          `json:"address"`
	Status        string          `json:"status"`
	EmployeeType  string          `json:"employeeType"`
	CurrentSalary decimal.Decimal `json:"currentsalary"`
	Image         string          `json:"image,omitempty"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	CreatedAt     string          `json:"createdAt,omitempty"`
	UpdatedAt     string          `json:"updatedAt,omitempty"`
}

type CreateEmployeeResponse struct {
	Employee EmployeeResponse                      `json:"employee"`
	Salary   employeesalary.EmployeeSalaryResponse `json:"salary"`
}

type UpdateStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
