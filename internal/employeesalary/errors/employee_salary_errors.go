package employeesalaryerrors

import (
	"net/http"

	"go-empledger/internal/shared/apperror"
)

var (
	ErrLedgerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary ledger not found",
		http.StatusNotFound,
	)
	ErrLedgerAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Salary ledger already exists for this employee",
		http.StatusBadRequest,
	)
	ErrUnknownEmployee = &apperror.AppError{
		Code:       apperror.CodeInvalidInput,
		Message:    "Employee does not exist",
		HTTPStatus: http.StatusBadRequest,
		Details:    []apperror.FieldError{apperror.InvalidField("employee_id")},
	}
)
