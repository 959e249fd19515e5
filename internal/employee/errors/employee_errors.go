package employeeerrors

import (
	"net/http"

	"go-empledger/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeIDAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee ID already exists",
		http.StatusBadRequest,
	)
	ErrUnknownEmploymentType = &apperror.AppError{
		Code:       apperror.CodeInvalidInput,
		Message:    "The provided input is invalid",
		HTTPStatus: http.StatusBadRequest,
		Details: []apperror.FieldError{{
			Field:   "employeeType",
			Message: "Employee type does not exist",
		}},
	}
	ErrImageNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee has no image",
		http.StatusNotFound,
	)
)
