package apperror

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrInternal = New(
		CodeInternalError,
		"Internal server error",
		http.StatusInternalServerError,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)

	// Duplicate keys are reported as 400 to match the public API contract.
	ErrConflict = New(
		CodeConflict,
		"Resource already exists",
		http.StatusBadRequest,
	)

	ErrStorageUnavailable = New(
		CodeServiceUnavailable,
		"Storage is unavailable",
		http.StatusInternalServerError,
	)

	ErrPartialFailure = New(
		CodePartialFailure,
		"Operation was only partially completed",
		http.StatusInternalServerError,
	)
)

// FieldError describes one offending input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func RequiredField(field string) FieldError {
	return FieldError{Field: field, Message: field + " is required"}
}

func InvalidField(field string) FieldError {
	return FieldError{Field: field, Message: field + " is invalid"}
}

// Validation builds a 400 error listing every field.
func Validation(fields ...FieldError) *AppError {
	return ErrInvalidInput.WithDetails(fields)
}

func StorageUnavailable(err error) *AppError {
	return From(ErrStorageUnavailable, err)
}

// PartialFailure wraps err with context describing what was committed.
func PartialFailure(err error, context map[string]string) *AppError {
	wrapped := From(ErrPartialFailure, err)
	wrapped.Details = context
	return wrapped
}

// IsUnavailable reports connection-class failures of the backing store.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrStorageUnavailable) {
		return true
	}
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
