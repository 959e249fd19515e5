package apperror

import (
	"errors"
	"net/http"
)

type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP turns any error into the status/code/message triple written by
// handlers. Unknown errors become a 500 carrying the raw message for
// diagnostics.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		details := appErr.Details
		if details == nil && appErr.Err != nil && appErr.HTTPStatus >= http.StatusInternalServerError {
			details = appErr.Err.Error()
		}
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: details,
		}
	}

	if IsUnavailable(err) {
		return HTTPError{
			Status:  ErrStorageUnavailable.HTTPStatus,
			Code:    ErrStorageUnavailable.Code,
			Message: ErrStorageUnavailable.Message,
			Details: err.Error(),
		}
	}

	var details any
	if err != nil {
		details = err.Error()
	}
	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: ErrInternal.Message,
		Details: details,
	}
}
