package employmenttypeerrors

import (
	"net/http"

	"go-empledger/internal/shared/apperror"
)

var (
	ErrNoEmploymentTypes = apperror.New(
		apperror.CodeNotFound,
		"No employment types found",
		http.StatusNotFound,
	)
	ErrEmploymentTypeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employment type with the same name already exists",
		http.StatusBadRequest,
	)
)
