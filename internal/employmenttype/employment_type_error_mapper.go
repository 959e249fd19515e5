package employmenttype

import (
	"errors"

	employmenttypeerrors "go-empledger/internal/employmenttype/errors"
	"go-empledger/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505" && pgErr.ConstraintName == "uq_employment_types_name":
			return employmenttypeerrors.ErrEmploymentTypeAlreadyExists
		case pgErr.Code == "23514":
			return apperror.Validation(apperror.InvalidField("payCadence"))
		}
	}

	if apperror.IsUnavailable(err) {
		return apperror.StorageUnavailable(err)
	}
	return err
}
