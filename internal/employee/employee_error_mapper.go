package employee

import (
	"errors"

	employeeerrors "go-empledger/internal/employee/errors"
	"go-empledger/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			if pgErr.ConstraintName == "uq_employees_employeeid" {
				return apperror.From(employeeerrors.ErrEmployeeIDAlreadyExists, err)
			}
			return apperror.From(apperror.ErrConflict, err)
		case "23503":
			return apperror.From(employeeerrors.ErrUnknownEmploymentType, err)
		case "23514":
			switch pgErr.ConstraintName {
			case "ck_employees_status":
				return apperror.Validation(apperror.InvalidField("status"))
			case "ck_employees_current_salary":
				return apperror.Validation(apperror.InvalidField("currentsalary"))
			}
			return apperror.Validation()
		case "22003":
			// numeric field overflow; current_salary is the only numeric column
			return apperror.Validation(apperror.InvalidField("currentsalary"))
		}
	}

	if apperror.IsUnavailable(err) {
		return apperror.StorageUnavailable(err)
	}
	return err
}
