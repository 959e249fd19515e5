package employeesalary

import (
	"errors"

	employeesalaryerrors "go-empledger/internal/employeesalary/errors"
	"go-empledger/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeesalaryerrors.ErrLedgerNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503":
			return apperror.From(employeesalaryerrors.ErrUnknownEmployee, err)
		case "23505":
			if pgErr.ConstraintName == "uq_employee_salaries_employee" {
				return apperror.From(employeesalaryerrors.ErrLedgerAlreadyExists, err)
			}
			return apperror.From(apperror.ErrConflict, err)
		}
	}

	if apperror.IsUnavailable(err) {
		return apperror.StorageUnavailable(err)
	}
	return err
}
