package employeesalary

import (
	"context"
	"database/sql"
	"errors"
	"time"

	employeesalaryerrors "go-empledger/internal/employeesalary/errors"
	"go-empledger/internal/shared/contextutil"
	"go-empledger/internal/shared/sequence"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=employee_salary_service.go -destination=mock/employee_salary_service_mock.go -package=mock
type Service interface {
	// Provision creates the zero-balance ledger of employeeID inside tx, or
	// inside its own transaction when tx is nil.
	Provision(ctx context.Context, tx *sql.Tx, employeeID string) (EmployeeSalaryResponse, error)
	// EnsureForEmployee provisions the ledger unless one already exists.
	EnsureForEmployee(ctx context.Context, employeeID string) (EmployeeSalaryResponse, error)
	GetAll(ctx context.Context) ([]EmployeeSalaryResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) (EmployeeSalaryResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	sequence sequence.Generator
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, seq sequence.Generator, logger ...*zap.Logger) Service {
	l := zap.L().Named("employeesalary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employeesalary.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		sequence: seq,
		logger:   l,
	}
}

func (s *service) Provision(
	ctx context.Context,
	tx *sql.Tx,
	employeeID string,
) (EmployeeSalaryResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrUnknownEmployee
	}

	ownTx := tx == nil
	if ownTx {
		tx, err = s.db.BeginTx(ctx, nil)
		if err != nil {
			s.logger.Error("provision ledger begin tx failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeSalaryResponse{}, mapRepositoryError(err)
		}
		defer tx.Rollback()
	}

	next, err := s.sequence.WithTx(tx).GetNext(ctx, sequence.EmployeeSalaryID)
	if err != nil {
		s.logger.Error("provision ledger sequence failed",
			zap.String("request_id", rid),
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return EmployeeSalaryResponse{}, err
	}

	salary := &EmployeeSalary{
		ID:               uuid.New(),
		EmployeeSalaryID: next,
		EmployeeID:       empID,
		AmountIn:         decimal.Zero,
		AmountOut:        decimal.Zero,
		AmountRemaining:  decimal.Zero,
	}
	if err := s.repo.WithTx(tx).Create(ctx, salary); err != nil {
		s.logger.Error("provision ledger persist failed",
			zap.String("request_id", rid),
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}

	if ownTx {
		if err := tx.Commit(); err != nil {
			s.logger.Error("provision ledger commit failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeSalaryResponse{}, mapRepositoryError(err)
		}
	}

	s.logger.Info("salary ledger provisioned",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.Int64("employee_salary_id", next),
	)
	return mapToResponse(*salary), nil
}

func (s *service) EnsureForEmployee(ctx context.Context, employeeID string) (EmployeeSalaryResponse, error) {
	existing, err := s.GetByEmployee(ctx, employeeID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, employeesalaryerrors.ErrLedgerNotFound) {
		return EmployeeSalaryResponse{}, err
	}

	created, err := s.Provision(ctx, nil, employeeID)
	if errors.Is(err, employeesalaryerrors.ErrLedgerAlreadyExists) {
		// lost a race with another provisioner
		return s.GetByEmployee(ctx, employeeID)
	}
	return created, err
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeSalaryResponse, error) {
	salaries, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all salary ledgers failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(salaries), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) (EmployeeSalaryResponse, error) {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrLedgerNotFound
	}

	salary, err := s.repo.FindByEmployeeID(ctx, empID)
	if err != nil {
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*salary), nil
}

func mapToResponse(salary EmployeeSalary) EmployeeSalaryResponse {
	resp := EmployeeSalaryResponse{
		ID:               salary.ID.String(),
		EmployeeSalaryID: salary.EmployeeSalaryID,
		EmployeeID:       salary.EmployeeID.String(),
		EmployeeName:     salary.EmployeeName,
		AmountIn:         salary.AmountIn,
		AmountOut:        salary.AmountOut,
		AmountRemaining:  salary.AmountRemaining,
	}
	if !salary.CreatedAt.IsZero() {
		resp.CreatedAt = salary.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !salary.UpdatedAt.IsZero() {
		resp.UpdatedAt = salary.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(salaries []EmployeeSalary) []EmployeeSalaryResponse {
	res := make([]EmployeeSalaryResponse, len(salaries))
	for i, salary := range salaries {
		res[i] = mapToResponse(salary)
	}
	return res
}
