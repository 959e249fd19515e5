package employee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go-empledger/internal/asset"
	employeeerrors "go-empledger/internal/employee/errors"
	"go-empledger/internal/employeesalary"
	"go-empledger/internal/employmenttype"
	"go-empledger/internal/events"
	"go-empledger/internal/messaging/kafka"
	"go-empledger/internal/shared/apperror"
	"go-empledger/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const employeeIDTimeLayout = "20060102150405"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest, image *asset.Upload) (CreateEmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest, image *asset.Upload) (EmployeeResponse, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (UpdateStatusResponse, error)
	Delete(ctx context.Context, id string) error
	// Image opens the stored image of an employee. The caller closes it.
	Image(ctx context.Context, id string) (io.ReadCloser, string, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	types    employmenttype.Service
	salaries employeesalary.Service
	outbox   kafka.OutboxRepository
	store    asset.Store
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	types employmenttype.Service,
	salaries employeesalary.Service,
	outbox kafka.OutboxRepository,
	store asset.Store,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		types:    types,
		salaries: salaries,
		outbox:   outbox,
		store:    store,
		now:      time.Now,
		logger:   l,
	}
}

// NewEmployeeID returns a fresh human readable employee code.
func NewEmployeeID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("EMP-%s-%s", now.UTC().Format(employeeIDTimeLayout), suffix)
}

func (s *service) Create(
	ctx context.Context,
	req CreateEmployeeRequest,
	image *asset.Upload,
) (CreateEmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	req = normalizeRequest(req)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("employeeid", req.EmployeeID),
		zap.String("employment_type_id", req.EmployeeType),
	)

	typeID, err := s.validateRequest(ctx, req)
	if err != nil {
		s.logger.Warn("create employee validation failed", zap.String("request_id", rid), zap.Error(err))
		return CreateEmployeeResponse{}, err
	}

	if req.EmployeeID == "" {
		req.EmployeeID = NewEmployeeID(s.now())
	}

	empl := &Employee{
		ID:               uuid.New(),
		EmployeeCode:     req.EmployeeID,
		FullName:         req.FullName,
		Contact:          req.Contact,
		Address:          req.Address,
		Status:           req.Status,
		EmploymentTypeID: typeID,
		CurrentSalary:    decimal.RequireFromString(string(req.CurrentSalary)),
	}

	imageKey, err := s.saveImage(ctx, image)
	if err != nil {
		return CreateEmployeeResponse{}, err
	}
	if imageKey != "" {
		empl.Image = &imageKey
	}
	committed := false
	defer func() {
		if !committed {
			s.releaseImage(ctx, imageKey)
		}
	}()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return CreateEmployeeResponse{}, mapRepositoryError(err)
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed",
			zap.String("request_id", rid),
			zap.String("employeeid", empl.EmployeeCode),
			zap.Error(err),
		)
		return CreateEmployeeResponse{}, mapRepositoryError(err)
	}

	salary, err := s.salaries.Provision(ctx, tx, empl.ID.String())
	if err != nil {
		s.logger.Error("create employee provision ledger failed",
			zap.String("request_id", rid),
			zap.String("employee_id", empl.ID.String()),
			zap.Error(err),
		)
		return CreateEmployeeResponse{}, err
	}

	if s.outbox != nil {
		if err := s.queueCreatedEvent(ctx, tx, empl, salary); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("request_id", rid),
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return CreateEmployeeResponse{}, mapRepositoryError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return CreateEmployeeResponse{}, mapRepositoryError(err)
	}
	committed = true

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employeeid", empl.EmployeeCode),
		zap.Int64("employee_salary_id", salary.EmployeeSalaryID),
	)

	return CreateEmployeeResponse{
		Employee: mapToResponse(*empl),
		Salary:   salary,
	}, nil
}

func (s *service) queueCreatedEvent(
	ctx context.Context,
	tx *sql.Tx,
	empl *Employee,
	salary employeesalary.EmployeeSalaryResponse,
) error {
	rid := contextutil.GetRequestID(ctx)
	event := events.EmployeeCreatedEvent{
		EventType:        events.EmployeeCreatedEventType,
		RequestID:        rid,
		EmployeeID:       empl.ID.String(),
		EmployeeCode:     empl.EmployeeCode,
		EmployeeSalaryID: salary.EmployeeSalaryID,
		OccurredAt:       s.now().UTC(),
	}
	outboxEvent, err := kafka.NewOutboxEvent(
		events.EmployeeLifecycleTopic, "employee", empl.ID.String(), event.EventType, rid, event,
	)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, outboxEvent)
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested", zap.String("request_id", contextutil.GetRequestID(ctx)))
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(employees), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	empl, err := s.find(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateEmployeeRequest,
	image *asset.Upload,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	empID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	norm := normalizeRequest(CreateEmployeeRequest(req))
	typeID, err := s.validateRequest(ctx, norm)
	if err != nil {
		s.logger.Warn("update employee validation failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	newKey, err := s.saveImage(ctx, image)
	if err != nil {
		return EmployeeResponse{}, err
	}
	committed := false
	defer func() {
		if !committed {
			s.releaseImage(ctx, newKey)
		}
	}()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, empID)
	if err != nil {
		s.logger.Warn("update employee fetch existing failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	oldKey := empl.ImageKey()
	if norm.EmployeeID != "" {
		empl.EmployeeCode = norm.EmployeeID
	}
	empl.FullName = norm.FullName
	empl.Contact = norm.Contact
	empl.Address = norm.Address
	empl.Status = norm.Status
	empl.EmploymentTypeID = typeID
	empl.CurrentSalary = decimal.RequireFromString(string(norm.CurrentSalary))
	if newKey != "" {
		empl.Image = &newKey
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed",
			zap.String("request_id", rid),
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	committed = true

	if newKey != "" && oldKey != "" && oldKey != newKey {
		s.releaseImage(ctx, oldKey)
	}

	s.logger.Info("update employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)
	return mapToResponse(*empl), nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (UpdateStatusResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if err := apperror.ValidateStruct(req); err != nil {
		return UpdateStatusResponse{}, err
	}

	empID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return UpdateStatusResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	affected, err := s.repo.UpdateStatus(ctx, empID, req.Status)
	if err != nil {
		s.logger.Error("update employee status failed",
			zap.String("request_id", rid),
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return UpdateStatusResponse{}, mapRepositoryError(err)
	}
	if affected == 0 {
		return UpdateStatusResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	s.logger.Info("update employee status success",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
		zap.String("status", req.Status),
	)
	return UpdateStatusResponse{ID: empID.String(), Status: req.Status}, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	empl, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, empl.ID)
	if err != nil {
		s.logger.Error("delete employee failed",
			zap.String("request_id", rid),
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}
	if affected == 0 {
		return employeeerrors.ErrEmployeeNotFound
	}

	s.releaseImage(ctx, empl.ImageKey())

	s.logger.Info("delete employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)
	return nil
}

func (s *service) Image(ctx context.Context, id string) (io.ReadCloser, string, error) {
	empl, err := s.find(ctx, id)
	if err != nil {
		return nil, "", err
	}
	key := empl.ImageKey()
	if key == "" || s.store == nil {
		return nil, "", employeeerrors.ErrImageNotFound
	}

	rc, contentType, err := s.store.Open(ctx, key)
	if err != nil {
		if asset.IsNotFound(err) {
			s.logger.Warn("employee image missing from store",
				zap.String("employee_id", id),
				zap.String("path", s.store.Resolve(key)),
			)
			return nil, "", employeeerrors.ErrImageNotFound
		}
		return nil, "", err
	}
	return rc, contentType, nil
}

func (s *service) find(ctx context.Context, id string) (*Employee, error) {
	empID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, employeeerrors.ErrEmployeeNotFound
	}

	empl, err := s.repo.FindByID(ctx, empID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return empl, nil
}

// validateRequest checks the request fields and the employment type
// together so one error lists every offending field.
func (s *service) validateRequest(ctx context.Context, req CreateEmployeeRequest) (uuid.UUID, error) {
	var fields []apperror.FieldError
	if err := apperror.ValidateStruct(req); err != nil {
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			return uuid.Nil, err
		}
		details, ok := appErr.Details.([]apperror.FieldError)
		if !ok {
			return uuid.Nil, err
		}
		fields = details
	}

	for _, f := range fields {
		if f.Field == "employeeType" {
			return uuid.Nil, apperror.Validation(fields...)
		}
	}
	typeID, err := uuid.Parse(req.EmployeeType)
	if err != nil {
		return uuid.Nil, apperror.Validation(append(fields, apperror.InvalidField("employeeType"))...)
	}
	known, err := s.types.Exists(ctx, req.EmployeeType)
	if err != nil {
		s.logger.Error("check employment type failed", zap.String("employment_type_id", req.EmployeeType), zap.Error(err))
		return uuid.Nil, err
	}

	switch {
	case known && len(fields) == 0:
		return typeID, nil
	case known:
		return uuid.Nil, apperror.Validation(fields...)
	case len(fields) == 0:
		return uuid.Nil, employeeerrors.ErrUnknownEmploymentType
	}
	unknownType := employeeerrors.ErrUnknownEmploymentType.Details.([]apperror.FieldError)
	return uuid.Nil, apperror.Validation(append(fields, unknownType...)...)
}

func (s *service) saveImage(ctx context.Context, image *asset.Upload) (string, error) {
	if image == nil || s.store == nil {
		return "", nil
	}
	key, err := s.store.Save(ctx, *image)
	if err != nil {
		s.logger.Warn("store employee image failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("filename", image.Filename),
			zap.Error(err),
		)
		return "", err
	}
	return key, nil
}

// releaseImage never fails the caller; errors are logged.
func (s *service) releaseImage(ctx context.Context, key string) {
	if key == "" || s.store == nil {
		return
	}
	if err := s.store.Release(context.WithoutCancel(ctx), key); err != nil {
		s.logger.Error("release employee image failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("path", s.store.Resolve(key)),
			zap.Error(err),
		)
	}
}

func normalizeRequest(req CreateEmployeeRequest) CreateEmployeeRequest {
	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	req.FullName = strings.TrimSpace(req.FullName)
	req.Contact = strings.TrimSpace(req.Contact)
	req.Address = strings.TrimSpace(req.Address)
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	req.EmployeeType = strings.TrimSpace(req.EmployeeType)
	req.CurrentSalary = Amount(strings.TrimSpace(string(req.CurrentSalary)))
	return req
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:            empl.ID.String(),
		EmployeeID:    empl.EmployeeCode,
		FullName:      empl.FullName,
		Contact:       empl.Contact,
		Address:       empl.Address,
		Status:        empl.Status,
		EmployeeType:  empl.EmploymentTypeID.String(),
		CurrentSalary: empl.CurrentSalary,
		Image:         empl.ImageKey(),
	}
	if resp.Image != "" {
		resp.ImageURL = "/api/img/" + resp.ID
	}
	if !empl.CreatedAt.IsZero() {
		resp.CreatedAt = empl.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !empl.UpdatedAt.IsZero() {
		resp.UpdatedAt = empl.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		res[i] = mapToResponse(e)
	}
	return res
}
