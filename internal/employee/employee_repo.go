package employee

import (
	"context"
	"database/sql"

	"go-empledger/internal/shared/dbtx"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	Update(ctx context.Context, empl *Employee) error
	// UpdateStatus returns the number of rows changed.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return dbtx.Bind(ctx, r.db, r.tx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := dbtx.Bind(ctx, r.db, r.tx).
		Order("created_at ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var empl Employee
	err := dbtx.Bind(ctx, r.db, r.tx).
		First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	res := dbtx.Bind(ctx, r.db, r.tx).
		Model(&Employee{}).
		Where("id = ?", empl.ID).
		Updates(map[string]any{
			"employee_code":      empl.EmployeeCode,
			"full_name":          empl.FullName,
			"contact":            empl.Contact,
			"address":            empl.Address,
			"status":             empl.Status,
			"employment_type_id": empl.EmploymentTypeID,
			"current_salary":     empl.CurrentSalary,
			"image":              empl.Image,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (int64, error) {
	res := dbtx.Bind(ctx, r.db, r.tx).
		Model(&Employee{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := dbtx.Bind(ctx, r.db, r.tx).
		Delete(&Employee{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
