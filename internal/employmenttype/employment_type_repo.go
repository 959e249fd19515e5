package employmenttype

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employment_type_repo.go -destination=mock/employment_type_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, et *EmploymentType) error
	FindAll(ctx context.Context) ([]EmploymentType, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, et *EmploymentType) error {
	return r.db.WithContext(ctx).Create(et).Error
}

func (r *repository) FindAll(ctx context.Context) ([]EmploymentType, error) {
	var types []EmploymentType
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&types).Error
	return types, err
}

func (r *repository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&EmploymentType{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
