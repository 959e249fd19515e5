package employeesalary

import (
	"context"
	"database/sql"

	"go-empledger/internal/shared/dbtx"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_salary_repo.go -destination=mock/employee_salary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, salary *EmployeeSalary) error
	FindAll(ctx context.Context) ([]EmployeeSalary, error)
	FindByEmployeeID(ctx context.Context, employeeID uuid.UUID) (*EmployeeSalary, error)
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

func (r *repository) Create(ctx context.Context, salary *EmployeeSalary) error {
	return dbtx.Bind(ctx, r.db, r.tx).Create(salary).Error
}

func (r *repository) FindAll(ctx context.Context) ([]EmployeeSalary, error) {
	var salaries []EmployeeSalary
	query := `
SELECT
	employee_salaries.*,
	employees.full_name AS employee_name
FROM employee_salaries
JOIN employees ON employees.id = employee_salaries.employee_id
ORDER BY employee_salaries.employee_salary_id ASC
`

	err := dbtx.Bind(ctx, r.db, r.tx).Raw(query).Scan(&salaries).Error
	return salaries, err
}

func (r *repository) FindByEmployeeID(ctx context.Context, employeeID uuid.UUID) (*EmployeeSalary, error) {
	var salary EmployeeSalary
	err := dbtx.Bind(ctx, r.db, r.tx).
		Table("employee_salaries").
		Select("employee_salaries.*, employees.full_name AS employee_name").
		Joins("JOIN employees ON employees.id = employee_salaries.employee_id").
		Where("employee_salaries.employee_id = ?", employeeID).
		First(&salary).Error
	return &salary, err
}
