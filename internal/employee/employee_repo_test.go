package employee_test

import (
	"context"
	"testing"

	"go-empledger/internal/employee"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) (employee.Repository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return employee.NewRepository(gdb), mock, func() { db.Close() }
}

func TestRepository_CreateJoinsTransaction(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "employees"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(ctx, nil)
	assert.NoError(t, err)

	err = employee.NewRepository(gdb).WithTx(tx).Create(ctx, &employee.Employee{
		ID:               uuid.New(),
		EmployeeCode:     "EMP-1",
		FullName:         "Jane Doe",
		Contact:          "555-1000",
		Address:          "1 Main St",
		Status:           employee.StatusActive,
		EmploymentTypeID: uuid.New(),
		CurrentSalary:    decimal.RequireFromString("50000"),
	})
	assert.NoError(t, err)
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock, done := setupRepoTest(t)
	defer done()
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "employees" WHERE id = \$1`).
		WithArgs(id.String(), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_code", "full_name", "status", "current_salary", "image"}).
			AddRow(id.String(), "EMP-1", "Jane Doe", "active", "50000.00", nil))

	empl, err := repo.FindByID(context.Background(), id)

	assert.NoError(t, err)
	assert.Equal(t, "EMP-1", empl.EmployeeCode)
	assert.Equal(t, "Jane Doe", empl.FullName)
	assert.Equal(t, "", empl.ImageKey())
	assert.True(t, decimal.NewFromInt(50000).Equal(empl.CurrentSalary))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByIDMissing(t *testing.T) {
	repo, mock, done := setupRepoTest(t)
	defer done()
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "employees"`).
		WithArgs(id.String(), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(context.Background(), id)

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock, done := setupRepoTest(t)
	defer done()
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "employees" SET "status"=\$1,"updated_at"=\$2 WHERE id = \$3`).
		WithArgs("on_leave", sqlmock.AnyArg(), id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	affected, err := repo.UpdateStatus(context.Background(), id, "on_leave")

	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	repo, mock, done := setupRepoTest(t)
	defer done()
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "employees" WHERE id = \$1`).
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	affected, err := repo.Delete(context.Background(), id)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
