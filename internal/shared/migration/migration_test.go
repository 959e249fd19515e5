package migration

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrationsAreEmbedded(t *testing.T) {
	files, err := fs.Glob(migrations, "sql/*.sql")
	assert.NoError(t, err)
	assert.Len(t, files, 4)

	for _, f := range files {
		body, err := fs.ReadFile(migrations, f)
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(body), "-- +goose Up"), f)
		assert.Contains(t, string(body), "-- +goose Down", f)
	}
}

func TestUniquenessIsEnforcedByConstraints(t *testing.T) {
	employees, err := fs.ReadFile(migrations, "sql/00002_employees.sql")
	assert.NoError(t, err)
	assert.Contains(t, string(employees), "CONSTRAINT uq_employees_employeeid UNIQUE (employee_code)")

	ledger, err := fs.ReadFile(migrations, "sql/00003_salary_ledger.sql")
	assert.NoError(t, err)
	assert.Contains(t, string(ledger), "CONSTRAINT uq_employee_salaries_employee UNIQUE (employee_id)")
	assert.Contains(t, string(ledger), "name TEXT PRIMARY KEY")
}
