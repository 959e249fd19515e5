package sequence

import (
	"context"
	"database/sql"
	"net/http"
	"strings"

	"go-empledger/internal/shared/apperror"
	"go-empledger/internal/shared/dbtx"

	"gorm.io/gorm"
)

// EmployeeSalaryID numbers salary ledger rows.
const EmployeeSalaryID = "employee_salary_id"

var ErrInvalidSequenceName = apperror.New(
	apperror.CodeInvalidInput,
	"Sequence name is required",
	http.StatusBadRequest,
)

//go:generate mockgen -destination=mock/sequence_mock.go -package=mock . Generator
type Generator interface {
	WithTx(tx *sql.Tx) Generator
	GetNext(ctx context.Context, name string) (int64, error)
}

type generator struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewGenerator(db *gorm.DB) Generator {
	return &generator{db: db}
}

func (g *generator) WithTx(tx *sql.Tx) Generator {
	return &generator{db: g.db, tx: tx}
}

// GetNext increments and returns the counter for name, creating it at 1 on
// first use. The upsert is a single statement so concurrent callers never
// observe the same value.
func (g *generator) GetNext(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrInvalidSequenceName
	}

	var next int64
	err := dbtx.Bind(ctx, g.db, g.tx).Raw(`
		INSERT INTO sequence_counters (name, value, updated_at)
		VALUES (?, 1, now())
		ON CONFLICT (name) DO UPDATE
		SET value = sequence_counters.value + 1, updated_at = now()
		RETURNING value
	`, name).Scan(&next).Error
	if err != nil {
		if apperror.IsUnavailable(err) {
			return 0, apperror.StorageUnavailable(err)
		}
		return 0, err
	}

	return next, nil
}
