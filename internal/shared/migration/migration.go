package migration

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var migrations embed.FS

// Up applies every pending migration.
func Up(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(zapLogger{zap.L().Named("migration").Sugar()})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "sql"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

type zapLogger struct {
	s *zap.SugaredLogger
}

func (l zapLogger) Fatalf(format string, v ...interface{}) { l.s.Fatalf(format, v...) }
func (l zapLogger) Printf(format string, v ...interface{})  { l.s.Infof(format, v...) }
