package dbtx

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Bind returns a gorm handle scoped to ctx that executes on tx when one is
// given, so repositories can join a transaction opened on the *sql.DB.
func Bind(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	g := db.WithContext(ctx)
	if tx == nil {
		return g
	}
	g = g.Session(&gorm.Session{NewDB: true, Context: ctx})
	g.Statement.ConnPool = tx
	return g
}
