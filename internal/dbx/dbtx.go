// Package dbx holds the small database/sql plumbing shared by the stores:
// a query interface satisfied by both *sql.DB and *sql.Tx, and a helper
// that scopes a function to a single transaction.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql the stores rely on. Both *sql.DB and
// *sql.Tx implement it, so store methods run the same inside and outside
// a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction: commit when fn returns nil, rollback
// when it returns an error or panics. Panics are rethrown after rollback.
func WithTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
