package db

import (
	"context"
	"database/sql"
)

// Handler runs statements. Both *DB and *Tx satisfy it, so a store method
// works the same inside or outside a transaction.
type Handler interface {
	Rebind(string) string
	DriverName() string

	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

var (
	_ Handler = (*DB)(nil)
	_ Handler = (*Tx)(nil)
)
