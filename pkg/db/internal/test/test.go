// Package test opens throwaway databases for the db packages' own tests.
package test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/taskflow-dev/taskflow/pkg/db"
)

// OpenSqlite opens an empty SQLite database with foreign keys on, in a
// directory removed after the test. The schema is left to the caller.
func OpenSqlite(ctx context.Context, tb testing.TB) (*db.DB, error) {
	tb.Helper()
	dsn := filepath.Join(tb.TempDir(), "taskflow.db") +
		"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	dbx, err := db.Open(ctx, "sqlite", dsn)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	tb.Cleanup(func() {
		if err := dbx.Close(); err != nil {
			tb.Error(err)
		}
	})
	return dbx, nil
}
