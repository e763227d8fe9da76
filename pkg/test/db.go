package test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/taskflow-dev/taskflow/pkg/db"
	"github.com/taskflow-dev/taskflow/pkg/db/migrate"
)

// OpenDB opens a migrated temp SQLite database for testing.
// It closes the database when the test is done using tb.Cleanup.
func OpenDB(ctx context.Context, tb testing.TB) *db.DB {
	tb.Helper()
	dsn := filepath.Join(tb.TempDir(), "taskflow.db") +
		"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	dbx, err := db.Open(ctx, "sqlite", dsn)
	if err != nil {
		tb.Fatalf("open db: %v", err)
	}
	tb.Cleanup(func() {
		if err := dbx.Close(); err != nil {
			tb.Error(err)
		}
	})
	if err := migrate.Migrate(ctx, dbx); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return dbx
}
