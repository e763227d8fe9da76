package migrate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/taskflow-dev/taskflow/pkg/db"
)

// ErrNothingToRollback is returned by Rollback on a database without applied
// migrations.
var ErrNothingToRollback = errors.New("there are no migrations to rollback")

// Func changes the schema inside the migration transaction.
type Func func(ctx context.Context, tx *db.Tx) error

// Migration is one versioned schema change.
type Migration struct {
	Version int64
	Name    string
	Up      Func
	Down    Func
}

// Applied is a row of the migrations table.
type Applied struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Version   int64     `db:"version"`
	AppliedAt time.Time `db:"applied_at"`
}

func migrationsTable(driverName string) (string, error) {
	switch driverName {
	case driverSQLite3, driverSQLite:
		return `CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			version INTEGER NOT NULL UNIQUE,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`, nil
	case driverPostgres:
		return `CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			version INTEGER NOT NULL UNIQUE,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`, nil
	default:
		return "", fmt.Errorf("unknown driver %q", driverName)
	}
}

func ensureTable(ctx context.Context, tx *db.Tx) error {
	schema, err := migrationsTable(tx.DriverName())
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, schema)
	return err
}

func currentVersion(ctx context.Context, h db.Handler) (int64, error) {
	var v int64
	err := h.GetContext(ctx, &v, "SELECT COALESCE(MAX(version), 0) FROM migrations")
	return v, err
}

func lookup(version int64) (Migration, bool) {
	for _, m := range migrations {
		if m.Version == version {
			return m, true
		}
	}
	return Migration{}, false
}

// Migrate applies every migration newer than the current version in a single
// transaction.
func Migrate(ctx context.Context, dbx *db.DB) error {
	logger := log.FromContext(ctx).WithPrefix("migrate")
	return dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		if err := ensureTable(ctx, tx); err != nil {
			return fmt.Errorf("create migrations table: %w", err)
		}

		current, err := currentVersion(ctx, tx)
		if err != nil {
			return err
		}

		for _, m := range migrations {
			if m.Version <= current {
				continue
			}

			logger.Info("applying migration", "version", m.Version, "name", m.Name)
			if err := m.Up(ctx, tx); err != nil {
				return fmt.Errorf("migration %d: %w", m.Version, err)
			}

			if _, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO migrations (name, version, applied_at) VALUES (?, ?, ?)"),
				m.Name, m.Version, time.Now().UTC()); err != nil {
				return err
			}
		}

		return nil
	})
}

// Rollback reverts the newest applied migration.
func Rollback(ctx context.Context, dbx *db.DB) error {
	logger := log.FromContext(ctx).WithPrefix("migrate")
	return dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		if err := ensureTable(ctx, tx); err != nil {
			return fmt.Errorf("create migrations table: %w", err)
		}

		current, err := currentVersion(ctx, tx)
		if err != nil {
			return err
		}
		if current == 0 {
			return ErrNothingToRollback
		}

		m, ok := lookup(current)
		if !ok {
			return fmt.Errorf("unknown migration version %d", current)
		}

		logger.Info("rolling back migration", "version", m.Version, "name", m.Name)
		if err := m.Down(ctx, tx); err != nil {
			return fmt.Errorf("rollback %d: %w", m.Version, err)
		}

		_, err = tx.ExecContext(ctx, tx.Rebind("DELETE FROM migrations WHERE version = ?"), m.Version)
		return err
	})
}

// Status returns the applied migrations, oldest first, and the ones still
// pending.
func Status(ctx context.Context, dbx *db.DB) ([]Applied, []Migration, error) {
	var applied []Applied
	err := dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		if err := ensureTable(ctx, tx); err != nil {
			return err
		}
		return tx.SelectContext(ctx, &applied, "SELECT id, name, version, applied_at FROM migrations ORDER BY version ASC")
	})
	if err != nil {
		return nil, nil, err
	}

	done := make(map[int64]struct{}, len(applied))
	for _, a := range applied {
		done[a.Version] = struct{}{}
	}
	var pending []Migration
	for _, m := range migrations {
		if _, ok := done[m.Version]; !ok {
			pending = append(pending, m)
		}
	}
	return applied, pending, nil
}

func hasTable(ctx context.Context, h db.Handler, name string) bool {
	var query string
	switch h.DriverName() {
	case driverSQLite3, driverSQLite:
		query = "SELECT name FROM sqlite_master WHERE type='table' AND name=?"
	case driverPostgres:
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' AND table_name = ?"
	default:
		return false
	}

	var found string
	return h.GetContext(ctx, &found, h.Rebind(query), name) == nil
}
