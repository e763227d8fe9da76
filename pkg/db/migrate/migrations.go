package migrate

import (
	"context"
	"embed"
	"fmt"
	"regexp"
	"strings"

	"github.com/taskflow-dev/taskflow/pkg/db"
)

const (
	driverSQLite   = "sqlite"
	driverSQLite3  = "sqlite3"
	driverPostgres = "postgres"
)

//go:embed *.sql
var sqls embed.FS

// Keep this in order of execution, oldest to newest.
var migrations = []Migration{
	createTables,
	createTaskIndexes,
}

// sqlMigration returns a migration backed by the embedded files
// NNNN_<name>_<driver>.up.sql and NNNN_<name>_<driver>.down.sql.
func sqlMigration(version int64, name string) Migration {
	return Migration{
		Version: version,
		Name:    name,
		Up: func(ctx context.Context, tx *db.Tx) error {
			return execFile(ctx, tx, version, name, "up")
		},
		Down: func(ctx context.Context, tx *db.Tx) error {
			return execFile(ctx, tx, version, name, "down")
		},
	}
}

func sqlFileName(driverName string, version int64, name, direction string) string {
	if driverName == driverSQLite3 {
		driverName = driverSQLite
	}
	return fmt.Sprintf("%04d_%s_%s.%s.sql", version, toSnakeCase(name), driverName, direction)
}

func execFile(ctx context.Context, h db.Handler, version int64, name, direction string) error {
	fn := sqlFileName(h.DriverName(), version, name, direction)
	stmts, err := sqls.ReadFile(fn)
	if err != nil {
		return fmt.Errorf("read %s: %w", fn, err)
	}

	_, err = h.ExecContext(ctx, string(stmts))
	return err
}

var (
	matchFirstCap = regexp.MustCompile("(.)([A-Z][a-z]+)")
	matchAllCap   = regexp.MustCompile("([a-z0-9])([A-Z])")
)

func toSnakeCase(str string) string {
	str = strings.NewReplacer("-", "_", " ", "_").Replace(str)
	snake := matchFirstCap.ReplaceAllString(str, "${1}_${2}")
	snake = matchAllCap.ReplaceAllString(snake, "${1}_${2}")
	return strings.ToLower(snake)
}
