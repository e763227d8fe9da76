package database

import (
	"database/sql"
)

// expectRows returns sql.ErrNoRows when an update or delete matched nothing.
func expectRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
