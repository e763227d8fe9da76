package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SlowQuery is the duration from which a statement is logged as a warning.
var SlowQuery = 500 * time.Millisecond

var queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "taskflow",
	Subsystem: "db",
	Name:      "query_duration_seconds",
	Help:      "Time spent running SQL statements",
	Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
}, []string{"op"})

// tracer times statements. Arguments are only logged in verbose mode since
// they carry user content.
type tracer struct {
	logger  *log.Logger
	verbose bool
}

func (t tracer) trace(op, query string, args []interface{}) func() {
	start := time.Now()
	return func() {
		elapsed := time.Since(start)
		queryDuration.WithLabelValues(op).Observe(elapsed.Seconds())
		if t.logger == nil {
			return
		}
		switch {
		case elapsed >= SlowQuery:
			t.logger.Warn("slow query", "op", op, "query", compact(query), "elapsed", elapsed)
		case t.verbose:
			t.logger.Debug("trace", "op", op, "query", compact(query), "args", args, "elapsed", elapsed)
		}
	}
}

func compact(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

// SelectContext runs sqlx SelectContext and traces the statement.
func (d *DB) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	defer d.trace("select", query, args)()
	return d.DB.SelectContext(ctx, dest, query, args...)
}

// GetContext runs sqlx GetContext and traces the statement.
func (d *DB) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	defer d.trace("get", query, args)()
	return d.DB.GetContext(ctx, dest, query, args...)
}

// ExecContext runs sqlx ExecContext and traces the statement.
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer d.trace("exec", query, args)()
	return d.DB.ExecContext(ctx, query, args...)
}

// SelectContext runs sqlx SelectContext in the transaction.
func (t *Tx) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	defer t.trace("select", query, args)()
	return t.Tx.SelectContext(ctx, dest, query, args...)
}

// GetContext runs sqlx GetContext in the transaction.
func (t *Tx) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	defer t.trace("get", query, args)()
	return t.Tx.GetContext(ctx, dest, query, args...)
}

// ExecContext runs sqlx ExecContext in the transaction.
func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer t.trace("exec", query, args)()
	return t.Tx.ExecContext(ctx, query, args...)
}
