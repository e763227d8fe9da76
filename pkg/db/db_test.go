package db

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/matryer/is"
)

func TestOpenUnknownDriver(t *testing.T) {
	is := is.New(t)
	_, err := Open(context.TODO(), "invalid", "")
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "unknown driver"))
}

func TestSlowQueryIsLogged(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	ctx := log.WithContext(context.Background(), log.New(&buf))
	dbx, err := Open(ctx, "sqlite", ":memory:")
	is.NoErr(err)
	defer dbx.Close() // nolint: errcheck

	prev := SlowQuery
	SlowQuery = 0
	defer func() { SlowQuery = prev }()

	var n int
	is.NoErr(dbx.GetContext(ctx, &n, "SELECT\n\t1"))
	is.Equal(n, 1)
	is.True(strings.Contains(buf.String(), "slow query"))
	is.True(strings.Contains(buf.String(), "SELECT 1"))
}

func TestTraceQuietByDefault(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	ctx := log.WithContext(context.Background(), log.New(&buf))
	dbx, err := Open(ctx, "sqlite", ":memory:")
	is.NoErr(err)
	defer dbx.Close() // nolint: errcheck

	prev := SlowQuery
	SlowQuery = time.Hour
	defer func() { SlowQuery = prev }()

	_, err = dbx.ExecContext(ctx, "CREATE TABLE kv (k TEXT)")
	is.NoErr(err)
	is.Equal(buf.String(), "")
}
