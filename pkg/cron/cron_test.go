package cron

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/matryer/is"
	"github.com/robfig/cron/v3"
)

func TestCronLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)
	clogger := cronLogger{logger}
	clogger.Info("foo")
	clogger.Error(errors.New("bar"), "test")
	if buf.String() != "DEBU foo\nERRO test err=bar\n" {
		t.Errorf("unexpected log output: %s", buf.String())
	}
}

func TestSchedulerAddRemove(t *testing.T) {
	is := is.New(t)
	s := NewScheduler(context.TODO())
	id, err := s.AddFunc("* * * * *", func() {})
	is.NoErr(err)
	is.Equal(len(s.Entries()), 1)
	s.Remove(id)
	is.Equal(len(s.Entries()), 0)

	_, err = s.AddFunc("not a spec", func() {})
	is.True(err != nil)
}

func TestAddJobLogsFailures(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	logger := log.New(&buf)
	ctx := log.WithContext(context.Background(), logger)

	s := NewScheduler(ctx)
	id, err := s.AddJob("prune", "@hourly", func() error {
		return errors.New("disk gone")
	})
	is.NoErr(err)

	s.Entry(cron.EntryID(id)).WrappedJob.Run()
	is.True(strings.Contains(buf.String(), "job failed"))
	is.True(strings.Contains(buf.String(), "disk gone"))
}
