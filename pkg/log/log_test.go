package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/taskflow-dev/taskflow/pkg/config"
)

func TestGoodNewLogger(t *testing.T) {
	for _, c := range []*config.Config{
		config.DefaultConfig(),
		{},
		{Log: config.LogConfig{Format: "json"}},
		{Log: config.LogConfig{Format: "LOGFMT"}},
		{Log: config.LogConfig{Path: filepath.Join(t.TempDir(), "logs", "taskflow.log")}},
	} {
		_, f, err := NewLogger(c)
		if err != nil {
			t.Errorf("NewLogger(%v) => _, _, %v, want _, _, nil", c, err)
		}
		if f != nil {
			f.Close()
		}
	}
}

func TestBadNewLogger(t *testing.T) {
	for _, c := range []*config.Config{
		nil,
		{Log: config.LogConfig{Path: "\x00"}},
		{Log: config.LogConfig{Format: "xml"}},
	} {
		_, f, err := NewLogger(c)
		if err == nil {
			t.Errorf("NewLogger(%v) => _, _, nil, want error", c)
		}
		if f != nil {
			f.Close()
		}
	}
}

func TestLoggerWritesFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "taskflow.log")
	logger, f, err := NewLogger(&config.Config{Log: config.LogConfig{Format: "logfmt", Path: path}})
	is.NoErr(err)
	logger.Info("task created", "task", "t1")
	is.NoErr(f.Close())

	b, err := os.ReadFile(path)
	is.NoErr(err)
	is.True(strings.Contains(string(b), "task=t1"))
}
