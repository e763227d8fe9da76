package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/taskflow-dev/taskflow/cmd/taskflow/admin"
	"github.com/taskflow-dev/taskflow/cmd/taskflow/board"
	"github.com/taskflow-dev/taskflow/cmd/taskflow/serve"
	"github.com/taskflow-dev/taskflow/cmd/taskflow/user"
	"github.com/taskflow-dev/taskflow/pkg/config"
	logr "github.com/taskflow-dev/taskflow/pkg/log"
	"github.com/taskflow-dev/taskflow/pkg/stats"
	"go.uber.org/automaxprocs/maxprocs"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""

	rootCmd = &cobra.Command{
		Use:          "taskflow",
		Short:        "A task board server for teams",
		Long:         "Taskflow serves team and personal task boards with history, subtasks, comments and attachments.",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.AddCommand(
		serve.Command,
		admin.Command,
		user.Command,
		board.Command,
		manCmd,
	)

	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
			Version = info.Main.Version
		} else {
			Version = "unknown (built from source)"
		}
	}
	rootCmd.Version = Version
	stats.SetVersion(Version)
}

func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	if cfg.Exist() {
		if err := cfg.ParseFile(); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}
	if err := cfg.ParseEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal("load config", "err", err)
	}
	ctx = config.WithContext(ctx, cfg)

	logger, f, err := logr.NewLogger(cfg)
	if err != nil {
		log.Fatal("create logger", "err", err)
	}
	if f != nil {
		defer f.Close() // nolint: errcheck
	}

	// Set global logger
	log.SetDefault(logger)

	// Set the max number of processes to the number of CPUs
	// This is useful when running taskflow in a container
	if _, err := maxprocs.Set(maxprocs.Logger(log.Debugf)); err != nil {
		log.Warn("couldn't set automaxprocs", "error", err)
	}

	ctx = log.WithContext(ctx, logger)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if f != nil {
			f.Close() // nolint: errcheck
		}
		os.Exit(1)
	}
}
