package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/taskflow-dev/taskflow/pkg/backend"
	"github.com/taskflow-dev/taskflow/pkg/config"
	"github.com/taskflow-dev/taskflow/pkg/db"
	"github.com/taskflow-dev/taskflow/pkg/storage"
	"github.com/taskflow-dev/taskflow/pkg/store/database"
)

// InitBackendContext opens the database and blob store and puts the backend
// in the command context.
func InitBackendContext(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return config.ErrNilConfig
	}
	if _, err := os.Stat(cfg.DataPath); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(cfg.DataPath, os.ModePerm); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}
	dbx, err := db.Open(ctx, cfg.DB.Driver, cfg.DB.DataSource)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	var blobs storage.Storage
	if cfg.Attachments.Backend == config.AttachmentsLocal {
		blobs = storage.NewLocalStorage(cfg.Attachments.Path)
	}

	ctx = db.WithContext(ctx, dbx)
	be := backend.New(ctx, cfg, dbx, database.New(ctx, dbx), blobs)
	ctx = backend.WithContext(ctx, be)

	cmd.SetContext(ctx)

	return nil
}

// CloseDBContext closes the database context.
func CloseDBContext(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	dbx := db.FromContext(ctx)
	if dbx != nil {
		if err := dbx.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
	}

	return nil
}
