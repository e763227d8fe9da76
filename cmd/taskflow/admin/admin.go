package admin

import (
	"fmt"
	"strconv"

	"github.com/caarlos0/tablewriter"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/taskflow-dev/taskflow/cmd"
	"github.com/taskflow-dev/taskflow/pkg/backend"
	"github.com/taskflow-dev/taskflow/pkg/db"
	"github.com/taskflow-dev/taskflow/pkg/db/migrate"
)

var (
	// Command is the admin command.
	Command = &cobra.Command{
		Use:                "admin",
		Short:              "Administrate the server",
		PersistentPreRunE:  cmd.InitBackendContext,
		PersistentPostRunE: cmd.CloseDBContext,
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the database to the latest version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db := db.FromContext(ctx)
			if err := migrate.Migrate(ctx, db); err != nil {
				return fmt.Errorf("migration: %w", err)
			}

			return nil
		},
	}

	rollbackCmd = &cobra.Command{
		Use:   "rollback",
		Short: "Rollback the database to the previous version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db := db.FromContext(ctx)
			if err := migrate.Rollback(ctx, db); err != nil {
				return fmt.Errorf("rollback: %w", err)
			}

			return nil
		},
	}

	statusCmd = &cobra.Command{
		Use:   "migrations",
		Short: "List applied and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			applied, pending, err := migrate.Status(ctx, db.FromContext(ctx))
			if err != nil {
				return fmt.Errorf("migration status: %w", err)
			}

			rows := make([]migrationRow, 0, len(applied)+len(pending))
			for _, a := range applied {
				rows = append(rows, migrationRow{a.Version, a.Name, humanize.Time(a.AppliedAt)})
			}
			for _, m := range pending {
				rows = append(rows, migrationRow{m.Version, m.Name, "pending"})
			}

			return tablewriter.Render(
				cmd.OutOrStdout(),
				rows,
				[]string{"Version", "Name", "Applied"},
				func(r migrationRow) ([]string, error) {
					return []string{strconv.FormatInt(r.version, 10), r.name, r.applied}, nil
				},
			)
		},
	}

	pruneBlobsCmd = &cobra.Command{
		Use:   "prune-blobs",
		Short: "Delete stored attachment bytes that no attachment references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)
			n, err := be.PruneBlobs(ctx)
			if err != nil {
				return fmt.Errorf("prune blobs: %w", err)
			}

			cmd.Printf("Removed %d blob(s)\n", n)
			return nil
		},
	}
)

type migrationRow struct {
	version int64
	name    string
	applied string
}

func init() {
	Command.AddCommand(
		migrateCmd,
		rollbackCmd,
		statusCmd,
		pruneBlobsCmd,
	)
}
