package user

import (
	"github.com/caarlos0/tablewriter"
	"github.com/spf13/cobra"
	"github.com/taskflow-dev/taskflow/cmd"
	"github.com/taskflow-dev/taskflow/pkg/backend"
	"github.com/taskflow-dev/taskflow/pkg/proto"
)

// Command is the user command.
var Command = &cobra.Command{
	Use:                "user",
	Aliases:            []string{"users"},
	Short:              "Manage users",
	PersistentPreRunE:  cmd.InitBackendContext,
	PersistentPostRunE: cmd.CloseDBContext,
}

func init() {
	var image string
	userCreateCommand := &cobra.Command{
		Use:   "create NAME EMAIL",
		Short: "Create a new user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)
			var img *string
			if image != "" {
				img = &image
			}

			user, err := be.CreateUser(ctx, args[0], args[1], img)
			if err != nil {
				return err
			}

			cmd.Println(user.ID)
			return nil
		},
	}

	userCreateCommand.Flags().StringVarP(&image, "image", "i", "", "avatar URL of the user")

	userListCommand := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List users",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)
			users, err := be.ListUsers(ctx)
			if err != nil {
				return err
			}

			return tablewriter.Render(
				cmd.OutOrStdout(),
				users,
				[]string{"ID", "Name", "Email"},
				func(u proto.User) ([]string, error) {
					return []string{u.ID, u.Name, u.Email}, nil
				},
			)
		},
	}

	Command.AddCommand(
		userCreateCommand,
		userListCommand,
	)
}
