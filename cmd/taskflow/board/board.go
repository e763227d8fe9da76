package board

import (
	"errors"
	"os"

	"github.com/caarlos0/tablewriter"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/taskflow-dev/taskflow/pkg/client"
	"github.com/taskflow-dev/taskflow/pkg/config"
	"github.com/taskflow-dev/taskflow/pkg/proto"
	"github.com/taskflow-dev/taskflow/pkg/syncclient"
)

var (
	server string
	token  string
	teamID string

	// Command shows a task board.
	Command = &cobra.Command{
		Use:   "board",
		Short: "Show a task board",
		Long:  "Show the personal task board, or a team board with --team.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := newBoard(cmd, nil)
			if err != nil {
				return err
			}
			if err := b.Refresh(cmd.Context()); err != nil {
				return err
			}
			return render(cmd, b)
		},
	}

	moveCmd = &cobra.Command{
		Use:   "move TASK_ID COLUMN",
		Short: "Move a task to another column",
		Long:  "Move a task to the todo, in_progress or completed column.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := newBoard(cmd, syncclient.NotifierFunc(func(level syncclient.Level, msg string) {
				cmd.PrintErrf("%s: %s\n", level, msg)
			}))
			if err != nil {
				return err
			}
			if err := b.Refresh(ctx); err != nil {
				return err
			}

			d := b.Drag(args[0])
			if err := d.Drop(ctx, args[1]); err != nil {
				return err
			}
			for _, s := range d.States() {
				if s == syncclient.DroppedInvalid {
					return proto.Invalid("Unknown column " + args[1])
				}
			}
			return render(cmd, b)
		},
	}
)

func init() {
	Command.PersistentFlags().StringVarP(&server, "server", "s", "", "server URL, defaults to http.public_url")
	Command.PersistentFlags().StringVarP(&token, "token", "t", "", "session token, defaults to $TASKFLOW_TOKEN")
	Command.PersistentFlags().StringVar(&teamID, "team", "", "team whose board to use")
	Command.AddCommand(moveCmd)
}

func newBoard(cmd *cobra.Command, n syncclient.Notifier) (*syncclient.Board, error) {
	cfg := config.FromContext(cmd.Context())
	if server == "" && cfg != nil {
		server = cfg.HTTP.PublicURL
	}
	if token == "" {
		token = os.Getenv("TASKFLOW_TOKEN")
	}
	if token == "" {
		return nil, errors.New("missing session token")
	}
	c := client.New(server, token)
	return syncclient.NewBoard(c, n, nil, teamID), nil
}

func render(cmd *cobra.Command, b *syncclient.Board) error {
	cols := b.Columns()
	var tasks []proto.Task
	for _, s := range proto.Statuses {
		tasks = append(tasks, cols[s]...)
	}
	return tablewriter.Render(
		cmd.OutOrStdout(),
		tasks,
		[]string{"Column", "ID", "Title", "Priority", "Due"},
		func(t proto.Task) ([]string, error) {
			due := "-"
			if t.DueDate != nil {
				due = humanize.Time(*t.DueDate)
			}
			return []string{string(t.Status), t.ID, t.Title, string(t.Priority), due}, nil
		},
	)
}
