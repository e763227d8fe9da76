package user

import (
	"time"

	"github.com/caarlos0/duration"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/taskflow-dev/taskflow/pkg/backend"
	"github.com/taskflow-dev/taskflow/pkg/config"
	"github.com/taskflow-dev/taskflow/pkg/proto"
	"github.com/taskflow-dev/taskflow/pkg/session"
)

func init() {
	var expiresIn string
	cmd := &cobra.Command{
		Use:   "token EMAIL",
		Short: "Issue a session token for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			be := backend.FromContext(ctx)
			user, err := be.UserByEmail(ctx, args[0])
			if err != nil {
				return err
			}

			p, err := session.NewJWTProvider(cfg.Auth)
			if err != nil {
				return err
			}

			ttl, err := tokenTTL(expiresIn, cfg.Auth.SessionTTL)
			if err != nil {
				return err
			}
			token, err := p.Issue(user.ID, ttl)
			if err != nil {
				return err
			}

			cmd.Println(token)
			cmd.PrintErrf("Expires %s\n", humanize.Time(time.Now().Add(ttl)))
			return nil
		},
	}

	cmd.Flags().StringVar(&expiresIn, "ttl", "", "Token lifetime, defaults to auth.session_ttl (e.g. 1w, 5d4h, 1h30m)")
	Command.AddCommand(cmd)
}

// tokenTTL parses a lifetime flag such as "1w" or "5d4h", falling back to def
// when the flag is empty.
func tokenTTL(flag string, def time.Duration) (time.Duration, error) {
	ttl := def
	if flag != "" {
		d, err := duration.Parse(flag)
		if err != nil {
			return 0, err
		}
		ttl = d
	}
	if ttl <= 0 {
		return 0, proto.Invalid("Token lifetime must be positive")
	}
	return ttl, nil
}
