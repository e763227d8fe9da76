package main

import (
	"fmt"

	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/spf13/cobra"
)

var manCmd = &cobra.Command{
	Use:    "man",
	Short:  "Generate man pages",
	Args:   cobra.NoArgs,
	Hidden: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		page, err := mcobra.NewManPage(1, cmd.Root())
		if err != nil {
			return err
		}

		page = page.WithSection("Environment", "Every configuration key can be set with a TASKFLOW_ variable, "+
			"for example TASKFLOW_DB_DATA_SOURCE or TASKFLOW_AUTH_JWT_SECRET.")
		fmt.Fprintln(cmd.OutOrStdout(), page.Build(roff.NewDocument()))
		return nil
	},
}
