package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dosada05/tournament-platform/db"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the embedded schema migrations",
	}

	for _, direction := range []string{"up", "down"} {
		direction := direction
		cmd.AddCommand(&cobra.Command{
			Use:   direction,
			Short: fmt.Sprintf("Run all %s migrations", direction),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := db.Migrate(opts.databaseURL, direction); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "migrations %s: done\n", direction)
				return nil
			},
		})
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List embedded migration files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := db.MigrationNames()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	})

	return cmd
}
