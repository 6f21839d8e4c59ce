package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/repositories"
)

func newApplicationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "applications",
		Short: "Organizer application queue",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all organizer applications, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := openDB()
			if err != nil {
				return err
			}
			defer conn.Close()

			apps, err := repositories.NewPostgresOrganizerApplicationRepository(conn).ListWithUsers(cmd.Context())
			if err != nil {
				return err
			}
			newLogger().Debug("loaded applications", "count", len(apps))
			return printApplications(cmd.OutOrStdout(), opts.output, apps)
		},
	})

	return cmd
}

func printApplications(w io.Writer, format string, apps []*models.OrganizerApplicationWithUser) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(apps)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tAPPLICANT\tEMAIL\tSTATUS\tSUBMITTED\tREVIEWER")
	for _, app := range apps {
		applicant, email := "-", "-"
		if app.User != nil {
			applicant, email = app.User.Name, app.User.Email
		}
		reviewer := "-"
		if app.Reviewer != nil {
			reviewer = app.Reviewer.Name
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			app.ID, applicant, email, app.Status, app.CreatedAt.Format("2006-01-02 15:04"), reviewer)
	}
	return tw.Flush()
}
