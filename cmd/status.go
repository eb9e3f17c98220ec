package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/omegalabs/studio/internal/output"
)

var statusCmd = &cobra.Command{
	Use:   "status [session]",
	Short: "Show session status dashboard",
	Long: `Show a summary of recent sessions, or detailed status for one session.

Running bare 'studio' is the same as 'studio status'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return projectShowRun(args[0])
		}
		return statusOverviewRun()
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func statusOverviewRun() error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	recent, err := s.ListRecent(ctx, 0)
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		ui.Info("No projects yet. Use 'studio project new <name>' to get started.")
		return nil
	}

	table := ui.Table([]string{"Project", "Template", "Files", "Build", "Deploy", "Modified"})
	for _, r := range recent {
		sess, err := s.GetSession(ctx, r.ID)
		if err != nil {
			continue
		}
		table.Append([]string{
			output.Cyan(sess.Name),
			string(sess.Template),
			strconv.Itoa(len(sess.Files)),
			string(sess.BuildStatus),
			string(sess.DeployStatus),
			relativeTime(sess.LastModified),
		})
	}
	return table.Render()
}
