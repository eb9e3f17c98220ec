package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/omegalabs/studio/internal/models"
	"github.com/omegalabs/studio/internal/output"
	"github.com/omegalabs/studio/internal/session"
	"github.com/omegalabs/studio/internal/vfs"
)

var projectTemplate string

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage project sessions",
	Long:  "Create, list, show, and delete project sessions.",
}

var projectNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a new project session",
	Long:  "Create a new project session scaffolded from a template.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return projectNewRun(args[0])
	},
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent project sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return projectListRun()
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show <name-or-id>",
	Short: "Show detailed session information",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return projectShowRun(args[0])
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:     "delete <name-or-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a project session",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return projectDeleteRun(args[0])
	},
}

func init() {
	projectNewCmd.Flags().StringVar(&projectTemplate, "template", "",
		"Scaffold template: android-empty, android-compose, web-react, game-canvas, backend-node, ai-agent")

	projectCmd.AddCommand(projectNewCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectDeleteCmd)
	rootCmd.AddCommand(projectCmd)
}

func projectNewRun(name string) error {
	s, err := getStore()
	if err != nil {
		return err
	}

	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("project name must not be empty")
	}

	tmpl := projectTemplate
	if tmpl == "" {
		tmpl = viper.GetString("project.template")
	}

	sess := session.New(name, models.Template(tmpl))
	if err := s.SaveSession(context.Background(), sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	ui.Success("Created project %s (%s)", output.Cyan(sess.Name), sess.ID)
	ui.Info("Template: %s, %d files", sess.Template, len(sess.Files))
	return nil
}

func projectListRun() error {
	s, err := getStore()
	if err != nil {
		return err
	}

	recent, err := s.ListRecent(context.Background(), 0)
	if err != nil {
		return err
	}

	if len(recent) == 0 {
		ui.Info("No projects yet. Use 'studio project new <name>' to get started.")
		return nil
	}

	table := ui.Table([]string{"Name", "Template", "Modified", "ID"})
	for _, r := range recent {
		table.Append([]string{
			output.Cyan(r.Name),
			string(r.Template),
			relativeTime(r.LastModified),
			r.ID,
		})
	}
	return table.Render()
}

func projectShowRun(ref string) error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	id, err := resolveSession(ctx, s, ref)
	if err != nil {
		return err
	}
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "%s\n", output.Cyan(sess.Name))
	fmt.Fprintf(ui.Out, "  ID:       %s\n", sess.ID)
	fmt.Fprintf(ui.Out, "  Template: %s\n", sess.Template)
	fmt.Fprintf(ui.Out, "  Files:    %d\n", len(sess.Files))
	fmt.Fprintf(ui.Out, "  Build:    %s\n", sess.BuildStatus)
	fmt.Fprintf(ui.Out, "  Deploy:   %s\n", sess.DeployStatus)
	fmt.Fprintf(ui.Out, "  Modified: %s\n", relativeTime(sess.LastModified))
	if f := sess.ActiveFile(); f != nil {
		fmt.Fprintf(ui.Out, "  Active:   %s\n", f.Name)
	}

	if verbose && len(sess.Logs) > 0 {
		fmt.Fprintln(ui.Out)
		tail := sess.Logs
		if len(tail) > 10 {
			tail = tail[len(tail)-10:]
		}
		for _, entry := range tail {
			ui.LogLine(entry)
		}
	}

	// Surface tree corruption rather than hiding it behind a count.
	if err := vfs.ValidateTree(sess.Files); err != nil {
		ui.Warning("File tree problem: %v", err)
	}
	return nil
}

func projectDeleteRun(ref string) error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	id, err := resolveSession(ctx, s, ref)
	if err != nil {
		return err
	}
	if err := s.DeleteSession(ctx, id); err != nil {
		return err
	}

	ui.Success("Deleted project %s", ref)
	return nil
}

// relativeTime renders a timestamp as a short "3h ago" style string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
