package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/omegalabs/studio/internal/agent"
	"github.com/omegalabs/studio/internal/output"
	"github.com/omegalabs/studio/internal/planner"
	"github.com/omegalabs/studio/internal/runner"
)

var runSession string

var runCmd = &cobra.Command{
	Use:   "run \"<goal>\"",
	Short: "Plan and execute a goal against a project session",
	Long: `Run the full agent loop for a goal: derive a task plan, execute each
task in order, and apply generated code to the session's active file.

The session is chosen with --session (name or id). Individual task
failures do not stop the run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGoalRun(args[0])
	},
}

func init() {
	runCmd.Flags().StringVarP(&runSession, "session", "s", "", "Session name or id (required)")
	_ = runCmd.MarkFlagRequired("session")
	rootCmd.AddCommand(runCmd)
}

func runGoalRun(goal string) error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	id, err := resolveSession(ctx, s, runSession)
	if err != nil {
		return err
	}
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return err
	}

	gen := newGenerator()
	if gen == nil {
		return fmt.Errorf("no API key configured (set anthropic.api_key or ANTHROPIC_API_KEY)")
	}

	r := runner.New(planner.New(gen), agent.New(gen, viper.GetInt("agent.context_limit")))

	logStart := len(sess.Logs)
	report, err := r.Run(ctx, sess, goal)
	if err != nil {
		return err
	}

	for _, entry := range sess.Logs[logStart:] {
		ui.LogLine(entry)
	}
	fmt.Fprintln(ui.Out)

	table := ui.Table([]string{"Role", "Task", "Status"})
	for _, t := range report.Tasks {
		_ = table.Append([]string{
			string(t.Role),
			t.Description,
			output.TaskStatusColor(t.Status),
		})
	}
	_ = table.Render()
	fmt.Fprintln(ui.Out)

	if err := s.SaveSession(ctx, sess); err != nil {
		ui.Warning("Run finished but saving failed: %v", err)
	}

	elapsed := report.Duration.Round(time.Millisecond)
	if report.Failed > 0 {
		ui.Warning("%d/%d tasks completed in %s (%d failed)",
			report.Completed, len(report.Tasks), elapsed, report.Failed)
	} else {
		ui.Success("%d/%d tasks completed in %s",
			report.Completed, len(report.Tasks), elapsed)
	}
	return nil
}
