package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/omegalabs/studio/internal/pipeline"
)

var buildSession string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run the simulated build pipeline for a session",
	Long: `Run the build pipeline for a session. Build progress is appended to
the session log and the session's build status is updated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return buildRun()
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildSession, "session", "s", "", "Session name or id (required)")
	_ = buildCmd.MarkFlagRequired("session")
	rootCmd.AddCommand(buildCmd)
}

func buildRun() error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	id, err := resolveSession(ctx, s, buildSession)
	if err != nil {
		return err
	}
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return err
	}

	logStart := len(sess.Logs)
	buildErr := pipeline.New().Build(ctx, sess)

	for _, entry := range sess.Logs[logStart:] {
		ui.LogLine(entry)
	}

	if err := s.SaveSession(ctx, sess); err != nil {
		ui.Warning("Saving session failed: %v", err)
	}

	if buildErr != nil {
		return buildErr
	}
	ui.Success("Build %s", sess.BuildStatus)
	return nil
}
