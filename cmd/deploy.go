package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omegalabs/studio/internal/pipeline"
)

var (
	deploySession string
	deployTarget  string
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Run the simulated deploy pipeline for a session",
	Long: `Deploy a session to its simulated hosting target. The target is
derived from the session's template unless --target overrides it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return deployRun()
	},
}

func init() {
	deployCmd.Flags().StringVarP(&deploySession, "session", "s", "", "Session name or id (required)")
	deployCmd.Flags().StringVar(&deployTarget, "target", "", "Deploy target: firebase, vercel, cloudrun")
	_ = deployCmd.MarkFlagRequired("session")
	rootCmd.AddCommand(deployCmd)
}

func deployRun() error {
	s, err := getStore()
	if err != nil {
		return err
	}
	ctx := context.Background()

	id, err := resolveSession(ctx, s, deploySession)
	if err != nil {
		return err
	}
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return err
	}

	target := pipeline.TargetFor(sess.Template)
	if deployTarget != "" {
		switch deployTarget {
		case "firebase":
			target = pipeline.TargetFirebase
		case "vercel":
			target = pipeline.TargetVercel
		case "cloudrun":
			target = pipeline.TargetCloudRun
		default:
			return fmt.Errorf("unknown deploy target: %s", deployTarget)
		}
	}

	logStart := len(sess.Logs)
	deployErr := pipeline.New().Deploy(ctx, sess, target)

	for _, entry := range sess.Logs[logStart:] {
		ui.LogLine(entry)
	}

	if err := s.SaveSession(ctx, sess); err != nil {
		ui.Warning("Saving session failed: %v", err)
	}

	if deployErr != nil {
		return deployErr
	}
	ui.Success("Deploy %s on %s", sess.DeployStatus, target)
	return nil
}
