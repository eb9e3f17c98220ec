package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/omegalabs/studio/internal/export"
)

var exportOutDir string

var exportCmd = &cobra.Command{
	Use:   "export <name-or-id>",
	Short: "Export a session as a source archive",
	Long: `Export a session's full state (files, logs, statuses) as a JSON
source archive named <Project_Name>_Source.omega.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return exportRun(args[0])
	},
}

var importCmd = &cobra.Command{
	Use:   "import <archive>",
	Short: "Import a session from a source archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return importRun(args[0])
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutDir, "out", "o", ".", "Output directory")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func exportRun(ref string) error {
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

	path := filepath.Join(exportOutDir, export.Filename(sess))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer f.Close()

	if err := export.WriteArchive(sess, f); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}

	ui.Success("Exported %s to %s", sess.Name, path)
	return nil
}

func importRun(path string) error {
	s, err := getStore()
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	sess, err := export.ReadArchive(f)
	if err != nil {
		return fmt.Errorf("read archive: %w", err)
	}

	if err := s.SaveSession(context.Background(), sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	ui.Success("Imported %s (%s)", sess.Name, sess.ID)
	return nil
}
