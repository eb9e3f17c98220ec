package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omegalabs/studio/internal/models"
	"github.com/omegalabs/studio/internal/output"
	"github.com/omegalabs/studio/internal/vfs"
)

var fileSession string

var fileCmd = &cobra.Command{
	Use:   "file",
	Short: "Inspect a session's virtual file tree",
}

var fileTreeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the virtual file tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		return fileTreeRun()
	},
}

var fileCatCmd = &cobra.Command{
	Use:   "cat <file-name-or-id>",
	Short: "Print a virtual file's content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return fileCatRun(args[0])
	},
}

func init() {
	fileCmd.PersistentFlags().StringVarP(&fileSession, "session", "s", "", "Session name or id (required)")
	_ = fileCmd.MarkPersistentFlagRequired("session")

	fileCmd.AddCommand(fileTreeCmd)
	fileCmd.AddCommand(fileCatCmd)
	rootCmd.AddCommand(fileCmd)
}

func loadFileSession() (*models.Session, error) {
	s, err := getStore()
	if err != nil {
		return nil, err
	}
	ctx := context.Background()

	id, err := resolveSession(ctx, s, fileSession)
	if err != nil {
		return nil, err
	}
	return s.GetSession(ctx, id)
}

func fileTreeRun() error {
	sess, err := loadFileSession()
	if err != nil {
		return err
	}

	printTree(sess, models.RootID, "")
	return nil
}

func printTree(sess *models.Session, parentID, indent string) {
	for _, f := range vfs.Children(sess.Files, parentID) {
		name := f.Name
		if f.IsFolder() {
			name = output.Cyan(name + "/")
		}
		marker := ""
		if f.ID == sess.ActiveFileID {
			marker = " " + output.Green("*")
		}
		fmt.Fprintf(ui.Out, "%s%s%s\n", indent, name, marker)
		if f.IsFolder() {
			printTree(sess, f.ID, indent+"  ")
		}
	}
}

func fileCatRun(ref string) error {
	sess, err := loadFileSession()
	if err != nil {
		return err
	}

	f := vfs.Find(sess.Files, ref)
	if f == nil {
		for i := range sess.Files {
			if sess.Files[i].Name == ref && !sess.Files[i].IsFolder() {
				f = &sess.Files[i]
				break
			}
		}
	}
	if f == nil {
		return fmt.Errorf("file not found: %s", ref)
	}
	if f.IsFolder() {
		return fmt.Errorf("%s is a folder", f.Name)
	}

	fmt.Fprint(ui.Out, f.Content)
	if len(f.Content) > 0 && f.Content[len(f.Content)-1] != '\n' {
		fmt.Fprintln(ui.Out)
	}
	return nil
}
