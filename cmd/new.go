package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var newOpen bool

var newCmd = &cobra.Command{
	Use:   "new <repo> <task>",
	Short: "Create a workspace for a task",
	Long: `Copies a repository into the workspace root and checks out a new
agent/<task> branch there.

<repo> is a repository name as shown by 'parallax repos', or its path.
<task> is free text; it is turned into a slug for the folder and branch
names, e.g. "Fix login bug" becomes <repo>__fix-login-bug on branch
agent/fix-login-bug. A numeric suffix is added when the folder is taken.`,
	Args: cobra.ExactArgs(2),
	RunE: runNew,
}

func init() {
	newCmd.Flags().BoolVarP(&newOpen, "open", "o", false, "Open the workspace in the configured editor")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	r, err := a.Refresh(ctx).FindRepository(args[0])
	if err != nil {
		return err
	}

	ws, err := a.CreateWorkspace(ctx, r, args[1])
	if err != nil {
		return err
	}
	logSuccess("Created %s on branch %s", ws.Name(), ws.BranchName)
	fmt.Fprintln(cmd.OutOrStdout(), ws.Path)

	if newOpen {
		return a.Open(ws.Path)
	}
	return nil
}
