package cmd

import (
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm <workspace>",
	Aliases: []string{"delete"},
	Short:   "Delete a workspace",
	Long: `Deletes a workspace folder and its metadata. Only folders inside the
workspace root can be deleted. The source repository is not touched.`,
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

var mergeCmd = &cobra.Command{
	Use:   "merge <workspace>",
	Short: "Bring a workspace branch back into its source repository",
	Long: `Fetches the workspace branch into the source repository and points
the local branch of the same name at it. The source checkout is unchanged;
merge or check out the branch there yourself.`,
	Args: cobra.ExactArgs(1),
	RunE: runMerge,
}

var openCmd = &cobra.Command{
	Use:   "open <workspace>",
	Short: "Open a workspace in the configured editor",
	Args:  cobra.ExactArgs(1),
	RunE:  runOpen,
}

func init() {
	rootCmd.AddCommand(rmCmd, mergeCmd, openCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ws, err := findWorkspace(cmd.Context(), a, args[0])
	if err != nil {
		return err
	}
	if err := a.DeleteWorkspace(cmd.Context(), ws); err != nil {
		return err
	}
	logSuccess("Deleted %s", ws.Name())
	return nil
}

func runMerge(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ws, err := findWorkspace(cmd.Context(), a, args[0])
	if err != nil {
		return err
	}
	if err := a.MergeBack(cmd.Context(), ws); err != nil {
		return err
	}
	logSuccess("Branch %s is now available in %s", ws.BranchName, ws.SourceRepoPath)
	return nil
}

func runOpen(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ws, err := findWorkspace(cmd.Context(), a, args[0])
	if err != nil {
		return err
	}
	return a.Open(ws.Path)
}
