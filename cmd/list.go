package cmd

import (
	"github.com/spf13/cobra"
)

var (
	listFilter  string
	reposFilter string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workspaces grouped by repository",
	Long: `Reconciles the workspace root with stored metadata and lists every
workspace. Metadata for folders that no longer exist is pruned.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "List repositories found under the configured roots",
	Args:  cobra.NoArgs,
	RunE:  runRepos,
}

func init() {
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "Only show workspaces whose repository or task contains this text")
	reposCmd.Flags().StringVarP(&reposFilter, "filter", "f", "", "Only show repositories whose name contains this text")
	rootCmd.AddCommand(listCmd, reposCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	groups := a.Refresh(cmd.Context()).FilterWorkspaces(listFilter)
	if len(groups) == 0 {
		if listFilter != "" {
			logInfo("No workspaces match %q.", listFilter)
		} else {
			logInfo("No workspaces yet. Create one with: parallax new <repo> <task>")
		}
		return nil
	}
	return printWorkspaces(cmd.OutOrStdout(), groups)
}

func runRepos(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	repos := a.Refresh(cmd.Context()).FilterRepositories(reposFilter)
	if len(repos) == 0 {
		logInfo("No repositories found under %v", a.Settings.RootPaths)
		return nil
	}
	return printRepositories(cmd.OutOrStdout(), repos)
}
