package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/parallax-dev/parallax/internal/logging"
)

var (
	verbose      bool
	jsonOutput   bool
	settingsFile string
)

var rootCmd = &cobra.Command{
	Use:   "parallax",
	Short: "Disposable per-task workspaces for your git repositories",
	Long: `parallax creates isolated copies of your repositories, one per task.

Each workspace is:
  - A full copy of the source repository in the workspace root
  - Checked out on its own agent/<task> branch
  - Removable without touching the source
  - Mergeable back into the source as a local branch`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&settingsFile, "config", "", "Settings file (default is <config dir>/settings.toml)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)
