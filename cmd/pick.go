package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parallax-dev/parallax/internal/app"
	"github.com/parallax-dev/parallax/internal/logging"
	"github.com/parallax-dev/parallax/internal/tui"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactive workspace picker",
	Long: `Opens an interactive TUI listing workspaces grouped by repository.

Use arrow keys or j/k to navigate, / to filter.

Actions:
  Enter  - Open selected workspace in the editor
  n      - Create a workspace (choose repository, then task)
  d      - Delete selected workspace
  m      - Merge selected workspace back into its source
  q/Esc  - Quit`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	logging.Debug("picker mode started")
	result, err := tui.RunPicker(a.Refresh(cmd.Context()))
	if err != nil {
		return fmt.Errorf("picker error: %w", err)
	}
	logging.Debug("picker result", "action", result.Action)

	return applyPickerResult(cmd.Context(), a, result)
}

// applyPickerResult performs the action chosen in the picker.
func applyPickerResult(ctx context.Context, a *app.App, result tui.PickerResult) error {
	switch result.Action {
	case tui.ActionOpen:
		if result.Workspace != nil {
			return a.Open(result.Workspace.Path)
		}

	case tui.ActionNew:
		if result.Create != nil {
			ws, err := a.CreateWorkspace(ctx, result.Create.Repo, result.Create.Task)
			if err != nil {
				return err
			}
			logSuccess("Created %s on branch %s", ws.Name(), ws.BranchName)
			return a.Open(ws.Path)
		}

	case tui.ActionDelete:
		if result.Workspace != nil {
			if err := a.DeleteWorkspace(ctx, *result.Workspace); err != nil {
				return err
			}
			logSuccess("Deleted %s", result.Workspace.Name())
		}

	case tui.ActionMerge:
		if result.Workspace != nil {
			if err := a.MergeBack(ctx, *result.Workspace); err != nil {
				return err
			}
			logSuccess("Branch %s is now available in %s", result.Workspace.BranchName, result.Workspace.SourceRepoPath)
		}
	}

	return nil
}
