package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/parallax-dev/parallax/internal/app"
	"github.com/parallax-dev/parallax/internal/pathsafe"
)

var gcForce bool

var gcCmd = &cobra.Command{
	Use:   "gc",
	Short: "Report stale workspace metadata and unmanaged folders",
	Long: `Compares stored workspace metadata with the workspace root.

Without --force, prints what a reconciliation would drop (dry run).
With --force, reconciles now, pruning metadata for vanished folders.

Detects:
  - Stale metadata: records with no folder under the current workspace
    root, including folders left under a previous root
  - Unmanaged folders: folders without metadata whose name does not
    parse as <repo>__<task>; these are never listed or deleted`,
	Args: cobra.NoArgs,
	RunE: runGC,
}

func init() {
	gcCmd.Flags().BoolVar(&gcForce, "force", false, "Prune stale metadata now (default is dry run)")
	rootCmd.AddCommand(gcCmd)
}

// gcResult tracks what gc found.
type gcResult struct {
	staleRecords     []string
	unmanagedFolders []string
}

func (r *gcResult) empty() bool {
	return len(r.staleRecords) == 0 && len(r.unmanagedFolders) == 0
}

func runGC(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	result, err := collectGC(cmd.Context(), a)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.empty() {
		logInfo("Nothing to clean up.")
		return nil
	}
	for _, p := range result.staleRecords {
		fmt.Fprintf(out, "stale metadata: %s\n", p)
	}
	for _, p := range result.unmanagedFolders {
		fmt.Fprintf(out, "unmanaged folder: %s\n", p)
	}

	if !gcForce {
		logInfo("Dry run. Re-run with --force to prune stale metadata.")
		return nil
	}
	a.Refresh(cmd.Context())
	logSuccess("Pruned %d stale metadata record(s)", len(result.staleRecords))
	return nil
}

// collectGC mirrors what a reconciliation prunes: every record whose key is
// not among the scanned folders.
func collectGC(ctx context.Context, a *app.App) (*gcResult, error) {
	records, err := a.Store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace metadata: %w", err)
	}
	folders, err := a.Folders.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan workspace root: %w", err)
	}

	result := &gcResult{}
	seen := make(map[string]bool, len(folders))
	for _, folder := range folders {
		key := pathsafe.Canonicalize(folder.Path)
		seen[key] = true
		if folder.Parsed != nil {
			continue
		}
		if _, tracked := records[key]; !tracked {
			result.unmanagedFolders = append(result.unmanagedFolders, folder.Path)
		}
	}
	for key := range records {
		if !seen[key] {
			result.staleRecords = append(result.staleRecords, key)
		}
	}

	sort.Strings(result.staleRecords)
	sort.Strings(result.unmanagedFolders)
	return result, nil
}
