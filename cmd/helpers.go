package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/parallax-dev/parallax/internal/app"
	"github.com/parallax-dev/parallax/internal/config"
	"github.com/parallax-dev/parallax/internal/repo"
	"github.com/parallax-dev/parallax/internal/workspace"
)

// appOptions are appended to every App built by commands. Tests use it to
// inject executors and git fakes.
var appOptions []app.Option

// paths returns the resolved paths, honoring --config.
func paths() *config.Paths {
	p := config.DefaultPaths()
	if settingsFile != "" {
		p.SettingsFile = settingsFile
	}
	return p
}

// newApp builds the application from the settings file.
func newApp() (*app.App, error) {
	opts := append([]app.Option{app.WithPaths(paths())}, appOptions...)
	a, err := app.New(opts...)
	if err != nil {
		return nil, err
	}
	if a.LoadIssue != nil {
		logWarning("Settings could not be used (%v); running with defaults.", a.LoadIssue)
		if a.LoadIssue.BackupPath != "" {
			logWarning("The unreadable file was moved to %s", a.LoadIssue.BackupPath)
		}
	}
	return a, nil
}

// findWorkspace refreshes and resolves a workspace argument.
func findWorkspace(ctx context.Context, a *app.App, arg string) (workspace.Workspace, error) {
	return a.Refresh(ctx).FindWorkspace(arg)
}

func printWorkspaces(w io.Writer, groups []app.WorkspaceGroup) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WORKSPACE\tBRANCH\tMERGE\tCREATED\tPATH")
	for _, g := range groups {
		for _, ws := range g.Workspaces {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				ws.Name(), orDash(ws.BranchName), mergeStatus(ws), formatCreated(ws.CreatedAt), ws.Path)
		}
	}
	return tw.Flush()
}

func printRepositories(w io.Writer, repos []repo.Repository) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tUSES\tPATH")
	for _, r := range repos {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", r.Name, r.Frequency, r.Path)
	}
	return tw.Flush()
}

func mergeStatus(ws workspace.Workspace) string {
	if ws.CanMergeBack() {
		return "✓ ready"
	}
	return "○ unknown source"
}

func formatCreated(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
