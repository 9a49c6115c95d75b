package app

import (
	"context"

	"github.com/parallax-dev/parallax/internal/config"
	"github.com/parallax-dev/parallax/internal/editor"
	perrors "github.com/parallax-dev/parallax/internal/errors"
	"github.com/parallax-dev/parallax/internal/git"
	"github.com/parallax-dev/parallax/internal/history"
	"github.com/parallax-dev/parallax/internal/logging"
	"github.com/parallax-dev/parallax/internal/metadata"
	"github.com/parallax-dev/parallax/internal/repo"
	"github.com/parallax-dev/parallax/internal/system"
	"github.com/parallax-dev/parallax/internal/workspace"
)

// App holds the application dependencies.
type App struct {
	Settings config.Settings
	Paths    *config.Paths

	// LoadIssue is set when saved settings could not be used and defaults
	// were substituted.
	LoadIssue *config.Issue

	Store      *metadata.Store
	Repos      *repo.Scanner
	Folders    *workspace.FolderScanner
	Reconciler *workspace.Reconciler
	Manager    *workspace.Manager
	History    *history.Log
	Editor     *editor.Launcher

	exec        system.CommandExecutor
	git         git.Operations
	settingsSet bool
}

// Option configures an App.
type Option func(*App)

// WithSettings uses s instead of the settings file.
func WithSettings(s config.Settings) Option {
	return func(a *App) {
		a.Settings = s
		a.settingsSet = true
	}
}

// WithPaths sets custom paths.
func WithPaths(paths *config.Paths) Option {
	return func(a *App) {
		a.Paths = paths
	}
}

// WithExecutor sets the executor used for git and the editor.
func WithExecutor(exec system.CommandExecutor) Option {
	return func(a *App) {
		a.exec = exec
	}
}

// WithGit replaces the git operations.
func WithGit(ops git.Operations) Option {
	return func(a *App) {
		a.git = ops
	}
}

// New builds an App. Settings come from the settings file unless
// WithSettings is given; invalid settings are a config error.
func New(opts ...Option) (*App, error) {
	a := &App{}
	for _, opt := range opts {
		opt(a)
	}

	if a.Paths == nil {
		a.Paths = config.DefaultPaths()
	}
	if !a.settingsSet {
		res := config.LoadSettings(a.Paths.SettingsFile)
		a.Settings, a.LoadIssue = res.Settings, res.Issue
		if res.Issue != nil {
			logging.Warn("using default settings", "path", a.Paths.SettingsFile, "error", res.Issue)
		}
	}

	settings, err := a.Settings.Validated()
	if err != nil {
		return nil, perrors.ConfigError("invalid settings", err)
	}
	a.Settings = settings

	if a.exec == nil {
		a.exec = system.DefaultExecutor()
	}
	if a.git == nil {
		a.git = git.NewCLI(a.exec)
	}

	root := settings.ExpandedWorkspaceRoot()
	a.Store = metadata.NewStore(a.Paths.MetadataFile)
	a.Repos = repo.NewScanner(settings.ExpandedRootPaths())
	a.Folders = workspace.NewFolderScanner(root)
	a.Reconciler = workspace.NewReconciler(a.Folders, a.Store, a.git)
	a.Manager = workspace.NewManager(root, a.Store, a.git)
	a.History = history.NewLog(a.Paths.HistoryFile)
	a.Editor = editor.NewLauncher(a.exec)

	return a, nil
}

// Refresh scans repositories, attaches usage counts and reconciles the
// workspace root.
func (a *App) Refresh(ctx context.Context) Snapshot {
	repos := a.Repos.Scan(ctx)
	freq := a.History.Frequencies()
	for i := range repos {
		repos[i].Frequency = freq[repos[i].Path]
	}

	return Snapshot{
		Repositories: repos,
		Workspaces:   a.Reconciler.Reconcile(ctx, repos),
	}
}

// CreateWorkspace creates a workspace for task and records the usage.
func (a *App) CreateWorkspace(ctx context.Context, r repo.Repository, task string) (workspace.Workspace, error) {
	ws, err := a.Manager.Create(ctx, r, task)
	if err != nil {
		return workspace.Workspace{}, err
	}
	a.History.Record(history.EventCreate, ws.Path, r.Path)
	return ws, nil
}

// DeleteWorkspace removes ws.
func (a *App) DeleteWorkspace(ctx context.Context, ws workspace.Workspace) error {
	if err := a.Manager.Delete(ctx, ws); err != nil {
		return err
	}
	a.History.Record(history.EventDelete, ws.Path, ws.SourceRepoPath)
	return nil
}

// MergeBack brings the workspace branch into its source repository.
func (a *App) MergeBack(ctx context.Context, ws workspace.Workspace) error {
	if err := a.Manager.MergeBack(ctx, ws); err != nil {
		return err
	}
	a.History.Record(history.EventMergeBack, ws.Path, ws.SourceRepoPath)
	return nil
}

// Open launches the configured editor on path.
func (a *App) Open(path string) error {
	return a.Editor.Open(a.Settings.Editor, path)
}
