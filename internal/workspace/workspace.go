package workspace

import (
	"path/filepath"
	"strings"
	"time"
)

const (
	// Separator joins repository and task in a workspace folder name.
	Separator = "__"

	// BranchPrefix prefixes every branch created for a workspace.
	BranchPrefix = "agent/"
)

// Workspace is a disposable copy of a repository on its own branch.
type Workspace struct {
	Path     string
	RepoName string
	TaskName string

	// SourceRepoPath and BranchName are empty when provenance is unknown.
	SourceRepoPath string
	BranchName     string

	// CreatedAt is zero when no metadata records the creation.
	CreatedAt time.Time
}

// Provenance is the resolved origin of a workspace.
type Provenance struct {
	SourceRepoPath string
	BranchName     string
}

// Provenance returns the source repository and branch, and false unless
// both are known.
func (w Workspace) Provenance() (Provenance, bool) {
	if w.SourceRepoPath == "" || w.BranchName == "" {
		return Provenance{}, false
	}
	return Provenance{SourceRepoPath: w.SourceRepoPath, BranchName: w.BranchName}, true
}

// CanMergeBack reports whether the workspace branch can be pulled into its
// source repository.
func (w Workspace) CanMergeBack() bool {
	_, ok := w.Provenance()
	return ok
}

// Name returns the folder name of the workspace.
func (w Workspace) Name() string {
	return filepath.Base(w.Path)
}

// Matches reports whether repo or task name contains query, ignoring case.
func (w Workspace) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(w.RepoName), q) ||
		strings.Contains(strings.ToLower(w.TaskName), q)
}

// FolderName builds the folder name for a repository and task.
func FolderName(repoName, task string) string {
	return repoName + Separator + task
}

// BranchName builds the branch name for a task.
func BranchName(task string) string {
	return BranchPrefix + task
}

// ParseFolderName splits name on the last separator. It reports false when
// the separator is missing or either side is empty.
func ParseFolderName(name, root string) (Workspace, bool) {
	i := strings.LastIndex(name, Separator)
	if i < 0 {
		return Workspace{}, false
	}
	repoName, task := name[:i], name[i+len(Separator):]
	if repoName == "" || task == "" {
		return Workspace{}, false
	}
	return Workspace{
		Path:     filepath.Join(root, name),
		RepoName: repoName,
		TaskName: task,
	}, true
}

// repoNameFromSource derives a repository name from a source path.
func repoNameFromSource(source, fallback string) string {
	if source == "" {
		return fallback
	}
	name := filepath.Base(source)
	if name == "." || name == string(filepath.Separator) {
		return fallback
	}
	return name
}

// taskNameFromBranch strips BranchPrefix from branch.
func taskNameFromBranch(branch, fallback string) string {
	task, ok := strings.CutPrefix(branch, BranchPrefix)
	if !ok || task == "" {
		return fallback
	}
	return task
}
