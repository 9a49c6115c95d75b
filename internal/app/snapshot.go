package app

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	perrors "github.com/parallax-dev/parallax/internal/errors"
	"github.com/parallax-dev/parallax/internal/pathsafe"
	"github.com/parallax-dev/parallax/internal/repo"
	"github.com/parallax-dev/parallax/internal/workspace"
)

// Snapshot is the state observed by one Refresh.
type Snapshot struct {
	Repositories []repo.Repository
	Workspaces   []workspace.Workspace
}

// WorkspaceGroup is the workspaces of one repository name.
type WorkspaceGroup struct {
	RepoName   string
	Workspaces []workspace.Workspace
}

// FilterWorkspaces returns the workspaces matching query grouped by
// repository name. Groups are sorted by name; an empty query matches all.
func (s Snapshot) FilterWorkspaces(query string) []WorkspaceGroup {
	query = strings.TrimSpace(query)

	index := make(map[string]int)
	var groups []WorkspaceGroup
	for _, ws := range s.Workspaces {
		if query != "" && !ws.Matches(query) {
			continue
		}
		i, ok := index[ws.RepoName]
		if !ok {
			i = len(groups)
			index[ws.RepoName] = i
			groups = append(groups, WorkspaceGroup{RepoName: ws.RepoName})
		}
		groups[i].Workspaces = append(groups[i].Workspaces, ws)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].RepoName < groups[j].RepoName
	})
	return groups
}

// FilterRepositories returns the repositories matching query, most used
// first, then by name.
func (s Snapshot) FilterRepositories(query string) []repo.Repository {
	query = strings.TrimSpace(query)

	var out []repo.Repository
	for _, r := range s.Repositories {
		if query == "" || r.Matches(query) {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// FindRepository resolves arg as a repository path or a unique name.
func (s Snapshot) FindRepository(arg string) (repo.Repository, error) {
	if looksLikePath(arg) {
		want := pathsafe.Canonicalize(arg)
		for _, r := range s.Repositories {
			if pathsafe.Canonicalize(r.Path) == want {
				return r, nil
			}
		}
		return repo.Repository{}, perrors.NotFound("repository", arg)
	}

	var matches []repo.Repository
	for _, r := range s.Repositories {
		if r.Name == arg {
			matches = append(matches, r)
		}
	}
	switch len(matches) {
	case 0:
		return repo.Repository{}, perrors.NotFound("repository", arg)
	case 1:
		return matches[0], nil
	default:
		return repo.Repository{}, perrors.ValidationError(
			fmt.Sprintf("repository name %q is ambiguous (%d matches); pass a path", arg, len(matches)))
	}
}

// FindWorkspace resolves arg as a workspace path or folder name.
func (s Snapshot) FindWorkspace(arg string) (workspace.Workspace, error) {
	if looksLikePath(arg) {
		want := pathsafe.Canonicalize(arg)
		for _, ws := range s.Workspaces {
			if pathsafe.Canonicalize(ws.Path) == want {
				return ws, nil
			}
		}
		return workspace.Workspace{}, perrors.NotFound("workspace", arg)
	}

	for _, ws := range s.Workspaces {
		if ws.Name() == arg {
			return ws, nil
		}
	}
	return workspace.Workspace{}, perrors.NotFound("workspace", arg)
}

func looksLikePath(arg string) bool {
	return filepath.IsAbs(arg) || strings.HasPrefix(arg, "~") ||
		strings.HasPrefix(arg, ".") || strings.ContainsRune(arg, filepath.Separator)
}
