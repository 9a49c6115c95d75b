package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	perrors "github.com/parallax-dev/parallax/internal/errors"
	"github.com/parallax-dev/parallax/internal/git"
	"github.com/parallax-dev/parallax/internal/logging"
	"github.com/parallax-dev/parallax/internal/metadata"
	"github.com/parallax-dev/parallax/internal/pathsafe"
	"github.com/parallax-dev/parallax/internal/repo"
	"github.com/parallax-dev/parallax/internal/slug"
	"github.com/parallax-dev/parallax/internal/system"
)

// Manager creates, deletes and merges back workspaces under one root. It is
// the only component that mutates the workspace root, and it serializes its
// own operations so concurrent creates cannot race on a folder name.
type Manager struct {
	mu    sync.Mutex
	root  string
	store *metadata.Store
	git   git.Operations
}

// NewManager creates a manager for root.
func NewManager(root string, store *metadata.Store, gitOps git.Operations) *Manager {
	return &Manager{
		root:  root,
		store: store,
		git:   gitOps,
	}
}

// Root returns the workspace root.
func (m *Manager) Root() string {
	return m.root
}

// Create copies r into a new folder under the root and checks out
// agent/<slug> there. Task-name and containment errors are returned as is.
// Either the workspace exists with its branch checked out or nothing is
// left behind.
func (m *Manager) Create(ctx context.Context, r repo.Repository, taskName string) (Workspace, error) {
	s, err := slug.Make(taskName)
	if err != nil {
		return Workspace{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	dest, err := m.nextAvailablePath(FolderName(r.Name, s.String()))
	if err != nil {
		return Workspace{}, err
	}
	if pathsafe.IsContained(dest, r.Path) {
		return Workspace{}, perrors.WorkspaceError("create", fmt.Errorf("destination %s is inside source repository %s", dest, r.Path))
	}

	if err := os.MkdirAll(m.root, 0o755); err != nil {
		return Workspace{}, perrors.WorkspaceError("create root", err)
	}
	if err := m.validate(dest); err != nil {
		return Workspace{}, err
	}

	log := logging.With("repo", r.Name, "workspace", dest)
	log.Debug("copying repository", "source", r.Path)
	if err := system.CopyTree(r.Path, dest); err != nil {
		if !errors.Is(err, system.ErrDestinationExists) {
			m.cleanup(dest)
		}
		return Workspace{}, perrors.WorkspaceError("copy", err)
	}

	branch := BranchName(s.String())
	if err := m.git.CreateAndCheckoutBranch(ctx, branch, dest); err != nil {
		m.cleanup(dest)
		return Workspace{}, err
	}

	createdAt := time.Now().UTC()
	_ = perrors.LogAndContinue.Handle(m.store.Upsert(dest, r.Path, branch, createdAt),
		"workspace metadata upsert failed", "workspace", dest)

	log.Info("workspace created", "branch", branch)
	return Workspace{
		Path:           dest,
		RepoName:       r.Name,
		TaskName:       s.String(),
		SourceRepoPath: r.Path,
		BranchName:     branch,
		CreatedAt:      createdAt,
	}, nil
}

// Delete removes the workspace entry after proving it lies inside the root,
// then drops its metadata. A symlinked entry loses only the link. A folder
// that is already gone only loses its metadata.
func (m *Manager) Delete(ctx context.Context, ws Workspace) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.validate(ws.Path); err != nil {
		return err
	}
	target := pathsafe.Canonicalize(ws.Path)
	if target == pathsafe.Canonicalize(m.root) {
		return perrors.OutsideWorkspaceRoot(target)
	}

	if err := removeEntry(ws.Path); err != nil {
		return perrors.WorkspaceError("delete", err)
	}

	_ = perrors.LogAndContinue.Handle(m.store.Delete(ws.Path),
		"workspace metadata delete failed", "workspace", ws.Path)
	logging.Info("workspace deleted", "workspace", ws.Path)
	return nil
}

// MergeBack fetches the workspace branch into its source repository and
// force-updates the local branch there. The source checkout is untouched.
func (m *Manager) MergeBack(ctx context.Context, ws Workspace) error {
	prov, ok := ws.Provenance()
	if !ok {
		return perrors.MissingProvenance(ws.Path)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.git.FetchBranchAndUpdateRef(ctx, prov.BranchName, ws.Path, prov.SourceRepoPath); err != nil {
		return err
	}
	logging.Info("workspace merged back", "workspace", ws.Path, "source", prov.SourceRepoPath, "branch", prov.BranchName)
	return nil
}

// nextAvailablePath returns root/base, or root/base-N for the smallest N >= 2
// that is free. Every candidate is containment-checked before it is probed.
func (m *Manager) nextAvailablePath(base string) (string, error) {
	name := base
	for n := 2; ; n++ {
		candidate := filepath.Join(m.root, name)
		if err := m.validate(candidate); err != nil {
			return "", err
		}
		if _, err := os.Lstat(candidate); errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		} else if err != nil {
			return "", perrors.WorkspaceError("create", err)
		}
		name = fmt.Sprintf("%s-%d", base, n)
	}
}

func (m *Manager) validate(path string) error {
	if !pathsafe.IsContained(path, m.root) {
		return perrors.OutsideWorkspaceRoot(pathsafe.Canonicalize(path))
	}
	return nil
}

// removeEntry deletes the directory entry at path, not what it resolves to.
func removeEntry(path string) error {
	path = filepath.Clean(path)
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		return os.Remove(path)
	}
	return os.RemoveAll(path)
}

func (m *Manager) cleanup(dest string) {
	if err := os.RemoveAll(dest); err != nil {
		logging.Warn("failed to remove partial workspace", "workspace", dest, "error", err)
	}
}
