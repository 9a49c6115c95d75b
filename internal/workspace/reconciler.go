package workspace

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	perrors "github.com/parallax-dev/parallax/internal/errors"
	"github.com/parallax-dev/parallax/internal/git"
	"github.com/parallax-dev/parallax/internal/metadata"
	"github.com/parallax-dev/parallax/internal/pathsafe"
	"github.com/parallax-dev/parallax/internal/repo"
)

// Reconciler merges the folder scan, stored metadata and live git state into
// the workspace list, and writes back any drift it sees.
//
// Precedence is metadata, then the folder-name convention, then the raw
// folder name. The live branch always wins over a stored branch.
type Reconciler struct {
	mu      sync.Mutex
	scanner *FolderScanner
	store   *metadata.Store
	git     git.Operations
	now     func() time.Time
}

// NewReconciler creates a reconciler.
func NewReconciler(scanner *FolderScanner, store *metadata.Store, gitOps git.Operations) *Reconciler {
	return &Reconciler{
		scanner: scanner,
		store:   store,
		git:     gitOps,
		now:     time.Now,
	}
}

// Reconcile returns the current workspaces. It never fails: every input
// source degrades to an empty or fallback view, and write-back failures are
// only logged.
func (r *Reconciler) Reconcile(ctx context.Context, repos []repo.Repository) []Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()

	folders, scanErr := r.scanner.Scan(ctx)

	records, loadErr := r.store.Load()
	// An unreadable file must not be clobbered. A corrupt one is rebuilt
	// from what this pass observes.
	writable := loadErr == nil || metadata.IsDecode(loadErr)
	if loadErr != nil {
		_ = perrors.LogAndContinue.Handle(loadErr, "workspace metadata unavailable", "path", r.store.Path())
		records = make(map[string]metadata.Record)
	}

	if scanErr != nil {
		_ = perrors.LogAndContinue.Handle(scanErr, "workspace scan failed, using stored metadata")
		return fromMetadata(records)
	}

	reposByName := make(map[string][]repo.Repository)
	for _, rp := range repos {
		reposByName[rp.Name] = append(reposByName[rp.Name], rp)
	}

	seen := make(map[string]bool, len(folders))
	changed := false
	var workspaces []Workspace

	for _, folder := range folders {
		key := pathsafe.Canonicalize(folder.Path)
		seen[key] = true
		existing, hasRecord := records[key]

		var ws Workspace
		switch {
		case hasRecord:
			ws = fromRecord(folder, existing)
		case folder.Parsed != nil:
			ws = *folder.Parsed
			if candidates := reposByName[ws.RepoName]; len(candidates) == 1 {
				ws.SourceRepoPath = candidates[0].Path
			}
		default:
			continue
		}

		if git.HasGitDir(ws.Path) {
			branch, err := r.git.CurrentBranch(ctx, ws.Path)
			if err != nil {
				_ = perrors.LogAndContinue.Handle(err, "branch lookup failed", "workspace", ws.Path)
			} else if branch != "" {
				ws.BranchName = branch
			}
		}

		if prov, ok := ws.Provenance(); ok {
			createdAt := r.now().UTC()
			if hasRecord {
				createdAt = existing.CreatedAt
			}
			next := metadata.Record{
				WorkspacePath:  key,
				SourceRepoPath: pathsafe.Canonicalize(prov.SourceRepoPath),
				BranchName:     prov.BranchName,
				CreatedAt:      createdAt,
			}
			if !hasRecord || !existing.Equal(next) {
				records[key] = next
				changed = true
			}
			ws.CreatedAt = createdAt
		}

		workspaces = append(workspaces, ws)
	}

	for key := range records {
		if !seen[key] {
			delete(records, key)
			changed = true
		}
	}

	if changed && writable {
		_ = perrors.LogAndContinue.Handle(r.store.Persist(records), "workspace metadata persist failed", "path", r.store.Path())
	}
	return workspaces
}

func fromRecord(folder Folder, rec metadata.Record) Workspace {
	fallbackRepo, fallbackTask := folder.Name, folder.Name
	if folder.Parsed != nil {
		fallbackRepo, fallbackTask = folder.Parsed.RepoName, folder.Parsed.TaskName
	}
	return Workspace{
		Path:           folder.Path,
		RepoName:       repoNameFromSource(rec.SourceRepoPath, fallbackRepo),
		TaskName:       taskNameFromBranch(rec.BranchName, fallbackTask),
		SourceRepoPath: rec.SourceRepoPath,
		BranchName:     rec.BranchName,
		CreatedAt:      rec.CreatedAt,
	}
}

// fromMetadata lists the recorded workspaces whose folders still exist,
// newest first. Used when the root cannot be listed; nothing is pruned.
func fromMetadata(records map[string]metadata.Record) []Workspace {
	recs := make([]metadata.Record, 0, len(records))
	for _, rec := range records {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].CreatedAt.After(recs[j].CreatedAt)
		}
		return recs[i].WorkspacePath < recs[j].WorkspacePath
	})

	var workspaces []Workspace
	for _, rec := range recs {
		info, err := os.Stat(rec.WorkspacePath)
		if err != nil || !info.IsDir() {
			continue
		}
		name := filepath.Base(rec.WorkspacePath)
		workspaces = append(workspaces, fromRecord(Folder{Name: name, Path: rec.WorkspacePath}, rec))
	}
	return workspaces
}
