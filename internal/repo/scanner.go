// Package repo discovers git repositories under configured root directories.
package repo

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/parallax-dev/parallax/internal/logging"
)

// SkipDirectories are directory names never descended into.
var SkipDirectories = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"target":       true,
	"dist":         true,
	".build":       true,
	"Pods":         true,
	"DerivedData":  true,
	"build":        true,
	"out":          true,
}

// Scanner walks root directories looking for git repositories.
type Scanner struct {
	mu    sync.Mutex
	roots []string
}

// NewScanner creates a scanner over roots. Roots are used as given; expand
// "~" before passing them in.
func NewScanner(roots []string) *Scanner {
	return &Scanner{roots: append([]string(nil), roots...)}
}

// Scan walks every root and returns the repositories found, in root order.
// A root that cannot be walked contributes nothing.
func (s *Scanner) Scan(ctx context.Context) []Repository {
	s.mu.Lock()
	defer s.mu.Unlock()

	perRoot := make([][]Repository, len(s.roots))
	g, ctx := errgroup.WithContext(ctx)
	for i, root := range s.roots {
		g.Go(func() error {
			perRoot[i] = scanRoot(ctx, root)
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[string]bool)
	var repos []Repository
	for _, found := range perRoot {
		for _, r := range found {
			if seen[r.Path] {
				continue
			}
			seen[r.Path] = true
			repos = append(repos, r)
		}
	}
	return repos
}

func scanRoot(ctx context.Context, root string) []Repository {
	var repos []Repository
	root = filepath.Clean(root)
	// WalkDir does not follow a symlinked root.
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			logging.Debug("skipping unreadable directory", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == root || !d.IsDir() {
			return nil
		}

		name := d.Name()
		if strings.HasPrefix(name, ".") || SkipDirectories[name] {
			return fs.SkipDir
		}
		if _, err := os.Stat(filepath.Join(path, ".git")); err == nil {
			repos = append(repos, New(path))
			return fs.SkipDir
		}
		return nil
	})
	if err != nil {
		logging.Warn("repository scan failed", "root", root, "error", err)
		return nil
	}
	return repos
}
