package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/parallax-dev/parallax/internal/logging"
)

// Folder is one directory under the workspace root.
type Folder struct {
	Name string
	Path string

	// Parsed is nil when the name does not follow the <repo>__<task> form.
	Parsed *Workspace
}

// ScanError reports that the workspace root could not be listed. It is
// distinct from an empty root.
type ScanError struct {
	Root string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan workspace root %s: %v", e.Root, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// FolderScanner lists the workspace root.
type FolderScanner struct {
	mu   sync.Mutex
	root string
}

// NewFolderScanner creates a scanner over root.
func NewFolderScanner(root string) *FolderScanner {
	return &FolderScanner{root: root}
}

// Root returns the scanned directory.
func (s *FolderScanner) Root() string {
	return s.root
}

// Scan lists the visible directories under the root. A missing root is
// created and yields no folders.
func (s *FolderScanner) Scan(ctx context.Context) ([]Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, &ScanError{Root: s.root, Err: err}
	}

	if _, err := os.Stat(s.root); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(s.root, 0o755); err != nil {
			logging.Warn("failed to create workspace root", "root", s.root, "error", err)
		}
		return nil, nil
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, &ScanError{Root: s.root, Err: err}
	}

	var folders []Folder
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(s.root, name)
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}

		folder := Folder{Name: name, Path: path}
		if ws, ok := ParseFolderName(name, s.root); ok {
			folder.Parsed = &ws
		}
		folders = append(folders, folder)
	}
	return folders, nil
}
