package repo

import (
	"path/filepath"
	"strings"
)

// Repository is a git repository discovered under a configured root.
type Repository struct {
	Name string
	Path string

	// Frequency is how often workspaces were created from this repository.
	// The scanner leaves it at zero; callers fill it from usage history.
	Frequency int
}

// New returns a Repository named after the last component of path.
func New(path string) Repository {
	return Repository{Name: filepath.Base(path), Path: path}
}

// Matches reports whether the name contains query, ignoring case.
func (r Repository) Matches(query string) bool {
	return strings.Contains(strings.ToLower(r.Name), strings.ToLower(query))
}
