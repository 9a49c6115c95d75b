package pathsafe

import (
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"golang.org/x/text/unicode/norm"
)

// Canonicalize returns an absolute, symlink-resolved, NFC-normalized form of
// path. Components that do not exist yet are appended to the resolved
// deepest existing ancestor without resolution.
func Canonicalize(path string) string {
	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		abs = filepath.Clean(path)
	}

	var missing []string
	current := abs
	for {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			current = resolved
			break
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		missing = append(missing, filepath.Base(current))
		current = parent
	}

	for i := len(missing) - 1; i >= 0; i-- {
		current = filepath.Join(current, missing[i])
	}
	return norm.NFC.String(current)
}

// IsContained reports whether target is boundary itself or a descendant of it
// once both are canonicalized.
func IsContained(target, boundary string) bool {
	base := Canonicalize(boundary)
	candidate := Canonicalize(target)
	if candidate == base {
		return true
	}

	prefix := base
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if !strings.HasPrefix(candidate, prefix) {
		return false
	}

	// Resolve the remainder scoped to base. A component swapped for a symlink
	// since canonicalization gets clamped and no longer matches.
	rel := strings.TrimPrefix(candidate, prefix)
	joined, err := securejoin.SecureJoin(base, rel)
	if err != nil {
		return false
	}
	return norm.NFC.String(joined) == candidate
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
